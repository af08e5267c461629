package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/utils/pagination"
)

// ReportService is the read-only aggregation layer. Reports reflect the
// currently committed state; profit joins the medication's current cost
// price, not a snapshot, so historical figures shift when cost prices
// change.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type DashboardSummary struct {
	TotalMedications  int64           `json:"total_medications"`
	LowStockCount     int64           `json:"low_stock_count"`
	ExpiredCount      int64           `json:"expired_count"`
	ExpiringSoonCount int64           `json:"expiring_soon_count"`
	TodaySales        decimal.Decimal `json:"today_sales"`
	MonthSales        decimal.Decimal `json:"month_sales"`
	TodayProfit       decimal.Decimal `json:"today_profit"`
	RecentSalesCount  int64           `json:"recent_sales_count"`
	TotalCustomers    int64           `json:"total_customers"`
	TotalUsers        int64           `json:"total_users"`
}

type DailySales struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type SalesReport struct {
	Sales             []models.SaleTransaction `json:"sales"`
	TotalSales        decimal.Decimal          `json:"total_sales"`
	TotalTransactions int                      `json:"total_transactions"`
}

type ProfitReportRow struct {
	Sale   models.SaleTransaction `json:"sale"`
	Profit decimal.Decimal        `json:"profit"`
}

type ProfitReport struct {
	Rows         []ProfitReportRow `json:"rows"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	TotalProfit  decimal.Decimal   `json:"total_profit"`
}

type CustomerReportRow struct {
	Customer   models.Customer `json:"customer" gorm:"-"`
	CustomerID uint            `json:"-"`
	SalesCount int64           `json:"sales_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

func (s *ReportService) Dashboard() (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	inv := NewInventoryService(s.db)

	if err := s.db.Model(&models.Medication{}).Where("deleted = ?", false).
		Count(&summary.TotalMedications).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Medication{}).
		Where("deleted = ? AND stock_quantity <= ?", false, LowStockThreshold).
		Count(&summary.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Medication{}).
		Where("deleted = ? AND expiry_date IS NOT NULL AND expiry_date < ?", false, today()).
		Count(&summary.ExpiredCount).Error; err != nil {
		return nil, err
	}

	expiring, err := inv.ExpiringSoon(ExpiringSoonDays)
	if err != nil {
		return nil, err
	}
	summary.ExpiringSoonCount = int64(len(expiring))

	dayStart := today()
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(dayStart.Year(), dayStart.Month(), 1, 0, 0, 0, 0, dayStart.Location())

	if summary.TodaySales, err = s.completedTotal(dayStart, dayEnd); err != nil {
		return nil, err
	}
	if summary.MonthSales, err = s.completedTotal(monthStart, dayEnd); err != nil {
		return nil, err
	}
	if summary.TodayProfit, err = s.profitBetween(dayStart, dayEnd); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.SaleTransaction{}).
		Where("sale_date >= ?", time.Now().Add(-24*time.Hour)).
		Count(&summary.RecentSalesCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Customer{}).Count(&summary.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Count(&summary.TotalUsers).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *ReportService) completedTotal(start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.SaleTransaction{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("payment_status = ? AND sale_date >= ? AND sale_date < ?", "completed", start, end).
		Scan(&row).Error
	return row.Total, err
}

func (s *ReportService) profitBetween(start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Profit decimal.Decimal
	}
	err := s.db.Model(&models.SaleItem{}).
		Select("COALESCE(SUM(sale_items.quantity * (sale_items.unit_price - COALESCE(medications.cost_price, 0))), 0) AS profit").
		Joins("JOIN medications ON medications.id = sale_items.medication_id").
		Joins("JOIN sale_transactions ON sale_transactions.id = sale_items.sale_id").
		Where("sale_transactions.payment_status = ? AND sale_transactions.sale_date >= ? AND sale_transactions.sale_date < ?",
			"completed", start, end).
		Scan(&row).Error
	return row.Profit, err
}

// SaleProfit joins the current cost price at query time.
func (s *ReportService) SaleProfit(saleID uint) decimal.Decimal {
	var row struct {
		Profit decimal.Decimal
	}
	s.db.Model(&models.SaleItem{}).
		Select("COALESCE(SUM(sale_items.quantity * (sale_items.unit_price - COALESCE(medications.cost_price, 0))), 0) AS profit").
		Joins("JOIN medications ON medications.id = sale_items.medication_id").
		Where("sale_items.sale_id = ?", saleID).
		Scan(&row)
	return row.Profit
}

func (s *ReportService) DailySalesChart(days int) ([]DailySales, error) {
	if days < 1 {
		days = 30
	}
	start := today().AddDate(0, 0, -(days - 1))

	var rows []DailySales
	err := s.db.Model(&models.SaleTransaction{}).
		Select("DATE(sale_date) AS date, COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Where("payment_status = ? AND sale_date >= ?", "completed", start).
		Group("DATE(sale_date)").
		Order("date").
		Scan(&rows).Error
	return rows, err
}

func (s *ReportService) rangeQuery(start, end *time.Time) *gorm.DB {
	q := s.db.Model(&models.SaleTransaction{}).
		Preload("Customer").Preload("User").
		Where("payment_status = ?", "completed")
	if start != nil {
		q = q.Where("sale_date >= ?", *start)
	}
	if end != nil {
		// inclusive end date
		q = q.Where("sale_date < ?", end.AddDate(0, 0, 1))
	}
	return q
}

func (s *ReportService) GetSalesReport(start, end *time.Time) (*SalesReport, error) {
	var sales []models.SaleTransaction
	if err := s.rangeQuery(start, end).Order("sale_date DESC").Find(&sales).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.TotalAmount)
	}
	return &SalesReport{
		Sales:             sales,
		TotalSales:        total,
		TotalTransactions: len(sales),
	}, nil
}

func (s *ReportService) GetProfitReport(start, end *time.Time) (*ProfitReport, error) {
	var sales []models.SaleTransaction
	if err := s.rangeQuery(start, end).Order("sale_date DESC").Find(&sales).Error; err != nil {
		return nil, err
	}

	report := &ProfitReport{
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, sale := range sales {
		profit := s.SaleProfit(sale.ID)
		report.Rows = append(report.Rows, ProfitReportRow{Sale: sale, Profit: profit})
		report.TotalRevenue = report.TotalRevenue.Add(sale.TotalAmount)
		report.TotalProfit = report.TotalProfit.Add(profit)
	}
	return report, nil
}

// GetCustomerReport computes per-customer lifetime value, ordered by
// total spent.
func (s *ReportService) GetCustomerReport() ([]CustomerReportRow, error) {
	var rows []CustomerReportRow
	err := s.db.Model(&models.Customer{}).
		Select("customers.id AS customer_id, COUNT(sale_transactions.id) AS sales_count, COALESCE(SUM(sale_transactions.total_amount), 0) AS total_spent").
		Joins("LEFT JOIN sale_transactions ON sale_transactions.customer_id = customers.id").
		Group("customers.id").
		Order("total_spent DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		var customer models.Customer
		if err := s.db.First(&customer, rows[i].CustomerID).Error; err == nil {
			rows[i].Customer = customer
		}
	}
	return rows, nil
}

type TransactionPage struct {
	Data []models.SaleTransaction `json:"data"`
	Meta pagination.Meta          `json:"meta"`
}

func (s *ReportService) ListTransactions(date string, p pagination.Params) (*TransactionPage, error) {
	q := s.db.Model(&models.SaleTransaction{})

	if date != "" {
		start, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, &ValidationError{Message: "invalid date format, expected YYYY-MM-DD"}
		}
		q = q.Where("sale_date >= ? AND sale_date < ?", start, start.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var sales []models.SaleTransaction
	if err := q.Preload("Items.Medication").Preload("Customer").Preload("User").
		Order("sale_date DESC").
		Limit(p.PageSize).
		Offset(p.Offset).
		Find(&sales).Error; err != nil {
		return nil, err
	}

	return &TransactionPage{
		Data: sales,
		Meta: pagination.BuildMeta(p.Page, p.PageSize, total),
	}, nil
}
