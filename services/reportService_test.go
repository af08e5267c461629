package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/utils/pagination"
)

// Money values in these tests stay on binary-exact fractions so the SQL
// SUM aggregates compare exactly.
func makeSale(t *testing.T, service *SaleService, userID uint, medID uint, qty int, price string) *models.SaleTransaction {
	t.Helper()
	sale, err := service.ProcessSale(dtos.ProcessSaleInput{
		Items:  []dtos.SaleItemInput{{MedicationID: medID, Quantity: intPtr(qty), UnitPrice: decimalPtr(price)}},
		UserID: userID,
	})
	require.NoError(t, err)
	return sale
}

func backdateSale(t *testing.T, db *gorm.DB, sale *models.SaleTransaction, days int) {
	t.Helper()
	when := time.Now().AddDate(0, 0, -days)
	require.NoError(t, db.Model(&models.SaleTransaction{}).
		Where("id = ?", sale.ID).
		UpdateColumn("sale_date", when).Error)
}

func TestSaleProfitUsesCurrentCostPrice(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "3.00", 50)

	sales := NewSaleService(db, nil)
	reports := NewReportService(db)

	sale := makeSale(t, sales, user.ID, med.ID, 2, "5.00")

	profit := reports.SaleProfit(sale.ID)
	assert.True(t, profit.Equal(decimal.RequireFromString("4.00")), "profit = %s", profit)

	// profit is joined against the current cost price, so a later cost
	// change moves historical figures
	require.NoError(t, db.Model(&med).UpdateColumn("cost_price", decimal.RequireFromString("4.25")).Error)
	profit = reports.SaleProfit(sale.ID)
	assert.True(t, profit.Equal(decimal.RequireFromString("1.50")), "profit = %s", profit)
}

func TestSaleProfitMissingCostPriceCountsAsZeroCost(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "", 50)

	sales := NewSaleService(db, nil)
	reports := NewReportService(db)

	sale := makeSale(t, sales, user.ID, med.ID, 3, "5.00")
	profit := reports.SaleProfit(sale.ID)
	assert.True(t, profit.Equal(decimal.RequireFromString("15.00")), "profit = %s", profit)
}

func TestGetSalesReportDateRange(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "", 50)

	sales := NewSaleService(db, nil)
	reports := NewReportService(db)

	makeSale(t, sales, user.ID, med.ID, 1, "5.00")
	makeSale(t, sales, user.ID, med.ID, 2, "5.00")
	old := makeSale(t, sales, user.ID, med.ID, 4, "5.00")
	backdateSale(t, db, old, 10)

	start := today()
	end := today()
	report, err := reports.GetSalesReport(&start, &end)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTransactions)
	assert.True(t, report.TotalSales.Equal(decimal.RequireFromString("15.00")),
		"total = %s", report.TotalSales)

	// no bounds returns everything
	report, err = reports.GetSalesReport(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalTransactions)
	assert.True(t, report.TotalSales.Equal(decimal.RequireFromString("35.00")))
}

func TestGetProfitReportTotals(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "3.50", 50)

	sales := NewSaleService(db, nil)
	reports := NewReportService(db)

	makeSale(t, sales, user.ID, med.ID, 2, "5.00")
	makeSale(t, sales, user.ID, med.ID, 1, "5.00")

	report, err := reports.GetProfitReport(nil, nil)
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.True(t, report.TotalRevenue.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, report.TotalProfit.Equal(decimal.RequireFromString("4.50")),
		"profit = %s", report.TotalProfit)
}

func TestDailySalesChart(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "", 50)

	sales := NewSaleService(db, nil)
	reports := NewReportService(db)

	makeSale(t, sales, user.ID, med.ID, 1, "5.00")
	makeSale(t, sales, user.ID, med.ID, 2, "5.00")
	old := makeSale(t, sales, user.ID, med.ID, 1, "5.00")
	backdateSale(t, db, old, 1)

	rows, err := reports.DailySalesChart(7)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Count)
	assert.True(t, rows[0].Total.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, int64(2), rows[1].Count)
	assert.True(t, rows[1].Total.Equal(decimal.RequireFromString("15.00")))
}

func TestDashboardSummary(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "3.00", 50)
	seedMedication(t, db, "Ibuprofen", "6.00", "", 2)
	require.NoError(t, db.Create(&models.Customer{Name: "Alice"}).Error)

	sales := NewSaleService(db, nil)
	reports := NewReportService(db)
	makeSale(t, sales, user.ID, med.ID, 2, "5.00")

	summary, err := reports.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalMedications)
	assert.Equal(t, int64(1), summary.LowStockCount)
	assert.Equal(t, int64(0), summary.ExpiredCount)
	assert.True(t, summary.TodaySales.Equal(decimal.RequireFromString("10.00")),
		"today = %s", summary.TodaySales)
	assert.True(t, summary.MonthSales.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, summary.TodayProfit.Equal(decimal.RequireFromString("4.00")),
		"profit = %s", summary.TodayProfit)
	assert.Equal(t, int64(1), summary.RecentSalesCount)
	assert.Equal(t, int64(1), summary.TotalCustomers)
	assert.Equal(t, int64(1), summary.TotalUsers)
}

func TestDashboardSurfacesQueryFailures(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "3.00", 50)

	sales := NewSaleService(db, nil)
	makeSale(t, sales, user.ID, med.ID, 1, "5.00")

	// break a table only the later aggregations touch; a failing store
	// must error out, not report zero-valued stats
	require.NoError(t, db.Migrator().DropTable(&models.SaleItem{}))

	_, err := NewReportService(db).Dashboard()
	require.Error(t, err)
}

func TestGetCustomerReport(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "", 50)

	alice := models.Customer{Name: "Alice"}
	require.NoError(t, db.Create(&alice).Error)
	bob := models.Customer{Name: "Bob"}
	require.NoError(t, db.Create(&bob).Error)

	sales := NewSaleService(db, nil)
	for i := 0; i < 2; i++ {
		_, err := sales.ProcessSale(dtos.ProcessSaleInput{
			Items:      []dtos.SaleItemInput{{MedicationID: med.ID, Quantity: intPtr(1), UnitPrice: decimalPtr("5.00")}},
			CustomerID: &alice.ID,
			UserID:     user.ID,
		})
		require.NoError(t, err)
	}
	// walk-in sale, attributed to nobody
	makeSale(t, sales, user.ID, med.ID, 4, "5.00")

	rows, err := NewReportService(db).GetCustomerReport()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Customer.Name)
	assert.Equal(t, int64(2), rows[0].SalesCount)
	assert.True(t, rows[0].TotalSpent.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "Bob", rows[1].Customer.Name)
	assert.Equal(t, int64(0), rows[1].SalesCount)
	assert.True(t, rows[1].TotalSpent.Equal(decimal.Zero))
}

func TestListTransactionsPagination(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	med := seedMedication(t, db, "Aspirin", "5.00", "", 50)

	sales := NewSaleService(db, nil)
	for i := 0; i < 3; i++ {
		makeSale(t, sales, user.ID, med.ID, 1, "5.00")
	}

	reports := NewReportService(db)
	page, err := reports.ListTransactions("", pagination.New(1, 2))
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)

	page, err = reports.ListTransactions("", pagination.New(2, 2))
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	_, err = reports.ListTransactions("not-a-date", pagination.New(1, 10))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
