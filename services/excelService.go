package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/utils/common"
)

const sheetName = "Sheet1"

var importHeaders = []string{
	"name", "generic_name", "manufacturer", "price", "cost_price",
	"stock_quantity", "expiry_date", "category", "barcode",
}

// ExcelService reads and writes the spreadsheet formats the pharmacy
// exchanges with suppliers and accountants.
type ExcelService struct {
	db *gorm.DB
}

func NewExcelService(db *gorm.DB) *ExcelService {
	return &ExcelService{db: db}
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportMedications loads medications from an .xlsx upload. Rows are
// validated individually: a bad row is reported and skipped, the rest
// of the file still imports.
func (s *ExcelService) ImportMedications(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ValidationError{Message: "failed to read Excel file: " + err.Error()}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, &ValidationError{Message: "failed to read sheet: " + err.Error()}
	}
	if len(rows) < 2 {
		return nil, &ValidationError{Message: "file contains no data rows"}
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, &ValidationError{Message: "missing required column: name"}
	}

	result := &ImportResult{}
	for idx, row := range rows[1:] {
		rowNo := idx + 2
		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := cell("name")
		if name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name", rowNo))
			continue
		}

		price, err := decimal.NewFromString(cell("price"))
		if err != nil || !price.IsPositive() {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid price", rowNo))
			continue
		}

		med := models.Medication{
			Name:         name,
			GenericName:  common.StringPtr(cell("generic_name")),
			Manufacturer: common.StringPtr(cell("manufacturer")),
			Price:        price.Round(2),
			Category:     common.StringPtr(cell("category")),
			Barcode:      common.StringPtr(cell("barcode")),
		}

		if v := cell("cost_price"); v != "" {
			cost, err := decimal.NewFromString(v)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid cost_price", rowNo))
				continue
			}
			cost = cost.Round(2)
			med.CostPrice = &cost
		}
		if v := cell("stock_quantity"); v != "" {
			qty, err := strconv.Atoi(v)
			if err != nil || qty < 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid stock_quantity", rowNo))
				continue
			}
			med.StockQuantity = qty
		}
		if v := cell("expiry_date"); v != "" {
			if expiry, err := time.Parse("2006-01-02", v); err == nil {
				med.ExpiryDate = &expiry
			}
		}

		var existing models.Medication
		q := s.db.Where("name = ?", med.Name)
		if med.Barcode != nil {
			q = q.Or("barcode = ?", *med.Barcode)
		}
		if err := q.First(&existing).Error; err == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: medication already exists", rowNo))
			continue
		}

		if err := s.db.Create(&med).Error; err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNo, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// SampleWorkbook builds the import template with a few example rows.
func (s *ExcelService) SampleWorkbook() *excelize.File {
	f := excelize.NewFile()
	for i, h := range importHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	samples := [][]interface{}{
		{"Aspirin", "Acetylsalicylic acid", "Bayer", 5.99, 3.50, 100, "2027-12-31", "Pain Relief", "1234567890123"},
		{"Paracetamol", "Acetaminophen", "GSK", 4.50, 2.80, 50, "2028-06-30", "Pain Relief", "2345678901234"},
		{"Ibuprofen", "Ibuprofen", "Advil", 6.25, 4.00, 75, "2027-10-15", "Pain Relief", "3456789012345"},
	}
	for r, row := range samples {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}
	return f
}

func (s *ExcelService) SalesReportWorkbook(report *SalesReport) *excelize.File {
	f := excelize.NewFile()
	headers := []string{"Transaction ID", "Date", "Customer", "Total Amount", "Tax", "Discount", "Payment Method", "Cashier"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, sale := range report.Sales {
		row := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), sale.TransactionID)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), sale.SaleDate.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, "C"+fmt.Sprint(row), customerName(sale.Customer))
		f.SetCellValue(sheetName, "D"+fmt.Sprint(row), sale.TotalAmount.InexactFloat64())
		f.SetCellValue(sheetName, "E"+fmt.Sprint(row), sale.TaxAmount.InexactFloat64())
		f.SetCellValue(sheetName, "F"+fmt.Sprint(row), sale.DiscountAmount.InexactFloat64())
		f.SetCellValue(sheetName, "G"+fmt.Sprint(row), sale.PaymentMethod)
		f.SetCellValue(sheetName, "H"+fmt.Sprint(row), sale.User.Username)
	}
	return f
}

func (s *ExcelService) InventoryReportWorkbook(meds []models.Medication) *excelize.File {
	f := excelize.NewFile()
	headers := []string{"Name", "Generic Name", "Manufacturer", "Price", "Cost Price", "Stock Quantity", "Expiry Date", "Category", "Barcode"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, med := range meds {
		row := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), med.Name)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), common.GetStringValue(med.GenericName))
		f.SetCellValue(sheetName, "C"+fmt.Sprint(row), common.GetStringValue(med.Manufacturer))
		f.SetCellValue(sheetName, "D"+fmt.Sprint(row), med.Price.InexactFloat64())
		if med.CostPrice != nil {
			f.SetCellValue(sheetName, "E"+fmt.Sprint(row), med.CostPrice.InexactFloat64())
		}
		f.SetCellValue(sheetName, "F"+fmt.Sprint(row), med.StockQuantity)
		if med.ExpiryDate != nil {
			f.SetCellValue(sheetName, "G"+fmt.Sprint(row), med.ExpiryDate.Format("2006-01-02"))
		} else {
			f.SetCellValue(sheetName, "G"+fmt.Sprint(row), "N/A")
		}
		f.SetCellValue(sheetName, "H"+fmt.Sprint(row), common.GetStringValue(med.Category))
		f.SetCellValue(sheetName, "I"+fmt.Sprint(row), common.GetStringValue(med.Barcode))
	}
	return f
}

func (s *ExcelService) ProfitReportWorkbook(report *ProfitReport) *excelize.File {
	f := excelize.NewFile()
	headers := []string{"Transaction ID", "Date", "Customer", "Total Revenue", "Total Profit", "Payment Method", "Cashier"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, row := range report.Rows {
		r := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(r), row.Sale.TransactionID)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(r), row.Sale.SaleDate.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, "C"+fmt.Sprint(r), customerName(row.Sale.Customer))
		f.SetCellValue(sheetName, "D"+fmt.Sprint(r), row.Sale.TotalAmount.InexactFloat64())
		f.SetCellValue(sheetName, "E"+fmt.Sprint(r), row.Profit.InexactFloat64())
		f.SetCellValue(sheetName, "F"+fmt.Sprint(r), row.Sale.PaymentMethod)
		f.SetCellValue(sheetName, "G"+fmt.Sprint(r), row.Sale.User.Username)
	}
	return f
}

func (s *ExcelService) CustomerReportWorkbook(rows []CustomerReportRow) *excelize.File {
	f := excelize.NewFile()
	headers := []string{"Customer Name", "Phone", "Email", "Total Purchases", "Total Spent", "Average Purchase"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		avg := decimal.Zero
		if row.SalesCount > 0 {
			avg = row.TotalSpent.Div(decimal.NewFromInt(row.SalesCount)).Round(2)
		}
		f.SetCellValue(sheetName, "A"+fmt.Sprint(r), row.Customer.Name)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(r), common.GetStringValue(row.Customer.Phone))
		f.SetCellValue(sheetName, "C"+fmt.Sprint(r), common.GetStringValue(row.Customer.Email))
		f.SetCellValue(sheetName, "D"+fmt.Sprint(r), row.SalesCount)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(r), row.TotalSpent.InexactFloat64())
		f.SetCellValue(sheetName, "F"+fmt.Sprint(r), avg.InexactFloat64())
	}
	return f
}

func customerName(c *models.Customer) string {
	if c == nil {
		return "Walk-in"
	}
	return c.Name
}
