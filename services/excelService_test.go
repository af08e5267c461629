package services

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JohnFrp/pharmacy-pos/models"
)

func workbookReader(t *testing.T, f *excelize.File) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestImportMedicationsFromSampleTemplate(t *testing.T) {
	db := openTestDB(t)
	service := NewExcelService(db)

	result, err := service.ImportMedications(workbookReader(t, service.SampleWorkbook()))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Empty(t, result.Errors)

	var med models.Medication
	require.NoError(t, db.Where("name = ?", "Aspirin").First(&med).Error)
	assert.True(t, med.Price.Equal(decimal.RequireFromString("5.99")))
	require.NotNil(t, med.CostPrice)
	assert.True(t, med.CostPrice.Equal(decimal.RequireFromString("3.5")))
	assert.Equal(t, 100, med.StockQuantity)
	require.NotNil(t, med.ExpiryDate)
	assert.Equal(t, "2027-12-31", med.ExpiryDate.Format("2006-01-02"))
	require.NotNil(t, med.Barcode)
	assert.Equal(t, "1234567890123", *med.Barcode)
}

func TestImportMedicationsSkipsDuplicates(t *testing.T) {
	db := openTestDB(t)
	service := NewExcelService(db)

	_, err := service.ImportMedications(workbookReader(t, service.SampleWorkbook()))
	require.NoError(t, err)

	result, err := service.ImportMedications(workbookReader(t, service.SampleWorkbook()))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "already exists")

	var count int64
	require.NoError(t, db.Model(&models.Medication{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestImportMedicationsReportsBadRows(t *testing.T) {
	db := openTestDB(t)
	service := NewExcelService(db)

	f := excelize.NewFile()
	f.SetCellValue(sheetName, "A1", "name")
	f.SetCellValue(sheetName, "B1", "price")
	f.SetCellValue(sheetName, "C1", "stock_quantity")
	// row 2: fine
	f.SetCellValue(sheetName, "A2", "Aspirin")
	f.SetCellValue(sheetName, "B2", "5.00")
	f.SetCellValue(sheetName, "C2", "10")
	// row 3: no name
	f.SetCellValue(sheetName, "B3", "5.00")
	// row 4: non-numeric price
	f.SetCellValue(sheetName, "A4", "Ibuprofen")
	f.SetCellValue(sheetName, "B4", "free")
	// row 5: negative stock
	f.SetCellValue(sheetName, "A5", "Paracetamol")
	f.SetCellValue(sheetName, "B5", "4.00")
	f.SetCellValue(sheetName, "C5", "-2")

	result, err := service.ImportMedications(workbookReader(t, f))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "row 3: missing name")
	assert.Contains(t, result.Errors[1], "row 4: invalid price")
	assert.Contains(t, result.Errors[2], "row 5: invalid stock_quantity")
}

func TestImportMedicationsRejectsHeaderOnlyFile(t *testing.T) {
	db := openTestDB(t)
	service := NewExcelService(db)

	f := excelize.NewFile()
	f.SetCellValue(sheetName, "A1", "name")

	_, err := service.ImportMedications(workbookReader(t, f))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestInventoryReportWorkbook(t *testing.T) {
	db := openTestDB(t)
	service := NewExcelService(db)
	med := seedMedication(t, db, "Aspirin", "5.99", "3.50", 100)

	f := service.InventoryReportWorkbook([]models.Medication{med})

	name, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", name)
	stock, err := f.GetCellValue(sheetName, "F2")
	require.NoError(t, err)
	assert.Equal(t, "100", stock)
	expiry, err := f.GetCellValue(sheetName, "G2")
	require.NoError(t, err)
	assert.Equal(t, "N/A", expiry)
}
