package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/services"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(c *gin.Context, f *excelize.File, prefix string) {
	filename := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", excelContentType)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write workbook"})
	}
}

// Import medications from an uploaded .xlsx file
func ImportMedications(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	service := services.NewExcelService(config.DB)
	result, err := service.ImportMedications(src)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func DownloadSampleTemplate(c *gin.Context) {
	service := services.NewExcelService(config.DB)
	writeWorkbook(c, service.SampleWorkbook(), "sample_medications")
}

func ExportSalesReport(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	reports := services.NewReportService(config.DB)
	report, err := reports.GetSalesReport(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	excel := services.NewExcelService(config.DB)
	writeWorkbook(c, excel.SalesReportWorkbook(report), "sales_report")
}

func ExportInventoryReport(c *gin.Context) {
	inventory := services.NewInventoryService(config.DB)
	meds, err := inventory.ListMedications(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	excel := services.NewExcelService(config.DB)
	writeWorkbook(c, excel.InventoryReportWorkbook(meds), "inventory_report")
}

func ExportProfitReport(c *gin.Context) {
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	reports := services.NewReportService(config.DB)
	report, err := reports.GetProfitReport(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	excel := services.NewExcelService(config.DB)
	writeWorkbook(c, excel.ProfitReportWorkbook(report), "profit_report")
}

func ExportCustomerReport(c *gin.Context) {
	reports := services.NewReportService(config.DB)
	rows, err := reports.GetCustomerReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	excel := services.NewExcelService(config.DB)
	writeWorkbook(c, excel.CustomerReportWorkbook(rows), "customer_report")
}
