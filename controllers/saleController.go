package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/services"
	"github.com/JohnFrp/pharmacy-pos/utils/common"
	"github.com/JohnFrp/pharmacy-pos/utils/log"
	"github.com/JohnFrp/pharmacy-pos/utils/pagination"
)

// Create a sale from the till's cart. The whole sale either persists or
// rolls back; the typed failure tells the till what to fix.
func CreateSale(c *gin.Context) {
	var input dtos.ProcessSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = common.GetUserID(c)

	service := services.NewSaleService(config.DB, log.L())
	sale, err := service.ProcessSale(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale completed successfully! Transaction ID: " + sale.TransactionID,
		"sale":    sale,
	})
}

// Get transactions with optional ?date=YYYY-MM-DD filter and pagination
func GetSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	service := services.NewReportService(config.DB)
	result, err := service.ListTransactions(c.Query("date"), pagination.New(page, pageSize))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get one transaction with resolved items (receipt payload)
func GetSaleByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	service := services.NewSaleService(config.DB, log.L())
	sale, err := service.GetSale(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	report := services.NewReportService(config.DB)
	c.JSON(http.StatusOK, gin.H{
		"sale":   sale,
		"profit": report.SaleProfit(sale.ID),
	})
}
