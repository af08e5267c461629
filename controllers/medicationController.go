package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/services"
)

// Get all medications, optionally filtered (all, low_stock, expired,
// expiring_soon) or searched by ?q=
func GetMedications(c *gin.Context) {
	var filter dtos.InventoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewInventoryService(config.DB)

	var meds []models.Medication
	var err error
	if filter.Query != "" {
		meds, err = service.Search(filter.Query)
	} else {
		meds, err = service.ListMedications(filter.Filter)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": meds, "filter": filter.Filter})
}

// Sellable medications for the till (in stock, not deleted)
func GetSellableMedications(c *gin.Context) {
	service := services.NewInventoryService(config.DB)
	meds, err := service.InStock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meds)
}

func GetMedicationByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	service := services.NewInventoryService(config.DB)
	med, err := service.GetMedication(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, med)
}

func CreateMedication(c *gin.Context) {
	var input dtos.MedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !input.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
		return
	}
	if input.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock_quantity cannot be negative"})
		return
	}

	med := models.Medication{
		Name:          input.Name,
		GenericName:   input.GenericName,
		Manufacturer:  input.Manufacturer,
		Price:         input.Price.Round(2),
		CostPrice:     input.CostPrice,
		StockQuantity: input.StockQuantity,
		Category:      input.Category,
		Barcode:       input.Barcode,
	}

	if input.ExpiryDate != nil && *input.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", *input.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry_date, expected YYYY-MM-DD"})
			return
		}
		med.ExpiryDate = &expiry
	}

	if med.Barcode != nil {
		var existing models.Medication
		if err := config.DB.Where("barcode = ?", *med.Barcode).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A medication with this barcode already exists"})
			return
		}
	}

	if err := config.DB.Create(&med).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, med)
}

func UpdateMedication(c *gin.Context) {
	id := c.Param("id")
	var med models.Medication
	if err := config.DB.Where("deleted = ?", false).First(&med, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}

	var input dtos.MedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !input.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
		return
	}
	if input.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock_quantity cannot be negative"})
		return
	}

	if input.Barcode != nil {
		var existing models.Medication
		if err := config.DB.Where("barcode = ? AND id != ?", *input.Barcode, med.ID).
			First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A medication with this barcode already exists"})
			return
		}
	}

	med.Name = input.Name
	med.GenericName = input.GenericName
	med.Manufacturer = input.Manufacturer
	med.Price = input.Price.Round(2)
	med.CostPrice = input.CostPrice
	med.StockQuantity = input.StockQuantity
	med.Category = input.Category
	med.Barcode = input.Barcode

	med.ExpiryDate = nil
	if input.ExpiryDate != nil && *input.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", *input.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry_date, expected YYYY-MM-DD"})
			return
		}
		med.ExpiryDate = &expiry
	}

	if err := config.DB.Save(&med).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, med)
}

// Soft delete: the record stays for historical sale items and is only
// hidden from inventory queries.
func DeleteMedication(c *gin.Context) {
	id := c.Param("id")
	var med models.Medication
	if err := config.DB.Where("deleted = ?", false).First(&med, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}

	if err := config.DB.Model(&med).UpdateColumn("deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted successfully"})
}
