package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/services"
)

func GetCustomers(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		searchCustomers(c, q)
		return
	}

	service := services.NewReportService(config.DB)
	rows, err := service.GetCustomerReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func searchCustomers(c *gin.Context, term string) {
	var customers []models.Customer
	pattern := "%" + term + "%"
	if err := config.DB.
		Where("LOWER(name) LIKE LOWER(?) OR phone LIKE ? OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("name").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func GetCustomerByID(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var sales []models.SaleTransaction
	config.DB.Preload("Items.Medication").
		Where("customer_id = ?", customer.ID).
		Order("sale_date DESC").Find(&sales)

	c.JSON(http.StatusOK, gin.H{"customer": customer, "sales": sales})
}

func CreateCustomer(c *gin.Context) {
	var input dtos.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var input dtos.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Address = input.Address

	if err := config.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Deletion is blocked while any sale references the customer, so sale
// history keeps resolving.
func DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer
	if err := config.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var salesCount int64
	config.DB.Model(&models.SaleTransaction{}).
		Where("customer_id = ?", customer.ID).Count(&salesCount)
	if salesCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete customer with existing sales records"})
		return
	}

	if err := config.DB.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
