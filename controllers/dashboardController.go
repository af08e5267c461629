package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/services"
)

func GetDashboard(c *gin.Context) {
	service := services.NewReportService(config.DB)

	summary, err := service.Dashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	chart, err := service.DailySalesChart(7)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":      summary,
		"chart_data": chart,
	})
}
