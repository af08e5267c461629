package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/services"
	"github.com/JohnFrp/pharmacy-pos/utils/common"
)

func Login(c *gin.Context) {
	var input dtos.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewAuthService(config.DB)
	response, err := service.Login(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPendingApproval), errors.Is(err, services.ErrDeactivated):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

func Register(c *gin.Context) {
	var input dtos.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewAuthService(config.DB)
	user, err := service.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Registration submitted, your account is pending admin approval"
	if user.IsApproved {
		message = "Registration successful, please log in"
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "user": user})
}

func Profile(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, common.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
