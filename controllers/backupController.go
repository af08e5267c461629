package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/models"
)

// Database stats for the admin panel
func GetDatabaseStats(c *gin.Context) {
	stats := gin.H{}
	counts := []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"medications", &models.Medication{}},
		{"customers", &models.Customer{}},
		{"sale_transactions", &models.SaleTransaction{}},
		{"sale_items", &models.SaleItem{}},
	}
	for _, t := range counts {
		var count int64
		config.DB.Model(t.model).Count(&count)
		stats[t.name] = count
	}
	c.JSON(http.StatusOK, stats)
}

// BackupDatabase streams a full JSON dump. The bootstrap admin account
// is excluded, matching the restore which keeps the current admin.
func BackupDatabase(c *gin.Context) {
	doc := dtos.BackupDocument{}

	var users []models.User
	if err := config.DB.Where("username != ?", "admin").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, u := range users {
		doc.Users = append(doc.Users, dtos.BackupUser{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			IsActive:     u.IsActive,
			IsApproved:   u.IsApproved,
			CreatedAt:    u.CreatedAt,
		})
	}

	if err := config.DB.Find(&doc.Medications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Find(&doc.Customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Find(&doc.SaleTransactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Find(&doc.SaleItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("pharmacy_backup_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, doc)
}

// DeleteDatabase wipes every table, keeping only the bootstrap admin so
// the panel stays reachable. The typed confirmation phrase is the gate;
// anything else cancels the operation.
func DeleteDatabase(c *gin.Context) {
	var input struct {
		Confirmation string `json:"confirmation"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.ToLower(strings.TrimSpace(input.Confirmation)) != "delete everything" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation phrase incorrect. Operation cancelled."})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.SaleTransaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Medication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		return tx.Where("username != ?", "admin").Delete(&models.User{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deletion failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entire database has been deleted successfully"})
}

// RestoreDatabase replays a backup document inside one transaction,
// remapping old ids onto the freshly assigned ones.
func RestoreDatabase(c *gin.Context) {
	file, err := c.FormFile("backup_file")
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

	var doc dtos.BackupDocument
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup file: " + err.Error()})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// delete in reverse dependency order, keeping the current admin
		if err := tx.Where("1 = 1").Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.SaleTransaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Medication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username != ?", "admin").Delete(&models.User{}).Error; err != nil {
			return err
		}

		userIDs := map[uint]uint{}
		for _, u := range doc.Users {
			user := models.User{
				Username:     u.Username,
				Email:        u.Email,
				PasswordHash: u.PasswordHash,
				Role:         u.Role,
				IsActive:     u.IsActive,
				IsApproved:   u.IsApproved,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			userIDs[u.ID] = user.ID
		}

		medIDs := map[uint]uint{}
		for _, m := range doc.Medications {
			oldID := m.ID
			m.ID = 0
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			medIDs[oldID] = m.ID
		}

		customerIDs := map[uint]uint{}
		for _, cu := range doc.Customers {
			oldID := cu.ID
			cu.ID = 0
			if err := tx.Create(&cu).Error; err != nil {
				return err
			}
			customerIDs[oldID] = cu.ID
		}

		// sales by the bootstrap admin keep pointing at the current one
		var admin models.User
		if err := tx.Where("role = ?", "admin").First(&admin).Error; err != nil {
			return err
		}

		saleIDs := map[uint]uint{}
		for _, sale := range doc.SaleTransactions {
			oldID := sale.ID
			sale.ID = 0
			sale.Items = nil
			sale.User = models.User{}
			sale.Customer = nil
			if newID, ok := userIDs[sale.UserID]; ok {
				sale.UserID = newID
			} else {
				sale.UserID = admin.ID
			}
			if sale.CustomerID != nil {
				if newID, ok := customerIDs[*sale.CustomerID]; ok {
					sale.CustomerID = &newID
				} else {
					sale.CustomerID = nil
				}
			}
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
			saleIDs[oldID] = sale.ID
		}

		for _, item := range doc.SaleItems {
			item.ID = 0
			item.Medication = models.Medication{}
			newSaleID, ok := saleIDs[item.SaleID]
			if !ok {
				return fmt.Errorf("sale item references unknown sale %d", item.SaleID)
			}
			item.SaleID = newSaleID
			if newMedID, ok := medIDs[item.MedicationID]; ok {
				item.MedicationID = newMedID
			} else {
				return fmt.Errorf("sale item references unknown medication %d", item.MedicationID)
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "restore failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Database restored successfully",
		"restored": gin.H{
			"users":             len(doc.Users),
			"medications":       len(doc.Medications),
			"customers":         len(doc.Customers),
			"sale_transactions": len(doc.SaleTransactions),
			"sale_items":        len(doc.SaleItems),
		},
	})
}
