package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/models"
)

func setupAdminRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.Migrate(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	admin := models.User{Username: "admin", Email: "admin@pharmacy.com", PasswordHash: "x", Role: "admin", IsActive: true, IsApproved: true}
	require.NoError(t, db.Create(&admin).Error)

	r := gin.New()
	authed := r.Group("/admin", func(c *gin.Context) {
		c.Set("user_id", admin.ID)
		c.Set("role", admin.Role)
		c.Next()
	})
	authed.GET("/database", GetDatabaseStats)
	authed.DELETE("/database", DeleteDatabase)
	return r, db
}

func seedWipeFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	clerk := models.User{Username: "clerk", Email: "clerk@pharmacy.com", PasswordHash: "x", Role: "user", IsActive: true, IsApproved: true}
	require.NoError(t, db.Create(&clerk).Error)
	med := seedControllerMedication(t, db, "Aspirin", "5.00", 10)
	require.NoError(t, db.Create(&models.Customer{Name: "Alice"}).Error)
	sale := models.SaleTransaction{TransactionID: "TXN-20260101000000-AAAAAAAA", UserID: clerk.ID, PaymentMethod: "cash", PaymentStatus: "completed"}
	require.NoError(t, db.Create(&sale).Error)
	require.NoError(t, db.Create(&models.SaleItem{SaleID: sale.ID, MedicationID: med.ID, Quantity: 1}).Error)
}

func tableCount(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestDeleteDatabaseRequiresConfirmationPhrase(t *testing.T) {
	r, db := setupAdminRouter(t)
	seedWipeFixture(t, db)

	w := doJSON(r, http.MethodDelete, "/admin/database", `{"confirmation": "yes please"}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// nothing was touched
	assert.Equal(t, int64(1), tableCount(t, db, &models.Medication{}))
	assert.Equal(t, int64(1), tableCount(t, db, &models.SaleTransaction{}))
	assert.Equal(t, int64(2), tableCount(t, db, &models.User{}))
}

func TestDeleteDatabaseWipesEverythingButAdmin(t *testing.T) {
	r, db := setupAdminRouter(t)
	seedWipeFixture(t, db)

	w := doJSON(r, http.MethodDelete, "/admin/database", `{"confirmation": " Delete Everything "}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, int64(0), tableCount(t, db, &models.SaleItem{}))
	assert.Equal(t, int64(0), tableCount(t, db, &models.SaleTransaction{}))
	assert.Equal(t, int64(0), tableCount(t, db, &models.Medication{}))
	assert.Equal(t, int64(0), tableCount(t, db, &models.Customer{}))

	var remaining []models.User
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "admin", remaining[0].Username)
}
