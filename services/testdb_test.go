package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JohnFrp/pharmacy-pos/models"
)

// openTestDB opens an isolated in-memory database per test. A single
// connection keeps concurrent transactions serialized the same way the
// production store serializes the guarded stock update.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Username:     "cashier1",
		Email:        "cashier1@pharmacy.com",
		PasswordHash: "x",
		Role:         "user",
		IsActive:     true,
		IsApproved:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedMedication(t *testing.T, db *gorm.DB, name string, price string, cost string, stock int) models.Medication {
	t.Helper()
	med := models.Medication{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	if cost != "" {
		c := decimal.RequireFromString(cost)
		med.CostPrice = &c
	}
	require.NoError(t, db.Create(&med).Error)
	return med
}

func intPtr(v int) *int {
	return &v
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
