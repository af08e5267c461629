package seeders

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/utils/log"
)

func strPtr(s string) *string {
	return &s
}

func decPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// Seed creates the bootstrap admin and a starter inventory on first
// run. Existing records are left alone.
func Seed() {
	db := config.DB

	var adminCount int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&models.User{
				Username:     "admin",
				Email:        "admin@pharmacy.com",
				PasswordHash: string(hash),
				Role:         "admin",
				IsActive:     true,
				IsApproved:   true,
			})
			log.L().Info("admin user created", zap.String("username", "admin"))
		}
	}

	medications := []models.Medication{
		{Name: "Aspirin", GenericName: strPtr("Acetylsalicylic acid"), Manufacturer: strPtr("Bayer"), Price: decimal.NewFromFloat(5.99), CostPrice: decPtr(decimal.NewFromFloat(3.50)), StockQuantity: 100, ExpiryDate: datePtr(2027, time.December, 31), Category: strPtr("Pain Relief"), Barcode: strPtr("1234567890123")},
		{Name: "Paracetamol", GenericName: strPtr("Acetaminophen"), Manufacturer: strPtr("GSK"), Price: decimal.NewFromFloat(4.50), CostPrice: decPtr(decimal.NewFromFloat(2.80)), StockQuantity: 50, ExpiryDate: datePtr(2028, time.June, 30), Category: strPtr("Pain Relief"), Barcode: strPtr("2345678901234")},
		{Name: "Ibuprofen", GenericName: strPtr("Ibuprofen"), Manufacturer: strPtr("Advil"), Price: decimal.NewFromFloat(6.25), CostPrice: decPtr(decimal.NewFromFloat(4.00)), StockQuantity: 75, ExpiryDate: datePtr(2027, time.October, 15), Category: strPtr("Pain Relief"), Barcode: strPtr("3456789012345")},
		{Name: "Amoxicillin 500mg", GenericName: strPtr("Amoxicillin"), Manufacturer: strPtr("Sandoz"), Price: decimal.NewFromFloat(12.80), CostPrice: decPtr(decimal.NewFromFloat(8.20)), StockQuantity: 40, ExpiryDate: datePtr(2027, time.March, 1), Category: strPtr("Antibiotics"), Barcode: strPtr("4567890123456")},
		{Name: "Cetirizine 10mg", GenericName: strPtr("Cetirizine"), Manufacturer: strPtr("Teva"), Price: decimal.NewFromFloat(7.40), CostPrice: decPtr(decimal.NewFromFloat(4.60)), StockQuantity: 120, ExpiryDate: datePtr(2028, time.January, 20), Category: strPtr("Allergy"), Barcode: strPtr("5678901234567")},
		{Name: "Omeprazole 20mg", GenericName: strPtr("Omeprazole"), Manufacturer: strPtr("AstraZeneca"), Price: decimal.NewFromFloat(9.95), CostPrice: decPtr(decimal.NewFromFloat(6.10)), StockQuantity: 60, ExpiryDate: datePtr(2027, time.August, 5), Category: strPtr("Gastrointestinal"), Barcode: strPtr("6789012345678")},
	}
	for _, med := range medications {
		db.FirstOrCreate(&med, models.Medication{Name: med.Name})
	}

	customers := []models.Customer{
		{Name: "Walk-in Counter", Phone: strPtr("000")},
		{Name: "Daw Mya Mya", Phone: strPtr("09421234567"), Email: strPtr("myamya@example.com")},
		{Name: "U Kyaw Min", Phone: strPtr("09797654321")},
	}
	for _, customer := range customers {
		db.FirstOrCreate(&customer, models.Customer{Name: customer.Name})
	}
}
