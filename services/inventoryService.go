package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JohnFrp/pharmacy-pos/models"
)

const (
	LowStockThreshold = 10
	ExpiringSoonDays  = 30
)

// InventoryService holds the read-side medication queries. Every query
// excludes soft-deleted records; history views resolve them through the
// sale item preloads instead.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

func (s *InventoryService) active() *gorm.DB {
	return s.db.Model(&models.Medication{}).Where("deleted = ?", false)
}

func (s *InventoryService) GetMedication(id uint) (*models.Medication, error) {
	var med models.Medication
	if err := s.db.Where("id = ? AND deleted = ?", id, false).First(&med).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "medication", ID: id}
		}
		return nil, err
	}
	return &med, nil
}

func (s *InventoryService) ListMedications(filter string) ([]models.Medication, error) {
	switch filter {
	case "low_stock":
		return s.LowStock(LowStockThreshold)
	case "expired":
		return s.Expired()
	case "expiring_soon":
		return s.ExpiringSoon(ExpiringSoonDays)
	default:
		var meds []models.Medication
		err := s.active().Order("name").Find(&meds).Error
		return meds, err
	}
}

func (s *InventoryService) LowStock(threshold int) ([]models.Medication, error) {
	var meds []models.Medication
	err := s.active().Where("stock_quantity <= ?", threshold).Order("name").Find(&meds).Error
	return meds, err
}

func (s *InventoryService) Expired() ([]models.Medication, error) {
	var meds []models.Medication
	err := s.active().
		Where("expiry_date IS NOT NULL AND expiry_date < ?", today()).
		Order("name").Find(&meds).Error
	return meds, err
}

func (s *InventoryService) ExpiringSoon(days int) ([]models.Medication, error) {
	var meds []models.Medication
	start := today()
	end := start.AddDate(0, 0, days)
	err := s.active().
		Where("expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?", start, end).
		Order("name").Find(&meds).Error
	return meds, err
}

// Search matches a case-insensitive substring against name, generic
// name and category, or the barcode exactly.
func (s *InventoryService) Search(term string) ([]models.Medication, error) {
	var meds []models.Medication
	pattern := "%" + term + "%"
	err := s.active().
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(generic_name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?) OR barcode = ?",
			pattern, pattern, pattern, term).
		Order("name").Find(&meds).Error
	return meds, err
}

// InStock lists sellable medications for the till.
func (s *InventoryService) InStock() ([]models.Medication, error) {
	var meds []models.Medication
	err := s.active().Where("stock_quantity > 0").Order("name").Find(&meds).Error
	return meds, err
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
