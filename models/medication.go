package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medication is never hard-deleted once a sale item references it; the
// Deleted flag hides it from inventory-facing queries while keeping
// historical line items resolvable.
type Medication struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	GenericName   *string          `gorm:"size:255" json:"generic_name,omitempty"`
	Manufacturer  *string          `gorm:"size:255" json:"manufacturer,omitempty"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	CostPrice     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_price,omitempty"`
	StockQuantity int              `gorm:"not null;default:0" json:"stock_quantity"`
	ExpiryDate    *time.Time       `gorm:"type:date" json:"expiry_date,omitempty"`
	Category      *string          `gorm:"size:100" json:"category,omitempty"`
	Barcode       *string          `gorm:"size:100;uniqueIndex" json:"barcode,omitempty"`
	Deleted       bool             `gorm:"not null;default:false" json:"deleted"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
