package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleTransaction struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	TransactionID  string          `gorm:"size:100;uniqueIndex;not null" json:"transaction_id"`
	CustomerID     *uint           `json:"customer_id,omitempty"`
	Customer       *Customer       `json:"customer,omitempty"`
	UserID         uint            `gorm:"not null" json:"user_id"`
	User           User            `json:"user"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	PaymentMethod  string          `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus  string          `gorm:"size:20;not null;default:'completed'" json:"payment_status"`
	SaleDate       time.Time       `gorm:"autoCreateTime" json:"sale_date"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`

	// Items are owned by the transaction: deleting the header deletes them.
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

type SaleItem struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	SaleID       uint `gorm:"not null;index" json:"sale_id"`
	MedicationID uint `gorm:"not null;index" json:"medication_id"`
	Medication   Medication `json:"medication"`
	Quantity     int        `gorm:"not null" json:"quantity"`

	// UnitPrice is the price charged at sale time. It is a snapshot and
	// must never be recomputed from the medication's current price.
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
}
