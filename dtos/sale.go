package dtos

import "github.com/shopspring/decimal"

// SaleItemInput uses pointers so a missing field can be told apart from
// a zero value when the cart arrives as JSON.
type SaleItemInput struct {
	MedicationID uint             `json:"medication_id"`
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
}

type ProcessSaleInput struct {
	Items         []SaleItemInput `json:"items"`
	CustomerID    *uint           `json:"customer_id"`
	UserID        uint            `json:"-"`
	PaymentMethod string          `json:"payment_method"`
	Discount      decimal.Decimal `json:"discount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         *string         `json:"notes"`
}
