package dtos

import "github.com/shopspring/decimal"

type MedicationInput struct {
	Name          string           `json:"name" binding:"required"`
	GenericName   *string          `json:"generic_name"`
	Manufacturer  *string          `json:"manufacturer"`
	Price         decimal.Decimal  `json:"price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	StockQuantity int              `json:"stock_quantity"`
	ExpiryDate    *string          `json:"expiry_date"` // YYYY-MM-DD
	Category      *string          `json:"category"`
	Barcode       *string          `json:"barcode"`
}

type CustomerInput struct {
	Name    string  `json:"name" binding:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

type InventoryFilter struct {
	Filter string `form:"filter"`
	Query  string `form:"q"`
}
