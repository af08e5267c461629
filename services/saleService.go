package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/utils/log"
)

// SaleService processes sale transactions: it validates the cart,
// computes the monetary totals, and persists the transaction header,
// its line items, and the stock decrements as one atomic unit.
type SaleService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSaleService(db *gorm.DB, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = log.L()
	}
	return &SaleService{db: db, logger: logger}
}

// ProcessSale runs one sale end to end. The cart's unit_price is the
// price charged: it is a snapshot taken by the till and is never
// re-read from the medication record. On any failure the whole sale is
// rolled back; a partial sale is never observable.
func (s *SaleService) ProcessSale(input dtos.ProcessSaleInput) (*models.SaleTransaction, error) {
	if err := validateCart(input); err != nil {
		return nil, err
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	// Unit prices and the discount are normalized to currency precision
	// before any arithmetic, so every line total is exactly quantity x
	// unit price and the stored amounts reconcile exactly.
	subtotal := decimal.Zero
	for _, item := range input.Items {
		line := item.UnitPrice.Round(2).Mul(decimal.NewFromInt(int64(*item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	discount := input.Discount.Round(2)
	taxAmount := subtotal.Mul(input.TaxRate).Round(2)
	totalAmount := subtotal.Add(taxAmount).Sub(discount)

	sale := &models.SaleTransaction{
		TransactionID:  generateTransactionID(time.Now()),
		CustomerID:     input.CustomerID,
		UserID:         input.UserID,
		TotalAmount:    totalAmount,
		TaxAmount:      taxAmount,
		DiscountAmount: discount,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  "completed",
		Notes:          input.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.CustomerID != nil {
			var customer models.Customer
			if err := tx.First(&customer, *input.CustomerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "customer", ID: *input.CustomerID}
				}
				return err
			}
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			if err := s.addLineItem(tx, sale, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("sale aborted",
			zap.String("transaction_id", sale.TransactionID),
			zap.Error(err))
		return nil, err
	}

	if err := s.db.Preload("Items.Medication").Preload("Customer").Preload("User").
		First(sale, sale.ID).Error; err != nil {
		return nil, err
	}

	s.logger.Info("sale completed",
		zap.String("transaction_id", sale.TransactionID),
		zap.Int("items", len(sale.Items)),
		zap.String("total", sale.TotalAmount.StringFixed(2)))

	return sale, nil
}

// addLineItem resolves the medication, records the line, and decrements
// stock with a guarded conditional update. The guard is the explicit
// check-and-decrement: if a concurrent sale drained the stock after our
// read, zero rows are affected and the whole sale aborts.
func (s *SaleService) addLineItem(tx *gorm.DB, sale *models.SaleTransaction, item dtos.SaleItemInput) error {
	var med models.Medication
	if err := tx.Where("id = ? AND deleted = ?", item.MedicationID, false).
		First(&med).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "medication", ID: item.MedicationID}
		}
		return err
	}

	qty := *item.Quantity
	if med.StockQuantity < qty {
		return &InsufficientStockError{
			MedicationName: med.Name,
			Available:      med.StockQuantity,
			Requested:      qty,
		}
	}

	unitPrice := item.UnitPrice.Round(2)
	saleItem := models.SaleItem{
		SaleID:       sale.ID,
		MedicationID: med.ID,
		Quantity:     qty,
		UnitPrice:    unitPrice,
		TotalPrice:   unitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}
	if err := tx.Create(&saleItem).Error; err != nil {
		return err
	}

	res := tx.Model(&models.Medication{}).
		Where("id = ? AND stock_quantity >= ?", med.ID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current models.Medication
		if err := tx.First(&current, med.ID).Error; err == nil {
			med = current
		}
		return &InsufficientStockError{
			MedicationName: med.Name,
			Available:      med.StockQuantity,
			Requested:      qty,
		}
	}
	return nil
}

// GetSale returns one transaction with its items, customer and cashier
// resolved, for receipts and transaction detail views.
func (s *SaleService) GetSale(id uint) (*models.SaleTransaction, error) {
	var sale models.SaleTransaction
	err := s.db.Preload("Items.Medication").Preload("Customer").Preload("User").
		First(&sale, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "sale", ID: id}
		}
		return nil, err
	}
	return &sale, nil
}

func validateCart(input dtos.ProcessSaleInput) error {
	if len(input.Items) == 0 {
		return &ValidationError{Message: "no items in cart"}
	}
	for i, item := range input.Items {
		if item.MedicationID == 0 {
			return &ValidationError{Message: fmt.Sprintf("item %d is missing medication_id", i+1)}
		}
		if item.Quantity == nil {
			return &ValidationError{Message: fmt.Sprintf("item %d is missing quantity", i+1)}
		}
		if *item.Quantity <= 0 {
			return &ValidationError{Message: fmt.Sprintf("item %d has invalid quantity", i+1)}
		}
		if item.UnitPrice == nil {
			return &ValidationError{Message: fmt.Sprintf("item %d is missing unit_price", i+1)}
		}
		if item.UnitPrice.IsNegative() {
			return &ValidationError{Message: fmt.Sprintf("item %d has negative unit_price", i+1)}
		}
	}
	if input.UserID == 0 {
		return &ValidationError{Message: "user_id is required"}
	}
	if input.Discount.IsNegative() {
		return &ValidationError{Message: "discount cannot be negative"}
	}
	if input.TaxRate.IsNegative() {
		return &ValidationError{Message: "tax_rate cannot be negative"}
	}
	return nil
}

// generateTransactionID builds the human-readable identifier. The
// second-resolution timestamp alone could collide under concurrent
// load, so a random suffix is appended.
func generateTransactionID(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102150405"), suffix)
}
