package dtos

import (
	"time"

	"github.com/JohnFrp/pharmacy-pos/models"
)

// BackupUser carries the password hash, which the User model hides from
// API responses; a restored account must keep its credentials.
type BackupUser struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// BackupDocument is the JSON backup/restore payload. Record ids are
// included so the restore can remap foreign keys to freshly assigned
// primary keys.
type BackupDocument struct {
	Users            []BackupUser             `json:"users"`
	Medications      []models.Medication      `json:"medications"`
	Customers        []models.Customer        `json:"customers"`
	SaleTransactions []models.SaleTransaction `json:"sale_transactions"`
	SaleItems        []models.SaleItem        `json:"sale_items"`
}
