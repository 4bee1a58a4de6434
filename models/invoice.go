package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Invoice struct {
	gorm.Model

	ClientID      uint         `gorm:"index;not null" json:"client_id"`
	Client        *Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	TransactionID uint         `gorm:"index;not null" json:"transaction_id"`
	Transaction   *Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`

	InvoiceNumber string `gorm:"size:32;uniqueIndex;not null" json:"invoice_number"`

	TotalAmount          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	CommissionPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"commission_percentage"`
	CommissionAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"commission_amount"`
	NetAmount            decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"net_amount"`
}

// InvoiceCounter backs the portable invoice number allocator.
type InvoiceCounter struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int64  `gorm:"not null;default:0"`
}
