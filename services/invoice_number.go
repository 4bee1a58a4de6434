package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"payoutdesk/models"
)

const (
	InvoiceSequence   = "invoice_number_seq"
	invoiceCounterKey = "invoice"
)

// NumberAllocator hands out invoice numbers. Every call returns a number
// that has not been returned before; concurrent callers are serialised by
// the database.
type NumberAllocator interface {
	Next(ctx context.Context) (string, error)
}

func formatInvoiceNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s%06d", prefix, n)
}

// SequenceAllocator draws numbers from a PostgreSQL sequence.
type SequenceAllocator struct {
	DB       *gorm.DB
	Prefix   string
	Sequence string
}

func NewSequenceAllocator(db *gorm.DB, prefix string) *SequenceAllocator {
	return &SequenceAllocator{DB: db, Prefix: prefix, Sequence: InvoiceSequence}
}

func (a *SequenceAllocator) Next(ctx context.Context) (string, error) {
	var n int64
	if err := a.DB.WithContext(ctx).Raw("SELECT nextval(?)", a.Sequence).Scan(&n).Error; err != nil {
		return "", err
	}
	return formatInvoiceNumber(a.Prefix, n), nil
}

// CounterAllocator keeps the last issued number in the invoice_counters
// table. It works on any database GORM supports.
type CounterAllocator struct {
	DB     *gorm.DB
	Prefix string
}

func NewCounterAllocator(db *gorm.DB, prefix string) *CounterAllocator {
	return &CounterAllocator{DB: db, Prefix: prefix}
}

func (a *CounterAllocator) Next(ctx context.Context) (string, error) {
	var next int64
	err := a.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter := models.InvoiceCounter{Name: invoiceCounterKey}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			FirstOrCreate(&counter, models.InvoiceCounter{Name: invoiceCounterKey}).Error; err != nil {
			return err
		}

		next = counter.Value + 1
		res := tx.Model(&models.InvoiceCounter{}).
			Where("name = ? AND value = ?", invoiceCounterKey, counter.Value).
			Update("value", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("invoice counter moved from %d during allocation", counter.Value)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return formatInvoiceNumber(a.Prefix, next), nil
}
