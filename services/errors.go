package services

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound        = errors.New("client not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrAlreadyInvoiced       = errors.New("transaction already has an invoice")
	ErrClientHasTransactions = errors.New("client has transactions")
	ErrNumberAllocation      = errors.New("invoice number allocation failed")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
