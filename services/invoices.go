package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"payoutdesk/finance"
	"payoutdesk/metrics"
	"payoutdesk/models"
	"payoutdesk/render"
)

// CreateInvoice generates the invoice for one uninvoiced transaction. The
// commission is recomputed from the client's rate at this moment, which may
// differ from the rate the transaction's payout was computed with. If no
// invoice number can be allocated nothing is written.
func (s *Service) CreateInvoice(ctx context.Context, transactionID uint) (*models.Invoice, error) {
	db := s.db.WithContext(ctx)

	var tx models.Transaction
	if err := db.First(&tx, transactionID).Error; err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}

	var client models.Client
	if err := db.First(&client, tx.ClientID).Error; err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}

	var existing int64
	if err := db.Model(&models.Invoice{}).Where("transaction_id = ?", tx.ID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyInvoiced
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		metrics.InvoiceNumberFailures.Inc()
		s.log.Error().Err(err).Uint("transaction_id", tx.ID).Msg("Invoice number allocation failed")
		return nil, fmt.Errorf("%w: %v", ErrNumberAllocation, err)
	}

	amounts := finance.ComputeInvoiceAmounts(tx.IncomingAmountTHB, client.CommissionPercentage, tx.Fees)
	invoice := models.Invoice{
		ClientID:             client.ID,
		TransactionID:        tx.ID,
		InvoiceNumber:        number,
		TotalAmount:          amounts.Total,
		CommissionPercentage: client.CommissionPercentage,
		CommissionAmount:     amounts.Commission,
		NetAmount:            amounts.Net,
	}

	if err := db.Create(&invoice).Error; err != nil {
		s.log.Error().Err(err).Str("invoice_number", number).Msg("Failed to create invoice")
		return nil, err
	}

	metrics.InvoicesCreated.Inc()
	s.log.Info().
		Uint("invoice_id", invoice.ID).
		Str("invoice_number", number).
		Uint("transaction_id", tx.ID).
		Str("commission", amounts.Commission.StringFixed(2)).
		Str("net", amounts.Net.StringFixed(2)).
		Msg("Invoice created")
	return &invoice, nil
}

// ListInvoices returns newest first. clientID 0 lists every client.
func (s *Service) ListInvoices(ctx context.Context, clientID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.scopeClient(s.db.WithContext(ctx), "invoices", clientID).
		Preload("Client", unscoped).
		Preload("Transaction", unscoped).
		Order("invoices.created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (s *Service) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.findInvoice(ctx, "invoices.id = ?", id)
}

func (s *Service) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return s.findInvoice(ctx, "invoices.invoice_number = ?", number)
}

func (s *Service) findInvoice(ctx context.Context, query string, arg any) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Client", unscoped).
		Preload("Transaction", unscoped).
		Where(query, arg).
		First(&invoice).Error
	if err != nil {
		return nil, notFound(err, ErrInvoiceNotFound)
	}
	if invoice.Client == nil {
		return nil, ErrClientNotFound
	}
	if invoice.Transaction == nil {
		return nil, ErrTransactionNotFound
	}
	return &invoice, nil
}

// DeleteInvoice removes an invoice; its transaction becomes eligible again.
// The number is not reused.
func (s *Service) DeleteInvoice(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func Snapshot(invoice *models.Invoice) render.Snapshot {
	return render.Snapshot{
		Invoice:     *invoice,
		Transaction: *invoice.Transaction,
		Client:      *invoice.Client,
	}
}

// Preview builds the document view without drawing it.
func (s *Service) Preview(ctx context.Context, id uint) (render.View, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return render.View{}, err
	}
	return render.BuildView(Snapshot(invoice), s.brand), nil
}

// Export renders a stored invoice. It only reads, so it is safe to repeat.
func (s *Service) Export(ctx context.Context, id uint, format string) (*render.Document, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderInvoice(invoice, format)
}

func (s *Service) ExportByNumber(ctx context.Context, number, format string) (*render.Document, error) {
	invoice, err := s.GetInvoiceByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.renderInvoice(invoice, format)
}

// ExportTo renders the invoice with the given number and hands the
// document to sink.
func (s *Service) ExportTo(ctx context.Context, number, format string, sink render.Sink) (*render.Document, error) {
	doc, err := s.ExportByNumber(ctx, number, format)
	if err != nil {
		return nil, err
	}
	if err := sink.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", doc.Name, err)
	}
	return doc, nil
}

func (s *Service) renderInvoice(invoice *models.Invoice, format string) (*render.Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	start := time.Now()
	doc, err := render.Produce(format, render.BuildView(Snapshot(invoice), s.brand))
	metrics.RenderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.DocumentsRendered.WithLabelValues(format, "error").Inc()
		s.log.Error().
			Err(err).
			Str("invoice_number", invoice.InvoiceNumber).
			Str("format", format).
			Msg("Failed to render invoice")
		return nil, err
	}

	metrics.DocumentsRendered.WithLabelValues(format, "ok").Inc()
	s.log.Debug().
		Str("invoice_number", invoice.InvoiceNumber).
		Str("format", format).
		Int("bytes", len(doc.Data)).
		Msg("Invoice rendered")
	return doc, nil
}
