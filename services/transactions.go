package services

import (
	"context"

	"gorm.io/gorm"

	"payoutdesk/metrics"
	"payoutdesk/models"
)

func (s *Service) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, in.ClientID).Error; err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}

	tx, err := BuildTransaction([]models.Client{client}, in, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if tx.PayoutCurrency == models.CurrencyMMK && !tx.ExchangeRateMMK.IsPositive() {
		s.log.Warn().
			Uint("client_id", client.ID).
			Msg("MMK transaction recorded without an exchange rate; payout amount is zero")
	}

	if err := s.db.WithContext(ctx).Create(&tx).Error; err != nil {
		s.log.Error().Err(err).Uint("client_id", client.ID).Msg("Failed to create transaction")
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(string(tx.PayoutCurrency)).Inc()
	s.log.Info().
		Uint("transaction_id", tx.ID).
		Uint("client_id", client.ID).
		Str("incoming_thb", tx.IncomingAmountTHB.StringFixed(2)).
		Str("payout", tx.PayoutAmount.StringFixed(2)).
		Str("currency", string(tx.PayoutCurrency)).
		Msg("Transaction recorded")
	return &tx, nil
}

// ListTransactions returns newest first. clientID 0 lists every client.
func (s *Service) ListTransactions(ctx context.Context, clientID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.scopeClient(s.db.WithContext(ctx), "transactions", clientID).
		Preload("Invoice").
		Order("transactions.created_at DESC").
		Find(&txs).Error
	return txs, err
}

// EligibleTransactions lists transactions that have no invoice yet.
func (s *Service) EligibleTransactions(ctx context.Context, clientID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.scopeClient(s.db.WithContext(ctx), "transactions", clientID).
		Where("NOT EXISTS (SELECT 1 FROM invoices WHERE invoices.transaction_id = transactions.id AND invoices.deleted_at IS NULL)").
		Preload("Client", unscoped).
		Order("transactions.created_at DESC").
		Find(&txs).Error
	return txs, err
}

func (s *Service) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.WithContext(ctx).
		Preload("Client", unscoped).
		Preload("Invoice").
		First(&tx, id).Error
	if err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction that has not been invoiced.
func (s *Service) DeleteTransaction(ctx context.Context, id uint) error {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if tx.Invoice != nil {
		return ErrAlreadyInvoiced
	}
	return s.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

func (s *Service) scopeClient(db *gorm.DB, table string, clientID uint) *gorm.DB {
	if clientID == 0 {
		return db
	}
	return db.Where(table+".client_id = ?", clientID)
}
