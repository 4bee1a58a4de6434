package services

import (
	"context"

	"payoutdesk/models"
)

func (s *Service) CreateClient(ctx context.Context, owner string, in ClientInput) (*models.Client, error) {
	client, err := BuildClient(in)
	if err != nil {
		return nil, err
	}
	client.Owner = owner

	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		s.log.Error().Err(err).Str("name", client.Name).Msg("Failed to create client")
		return nil, err
	}

	s.log.Info().
		Uint("client_id", client.ID).
		Str("currency", string(client.PreferredPayoutCurrency)).
		Str("commission", client.CommissionPercentage.String()).
		Msg("Client created")
	return &client, nil
}

func (s *Service) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&clients).Error
	return clients, err
}

func (s *Service) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	return &client, nil
}

// UpdateClient replaces the client's settings and both embedded lists.
// Existing transactions keep their own frozen copies.
func (s *Service) UpdateClient(ctx context.Context, id uint, in ClientInput) (*models.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	built, err := BuildClient(in)
	if err != nil {
		return nil, err
	}

	before := client.CommissionPercentage
	client.Name = built.Name
	client.Phone = built.Phone
	client.CommissionPercentage = built.CommissionPercentage
	client.PreferredPayoutCurrency = built.PreferredPayoutCurrency
	client.BankAccounts = built.BankAccounts
	client.PlatformDetails = built.PlatformDetails

	if err := s.db.WithContext(ctx).Save(client).Error; err != nil {
		s.log.Error().Err(err).Uint("client_id", id).Msg("Failed to update client")
		return nil, err
	}

	if !before.Equal(client.CommissionPercentage) {
		s.log.Info().
			Uint("client_id", id).
			Str("from", before.String()).
			Str("to", client.CommissionPercentage.String()).
			Msg("Commission rate changed; future invoices use the new rate")
	}
	return client, nil
}

func (s *Service) DeleteClient(ctx context.Context, id uint) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("client_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrClientHasTransactions
	}

	return s.db.WithContext(ctx).Delete(&models.Client{}, id).Error
}
