package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"payoutdesk/finance"
	"payoutdesk/models"
)

const transactionDateLayout = "2006-01-02"

type ClientInput struct {
	Name                    string                  `json:"name"`
	Phone                   *string                 `json:"phone"`
	CommissionPercentage    decimal.Decimal         `json:"commission_percentage"`
	PreferredPayoutCurrency string                  `json:"preferred_payout_currency"`
	BankAccounts            []models.BankAccount    `json:"bank_account"`
	PlatformDetails         []models.PlatformDetail `json:"platform_details"`
}

// BuildClient validates input and normalises it into a client row. Bank
// accounts and platforms keep the ids they were submitted with; new entries
// get fresh ones.
func BuildClient(in ClientInput) (models.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Client{}, invalid("name", "is required")
	}

	if !finance.ValidPercentage(in.CommissionPercentage) {
		return models.Client{}, invalid("commission_percentage", "must be between 0 and 100, got %s", in.CommissionPercentage)
	}
	if !in.CommissionPercentage.Equal(finance.Round2(in.CommissionPercentage)) {
		return models.Client{}, invalid("commission_percentage", "must have at most 2 decimal places, got %s", in.CommissionPercentage)
	}

	currency, ok := models.ParseCurrency(in.PreferredPayoutCurrency)
	if !ok {
		return models.Client{}, invalid("preferred_payout_currency", "must be THB or MMK, got %q", in.PreferredPayoutCurrency)
	}

	seen := map[string]bool{}

	accounts := make([]models.BankAccount, 0, len(in.BankAccounts))
	for i, acc := range in.BankAccounts {
		acc.BankName = strings.TrimSpace(acc.BankName)
		acc.AccountNumber = strings.TrimSpace(acc.AccountNumber)
		acc.AccountName = strings.TrimSpace(acc.AccountName)
		if !acc.Complete() {
			return models.Client{}, invalid("bank_account", "entry %d needs bank_name, account_number and account_name", i)
		}
		acc.ID = entryID(acc.ID, seen)
		accounts = append(accounts, acc)
	}

	platforms := make([]models.PlatformDetail, 0, len(in.PlatformDetails))
	for i, p := range in.PlatformDetails {
		p.PlatformName = strings.TrimSpace(p.PlatformName)
		if p.PlatformName == "" {
			return models.Client{}, invalid("platform_details", "entry %d needs platform_name", i)
		}
		if strings.EqualFold(p.PlatformName, models.SourcePlatformOther) {
			return models.Client{}, invalid("platform_details", "entry %d uses the reserved name %q", i, models.SourcePlatformOther)
		}
		p.PayoutID = trimmed(p.PayoutID)
		p.ID = entryID(p.ID, seen)
		platforms = append(platforms, p)
	}

	return models.Client{
		Name:                    name,
		Phone:                   trimmed(in.Phone),
		CommissionPercentage:    in.CommissionPercentage,
		PreferredPayoutCurrency: currency,
		BankAccounts:            datatypes.NewJSONSlice(accounts),
		PlatformDetails:         datatypes.NewJSONSlice(platforms),
	}, nil
}

type TransactionInput struct {
	ClientID          uint                `json:"client_id"`
	IncomingAmountTHB decimal.Decimal     `json:"incoming_amount_thb"`
	OriginalAmountUSD decimal.NullDecimal `json:"original_amount_usd"`
	Fees              decimal.NullDecimal `json:"fees"`
	ExchangeRateMMK   decimal.Decimal     `json:"exchange_rate_mmk"`
	TransactionDate   string              `json:"transaction_date"`
	Notes             *string             `json:"notes"`

	// Bank account selection: a stable id, or a position in the client's list.
	BankAccountID    string `json:"bank_account_id"`
	BankAccountIndex *int   `json:"bank_account_index"`

	// Platform selection: a platform id or "Other", or a position.
	Platform      string `json:"platform"`
	PlatformIndex *int   `json:"platform_index"`
}

// BuildTransaction resolves selections against the client's current lists
// and computes the payout with the client's current settings. today is used
// when no transaction date is given.
func BuildTransaction(clients []models.Client, in TransactionInput, today time.Time) (models.Transaction, error) {
	client := findClient(clients, in.ClientID)
	if client == nil {
		return models.Transaction{}, ErrClientNotFound
	}

	if in.IncomingAmountTHB.IsNegative() {
		return models.Transaction{}, invalid("incoming_amount_thb", "must not be negative")
	}
	if in.OriginalAmountUSD.Valid && in.OriginalAmountUSD.Decimal.IsNegative() {
		return models.Transaction{}, invalid("original_amount_usd", "must not be negative")
	}
	if in.ExchangeRateMMK.IsNegative() {
		return models.Transaction{}, invalid("exchange_rate_mmk", "must not be negative")
	}
	fees := decimal.Zero
	if in.Fees.Valid {
		if in.Fees.Decimal.IsNegative() {
			return models.Transaction{}, invalid("fees", "must not be negative")
		}
		fees = finance.Round2(in.Fees.Decimal)
	}

	date := today
	if strings.TrimSpace(in.TransactionDate) != "" {
		parsed, err := time.Parse(transactionDateLayout, strings.TrimSpace(in.TransactionDate))
		if err != nil {
			return models.Transaction{}, invalid("transaction_date", "expected YYYY-MM-DD")
		}
		date = parsed
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	destination, err := selectBankAccount(client, in)
	if err != nil {
		return models.Transaction{}, err
	}

	platform, payoutID, err := selectPlatform(client, in)
	if err != nil {
		return models.Transaction{}, err
	}

	payout := finance.TransactionPayout(in.IncomingAmountTHB, client.CommissionPercentage, client.PreferredPayoutCurrency, in.ExchangeRateMMK)

	tx := models.Transaction{
		ClientID:               client.ID,
		IncomingAmountTHB:      finance.Round2(in.IncomingAmountTHB),
		Fees:                   fees,
		ExchangeRateMMK:        in.ExchangeRateMMK,
		PayoutCurrency:         payout.Currency,
		PayoutAmount:           payout.Amount,
		TransactionDate:        date,
		Notes:                  trimmed(in.Notes),
		SourcePlatform:         platform,
		SourcePlatformPayoutID: payoutID,
		PaymentDestination:     datatypes.NewJSONType(destination),
	}
	if in.OriginalAmountUSD.Valid {
		tx.OriginalAmountUSD = decimal.NewNullDecimal(finance.Round2(in.OriginalAmountUSD.Decimal))
	}
	return tx, nil
}

func findClient(clients []models.Client, id uint) *models.Client {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i]
		}
	}
	return nil
}

// selectBankAccount returns a copy of the chosen account, or nil when none
// was chosen.
func selectBankAccount(client *models.Client, in TransactionInput) (*models.BankAccount, error) {
	if id := strings.TrimSpace(in.BankAccountID); id != "" {
		for _, acc := range client.BankAccounts {
			if acc.ID == id {
				return &acc, nil
			}
		}
		return nil, invalid("bank_account_id", "client has no bank account %q", id)
	}

	if in.BankAccountIndex != nil {
		i := *in.BankAccountIndex
		if i < 0 || i >= len(client.BankAccounts) {
			return nil, invalid("bank_account_index", "%d is out of range", i)
		}
		acc := client.BankAccounts[i]
		return &acc, nil
	}
	return nil, nil
}

func selectPlatform(client *models.Client, in TransactionInput) (*string, *string, error) {
	sel := strings.TrimSpace(in.Platform)

	if strings.EqualFold(sel, models.SourcePlatformOther) {
		other := models.SourcePlatformOther
		return &other, nil, nil
	}

	var chosen *models.PlatformDetail
	switch {
	case sel != "":
		for i := range client.PlatformDetails {
			if client.PlatformDetails[i].ID == sel {
				chosen = &client.PlatformDetails[i]
				break
			}
		}
		if chosen == nil {
			return nil, nil, invalid("platform", "client has no platform %q", sel)
		}
	case in.PlatformIndex != nil:
		i := *in.PlatformIndex
		if i < 0 || i >= len(client.PlatformDetails) {
			return nil, nil, invalid("platform_index", "%d is out of range", i)
		}
		chosen = &client.PlatformDetails[i]
	default:
		return nil, nil, nil
	}

	name := chosen.PlatformName
	return &name, copyString(chosen.PayoutID), nil
}

func entryID(id string, seen map[string]bool) string {
	id = strings.TrimSpace(id)
	if id == "" || seen[id] {
		id = uuid.NewString()
	}
	seen[id] = true
	return id
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func copyString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
