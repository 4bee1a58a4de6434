package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"payoutdesk/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func validClientInput() ClientInput {
	return ClientInput{
		Name:                    "  Aye Chan ",
		Phone:                   strPtr(" +95 9 555 0101 "),
		CommissionPercentage:    decimal.NewFromInt(10),
		PreferredPayoutCurrency: "mmk",
		BankAccounts: []models.BankAccount{
			{BankName: "KBZ Bank", AccountNumber: "0990-1234", AccountName: "Aye Chan"},
			{ID: "aya", BankName: "AYA Bank", AccountNumber: "2001-77", AccountName: "Aye Chan"},
		},
		PlatformDetails: []models.PlatformDetail{
			{ID: "yt", PlatformName: "YouTube", PayoutID: strPtr("YT-778")},
			{PlatformName: "TikTok"},
		},
	}
}

func TestBuildClient(t *testing.T) {
	client, err := BuildClient(validClientInput())
	require.NoError(t, err)

	assert.Equal(t, "Aye Chan", client.Name)
	assert.Equal(t, "+95 9 555 0101", *client.Phone)
	assert.Equal(t, models.CurrencyMMK, client.PreferredPayoutCurrency)

	require.Len(t, client.BankAccounts, 2)
	assert.NotEmpty(t, client.BankAccounts[0].ID)
	assert.Equal(t, "aya", client.BankAccounts[1].ID)

	require.Len(t, client.PlatformDetails, 2)
	assert.Equal(t, "yt", client.PlatformDetails[0].ID)
	assert.NotEmpty(t, client.PlatformDetails[1].ID)
	assert.Nil(t, client.PlatformDetails[1].PayoutID)
}

func TestBuildClientReplacesDuplicateIDs(t *testing.T) {
	in := validClientInput()
	in.BankAccounts[0].ID = "same"
	in.BankAccounts[1].ID = "same"

	client, err := BuildClient(in)
	require.NoError(t, err)
	assert.Equal(t, "same", client.BankAccounts[0].ID)
	assert.NotEqual(t, "same", client.BankAccounts[1].ID)
}

func TestBuildClientRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ClientInput)
		field  string
	}{
		{"blank name", func(in *ClientInput) { in.Name = "   " }, "name"},
		{"percentage above 100", func(in *ClientInput) { in.CommissionPercentage = dec("100.01") }, "commission_percentage"},
		{"negative percentage", func(in *ClientInput) { in.CommissionPercentage = dec("-1") }, "commission_percentage"},
		{"percentage with three decimals", func(in *ClientInput) { in.CommissionPercentage = dec("33.333") }, "commission_percentage"},
		{"unknown currency", func(in *ClientInput) { in.PreferredPayoutCurrency = "USD" }, "preferred_payout_currency"},
		{"incomplete bank account", func(in *ClientInput) { in.BankAccounts[0].AccountNumber = " " }, "bank_account"},
		{"unnamed platform", func(in *ClientInput) { in.PlatformDetails[1].PlatformName = "" }, "platform_details"},
		{"reserved platform", func(in *ClientInput) { in.PlatformDetails[1].PlatformName = "other" }, "platform_details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validClientInput()
			tt.modify(&in)

			_, err := BuildClient(in)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBuildClientAcceptsPercentages(t *testing.T) {
	for _, pct := range []string{"0", "100", "12.5", "33.33", "12.500"} {
		in := validClientInput()
		in.CommissionPercentage = dec(pct)
		_, err := BuildClient(in)
		assert.NoError(t, err, pct)
	}
}

func testClient() models.Client {
	client := models.Client{
		Name:                    "Aye Chan",
		CommissionPercentage:    decimal.NewFromInt(10),
		PreferredPayoutCurrency: models.CurrencyMMK,
		BankAccounts: datatypes.NewJSONSlice([]models.BankAccount{
			{ID: "b1", BankName: "KBZ Bank", AccountNumber: "0990-1234", AccountName: "Aye Chan"},
			{ID: "b2", BankName: "AYA Bank", AccountNumber: "2001-77", AccountName: "Aye Chan"},
		}),
		PlatformDetails: datatypes.NewJSONSlice([]models.PlatformDetail{
			{ID: "p1", PlatformName: "YouTube", PayoutID: strPtr("YT-778")},
			{ID: "p2", PlatformName: "TikTok"},
		}),
	}
	client.ID = 7
	return client
}

var today = time.Date(2026, 3, 14, 17, 45, 0, 0, time.UTC)

func TestBuildTransactionMMKPayout(t *testing.T) {
	tx, err := BuildTransaction([]models.Client{testClient()}, TransactionInput{
		ClientID:          7,
		IncomingAmountTHB: dec("1000"),
		ExchangeRateMMK:   dec("120"),
		TransactionDate:   "2026-03-10",
		BankAccountIndex:  intPtr(0),
		Platform:          "p1",
	}, today)
	require.NoError(t, err)

	assert.Equal(t, uint(7), tx.ClientID)
	assert.Equal(t, models.CurrencyMMK, tx.PayoutCurrency)
	assertDecimal(t, "108000.00", tx.PayoutAmount)
	assertDecimal(t, "0.00", tx.Fees)
	assert.False(t, tx.OriginalAmountUSD.Valid)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), tx.TransactionDate)

	require.NotNil(t, tx.SourcePlatform)
	assert.Equal(t, "YouTube", *tx.SourcePlatform)
	require.NotNil(t, tx.SourcePlatformPayoutID)
	assert.Equal(t, "YT-778", *tx.SourcePlatformPayoutID)

	dest := tx.Destination()
	require.NotNil(t, dest)
	assert.Equal(t, "KBZ Bank", dest.BankName)
}

func TestBuildTransactionTHBPayout(t *testing.T) {
	client := testClient()
	client.PreferredPayoutCurrency = models.CurrencyTHB

	tx, err := BuildTransaction([]models.Client{client}, TransactionInput{
		ClientID:          7,
		IncomingAmountTHB: dec("1000.00"),
		OriginalAmountUSD: decimal.NewNullDecimal(dec("29.5")),
		Fees:              decimal.NewNullDecimal(dec("12.5")),
		Notes:             strPtr("  "),
	}, today)
	require.NoError(t, err)

	assert.Equal(t, models.CurrencyTHB, tx.PayoutCurrency)
	assertDecimal(t, "900.00", tx.PayoutAmount)
	assertDecimal(t, "12.50", tx.Fees)
	assertDecimal(t, "29.50", tx.OriginalAmountUSD.Decimal)
	assert.Nil(t, tx.Notes)
	assert.Nil(t, tx.SourcePlatform)
	assert.Nil(t, tx.Destination())
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), tx.TransactionDate)
}

func TestBuildTransactionDestinationIsACopy(t *testing.T) {
	clients := []models.Client{testClient()}

	tx, err := BuildTransaction(clients, TransactionInput{
		ClientID:          7,
		IncomingAmountTHB: dec("10"),
		BankAccountID:     "b2",
	}, today)
	require.NoError(t, err)

	clients[0].BankAccounts[1].BankName = "Renamed"
	assert.Equal(t, "AYA Bank", tx.Destination().BankName)
}

func TestBuildTransactionPlatformSelection(t *testing.T) {
	tests := []struct {
		name         string
		in           TransactionInput
		wantPlatform *string
		wantPayoutID *string
	}{
		{"other", TransactionInput{Platform: "Other"}, strPtr("Other"), nil},
		{"other any case", TransactionInput{Platform: "OTHER"}, strPtr("Other"), nil},
		{"by id", TransactionInput{Platform: "p1"}, strPtr("YouTube"), strPtr("YT-778")},
		{"by index without payout id", TransactionInput{PlatformIndex: intPtr(1)}, strPtr("TikTok"), nil},
		{"none", TransactionInput{}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.ClientID = 7
			tt.in.IncomingAmountTHB = dec("100")

			tx, err := BuildTransaction([]models.Client{testClient()}, tt.in, today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlatform, tx.SourcePlatform)
			assert.Equal(t, tt.wantPayoutID, tx.SourcePlatformPayoutID)
		})
	}
}

func TestBuildTransactionRejects(t *testing.T) {
	tests := []struct {
		name  string
		in    TransactionInput
		field string
	}{
		{"negative amount", TransactionInput{IncomingAmountTHB: dec("-1")}, "incoming_amount_thb"},
		{"negative usd", TransactionInput{OriginalAmountUSD: decimal.NewNullDecimal(dec("-0.01"))}, "original_amount_usd"},
		{"negative fees", TransactionInput{Fees: decimal.NewNullDecimal(dec("-5"))}, "fees"},
		{"negative rate", TransactionInput{ExchangeRateMMK: dec("-120")}, "exchange_rate_mmk"},
		{"bad date", TransactionInput{TransactionDate: "14/03/2026"}, "transaction_date"},
		{"bank index out of range", TransactionInput{BankAccountIndex: intPtr(2)}, "bank_account_index"},
		{"negative bank index", TransactionInput{BankAccountIndex: intPtr(-1)}, "bank_account_index"},
		{"unknown bank id", TransactionInput{BankAccountID: "b9"}, "bank_account_id"},
		{"unknown platform", TransactionInput{Platform: "p9"}, "platform"},
		{"platform index out of range", TransactionInput{PlatformIndex: intPtr(5)}, "platform_index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.ClientID = 7

			_, err := BuildTransaction([]models.Client{testClient()}, tt.in, today)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBuildTransactionUnknownClient(t *testing.T) {
	_, err := BuildTransaction([]models.Client{testClient()}, TransactionInput{ClientID: 8, IncomingAmountTHB: dec("-1")}, today)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
