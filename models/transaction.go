package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SourcePlatformOther is stored when the payment came from a platform the
// client has no entry for.
const SourcePlatformOther = "Other"

type Transaction struct {
	gorm.Model

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	IncomingAmountTHB decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"incoming_amount_thb"`
	OriginalAmountUSD decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"original_amount_usd"`
	Fees              decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"fees"`
	ExchangeRateMMK   decimal.Decimal     `gorm:"type:numeric(14,4);not null;default:0" json:"exchange_rate_mmk"`
	PayoutCurrency    Currency            `gorm:"size:3;not null" json:"payout_currency"`
	PayoutAmount      decimal.Decimal     `gorm:"type:numeric(18,2);not null" json:"payout_amount"`

	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`
	Notes           *string   `gorm:"type:text" json:"notes,omitempty"`

	SourcePlatform         *string `gorm:"size:64" json:"source_platform,omitempty"`
	SourcePlatformPayoutID *string `gorm:"size:128" json:"source_platform_payout_id,omitempty"`

	// Frozen copy of the chosen account, not a reference into the client.
	PaymentDestination datatypes.JSONType[*BankAccount] `json:"payment_destination"`

	Invoice *Invoice `gorm:"foreignKey:TransactionID" json:"invoice,omitempty"`
}

func (t *Transaction) Destination() *BankAccount {
	return t.PaymentDestination.Data()
}
