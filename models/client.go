package models

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Currency string

const (
	CurrencyTHB Currency = "THB"
	CurrencyMMK Currency = "MMK"
)

func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CurrencyTHB, CurrencyMMK:
		return c, true
	}
	return "", false
}

// BankAccount is embedded in Client.BankAccounts and copied verbatim into
// Transaction.PaymentDestination.
type BankAccount struct {
	ID            string `json:"id"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

func (b BankAccount) Complete() bool {
	return b.BankName != "" && b.AccountNumber != "" && b.AccountName != ""
}

type PlatformDetail struct {
	ID           string  `json:"id"`
	PlatformName string  `json:"platform_name"`
	PayoutID     *string `json:"payout_id,omitempty"`
}

type Client struct {
	gorm.Model

	Name                    string                              `gorm:"size:128;not null;index" json:"name"`
	Phone                   *string                             `gorm:"size:32" json:"phone,omitempty"`
	CommissionPercentage    decimal.Decimal                     `gorm:"type:numeric(5,2);not null;default:0" json:"commission_percentage"`
	PreferredPayoutCurrency Currency                            `gorm:"size:3;not null" json:"preferred_payout_currency"`
	BankAccounts            datatypes.JSONSlice[BankAccount]    `gorm:"column:bank_account" json:"bank_account"`
	PlatformDetails         datatypes.JSONSlice[PlatformDetail] `json:"platform_details"`
	Owner                   string                              `gorm:"size:64;index" json:"owner"`

	Transactions []Transaction `gorm:"foreignKey:ClientID" json:"-"`
}

// AfterFind drops embedded entries that do not carry their required fields.
func (c *Client) AfterFind(tx *gorm.DB) error {
	dropped := 0
	accounts := c.BankAccounts[:0]
	for _, acc := range c.BankAccounts {
		if acc.Complete() {
			accounts = append(accounts, acc)
		} else {
			dropped++
		}
	}
	c.BankAccounts = accounts

	platforms := c.PlatformDetails[:0]
	for _, p := range c.PlatformDetails {
		if strings.TrimSpace(p.PlatformName) != "" {
			platforms = append(platforms, p)
		} else {
			dropped++
		}
	}
	c.PlatformDetails = platforms

	if dropped > 0 {
		log.Warn().
			Uint("client_id", c.ID).
			Int("dropped", dropped).
			Msg("Ignoring malformed bank account or platform entries")
	}
	return nil
}

// PayoutIDFor looks a payout id up by platform name.
func (c *Client) PayoutIDFor(platformName string) (string, bool) {
	for _, p := range c.PlatformDetails {
		if strings.EqualFold(p.PlatformName, platformName) && p.PayoutID != nil && *p.PayoutID != "" {
			return *p.PayoutID, true
		}
	}
	return "", false
}
