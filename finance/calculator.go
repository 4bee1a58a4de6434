// Package finance derives commission, net and payout amounts.
//
// Commissions are rounded to the cent before subtraction, so commission and
// net always add back up to the gross amount exactly. Currency conversion
// works from the unrounded net and rounds once, on the converted amount.
package finance

import (
	"github.com/shopspring/decimal"

	"payoutdesk/models"
)

const Cents = 2

var (
	hundred = decimal.NewFromInt(100)
)

// Payout is the transaction-time split of an incoming payment.
type Payout struct {
	Commission    decimal.Decimal
	NetPayableTHB decimal.Decimal
	Currency      models.Currency
	Amount        decimal.Decimal
}

// InvoiceAmounts is the invoice-time split, computed from the client's
// commission rate when the invoice is generated.
type InvoiceAmounts struct {
	Total      decimal.Decimal
	Commission decimal.Decimal
	Net        decimal.Decimal
}

func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Cents)
}

func ValidPercentage(pct decimal.Decimal) bool {
	return !pct.IsNegative() && pct.LessThanOrEqual(hundred)
}

// Commission returns amount × pct / 100 rounded to the cent.
func Commission(amount, pct decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(pct).Shift(-2))
}

// ExactNet returns amount − amount × pct / 100 − fees without rounding.
func ExactNet(amount, pct, fees decimal.Decimal) decimal.Decimal {
	return amount.Sub(amount.Mul(pct).Shift(-2)).Sub(fees)
}

// Convert turns a THB amount into MMK. A zero or negative rate means the
// rate is not known yet and yields zero.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return Round2(amount.Mul(rate))
}

func TransactionPayout(incoming, pct decimal.Decimal, currency models.Currency, rate decimal.Decimal) Payout {
	commission := Commission(incoming, pct)
	net := Round2(incoming).Sub(commission)

	amount := net
	if currency == models.CurrencyMMK {
		amount = Convert(ExactNet(incoming, pct, decimal.Zero), rate)
	}

	return Payout{
		Commission:    commission,
		NetPayableTHB: net,
		Currency:      currency,
		Amount:        amount,
	}
}

func ComputeInvoiceAmounts(total, currentPct, fees decimal.Decimal) InvoiceAmounts {
	total = Round2(total)
	commission := Commission(total, currentPct)
	return InvoiceAmounts{
		Total:      total,
		Commission: commission,
		Net:        total.Sub(commission).Sub(Round2(fees)),
	}
}
