package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"payoutdesk/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransactionPayout_Scenarios(t *testing.T) {
	cases := []struct {
		name       string
		incoming   string
		pct        string
		currency   models.Currency
		rate       string
		commission string
		net        string
		payout     string
	}{
		{"THB payout", "1000.00", "10", models.CurrencyTHB, "0", "100.00", "900.00", "900.00"},
		{"MMK payout", "1000.00", "10", models.CurrencyMMK, "120.00", "100.00", "900.00", "108000.00"},
		{"MMK without rate", "1000.00", "10", models.CurrencyMMK, "0", "100.00", "900.00", "0.00"},
		{"zero commission", "1000.00", "0", models.CurrencyTHB, "0", "0.00", "1000.00", "1000.00"},
		{"zero amount", "0", "25", models.CurrencyMMK, "120", "0.00", "0.00", "0.00"},
		{"full commission", "250.50", "100", models.CurrencyTHB, "0", "250.50", "0.00", "0.00"},
		{"THB ignores rate", "500", "10", models.CurrencyTHB, "130", "50.00", "450.00", "450.00"},
		{"MMK converts unrounded net", "33.33", "15", models.CurrencyMMK, "3000", "5.00", "28.33", "84991.50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := TransactionPayout(dec(tc.incoming), dec(tc.pct), tc.currency, dec(tc.rate))
			assert.Equal(t, tc.commission, p.Commission.StringFixed(2))
			assert.Equal(t, tc.net, p.NetPayableTHB.StringFixed(2))
			assert.Equal(t, tc.payout, p.Amount.StringFixed(2))
			assert.Equal(t, tc.currency, p.Currency)
		})
	}
}

func TestComputeInvoiceAmounts_UsesCurrentRate(t *testing.T) {
	atTransaction := TransactionPayout(dec("1000.00"), dec("10"), models.CurrencyTHB, decimal.Zero)
	atInvoice := ComputeInvoiceAmounts(dec("1000.00"), dec("15"), decimal.Zero)

	assert.Equal(t, "900.00", atTransaction.NetPayableTHB.StringFixed(2))
	assert.Equal(t, "150.00", atInvoice.Commission.StringFixed(2))
	assert.Equal(t, "850.00", atInvoice.Net.StringFixed(2))
}

func TestComputeInvoiceAmounts_SubtractsFees(t *testing.T) {
	got := ComputeInvoiceAmounts(dec("1000"), dec("10"), dec("35.5"))

	assert.Equal(t, "1000.00", got.Total.StringFixed(2))
	assert.Equal(t, "100.00", got.Commission.StringFixed(2))
	assert.Equal(t, "864.50", got.Net.StringFixed(2))
}

func TestExactNet(t *testing.T) {
	assert.Equal(t, "28.3305", ExactNet(dec("33.33"), dec("15"), decimal.Zero).String())
	assert.Equal(t, "864.5", ExactNet(dec("1000"), dec("10"), dec("35.5")).String())
}

func TestTransactionPayout_RoundsOnceAfterConversion(t *testing.T) {
	p := TransactionPayout(dec("33.33"), dec("15"), models.CurrencyMMK, dec("3000"))

	assert.Equal(t, "84991.50", p.Amount.StringFixed(2))
	assert.NotEqual(t, Convert(p.NetPayableTHB, dec("3000")).StringFixed(2), p.Amount.StringFixed(2))
}

func TestCommission_CentStable(t *testing.T) {
	pcts := []string{"0", "0.5", "3.33", "7.25", "12.5", "33.33", "66.67", "99.99", "100"}

	for cents := int64(0); cents <= 200000; cents += 997 {
		amount := decimal.New(cents, -2)
		for _, p := range pcts {
			pct := dec(p)
			payout := TransactionPayout(amount, pct, models.CurrencyTHB, decimal.Zero)

			assert.True(t, payout.Commission.Equal(Round2(payout.Commission)), "commission %s not whole cents", payout.Commission)
			assert.True(t, payout.Commission.Add(payout.NetPayableTHB).Equal(amount),
				"%s at %s%%: %s + %s != amount", amount, p, payout.Commission, payout.NetPayableTHB)
			assert.False(t, payout.NetPayableTHB.IsNegative())

			// repeated computation must never drift
			again := TransactionPayout(amount, pct, models.CurrencyTHB, decimal.Zero)
			assert.True(t, again.Amount.Equal(payout.Amount))
		}
	}
}

func TestCommission_HalfCentRoundsUp(t *testing.T) {
	// 0.10 × 5% = 0.005
	assert.Equal(t, "0.01", Commission(dec("0.10"), dec("5")).StringFixed(2))
	assert.Equal(t, "33.33", Commission(dec("100"), dec("33.33")).StringFixed(2))
	assert.Equal(t, "0.33", Commission(dec("1"), dec("33.333")).StringFixed(2))
}

func TestConvert(t *testing.T) {
	assert.Equal(t, "0.00", Convert(dec("900"), decimal.Zero).StringFixed(2))
	assert.Equal(t, "0.00", Convert(dec("900"), dec("-1")).StringFixed(2))
	assert.Equal(t, "47619.05", Convert(dec("12.5"), dec("3809.5238")).StringFixed(2))
}

func TestValidPercentage(t *testing.T) {
	assert.True(t, ValidPercentage(dec("0")))
	assert.True(t, ValidPercentage(dec("100")))
	assert.True(t, ValidPercentage(dec("12.75")))
	assert.False(t, ValidPercentage(dec("-0.01")))
	assert.False(t, ValidPercentage(dec("100.01")))
}
