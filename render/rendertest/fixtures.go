// Package rendertest provides invoice snapshots shared by renderer tests.
package rendertest

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"payoutdesk/models"
	"payoutdesk/render"
)

var Brand = render.Brand{
	Name:    "PayoutDesk",
	Domain:  "payoutdesk.co",
	Contact: []string{"Bangkok, Thailand", "billing@payoutdesk.co"},
}

func ptr(s string) *string { return &s }

// MMKSnapshot is a 1,000 THB payment at 10% commission paid out in MMK at
// 120 MMK per THB.
func MMKSnapshot() render.Snapshot {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	client := models.Client{
		Name:                    "Aye Chan",
		Phone:                   ptr("+95 9 555 0101"),
		CommissionPercentage:    decimal.NewFromInt(10),
		PreferredPayoutCurrency: models.CurrencyMMK,
		BankAccounts: datatypes.NewJSONSlice([]models.BankAccount{
			{ID: "b1", BankName: "KBZ Bank", AccountNumber: "0990-1234", AccountName: "Aye Chan"},
		}),
		PlatformDetails: datatypes.NewJSONSlice([]models.PlatformDetail{
			{ID: "p1", PlatformName: "YouTube", PayoutID: ptr("YT-778")},
		}),
	}
	client.ID = 7

	tx := models.Transaction{
		ClientID:          7,
		IncomingAmountTHB: decimal.RequireFromString("1000.00"),
		OriginalAmountUSD: decimal.NewNullDecimal(decimal.RequireFromString("29.50")),
		ExchangeRateMMK:   decimal.RequireFromString("120"),
		PayoutCurrency:    models.CurrencyMMK,
		PayoutAmount:      decimal.RequireFromString("108000.00"),
		TransactionDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SourcePlatform:    ptr("YouTube"),
		PaymentDestination: datatypes.NewJSONType(&models.BankAccount{
			ID: "b1", BankName: "KBZ Bank", AccountNumber: "0990-1234", AccountName: "Aye Chan",
		}),
	}
	tx.ID = 42

	inv := models.Invoice{
		ClientID:             7,
		TransactionID:        42,
		InvoiceNumber:        "INV-000001",
		TotalAmount:          decimal.RequireFromString("1000.00"),
		CommissionPercentage: decimal.NewFromInt(10),
		CommissionAmount:     decimal.RequireFromString("100.00"),
		NetAmount:            decimal.RequireFromString("900.00"),
	}
	inv.ID = 1
	inv.CreatedAt = created

	return render.Snapshot{Invoice: inv, Transaction: tx, Client: client}
}

// THBSnapshot has no bank, no platform and no USD amount.
func THBSnapshot() render.Snapshot {
	s := MMKSnapshot()
	s.Client.Phone = nil
	s.Client.PreferredPayoutCurrency = models.CurrencyTHB
	s.Transaction.PayoutCurrency = models.CurrencyTHB
	s.Transaction.ExchangeRateMMK = decimal.Zero
	s.Transaction.PayoutAmount = decimal.RequireFromString("900.00")
	s.Transaction.SourcePlatform = nil
	s.Transaction.OriginalAmountUSD = decimal.NullDecimal{}
	s.Transaction.PaymentDestination = datatypes.NewJSONType[*models.BankAccount](nil)
	s.Invoice.InvoiceNumber = "INV-000002"
	return s
}

// UnicodeSnapshot bills a client whose name needs glyphs outside Latin-1.
func UnicodeSnapshot() render.Snapshot {
	s := MMKSnapshot()
	s.Client.Name = "Nguyễn Thị"
	s.Invoice.InvoiceNumber = "INV-000003"
	return s
}

// DrawnText lists the strings a backend draws for v, in drawing order: the
// watermark copies first, then every block the way the painters lay it out.
func DrawnText(v render.View) []string {
	var out []string
	for range render.WatermarkRepeats {
		out = append(out, v.Watermark)
	}

	for _, b := range v.Blocks {
		switch b.Section {
		case render.SectionHeader:
			for _, e := range b.Entries {
				out = append(out, e.Value)
			}
		case render.SectionMeta, render.SectionBillTo:
			if b.Title != "" {
				out = append(out, b.Title)
			}
			for _, e := range b.Entries {
				out = append(out, e.Text())
			}
		case render.SectionDetails:
			out = append(out, b.Title)
			for _, e := range b.Entries {
				if e.Label != "" {
					out = append(out, e.Label)
				}
				out = append(out, e.Value)
			}
		case render.SectionLineItems:
			title, amount := render.LineItemsHeader()
			out = append(out, title, amount)
			for _, e := range b.Entries {
				out = append(out, e.Label, e.Value)
			}
		case render.SectionPayout:
			for _, e := range b.Entries {
				out = append(out, e.Label, e.Value)
			}
		default:
			for _, e := range b.Entries {
				out = append(out, e.Text())
			}
		}
	}
	return out
}
