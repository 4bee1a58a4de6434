package render

import (
	"fmt"
	"strings"
	"time"

	"payoutdesk/finance"
	"payoutdesk/models"
)

type Section string

const (
	SectionHeader    Section = "header"
	SectionMeta      Section = "meta"
	SectionBillTo    Section = "bill_to"
	SectionDetails   Section = "details"
	SectionLineItems Section = "line_items"
	SectionPayout    Section = "payout"
	SectionFooter    Section = "footer"
)

type Style string

const (
	StyleNormal    Style = "normal"
	StyleMuted     Style = "muted"
	StyleStrong    Style = "strong"
	StyleBrand     Style = "brand"
	StyleNegative  Style = "negative"
	StyleHighlight Style = "highlight"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

const (
	DateLayout = "02 Jan 2006"

	// WatermarkRepeats is how many copies of the watermark every backend
	// lays out before any other content.
	WatermarkRepeats = 9

	Placeholder       = "—"
	NotAvailable      = "N/A"
	BankNotSpecified  = "Bank Not Specified"
	ThankYou          = "Thank you for your business!"
	defaultWatermark  = "INVOICE"
	lineItemsTitle    = "Description"
	lineItemsAmount   = "Amount"
	payoutAmountLabel = "Payout Amount"
)

// Entry is one drawable line. Label may be empty for free-standing text.
type Entry struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
	Style Style  `json:"style"`
	Align Align  `json:"align"`
}

type Block struct {
	Section Section `json:"section"`
	Title   string  `json:"title,omitempty"`
	Entries []Entry `json:"entries"`
}

// View is the backend-neutral content of an invoice document. Blocks are in
// drawing order.
type View struct {
	InvoiceNumber string    `json:"invoice_number"`
	IssuedAt      time.Time `json:"issued_at"`
	Watermark     string    `json:"watermark"`
	Blocks        []Block   `json:"blocks"`
}

func (v View) Block(section Section) (Block, bool) {
	for _, b := range v.Blocks {
		if b.Section == section {
			return b, true
		}
	}
	return Block{}, false
}

// Lines flattens the view into "label: value" strings in drawing order.
func (v View) Lines() []string {
	var out []string
	for _, b := range v.Blocks {
		if b.Title != "" {
			out = append(out, b.Title)
		}
		for _, e := range b.Entries {
			out = append(out, e.Text())
		}
	}
	return out
}

func (e Entry) Text() string {
	if e.Label == "" {
		return e.Value
	}
	return e.Label + ": " + e.Value
}

type Brand struct {
	Name    string
	Domain  string
	Contact []string
}

// Snapshot is the joined data one document is rendered from.
type Snapshot struct {
	Invoice     models.Invoice
	Transaction models.Transaction
	Client      models.Client
}

func BuildView(s Snapshot, brand Brand) View {
	inv, tx, client := s.Invoice, s.Transaction, s.Client

	watermark := brand.Domain
	if watermark == "" {
		watermark = defaultWatermark
	}

	v := View{
		InvoiceNumber: inv.InvoiceNumber,
		IssuedAt:      inv.CreatedAt,
		Watermark:     watermark,
	}

	v.Blocks = append(v.Blocks, Block{
		Section: SectionHeader,
		Entries: []Entry{{Value: brand.Name, Style: StyleBrand, Align: AlignLeft}},
	})

	meta := Block{Section: SectionMeta, Title: "INVOICE"}
	meta.Entries = append(meta.Entries,
		Entry{Label: "Invoice No", Value: inv.InvoiceNumber, Style: StyleStrong, Align: AlignRight},
		Entry{Label: "Date", Value: formatDate(inv.CreatedAt), Style: StyleNormal, Align: AlignRight},
	)
	for _, line := range brand.Contact {
		meta.Entries = append(meta.Entries, Entry{Value: line, Style: StyleMuted, Align: AlignRight})
	}
	v.Blocks = append(v.Blocks, meta)

	v.Blocks = append(v.Blocks, billTo(client, tx))
	v.Blocks = append(v.Blocks, details(client, tx))
	v.Blocks = append(v.Blocks, lineItems(inv, tx))

	v.Blocks = append(v.Blocks, Block{
		Section: SectionPayout,
		Entries: []Entry{{
			Label: payoutAmountLabel,
			Value: fmt.Sprintf("%s %s", finance.FormatMoney(tx.PayoutAmount), tx.PayoutCurrency),
			Style: StyleHighlight,
			Align: AlignRight,
		}},
	})

	v.Blocks = append(v.Blocks, Block{
		Section: SectionFooter,
		Entries: []Entry{{Value: ThankYou, Style: StyleMuted, Align: AlignCenter}},
	})

	return v
}

func billTo(client models.Client, tx models.Transaction) Block {
	b := Block{Section: SectionBillTo, Title: "BILL TO"}
	b.Entries = append(b.Entries, Entry{Value: client.Name, Style: StyleStrong, Align: AlignLeft})
	if client.Phone != nil && *client.Phone != "" {
		b.Entries = append(b.Entries, Entry{Label: "Phone", Value: *client.Phone, Style: StyleNormal, Align: AlignLeft})
	}

	dest := tx.Destination()
	if dest == nil {
		b.Entries = append(b.Entries, Entry{Value: BankNotSpecified, Style: StyleMuted, Align: AlignLeft})
		return b
	}
	b.Entries = append(b.Entries,
		Entry{Label: "Bank", Value: dest.BankName, Style: StyleNormal, Align: AlignLeft},
		Entry{Label: "Account No", Value: dest.AccountNumber, Style: StyleNormal, Align: AlignLeft},
		Entry{Label: "Account Name", Value: dest.AccountName, Style: StyleNormal, Align: AlignLeft},
	)
	return b
}

func details(client models.Client, tx models.Transaction) Block {
	b := Block{Section: SectionDetails, Title: "TRANSACTION DETAILS"}
	b.Entries = append(b.Entries, Entry{Label: "Transaction Date", Value: formatDate(tx.TransactionDate), Style: StyleNormal, Align: AlignLeft})

	if tx.SourcePlatform != nil && *tx.SourcePlatform != "" {
		b.Entries = append(b.Entries,
			Entry{Label: "Platform", Value: *tx.SourcePlatform, Style: StyleNormal, Align: AlignLeft},
			Entry{Label: "Payout ID", Value: resolvePayoutID(client, tx), Style: StyleNormal, Align: AlignLeft},
		)
	}

	b.Entries = append(b.Entries, Entry{Label: "Payout Currency", Value: string(tx.PayoutCurrency), Style: StyleNormal, Align: AlignLeft})

	if tx.PayoutCurrency == models.CurrencyMMK {
		rate := Placeholder
		if tx.ExchangeRateMMK.IsPositive() {
			rate = fmt.Sprintf("1 THB = %s MMK", finance.FormatRate(tx.ExchangeRateMMK))
		}
		b.Entries = append(b.Entries, Entry{Label: "Exchange Rate", Value: rate, Style: StyleNormal, Align: AlignLeft})
	}
	return b
}

func lineItems(inv models.Invoice, tx models.Transaction) Block {
	b := Block{Section: SectionLineItems, Title: lineItemsTitle}

	if tx.OriginalAmountUSD.Valid {
		b.Entries = append(b.Entries, Entry{Label: "Original Amount (USD)", Value: finance.FormatMoney(tx.OriginalAmountUSD.Decimal), Style: StyleMuted, Align: AlignRight})
	}

	b.Entries = append(b.Entries,
		Entry{Label: "Incoming Amount (THB)", Value: finance.FormatMoney(inv.TotalAmount), Style: StyleNormal, Align: AlignRight},
		Entry{
			Label: fmt.Sprintf("Commission (%s%%)", inv.CommissionPercentage.String()),
			Value: finance.FormatMoney(inv.CommissionAmount.Neg()),
			Style: StyleNegative,
			Align: AlignRight,
		},
	)
	if tx.Fees.IsPositive() {
		b.Entries = append(b.Entries, Entry{Label: "Fees", Value: finance.FormatMoney(tx.Fees.Neg()), Style: StyleNegative, Align: AlignRight})
	}
	b.Entries = append(b.Entries, Entry{Label: "Net in THB", Value: finance.FormatMoney(inv.NetAmount), Style: StyleStrong, Align: AlignRight})

	if tx.PayoutCurrency == models.CurrencyMMK && tx.ExchangeRateMMK.IsPositive() {
		b.Entries = append(b.Entries, Entry{
			Label: fmt.Sprintf("Conversion (x %s)", finance.FormatRate(tx.ExchangeRateMMK)),
			Value: finance.FormatMoney(finance.Convert(
				finance.ExactNet(inv.TotalAmount, inv.CommissionPercentage, tx.Fees),
				tx.ExchangeRateMMK,
			)),
			Style: StyleNormal,
			Align: AlignRight,
		})
	}
	return b
}

// resolvePayoutID prefers the id stored on the transaction and falls back
// to the client's platform entry with the same name.
func resolvePayoutID(client models.Client, tx models.Transaction) string {
	if tx.SourcePlatformPayoutID != nil && strings.TrimSpace(*tx.SourcePlatformPayoutID) != "" {
		return *tx.SourcePlatformPayoutID
	}
	if id, ok := client.PayoutIDFor(*tx.SourcePlatform); ok {
		return id
	}
	return NotAvailable
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(DateLayout)
}

// LineItemsHeader returns the column captions of the line-item table.
func LineItemsHeader() (string, string) {
	return lineItemsTitle, lineItemsAmount
}
