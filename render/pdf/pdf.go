// Package pdf draws invoice views as A4 PDF documents.
package pdf

import (
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"payoutdesk/render"
)

func init() {
	render.Register("pdf", New(true))
}

// Page geometry in millimetres.
const (
	pageWidth    = 210.0
	margin       = 15.0
	contentWidth = pageWidth - 2*margin
	headerHeight = 30.0
	columnWidth  = 88.0
	lineHeight   = 6.0
	rowHeight    = 8.0
	labelWidth   = 50.0
	amountWidth  = 60.0
	payoutHeight = 16.0
	fontFamily   = "go"
)

var watermarkPositions = [render.WatermarkRepeats][2]float64{
	{40, 75}, {105, 75}, {170, 75},
	{40, 155}, {105, 155}, {170, 155},
	{40, 235}, {105, 235}, {170, 235},
}

type rgb struct{ r, g, b int }

var (
	colorBrand     = rgb{30, 41, 59}
	colorText      = rgb{31, 41, 55}
	colorMuted     = rgb{107, 114, 128}
	colorNegative  = rgb{185, 28, 28}
	colorTableHead = rgb{241, 245, 249}
	colorRule      = rgb{226, 232, 240}
	colorHighlight = rgb{22, 101, 52}
	colorWhite     = rgb{255, 255, 255}
	colorWatermark = rgb{148, 163, 184}
)

// traceFunc sees every string the painter draws with the point it is
// anchored at, in drawing order.
type traceFunc func(text string, x, y float64)

type Renderer struct {
	Compress bool

	trace traceFunc
}

func New(compress bool) *Renderer {
	return &Renderer{Compress: compress}
}

func (r *Renderer) Extension() string   { return "pdf" }
func (r *Renderer) ContentType() string { return "application/pdf" }

func (r *Renderer) Render(w io.Writer, v render.View) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(r.Compress)
	doc.SetCatalogSort(true)
	if !v.IssuedAt.IsZero() {
		doc.SetCreationDate(v.IssuedAt)
		doc.SetModificationDate(v.IssuedAt)
	}

	// the Go fonts cover the same glyphs the JPEG backend draws with
	doc.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	doc.AddUTF8FontFromBytes(fontFamily, "B", gobold.TTF)
	doc.AddUTF8FontFromBytes(fontFamily, "I", goitalic.TTF)

	doc.SetTitle(v.InvoiceNumber, true)
	doc.SetAutoPageBreak(false, margin)
	doc.AddPage()

	p := &painter{doc: doc, trace: r.trace}
	p.watermark(v.Watermark)

	var leftBottom, rightBottom float64
	for _, b := range v.Blocks {
		switch b.Section {
		case render.SectionHeader:
			p.header(b)
		case render.SectionMeta:
			rightBottom = p.column(b, pageWidth-margin-columnWidth, headerHeight+10, "R")
		case render.SectionBillTo:
			leftBottom = p.column(b, margin, headerHeight+10, "L")
			doc.SetY(max(leftBottom, rightBottom) + 8)
		case render.SectionDetails:
			p.details(b)
		case render.SectionLineItems:
			p.table(b)
		case render.SectionPayout:
			p.payout(b)
		default:
			p.footer(b)
		}
	}

	return doc.Output(w)
}

func cellAlign(a render.Align) string {
	switch a {
	case render.AlignRight:
		return "R"
	case render.AlignCenter:
		return "C"
	}
	return "L"
}

type painter struct {
	doc   *fpdf.Fpdf
	trace traceFunc
}

func (p *painter) text(x, y float64, s string) {
	if p.trace != nil {
		p.trace(s, x, y)
	}
	p.doc.Text(x, y, s)
}

func (p *painter) cell(w, h float64, s, border string, ln int, align string, fill bool) {
	if p.trace != nil {
		x, y := p.doc.GetXY()
		p.trace(s, x, y)
	}
	p.doc.CellFormat(w, h, s, border, ln, align, fill, 0, "")
}

func (p *painter) color(c rgb) {
	p.doc.SetTextColor(c.r, c.g, c.b)
}

func (p *painter) style(s render.Style) {
	switch s {
	case render.StyleStrong:
		p.doc.SetFont(fontFamily, "B", 10)
		p.color(colorText)
	case render.StyleMuted:
		p.doc.SetFont(fontFamily, "", 9)
		p.color(colorMuted)
	case render.StyleNegative:
		p.doc.SetFont(fontFamily, "", 10)
		p.color(colorNegative)
	default:
		p.doc.SetFont(fontFamily, "", 10)
		p.color(colorText)
	}
}

// watermark is drawn first so every later layer covers it. Each copy is
// centred on its position.
func (p *painter) watermark(text string) {
	d := p.doc
	d.SetFont(fontFamily, "B", 18)
	p.color(colorWatermark)
	d.SetAlpha(0.12, "Normal")
	width := d.GetStringWidth(text)
	for _, pos := range watermarkPositions {
		d.TransformBegin()
		d.TransformRotate(35, pos[0], pos[1])
		if p.trace != nil {
			p.trace(text, pos[0], pos[1])
		}
		d.Text(pos[0]-width/2, pos[1], text)
		d.TransformEnd()
	}
	d.SetAlpha(1, "Normal")
}

func (p *painter) header(b render.Block) {
	d := p.doc
	d.SetFillColor(colorBrand.r, colorBrand.g, colorBrand.b)
	d.Rect(0, 0, pageWidth, headerHeight, "F")
	d.SetFont(fontFamily, "B", 22)
	p.color(colorWhite)
	for _, e := range b.Entries {
		p.text(margin, headerHeight/2+3, e.Value)
	}
}

// column draws a titled block at x,y and returns its bottom edge.
func (p *painter) column(b render.Block, x, y float64, titleAlign string) float64 {
	d := p.doc
	d.SetXY(x, y)
	if b.Title != "" {
		d.SetFont(fontFamily, "B", 12)
		p.color(colorBrand)
		p.cell(columnWidth, rowHeight, b.Title, "", 2, titleAlign, false)
	}
	for _, e := range b.Entries {
		p.style(e.Style)
		p.cell(columnWidth, lineHeight, e.Text(), "", 2, cellAlign(e.Align), false)
	}
	return d.GetY()
}

func (p *painter) sectionTitle(title string) {
	d := p.doc
	d.SetX(margin)
	d.SetFont(fontFamily, "B", 11)
	p.color(colorBrand)
	p.cell(contentWidth, rowHeight, title, "", 1, "L", false)
}

func (p *painter) details(b render.Block) {
	d := p.doc
	p.sectionTitle(b.Title)
	for _, e := range b.Entries {
		d.SetX(margin)
		if e.Label == "" {
			p.style(e.Style)
			p.cell(contentWidth, lineHeight, e.Value, "", 1, cellAlign(e.Align), false)
			continue
		}
		p.style(render.StyleMuted)
		p.cell(labelWidth, lineHeight, e.Label, "", 0, "L", false)
		p.style(e.Style)
		p.cell(contentWidth-labelWidth, lineHeight, e.Value, "", 1, cellAlign(e.Align), false)
	}
	d.Ln(6)
}

func (p *painter) table(b render.Block) {
	d := p.doc
	title, amount := render.LineItemsHeader()

	d.SetX(margin)
	d.SetFillColor(colorTableHead.r, colorTableHead.g, colorTableHead.b)
	d.SetFont(fontFamily, "B", 10)
	p.color(colorText)
	p.cell(contentWidth-amountWidth, rowHeight, title, "", 0, "L", true)
	p.cell(amountWidth, rowHeight, amount, "", 1, "R", true)

	d.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	for _, e := range b.Entries {
		d.SetX(margin)
		p.style(e.Style)
		p.cell(contentWidth-amountWidth, rowHeight, e.Label, "B", 0, "L", false)
		p.cell(amountWidth, rowHeight, e.Value, "B", 1, cellAlign(e.Align), false)
	}
	d.Ln(6)
}

func (p *painter) payout(b render.Block) {
	d := p.doc
	for _, e := range b.Entries {
		y := d.GetY()
		d.SetFillColor(colorHighlight.r, colorHighlight.g, colorHighlight.b)
		d.Rect(margin, y, contentWidth, payoutHeight, "F")
		p.color(colorWhite)

		d.SetXY(margin+4, y)
		d.SetFont(fontFamily, "B", 12)
		p.cell(contentWidth/2, payoutHeight, e.Label, "", 0, "L", false)
		d.SetFont(fontFamily, "B", 15)
		p.cell(contentWidth/2-8, payoutHeight, e.Value, "", 1, cellAlign(e.Align), false)
	}
	d.Ln(10)
}

func (p *painter) footer(b render.Block) {
	d := p.doc
	for _, e := range b.Entries {
		d.SetX(margin)
		d.SetFont(fontFamily, "I", 10)
		p.color(colorMuted)
		p.cell(contentWidth, rowHeight, e.Text(), "", 1, cellAlign(e.Align), false)
	}
}
