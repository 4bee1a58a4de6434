// Package raster draws invoice views onto a large canvas and encodes them
// as JPEG images.
package raster

import (
	"fmt"
	"image/color"
	"image/jpeg"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"payoutdesk/render"
)

func init() {
	render.Register("jpg", New(Quality))
}

// Canvas is laid out at twice A4 proportions before compression.
const (
	Width   = 1588
	Height  = 2246
	Quality = 95

	margin       = 110.0
	contentWidth = Width - 2*margin
	headerHeight = 230.0
	lineHeight   = 44.0
	rowHeight    = 62.0
	labelWidth   = 380.0
	columnWidth  = 640.0
	payoutHeight = 124.0
)

var watermarkPositions = [render.WatermarkRepeats][2]float64{
	{300, 570}, {794, 570}, {1288, 570},
	{300, 1170}, {794, 1170}, {1288, 1170},
	{300, 1770}, {794, 1770}, {1288, 1770},
}

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorBrand      = color.RGBA{30, 41, 59, 255}
	colorText       = color.RGBA{31, 41, 55, 255}
	colorMuted      = color.RGBA{107, 114, 128, 255}
	colorNegative   = color.RGBA{185, 28, 28, 255}
	colorTableHead  = color.RGBA{241, 245, 249, 255}
	colorRule       = color.RGBA{226, 232, 240, 255}
	colorHighlight  = color.RGBA{22, 101, 52, 255}
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorWatermark  = color.NRGBA{148, 163, 184, 30}
)

// traceFunc sees every string the painter draws with its anchor point, in
// drawing order.
type traceFunc func(text string, x, y float64)

type Renderer struct {
	Quality int

	trace traceFunc
}

func New(quality int) *Renderer {
	return &Renderer{Quality: quality}
}

func (r *Renderer) Extension() string   { return "jpg" }
func (r *Renderer) ContentType() string { return "image/jpeg" }

func (r *Renderer) Render(w io.Writer, v render.View) error {
	faces, err := loadFaces()
	if err != nil {
		return err
	}

	dc := gg.NewContext(Width, Height)
	dc.SetColor(colorBackground)
	dc.Clear()

	p := &painter{dc: dc, faces: faces, trace: r.trace}
	p.watermark(v.Watermark)

	var leftBottom, rightBottom float64
	for _, b := range v.Blocks {
		switch b.Section {
		case render.SectionHeader:
			p.header(b)
		case render.SectionMeta:
			rightBottom = p.column(b, Width-margin-columnWidth, headerHeight+80, 1)
		case render.SectionBillTo:
			leftBottom = p.column(b, margin, headerHeight+80, 0)
			p.y = max(leftBottom, rightBottom) + 60
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

	if err := jpeg.Encode(w, dc.Image(), &jpeg.Options{Quality: r.Quality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

type faceSet struct {
	brand, title, strong, regular, small, italic, payout, watermark font.Face
}

var (
	facesOnce sync.Once
	facesErr  error
	fonts     struct{ regular, bold, italic *truetype.Font }
)

func loadFaces() (*faceSet, error) {
	facesOnce.Do(func() {
		if fonts.regular, facesErr = truetype.Parse(goregular.TTF); facesErr != nil {
			return
		}
		if fonts.bold, facesErr = truetype.Parse(gobold.TTF); facesErr != nil {
			return
		}
		fonts.italic, facesErr = truetype.Parse(goitalic.TTF)
	})
	if facesErr != nil {
		return nil, fmt.Errorf("load fonts: %w", facesErr)
	}

	// faces cache glyphs and are not safe for concurrent use, so each render
	// gets its own set
	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	return &faceSet{
		brand:     face(fonts.bold, 84),
		title:     face(fonts.bold, 44),
		strong:    face(fonts.bold, 32),
		regular:   face(fonts.regular, 32),
		small:     face(fonts.regular, 28),
		italic:    face(fonts.italic, 32),
		payout:    face(fonts.bold, 52),
		watermark: face(fonts.bold, 64),
	}, nil
}

type painter struct {
	dc    *gg.Context
	faces *faceSet
	trace traceFunc
	y     float64
}

func anchor(a render.Align) float64 {
	switch a {
	case render.AlignRight:
		return 1
	case render.AlignCenter:
		return 0.5
	}
	return 0
}

func (p *painter) drawString(s string, x, y, ax, ay float64) {
	if p.trace != nil {
		p.trace(s, x, y)
	}
	p.dc.DrawStringAnchored(s, x, y, ax, ay)
}

func (p *painter) style(s render.Style) {
	switch s {
	case render.StyleStrong:
		p.dc.SetFontFace(p.faces.strong)
		p.dc.SetColor(colorText)
	case render.StyleMuted:
		p.dc.SetFontFace(p.faces.small)
		p.dc.SetColor(colorMuted)
	case render.StyleNegative:
		p.dc.SetFontFace(p.faces.regular)
		p.dc.SetColor(colorNegative)
	default:
		p.dc.SetFontFace(p.faces.regular)
		p.dc.SetColor(colorText)
	}
}

func (p *painter) watermark(text string) {
	dc := p.dc
	dc.SetFontFace(p.faces.watermark)
	dc.SetColor(colorWatermark)
	for _, pos := range watermarkPositions {
		dc.Push()
		dc.RotateAbout(gg.Radians(-35), pos[0], pos[1])
		p.drawString(text, pos[0], pos[1], 0.5, 0.5)
		dc.Pop()
	}
}

func (p *painter) header(b render.Block) {
	dc := p.dc
	dc.SetColor(colorBrand)
	dc.DrawRectangle(0, 0, Width, headerHeight)
	dc.Fill()

	dc.SetFontFace(p.faces.brand)
	dc.SetColor(colorWhite)
	for _, e := range b.Entries {
		p.drawString(e.Value, margin, headerHeight/2, 0, 0.35)
	}
}

// column draws a titled block in the column starting at left and returns
// its bottom. titleAx places the title (0 = left edge, 1 = right edge).
func (p *painter) column(b render.Block, left, y, titleAx float64) float64 {
	dc := p.dc
	if b.Title != "" {
		dc.SetFontFace(p.faces.title)
		dc.SetColor(colorBrand)
		y += rowHeight
		p.drawString(b.Title, left+columnWidth*titleAx, y, titleAx, 0)
		y += 16
	}
	for _, e := range b.Entries {
		p.style(e.Style)
		y += lineHeight
		ax := anchor(e.Align)
		p.drawString(e.Text(), left+columnWidth*ax, y, ax, 0)
	}
	return y
}

func (p *painter) sectionTitle(title string) {
	p.dc.SetFontFace(p.faces.title)
	p.dc.SetColor(colorBrand)
	p.y += rowHeight
	p.drawString(title, margin, p.y, 0, 0)
	p.y += 20
}

func (p *painter) details(b render.Block) {
	p.sectionTitle(b.Title)
	for _, e := range b.Entries {
		p.y += lineHeight
		if e.Label == "" {
			p.style(e.Style)
			p.drawString(e.Value, margin, p.y, 0, 0)
			continue
		}
		p.style(render.StyleMuted)
		p.drawString(e.Label, margin, p.y, 0, 0)
		p.style(e.Style)
		p.drawString(e.Value, margin+labelWidth, p.y, 0, 0)
	}
	p.y += 50
}

func (p *painter) table(b render.Block) {
	dc := p.dc
	title, amount := render.LineItemsHeader()

	dc.SetColor(colorTableHead)
	dc.DrawRectangle(margin, p.y, contentWidth, rowHeight)
	dc.Fill()
	dc.SetFontFace(p.faces.strong)
	dc.SetColor(colorText)
	p.drawString(title, margin+16, p.y+rowHeight/2, 0, 0.35)
	p.drawString(amount, Width-margin-16, p.y+rowHeight/2, 1, 0.35)
	p.y += rowHeight

	for _, e := range b.Entries {
		p.style(e.Style)
		p.drawString(e.Label, margin+16, p.y+rowHeight/2, 0, 0.35)
		p.valueCell(e, p.y+rowHeight/2)
		p.y += rowHeight

		dc.SetColor(colorRule)
		dc.SetLineWidth(2)
		dc.DrawLine(margin, p.y, Width-margin, p.y)
		dc.Stroke()
	}
	p.y += 50
}

// valueCell draws a table value inside the amount column.
func (p *painter) valueCell(e render.Entry, y float64) {
	const amountWidth = 440.0
	left := Width - margin - 16 - amountWidth
	ax := anchor(e.Align)
	p.drawString(e.Value, left+amountWidth*ax, y, ax, 0.35)
}

func (p *painter) payout(b render.Block) {
	dc := p.dc
	for _, e := range b.Entries {
		dc.SetColor(colorHighlight)
		dc.DrawRoundedRectangle(margin, p.y, contentWidth, payoutHeight, 12)
		dc.Fill()

		mid := p.y + payoutHeight/2
		dc.SetColor(colorWhite)
		dc.SetFontFace(p.faces.title)
		p.drawString(e.Label, margin+36, mid, 0, 0.35)
		dc.SetFontFace(p.faces.payout)
		ax := anchor(e.Align)
		p.drawString(e.Value, Width/2+(Width/2-margin-36)*ax, mid, ax, 0.35)
		p.y += payoutHeight
	}
	p.y += 80
}

func (p *painter) footer(b render.Block) {
	p.dc.SetFontFace(p.faces.italic)
	p.dc.SetColor(colorMuted)
	for _, e := range b.Entries {
		p.y += lineHeight
		ax := anchor(e.Align)
		p.drawString(e.Text(), margin+contentWidth*ax, p.y, ax, 0)
	}
}
