package label

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/labelmint/labelmint/pkg/fonts"
	"github.com/labelmint/labelmint/pkg/table"
)

// Layout geometry in output pixels (scaled up on the working canvas).
const (
	defaultScale    = 4  // supersampling factor
	borderWidth     = 3  // label border stroke
	sideMargin      = 20 // text width budget inset per side
	lineGap         = 8  // vertical gap between text lines
	textAreaSlack   = 60 // vertical slack around the text block
	textTopOffset   = 30 // fixed offset added to the centered block
	placeholderSize = 16
)

const placeholderText = "No data"

// Renderer rasterizes labels. A Renderer holds no per-render state and may
// be reused across rows; the working canvas is exclusive to one Render
// call and discarded at its end.
type Renderer struct {
	fonts   *fonts.Provider
	scale   int
	encoder Encoder
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFonts replaces the font provider.
func WithFonts(p *fonts.Provider) Option {
	return func(r *Renderer) { r.fonts = p }
}

// WithScale overrides the supersampling factor.
func WithScale(n int) Option {
	return func(r *Renderer) {
		if n >= 1 {
			r.scale = n
		}
	}
}

// WithEncoder replaces the barcode encoder. Passing nil disables real
// encoding so every barcode takes the deterministic fallback path.
func WithEncoder(e Encoder) Option {
	return func(r *Renderer) { r.encoder = e }
}

// NewRenderer creates a renderer with Code 128 encoding and 4x
// supersampling.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		fonts:   fonts.NewProvider(),
		scale:   defaultScale,
		encoder: Code128,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render rasterizes one label. The result is always exactly
// cfg.Width x cfg.Height pixels. An empty field list or empty row yields a
// bordered placeholder; the only error is a canvas size outside the
// supported bounds.
func (r *Renderer) Render(row table.Row, cfg Config) (image.Image, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := r.scale
	w, h := cfg.Width*s, cfg.Height*s

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawBorder(dc, w, h, s)

	if len(cfg.Fields) == 0 || len(row) == 0 {
		r.drawPlaceholder(dc, w, h, s)
		return downsample(dc.Image(), cfg), nil
	}

	st := cfg.barcodeStyle()
	reserved := 0
	if cfg.BarcodeField != "" {
		reserved = st.Height*s + barcodeBottomInset*s
		if st.ShowCaption {
			reserved += (st.CaptionSize + barcodeCaptionGap) * s
		}
	}

	comp := &composer{
		fonts:    r.fonts,
		scale:    s,
		maxWidth: float64(w - 2*sideMargin*s),
	}
	lines := comp.compose(cfg, row)

	total := 0
	for _, ln := range lines {
		total += ln.size + lineGap*s
	}
	textArea := h - reserved - textAreaSlack*s
	y := (textArea-total)/2 + textTopOffset*s

	dc.SetRGB(0, 0, 0)
	for _, ln := range lines {
		dc.SetFontFace(ln.face)
		tw, _ := dc.MeasureString(ln.text)
		dc.DrawString(ln.text, (float64(w)-tw)/2, float64(y+ln.size))
		y += ln.size + lineGap*s
	}

	if cfg.BarcodeField != "" {
		if value, ok := row.Lookup(cfg.BarcodeField); ok {
			bw := w - 2*barcodeSideMargin*s
			bh := st.Height * s
			bx := (w - bw) / 2
			by := h - barcodeBottomInset*s - bh
			if st.ShowCaption {
				by -= (st.CaptionSize + barcodeCaptionGap) * s
			}
			r.drawBarcode(dc, value, st, bx, by, bw, bh, s)
		}
	}

	if cfg.Logo != nil && len(cfg.Logo.Image) > 0 {
		drawLogo(dc, *cfg.Logo, w, h, s)
	}

	return downsample(dc.Image(), cfg), nil
}

// drawBorder strokes the label border inset by the scaled border width.
func drawBorder(dc *gg.Context, w, h, s int) {
	b := borderWidth * s
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(float64(b))
	dc.DrawRectangle(float64(b), float64(b), float64(w-2*b), float64(h-2*b))
	dc.Stroke()
}

// drawPlaceholder draws the centered "No data" caption used when there is
// nothing to render.
func (r *Renderer) drawPlaceholder(dc *gg.Context, w, h, s int) {
	face := r.fonts.Resolve(float64(placeholderSize*s), false)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	dc.SetRGB(0.5, 0.5, 0.5)
	dc.DrawStringAnchored(placeholderText, float64(w)/2, float64(h)/2, 0.5, 0.5)
}

// downsample resizes the working canvas to the configured output size with
// Lanczos resampling.
func downsample(img image.Image, cfg Config) image.Image {
	return imaging.Resize(img, cfg.Width, cfg.Height, imaging.Lanczos)
}
