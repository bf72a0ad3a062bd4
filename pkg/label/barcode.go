package label

import (
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/fogleman/gg"
)

// Encoder produces a real barcode symbology for a value. Encoders are
// always invoked without caption generation; the caption, when enabled, is
// drawn separately so it never appears twice.
type Encoder func(value string) (barcode.Barcode, error)

// Code128 encodes a value as a Code 128 barcode, the default symbology:
// linear, alphanumeric-capable, and checksum-bearing.
func Code128(value string) (barcode.Barcode, error) {
	return code128.Encode(value)
}

// Fallback barcode geometry, in working-canvas pixels.
const (
	fallbackBarCap     = 60 // maximum number of bars
	fallbackBorder     = 3
	fallbackSideInset  = 15
	fallbackTopInset   = 6
	barcodeCaptionGap  = 5 // output pixels between bars and caption
	barcodeSideMargin  = 20
	barcodeBottomInset = 20
)

// drawBarcode renders the barcode block into the given box. The primary
// path encodes with r.encoder and scales the module-resolution result up
// to the box with barcode.Scale, which replicates modules whole so bar
// edges stay hard; interpolating resamplers would smear them into gray.
// When the encoder is absent or fails, the deterministic fallback pattern
// is drawn instead. This function never fails; at worst the box contains
// the fallback placeholder.
func (r *Renderer) drawBarcode(dc *gg.Context, value string, st BarcodeStyle, x, y, w, h, scale int) {
	encoded := false
	if r.encoder != nil {
		if bc, err := r.encoder(value); err == nil {
			if scaled, err := barcode.Scale(bc, w, h); err == nil {
				dc.DrawImage(scaled, x, y)
				encoded = true
			}
		}
	}
	if !encoded {
		drawFallbackBarcode(dc, x, y, w, h, value)
	}

	if st.ShowCaption {
		sizePx := st.CaptionSize * scale
		face := r.fonts.Resolve(float64(sizePx), false)
		if face == nil {
			return
		}
		dc.SetFontFace(face)
		dc.SetRGB(0, 0, 0)
		tw, _ := dc.MeasureString(value)
		tx := float64(x) + (float64(w)-tw)/2
		ty := float64(y+h+barcodeCaptionGap*scale) + float64(sizePx)
		dc.DrawString(value, tx, ty)
	}
}

// drawFallbackBarcode draws a bordered box filled with vertical bars
// derived from the value's character codes. The pattern is deterministic
// for a given value but is a visual placeholder only, not a scannable
// symbology.
func drawFallbackBarcode(dc *gg.Context, x, y, w, h int, value string) {
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(fallbackBorder)
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	dc.Stroke()

	runes := []rune(value)
	if len(runes) == 0 {
		return
	}

	count := len(runes) * 4
	if count > fallbackBarCap {
		count = fallbackBarCap
	}
	barWidth := (w - 2*fallbackSideInset) / count
	if barWidth < 3 {
		barWidth = 3
	}

	for i := 0; i < count; i++ {
		code := int(runes[i%len(runes)])

		var barHeight int
		switch {
		case code%4 == 0:
			barHeight = h - 2*fallbackTopInset
		case code%3 == 0:
			barHeight = h - 3*fallbackTopInset
		default:
			barHeight = h - fallbackTopInset - fallbackTopInset/2
		}

		if (code+i)%3 == 0 {
			continue
		}
		bx := x + fallbackSideInset + i*barWidth
		if bx+barWidth > x+w-fallbackSideInset {
			break
		}
		dc.DrawRectangle(float64(bx), float64(y+fallbackTopInset), float64(barWidth-1), float64(barHeight))
		dc.Fill()
	}
}
