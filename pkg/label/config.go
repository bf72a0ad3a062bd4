package label

import (
	"github.com/labelmint/labelmint/pkg/errors"
)

// Canvas size bounds in output pixels.
const (
	MinWidth  = 200
	MaxWidth  = 800
	MinHeight = 100
	MaxHeight = 600
)

// Style bounds and defaults. Out-of-range style values are clamped at read
// time rather than rejected; only the canvas size is a hard error.
const (
	MinFontSize     = 8
	MaxFontSize     = 24
	DefaultFontSize = 12

	MinBarcodeHeight     = 20
	MaxBarcodeHeight     = 120
	DefaultBarcodeHeight = 40
	DefaultCaptionSize   = 10

	MinLogoSize       = 20
	MaxLogoSize       = 150
	DefaultLogoSize   = 60
	MinLogoMargin     = 5
	MaxLogoMargin     = 30
	DefaultLogoMargin = 10
)

// Position names one of the six logo anchor points.
type Position string

// Logo anchor positions: horizontal left/center/right crossed with
// vertical top/bottom.
const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

// valid reports whether p names a known anchor.
func (p Position) valid() bool {
	switch p {
	case TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight:
		return true
	}
	return false
}

// FieldStyle is the per-field typography configuration.
type FieldStyle struct {
	FontSize int  // point size, clamped to [MinFontSize, MaxFontSize]
	Bold     bool // bold font variant
	NewLine  bool // start (and occupy) a line of its own
}

// BarcodeStyle configures the barcode block at the bottom of the label.
type BarcodeStyle struct {
	Height      int  // bar height in output pixels, clamped to [MinBarcodeHeight, MaxBarcodeHeight]
	ShowCaption bool // draw the literal value beneath the bars
	CaptionSize int  // caption point size, snapped to 8/10/12/14/16
}

// Logo configures the optional logo overlay.
type Logo struct {
	Image    []byte   // raw image bytes, any common raster format
	Position Position // one of the six anchors
	Size     int      // longer edge in output pixels
	Margin   int      // offset from the anchored edges in output pixels
}

// Config is the immutable per-render layout configuration. A Config is
// never mutated by the renderer; reconfiguring a layout means building a
// new value.
type Config struct {
	Width  int // output width in pixels
	Height int // output height in pixels

	// Fields lists the columns to render as text, in display order. Names
	// that are absent or null in a given row are skipped silently.
	Fields []string

	// Styles holds per-field typography. Fields without an entry resolve
	// to the defaults (size 12, regular, own line).
	Styles map[string]FieldStyle

	// BarcodeField selects the column encoded as a barcode; empty disables
	// the barcode block entirely.
	BarcodeField string
	Barcode      BarcodeStyle

	// Logo is the optional logo overlay; nil disables it.
	Logo *Logo
}

// Validate checks the canvas bounds and field names. This is the only
// caller-visible configuration failure; everything else resolves through
// defaults and clamping.
func (c Config) Validate() error {
	if c.Width < MinWidth || c.Width > MaxWidth {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas width %d out of range [%d, %d]", c.Width, MinWidth, MaxWidth)
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas height %d out of range [%d, %d]", c.Height, MinHeight, MaxHeight)
	}
	for _, f := range c.Fields {
		if err := errors.ValidateFieldName(f); err != nil {
			return err
		}
	}
	if c.Logo != nil && !c.Logo.Position.valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown logo position %q", c.Logo.Position)
	}
	return nil
}

// styleFor resolves the effective style for a field, applying defaults for
// missing entries and clamping out-of-range sizes.
func (c Config) styleFor(field string) FieldStyle {
	st, ok := c.Styles[field]
	if !ok {
		return FieldStyle{FontSize: DefaultFontSize, NewLine: true}
	}
	st.FontSize = clamp(st.FontSize, MinFontSize, MaxFontSize, DefaultFontSize)
	return st
}

// captionSizes are the allowed caption point sizes.
var captionSizes = []int{8, 10, 12, 14, 16}

// barcodeStyle resolves the effective barcode style.
func (c Config) barcodeStyle() BarcodeStyle {
	st := c.Barcode
	st.Height = clamp(st.Height, MinBarcodeHeight, MaxBarcodeHeight, DefaultBarcodeHeight)
	st.CaptionSize = snapCaptionSize(st.CaptionSize)
	return st
}

// snapCaptionSize resolves a caption size to the nearest allowed step,
// with zero (unset) taking the default. Ties resolve to the smaller step.
func snapCaptionSize(v int) int {
	if v == 0 {
		return DefaultCaptionSize
	}
	best := captionSizes[0]
	for _, s := range captionSizes[1:] {
		if abs(v-s) < abs(v-best) {
			best = s
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// resolved returns the logo with size and margin clamped to their bounds.
func (l Logo) resolved() Logo {
	l.Size = clamp(l.Size, MinLogoSize, MaxLogoSize, DefaultLogoSize)
	l.Margin = clamp(l.Margin, MinLogoMargin, MaxLogoMargin, DefaultLogoMargin)
	return l
}

// clamp constrains v to [lo, hi], substituting def when v is zero (unset).
func clamp(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// textFields returns the configured fields excluding the barcode field,
// preserving order. The barcode field never renders as text.
func (c Config) textFields() []string {
	if c.BarcodeField == "" {
		return c.Fields
	}
	out := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		if f != c.BarcodeField {
			out = append(out, f)
		}
	}
	return out
}
