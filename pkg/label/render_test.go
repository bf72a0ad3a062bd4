package label

import (
	"bytes"
	"image"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/table"
)

func testConfig() Config {
	return Config{
		Width:  400,
		Height: 200,
		Fields: []string{"Name", "SKU"},
		Styles: map[string]FieldStyle{
			"Name": {FontSize: 14, Bold: true, NewLine: true},
			"SKU":  {FontSize: 10, NewLine: true},
		},
	}
}

func testRow() table.Row {
	return table.Row{"Name": "Steel Widget", "SKU": "SKU-001"}
}

// pixEqual compares two images pixel for pixel.
func pixEqual(a, b image.Image) bool {
	na, nb := imaging.Clone(a), imaging.Clone(b)
	return na.Rect == nb.Rect && bytes.Equal(na.Pix, nb.Pix)
}

func TestRenderDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"Default", 400, 200},
		{"MinCanvas", MinWidth, MinHeight},
		{"MaxCanvas", MaxWidth, MaxHeight},
		{"Tall", 300, 500},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Width, cfg.Height = tt.width, tt.height

			img, err := r.Render(testRow(), cfg)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.BarcodeField = "SKU"

	for _, tt := range []struct {
		name string
		opts []Option
	}{
		{"Code128", nil},
		{"FallbackEncoder", []Option{WithEncoder(nil)}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewRenderer(tt.opts...).Render(testRow(), cfg)
			if err != nil {
				t.Fatalf("first render: %v", err)
			}
			b, err := NewRenderer(tt.opts...).Render(testRow(), cfg)
			if err != nil {
				t.Fatalf("second render: %v", err)
			}
			if !pixEqual(a, b) {
				t.Error("identical inputs produced different images")
			}
		})
	}
}

func TestRenderCanvasBounds(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"WidthTooSmall", MinWidth - 1, 200},
		{"WidthTooLarge", MaxWidth + 1, 200},
		{"HeightTooSmall", 400, MinHeight - 1},
		{"HeightTooLarge", 400, MaxHeight + 1},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Width, cfg.Height = tt.width, tt.height

			_, err := r.Render(testRow(), cfg)
			if err == nil {
				t.Fatal("expected error for out-of-range canvas")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidConfig {
				t.Errorf("error code = %s, want %s", code, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestRenderPlaceholder(t *testing.T) {
	r := NewRenderer()

	for _, tt := range []struct {
		name string
		row  table.Row
		cfg  Config
	}{
		{"EmptyRow", table.Row{}, testConfig()},
		{"NilRow", nil, testConfig()},
		{"NoFields", testRow(), Config{Width: 400, Height: 200}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			img, err := r.Render(tt.row, tt.cfg)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.cfg.Width || b.Dy() != tt.cfg.Height {
				t.Fatalf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.cfg.Width, tt.cfg.Height)
			}
			// The placeholder caption sits in the middle of the canvas, well
			// away from the border.
			if !regionHasDark(img, b.Dx()/4, b.Dy()/4, 3*b.Dx()/4, 3*b.Dy()/4) {
				t.Error("placeholder canvas center is blank")
			}
		})
	}
}

func TestRenderOmitsAbsentField(t *testing.T) {
	r := NewRenderer()
	row := table.Row{"Name": "Steel Widget"}

	withGhost := testConfig() // includes SKU, which the row lacks
	without := testConfig()
	without.Fields = []string{"Name"}

	a, err := r.Render(row, withGhost)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := r.Render(row, without)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !pixEqual(a, b) {
		t.Error("absent field left a trace on the canvas")
	}
}

func TestRenderBarcodeArea(t *testing.T) {
	row := testRow()

	t.Run("ReservedWhenConfigured", func(t *testing.T) {
		cfg := testConfig()
		cfg.BarcodeField = "SKU"

		img, err := NewRenderer(WithEncoder(nil)).Render(row, cfg)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		// Default bar height 40, bottom inset 20: bars span y 140..160.
		if !regionHasDark(img, 30, 142, 370, 158) {
			t.Error("no bars drawn in the barcode area")
		}
	})

	t.Run("FreeWhenNotConfigured", func(t *testing.T) {
		img, err := NewRenderer().Render(row, testConfig())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		// Without a barcode the bottom strip inside the border stays white.
		if regionHasDark(img, 10, 150, 390, 185) {
			t.Error("bottom strip not blank without a barcode field")
		}
	})

	t.Run("SkippedWhenValueMissing", func(t *testing.T) {
		cfg := testConfig()
		cfg.BarcodeField = "EAN" // not present in the row

		img, err := NewRenderer().Render(row, cfg)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if regionHasDark(img, 10, 150, 390, 185) {
			t.Error("barcode drawn despite missing value")
		}
	})
}

// regionHasDark reports whether any pixel in the rectangle is dark.
func regionHasDark(img image.Image, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r>>8 < 100 && g>>8 < 100 && b>>8 < 100 {
				return true
			}
		}
	}
	return false
}
