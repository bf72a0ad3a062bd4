package label

import (
	"testing"

	"github.com/fogleman/gg"
)

func TestCode128(t *testing.T) {
	bc, err := Code128("SKU-001")
	if err != nil {
		t.Fatalf("Code128: %v", err)
	}
	if bc.Bounds().Dx() == 0 {
		t.Error("encoded barcode has no width")
	}
	if bc.Metadata().CodeKind != "Code 128" {
		t.Errorf("code kind = %q, want Code 128", bc.Metadata().CodeKind)
	}
}

func fallbackCanvas(value string) *gg.Context {
	dc := gg.NewContext(400, 100)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawFallbackBarcode(dc, 50, 10, 300, 80, value)
	return dc
}

func TestFallbackBarcodeDeterministic(t *testing.T) {
	a := fallbackCanvas("ABC123").Image()
	b := fallbackCanvas("ABC123").Image()
	if !pixEqual(a, b) {
		t.Error("same value produced different fallback patterns")
	}

	c := fallbackCanvas("XYZ789").Image()
	if pixEqual(a, c) {
		t.Error("different values produced identical fallback patterns")
	}
}

func TestFallbackBarcodeBox(t *testing.T) {
	img := fallbackCanvas("ABC123").Image()

	// Border stroke along the left edge of the box.
	if !regionHasDark(img, 49, 45, 52, 55) {
		t.Error("no border stroke on the box edge")
	}
	// Bars inside the box.
	if !regionHasDark(img, 70, 30, 330, 70) {
		t.Error("no bars inside the box")
	}
	// Outside the box stays untouched.
	if regionHasDark(img, 0, 0, 45, 100) {
		t.Error("drawing leaked outside the box")
	}
}

func TestFallbackBarcodeEmptyValue(t *testing.T) {
	img := fallbackCanvas("").Image()

	// The empty value still gets the bordered box but no bars.
	if !regionHasDark(img, 49, 45, 52, 55) {
		t.Error("no border stroke for empty value")
	}
	if regionHasDark(img, 70, 30, 330, 70) {
		t.Error("bars drawn for empty value")
	}
}

func TestRenderBarcodeCaption(t *testing.T) {
	cfg := testConfig()
	cfg.BarcodeField = "SKU"
	cfg.Barcode = BarcodeStyle{Height: 40, ShowCaption: true, CaptionSize: 10}

	plain := cfg
	plain.Barcode.ShowCaption = false

	r := NewRenderer(WithEncoder(nil))
	with, err := r.Render(testRow(), cfg)
	if err != nil {
		t.Fatalf("Render with caption: %v", err)
	}
	without, err := r.Render(testRow(), plain)
	if err != nil {
		t.Fatalf("Render without caption: %v", err)
	}
	if pixEqual(with, without) {
		t.Error("caption had no visible effect")
	}

	// With the caption on, the value text sits between the bars and the
	// bottom border.
	if !regionHasDark(with, 100, 166, 300, 178) {
		t.Error("no caption text below the bars")
	}
}

func TestDrawBarcodeModulesSharp(t *testing.T) {
	dc := gg.NewContext(1500, 250)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r := NewRenderer()
	r.drawBarcode(dc, "SKU-001", BarcodeStyle{Height: 40}, 30, 20, 1440, 160, 4)
	img := dc.Image()

	// Module replication keeps every bar-row pixel pure black or white; an
	// interpolating upscale would leave gray gradients on module edges and
	// degrade scanability.
	blurred := 0
	y := 20 + 80 // mid-row
	for x := 30; x < 30+1440; x++ {
		cr, cg, cb, _ := img.At(x, y).RGBA()
		gray := (cr>>8 + cg>>8 + cb>>8) / 3
		if gray > 50 && gray < 205 {
			blurred++
		}
	}
	if blurred != 0 {
		t.Errorf("%d blurred edge pixels in the bar row, want 0", blurred)
	}
}

func TestRenderEncoderFailureFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.BarcodeField = "SKU"

	// Code 128 cannot encode values outside its character set, so the
	// fallback pattern must appear instead of an error.
	row := testRow()
	row["SKU"] = "数据"

	img, err := NewRenderer().Render(row, cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !regionHasDark(img, 30, 142, 370, 158) {
		t.Error("no fallback pattern after encoder failure")
	}
}
