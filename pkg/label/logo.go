package label

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// drawLogo decodes, scales and composites the configured logo onto the
// working canvas. The source may be any registered raster format in any
// color mode; it is normalized to NRGBA so the composite always blends
// through the logo's own alpha channel. Any decode or processing failure
// leaves the canvas untouched — a label renders without its logo rather
// than failing.
func drawLogo(dc *gg.Context, lg Logo, canvasW, canvasH, scale int) {
	src, _, err := image.Decode(bytes.NewReader(lg.Image))
	if err != nil {
		return
	}

	lg = lg.resolved()
	w, h := fitDimensions(src.Bounds(), lg.Size*scale)
	if w == 0 || h == 0 {
		return
	}

	resized := imaging.Resize(imaging.Clone(src), w, h, imaging.Lanczos)
	x, y := logoOrigin(lg.Position, canvasW, canvasH, w, h, lg.Margin*scale)
	dc.DrawImage(resized, x, y)
}

// fitDimensions computes output dimensions preserving the source aspect
// ratio such that the longer edge equals size.
func fitDimensions(bounds image.Rectangle, size int) (int, int) {
	sw, sh := bounds.Dx(), bounds.Dy()
	if sw <= 0 || sh <= 0 {
		return 0, 0
	}
	if sw >= sh {
		h := int(math.Round(float64(size) * float64(sh) / float64(sw)))
		if h < 1 {
			h = 1
		}
		return size, h
	}
	w := int(math.Round(float64(size) * float64(sw) / float64(sh)))
	if w < 1 {
		w = 1
	}
	return w, size
}

// logoOrigin computes the top-left placement for a logo of the given
// dimensions. Left/right anchors offset by the margin from the respective
// edge; center anchors are horizontally centered. Vertical placement is
// the margin from the top or bottom edge.
func logoOrigin(pos Position, canvasW, canvasH, w, h, margin int) (int, int) {
	var x int
	switch pos {
	case TopLeft, BottomLeft:
		x = margin
	case TopCenter, BottomCenter:
		x = (canvasW - w) / 2
	case TopRight, BottomRight:
		x = canvasW - w - margin
	}

	y := margin
	switch pos {
	case BottomLeft, BottomCenter, BottomRight:
		y = canvasH - h - margin
	}
	return x, y
}
