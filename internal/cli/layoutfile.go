package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/label"
)

// layoutFile is the TOML representation of a label layout:
//
//	[canvas]
//	width = 400
//	height = 200
//
//	[[field]]
//	name = "Product_Name"
//	font_size = 14
//	bold = true
//
//	[[field]]
//	name = "Price"
//	new_line = false
//
//	[barcode]
//	field = "SKU"
//	height = 40
//	show_caption = true
//
//	[logo]
//	path = "logo.png"
//	position = "top-right"
//	size = 60
//	margin = 10
type layoutFile struct {
	Canvas  canvasEntry   `toml:"canvas"`
	Fields  []fieldEntry  `toml:"field"`
	Barcode *barcodeEntry `toml:"barcode"`
	Logo    *logoEntry    `toml:"logo"`
}

type canvasEntry struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type fieldEntry struct {
	Name     string `toml:"name"`
	FontSize int    `toml:"font_size"`
	Bold     bool   `toml:"bold"`
	NewLine  *bool  `toml:"new_line"` // pointer so "unset" defaults to true
}

type barcodeEntry struct {
	Field       string `toml:"field"`
	Height      int    `toml:"height"`
	ShowCaption bool   `toml:"show_caption"`
	CaptionSize int    `toml:"caption_font_size"`
}

type logoEntry struct {
	Path     string `toml:"path"`
	Position string `toml:"position"`
	Size     int    `toml:"size"`
	Margin   int    `toml:"margin"`
}

// Default canvas size when the layout file leaves it unset.
const (
	defaultCanvasWidth  = 400
	defaultCanvasHeight = 200
)

// LoadLayout reads a TOML layout file into a label.Config. A relative logo
// path is resolved against the layout file's directory. The returned
// config is validated.
func LoadLayout(path string) (label.Config, error) {
	var file layoutFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return label.Config{}, errors.Wrap(errors.ErrCodeParse, err, "parse layout %s", path)
	}

	cfg := label.Config{
		Width:  file.Canvas.Width,
		Height: file.Canvas.Height,
		Styles: make(map[string]label.FieldStyle, len(file.Fields)),
	}
	if cfg.Width == 0 {
		cfg.Width = defaultCanvasWidth
	}
	if cfg.Height == 0 {
		cfg.Height = defaultCanvasHeight
	}

	for _, f := range file.Fields {
		cfg.Fields = append(cfg.Fields, f.Name)
		newLine := true
		if f.NewLine != nil {
			newLine = *f.NewLine
		}
		size := f.FontSize
		if size == 0 {
			size = label.DefaultFontSize
		}
		cfg.Styles[f.Name] = label.FieldStyle{
			FontSize: size,
			Bold:     f.Bold,
			NewLine:  newLine,
		}
	}

	if file.Barcode != nil && file.Barcode.Field != "" {
		cfg.BarcodeField = file.Barcode.Field
		cfg.Barcode = label.BarcodeStyle{
			Height:      file.Barcode.Height,
			ShowCaption: file.Barcode.ShowCaption,
			CaptionSize: file.Barcode.CaptionSize,
		}
	}

	if file.Logo != nil && file.Logo.Path != "" {
		logoPath := file.Logo.Path
		if !filepath.IsAbs(logoPath) {
			logoPath = filepath.Join(filepath.Dir(path), logoPath)
		}
		data, err := os.ReadFile(logoPath)
		if err != nil {
			return label.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read logo %s", logoPath)
		}
		cfg.Logo = &label.Logo{
			Image:    data,
			Position: label.Position(file.Logo.Position),
			Size:     file.Logo.Size,
			Margin:   file.Logo.Margin,
		}
		if cfg.Logo.Position == "" {
			cfg.Logo.Position = label.TopRight
		}
	}

	if err := cfg.Validate(); err != nil {
		return label.Config{}, err
	}
	return cfg, nil
}
