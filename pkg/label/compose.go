package label

import (
	"strings"

	"golang.org/x/image/font"

	"github.com/labelmint/labelmint/pkg/fonts"
	"github.com/labelmint/labelmint/pkg/table"
)

// Separator between fields sharing a line.
const fieldSeparator = "  |  "

// Value truncation length for overcrowded multi-field lines. Single-field
// lines use the ellipsis fit in fitSingle instead; the two policies are
// intentionally distinct (a multi-field line shares its width budget across
// fields, so each value gets a flat cut rather than a measured fit).
const multiFieldValueMax = 8

// Domain words shortened when a line overflows its width budget.
var abbreviations = []struct{ long, short string }{
	{"_", " "},
	{"Manufacturer", "Mfg"},
	{"Product", "Prod"},
}

// renderedLine is one drawable string with its resolved face and pixel
// size at working-canvas resolution. Lines are intermediate values,
// discarded after drawing.
type renderedLine struct {
	text string
	face font.Face
	size int
}

// lineItem is one field queued for a line before fitting.
type lineItem struct {
	field string
	value string
	style FieldStyle
}

// composer groups fields into lines and fits each line into maxWidth.
type composer struct {
	fonts    *fonts.Provider
	scale    int
	maxWidth float64
}

// compose produces the drawable text lines for a row. Fields absent or
// null in the row are omitted; a field whose font cannot be resolved is
// dropped silently rather than failing the render.
func (c *composer) compose(cfg Config, row table.Row) []renderedLine {
	groups := partition(cfg, row)

	out := make([]renderedLine, 0, len(groups))
	for _, group := range groups {
		var line renderedLine
		if len(group) == 1 {
			line = c.fitSingle(group[0])
		} else {
			line = c.fitMulti(group)
		}
		if line.face == nil || line.text == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// partition walks the configured fields in order and groups them into
// lines. A field with NewLine set closes the line being built (if any) and
// occupies a line of its own; a field with NewLine unset appends to the
// line currently being built, so consecutive same-line fields accumulate.
func partition(cfg Config, row table.Row) [][]lineItem {
	var (
		groups  [][]lineItem
		current []lineItem
	)
	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}

	for _, field := range cfg.textFields() {
		value, ok := row.Lookup(field)
		if !ok {
			continue
		}
		st := cfg.styleFor(field)
		if st.NewLine {
			flush()
		}
		current = append(current, lineItem{field: field, value: value, style: st})
		if st.NewLine {
			flush()
		}
	}
	flush()
	return groups
}

// fitSingle fits a "name: value" string into the width budget. The fit is
// staged: first the field name is abbreviated, then the value is truncated
// with an ellipsis, preferring to cut at a comma boundary. The result is
// guaranteed strictly narrower than the budget.
func (c *composer) fitSingle(item lineItem) renderedLine {
	sizePx := item.style.FontSize * c.scale
	face := c.fonts.Resolve(float64(sizePx), item.style.Bold)
	if face == nil {
		return renderedLine{}
	}

	text := item.field + ": " + item.value
	if c.measure(face, text) < c.maxWidth {
		return renderedLine{text: text, face: face, size: sizePx}
	}

	short := abbreviate(item.field)
	text = short + ": " + item.value
	width := c.measure(face, text)
	if width >= c.maxWidth {
		text = truncateWithEllipsis(short, item.value, width, c.maxWidth)
		// Estimate-based truncation can still overshoot by a character or
		// two; tighten until the measured width is strictly inside the
		// budget.
		for c.measure(face, text) >= c.maxWidth {
			trimmed := []rune(strings.TrimSuffix(text, "..."))
			if len(trimmed) <= 1 {
				break
			}
			text = string(trimmed[:len(trimmed)-1]) + "..."
		}
	}
	return renderedLine{text: text, face: face, size: sizePx}
}

// truncateWithEllipsis cuts a "name: value" string down to the character
// budget implied by the average glyph width. When the value contains a
// comma and the prefix up to it fits, the cut lands on the comma boundary.
func truncateWithEllipsis(name, value string, width, maxWidth float64) string {
	text := name + ": " + value
	runes := []rune(text)

	avg := width / float64(len(runes))
	maxChars := int(maxWidth/avg) - 3
	if maxChars < 4 {
		maxChars = 4
	}
	if len(runes) <= maxChars {
		return text
	}

	if idx := strings.Index(value, ","); idx >= 0 {
		candidate := name + ": " + value[:idx] + "..."
		if len([]rune(candidate)) <= maxChars {
			return candidate
		}
	}
	return string(runes[:maxChars]) + "..."
}

// fitMulti joins several fields onto one line at the largest font size
// among them. On overflow every value is cut to a flat character budget;
// see the note on multiFieldValueMax.
func (c *composer) fitMulti(items []lineItem) renderedLine {
	largest := items[0]
	for _, it := range items[1:] {
		if it.style.FontSize > largest.style.FontSize {
			largest = it
		}
	}
	sizePx := largest.style.FontSize * c.scale
	face := c.fonts.Resolve(float64(sizePx), largest.style.Bold)
	if face == nil {
		return renderedLine{}
	}

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = abbreviate(it.field) + ": " + it.value
	}
	joined := strings.Join(parts, fieldSeparator)

	if c.measure(face, joined) >= c.maxWidth {
		for i, it := range items {
			value := it.value
			if runes := []rune(value); len(runes) > multiFieldValueMax {
				value = string(runes[:multiFieldValueMax]) + "..."
			}
			parts[i] = abbreviate(it.field) + ": " + value
		}
		joined = strings.Join(parts, fieldSeparator)
	}
	return renderedLine{text: joined, face: face, size: sizePx}
}

// measure returns the advance width of s in pixels.
func (c *composer) measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// abbreviate applies the conventional domain abbreviations to a field name.
func abbreviate(name string) string {
	for _, a := range abbreviations {
		name = strings.ReplaceAll(name, a.long, a.short)
	}
	return name
}
