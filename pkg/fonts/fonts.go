// Package fonts resolves point sizes to renderable font faces.
//
// The provider searches the host system for a fixed, ordered list of common
// sans-serif fonts via go-findfont and parses the first match with freetype.
// Parsed fonts and derived faces are cached, so repeated lookups during a
// batch render are cheap. When no candidate can be located the provider
// falls back to the built-in fixed-size bitmap font, so resolution never
// fails outward.
//
// Faces returned by Resolve are not safe for concurrent drawing; callers
// that parallelize rendering must use one Provider per goroutine.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Candidate font files, tried in order. The names match the common install
// names on Windows, macOS and Linux font directories.
var (
	regularCandidates = []string{
		"arial.ttf",
		"Helvetica.ttf",
		"DejaVuSans.ttf",
		"LiberationSans-Regular.ttf",
	}
	boldCandidates = []string{
		"arialbd.ttf",
		"Helvetica-Bold.ttf",
		"DejaVuSans-Bold.ttf",
		"LiberationSans-Bold.ttf",
	}
)

type faceKey struct {
	path string
	size float64
}

// Provider resolves pixel sizes to font faces with caching.
// The zero value is not usable; construct with NewProvider.
type Provider struct {
	mu     sync.Mutex
	parsed map[string]*truetype.Font // resolved path -> parsed font
	paths  map[string]string         // candidate name -> path, "" on miss
	faces  map[faceKey]font.Face
}

// NewProvider creates an empty font provider.
func NewProvider() *Provider {
	return &Provider{
		parsed: make(map[string]*truetype.Font),
		paths:  make(map[string]string),
		faces:  make(map[faceKey]font.Face),
	}
}

// Resolve returns a font face at the requested pixel size. Bold selects the
// bold variants first, falling back to the regular candidates. If no system
// font can be located or parsed, the built-in bitmap face is returned; the
// result is never nil.
func (p *Provider) Resolve(sizePx float64, bold bool) font.Face {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := regularCandidates
	if bold {
		candidates = append(append([]string{}, boldCandidates...), regularCandidates...)
	}

	for _, name := range candidates {
		f := p.lookup(name)
		if f == nil {
			continue
		}
		key := faceKey{path: p.paths[name], size: sizePx}
		if face, ok := p.faces[key]; ok {
			return face
		}
		face := truetype.NewFace(f, &truetype.Options{
			Size:    sizePx,
			DPI:     72, // size in points == size in pixels
			Hinting: font.HintingFull,
		})
		p.faces[key] = face
		return face
	}

	return basicfont.Face7x13
}

// lookup finds and parses a candidate font, caching both hits and misses.
// Callers must hold p.mu.
func (p *Provider) lookup(name string) *truetype.Font {
	path, seen := p.paths[name]
	if !seen {
		found, err := findfont.Find(name)
		if err != nil {
			p.paths[name] = ""
			return nil
		}
		path = found
		p.paths[name] = path
	}
	if path == "" {
		return nil
	}

	if f, ok := p.parsed[path]; ok {
		return f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		p.paths[name] = ""
		return nil
	}
	f, err := truetype.Parse(data)
	if err != nil {
		p.paths[name] = ""
		return nil
	}
	p.parsed[path] = f
	return f
}
