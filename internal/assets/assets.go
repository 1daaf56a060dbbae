// Package assets loads the named sprites the renderer draws entities with.
// A sheet is only usable once every required sprite is present; a missing
// or broken sprite is a fatal load error that the host reports and never
// retries.
package assets

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/core"
)

//go:embed sprites.yaml
var defaultSheetYAML []byte

// Kind names a sprite, one per entity variant.
type Kind string

const (
	Player     Kind = "player"
	Cactus     Kind = "cactus"
	Rock       Kind = "rock"
	Log        Kind = "log"
	Bird       Kind = "bird"
	Goal       Kind = "goal"
	Coin       Kind = "coin"
	Star       Kind = "star"
	Background Kind = "background"
)

// Required lists every sprite a sheet must provide.
var Required = []Kind{Player, Cactus, Rock, Log, Bird, Goal, Coin, Star, Background}

var (
	// ErrMissingSprite is returned when a required sprite is absent.
	ErrMissingSprite = errors.New("assets: missing sprite")
	// ErrEmptySprite is returned when a sprite has no visible rows.
	ErrEmptySprite = errors.New("assets: empty sprite")
)

// Sprite is an ASCII image with a single foreground color.
type Sprite struct {
	Rows  []string
	Color core.Color
}

type spriteDoc struct {
	Color string   `yaml:"color"`
	Rows  []string `yaml:"rows"`
}

// Sheet holds a complete, validated set of sprites.
type Sheet struct {
	sprites map[Kind]Sprite
}

// Sprite returns the sprite for k. Sheets are validated on load, so every
// Required kind is present.
func (s *Sheet) Sprite(k Kind) Sprite {
	return s.sprites[k]
}

// Kinds returns the sprite names in the sheet, sorted.
func (s *Sheet) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.sprites))
	for k := range s.sprites {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Parse decodes and validates a YAML sprite sheet.
func Parse(data []byte) (*Sheet, error) {
	var docs map[string]spriteDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("assets: cannot parse sprite sheet: %w", err)
	}

	sheet := &Sheet{sprites: make(map[Kind]Sprite, len(docs))}
	for name, doc := range docs {
		color, ok := core.ParseColor(doc.Color)
		if !ok {
			return nil, fmt.Errorf("assets: sprite %q: unknown color %q", name, doc.Color)
		}
		sheet.sprites[Kind(name)] = Sprite{Rows: doc.Rows, Color: color}
	}

	for _, k := range Required {
		sp, ok := sheet.sprites[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSprite, k)
		}
		if !visible(sp.Rows) {
			return nil, fmt.Errorf("%w: %s", ErrEmptySprite, k)
		}
	}
	return sheet, nil
}

func visible(rows []string) bool {
	for _, r := range rows {
		for _, ch := range r {
			if ch != ' ' {
				return true
			}
		}
	}
	return false
}

// Provider delivers a sprite sheet. Load may block; hosts call it off the
// frame loop and only start ticking once it returns successfully.
type Provider interface {
	Load(ctx context.Context) (*Sheet, error)
}

// EmbeddedProvider serves the sheet compiled into the binary.
type EmbeddedProvider struct{}

// Load implements Provider.
func (EmbeddedProvider) Load(ctx context.Context) (*Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(defaultSheetYAML)
}

// FileProvider reads a sheet from disk.
type FileProvider struct {
	Path string
}

// Load implements Provider.
func (p FileProvider) Load(ctx context.Context) (*Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot read sprite sheet %s: %w", p.Path, err)
	}
	return Parse(data)
}

// NewProvider returns a FileProvider for path, or the embedded sheet when
// path is empty.
func NewProvider(path string) Provider {
	if path == "" {
		return EmbeddedProvider{}
	}
	return FileProvider{Path: path}
}
