package cardgen

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/dawitk/faydagen/pkg/carddata"
)

// AssetConfig names the template images and font files the compositor
// draws with. These are fixed configuration, validated on first use,
// not caller input.
type AssetConfig struct {
	FrontTemplate string            `yaml:"front_template"`
	BackTemplate  string            `yaml:"back_template"`
	Fonts         map[string]string `yaml:"fonts"` // face key ("latin", "latin-bold", "ethiopic", ...) -> ttf path
}

// Assets memoizes template images and parsed fonts behind a one-time
// idempotent load, so concurrent pipeline invocations share one
// read-only copy instead of re-reading files per call.
type Assets struct {
	cfg AssetConfig

	once      sync.Once
	err       error
	templates map[carddata.Side]image.Image
	fonts     map[string]*truetype.Font
}

// NewAssets wraps an asset configuration. Nothing is loaded until the
// first Template or Font call.
func NewAssets(cfg AssetConfig) *Assets {
	return &Assets{cfg: cfg}
}

// NewAssetsFromMemory builds an asset set from already loaded
// templates and fonts, bypassing file I/O. Used by tests and by hosts
// that embed their assets.
func NewAssetsFromMemory(templates map[carddata.Side]image.Image, fonts map[string]*truetype.Font) *Assets {
	a := &Assets{templates: templates, fonts: fonts}
	a.once.Do(func() {})
	return a
}

func (a *Assets) load() {
	a.templates = make(map[carddata.Side]image.Image, 2)
	a.fonts = make(map[string]*truetype.Font, len(a.cfg.Fonts))

	for side, path := range map[carddata.Side]string{
		carddata.SideFront: a.cfg.FrontTemplate,
		carddata.SideBack:  a.cfg.BackTemplate,
	} {
		if path == "" {
			continue
		}
		img, err := gg.LoadImage(path)
		if err != nil {
			a.err = fmt.Errorf("%w: %s: %v", ErrTemplateLoad, path, err)
			return
		}
		a.templates[side] = img
	}

	for key, path := range a.cfg.Fonts {
		data, err := os.ReadFile(path)
		if err != nil {
			a.err = fmt.Errorf("%w: %s: %v", ErrFontResolution, path, err)
			return
		}
		font, err := truetype.Parse(data)
		if err != nil {
			a.err = fmt.Errorf("%w: %s: %v", ErrFontResolution, path, err)
			return
		}
		a.fonts[key] = font
	}
}

// Template returns the memoized template image for a side.
func (a *Assets) Template(side carddata.Side) (image.Image, error) {
	a.once.Do(a.load)
	if a.err != nil {
		return nil, a.err
	}
	tpl, ok := a.templates[side]
	if !ok {
		return nil, fmt.Errorf("%w: no template configured for side %q", ErrTemplateLoad, side)
	}
	return tpl, nil
}

// Font returns the memoized parsed font for a face key.
func (a *Assets) Font(key string) (*truetype.Font, error) {
	a.once.Do(a.load)
	if a.err != nil {
		return nil, a.err
	}
	font, ok := a.fonts[key]
	if !ok {
		return nil, fmt.Errorf("%w: no font configured for face %q", ErrFontResolution, key)
	}
	return font, nil
}
