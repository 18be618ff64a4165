// Package config assembles the render settings from built-in defaults, a
// profile file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/mapalb/album"
	"github.com/ByLCY/mapalb/dsl"
	"github.com/ByLCY/mapalb/env"
	"github.com/ByLCY/mapalb/layout"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvProfile  = "MAPALB_PROFILE"
	EnvFont     = "MAPALB_FONT"
	EnvImageDPI = "MAPALB_IMAGE_DPI"
)

// Config holds everything the driver needs besides the album itself.
type Config struct {
	Name        string
	Flags       layout.Flags
	FontPath    string
	FontScale   float64
	FirstPage   int
	LastPage    int
	ChunkSize   int
	ImageDPI    float64
	BorderWidth layout.Length
	Output      string
	Rules       []album.Rule
}

// Default returns the settings used when no profile is given.
func Default() Config {
	return Config{
		Name:        "default",
		Flags:       layout.DefaultFlags(),
		FontScale:   0.75,
		FirstPage:   1,
		ChunkSize:   10,
		ImageDPI:    150,
		BorderWidth: layout.Length{Value: 0.5, Unit: layout.UnitPT},
		Output:      "${out}${chunk}.pdf",
	}
}

// Load returns the defaults overridden by the profile at path (if any) and by
// the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open profile %s: %w", path, err)
		}
		defer f.Close()
		p, err := dsl.Parse(f)
		if err != nil {
			return cfg, fmt.Errorf("parse profile %s: %w", path, err)
		}
		if err := cfg.Apply(p); err != nil {
			return cfg, fmt.Errorf("profile %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Rewriter returns a path rewriter built from the profile rules.
func (c Config) Rewriter() *album.Rewriter {
	return album.NewRewriter(c.Rules...)
}

// Apply overrides c with the entries of a parsed profile.
func (c *Config) Apply(p *dsl.Profile) error {
	if p == nil {
		return nil
	}
	c.Name = p.Name
	for _, e := range p.Entries {
		switch {
		case e.Rewrite != nil:
			c.Rules = append(c.Rules, album.Rule{From: string(e.Rewrite.From), To: string(e.Rewrite.To)})
		case e.Setting != nil:
			if err := c.applySetting(e.Setting); err != nil {
				return fmt.Errorf("line %d: %s: %w", e.Setting.Pos.Line, e.Setting.Key, err)
			}
		}
	}
	return nil
}

func (c *Config) applySetting(s *dsl.Setting) error {
	vals := make([]string, len(s.Values))
	for i, v := range s.Values {
		vals[i] = v.Raw()
	}
	one := func() (string, error) {
		if len(vals) != 1 {
			return "", fmt.Errorf("expected one value, got %d", len(vals))
		}
		return vals[0], nil
	}

	var err error
	var v string
	switch s.Key {
	case "rotate":
		if v, err = one(); err == nil {
			c.Flags.Rotate, err = parseBool(v)
		}
	case "zoom-on-rotate":
		if v, err = one(); err == nil {
			c.Flags.ZoomOnRotate, err = parseBool(v)
		}
	case "clip":
		if v, err = one(); err == nil {
			c.Flags.Clip, err = parseBool(v)
		}
	case "border":
		if v, err = one(); err == nil {
			c.Flags.Border, err = parseBool(v)
		}
	case "border-width":
		if v, err = one(); err == nil {
			c.BorderWidth, err = layout.ParseLength(v)
		}
	case "font":
		c.FontPath, err = one()
	case "font-scale":
		if v, err = one(); err == nil {
			c.FontScale, err = parsePositive(v)
		}
	case "image-dpi":
		if v, err = one(); err == nil {
			c.ImageDPI, err = parsePositive(v)
		}
	case "chunk":
		if v, err = one(); err == nil {
			c.ChunkSize, err = strconv.Atoi(v)
			if err == nil && c.ChunkSize <= 0 {
				err = fmt.Errorf("chunk must be positive")
			}
		}
	case "pages":
		err = c.applyPages(vals)
	case "output":
		c.Output, err = one()
	default:
		err = fmt.Errorf("unknown setting")
	}
	return err
}

// applyPages accepts "pages: first" or "pages: first last"; last 0 means no
// upper bound.
func (c *Config) applyPages(vals []string) error {
	if len(vals) == 0 || len(vals) > 2 {
		return fmt.Errorf("expected first [last], got %d values", len(vals))
	}
	first, err := strconv.Atoi(vals[0])
	if err != nil {
		return err
	}
	last := 0
	if len(vals) == 2 {
		if last, err = strconv.Atoi(vals[1]); err != nil {
			return err
		}
		if last != 0 && last < first {
			return fmt.Errorf("last page %d before first page %d", last, first)
		}
	}
	c.FirstPage, c.LastPage = first, last
	return nil
}

// ApplyEnv overrides the font path and image resolution from the environment.
func (c *Config) ApplyEnv() error {
	c.FontPath = env.StringVariable(EnvFont, c.FontPath)
	dpi, err := env.FloatVariable(EnvImageDPI, c.ImageDPI)
	if err != nil {
		return err
	}
	if dpi <= 0 {
		return fmt.Errorf("%s must be positive", EnvImageDPI)
	}
	c.ImageDPI = dpi
	return nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

func parsePositive(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("must be positive, got %g", f)
	}
	return f, nil
}
