package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/park285/neonchess/internal/layout"
)

const (
	DefaultPinkName    = "Pink"
	DefaultBlueName    = "Blue"
	DefaultWindowScale = 0.75
	DefaultWebAddr     = "127.0.0.1:8973"

	maxWindowScale = 4.0
)

type AppConfig struct {
	PinkName string
	BlueName string

	LayoutFile string
	Layout     layout.Layout

	MessagesDir string
	ShowHints   bool

	WindowScale float64
	WebAddr     string
}

// Load reads NEONCHESS_* variables. Unparseable numbers and booleans keep
// their defaults; a bad layout file is an error.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		PinkName:    DefaultPinkName,
		BlueName:    DefaultBlueName,
		Layout:      layout.Default(),
		WindowScale: DefaultWindowScale,
		WebAddr:     DefaultWebAddr,
	}

	if v := strings.TrimSpace(os.Getenv("NEONCHESS_PINK_NAME")); v != "" {
		cfg.PinkName = v
	}
	if v := strings.TrimSpace(os.Getenv("NEONCHESS_BLUE_NAME")); v != "" {
		cfg.BlueName = v
	}
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("NEONCHESS_MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("NEONCHESS_SHOW_HINTS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowHints = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("NEONCHESS_WINDOW_SCALE")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= maxWindowScale {
			cfg.WindowScale = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("NEONCHESS_WEB_ADDR")); v != "" {
		cfg.WebAddr = v
	}

	cfg.LayoutFile = strings.TrimSpace(os.Getenv("NEONCHESS_LAYOUT_FILE"))
	if cfg.LayoutFile != "" {
		lay, err := LoadLayout(cfg.LayoutFile)
		if err != nil {
			return nil, err
		}
		cfg.Layout = lay
	}

	if cfg.PinkName == cfg.BlueName {
		return nil, errors.New("NEONCHESS_PINK_NAME and NEONCHESS_BLUE_NAME must differ")
	}
	return cfg, nil
}

// LoadLayout overlays the YAML file at path on the default layout and
// validates the result. Unknown keys are rejected.
func LoadLayout(path string) (layout.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("open layout file: %w", err)
	}
	defer f.Close()
	return DecodeLayout(f)
}

// DecodeLayout is LoadLayout for an already open reader.
func DecodeLayout(r io.Reader) (layout.Layout, error) {
	lay := layout.Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&lay); err != nil && !errors.Is(err, io.EOF) {
		return layout.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := lay.Validate(); err != nil {
		return layout.Layout{}, err
	}
	return lay, nil
}
