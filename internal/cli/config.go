package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/codalotl/seqdiff/internal/diff"
	"github.com/codalotl/seqdiff/internal/q/cascade"
	"github.com/codalotl/seqdiff/internal/tokenize"
)

// Config is seqdiff's configuration loaded from a cascade of sources.
//
// Keys match the json tags, so a config.json uses the same names `seqdiff config` prints.
type Config struct {
	// Format is the output format. See formats.
	Format string `json:"format"`

	// Granularity is the token unit for the edits format: line, word, char, or rune.
	Granularity string `json:"granularity"`

	// Context is the number of unchanged lines around each change.
	Context int `json:"context"`

	// Color is auto, always, or never.
	Color string `json:"color"`

	// Spans is the intra-line highlighting mode: chars, words, or none.
	Spans string `json:"spans"`

	// Width is the split format's total width. 0 means the terminal width, or 120 when not writing to a terminal.
	Width int `json:"width"`

	// MaxEdits bounds the edit distance. 0 means unlimited.
	MaxEdits int `json:"maxedits"`

	// MaxTokens bounds the total number of tokens in both inputs. 0 means unlimited.
	MaxTokens int `json:"maxtokens"`
}

var formats = []string{"unified", "pretty", "split", "markdown", "html", "json", "edits"}

var colorModes = []string{"auto", "always", "never"}

var configDefaults = map[string]any{
	"format":      "unified",
	"granularity": "line",
	"context":     3,
	"color":       "auto",
	"spans":       "chars",
	"width":       0,
	"maxedits":    0,
	"maxtokens":   0,
}

// configEnv maps config keys to the environment variables that can set them.
var configEnv = map[string]string{
	"context":  "SEQDIFF_CONTEXT",
	"format":   "SEQDIFF_FORMAT",
	"color":    "SEQDIFF_COLOR",
	"maxedits": "SEQDIFF_MAX_EDITS",
}

// loadConfig layers, from low to high precedence: defaults, ~/.seqdiff/config.json, the nearest .seqdiff/config.json at or above the working directory, the
// environment, and flagValues (flags explicitly set on the command line, keyed by config key).
func loadConfig(flagValues map[string]any) (Config, map[string]cascade.Provenance, error) {
	loader := cascade.New().
		WithDefaults(configDefaults).
		WithJSONFile(cascade.ExpandPath("~/.seqdiff/config.json")).
		WithNearestJSONFile(filepath.Join(".seqdiff", "config.json"), "").
		WithEnv(configEnv).
		WithValues("flag", flagValues)

	var cfg Config
	prov, err := loader.StrictlyLoadWithProvenance(&cfg)
	if err != nil {
		return Config{}, nil, fmt.Errorf("load configuration: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	if err := validateConfig(cfg); err != nil {
		return Config{}, nil, err
	}
	return cfg, prov, nil
}

func validateConfig(cfg Config) error {
	if !slices.Contains(formats, cfg.Format) {
		return fmt.Errorf("invalid configuration: format must be one of %s (got %q)", strings.Join(formats, ", "), cfg.Format)
	}
	if _, err := tokenize.ParseGranularity(cfg.Granularity); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !slices.Contains(colorModes, cfg.Color) {
		return fmt.Errorf("invalid configuration: color must be one of %s (got %q)", strings.Join(colorModes, ", "), cfg.Color)
	}
	if _, err := diff.ParseSpanMode(cfg.Spans); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, f := range []struct {
		name string
		v    int
	}{{"context", cfg.Context}, {"width", cfg.Width}, {"maxedits", cfg.MaxEdits}, {"maxtokens", cfg.MaxTokens}} {
		if f.v < 0 {
			return fmt.Errorf("invalid configuration: %s must be >= 0 (got %d)", f.name, f.v)
		}
	}
	return nil
}

// configReport is the `seqdiff config` output: the effective settings plus where each came from.
type configReport struct {
	Config
	Sources map[string]string `json:"sources"`
}

func writeConfigJSON(w io.Writer, cfg Config, prov map[string]cascade.Provenance) error {
	report := configReport{Config: cfg, Sources: map[string]string{}}
	for key, p := range prov {
		report.Sources[key] = p.String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return nil
}
