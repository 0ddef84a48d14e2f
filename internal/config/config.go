package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Bitlatte/spade/internal/logging"
)

// ErrMissingSetting is returned by Validate for a required setting that is
// empty.
var ErrMissingSetting = errors.New("missing required setting")

// ErrOverlappingPaths is returned by Validate when the destination, which
// is emptied on every run, shares a directory tree with the source or the
// theme.
var ErrOverlappingPaths = errors.New("destination overlaps an input folder")

type Config struct {
	Source      string         `mapstructure:"source"`
	Destination string         `mapstructure:"destination"`
	Theme       string         `mapstructure:"theme"`
	Watch       bool           `mapstructure:"watch"`
	Port        int            `mapstructure:"port"`
	SiteTitle   string         `mapstructure:"siteTitle"`
	Log         logging.Config `mapstructure:"log"`
	Graph       Graph          `mapstructure:"graph"`
	Markdown    Markdown       `mapstructure:"markdown"`
}

type Graph struct {
	Path        string `mapstructure:"path"`
	DedupeEdges bool   `mapstructure:"dedupeEdges"`
}

type Markdown struct {
	HardWraps bool `mapstructure:"hardWraps"`
	Unsafe    bool `mapstructure:"unsafe"`
}

// Defaults lists the default value of every key, keyed as viper sees them.
func Defaults() map[string]any {
	return map[string]any{
		"destination":        "public",
		"theme":              "theme",
		"port":               1313,
		"siteTitle":          "My Digital Garden",
		"log.level":          "info",
		"log.format":         "console",
		"graph.path":         "assets/graph.json",
		"graph.dedupeEdges":  false,
		"markdown.hardWraps": false,
		"markdown.unsafe":    true,
	}
}

// Validate checks the settings a generation run cannot do without.
func (c Config) Validate() error {
	required := []struct {
		name, value string
	}{
		{"source", c.Source},
		{"destination", c.Destination},
		{"theme", c.Theme},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingSetting, r.name)
		}
	}
	if strings.TrimSpace(c.Graph.Path) == "" {
		return fmt.Errorf("%w: graph.path", ErrMissingSetting)
	}

	dst, err := filepath.Abs(c.Destination)
	if err != nil {
		return fmt.Errorf("resolve destination '%s': %w", c.Destination, err)
	}
	inputs := []struct {
		name, value string
	}{
		{"source", c.Source},
		{"theme", c.Theme},
	}
	for _, in := range inputs {
		dir, err := filepath.Abs(in.value)
		if err != nil {
			return fmt.Errorf("resolve %s '%s': %w", in.name, in.value, err)
		}
		if within(dst, dir) || within(dir, dst) {
			return fmt.Errorf("%w: destination '%s' and %s '%s'", ErrOverlappingPaths, c.Destination, in.name, in.value)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it. Both must be
// absolute and clean.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
