package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heartmarshall/kty/internal/lang"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

var (
	logLevels       = []string{"debug", "info", "warn", "warning", "error"}
	logFormats      = []string{"json", "text"}
	snapshotFormats = []string{"json", "yaml"}
)

// Validate performs validation on the loaded configuration and fills the
// derived fields. Load calls it automatically; call it again after
// overriding fields from flags.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Build.validate(); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err := c.Release.validate(); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !slices.Contains(logLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("%w: level %q (want one of %s)", ErrInvalid, l.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, strings.ToLower(l.Format)) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, l.Format, strings.Join(logFormats, ", "))
	}
	return nil
}

func (b *BuildConfig) validate() error {
	if strings.TrimSpace(b.RootDir) == "" {
		return fmt.Errorf("%w: root_dir is empty", ErrInvalid)
	}
	if strings.TrimSpace(b.DictName) == "" {
		return fmt.Errorf("%w: dict_name is empty", ErrInvalid)
	}
	if b.CompressionLevel < 0 || b.CompressionLevel > 9 {
		return fmt.Errorf("%w: compression_level must be in [0, 9] (got %d)", ErrInvalid, b.CompressionLevel)
	}
	if !slices.Contains(snapshotFormats, b.SnapshotFormat) {
		return fmt.Errorf("%w: snapshot_format %q (want json or yaml)", ErrInvalid, b.SnapshotFormat)
	}
	return nil
}

func (r *ReleaseConfig) validate() error {
	if r.Workers <= 0 {
		return fmt.Errorf("%w: workers must be > 0 (got %d)", ErrInvalid, r.Workers)
	}
	editions, err := ParseEditions(r.EditionsRaw)
	if err != nil {
		return fmt.Errorf("editions: %w", err)
	}
	r.Editions = editions
	return nil
}

// ParseEditions parses a comma-separated list of edition codes
// (e.g. "en,fr"). "all" or an empty string returns a nil slice.
func ParseEditions(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, lang.Wildcard) {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		e, err := lang.ParseEdition(p)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, string(e)) {
			out = append(out, string(e))
		}
	}

	return out, nil
}

// IndexPath returns the corpus index file of an edition.
func (c *Config) IndexPath(edition string) string {
	dir := c.Corpus.IndexDir
	if dir == "" {
		dir = filepath.Join(c.Build.RootDir, "db")
	}
	return filepath.Join(dir, "wiktextract_"+edition+".db")
}
