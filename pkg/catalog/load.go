package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrCatalogUnavailable is returned by a Source whose one-time load failed.
var ErrCatalogUnavailable = errors.New("reference catalog unavailable")

// Format selects the catalog file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a catalog from r. Unknown fields are rejected so that typos in
// reference data surface at startup.
func Decode(r io.Reader, format Format) (*Catalog, error) {
	var data Data
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode yaml catalog: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode json catalog: %w", err)
		}
	}
	return New(data.References)
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Decode(bytes.NewReader(raw), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Source initializes a catalog exactly once, on first use, and hands out the
// same immutable catalog afterwards. If the load fails the failure is logged
// once and every later call reports ErrCatalogUnavailable.
type Source struct {
	get func() (*Catalog, error)
}

// NewSource wraps load in a one-time initializer.
func NewSource(load func() (*Catalog, error), logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		get: sync.OnceValues(func() (*Catalog, error) {
			c, err := load()
			if err != nil {
				logger.Error("Failed to load reference catalog", "error", err)
				return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
			}
			logger.Info("Reference catalog loaded", "items", c.Len())
			return c, nil
		}),
	}
}

// FileSource is a Source backed by Load(path).
func FileSource(path string, logger *slog.Logger) *Source {
	return NewSource(func() (*Catalog, error) { return Load(path) }, logger)
}

// Static is a Source that always returns c.
func Static(c *Catalog) *Source {
	return &Source{get: func() (*Catalog, error) { return c, nil }}
}

// Catalog returns the loaded catalog.
func (s *Source) Catalog() (*Catalog, error) {
	return s.get()
}

// Require looks up id in the loaded catalog.
func (s *Source) Require(id string) (ReferenceItem, error) {
	c, err := s.get()
	if err != nil {
		return ReferenceItem{}, err
	}
	return c.Require(id)
}
