package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gstcopilot/gstcopilot/internal/model"
)

// ErrUnsupportedFormat is returned for files no registered loader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Loader reads one table export into records.
type Loader interface {
	Load(r io.Reader) ([]model.Record, error)
	Format() string
}

// Registry holds loaders keyed by format (the file extension without dot).
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds a loader. Panics on duplicate format.
func (r *Registry) Register(l Loader) {
	key := strings.ToLower(l.Format())
	if _, ok := r.loaders[key]; ok {
		panic("duplicate loader format: " + key)
	}
	r.loaders[key] = l
}

// Get returns the loader for format, or nil.
func (r *Registry) Get(format string) Loader {
	return r.loaders[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.loaders))
	for k := range r.loaders {
		formats = append(formats, k)
	}
	sort.Strings(formats)
	return formats
}

// LoadFile opens path and loads it with the loader matching its extension.
func (r *Registry) LoadFile(path string) ([]model.Record, error) {
	ext := filepath.Ext(path)
	l := r.Get(ext)
	if l == nil {
		return nil, fmt.Errorf("%s: %w (supported: %s)", filepath.Base(path), ErrUnsupportedFormat, strings.Join(r.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	recs, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return recs, nil
}

// DefaultRegistry returns a registry with all built-in loaders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVLoader{})
	r.Register(&XLSXLoader{})
	return r
}

// LoadFile loads path with the default registry.
func LoadFile(path string) ([]model.Record, error) {
	return DefaultRegistry().LoadFile(path)
}

// CSVLoader reads comma-delimited text with Parse.
type CSVLoader struct{}

// Format returns the loader name.
func (l *CSVLoader) Format() string { return "csv" }

// Load reads all of r and parses it.
func (l *CSVLoader) Load(r io.Reader) ([]model.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return Parse(string(data)), nil
}

// XLSXLoader reads the first sheet of an Excel workbook.
type XLSXLoader struct{}

// Format returns the loader name.
func (l *XLSXLoader) Format() string { return "xlsx" }

// Load reads the first sheet of the workbook in r as a grid.
func (l *XLSXLoader) Load(r io.Reader) ([]model.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return FromGrid(rows), nil
}
