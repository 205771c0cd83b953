package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ErrCatalogUnavailable means the price list file is missing or its shape
// does not match the expected six-column schema.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

const columnCount = 6

// Loader reads the arancel file and memoizes the parsed snapshot. The memo
// is keyed by the file's identity (size + mtime); a changed file is
// re-parsed on the next Load.
type Loader struct {
	path string

	mu      sync.Mutex
	cached  *Catalog
	size    int64
	modTime int64
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the current catalog snapshot, parsing the file only when it
// changed since the previous call.
func (l *Loader) Load() (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, l.path, err)
	}
	if l.cached != nil && info.Size() == l.size && info.ModTime().UnixNano() == l.modTime {
		return l.cached, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, l.path, err)
	}
	defer f.Close()

	c, err := parse(f)
	if err != nil {
		return nil, err
	}

	l.cached = c
	l.size = info.Size()
	l.modTime = info.ModTime().UnixNano()
	return c, nil
}

// Invalidate drops the memoized snapshot so the next Load re-parses.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

// parse reads the six positional columns {codigo, nombre, fonasa, copago,
// particular_gral, particular_pref}. Header labels in the first row are
// ignored; a header is detected by its non-numeric value cells.
func parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	c := &Catalog{entries: make(map[string]Entry)}
	rowNum := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCatalogUnavailable, rowNum+1, err)
		}
		rowNum++
		if len(rec) != columnCount {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrCatalogUnavailable, rowNum, len(rec), columnCount)
		}
		if rowNum == 1 && isHeader(rec) {
			continue
		}
		e := Entry{
			Code:                 NormalizeCode(rec[0]),
			Name:                 strings.TrimSpace(rec[1]),
			Fonasa:               parseAmount(rec[2]),
			Copago:               parseAmount(rec[3]),
			ParticularGeneral:    parseAmount(rec[4]),
			ParticularPreferente: parseAmount(rec[5]),
		}
		if e.Code == "" {
			continue
		}
		if _, dup := c.entries[e.Code]; dup {
			continue
		}
		c.entries[e.Code] = e
		c.ordered = append(c.ordered, e)
	}
	if len(c.ordered) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrCatalogUnavailable)
	}
	return c, nil
}

func isHeader(rec []string) bool {
	for _, cell := range rec[2:] {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return false
		}
		if strings.TrimSpace(cell) == "" {
			return false
		}
	}
	return true
}

// parseAmount normalizes one numeric cell. Blank cells are zero, never
// absent. Exports sometimes carry float formatting ("12500.0") or a
// currency marker; both are accepted.
func parseAmount(cell string) int64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f + 0.5)
}
