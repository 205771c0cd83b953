package catalog

import "strings"

// Entry is one row of the price list (arancel). Monetary values are
// integer Chilean pesos.
type Entry struct {
	Code                 string
	Name                 string
	Fonasa               int64
	Copago               int64
	ParticularGeneral    int64
	ParticularPreferente int64
}

// Catalog is an immutable snapshot of the price list keyed by exam code.
type Catalog struct {
	entries map[string]Entry
	ordered []Entry
}

// Lookup returns the entry for a code.
func (c *Catalog) Lookup(code string) (Entry, bool) {
	e, ok := c.entries[NormalizeCode(code)]
	return e, ok
}

// Entries returns all entries in source order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len reports how many exams the catalog offers.
func (c *Catalog) Len() int { return len(c.ordered) }

// Search returns entries whose code or name contains q, case-insensitive.
// An empty query returns everything.
func (c *Catalog) Search(q string) []Entry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.Entries()
	}
	var out []Entry
	for _, e := range c.ordered {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Code), q) {
			out = append(out, e)
		}
	}
	return out
}

// NormalizeCode strips the ".0" artifact that numeric import tools append
// to originally-numeric code columns.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	return strings.TrimSuffix(code, ".0")
}
