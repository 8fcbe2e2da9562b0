// Package tags canonicalizes wiktextract tag lists and looks tags up in the
// Yomitan tag bank shipped with every dictionary.
package tags

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

//go:embed assets/tag_bank_term.json
var tagBankJSON []byte

//go:embed assets/tag_order.json
var tagOrderJSON []byte

// CategoryPartOfSpeech marks the rows of the bank that describe parts of speech.
const CategoryPartOfSpeech = "partOfSpeech"

// Info is one row of a Yomitan tag bank. It serializes as
// [name, category, order, notes, score].
type Info struct {
	ShortTag   string
	Category   string
	SortOrder  int
	LongTag    string
	Popularity int
}

// MarshalJSON encodes the row as a 5-tuple.
func (i Info) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{i.ShortTag, i.Category, i.SortOrder, i.LongTag, i.Popularity})
}

type bankRow struct {
	short      string
	category   string
	sortOrder  int
	aliases    []string
	popularity int
}

func (r *bankRow) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 5 {
		return fmt.Errorf("tag bank row: want 5 fields, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.short); err != nil {
		return fmt.Errorf("short tag: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.category); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if err := json.Unmarshal(raw[2], &r.sortOrder); err != nil {
		return fmt.Errorf("sort order: %w", err)
	}
	// Aliases are either a single string or a list whose first item is the
	// long form.
	var one string
	if err := json.Unmarshal(raw[3], &one); err == nil {
		r.aliases = []string{one}
	} else if err := json.Unmarshal(raw[3], &r.aliases); err != nil {
		return fmt.Errorf("aliases: %w", err)
	}
	if len(r.aliases) == 0 {
		return fmt.Errorf("tag %q: no aliases", r.short)
	}
	if err := json.Unmarshal(raw[4], &r.popularity); err != nil {
		return fmt.Errorf("popularity: %w", err)
	}
	return nil
}

func (r bankRow) info() Info {
	return Info{
		ShortTag:   r.short,
		Category:   r.category,
		SortOrder:  r.sortOrder,
		LongTag:    r.aliases[0],
		Popularity: r.popularity,
	}
}

// Registry answers tag and part-of-speech lookups. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	rows  []bankRow
	order map[string]int
}

// NewRegistry parses a tag bank and a tag order document.
//
// The bank is a list of [short, category, sort order, aliases, popularity]
// rows. The order is a list of {"category", "tags"} groups whose
// concatenation gives the canonical tag order.
func NewRegistry(bank, order []byte) (*Registry, error) {
	var rows []bankRow
	if err := json.Unmarshal(bank, &rows); err != nil {
		return nil, fmt.Errorf("parse tag bank: %w", err)
	}

	var groups []struct {
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal(order, &groups); err != nil {
		return nil, fmt.Errorf("parse tag order: %w", err)
	}

	idx := make(map[string]int)
	for _, g := range groups {
		for _, t := range g.Tags {
			if _, dup := idx[t]; !dup {
				idx[t] = len(idx)
			}
		}
	}
	return &Registry{rows: rows, order: idx}, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(tagBankJSON, tagOrderJSON)
	if err != nil {
		panic(fmt.Sprintf("tags: embedded assets: %v", err))
	}
	return r
})

// Default returns the registry built from the embedded assets.
func Default() *Registry { return defaultRegistry() }

func defaultOrder() map[string]int { return defaultRegistry().order }

// Find returns the bank row one of whose aliases is tag.
func (r *Registry) Find(tag string) (Info, bool) {
	for _, row := range r.rows {
		if slices.Contains(row.aliases, tag) {
			return row.info(), true
		}
	}
	return Info{}, false
}

// LookupPOS returns the short tag of a part of speech.
func (r *Registry) LookupPOS(pos string) (string, bool) {
	for _, row := range r.rows {
		if row.category == CategoryPartOfSpeech && slices.Contains(row.aliases, pos) {
			return row.short, true
		}
	}
	return "", false
}

// ShortPOS returns the short tag of a part of speech, or pos itself when the
// bank does not know it.
func (r *Registry) ShortPOS(pos string) string {
	if short, ok := r.LookupPOS(pos); ok {
		return short
	}
	return pos
}

// Bank returns every row, in bank order, as written to tag_bank_1.json.
func (r *Registry) Bank() []Info {
	out := make([]Info, len(r.rows))
	for i, row := range r.rows {
		out[i] = row.info()
	}
	return out
}

// Find looks tag up in the default registry.
func Find(tag string) (Info, bool) { return Default().Find(tag) }

// LookupPOS looks pos up in the default registry.
func LookupPOS(pos string) (string, bool) { return Default().LookupPOS(pos) }

// ShortPOS looks pos up in the default registry.
func ShortPOS(pos string) string { return Default().ShortPOS(pos) }
