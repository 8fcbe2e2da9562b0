package dict

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/heartmarshall/kty/internal/tags"
	"github.com/heartmarshall/kty/pkg/ordmap"
)

// FormSource records where a form relation came from.
type FormSource string

const (
	// FormExtracted comes from a record's forms list.
	FormExtracted FormSource = "extracted"
	// FormInflection comes from an inflection sense or a form_of redirect.
	FormInflection FormSource = "inflection"
	// FormAltOf comes from alt_of references.
	FormAltOf FormSource = "alt_of"
)

// LemmaKey identifies a lemma record.
type LemmaKey struct {
	Lemma   string
	Reading string
	POS     string
}

// LemmaInfo is one lemma record. Several may share a LemmaKey.
type LemmaInfo struct {
	GlossTree *GlossTree `json:"gloss_tree" yaml:"gloss_tree"`
	Etymology string     `json:"etymology_text,omitempty" yaml:"etymology_text,omitempty"`
	HeadInfo  string     `json:"head_info_text,omitempty" yaml:"head_info_text,omitempty"`
	WLink     string     `json:"wlink" yaml:"wlink"`
	KLink     string     `json:"klink" yaml:"klink"`
}

// FormKey identifies a form relation.
type FormKey struct {
	Uninflected string
	Inflected   string
	POS         string
}

// FormInfo is the provenance and the ordered, duplicate-free tags of a form.
type FormInfo struct {
	Source FormSource
	Tags   []string
}

func (f FormInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{f.Source, f.Tags})
}

func (f FormInfo) MarshalYAML() (any, error) {
	return []any{string(f.Source), f.Tags}, nil
}

// Tidy is the IR of the main dictionary: lemma records and form relations.
type Tidy struct {
	lemmas ordmap.Map[LemmaKey, []LemmaInfo]
	forms  ordmap.Map[FormKey, *FormInfo]
}

// NewTidy returns an empty IR.
func NewTidy() *Tidy { return &Tidy{} }

// Len counts lemma keys and form relations.
func (t *Tidy) Len() int { return t.lemmas.Len() + t.forms.Len() }

// LemmaCount returns the number of lemma keys.
func (t *Tidy) LemmaCount() int { return t.lemmas.Len() }

// FormCount returns the number of form relations, optionally restricted to
// the given provenances.
func (t *Tidy) FormCount(sources ...FormSource) int {
	if len(sources) == 0 {
		return t.forms.Len()
	}
	n := 0
	for _, info := range t.forms.All() {
		if slices.Contains(sources, info.Source) {
			n++
		}
	}
	return n
}

// InsertLemma appends info under the key. Records without glosses are
// ignored.
func (t *Tidy) InsertLemma(lemma, reading, pos string, info LemmaInfo) {
	if info.GlossTree.Len() == 0 {
		return
	}
	k := LemmaKey{Lemma: lemma, Reading: reading, POS: pos}
	infos, _ := t.lemmas.Get(k)
	t.lemmas.Set(k, append(infos, info))
}

// InsertForm records that inflected is a form of uninflected. Tags are
// unioned in order; the first provenance wins. Self-references and empty
// tag lists are ignored.
func (t *Tidy) InsertForm(uninflected, inflected, pos string, src FormSource, formTags []string) {
	if uninflected == inflected || len(formTags) == 0 {
		return
	}
	k := FormKey{Uninflected: uninflected, Inflected: inflected, POS: pos}
	info, _ := t.forms.GetOrInsert(k, func() *FormInfo {
		return &FormInfo{Source: src}
	})
	for _, tag := range formTags {
		if !slices.Contains(info.Tags, tag) {
			info.Tags = append(info.Tags, tag)
		}
	}
}

// Lemmas iterates over lemma records in insertion order.
func (t *Tidy) Lemmas() iter.Seq2[LemmaKey, []LemmaInfo] { return t.lemmas.All() }

// Forms iterates over form relations in insertion order.
func (t *Tidy) Forms() iter.Seq2[FormKey, *FormInfo] { return t.forms.All() }

// Form returns the relation stored under the key.
func (t *Tidy) Form(uninflected, inflected, pos string) (*FormInfo, bool) {
	return t.forms.Get(FormKey{Uninflected: uninflected, Inflected: inflected, POS: pos})
}

// Lemma returns the records stored under the key.
func (t *Tidy) Lemma(lemma, reading, pos string) ([]LemmaInfo, bool) {
	return t.lemmas.Get(LemmaKey{Lemma: lemma, Reading: reading, POS: pos})
}

// PostprocessForms canonicalizes the tags of every form relation and drops
// the relations left without tags.
func (t *Tidy) PostprocessForms() {
	t.forms.Retain(func(_ FormKey, info *FormInfo) bool {
		info.Tags = tags.PostprocessFormTags(info.Tags)
		return len(info.Tags) > 0
	})
}

// Snapshots implements Snapshotter with nested lemma -> reading -> pos views.
func (t *Tidy) Snapshots(k Key) []Snapshot {
	lemmas := ordmap.New[string, *ordmap.Map[string, *ordmap.Map[string, []LemmaInfo]]](t.lemmas.Len())
	for lk, infos := range t.lemmas.All() {
		byReading, _ := lemmas.GetOrInsert(lk.Lemma, func() *ordmap.Map[string, *ordmap.Map[string, []LemmaInfo]] {
			return ordmap.New[string, *ordmap.Map[string, []LemmaInfo]](1)
		})
		byPOS, _ := byReading.GetOrInsert(lk.Reading, func() *ordmap.Map[string, []LemmaInfo] {
			return ordmap.New[string, []LemmaInfo](1)
		})
		byPOS.Set(lk.POS, infos)
	}

	forms := ordmap.New[string, *ordmap.Map[string, *ordmap.Map[string, *FormInfo]]](t.forms.Len())
	for fk, info := range t.forms.All() {
		byInflected, _ := forms.GetOrInsert(fk.Uninflected, func() *ordmap.Map[string, *ordmap.Map[string, *FormInfo]] {
			return ordmap.New[string, *ordmap.Map[string, *FormInfo]](1)
		})
		byPOS, _ := byInflected.GetOrInsert(fk.Inflected, func() *ordmap.Map[string, *FormInfo] {
			return ordmap.New[string, *FormInfo](1)
		})
		byPOS.Set(fk.POS, info)
	}

	prefix := fmt.Sprintf("%s-%s", k.Source, k.Target)
	return []Snapshot{
		{Name: prefix + "-lemmas", Value: lemmas},
		{Name: prefix + "-forms", Value: forms},
	}
}
