package dict

import (
	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/tags"
	"github.com/heartmarshall/kty/internal/yomitan"
	"github.com/heartmarshall/kty/pkg/ordmap"
)

// Pivot is one source-language word with its target-language translations,
// found through a sense of a word of a third language.
type Pivot struct {
	Lemma        string
	POS          string
	Edition      lang.Edition
	Translations []string
}

// GlossaryExtended pairs two foreign languages through the translation
// tables of every edition, merging the editions into one dictionary.
type GlossaryExtended struct {
	base[*List[Pivot]]
}

var _ Dictionary[*List[Pivot]] = GlossaryExtended{}

func (GlossaryExtended) Kind() Kind { return KindGlossaryExtended }

func (GlossaryExtended) NewIR() *List[Pivot] { return &List[Pivot]{} }

func (GlossaryExtended) Triples(edition lang.Edition, source, target lang.Spec) []Langs {
	return sourceDefaultsToEdition(edition, source, target)
}

func (GlossaryExtended) Key(l Langs) Key { return collapsedKey(l) }

func (GlossaryExtended) Dataset(source lang.Spec) DatasetRequest {
	return datasetBySource(FilteredEdition, source)
}

// RelevantLang selects the edition's own words, whose translation tables
// list both languages.
func (GlossaryExtended) RelevantLang(l Langs) lang.Lang { return l.Edition }

type pivotSense struct {
	targets []string
	sources []string
}

func (GlossaryExtended) Process(l Langs, r *kaikki.Record, ir *List[Pivot]) {
	senses := ordmap.New[string, *pivotSense](4)
	for _, t := range r.NonTrivialTranslations() {
		isTarget := t.LangCode == string(l.Target)
		isSource := t.LangCode == string(l.Source)
		if !isTarget && !isSource {
			continue
		}
		ps, _ := senses.GetOrInsert(t.Sense, func() *pivotSense { return &pivotSense{} })
		if isTarget {
			ps.targets = append(ps.targets, t.Word)
		}
		if isSource {
			ps.sources = append(ps.sources, t.Word)
		}
	}
	senses.Retain(func(_ string, ps *pivotSense) bool {
		return len(ps.targets) > 0 && len(ps.sources) > 0
	})

	pos := tags.ShortPOS(r.POS)
	for _, ps := range senses.All() {
		for _, lemma := range ps.sources {
			ir.Push(Pivot{Lemma: lemma, POS: pos, Edition: l.Edition, Translations: ps.targets})
		}
	}
}

// Postprocess merges pivots by lemma. The first part of speech and edition
// win; translations are unioned in order.
func (GlossaryExtended) Postprocess(ir *List[Pivot]) {
	merged := ordmap.New[string, *Pivot](len(ir.Items))
	for _, p := range ir.Items {
		m, _ := merged.GetOrInsert(p.Lemma, func() *Pivot {
			return &Pivot{Lemma: p.Lemma, POS: p.POS, Edition: p.Edition}
		})
		m.Translations = appendMissing(m.Translations, p.Translations...)
	}
	ir.Items = ir.Items[:0]
	for _, p := range merged.All() {
		ir.Items = append(ir.Items, *p)
	}
}

func (GlossaryExtended) Encode(_ Langs, ir *List[Pivot], _ *Diagnostics) []yomitan.Batch {
	entries := make([]yomitan.Entry, 0, len(ir.Items))
	for _, p := range ir.Items {
		defs := make([]yomitan.Definition, len(p.Translations))
		for i, t := range p.Translations {
			defs[i] = yomitan.TextDefinition(t)
		}
		entries = append(entries, yomitan.TermEntry{
			Term:           p.Lemma,
			DefinitionTags: p.POS,
			Rules:          p.POS,
			Definitions:    defs,
		})
	}
	return []yomitan.Batch{{Label: "term", Entries: entries}}
}
