package dict

import (
	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/tags"
	"github.com/heartmarshall/kty/internal/yomitan"
	"github.com/heartmarshall/kty/pkg/ordmap"
)

// Glossary is a bilingual dictionary built from the translation tables of
// the edition's own words.
type Glossary struct {
	base[*List[yomitan.TermEntry]]
}

var _ Dictionary[*List[yomitan.TermEntry]] = Glossary{}

func (Glossary) Kind() Kind { return KindGlossary }

func (Glossary) NewIR() *List[yomitan.TermEntry] { return &List[yomitan.TermEntry]{} }

func (Glossary) Triples(edition lang.Edition, source, target lang.Spec) []Langs {
	return sourceDefaultsToEdition(edition, source, target)
}

func (Glossary) Dataset(source lang.Spec) DatasetRequest {
	return datasetBySource(FilteredEdition, source)
}

func (Glossary) Process(l Langs, r *kaikki.Record, ir *List[yomitan.TermEntry]) {
	// Translations without a sense are keyed by "".
	bySense := ordmap.New[string, []string](4)
	for _, t := range r.NonTrivialTranslations() {
		if t.LangCode != string(l.Target) {
			continue
		}
		words, _ := bySense.Get(t.Sense)
		bySense.Set(t.Sense, append(words, t.Word))
	}
	if bySense.Len() == 0 {
		return
	}

	var defs []yomitan.Definition
	for sense, words := range bySense.All() {
		if sense == "" {
			for _, w := range words {
				defs = append(defs, yomitan.TextDefinition(w))
			}
			continue
		}
		items := make(yomitan.Array, 0, len(words))
		for _, w := range words {
			items = append(items, yomitan.Wrap("li", "", yomitan.Text(w)))
		}
		defs = append(defs, yomitan.StructuredDefinition{Content: yomitan.Wrap("div", "", yomitan.Array{
			yomitan.Wrap("span", "", yomitan.Text(sense)),
			yomitan.Wrap("ul", "", items),
		})})
	}

	reading, ok := HeuristicsFor(l.Edition).Reading(l.Source, r)
	if !ok {
		reading = r.Word
	}
	pos := tags.ShortPOS(r.POS)
	ir.Push(yomitan.TermEntry{
		Term:           r.Word,
		Reading:        reading,
		DefinitionTags: pos,
		Rules:          pos,
		Definitions:    defs,
	})
}

func (Glossary) Encode(_ Langs, ir *List[yomitan.TermEntry], _ *Diagnostics) []yomitan.Batch {
	entries := make([]yomitan.Entry, len(ir.Items))
	for i, e := range ir.Items {
		entries[i] = e
	}
	return []yomitan.Batch{{Label: "term", Entries: entries}}
}
