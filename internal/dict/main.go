package dict

import (
	"regexp"
	"slices"
	"strings"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/tags"
	"github.com/heartmarshall/kty/internal/yomitan"
)

var trailingPunctRe = regexp.MustCompile(`\p{P}$`)

// Main is the main dictionary: lemmas with gloss trees, plus form relations
// that redirect inflected words to their lemma.
type Main struct {
	base[*Tidy]
}

var _ Dictionary[*Tidy] = Main{}

func (Main) Kind() Kind { return KindMain }

func (Main) NewIR() *Tidy { return NewTidy() }

func (Main) Triples(edition lang.Edition, source, target lang.Spec) []Langs {
	return targetDefaultsToEdition(edition, source, target)
}

func (Main) Dataset(source lang.Spec) DatasetRequest {
	return datasetBySource(UnfilteredEdition, source)
}

// Preprocess propagates tags into senses, moves inflection senses out of the
// record and, in experimental mode, pads glosses without final punctuation.
func (Main) Preprocess(l Langs, r *kaikki.Record, opts Options, ir *Tidy) {
	h := HeuristicsFor(l.Edition)
	h.PropagateTags(r)

	// A record with forms of its own keeps its inflection senses in
	// experimental mode, or those forms would point at an empty entry.
	kept := r.Senses[:0]
	for i := range r.Senses {
		s := r.Senses[i]
		if h.IsInflectionSense(&s) && (!opts.Experimental || len(r.NonTrivialForms()) == 0) {
			h.HandleInflectionSense(l.Source, r, &s, ir)
			continue
		}
		kept = append(kept, s)
	}
	clear(r.Senses[len(kept):])
	r.Senses = kept

	if opts.Experimental {
		for i := range r.Senses {
			for j, g := range r.Senses[i].Glosses {
				if !trailingPunctRe.MatchString(g) {
					r.Senses[i].Glosses[j] = g + " "
				}
			}
		}
	}
}

func (Main) Process(l Langs, r *kaikki.Record, ir *Tidy) {
	h := HeuristicsFor(l.Edition)
	processForms(h, l.Source, r, ir)
	processAltForms(r, ir)

	if r.HasNoGloss() {
		h.HandleNoGloss(r, ir)
		return
	}

	reading, ok := h.Reading(l.Source, r)
	if !ok {
		reading = r.Word
	}
	ir.InsertLemma(r.Word, reading, r.POS, lemmaInfo(l, r))
}

func (Main) Postprocess(ir *Tidy) { ir.PostprocessForms() }

func (Main) Encode(l Langs, ir *Tidy, diag *Diagnostics) []yomitan.Batch {
	return []yomitan.Batch{
		{Label: "lemma", Entries: encodeLemmas(l.Target, ir, diag)},
		{Label: "form", Entries: encodeForms(l.Source, ir)},
	}
}

func processForms(h Heuristics, source lang.Lang, r *kaikki.Record, ir *Tidy) {
	for _, f := range r.NonTrivialForms() {
		if h.StopForms(source, f) {
			break
		}
		if h.SkipForm(source, f) {
			continue
		}
		var kept []string
		for _, t := range f.Tags {
			if !tags.IsRedundantFormTag(t) {
				kept = append(kept, t)
			}
		}
		ir.InsertForm(r.Word, f.Form, r.POS, FormExtracted, []string{strings.Join(kept, " ")})
	}
}

func processAltForms(r *kaikki.Record, ir *Tidy) {
	for _, alt := range r.AltOf {
		ir.InsertForm(r.Word, alt.Word, r.POS, FormAltOf, []string{"alt-of"})
	}
	for _, s := range r.Senses {
		senseTags := append(slices.Clone(s.Tags), "alt-of")
		for _, alt := range s.AltOf {
			ir.InsertForm(r.Word, alt.Word, r.POS, FormAltOf, senseTags)
		}
	}
}

func lemmaInfo(l Langs, r *kaikki.Record) LemmaInfo {
	return LemmaInfo{
		GlossTree: GlossTreeOf(r),
		Etymology: strings.Join(r.Etymologies(), "\n"),
		HeadInfo:  headInfo(r.HeadTemplates),
		WLink:     wiktionaryLink(l.Edition, l.Source, r.Word),
		KLink:     kaikkiLink(l.Edition, l.Source, r.Word),
	}
}

// headInfo returns the first head line with a parenthesized part.
func headInfo(templates []kaikki.HeadTemplate) string {
	for _, ht := range templates {
		if parensRe.MatchString(ht.Expansion) {
			return ht.Expansion
		}
	}
	return ""
}
