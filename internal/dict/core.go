// Package dict turns kaikki records into Yomitan dictionaries.
//
// Every dictionary variant (main, glossary, glossary-extended, ipa,
// ipa-merged) implements Dictionary over its own intermediate representation.
// Make drives a variant over one or more corpora: records are routed to the
// language triples they are relevant for, accumulated per aggregation key,
// postprocessed and encoded into bank entries.
package dict

import (
	"fmt"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/yomitan"
)

// Kind names a dictionary variant. It appears in temp directory names.
type Kind string

const (
	KindMain             Kind = "main"
	KindGlossary         Kind = "glossary"
	KindGlossaryExtended Kind = "glossary-ext"
	KindIPA              Kind = "ipa"
	KindIPAMerged        Kind = "ipa-merged"
)

// Langs is an (edition, source, target) triple: one output dictionary.
type Langs struct {
	Edition lang.Edition
	Source  lang.Lang
	Target  lang.Lang
}

func (l Langs) String() string {
	return fmt.Sprintf("%s:%s-%s", l.Edition, l.Source, l.Target)
}

// Key groups triples into one accumulator. Merged variants leave Edition
// empty so that every edition feeds the same accumulator.
type Key struct {
	Edition lang.Edition
	Source  lang.Lang
	Target  lang.Lang
}

// Collapsed reports whether the edition dimension was merged away.
func (k Key) Collapsed() bool { return k.Edition == "" }

func (k Key) String() string {
	e := string(k.Edition)
	if k.Collapsed() {
		e = lang.Wildcard
	}
	return fmt.Sprintf("%s:%s-%s", e, k.Source, k.Target)
}

// DatasetKind says which corpus file a variant reads.
type DatasetKind int

const (
	// UnfilteredEdition is the edition-wide dump.
	UnfilteredEdition DatasetKind = iota
	// FilteredEdition is the dump of the edition's own language.
	FilteredEdition
	// FilteredLang is the dump of a single language.
	FilteredLang
)

// DatasetRequest is what a variant asks the corpus layer for.
type DatasetRequest struct {
	Kind DatasetKind
	// Lang is set for FilteredLang.
	Lang lang.Lang
}

// Options are the run-wide switches visible to the hooks.
type Options struct {
	// Experimental enables output changes that are still being evaluated.
	Experimental bool
}

// IR is an intermediate representation accumulated per Key.
type IR interface {
	Len() int
}

// Snapshotter is implemented by IRs that can be dumped for debugging. Each
// snapshot is written to its own file, named after Name.
type Snapshotter interface {
	Snapshots(k Key) []Snapshot
}

// Snapshot is a named, serializable view of an IR.
type Snapshot struct {
	Name  string
	Value any
}

// Dictionary is the behavior of one variant.
type Dictionary[I IR] interface {
	Kind() Kind
	NewIR() I

	// Triples expands the command-line specs for one edition.
	Triples(edition lang.Edition, source, target lang.Spec) []Langs
	// Key maps a triple to its accumulator.
	Key(l Langs) Key
	// Dataset says which corpus to read for the given source spec.
	Dataset(source lang.Spec) DatasetRequest
	// RelevantLang is the lang_code of the records relevant for l.
	RelevantLang(l Langs) lang.Lang

	// Preprocess may mutate the record. Mutations are visible to the
	// following triples of the same record.
	Preprocess(l Langs, r *kaikki.Record, opts Options, ir I)
	// Process accumulates r into ir without mutating r.
	Process(l Langs, r *kaikki.Record, ir I)
	// Postprocess runs once per accumulator after the corpus is consumed.
	Postprocess(ir I)
	// Encode turns the accumulator into labelled bank entries.
	Encode(l Langs, ir I, diag *Diagnostics) []yomitan.Batch
}

// base holds the defaults shared by every variant.
type base[I IR] struct{}

func (base[I]) Key(l Langs) Key {
	return Key{Edition: l.Edition, Source: l.Source, Target: l.Target}
}

func (base[I]) RelevantLang(l Langs) lang.Lang { return l.Source }

func (base[I]) Preprocess(Langs, *kaikki.Record, Options, I) {}

func (base[I]) Postprocess(I) {}

// collapsedKey drops the edition.
func collapsedKey(l Langs) Key {
	return Key{Source: l.Source, Target: l.Target}
}

func cartesian(edition lang.Edition, source, target lang.Spec) []Langs {
	var out []Langs
	for _, s := range source.Variants(lang.All()) {
		for _, t := range target.Variants(lang.All()) {
			out = append(out, Langs{Edition: edition, Source: s, Target: t})
		}
	}
	return out
}

// targetDefaultsToEdition reads a target wildcard as the edition language.
func targetDefaultsToEdition(edition lang.Edition, source, target lang.Spec) []Langs {
	if target.IsAll() {
		target = lang.One(edition)
	}
	return cartesian(edition, source, target)
}

// sourceDefaultsToEdition reads a source wildcard as the edition language.
func sourceDefaultsToEdition(edition lang.Edition, source, target lang.Spec) []Langs {
	if source.IsAll() {
		source = lang.One(edition)
	}
	return cartesian(edition, source, target)
}

// datasetBySource reads the given language, or the whole edition when the
// source is a wildcard.
func datasetBySource(wildcard DatasetKind, source lang.Spec) DatasetRequest {
	if source.IsAll() {
		return DatasetRequest{Kind: wildcard}
	}
	return DatasetRequest{Kind: FilteredLang, Lang: source.Lang()}
}

// List is the IR of variants without aggregation logic of their own.
type List[T any] struct {
	Items []T
}

// Len implements IR.
func (l *List[T]) Len() int { return len(l.Items) }

// Push appends items.
func (l *List[T]) Push(items ...T) { l.Items = append(l.Items, items...) }
