package dict

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/yomitan"
	"github.com/heartmarshall/kty/pkg/ordmap"
)

// Pronunciation is the IPA data of one headword.
type Pronunciation struct {
	Term     string                        `json:"term" yaml:"term"`
	Phonetic yomitan.PhoneticTranscription `json:"phonetic" yaml:"phonetic"`
}

// IPA is a pronunciation dictionary for one language pair.
type IPA struct {
	base[*List[Pronunciation]]
}

var _ Dictionary[*List[Pronunciation]] = IPA{}

func (IPA) Kind() Kind { return KindIPA }

func (IPA) NewIR() *List[Pronunciation] { return &List[Pronunciation]{} }

func (IPA) Triples(edition lang.Edition, source, target lang.Spec) []Langs {
	return targetDefaultsToEdition(edition, source, target)
}

func (IPA) Dataset(source lang.Spec) DatasetRequest {
	return datasetBySource(UnfilteredEdition, source)
}

func (IPA) Process(l Langs, r *kaikki.Record, ir *List[Pronunciation]) {
	processIPA(l, r, ir)
}

func (IPA) Encode(_ Langs, ir *List[Pronunciation], _ *Diagnostics) []yomitan.Batch {
	return encodeIPA(ir)
}

// IPAMerged is a pronunciation dictionary of one language, merged from every
// edition.
type IPAMerged struct {
	base[*List[Pronunciation]]
}

var _ Dictionary[*List[Pronunciation]] = IPAMerged{}

func (IPAMerged) Kind() Kind { return KindIPAMerged }

func (IPAMerged) NewIR() *List[Pronunciation] { return &List[Pronunciation]{} }

// Triples ignores the source: an edition only contributes the words of the
// target language.
func (IPAMerged) Triples(edition lang.Edition, _, target lang.Spec) []Langs {
	var out []Langs
	for _, t := range target.Variants(lang.All()) {
		out = append(out, Langs{Edition: edition, Source: t, Target: t})
	}
	return out
}

func (IPAMerged) Key(l Langs) Key { return collapsedKey(l) }

func (IPAMerged) Dataset(source lang.Spec) DatasetRequest {
	return datasetBySource(FilteredEdition, source)
}

func (IPAMerged) Process(l Langs, r *kaikki.Record, ir *List[Pronunciation]) {
	processIPA(l, r, ir)
}

// Postprocess drops exact duplicates and sorts by term.
func (IPAMerged) Postprocess(ir *List[Pronunciation]) {
	seen := ordmap.NewSet[string]()
	kept := ir.Items[:0]
	for _, p := range ir.Items {
		key, err := json.Marshal(p)
		if err != nil || seen.Add(string(key)) {
			kept = append(kept, p)
		}
	}
	clear(ir.Items[len(kept):])
	ir.Items = kept
	slices.SortStableFunc(ir.Items, func(a, b Pronunciation) int {
		return cmp.Compare(a.Term, b.Term)
	})
}

func (IPAMerged) Encode(_ Langs, ir *List[Pronunciation], _ *Diagnostics) []yomitan.Batch {
	return encodeIPA(ir)
}

func processIPA(l Langs, r *kaikki.Record, ir *List[Pronunciation]) {
	ipas := groupIPA(r.Sounds)
	if len(ipas) == 0 {
		return
	}
	reading, ok := HeuristicsFor(l.Edition).Reading(l.Source, r)
	if !ok {
		reading = r.Word
	}
	ir.Push(Pronunciation{
		Term:     r.Word,
		Phonetic: yomitan.PhoneticTranscription{Reading: reading, Transcriptions: ipas},
	})
}

// groupIPA collects the transcriptions of sounds, merging the tags of equal
// transcriptions. A sound note is kept as a tag.
func groupIPA(sounds []kaikki.Sound) []yomitan.IPA {
	var out []yomitan.IPA
	for _, s := range sounds {
		if s.IPA == "" {
			continue
		}
		soundTags := slices.Clone(s.Tags)
		if s.Note != "" {
			soundTags = append(soundTags, s.Note)
		}
		i := slices.IndexFunc(out, func(x yomitan.IPA) bool { return x.IPA == s.IPA })
		if i < 0 {
			out = append(out, yomitan.IPA{IPA: s.IPA, Tags: soundTags})
			continue
		}
		out[i].Tags = appendMissing(out[i].Tags, soundTags...)
	}
	return out
}

func encodeIPA(ir *List[Pronunciation]) []yomitan.Batch {
	entries := make([]yomitan.Entry, len(ir.Items))
	for i, p := range ir.Items {
		entries[i] = yomitan.MetaEntry{Term: p.Term, Phonetic: p.Phonetic}
	}
	return []yomitan.Batch{{Label: "term", Entries: entries}}
}
