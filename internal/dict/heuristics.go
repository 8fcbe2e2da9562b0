package dict

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
)

// Heuristics are the edition-specific rules of the main dictionary. Every
// edition without an entry in the registry uses the defaults, which only
// know about canonical forms.
type Heuristics interface {
	// PropagateTags copies record-level information into sense tags.
	PropagateTags(r *kaikki.Record)
	// IsInflectionSense reports whether the sense only says "form of X".
	IsInflectionSense(s *kaikki.Sense) bool
	// HandleInflectionSense turns an inflection sense into form relations.
	HandleInflectionSense(source lang.Lang, r *kaikki.Record, s *kaikki.Sense, ir *Tidy)
	// HandleNoGloss salvages records left without glosses.
	HandleNoGloss(r *kaikki.Record, ir *Tidy)
	// StopForms ends the scan of the forms list at f.
	StopForms(source lang.Lang, f kaikki.Form) bool
	// SkipForm drops f from the forms list.
	SkipForm(source lang.Lang, f kaikki.Form) bool
	// Reading returns the reading of the headword, if it differs.
	Reading(source lang.Lang, r *kaikki.Record) (string, bool)
}

var (
	registry = map[lang.Edition]Heuristics{
		"de": deHeuristics{},
		"el": elHeuristics{},
		"en": enHeuristics{},
		"es": entryTagHeuristics{},
		"fr": frHeuristics{},
		"ja": jaHeuristics{},
		"pl": entryTagHeuristics{},
		"ru": entryTagHeuristics{},
		"zh": zhHeuristics{},
	}

	parensRe       = regexp.MustCompile(`\(.+?\)`)
	deInflectionRe = regexp.MustCompile(`^(.*)des (?:Verbs|Adjektivs|Substantivs|Demonstrativpronomens|Possessivpronomens|Pronomens) (.*)$`)
)

// HeuristicsFor returns the rules of an edition.
func HeuristicsFor(e lang.Edition) Heuristics {
	if h, ok := registry[e]; ok {
		return h
	}
	return defaultHeuristics{}
}

type defaultHeuristics struct{}

func (defaultHeuristics) PropagateTags(*kaikki.Record) {}

func (defaultHeuristics) IsInflectionSense(*kaikki.Sense) bool { return false }

func (defaultHeuristics) HandleInflectionSense(lang.Lang, *kaikki.Record, *kaikki.Sense, *Tidy) {}

func (defaultHeuristics) HandleNoGloss(*kaikki.Record, *Tidy) {}

func (defaultHeuristics) StopForms(lang.Lang, kaikki.Form) bool { return false }

func (defaultHeuristics) SkipForm(lang.Lang, kaikki.Form) bool { return false }

func (defaultHeuristics) Reading(source lang.Lang, r *kaikki.Record) (string, bool) {
	return canonicalWord(source, r)
}

// canonicalWord returns the canonical form for languages whose canonical
// form carries diacritics the headword lacks (Latin fāma for fama).
func canonicalWord(source lang.Lang, r *kaikki.Record) (string, bool) {
	switch source {
	case "la", "ru", "grc":
		if f, ok := r.CanonicalForm(); ok {
			return f.Form, true
		}
	}
	return "", false
}

func appendMissing(dst []string, tags ...string) []string {
	for _, t := range tags {
		if !slices.Contains(dst, t) {
			dst = append(dst, t)
		}
	}
	return dst
}

// redirectedOr returns tags, or a "redirected from" marker when empty.
func redirectedOr(tags []string, word string) []string {
	if len(tags) > 0 {
		return tags
	}
	return []string{"redirected from " + word}
}

// entryTagHeuristics copies record tags to every sense.
type entryTagHeuristics struct{ defaultHeuristics }

func (entryTagHeuristics) PropagateTags(r *kaikki.Record) {
	for i := range r.Senses {
		r.Senses[i].Tags = appendMissing(r.Senses[i].Tags, r.Tags...)
	}
}

type enHeuristics struct{ defaultHeuristics }

// PropagateTags copies the tags of the canonical form, which carry what the
// head template says about the word.
func (enHeuristics) PropagateTags(r *kaikki.Record) {
	cform, ok := r.CanonicalForm()
	if !ok {
		return
	}
	for i := range r.Senses {
		for _, t := range cform.Tags {
			if t != "canonical" {
				r.Senses[i].Tags = appendMissing(r.Senses[i].Tags, t)
			}
		}
	}
}

// IsInflectionSense matches "inflection of X" and glosses ending in
// "of X" or "of X (transliteration)".
func (enHeuristics) IsInflectionSense(s *kaikki.Sense) bool {
	for _, gloss := range s.Glosses {
		if strings.Contains(gloss, "inflection of") {
			return true
		}
		for _, f := range s.FormOf {
			if f.Word == "" {
				continue
			}
			of := "of " + f.Word
			if strings.HasSuffix(gloss, of) ||
				(strings.Contains(gloss, of+" (") && strings.HasSuffix(gloss, ")")) {
				return true
			}
		}
	}
	return false
}

func (enHeuristics) HandleInflectionSense(source lang.Lang, r *kaikki.Record, s *kaikki.Sense, ir *Tidy) {
	if len(s.FormOf) != 1 {
		return
	}
	uninflected := s.FormOf[0].Word
	inflected, ok := canonicalWord(source, r)
	if !ok {
		inflected = r.Word
	}
	if inflected == uninflected {
		return
	}

	var inflections []string
	for _, gloss := range s.Glosses {
		cleaned := strings.ReplaceAll(gloss, "inflection of ", "")
		cleaned = strings.ReplaceAll(cleaned, "of "+uninflected, "")
		if uninflected != "" {
			cleaned = strings.ReplaceAll(cleaned, uninflected, "")
		}
		cleaned = strings.ReplaceAll(cleaned, ":", "")
		cleaned = strings.TrimSpace(parensRe.ReplaceAllString(cleaned, ""))
		if cleaned != "" {
			inflections = appendMissing(inflections, cleaned)
		}
	}
	for _, infl := range inflections {
		ir.InsertForm(uninflected, inflected, r.POS, FormInflection, []string{infl})
	}
}

func (enHeuristics) StopForms(source lang.Lang, f kaikki.Form) bool {
	// Finnish tables list every possessive form after these markers.
	return source == "fi" &&
		(f.Form == "See the possessive forms below." || f.Form == "Rare. Only used with substantive adjectives.")
}

func (enHeuristics) SkipForm(source lang.Lang, f kaikki.Form) bool {
	// Romanizations of Japanese forms.
	return source == "ja" && isASCII(f.Form)
}

func (enHeuristics) Reading(source lang.Lang, r *kaikki.Record) (string, bool) {
	switch source {
	case "ja":
		return japaneseReading(r)
	case "fa":
		if f, ok := r.RomanizationForm(); ok {
			return f.Form, true
		}
		return "", false
	case "zh":
		return r.Pinyin()
	}
	return canonicalWord(source, r)
}

// japaneseReading replaces every ruby base of the canonical form, left to
// right, by its kana.
func japaneseReading(r *kaikki.Record) (string, bool) {
	cform, ok := r.CanonicalForm()
	if !ok || len(cform.Ruby) == 0 {
		return "", false
	}
	reading := r.Word
	cursor := 0
	for _, pair := range cform.Ruby {
		base, kana := pair[0], pair[1]
		i := strings.Index(reading[cursor:], base)
		if i < 0 {
			return "", false
		}
		start := cursor + i
		reading = reading[:start] + kana + reading[start+len(base):]
		cursor = start + len(kana)
	}
	return reading, true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

type deHeuristics struct{ defaultHeuristics }

func (deHeuristics) IsInflectionSense(s *kaikki.Sense) bool {
	return slices.ContainsFunc(s.Glosses, deInflectionRe.MatchString)
}

func (deHeuristics) HandleInflectionSense(_ lang.Lang, r *kaikki.Record, s *kaikki.Sense, ir *Tidy) {
	if len(s.Glosses) == 0 {
		return
	}
	m := deInflectionRe.FindStringSubmatch(s.Glosses[0])
	if m == nil {
		return
	}
	if infl := strings.TrimSpace(m[1]); infl != "" {
		ir.InsertForm(m[2], r.Word, r.POS, FormInflection, []string{infl})
	}
}

// elRetainedTags are the sense tags worth keeping on Greek inflections.
var elRetainedTags = []string{
	"masculine", "feminine", "neuter",
	"singular", "plural",
	"nominative", "accusative", "genitive", "vocative",
}

var elGenderTags = elRetainedTags[:3]

type elHeuristics struct{ defaultHeuristics }

// PropagateTags copies the gender of the form spelled like the headword.
func (elHeuristics) PropagateTags(r *kaikki.Record) {
	for _, f := range r.Forms {
		if f.Form != r.Word {
			continue
		}
		for i := range r.Senses {
			for _, t := range f.Tags {
				if slices.Contains(elGenderTags, t) {
					r.Senses[i].Tags = appendMissing(r.Senses[i].Tags, t)
				}
			}
		}
	}
}

func (elHeuristics) IsInflectionSense(s *kaikki.Sense) bool {
	return len(s.FormOf) > 0 && slices.ContainsFunc(s.Glosses, func(g string) bool {
		return strings.Contains(g, "του")
	})
}

func (elHeuristics) HandleInflectionSense(_ lang.Lang, r *kaikki.Record, s *kaikki.Sense, ir *Tidy) {
	var kept []string
	for _, t := range s.Tags {
		if slices.Contains(elRetainedTags, t) {
			kept = append(kept, t)
		}
	}
	kept = redirectedOr(kept, r.Word)
	for _, f := range s.FormOf {
		ir.InsertForm(f.Word, r.Word, r.POS, FormInflection, kept)
	}
}

// HandleNoGloss redirects glossless participles to their verb.
func (elHeuristics) HandleNoGloss(r *kaikki.Record, ir *Tidy) {
	if !r.IsParticiple() || len(r.FormOf) == 0 {
		return
	}
	ir.InsertForm(r.FormOf[0].Word, r.Word, r.POS, FormInflection,
		[]string{fmt.Sprintf("redirected from %s", r.Word)})
}

type frHeuristics struct{ defaultHeuristics }

var frSkippedPrefixes = []string{"qu’", "que ", "il/elle/on", "ils/elles", "en "}

func (frHeuristics) IsInflectionSense(s *kaikki.Sense) bool {
	return len(s.FormOf) > 0 && slices.ContainsFunc(s.Glosses, func(g string) bool {
		return strings.Contains(g, "personne du")
	})
}

func (frHeuristics) HandleInflectionSense(_ lang.Lang, r *kaikki.Record, s *kaikki.Sense, ir *Tidy) {
	var kept []string
	for _, t := range s.Tags {
		if t != "form-of" {
			kept = append(kept, t)
		}
	}
	kept = redirectedOr(kept, r.Word)
	for _, f := range s.FormOf {
		ir.InsertForm(f.Word, r.Word, r.POS, FormInflection, kept)
	}
}

// SkipForm drops pronoun-prefixed conjugations and compound pluperfects,
// which the shorter forms already cover.
func (frHeuristics) SkipForm(source lang.Lang, f kaikki.Form) bool {
	if source != "fr" {
		return false
	}
	for _, p := range frSkippedPrefixes {
		if strings.HasPrefix(f.Form, p) {
			return true
		}
	}
	return slices.Contains(f.Tags, "pluperfect")
}

type jaHeuristics struct{ defaultHeuristics }

func (jaHeuristics) Reading(_ lang.Lang, r *kaikki.Record) (string, bool) {
	if f, ok := r.TransliterationForm(); ok {
		return f.Form, true
	}
	return "", false
}

type zhHeuristics struct{ defaultHeuristics }

func (zhHeuristics) Reading(source lang.Lang, r *kaikki.Record) (string, bool) {
	if source == "zh" {
		return r.Pinyin()
	}
	return canonicalWord(source, r)
}
