package kaikki

import (
	"slices"
	"strings"

	"github.com/heartmarshall/kty/internal/tags"
)

// IsParticiple reports whether the record is a verb tagged as a participle.
func (r *Record) IsParticiple() bool {
	return r.POS == "verb" && slices.Contains(r.Tags, "participle")
}

// taggedForm returns the first non-empty form carrying every tag in want.
func (r *Record) taggedForm(want ...string) (Form, bool) {
	for _, f := range r.Forms {
		if f.Form == "" {
			continue
		}
		ok := true
		for _, t := range want {
			if !slices.Contains(f.Tags, t) {
				ok = false
				break
			}
		}
		if ok {
			return f, true
		}
	}
	return Form{}, false
}

// CanonicalForm returns the first non-empty form tagged "canonical".
func (r *Record) CanonicalForm() (Form, bool) { return r.taggedForm("canonical") }

// RomanizationForm returns the first non-empty form tagged "romanization".
func (r *Record) RomanizationForm() (Form, bool) { return r.taggedForm("romanization") }

// TransliterationForm returns the first non-empty form tagged "transliteration".
func (r *Record) TransliterationForm() (Form, bool) { return r.taggedForm("transliteration") }

// Pinyin returns the zh_pron of the first sound tagged "Pinyin".
func (r *Record) Pinyin() (string, bool) {
	for _, s := range r.Sounds {
		if slices.Contains(s.Tags, "Pinyin") {
			return s.ZhPron, true
		}
	}
	return "", false
}

// HasNoGloss reports whether the record carries no usable gloss: either no
// senses at all, or a single sense tagged "no-gloss".
func (r *Record) HasNoGloss() bool {
	switch len(r.Senses) {
	case 0:
		return true
	case 1:
		return slices.Contains(r.Senses[0].Tags, "no-gloss")
	default:
		return false
	}
}

// NonTrivialForms returns the forms worth turning into dictionary forms.
//
// Skipped: the word itself; forms starting with a hyphen (empty table cells
// and suffix garbage); forms with a blacklisted tag; forms whose tags are all
// identity tags, including forms without tags.
func (r *Record) NonTrivialForms() []Form {
	var out []Form
	for _, f := range r.Forms {
		if f.Form == r.Word {
			continue
		}
		if strings.HasPrefix(f.Form, "-") || strings.HasPrefix(f.Form, "\u2011") {
			continue
		}
		if slices.ContainsFunc(f.Tags, tags.IsBlacklistedFormTag) {
			continue
		}
		identity := true
		for _, t := range f.Tags {
			if !tags.IsIdentityFormTag(t) {
				identity = false
				break
			}
		}
		if identity {
			continue
		}
		out = append(out, f)
	}
	return out
}

// NonTrivialTranslations returns the translations with a non-empty word.
func (r *Record) NonTrivialTranslations() []Translation {
	var out []Translation
	for _, t := range r.Translations {
		if t.Word != "" {
			out = append(out, t)
		}
	}
	return out
}

// Etymologies prefers the list form over the single text.
func (r *Record) Etymologies() []string {
	if len(r.EtymologyTexts) > 0 {
		return r.EtymologyTexts
	}
	if r.EtymologyText != "" {
		return []string{r.EtymologyText}
	}
	return nil
}
