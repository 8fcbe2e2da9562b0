package tags

import "slices"

// Tags that disqualify a form when any of its tags is one of them.
var blacklistedFormTags = []string{
	"inflection-template",
	"table-tags",
	"canonical",
	"class",
	"error-unknown-tag",
	"error-unrecognized-form",
	"includes-article",
	"obsolete",
	"archaic",
	"used-in-the-form",
	"romanization",
	"dated",
	"auxiliary",
	// Only noise for fr (e.g. "present indicative of avoir + past participle")
	// and de compound tenses.
	"multiword-construction",
}

// Tags that disqualify a form when every one of its tags is one of them.
var identityFormTags = []string{"nominative", "singular", "infinitive"}

// Tags dropped from forms without dropping the form.
var redundantFormTags = []string{"combined-form"}

// IsBlacklistedFormTag reports whether a form carrying t must be skipped.
func IsBlacklistedFormTag(t string) bool { return slices.Contains(blacklistedFormTags, t) }

// IsIdentityFormTag reports whether t only restates the lemma itself.
func IsIdentityFormTag(t string) bool { return slices.Contains(identityFormTags, t) }

// IsRedundantFormTag reports whether t is removed from form tags.
func IsRedundantFormTag(t string) bool { return slices.Contains(redundantFormTags, t) }
