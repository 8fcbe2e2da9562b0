// Package kaikki streams wiktextract (Kaikki) JSONL dumps into Records.
// It knows nothing about dictionaries: lines in, filtered records out.
package kaikki

// Tag is a wiktextract tag such as "plural" or "first-person".
type Tag = string

// Record mirrors one Kaikki JSONL line. Absent fields decode to zero values.
type Record struct {
	Word     string `json:"word"`
	POS      string `json:"pos"`
	LangCode string `json:"lang_code"`

	HeadTemplates []HeadTemplate `json:"head_templates,omitempty"`

	// En and El editions still use the single text.
	EtymologyText  string   `json:"etymology_text,omitempty"`
	EtymologyTexts []string `json:"etymology_texts,omitempty"`

	Sounds []Sound `json:"sounds,omitempty"`
	Senses []Sense `json:"senses,omitempty"`

	Tags   []Tag `json:"tags,omitempty"`
	Topics []Tag `json:"topics,omitempty"`

	Forms  []Form    `json:"forms,omitempty"`
	FormOf []AltForm `json:"form_of,omitempty"`
	AltOf  []AltForm `json:"alt_of,omitempty"`

	Translations []Translation `json:"translations,omitempty"`
}

// HeadTemplate keeps the rendered head line, e.g. "run (third-person singular simple present runs)".
type HeadTemplate struct {
	Expansion string `json:"expansion"`
}

// Sound is one pronunciation.
type Sound struct {
	IPA    string `json:"ipa,omitempty"`
	Tags   []Tag  `json:"tags,omitempty"`
	Note   string `json:"note,omitempty"`
	ZhPron string `json:"zh_pron,omitempty"`
}

// Sense is one meaning. Glosses are ordered from the most general to the
// most specific: ["Gloss supercategory", "Specific gloss.", ...].
type Sense struct {
	Glosses  []string  `json:"glosses,omitempty"`
	Examples []Example `json:"examples,omitempty"`
	FormOf   []AltForm `json:"form_of,omitempty"`
	AltOf    []AltForm `json:"alt_of,omitempty"`
	Tags     []Tag     `json:"tags,omitempty"`
	Topics   []Tag     `json:"topics,omitempty"`
}

// Example is a usage example or a quotation.
type Example struct {
	Text        string `json:"text" yaml:"text"`
	Translation string `json:"translation,omitempty" yaml:"translation,omitempty"`
	Ref         string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// AltForm points at another word.
type AltForm struct {
	Word string `json:"word"`
}

// Form is an inflected or otherwise related form of the word.
type Form struct {
	Form string `json:"form"`
	Tags []Tag  `json:"tags,omitempty"`
	// Ruby holds (kanji, kana) pairs for Japanese.
	Ruby [][2]string `json:"ruby,omitempty"`
}

// Translation is a translation of the word into another language.
type Translation struct {
	LangCode string `json:"lang_code"`
	Word     string `json:"word"`
	Sense    string `json:"sense,omitempty"`
}
