package yomitan

import "encoding/json"

const (
	termBankPrefix     = "term_bank"
	termMetaBankPrefix = "term_meta_bank"
)

// Entry is one bank record.
type Entry interface {
	// BankPrefix is the file name prefix of the banks holding the entry.
	BankPrefix() string
}

// TermEntry is a term bank row. Frequency, sequence and term tags are not
// used and are written as 0, 0 and "".
type TermEntry struct {
	Term           string
	Reading        string
	DefinitionTags string
	Rules          string
	Definitions    []Definition
}

// BankPrefix implements Entry.
func (TermEntry) BankPrefix() string { return termBankPrefix }

// MarshalJSON writes the 8-tuple of the term bank v3 schema.
func (e TermEntry) MarshalJSON() ([]byte, error) {
	defs := e.Definitions
	if defs == nil {
		defs = []Definition{}
	}
	return json.Marshal([]any{e.Term, e.Reading, e.DefinitionTags, e.Rules, 0, defs, 0, ""})
}

// MetaEntry is a term meta bank row carrying IPA transcriptions.
type MetaEntry struct {
	Term     string
	Phonetic PhoneticTranscription
}

// BankPrefix implements Entry.
func (MetaEntry) BankPrefix() string { return termMetaBankPrefix }

// MarshalJSON writes [term, "ipa", transcription].
func (e MetaEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Term, "ipa", e.Phonetic})
}

// PhoneticTranscription is the payload of an "ipa" meta entry.
type PhoneticTranscription struct {
	Reading        string `json:"reading" yaml:"reading"`
	Transcriptions []IPA  `json:"transcriptions" yaml:"transcriptions"`
}

// IPA is one transcription with its qualifiers.
type IPA struct {
	IPA  string   `json:"ipa" yaml:"ipa"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Batch is a labelled run of entries handed to the writer. Labels separate
// record kinds such as "lemma" and "form"; they only affect logging.
type Batch struct {
	Label   string
	Entries []Entry
}
