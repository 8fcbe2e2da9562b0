package yomitan

import "time"

const (
	indexAuthor      = "Kaikki-to-Yomitan contributors"
	indexURL         = "https://github.com/yomidevs/kaikki-to-yomitan"
	indexDescription = "Dictionaries for various language pairs generated from Wiktionary data, via Kaikki and Kaikki-to-Yomitan."
	indexAttribution = "https://kaikki.org/"
)

// Index is index.json.
type Index struct {
	Title          string `json:"title"`
	Format         int    `json:"format"`
	Revision       string `json:"revision"`
	Sequenced      bool   `json:"sequenced"`
	Author         string `json:"author"`
	URL            string `json:"url"`
	Description    string `json:"description"`
	Attribution    string `json:"attribution"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// NewIndex returns the index of a dictionary built at the given time. The
// revision is the UTC date.
func NewIndex(title, source, target string, built time.Time) Index {
	return Index{
		Title:          title,
		Format:         3,
		Revision:       built.UTC().Format(time.DateOnly),
		Sequenced:      true,
		Author:         indexAuthor,
		URL:            indexURL,
		Description:    indexDescription,
		Attribution:    indexAttribution,
		SourceLanguage: source,
		TargetLanguage: target,
	}
}
