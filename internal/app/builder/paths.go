package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/heartmarshall/kty/internal/dict"
	"github.com/heartmarshall/kty/internal/lang"
)

// ErrDatasetNotFound is returned when no corpus file exists for a request.
var ErrDatasetNotFound = errors.New("dataset not found")

// Layout maps dictionaries and datasets to paths under a root directory:
//
//	<root>/kaikki/<edition>-extract.jsonl         whole edition
//	<root>/kaikki/<lang>-<edition>-extract.jsonl  one language of an edition
//	<root>/dict/<source>/<target>/<name>.zip      output archives
type Layout struct {
	Root         string
	DictName     string
	Experimental bool
}

// KaikkiDir holds the input corpora.
func (l Layout) KaikkiDir() string { return filepath.Join(l.Root, "kaikki") }

func (l Layout) unfilteredPath(edition lang.Edition) string {
	return filepath.Join(l.KaikkiDir(), fmt.Sprintf("%s-extract.jsonl", edition))
}

func (l Layout) filteredPath(edition lang.Edition, lg lang.Lang) string {
	return filepath.Join(l.KaikkiDir(), fmt.Sprintf("%s-%s-extract.jsonl", lg, edition))
}

// candidates lists the files that may serve req, preferred first.
//
// The English edition is only read per language: its full dump is too large
// to scan for a single language.
func (l Layout) candidates(edition lang.Edition, req dict.DatasetRequest) []string {
	switch req.Kind {
	case dict.FilteredEdition:
		return []string{l.filteredPath(edition, edition), l.unfilteredPath(edition)}
	case dict.FilteredLang:
		if edition == "en" {
			return []string{l.filteredPath(edition, req.Lang)}
		}
		return []string{l.filteredPath(edition, req.Lang), l.unfilteredPath(edition)}
	default:
		return []string{l.unfilteredPath(edition)}
	}
}

// Dataset returns the first existing corpus file for req. A gzipped copy
// (".gz") is accepted in place of each candidate.
func (l Layout) Dataset(edition lang.Edition, req dict.DatasetRequest) (string, error) {
	return firstExisting(l.candidates(edition, req))
}

// EditionDump returns the whole-edition corpus file.
func (l Layout) EditionDump(edition lang.Edition) (string, error) {
	return firstExisting([]string{l.unfilteredPath(edition)})
}

func firstExisting(paths []string) (string, error) {
	for _, p := range paths {
		for _, candidate := range []string{p, p + ".gz"} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: tried %v", ErrDatasetNotFound, paths)
}

// Output identifies one dictionary written by a run. Edition is "all" for
// dictionaries merged across editions.
type Output struct {
	Kind    dict.Kind
	Edition string
	Source  string
	Target  string
}

// DictDir is where the archive of o goes.
func (l Layout) DictDir(o Output) string {
	if o.Kind == dict.KindIPAMerged {
		return filepath.Join(l.Root, "dict", o.Edition, o.Target)
	}
	return filepath.Join(l.Root, "dict", o.Source, o.Target)
}

// TempDir holds the intermediate files of o when temps are saved.
func (l Layout) TempDir(o Output) string {
	return filepath.Join(l.DictDir(o), "temp-"+string(o.Kind))
}

// TidyDir holds IR snapshots.
func (l Layout) TidyDir(o Output) string { return filepath.Join(l.TempDir(o), "tidy") }

// TempDictDir holds loose banks.
func (l Layout) TempDictDir(o Output) string { return filepath.Join(l.TempDir(o), "dict") }

// DiagnosticsDir holds tag and part-of-speech counts.
func (l Layout) DiagnosticsDir(o Output) string { return filepath.Join(l.TempDir(o), "diagnostics") }

// Title is the dictionary title, also used as the archive base name.
func (l Layout) Title(o Output) string {
	var title string
	switch o.Kind {
	case dict.KindGlossary:
		title = fmt.Sprintf("%s-%s-%s-gloss", l.DictName, o.Source, o.Target)
	case dict.KindGlossaryExtended:
		title = fmt.Sprintf("%s-%s-%s-%s-gloss", l.DictName, o.Edition, o.Source, o.Target)
	case dict.KindIPA:
		title = fmt.Sprintf("%s-%s-%s-ipa", l.DictName, o.Source, o.Target)
	case dict.KindIPAMerged:
		title = fmt.Sprintf("%s-%s-ipa", l.DictName, o.Target)
	default:
		title = fmt.Sprintf("%s-%s-%s", l.DictName, o.Source, o.Target)
	}
	if l.Experimental {
		title += "-exp"
	}
	return title
}

// ArchivePath is the zip file of o.
func (l Layout) ArchivePath(o Output) string {
	return filepath.Join(l.DictDir(o), l.Title(o)+".zip")
}
