package yomitan

import (
	"bufio"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/heartmarshall/kty/internal/tags"
)

// BankSize is the number of entries per bank file.
const BankSize = 25_000

//go:embed assets/styles.css
var stylesCSS []byte

//go:embed assets/styles_experimental.css
var stylesExperimentalCSS []byte

// Writer writes banks either into a zip archive or into a directory.
type Writer struct {
	log *slog.Logger
	cfg WriterConfig
}

// WriterConfig controls the output format.
type WriterConfig struct {
	// Pretty indents bank JSON.
	Pretty bool
	// Experimental ships the experimental stylesheet.
	Experimental bool
	// CompressionLevel is the deflate level of archive members.
	CompressionLevel int
	// Modified is stamped on archive members so that archives are
	// reproducible. Zero means the current time.
	Modified time.Time
}

// Summary reports what a write produced.
type Summary struct {
	Path    string
	Banks   int
	Entries int
}

// NewWriter creates a Writer.
func NewWriter(log *slog.Logger, cfg WriterConfig) *Writer {
	if cfg.Modified.IsZero() {
		cfg.Modified = time.Now()
	}
	return &Writer{log: log, cfg: cfg}
}

// sink creates named members.
type sink interface {
	create(name string) (io.Writer, error)
}

type dirSink struct {
	dir  string
	open *os.File
}

func (s *dirSink) create(name string) (io.Writer, error) {
	if err := s.closeOpen(); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	s.open = f
	return f, nil
}

func (s *dirSink) closeOpen() error {
	if s.open == nil {
		return nil
	}
	err := s.open.Close()
	s.open = nil
	return err
}

type zipSink struct {
	zw       *zip.Writer
	modified time.Time
}

func (s *zipSink) create(name string) (io.Writer, error) {
	return s.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: s.modified,
	})
}

// WriteArchive writes a complete dictionary (index, stylesheet, tag bank and
// banks) to a zip archive at path.
func (w *Writer) WriteArchive(path string, idx Index, batches []Batch) (Summary, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Summary{}, fmt.Errorf("create archive dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return Summary{}, fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	zw := zip.NewWriter(bw)
	level := w.cfg.CompressionLevel
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	s := &zipSink{zw: zw, modified: w.cfg.Modified}

	if err := writeJSON(s, "index.json", idx, true); err != nil {
		return Summary{}, err
	}
	css := stylesCSS
	if w.cfg.Experimental {
		css = stylesExperimentalCSS
	}
	if err := writeRaw(s, "styles.css", css); err != nil {
		return Summary{}, err
	}
	// Yomitan requires the tag bank name to end in _1.
	if err := writeJSON(s, "tag_bank_1.json", tags.Default().Bank(), true); err != nil {
		return Summary{}, err
	}

	sum, err := w.writeBanks(s, path, batches)
	if err != nil {
		return Summary{}, err
	}

	if err := zw.Close(); err != nil {
		return Summary{}, fmt.Errorf("finish archive: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return Summary{}, fmt.Errorf("flush archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return Summary{}, fmt.Errorf("close archive: %w", err)
	}

	w.log.Info("wrote yomitan dictionary",
		slog.String("path", path),
		slog.Int("banks", sum.Banks),
		slog.Int("entries", sum.Entries),
	)
	return sum, nil
}

// WriteDir writes only the banks, as loose files in dir.
func (w *Writer) WriteDir(dir string, batches []Batch) (Summary, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create bank dir: %w", err)
	}
	s := &dirSink{dir: dir}
	sum, err := w.writeBanks(s, dir, batches)
	if cerr := s.closeOpen(); err == nil && cerr != nil {
		err = fmt.Errorf("close bank: %w", cerr)
	}
	if err != nil {
		return Summary{}, err
	}
	w.log.Info("wrote temp banks", slog.String("dir", dir), slog.Int("banks", sum.Banks))
	return sum, nil
}

// writeBanks numbers banks across batches: a forms batch following two lemma
// banks starts at term_bank_3.json.
func (w *Writer) writeBanks(s sink, where string, batches []Batch) (Summary, error) {
	sum := Summary{Path: where}
	for _, b := range batches {
		if len(b.Entries) == 0 {
			continue
		}
		// A batch holds a single kind of entry.
		prefix := b.Entries[0].BankPrefix()
		total := (len(b.Entries) + BankSize - 1) / BankSize

		for start := 0; start < len(b.Entries); start += BankSize {
			end := min(start+BankSize, len(b.Entries))
			sum.Banks++
			name := fmt.Sprintf("%s_%d.json", prefix, sum.Banks)
			if err := writeJSON(s, name, b.Entries[start:end], w.cfg.Pretty); err != nil {
				return Summary{}, err
			}
			w.log.Debug("wrote bank",
				slog.String("label", b.Label),
				slog.String("name", name),
				slog.Int("bank", start/BankSize+1),
				slog.Int("of", total),
				slog.Int("entries", end-start),
			)
		}
		sum.Entries += len(b.Entries)
	}
	return sum, nil
}

func writeJSON(s sink, name string, v any, pretty bool) error {
	out, err := s.create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func writeRaw(s sink, name string, data []byte) error {
	out, err := s.create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
