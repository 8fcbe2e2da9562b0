package kaikki

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// maxLineSize is the buffer size for bufio.Scanner (16 MB). Some kaikki
// entries (e.g. "a" in the English edition) exceed a megabyte.
const maxLineSize = 16 << 20

// LineSource yields raw JSONL lines. Bytes is only valid until the next Scan.
type LineSource interface {
	Scan() bool
	Bytes() []byte
	Err() error
	Close() error
}

// scannerSource reads lines from an io.Reader.
type scannerSource struct {
	sc      *bufio.Scanner
	closers []io.Closer
}

// NewLineSource wraps r. Closing the source does not close r.
func NewLineSource(r io.Reader) LineSource {
	return newScannerSource(r)
}

func newScannerSource(r io.Reader, closers ...io.Closer) *scannerSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256<<10), maxLineSize)
	return &scannerSource{sc: sc, closers: closers}
}

func (s *scannerSource) Scan() bool    { return s.sc.Scan() }
func (s *scannerSource) Bytes() []byte { return s.sc.Bytes() }
func (s *scannerSource) Err() error    { return s.sc.Err() }

func (s *scannerSource) Close() error {
	var first error
	// Innermost reader first.
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens a JSONL corpus. Files ending in ".gz" are decompressed on the fly.
func Open(path string) (LineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return newScannerSource(f, f), nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip corpus %s: %w", path, err)
	}
	return newScannerSource(zr, f, zr), nil
}
