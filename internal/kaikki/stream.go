package kaikki

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedLine is matched (errors.Is) by every *LineError.
var ErrMalformedLine = errors.New("malformed jsonl line")

// snippetLen bounds the line prefix quoted in a LineError.
const snippetLen = 120

// LineError reports a line that could not be decoded. A single bad line
// aborts the whole run.
type LineError struct {
	Path    string
	Line    int
	Snippet string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v (line starts with %q)", e.Path, e.Line, e.Err, e.Snippet)
}

func (e *LineError) Unwrap() []error { return []error{ErrMalformedLine, e.Err} }

// FilterKey names a record field usable in --filter and --reject.
type FilterKey string

const (
	FilterLangCode FilterKey = "lang_code"
	FilterWord     FilterKey = "word"
	FilterPOS      FilterKey = "pos"
)

// ParseFilterKey validates a filter key.
func ParseFilterKey(s string) (FilterKey, error) {
	switch k := FilterKey(strings.TrimSpace(s)); k {
	case FilterLangCode, FilterWord, FilterPOS:
		return k, nil
	default:
		return "", fmt.Errorf("unknown filter key %q (want lang_code, word or pos)", s)
	}
}

// FieldValue returns the value of the field k of r.
func (k FilterKey) FieldValue(r *Record) string {
	switch k {
	case FilterLangCode:
		return r.LangCode
	case FilterWord:
		return r.Word
	case FilterPOS:
		return r.POS
	}
	return ""
}

// FieldFilter is a (key, value) pair.
type FieldFilter struct {
	Key   FilterKey
	Value string
}

// ParseFieldFilter parses "key,value".
func ParseFieldFilter(s string) (FieldFilter, error) {
	k, v, ok := strings.Cut(s, ",")
	if !ok {
		return FieldFilter{}, fmt.Errorf("filter %q: want key,value", s)
	}
	key, err := ParseFilterKey(k)
	if err != nil {
		return FieldFilter{}, err
	}
	return FieldFilter{Key: key, Value: v}, nil
}

func (f FieldFilter) match(r *Record) bool { return f.Key.FieldValue(r) == f.Value }

// Options controls which records a Stream yields.
type Options struct {
	// Filter keeps records matching every filter.
	Filter []FieldFilter
	// Reject drops records matching any filter.
	Reject []FieldFilter
	// First stops the stream after this many accepted records. Negative
	// means no limit.
	First int
	// Langs enables the lang_code prefilter. It is ignored when Filter or
	// Reject are set.
	Langs []string
}

// Stats counts what a Stream did with its lines.
type Stats struct {
	Lines       int
	Prefiltered int
	Rejected    int
	Accepted    int
}

// Stream decodes accepted records from a LineSource.
type Stream struct {
	src       LineSource
	path      string
	opts      Options
	prefilter *Prefilter
	stats     Stats
}

// NewStream returns a Stream over src. path is only used in errors.
func NewStream(src LineSource, path string, opts Options) *Stream {
	s := &Stream{src: src, path: path, opts: opts}
	if len(opts.Filter) == 0 && len(opts.Reject) == 0 {
		s.prefilter = NewPrefilter(opts.Langs...)
	}
	return s
}

// Close closes the underlying source.
func (s *Stream) Close() error { return s.src.Close() }

// Stats returns the counters so far.
func (s *Stream) Stats() Stats { return s.stats }

// Next returns the next accepted record, or io.EOF.
func (s *Stream) Next() (*Record, error) {
	for {
		if s.opts.First >= 0 && s.stats.Accepted >= s.opts.First {
			return nil, io.EOF
		}
		if !s.src.Scan() {
			if err := s.src.Err(); err != nil {
				return nil, fmt.Errorf("read %s after line %d: %w", s.path, s.stats.Lines, err)
			}
			return nil, io.EOF
		}
		s.stats.Lines++

		line := s.src.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if !s.prefilter.Accept(line) {
			s.stats.Prefiltered++
			continue
		}

		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, &LineError{Path: s.path, Line: s.stats.Lines, Snippet: snippet(line), Err: err}
		}

		if s.rejected(&r) {
			s.stats.Rejected++
			continue
		}
		s.stats.Accepted++
		return &r, nil
	}
}

func (s *Stream) rejected(r *Record) bool {
	for _, f := range s.opts.Reject {
		if f.match(r) {
			return true
		}
	}
	for _, f := range s.opts.Filter {
		if !f.match(r) {
			return true
		}
	}
	return false
}

func snippet(line []byte) string {
	r := []rune(string(line))
	if len(r) > snippetLen {
		return string(r[:snippetLen]) + "..."
	}
	return string(r)
}
