package kaikki

import (
	"bytes"

	"github.com/tidwall/gjson"
)

const langCodeKey = "lang_code"

// ProbeLangCode scans the top-level keys of a JSON object looking for
// "lang_code" without decoding the line. Nested values are skipped by
// bracket depth, strings by their quotes. ok is false when the scan is
// inconclusive: the key is absent, the value or a key holds escapes, or the
// line is not a well-formed object.
func ProbeLangCode(line []byte) (code string, ok bool) {
	p := probe{b: line}
	p.ws()
	if !p.eat('{') {
		return "", false
	}
	for {
		p.ws()
		if p.eat('}') {
			return "", false
		}
		key, clean := p.str()
		if key == nil {
			return "", false
		}
		p.ws()
		if !p.eat(':') {
			return "", false
		}
		p.ws()
		if clean && string(key) == langCodeKey {
			val, clean := p.str()
			if val == nil || !clean {
				return "", false
			}
			return string(val), true
		}
		if !p.skipValue() {
			return "", false
		}
		p.ws()
		if p.eat(',') {
			continue
		}
		return "", false
	}
}

// LangCode returns the top-level "lang_code" of a line, falling back to a
// partial decode when the probe is inconclusive. ok is false when the line is
// not valid JSON; a valid line without the key yields ("", true).
func LangCode(line []byte) (code string, ok bool) {
	if code, ok := ProbeLangCode(line); ok {
		return code, true
	}
	if !gjson.ValidBytes(line) {
		return "", false
	}
	res := gjson.GetBytes(line, langCodeKey)
	if !res.Exists() {
		return "", true
	}
	return res.String(), true
}

// Prefilter keeps lines whose language code is one of a candidate set.
type Prefilter struct {
	langs map[string]struct{}
}

// NewPrefilter returns a Prefilter for the given codes, or nil when codes is
// empty. A nil Prefilter accepts everything.
func NewPrefilter(codes ...string) *Prefilter {
	if len(codes) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return &Prefilter{langs: m}
}

// Accept reports whether line may hold a relevant record. Lines whose
// language code cannot be read are accepted so that decoding reports them.
func (p *Prefilter) Accept(line []byte) bool {
	if p == nil {
		return true
	}
	code, ok := LangCode(line)
	if !ok {
		return true
	}
	_, ok = p.langs[code]
	return ok
}

type probe struct {
	b []byte
	i int
}

func (p *probe) ws() {
	for p.i < len(p.b) {
		switch p.b[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		default:
			return
		}
	}
}

func (p *probe) eat(c byte) bool {
	if p.i < len(p.b) && p.b[p.i] == c {
		p.i++
		return true
	}
	return false
}

// str reads a JSON string and returns its raw contents. clean is false when
// the contents hold escape sequences. A nil result means malformed input.
func (p *probe) str() (raw []byte, clean bool) {
	if !p.eat('"') {
		return nil, false
	}
	start := p.i
	clean = true
	for p.i < len(p.b) {
		switch p.b[p.i] {
		case '\\':
			clean = false
			p.i += 2
		case '"':
			raw = p.b[start:p.i]
			p.i++
			return raw, clean
		default:
			p.i++
		}
	}
	return nil, false
}

func (p *probe) skipValue() bool {
	if p.i >= len(p.b) {
		return false
	}
	switch p.b[p.i] {
	case '"':
		raw, _ := p.str()
		return raw != nil
	case '{', '[':
		depth := 0
		for p.i < len(p.b) {
			switch p.b[p.i] {
			case '"':
				if raw, _ := p.str(); raw == nil {
					return false
				}
				continue
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					p.i++
					return true
				}
			}
			p.i++
		}
		return false
	default:
		// Number, literal.
		end := bytes.IndexAny(p.b[p.i:], ",}")
		if end < 0 {
			return false
		}
		p.i += end
		return true
	}
}
