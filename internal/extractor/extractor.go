// Package extractor pulls string fields out of a release description without
// parsing it. It looks for the literal `"key":` and reads the quoted string
// that follows; everything around the match is ignored, so nested objects,
// arrays and unknown fields never cause a failure.
package extractor

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("field not found")

// Scanner walks a text blob left to right. Each call to Next resumes after
// the previous match, which is how repeated keys (one per asset) are read.
type Scanner struct {
	text string
	pos  int
}

func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// Next returns the value of the next `"key":"value"` pair at or after the
// current position. Occurrences whose value is not a string (null, numbers,
// objects) are skipped. A value without a closing quote ends the scan.
func (s *Scanner) Next(key string) (string, bool) {
	pattern := `"` + key + `":`

	for s.pos < len(s.text) {
		idx := strings.Index(s.text[s.pos:], pattern)
		if idx < 0 {
			s.pos = len(s.text)
			return "", false
		}
		cur := s.pos + idx + len(pattern)

		for cur < len(s.text) && isSpace(s.text[cur]) {
			cur++
		}
		if cur >= len(s.text) {
			s.pos = len(s.text)
			return "", false
		}
		if s.text[cur] != '"' {
			s.pos = cur
			continue
		}

		end := closingQuote(s.text, cur+1)
		if end < 0 {
			s.pos = len(s.text)
			return "", false
		}
		s.pos = end + 1
		return s.text[cur+1 : end], true
	}
	return "", false
}

// String returns the first string value stored under key. The value may be
// empty; deciding whether blank counts as missing is left to the caller.
func String(text, key string) (string, error) {
	v, ok := NewScanner(text).Next(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// AllWithSuffix returns, in document order, every value stored under key
// that ends with suffix.
func AllWithSuffix(text, key, suffix string) ([]string, error) {
	var out []string
	sc := NewScanner(text)
	for {
		v, ok := sc.Next(key)
		if !ok {
			break
		}
		if strings.HasSuffix(v, suffix) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func closingQuote(text string, from int) int {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
