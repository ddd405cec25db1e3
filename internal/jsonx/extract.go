package jsonx

import (
	"errors"
	"strings"
)

// ErrNoObject is returned when the input contains no balanced JSON object.
var ErrNoObject = errors.New("no JSON object found")

// ExtractObject returns the first balanced {...} region of s. Model
// responses wrap JSON in prose or code fences more often than not, so
// callers extract first and decode second. String literals are honored,
// a brace inside a quoted value does not affect nesting depth.
func ExtractObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoObject
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", ErrNoObject
}

// StripCodeFences removes markdown code fence markers from a model
// response and trims surrounding whitespace.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
