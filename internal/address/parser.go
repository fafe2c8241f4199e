// internal/address/parser.go
package address

import (
	"fmt"
	"regexp"
	"strconv"
)

// bareName matches segment names that may appear without quoting.
var bareName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Parse creates an Address from its canonical string representation.
// The file part is everything before the first ':'; it is optional so
// that within-file contexts can parse bare paths.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("address cannot be empty")
	}

	file, rest := splitFile(raw)
	path, err := parseSegments(rest)
	if err != nil {
		return Address{}, err
	}
	return Address{File: file, Path: path}, nil
}

// splitFile separates the optional file prefix from the path. A quote
// before the first ':' means the colon belongs to a quoted segment name,
// not the file separator.
func splitFile(raw string) (file, path string) {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '"':
			return "", raw
		case ':':
			return raw[:i], raw[i+1:]
		}
	}
	return "", raw
}

func parseSegments(s string) ([]Segment, error) {
	if s == "" {
		return nil, fmt.Errorf("address path cannot be empty")
	}

	var path []Segment
	i := 0
	for i < len(s) {
		var name string
		if s[i] == '"' {
			end := quotedEnd(s, i)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quoted segment name in %q", s)
			}
			unquoted, err := strconv.Unquote(s[i:end])
			if err != nil {
				return nil, fmt.Errorf("invalid quoted segment name %q: %w", s[i:end], err)
			}
			name = unquoted
			i = end
		} else {
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			name = s[i:j]
			if !bareName.MatchString(name) {
				return nil, fmt.Errorf("invalid path segment name: %q", name)
			}
			i = j
		}
		if name == "" {
			return nil, fmt.Errorf("address path contains empty segment name")
		}

		index := 0
		if i < len(s) && s[i] == '[' {
			j := i + 1
			for j < len(s) && s[j] != ']' {
				j++
			}
			if j == len(s) {
				return nil, fmt.Errorf("unterminated occurrence index after segment %q", name)
			}
			n, err := strconv.Atoi(s[i+1 : j])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid occurrence index %q after segment %q", s[i+1:j], name)
			}
			index = n
			i = j + 1
		}

		path = append(path, Segment{Name: name, Index: index})

		if i < len(s) {
			if s[i] != '.' {
				return nil, fmt.Errorf("unexpected character %q in address path %q", s[i], s)
			}
			i++
			if i == len(s) {
				return nil, fmt.Errorf("address path ends with a separator")
			}
		}
	}

	return path, nil
}

// quotedEnd returns the index just past the closing quote of the quoted
// string starting at s[start], or -1 when it never closes.
func quotedEnd(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}
