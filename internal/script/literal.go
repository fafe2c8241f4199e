// internal/script/literal.go
package script

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// LiteralKind enumerates the typed forms a value literal can take.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
	LitIdent
)

func (k LiteralKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitNumber:
		return "number"
	case LitBool:
		return "bool"
	case LitIdent:
		return "ident"
	}
	return "unknown"
}

// Literal is one typed value together with its exact source spelling.
// Raw is what renders; the parsed fields exist for comparison and
// display only, so `10` and `10.0` compare equal but never reformat.
type Literal struct {
	Kind LiteralKind
	Raw  string
	Str  string
	Num  float64
	Bool bool
}

var identLike = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewString builds a double-quoted string literal.
func NewString(s string) Literal {
	return Literal{Kind: LitString, Raw: strconv.Quote(s), Str: s}
}

// NewNumber builds a numeric literal with a canonical decimal spelling.
func NewNumber(n float64) Literal {
	return Literal{Kind: LitNumber, Raw: formatNumber(n), Num: n}
}

// NewNumberRaw keeps an existing numeric spelling (trailing zeros, hex
// notation) intact while recording its parsed value.
func NewNumberRaw(raw string) Literal {
	return Literal{Kind: LitNumber, Raw: raw, Num: parseNumber(raw)}
}

// NewBool builds a bare true/false literal.
func NewBool(b bool) Literal {
	raw := "false"
	if b {
		raw = "true"
	}
	return Literal{Kind: LitBool, Raw: raw, Bool: b}
}

// NewIdent builds a bare identifier literal (enum constants and the like).
func NewIdent(name string) Literal {
	return Literal{Kind: LitIdent, Raw: name, Str: name}
}

// EqualValue reports semantic equality: numbers compare numerically so a
// respelled constant is not a change; strings compare by content,
// everything else by spelling.
func (l Literal) EqualValue(o Literal) bool {
	if l.Kind == LitNumber && o.Kind == LitNumber {
		return l.Num == o.Num
	}
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LitString:
		return l.Str == o.Str
	case LitBool:
		return l.Bool == o.Bool
	default:
		return l.Raw == o.Raw
	}
}

// Text returns the display form: unquoted content for strings, the raw
// spelling for everything else.
func (l Literal) Text() string {
	if l.Kind == LitString {
		return l.Str
	}
	return l.Raw
}

// MarshalText serializes the raw source spelling, which is what diff
// reports want to show.
func (l Literal) MarshalText() ([]byte, error) {
	return []byte(l.Raw), nil
}

// renderFor returns the spelling to splice over prev. A string literal
// whose content is a plain identifier adopts the bare spelling when it
// replaces a bare original, so edits keep the file's quoting shape.
func (l Literal) renderFor(prev Literal) string {
	if l.Kind == LitString && prev.Kind != LitString && identLike.MatchString(l.Str) {
		return l.Str
	}
	return l.Raw
}

func literalFromToken(t token) Literal {
	switch t.typ {
	case tokString:
		return Literal{Kind: LitString, Raw: t.val, Str: unquote(t.val)}
	case tokNumber:
		return NewNumberRaw(t.val)
	case tokIdent:
		switch t.val {
		case "true":
			return Literal{Kind: LitBool, Raw: t.val, Bool: true}
		case "false":
			return Literal{Kind: LitBool, Raw: t.val, Bool: false}
		}
		return Literal{Kind: LitIdent, Raw: t.val, Str: t.val}
	}
	return Literal{Kind: LitIdent, Raw: t.val, Str: t.val}
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func parseNumber(raw string) float64 {
	s, neg := raw, false
	if strings.HasPrefix(s, "-") {
		neg, s = true, s[1:]
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0
		}
		if neg {
			return -float64(v)
		}
		return float64(v)
	}
	f, _ := strconv.ParseFloat(raw, 64)
	return f
}

// unquote resolves a double-quoted source spelling. Game scripts use
// escapes Go does not know, so strconv.Unquote gets a loose fallback.
func unquote(raw string) string {
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`)
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	return strings.ReplaceAll(inner, `\\`, `\`)
}
