// internal/script/entity.go
package script

import (
	"fmt"
	"strings"

	"github.com/PakBeast/PakBeast/internal/address"
)

// Kind discriminates the closed set of recognized entity shapes.
type Kind int

const (
	KindParam Kind = iota
	KindProperty
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindParam:
		return "param"
	case KindProperty:
		return "property"
	case KindBlock:
		return "block"
	}
	return "unknown"
}

// MarshalText serializes the kind name, so reports carry "param" rather
// than an enum ordinal.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// span is a half-open byte range relative to an entity's raw text.
type span struct{ from, to int }

func (s span) zero() bool { return s.from == 0 && s.to == 0 }

// segment is one skeleton element: a literal run or an entity placeholder.
type segment struct {
	text string
	ent  *Entity
}

// Entity is one recognized construct inside a SourceFile.
//
// For params, Name is the textual form of the first argument and the
// values are the remaining arguments. For blocks, Name is the header
// identifier and DisplayName carries the first quoted header argument
// (how the game names instances, e.g. Item("Sniper")). Blocks have no
// values; their children hold their own entities.
type Entity struct {
	Kind        Kind
	Name        string
	DisplayName string
	Addr        address.Address
	Line        int

	raw        string
	nameSpan   span // params: the name argument inside raw
	argsSpan   span // call forms: the region between the parentheses
	listSpan   span // assignments: the bracketed list, brackets included
	callStyle  bool // property spelled `key(args);` instead of `key = value`
	origValues []Literal
	valueSpans []span

	blockHead string
	blockTail string
	children  []segment

	values  []Literal // nil until SetValues; current values afterwards
	deleted bool
}

// Raw returns the entity's exact original source text.
func (e *Entity) Raw() string { return e.raw }

// Deleted reports whether the entity (or an enclosing block) was deleted.
func (e *Entity) Deleted() bool { return e.deleted }

// Values returns the current values: the parse-time literals until a
// SetValues replaces them.
func (e *Entity) Values() []Literal {
	if e.values != nil {
		return e.values
	}
	return e.origValues
}

// ValueText joins the current values in display form.
func (e *Entity) ValueText() string {
	vals := e.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.Text()
	}
	return strings.Join(parts, ", ")
}

func (e *Entity) setValues(values []Literal) error {
	if e.Kind == KindBlock {
		return fmt.Errorf("%s is a block and carries no values: %w", e.Addr, ErrTypeMismatch)
	}
	if e.Kind == KindProperty && !e.callStyle && e.listSpan.zero() && len(values) != 1 {
		return fmt.Errorf("%s holds a single value, not %d: %w", e.Addr, len(values), ErrTypeMismatch)
	}
	// Never store nil: an empty-but-present slice marks "edited to hold
	// no values", while nil means untouched.
	vals := make([]Literal, len(values))
	copy(vals, values)
	e.values = vals
	return nil
}

func (e *Entity) markDeleted() {
	e.deleted = true
	for _, seg := range e.children {
		if seg.ent != nil {
			seg.ent.markDeleted()
		}
	}
}

// currentText renders the entity as it stands: raw text when untouched,
// a value splice after SetValues, nothing once deleted.
func (e *Entity) currentText() string {
	if e.deleted {
		return ""
	}
	if e.Kind == KindBlock {
		var sb strings.Builder
		sb.WriteString(e.blockHead)
		for _, seg := range e.children {
			if seg.ent != nil {
				sb.WriteString(seg.ent.currentText())
			} else {
				sb.WriteString(seg.text)
			}
		}
		sb.WriteString(e.blockTail)
		return sb.String()
	}
	if e.values == nil {
		return e.raw
	}
	if len(e.values) == len(e.valueSpans) {
		return e.spliceValues()
	}
	return e.renderResized()
}

// spliceValues swaps each value span for its replacement, byte-preserving
// every separator and space between them.
func (e *Entity) spliceValues() string {
	var sb strings.Builder
	prev := 0
	for i, sp := range e.valueSpans {
		sb.WriteString(e.raw[prev:sp.from])
		sb.WriteString(e.values[i].renderFor(e.origValues[i]))
		prev = sp.to
	}
	sb.WriteString(e.raw[prev:])
	return sb.String()
}

// renderResized rebuilds only the argument/list region when the value
// count changed; the text around it stays as written.
func (e *Entity) renderResized() string {
	parts := make([]string, len(e.values))
	for i, v := range e.values {
		parts[i] = v.Raw
	}
	joined := strings.Join(parts, ", ")

	switch {
	case e.Kind == KindParam:
		args := e.raw[e.nameSpan.from:e.nameSpan.to]
		if joined != "" {
			args += ", " + joined
		}
		return e.raw[:e.argsSpan.from] + args + e.raw[e.argsSpan.to:]
	case e.callStyle:
		return e.raw[:e.argsSpan.from] + joined + e.raw[e.argsSpan.to:]
	default:
		return e.raw[:e.listSpan.from] + "[" + joined + "]" + e.raw[e.listSpan.to:]
	}
}
