// internal/script/parser.go
package script

import (
	"github.com/PakBeast/PakBeast/internal/address"
	"github.com/PakBeast/PakBeast/internal/textutil"
)

// Parse interprets data as dialect text and builds the editable model.
// The only failure mode is *DecodeError: anything that lexes runs
// through recognition, and whatever recognition cannot place survives
// as literal spans.
func Parse(name string, data []byte) (*SourceFile, error) {
	if !textutil.IsText(data) {
		return nil, &DecodeError{Name: name, Reason: "binary payload"}
	}
	text := string(data)
	tokens, err := lexText(name, text)
	if err != nil {
		return nil, &DecodeError{Name: name, Reason: err.Error()}
	}

	p := &parser{text: text, toks: tokens}
	segments, _ := p.parseBody(false)

	sf := &SourceFile{
		Name:     name,
		text:     text,
		segments: segments,
		index:    make(map[string]*Entity),
	}
	sf.assign(address.Address{File: name}, segments)
	return sf, nil
}

type parser struct {
	text string
	toks []token
	pos  int
}

// parseBody scans tokens into skeleton segments until EOF, or until the
// closing brace of the enclosing block when inBlock is set. Bare braces
// in unrecognized text are depth-tracked so a stray `}` inside literal
// content is not mistaken for the block closer.
func (p *parser) parseBody(inBlock bool) ([]segment, int) {
	var segs []segment
	litFrom := p.offAt(p.pos)
	depth := 0

	flush := func(to int) {
		if to > litFrom {
			segs = append(segs, segment{text: p.text[litFrom:to]})
		}
	}

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch {
		case t.typ == tokPunct && t.val == "}":
			if inBlock && depth == 0 {
				flush(t.off)
				return segs, p.pos
			}
			if depth > 0 {
				depth--
			}
			p.pos++
		case t.typ == tokPunct && t.val == "{":
			depth++
			p.pos++
		case t.typ == tokIdent:
			if ent, next, ok := p.tryEntity(); ok {
				flush(t.off)
				segs = append(segs, segment{ent: ent})
				p.pos = next
				litFrom = p.offAt(next)
				continue
			}
			p.pos++
		default:
			p.pos++
		}
	}

	flush(len(p.text))
	return segs, -1
}

// tryEntity attempts recognition at the current identifier token.
// Attempts never move p.pos; only a block body parse does, and that is
// restored when the block never closes.
func (p *parser) tryEntity() (*Entity, int, bool) {
	if ent, next, ok := p.tryCall(); ok {
		return ent, next, true
	}
	if ent, next, ok := p.tryAssign(); ok {
		return ent, next, true
	}
	if ent, next, ok := p.tryBlock(); ok {
		return ent, next, true
	}
	return nil, 0, false
}

// tryCall recognizes `ident(args...)` forms: Param entities (terminator
// optional), call-style properties (semicolon required), and blocks
// with header arguments.
func (p *parser) tryCall() (*Entity, int, bool) {
	start := p.pos
	identTok := p.toks[start]

	open := p.skipSpaces(start + 1)
	if !p.isPunct(open, "(") {
		return nil, 0, false
	}
	args, closeIdx, ok := p.scanSeq(open+1, ")")
	if !ok {
		return nil, 0, false
	}

	// Header arguments plus an opening brace make this a block.
	if brace := p.skipBlank(closeIdx + 1); p.isPunct(brace, "{") {
		return p.finishBlock(start, args, brace)
	}

	isParam := identTok.val == "Param"
	end := closeIdx + 1
	switch semi := p.skipSpaces(end); {
	case p.isPunct(semi, ";"):
		end = semi + 1
	case isParam:
		// Param calls stand alone without a terminator.
	default:
		return nil, 0, false
	}

	if isParam {
		if len(args) == 0 {
			return nil, 0, false
		}
		ent := p.newCallEntity(KindParam, start, open, closeIdx, end, args[1:])
		ent.Name = args[0].lit.Text()
		ent.nameSpan = relSpan(identTok.off, args[0].tok)
		return ent, end, true
	}

	ent := p.newCallEntity(KindProperty, start, open, closeIdx, end, args)
	ent.Name = identTok.val
	ent.callStyle = true
	return ent, end, true
}

// tryAssign recognizes `key = value` on one logical line, the value a
// single literal or a bracketed list.
func (p *parser) tryAssign() (*Entity, int, bool) {
	start := p.pos
	identTok := p.toks[start]

	eq := p.skipSpaces(start + 1)
	if !p.isPunct(eq, "=") {
		return nil, 0, false
	}
	vi := p.skipSpaces(eq + 1)
	if vi >= len(p.toks) {
		return nil, 0, false
	}

	rel := identTok.off
	ent := &Entity{Kind: KindProperty, Name: identTok.val, Line: identTok.line}

	var end int
	switch v := p.toks[vi]; {
	case v.typ == tokPunct && v.val == "[":
		elems, closeIdx, ok := p.scanSeq(vi+1, "]")
		if !ok {
			return nil, 0, false
		}
		end = closeIdx + 1
		ent.listSpan = span{v.off - rel, p.toks[closeIdx].off + 1 - rel}
		for _, el := range elems {
			ent.origValues = append(ent.origValues, el.lit)
			ent.valueSpans = append(ent.valueSpans, relSpan(rel, el.tok))
		}
	case isLiteralToken(v):
		// An identifier value directly followed by `(` is a call
		// expression the dialect does not model; leave it literal.
		if v.typ == tokIdent && p.isPunct(p.skipSpaces(vi+1), "(") {
			return nil, 0, false
		}
		end = vi + 1
		ent.origValues = []Literal{literalFromToken(v)}
		ent.valueSpans = []span{relSpan(rel, v)}
	default:
		return nil, 0, false
	}

	if semi := p.skipSpaces(end); p.isPunct(semi, ";") {
		end = semi + 1
	}
	ent.raw = p.text[rel:p.offAt(end)]
	return ent, end, true
}

// tryBlock recognizes a bare `ident { ... }` header.
func (p *parser) tryBlock() (*Entity, int, bool) {
	start := p.pos
	brace := p.skipBlank(start + 1)
	if !p.isPunct(brace, "{") {
		return nil, 0, false
	}
	return p.finishBlock(start, nil, brace)
}

// finishBlock parses the body following the opening brace at token index
// brace. A body that never closes degrades: the attempt is abandoned and
// the header re-scans as literal content, its children attaching to the
// enclosing level.
func (p *parser) finishBlock(start int, args []argInfo, brace int) (*Entity, int, bool) {
	identTok := p.toks[start]
	saved := p.pos

	p.pos = brace + 1
	children, closeIdx := p.parseBody(true)
	if closeIdx < 0 {
		p.pos = saved
		return nil, 0, false
	}
	closeTok := p.toks[closeIdx]

	ent := &Entity{
		Kind:      KindBlock,
		Name:      identTok.val,
		Line:      identTok.line,
		raw:       p.text[identTok.off : closeTok.off+1],
		blockHead: p.text[identTok.off : p.toks[brace].off+1],
		blockTail: p.text[closeTok.off : closeTok.off+1],
		children:  children,
	}
	for _, a := range args {
		if a.lit.Kind == LitString {
			ent.DisplayName = a.lit.Str
			break
		}
		if ent.DisplayName == "" && a.lit.Kind == LitIdent {
			ent.DisplayName = a.lit.Str
		}
	}
	return ent, closeIdx + 1, true
}

type argInfo struct {
	tok token
	lit Literal
}

// scanSeq reads comma-separated literals up to the closing punct.
// Anything unexpected (comments, nesting, a missing comma) abandons
// the candidate.
func (p *parser) scanSeq(i int, closer string) ([]argInfo, int, bool) {
	var args []argInfo
	expectValue := true
	for i < len(p.toks) {
		t := p.toks[i]
		switch {
		case t.typ == tokSpace || t.typ == tokNewline:
			i++
		case t.typ == tokPunct && t.val == closer:
			if expectValue && len(args) > 0 {
				return nil, 0, false
			}
			return args, i, true
		case expectValue && isLiteralToken(t):
			args = append(args, argInfo{tok: t, lit: literalFromToken(t)})
			expectValue = false
			i++
		case !expectValue && t.typ == tokPunct && t.val == ",":
			expectValue = true
			i++
		default:
			return nil, 0, false
		}
	}
	return nil, 0, false
}

func (p *parser) newCallEntity(kind Kind, start, open, closeIdx, end int, values []argInfo) *Entity {
	identTok := p.toks[start]
	rel := identTok.off
	ent := &Entity{
		Kind: kind,
		Line: identTok.line,
		raw:  p.text[rel:p.offAt(end)],
	}
	ent.argsSpan = span{p.toks[open].off + 1 - rel, p.toks[closeIdx].off - rel}
	for _, a := range values {
		ent.origValues = append(ent.origValues, a.lit)
		ent.valueSpans = append(ent.valueSpans, relSpan(rel, a.tok))
	}
	return ent
}

func relSpan(rel int, t token) span {
	return span{t.off - rel, t.off + len(t.val) - rel}
}

func (p *parser) offAt(i int) int {
	if i >= len(p.toks) {
		return len(p.text)
	}
	return p.toks[i].off
}

func (p *parser) isPunct(i int, val string) bool {
	return i < len(p.toks) && p.toks[i].typ == tokPunct && p.toks[i].val == val
}

// skipSpaces advances over same-line whitespace only.
func (p *parser) skipSpaces(i int) int {
	for i < len(p.toks) && p.toks[i].typ == tokSpace {
		i++
	}
	return i
}

// skipBlank advances over whitespace and newlines; block headers may put
// the brace on a following line.
func (p *parser) skipBlank(i int) int {
	for i < len(p.toks) && (p.toks[i].typ == tokSpace || p.toks[i].typ == tokNewline) {
		i++
	}
	return i
}
