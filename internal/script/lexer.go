// internal/script/lexer.go
package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// scriptLexer tokenizes the dialect totally: every input byte lands in
// exactly one token (the final `Any` rule is a catch-all), so the token
// stream reassembles the file verbatim and unrecognized syntax can stay
// literal. Rule order matters; first match wins.
var scriptLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: `Comment`, Pattern: `//[^\n]*|#[^\n]*`},
		{Name: `String`, Pattern: `"(?:[^"\\\n]|\\.)*"`},
		{Name: `Number`, Pattern: `-?(?:0[xX][0-9a-fA-F]+|\d+\.\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?|\d+(?:[eE][+-]?\d+)?)`},
		{Name: `Ident`, Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: `Punct`, Pattern: `[(){}\[\]=,;]`},
		{Name: `Newline`, Pattern: `\n`},
		{Name: `Whitespace`, Pattern: `[ \t\r]+`},
		{Name: `Any`, Pattern: `.`},
	},
})

type tokenType int

const (
	tokComment tokenType = iota
	tokString
	tokNumber
	tokIdent
	tokPunct
	tokNewline
	tokSpace
	tokAny
)

var symbolTypes = func() map[lexer.TokenType]tokenType {
	symbols := scriptLexer.Symbols()
	return map[lexer.TokenType]tokenType{
		symbols["Comment"]:    tokComment,
		symbols["String"]:     tokString,
		symbols["Number"]:     tokNumber,
		symbols["Ident"]:      tokIdent,
		symbols["Punct"]:      tokPunct,
		symbols["Newline"]:    tokNewline,
		symbols["Whitespace"]: tokSpace,
		symbols["Any"]:        tokAny,
	}
}()

// token is the parser-facing view of one lexed token.
type token struct {
	typ  tokenType
	val  string
	off  int // byte offset of the token start
	line int // 1-based
}

func lexText(name, text string) ([]token, error) {
	lex, err := scriptLexer.LexString(name, text)
	if err != nil {
		return nil, err
	}

	var tokens []token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		tokens = append(tokens, token{
			typ:  symbolTypes[tok.Type],
			val:  tok.Value,
			off:  tok.Pos.Offset,
			line: tok.Pos.Line,
		})
	}
	return tokens, nil
}

func isLiteralToken(t token) bool {
	return t.typ == tokString || t.typ == tokNumber || t.typ == tokIdent
}
