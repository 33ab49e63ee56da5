package reader

import "strconv"

// TokenType enumerates the lexical categories produced by Lex.
type TokenType int

const (
	TokenNumber TokenType = iota
	TokenSymbol
	TokenString
	TokenLeftBracket
	TokenRightBracket
)

func (tt TokenType) String() string {
	switch tt {
	case TokenNumber:
		return "number"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	case TokenLeftBracket:
		return "("
	case TokenRightBracket:
		return ")"
	default:
		return "unknown"
	}
}

// Position tracks a source location within the input text.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number (rune count)
}

// Token is a single lexical unit produced by the lexer. Text carries the
// payload of symbols and strings, Num the payload of numbers; bracket tokens
// carry no payload.
type Token struct {
	Type TokenType
	Text string
	Num  float64
	Pos  Position
}

// String renders the token the way it would appear in source text.
func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenSymbol:
		return t.Text
	case TokenString:
		return quoteString(t.Text)
	default:
		return t.Type.String()
	}
}
