package reader

import (
	"strconv"
	"strings"
)

// Expr is a node of the expression tree produced by Parse: an atom or a
// list. The tree's shape mirrors bracket nesting in the source exactly.
type Expr interface {
	// Pos returns the source position of the expression's first character.
	Pos() Position
	// String renders the expression as source-shaped text.
	String() string

	exprNode()
}

// NumberExpr is a floating-point literal.
type NumberExpr struct {
	Value float64
	Posn  Position
}

func (e *NumberExpr) Pos() Position  { return e.Posn }
func (e *NumberExpr) String() string { return strconv.FormatFloat(e.Value, 'g', -1, 64) }
func (*NumberExpr) exprNode()        {}

// SymbolExpr is an opaque identifier.
type SymbolExpr struct {
	Name string
	Posn Position
}

func (e *SymbolExpr) Pos() Position  { return e.Posn }
func (e *SymbolExpr) String() string { return e.Name }
func (*SymbolExpr) exprNode()        {}

// StringExpr is a double-quoted string literal, stored unquoted.
type StringExpr struct {
	Value string
	Posn  Position
}

func (e *StringExpr) Pos() Position  { return e.Posn }
func (e *StringExpr) String() string { return quoteString(e.Value) }
func (*StringExpr) exprNode()        {}

// ListExpr is a parenthesized sequence of expressions. It owns its children
// exclusively; Elements holds them in source order. Its position is that of
// the opening bracket.
type ListExpr struct {
	Elements []Expr
	Posn     Position
}

func (e *ListExpr) Pos() Position { return e.Posn }

func (e *ListExpr) String() string {
	var builder strings.Builder
	builder.WriteByte('(')
	for i, elem := range e.Elements {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(elem.String())
	}
	builder.WriteByte(')')
	return builder.String()
}

func (*ListExpr) exprNode() {}

// quoteString renders s as a double-quoted literal, escaping only the two
// characters the lexer treats as escapable.
func quoteString(s string) string {
	var builder strings.Builder
	builder.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	builder.WriteByte('"')
	return builder.String()
}
