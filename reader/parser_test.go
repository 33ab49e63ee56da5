package reader

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, src string) []Expr {
	t.Helper()
	forms, err := ReadString(src)
	require.NoError(t, err)
	return forms
}

func TestParseAtoms(t *testing.T) {
	forms := mustRead(t, `42 foo "bar"`)
	require.Len(t, forms, 3)

	num, ok := forms[0].(*NumberExpr)
	require.True(t, ok, "expected NumberExpr, got %T", forms[0])
	assert.Equal(t, 42.0, num.Value)

	sym, ok := forms[1].(*SymbolExpr)
	require.True(t, ok, "expected SymbolExpr, got %T", forms[1])
	assert.Equal(t, "foo", sym.Name)

	str, ok := forms[2].(*StringExpr)
	require.True(t, ok, "expected StringExpr, got %T", forms[2])
	assert.Equal(t, "bar", str.Value)
}

func TestParseNestedList(t *testing.T) {
	forms := mustRead(t, "(a (b) c)")
	require.Len(t, forms, 1)

	list, ok := forms[0].(*ListExpr)
	require.True(t, ok, "expected ListExpr, got %T", forms[0])
	require.Len(t, list.Elements, 3)

	assert.Equal(t, "a", list.Elements[0].(*SymbolExpr).Name)
	inner, ok := list.Elements[1].(*ListExpr)
	require.True(t, ok, "expected inner ListExpr, got %T", list.Elements[1])
	require.Len(t, inner.Elements, 1)
	assert.Equal(t, "b", inner.Elements[0].(*SymbolExpr).Name)
	assert.Equal(t, "c", list.Elements[2].(*SymbolExpr).Name)
}

func TestParseEmptyList(t *testing.T) {
	forms := mustRead(t, "()")
	require.Len(t, forms, 1)
	list, ok := forms[0].(*ListExpr)
	require.True(t, ok, "expected ListExpr, got %T", forms[0])
	assert.Empty(t, list.Elements)
}

func TestParseUnmatchedOpen(t *testing.T) {
	_, err := ReadString("(a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnmatchedOpen)
	assert.True(t, IsIncomplete(err))
}

func TestParseUnmatchedClose(t *testing.T) {
	_, err := ReadString("a)")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnmatchedClose)
	assert.False(t, IsIncomplete(err))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, Position{Offset: 1, Line: 1, Column: 2}, perr.Pos)
}

func TestParseUnmatchedOpenReportsInnermost(t *testing.T) {
	_, err := ReadString("(a (b")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Pos.Offset)
}

func TestParseListPositionIsOpenBracket(t *testing.T) {
	forms := mustRead(t, "  (a)")
	require.Len(t, forms, 1)
	assert.Equal(t, Position{Offset: 2, Line: 1, Column: 3}, forms[0].Pos())
}

func TestParseTopLevelForms(t *testing.T) {
	forms := mustRead(t, "(define x 1)\n(define y 2)\nx")
	require.Len(t, forms, 3)
	assert.Equal(t, "(define x 1)", forms[0].String())
	assert.Equal(t, "(define y 2)", forms[1].String())
	assert.Equal(t, "x", forms[2].String())
}

func TestParseWhitespaceIdempotence(t *testing.T) {
	terse := mustRead(t, `(let ((x 1)) (body x "s"))`)
	sprawling := mustRead(t, "  ( let\t( ( x  1 ) )\n\n ( body   x \"s\" )  )  ")
	require.Len(t, terse, 1)
	require.Len(t, sprawling, 1)
	assert.Equal(t, terse[0].String(), sprawling[0].String())
}

// For balanced input, leaves plus list nodes must equal atom tokens plus
// matched bracket pairs.
func TestParseNodeCount(t *testing.T) {
	src := `(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))`
	tokens := mustLex(t, src)

	atoms, pairs := 0, 0
	for _, tok := range tokens {
		switch tok.Type {
		case TokenLeftBracket:
			pairs++
		case TokenRightBracket:
		default:
			atoms++
		}
	}

	forms, err := Parse(tokens)
	require.NoError(t, err)
	total := 0
	for _, form := range forms {
		total += countNodes(form)
	}
	assert.Equal(t, atoms+pairs, total)
}

func countNodes(e Expr) int {
	list, ok := e.(*ListExpr)
	if !ok {
		return 1
	}
	total := 1
	for _, elem := range list.Elements {
		total += countNodes(elem)
	}
	return total
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 10000
	src := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)

	forms := mustRead(t, src)
	require.Len(t, forms, 1)

	node := forms[0]
	for i := 0; i < depth; i++ {
		list, ok := node.(*ListExpr)
		require.True(t, ok, "expected ListExpr at depth %d, got %T", i, node)
		require.Len(t, list.Elements, 1)
		node = list.Elements[0]
	}
	assert.Equal(t, "x", node.(*SymbolExpr).Name)
}

func TestParseEmptyTokenSequence(t *testing.T) {
	forms, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, forms)
}

func TestParseProgram(t *testing.T) {
	src := `
	(define (fizzable num) (= 0 (modulo num 3)))
	(define (buzzable num) (= 0 (modulo num 5)))

	(define (fizzbuzz num)
	  (let ((isFizzable (fizzable num))
	        (isBuzzable (buzzable num)))
	    (cond
	      ((and isFizzable isBuzzable) "fizzbuzz")
	      (isFizzable "fizz")
	      (isBuzzable "buzz")
	      (#t (number->string num)))))

	(fizzbuzzrange 1 100)
	`
	forms := mustRead(t, src)
	require.Len(t, forms, 4)
	for i, form := range forms {
		_, ok := form.(*ListExpr)
		assert.True(t, ok, "form %d: expected ListExpr, got %T", i, form)
	}

	call := forms[3].(*ListExpr)
	require.Len(t, call.Elements, 3)
	assert.Equal(t, "fizzbuzzrange", call.Elements[0].(*SymbolExpr).Name)
	assert.Equal(t, 1.0, call.Elements[1].(*NumberExpr).Value)
	assert.Equal(t, 100.0, call.Elements[2].(*NumberExpr).Value)

	fizzbuzz := forms[2].(*ListExpr)
	body := fizzbuzz.Elements[2].(*ListExpr)
	assert.Equal(t, "let", body.Elements[0].(*SymbolExpr).Name)
}

func TestParseErrorsAreFirstErrorOnly(t *testing.T) {
	// The dangling close comes before the unclosed open and wins.
	_, err := ReadString(") (")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnmatchedClose)
}

func ExampleParse() {
	tokens, _ := Lex(`(repeat "scheme" (+ 1 2))`)
	forms, _ := Parse(tokens)
	fmt.Println(forms[0])
	// Output: (repeat "scheme" (+ 1 2))
}
