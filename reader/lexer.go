package reader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lex scans source text left to right and returns its token sequence.
// Whitespace separates tokens and is never emitted. Lexing fails when the
// input ends inside a string literal or when a numeric run overflows
// float64; the returned error is a *LexError.
func Lex(src string) ([]Token, error) {
	lx := newLexer(src)
	var tokens []Token
	for {
		tok, err := lx.nextToken()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:    src,
		line:   1,
		column: 1,
	}
}

type runeState struct {
	pos    int
	line   int
	column int
}

func (lx *lexer) mark() runeState {
	return runeState{
		pos:    lx.pos,
		line:   lx.line,
		column: lx.column,
	}
}

func (lx *lexer) readRune() (rune, runeState, error) {
	if lx.pos >= len(lx.src) {
		return 0, lx.mark(), io.EOF
	}
	state := lx.mark()
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if r == utf8.RuneError && w == 1 {
		return 0, state, &LexError{
			Err: fmt.Errorf("invalid UTF-8 encoding at byte %d", lx.pos),
			Pos: positionFromState(state),
		}
	}
	lx.pos += w
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return r, state, nil
}

func (lx *lexer) unread(state runeState) {
	lx.pos = state.pos
	lx.line = state.line
	lx.column = state.column
}

// nextToken returns the next token, or io.EOF once the input is exhausted.
// Clause order is load-bearing: string, number, brackets, whitespace,
// symbol. A run that starts numeric but does not parse as a float falls
// through to the symbol clause, so bare "-" and "e" lex as symbols.
func (lx *lexer) nextToken() (Token, error) {
	for {
		r, start, err := lx.readRune()
		if err != nil {
			return Token{}, err
		}
		switch {
		case r == '"':
			return lx.scanString(start)
		case unicode.IsDigit(r) || r == '.' || r == 'e' || r == '-':
			return lx.scanNumber(r, start)
		case r == '(':
			return Token{Type: TokenLeftBracket, Pos: positionFromState(start)}, nil
		case r == ')':
			return Token{Type: TokenRightBracket, Pos: positionFromState(start)}, nil
		case unicode.IsSpace(r):
			continue
		default:
			var builder strings.Builder
			builder.WriteRune(r)
			return lx.finishSymbol(&builder, start)
		}
	}
}

// scanString consumes a double-quoted literal whose opening quote has
// already been read. Only `\"` and `\\` are meaningful escapes; any other
// rune after a backslash passes through as itself, intentionally.
func (lx *lexer) scanString(start runeState) (Token, error) {
	var builder strings.Builder
	for {
		r, _, err := lx.readRune()
		if err == io.EOF {
			return Token{}, &LexError{Err: ErrUnterminatedString, Pos: positionFromState(start)}
		}
		if err != nil {
			return Token{}, err
		}
		if r == '"' {
			break
		}
		if r == '\\' {
			esc, _, err := lx.readRune()
			if err == io.EOF {
				return Token{}, &LexError{Err: ErrUnterminatedString, Pos: positionFromState(start)}
			}
			if err != nil {
				return Token{}, err
			}
			builder.WriteRune(esc)
			continue
		}
		builder.WriteRune(r)
	}
	return Token{Type: TokenString, Text: builder.String(), Pos: positionFromState(start)}, nil
}

func isNumberRune(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == 'e' || r == '-'
}

func isSymbolRune(r rune) bool {
	return !unicode.IsSpace(r) && r != '(' && r != ')'
}

// scanNumber consumes the longest run drawn from {digit, '.', 'e', '-'} and
// parses it as a float. A run that is not float syntax (a lone "-", "1-2",
// "1.2.3") continues as the symbol it is a prefix of. A run that is float
// syntax but outside the float64 range is the one genuine number error.
func (lx *lexer) scanNumber(initial rune, start runeState) (Token, error) {
	var builder strings.Builder
	builder.WriteRune(initial)
	for {
		r, state, err := lx.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if !isNumberRune(r) {
			lx.unread(state)
			break
		}
		builder.WriteRune(r)
	}

	run := builder.String()
	num, err := strconv.ParseFloat(run, 64)
	if err == nil {
		return Token{Type: TokenNumber, Num: num, Pos: positionFromState(start)}, nil
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return Token{}, &LexError{
			Err: fmt.Errorf("%w: %q", ErrInvalidNumber, run),
			Pos: positionFromState(start),
		}
	}
	return lx.finishSymbol(&builder, start)
}

// finishSymbol extends builder with the remaining non-whitespace,
// non-bracket run and emits it as a symbol.
func (lx *lexer) finishSymbol(builder *strings.Builder, start runeState) (Token, error) {
	for {
		r, state, err := lx.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if !isSymbolRune(r) {
			lx.unread(state)
			break
		}
		builder.WriteRune(r)
	}
	return Token{Type: TokenSymbol, Text: builder.String(), Pos: positionFromState(start)}, nil
}

func positionFromState(state runeState) Position {
	return Position{
		Offset: state.pos,
		Line:   state.line,
		Column: state.column,
	}
}
