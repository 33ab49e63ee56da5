package reader

import (
	"errors"
	"fmt"
)

// Lexing failures.
var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrInvalidNumber      = errors.New("invalid number literal")
)

// Parsing failures.
var (
	ErrUnmatchedClose = errors.New("unexpected ) without matching (")
	ErrUnmatchedOpen  = errors.New("unclosed ( at end of input")
)

// LexError reports a lexing failure and the position of the offending text.
type LexError struct {
	Err error
	Pos Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%v at line %d column %d", e.Err, e.Pos.Line, e.Pos.Column)
}

func (e *LexError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError reports a structural failure and the position of the token that
// revealed it. For ErrUnmatchedOpen the position is the innermost bracket
// left unclosed.
type ParseError struct {
	Err error
	Pos Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at line %d column %d", e.Err, e.Pos.Line, e.Pos.Column)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsIncomplete reports whether err means the input ended before a form was
// complete, so that appending more text could still produce a valid parse.
// Callers reading interactively use this to keep buffering lines instead of
// reporting an error.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrUnterminatedString) || errors.Is(err, ErrUnmatchedOpen)
}
