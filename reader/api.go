package reader

import "io"

// ReadString lexes and parses source text, returning one expression per
// top-level form.
func ReadString(src string) ([]Expr, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ReadAll consumes source text from r and behaves like ReadString.
func ReadAll(r io.Reader) ([]Expr, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadString(string(data))
}
