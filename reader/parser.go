package reader

import "fmt"

// Parse consumes a token sequence and builds one expression tree per
// top-level form. It fails with a *ParseError when a closing bracket has no
// matching open, or when the tokens end while a bracket is still open.
func Parse(tokens []Token) ([]Expr, error) {
	p := &parser{tokens: tokens}
	var forms []Expr
	for !p.atEnd() {
		form, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser) parseExpr() (Expr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenNumber:
		return &NumberExpr{Value: tok.Num, Posn: tok.Pos}, nil
	case TokenSymbol:
		return &SymbolExpr{Name: tok.Text, Posn: tok.Pos}, nil
	case TokenString:
		return &StringExpr{Value: tok.Text, Posn: tok.Pos}, nil
	case TokenLeftBracket:
		return p.parseList(tok)
	case TokenRightBracket:
		return nil, &ParseError{Err: ErrUnmatchedClose, Pos: tok.Pos}
	default:
		return nil, &ParseError{Err: fmt.Errorf("unexpected %s token", tok.Type), Pos: tok.Pos}
	}
}

// parseList collects expressions until the bracket opened at open is
// closed. Recursion depth equals bracket nesting depth.
func (p *parser) parseList(open Token) (Expr, error) {
	var elems []Expr
	for {
		if p.atEnd() {
			return nil, &ParseError{Err: ErrUnmatchedOpen, Pos: open.Pos}
		}
		if p.tokens[p.pos].Type == TokenRightBracket {
			p.pos++
			return &ListExpr{Elements: elems, Posn: open.Pos}, nil
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}
