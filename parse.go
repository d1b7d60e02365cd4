package calc

// Expr   = Term { ('+' | '-') Term }
// Term   = Factor { ('*' | '/') Factor }
// Factor = '(' Expr ')' | num | '-' Factor

// parser holds the state of a single parse. It reads tokens through a single
// cursor with one token of lookahead and never backtracks.
type parser struct {
	toks  []Token
	pos   int
	depth int
	ctx   parsectx
}

// Parse parses tokens into an expression. The given options are applied in
// order. Every token must belong to the expression; leftover tokens after a
// complete expression are a *TrailingError.
func Parse(tokens []Token, opts ...ParseOption) (*Expr, error) {
	p := parser{toks: tokens}
	for _, opt := range opts {
		p.ctx = opt.parseOption(p.ctx)
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, &TrailingError{Tok: tok}
	}
	return &Expr{Root: n}, nil
}

// ParseString is a shortcut to tokenize and parse an expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks, opts...)
}

// peek returns the next token without consuming it. ok is false at the end
// of the tokens.
func (p *parser) peek() (tok Token, ok bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

// take consumes the next token. want describes what the caller expects, in
// case there are no more tokens.
func (p *parser) take(want string) (Token, error) {
	tok, ok := p.peek()
	if !ok {
		return Token{}, &ExpectError{Want: want}
	}
	p.pos++
	return tok, nil
}

// expr parses a sequence of terms joined by additive operators.
func (p *parser) expr() (*Node, error) {
	return p.tail(p.term, addop)
}

// term parses a sequence of factors joined by multiplicative operators.
func (p *parser) term() (*Node, error) {
	return p.tail(p.factor, mulop)
}

// tail parses operands with sub, joined by the operators that op recognizes,
// folding them to the left so that a-b-c is (a-b)-c.
func (p *parser) tail(sub func() (*Node, error), op func(TokenKind) Operator) (*Node, error) {
	n, err := sub()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return n, nil
		}
		o := op(tok.Kind)
		if o == 0 {
			return n, nil
		}
		p.pos++
		rhs, err := sub()
		if err != nil {
			return nil, err
		}
		n = Binary(o, n, rhs)
	}
}

// factor parses a number, a parenthesized expression, or a negated factor.
func (p *parser) factor() (*Node, error) {
	tok, err := p.take("number")
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenNumber:
		return Num(tok.Num), nil
	case TokenLeftParen:
		if err := p.descend(tok); err != nil {
			return nil, err
		}
		defer p.ascend()
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		end, err := p.take(")")
		if err != nil {
			return nil, err
		}
		if end.Kind != TokenRightParen {
			return nil, &ExpectError{Want: ")", Got: &end}
		}
		return Paren(n), nil
	case TokenMinus:
		if err := p.descend(tok); err != nil {
			return nil, err
		}
		defer p.ascend()
		n, err := p.factor()
		if err != nil {
			return nil, err
		}
		return Neg(n), nil
	default:
		return nil, &ExpectError{Want: "number", Got: &tok}
	}
}

// descend enters one nesting level opened by tok.
func (p *parser) descend(tok Token) error {
	p.depth++
	if p.ctx.maxdepth > 0 && p.depth > p.ctx.maxdepth {
		return &DepthError{Max: p.ctx.maxdepth, Col: tok.Pos}
	}
	return nil
}

func (p *parser) ascend() {
	p.depth--
}

// addop gets the additive operator for a token kind, or 0 if there is none.
func addop(k TokenKind) Operator {
	switch k {
	case TokenPlus:
		return OpAdd
	case TokenMinus:
		return OpSub
	default:
		return 0
	}
}

// mulop gets the multiplicative operator for a token kind, or 0 if there is
// none.
func mulop(k TokenKind) Operator {
	switch k {
	case TokenTimes:
		return OpMul
	case TokenDivision:
		return OpDiv
	default:
		return 0
	}
}
