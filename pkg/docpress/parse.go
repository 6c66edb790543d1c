package docpress

// parser consumes a token stream into a directive node tree. Block tags
// match their nearest unclosed opener; crossed or unterminated blocks are
// syntax errors, reported with the source offset of the offending token.
type parser struct {
	tokens []Token
	pos    int
}

// Parse parses template text into its directive nodes. The returned error,
// if any, is a *TemplateSyntaxError.
func Parse(input string) ([]Node, error) {
	p := &parser{tokens: Tokenize(input)}
	return p.parseBody(nil)
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenText, Pos: -1}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// parseBody parses nodes until one of the stop token types (or end of
// input, when stop is nil). The stop token is left unconsumed.
func (p *parser) parseBody(stop []TokenType) ([]Node, error) {
	var nodes []Node

	for p.pos < len(p.tokens) {
		tok := p.current()

		for _, s := range stop {
			if tok.Type == s {
				return nodes, nil
			}
		}

		switch tok.Type {
		case TokenText:
			if tok.Value != "" {
				nodes = append(nodes, &TextNode{Content: tok.Value})
			}
			p.advance()

		case TokenVariable:
			nodes = append(nodes, &InterpolationNode{Path: tok.Value})
			p.advance()

		case TokenRawVariable:
			if tok.Value == "" {
				return nil, NewTemplateSyntaxError("raw interpolation requires a path", tok.Raw, tok.Pos)
			}
			nodes = append(nodes, &InterpolationNode{Path: tok.Value, Raw: true})
			p.advance()

		case TokenTranslate:
			if tok.Value == "" {
				return nil, NewTemplateSyntaxError("translation directive requires a quoted key", tok.Raw, tok.Pos)
			}
			nodes = append(nodes, &TranslateNode{Key: tok.Value})
			p.advance()

		case TokenIf:
			node, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		case TokenEach:
			node, err := p.parseEach()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)

		default:
			// else, /if, /each outside their block.
			return nil, NewTemplateSyntaxError("unexpected "+tok.Type.String()+" tag", tok.Raw, tok.Pos)
		}
	}

	if stop != nil {
		return nil, NewTemplateSyntaxError("unterminated block", "", p.lastPos())
	}
	return nodes, nil
}

func (p *parser) parseIf() (*IfNode, error) {
	open := p.current()
	if open.Value == "" {
		return nil, NewTemplateSyntaxError("#if requires a path", open.Raw, open.Pos)
	}
	p.advance()

	node := &IfNode{Path: open.Value}

	thenBody, err := p.parseBody([]TokenType{TokenElse, TokenEndIf})
	if err != nil {
		return nil, p.reopen(err, open)
	}
	node.Then = thenBody

	if p.current().Type == TokenElse {
		p.advance()
		elseBody, err := p.parseBody([]TokenType{TokenEndIf})
		if err != nil {
			return nil, p.reopen(err, open)
		}
		node.Else = elseBody
	}

	if p.current().Type != TokenEndIf {
		return nil, NewTemplateSyntaxError("#if block not closed with /if", open.Raw, open.Pos)
	}
	p.advance()

	return node, nil
}

func (p *parser) parseEach() (*EachNode, error) {
	open := p.current()
	if open.Value == "" {
		return nil, NewTemplateSyntaxError("#each requires a path", open.Raw, open.Pos)
	}
	p.advance()

	node := &EachNode{Path: open.Value}

	body, err := p.parseBody([]TokenType{TokenEndEach})
	if err != nil {
		return nil, p.reopen(err, open)
	}
	node.Body = body

	if p.current().Type != TokenEndEach {
		return nil, NewTemplateSyntaxError("#each block not closed with /each", open.Raw, open.Pos)
	}
	p.advance()

	return node, nil
}

// reopen pins an unterminated-block error to the opening tag, which is the
// more useful place to point than end of input.
func (p *parser) reopen(err error, open Token) error {
	if syntaxErr, ok := err.(*TemplateSyntaxError); ok && syntaxErr.Message == "unterminated block" {
		return NewTemplateSyntaxError("unterminated "+open.Type.String()+" block", open.Raw, open.Pos)
	}
	return err
}

func (p *parser) lastPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].Pos
}
