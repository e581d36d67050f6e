package expression

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/exprcalc/exprcalc/internal/types"
	"github.com/k0kubun/pp"
)

// DefaultMaxDepth bounds expression nesting in both the parser and the
// evaluator unless a caller configures its own limit.
const DefaultMaxDepth = 64

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("EXPRCALC_EXPRESSION_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

type parser struct {
	source   string
	tokens   []token
	index    int
	depth    int
	maxDepth int
	debug    bool
}

func ParseExpr(source string) (*Expr, error) {
	p := &parser{source: source, maxDepth: DefaultMaxDepth, debug: parserDebugLog}
	return p.parse()
}

func ParseExprMaxDepth(source string, maxDepth int) (*Expr, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{source: source, maxDepth: maxDepth, debug: parserDebugLog}
	return p.parse()
}

func ParseExprWithDebugOutput(source string) (*Expr, error) {
	p := &parser{source: source, maxDepth: DefaultMaxDepth, debug: true}
	return p.parse()
}

func (p *parser) parse() (*Expr, error) {
	tokens, err := newLexer(p.source).scan()
	if err != nil {
		return nil, err
	}

	// A fully wrapped input sheds its outer parentheses before descent.
	// The strip is shallow and applied exactly once; anything else
	// descends as-is and unbalanced brackets surface from the factor
	// rule instead.
	if len(tokens) != 0 && tokens[0].kind == lParenToken && tokens[len(tokens)-1].kind == rParenToken {
		tokens = tokens[1 : len(tokens)-1]
	}
	if len(tokens) == 0 {
		return nil, types.NewParseError("empty expression is not allowed")
	}

	p.tokens = tokens
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.index != len(p.tokens) {
		return nil, p.createInvalidTokenError(p.tokens[p.index])
	}

	expr := &Expr{Source: p.source, root: root}
	if p.debug {
		pp.Println(p.source)
		pp.Println(root)
		log.Println(expr.Render())
	}

	return expr, nil
}

func (p *parser) parseExpression() (node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.index != len(p.tokens) {
		op := p.tokens[p.index]
		if op.kind != plusToken && op.kind != minusToken {
			break
		}
		p.index++

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = &binaryNode{op: op.kind, left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.index != len(p.tokens) {
		op := p.tokens[p.index]
		if op.kind != starToken && op.kind != slashToken {
			break
		}
		p.index++

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		left = &binaryNode{op: op.kind, left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseFactor() (node, error) {
	if p.index == len(p.tokens) {
		return nil, types.NewParseError("unexpected end of expression: expr=%q", p.source)
	}

	tok := p.tokens[p.index]
	switch tok.kind {
	case numberToken:
		p.index++
		return &literalNode{text: p.extractLiteralString(tok)}, nil

	case lParenToken:
		p.index++
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.index == len(p.tokens) || p.tokens[p.index].kind != rParenToken {
			return nil, types.NewParseError("expected closing bracket at %d: expr=%q", tok.beginsPos+1, p.source)
		}
		p.index++
		return inner, nil

	default:
		return nil, p.createInvalidTokenError(tok)
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return &types.Error{
			Tag: types.RecursionErrorTag,
			Err: fmt.Errorf("expression nests deeper than %d: expr=%q", p.maxDepth, p.source),
		}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) extractLiteralString(t token) string {
	return p.source[t.beginsPos:t.endsPos]
}

func (p *parser) createInvalidTokenError(t token) error {
	return types.NewParseError("invalid token %s at %d: expr=%q", p.extractLiteralString(t), t.beginsPos+1, p.source)
}
