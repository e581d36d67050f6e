package expression

import "strings"

// Expr is a parsed arithmetic expression.
type Expr struct {
	Source string
	root   node
}

func (e *Expr) String() string {
	return e.Source
}

// Render returns the expression tree in s-expression form,
// e.g. "(+ 2 (* 3 4))" for "2+3*4". Two expressions with the same
// rendering are structurally equal.
func (e *Expr) Render() string {
	var b strings.Builder
	renderNode(&b, e.root)
	return b.String()
}

func renderNode(b *strings.Builder, n node) {
	switch n := n.(type) {
	case *literalNode:
		b.WriteString(n.text)
	case *binaryNode:
		b.WriteByte('(')
		b.WriteByte(tokenKindSymbolMap[n.op])
		b.WriteByte(' ')
		renderNode(b, n.left)
		b.WriteByte(' ')
		renderNode(b, n.right)
		b.WriteByte(')')
	}
}

type node interface {
	exprNode()
}

// literalNode keeps the raw numeric text; it is parsed to a float64 at
// evaluation time.
type literalNode struct {
	text string
}

// binaryNode's op is always one of the four arithmetic operator kinds.
type binaryNode struct {
	op    tokenKind
	left  node
	right node
}

func (*literalNode) exprNode() {}
func (*binaryNode) exprNode()  {}
