package expression

import (
	"fmt"
	"strconv"

	"github.com/exprcalc/exprcalc/internal/types"
)

// DivisionPolicy controls what a zero divisor produces.
type DivisionPolicy string

const (
	// DivisionError makes a zero divisor an EvalError wrapping a
	// ZeroDivisionError. This is the default.
	DivisionError DivisionPolicy = "error"
	// DivisionIEEE propagates IEEE-754 division instead: ±Inf, or NaN
	// for 0/0.
	DivisionIEEE DivisionPolicy = "ieee"
)

type Evaluator struct {
	Division DivisionPolicy
	MaxDepth int
}

// EvaluateValue walks the expression tree in post-order and computes the
// result as a float64.
func (e *Evaluator) EvaluateValue(expr *Expr) (float64, error) {
	maxDepth := e.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	w := &treeWalker{expr: expr, division: e.Division, maxDepth: maxDepth}
	return w.evaluateNode(expr.root, maxDepth)
}

type treeWalker struct {
	expr     *Expr
	division DivisionPolicy
	maxDepth int
}

func (w *treeWalker) evaluateNode(n node, depth int) (float64, error) {
	if depth == 0 {
		return 0, &types.Error{
			Tag: types.RecursionErrorTag,
			Err: fmt.Errorf("expression nests deeper than %d: expr=%q", w.maxDepth, w.expr.Source),
		}
	}

	switch n := n.(type) {
	case *literalNode:
		v, err := strconv.ParseFloat(n.text, 64)
		if err != nil {
			return 0, types.NewEvalError(fmt.Errorf("invalid number %q: %w", n.text, err))
		}
		return v, nil

	case *binaryNode:
		left, err := w.evaluateNode(n.left, depth-1)
		if err != nil {
			return 0, err
		}
		right, err := w.evaluateNode(n.right, depth-1)
		if err != nil {
			return 0, err
		}

		switch n.op {
		case plusToken:
			return left + right, nil
		case minusToken:
			return left - right, nil
		case starToken:
			return left * right, nil
		case slashToken:
			if right == 0 && w.division != DivisionIEEE {
				return 0, types.NewEvalError(&types.Error{
					Tag: types.ZeroDivisionErrorTag,
					Err: fmt.Errorf("division by zero: expr=%q", w.expr.Source),
				})
			}
			return left / right, nil
		default:
			panic(fmt.Sprintf("invalid operator in expression tree: %s", string(tokenKindSymbolMap[n.op])))
		}

	default:
		panic(fmt.Sprintf("invalid node in expression tree: %T", n))
	}
}
