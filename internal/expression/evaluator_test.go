package expression_test

import (
	"math"
	"strings"
	"testing"

	"github.com/exprcalc/exprcalc/internal/expression"
	"github.com/exprcalc/exprcalc/internal/types"
)

func TestEvaluateValueDivisionPolicy(t *testing.T) {
	t.Parallel()

	t.Run("default policy is an error", func(t *testing.T) {
		t.Parallel()

		expr, err := expression.ParseExpr("1/0")
		if err != nil {
			t.Fatal(err)
		}

		e := expression.Evaluator{}
		_, err = e.EvaluateValue(expr)
		if !types.HasTag(err, types.EvalErrorTag) {
			t.Fatalf("expected EvalError but got: %v", err)
		}
		if !types.HasTag(err, types.ZeroDivisionErrorTag) {
			t.Fatalf("expected ZeroDivisionError in the chain but got: %v", err)
		}
	})

	t.Run("ieee policy propagates infinity", func(t *testing.T) {
		t.Parallel()

		expr, err := expression.ParseExpr("1/0")
		if err != nil {
			t.Fatal(err)
		}

		e := expression.Evaluator{Division: expression.DivisionIEEE}
		ret, err := e.EvaluateValue(expr)
		if err != nil {
			t.Fatal(err)
		}
		if !math.IsInf(ret, 1) {
			t.Errorf("expected +Inf but got %v", ret)
		}
	})

	t.Run("ieee policy propagates NaN", func(t *testing.T) {
		t.Parallel()

		expr, err := expression.ParseExpr("0/0")
		if err != nil {
			t.Fatal(err)
		}

		e := expression.Evaluator{Division: expression.DivisionIEEE}
		ret, err := e.EvaluateValue(expr)
		if err != nil {
			t.Fatal(err)
		}
		if !math.IsNaN(ret) {
			t.Errorf("expected NaN but got %v", ret)
		}
	})

	t.Run("nonzero division is a value under both policies", func(t *testing.T) {
		t.Parallel()

		expr, err := expression.ParseExpr("12/5")
		if err != nil {
			t.Fatal(err)
		}

		for _, policy := range []expression.DivisionPolicy{expression.DivisionError, expression.DivisionIEEE} {
			e := expression.Evaluator{Division: policy}
			ret, err := e.EvaluateValue(expr)
			if err != nil {
				t.Fatal(err)
			}
			if ret != 2.4 {
				t.Errorf("policy %q: expected 2.4 but got %v", policy, ret)
			}
		}
	})
}

func TestEvaluateValueMaxDepth(t *testing.T) {
	t.Parallel()

	// a left-deep chain: ((((1+2)+3)+4)...)
	source := "1" + strings.Repeat("+1", 20)
	expr, err := expression.ParseExpr(source)
	if err != nil {
		t.Fatal(err)
	}

	e := expression.Evaluator{MaxDepth: 4}
	if _, err := e.EvaluateValue(expr); !types.HasTag(err, types.RecursionErrorTag) {
		t.Fatalf("expected RecursionError but got: %v", err)
	}

	e = expression.Evaluator{MaxDepth: 64}
	ret, err := e.EvaluateValue(expr)
	if err != nil {
		t.Fatal(err)
	}
	if ret != 21 {
		t.Errorf("expected 21 but got %v", ret)
	}
}

func TestEvaluateValueLiteralParsedAtEvaluationTime(t *testing.T) {
	t.Parallel()

	// "1." lexes as a single number token and parses as 1.0
	expr, err := expression.ParseExpr("1.+2")
	if err != nil {
		t.Fatal(err)
	}

	e := expression.Evaluator{}
	ret, err := e.EvaluateValue(expr)
	if err != nil {
		t.Fatal(err)
	}
	if ret != 3 {
		t.Errorf("expected 3 but got %v", ret)
	}
}
