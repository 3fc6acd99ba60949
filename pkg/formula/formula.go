// Package formula evaluates calculated-column expressions against a report
// row. Expressions are Tengo snippets; the row's field values are exposed as
// the "fields" map and the expression's value becomes the cell text.
package formula

import (
	"fmt"
	"strconv"

	"github.com/d5/tengo/v2"
)

// Evaluator holds one calculated-column expression.
type Evaluator struct {
	expression string
}

func NewEvaluator(expression string) *Evaluator {
	return &Evaluator{expression: expression}
}

// Eval runs the expression with the row's fields bound. Numeric-looking
// field values are exposed as floats so arithmetic works without casts;
// everything else stays a string.
func (e *Evaluator) Eval(fields map[string]string) (string, error) {
	src := fmt.Sprintf("result := (%s)", e.expression)
	script := tengo.NewScript([]byte(src))

	bound := make(map[string]interface{}, len(fields))
	for key, val := range fields {
		if num, err := strconv.ParseFloat(val, 64); err == nil && val != "" {
			bound[key] = num
		} else {
			bound[key] = val
		}
	}

	if err := script.Add("fields", bound); err != nil {
		return "", fmt.Errorf("failed to bind fields: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return "", fmt.Errorf("failed to compile formula: %w", err)
	}

	if err := compiled.Run(); err != nil {
		return "", fmt.Errorf("failed to run formula: %w", err)
	}

	result := compiled.Get("result")
	switch val := result.Value().(type) {
	case nil:
		return "", nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case string:
		return val, nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}
