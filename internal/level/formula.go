// internal/level/formula.go
package level

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is what a wave formula can see.
type Env struct {
	Wave int `expr:"wave"`
}

// formula is a compiled step or count expression.
type formula struct {
	src     string
	program *vm.Program
}

func compileFormula(src string) (formula, error) {
	program, err := expr.Compile(src, expr.Env(Env{}))
	if err != nil {
		return formula{}, fmt.Errorf("expression compilation failed: %w", err)
	}
	return formula{src: src, program: program}, nil
}

// eval runs the formula for a wave. Fractional results are truncated toward zero.
func (f formula) eval(wave int) (int, error) {
	result, err := expr.Run(f.program, Env{Wave: wave})
	if err != nil {
		return 0, fmt.Errorf("expression evaluation failed: %w", err)
	}
	switch v := result.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("expression %q returned non-numeric result: %T", f.src, result)
}
