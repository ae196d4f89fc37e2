package scripting

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// Evaluator runs single-expression Lua formulas with integer variables bound
// as globals. Each evaluation gets a fresh sandbox so budgets never carry over.
type Evaluator struct {
	instLimit int
}

// NewEvaluator returns an Evaluator with the given opcode budget per call.
func NewEvaluator(instLimit int) *Evaluator {
	return &Evaluator{instLimit: instLimit}
}

// Int evaluates expr and truncates the numeric result toward zero.
//
// Postcondition: Returns the value or an error naming the formula.
func (e *Evaluator) Int(expr string, vars map[string]int) (int, error) {
	v, err := e.eval(expr, vars)
	if err != nil {
		return 0, err
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("scripting: formula %q returned %s, want number", expr, v.Type())
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("scripting: formula %q returned %v", expr, f)
	}
	return int(f), nil
}

// String evaluates expr and returns the result as a string. Numbers are
// formatted the way Lua prints them.
func (e *Evaluator) String(expr string, vars map[string]int) (string, error) {
	v, err := e.eval(expr, vars)
	if err != nil {
		return "", err
	}
	switch v.Type() {
	case lua.LTString, lua.LTNumber:
		return v.String(), nil
	}
	return "", fmt.Errorf("scripting: formula %q returned %s, want string", expr, v.Type())
}

func (e *Evaluator) eval(expr string, vars map[string]int) (lua.LValue, error) {
	L := NewSandboxedState(e.instLimit)
	defer L.Close()

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		L.SetGlobal(name, lua.LNumber(vars[name]))
	}

	if err := L.DoString("return " + expr); err != nil {
		return nil, fmt.Errorf("scripting: evaluating %q: %w", expr, err)
	}
	if L.GetTop() == 0 {
		return nil, fmt.Errorf("scripting: formula %q produced no value", expr)
	}
	return L.Get(-1), nil
}
