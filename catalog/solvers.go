package catalog

import (
	"fmt"
	"strings"

	opts "github.com/goliatone/go-options"
	"github.com/knadh/koanf/v2"
)

// Solver rewrites values of the loaded store in place, after all layers merged.
type Solver interface {
	Solve(k *koanf.Koanf) *koanf.Koanf
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(k *koanf.Koanf) *koanf.Koanf

func (f SolverFunc) Solve(k *koanf.Koanf) *koanf.Koanf {
	return f(k)
}

// EvalErrorHandler decides what happens to a value whose expression failed.
type EvalErrorHandler func(key, expr string, err error, k *koanf.Koanf)

// LeaveUnchanged keeps the raw "{{ ... }}" text; decode or compile will then reject it.
func LeaveUnchanged() EvalErrorHandler {
	return func(string, string, error, *koanf.Koanf) {}
}

// RemoveKey drops the key so lower defaults or builder defaults apply.
func RemoveKey() EvalErrorHandler {
	return func(key, _ string, _ error, k *koanf.Koanf) {
		k.Delete(key)
	}
}

type delimiters struct {
	start string
	end   string
}

type variables struct {
	delims delimiters
}

// NewVariablesSolver resolves references to other keys, e.g. "${defaults.leaves}".
// A value made only of the reference takes the referenced value with its type;
// an embedded reference is rendered as text.
func NewVariablesSolver(start, end string) Solver {
	return variables{delims: delimiters{start: start, end: end}}
}

func (s variables) Solve(k *koanf.Koanf) *koanf.Koanf {
	for key, val := range k.All() {
		str, ok := val.(string)
		if !ok {
			continue
		}
		s.resolve(k, key, str)
	}
	return k
}

func (s variables) resolve(k *koanf.Koanf, key, val string) {
	i := strings.Index(val, s.delims.start)
	if i == -1 {
		return
	}
	rest := val[i+len(s.delims.start):]
	j := strings.Index(rest, s.delims.end)
	if j <= 0 {
		return
	}

	path := strings.TrimSpace(rest[:j])
	if path == key || !k.Exists(path) {
		return
	}

	ref := k.Get(path)
	if i == 0 && j+len(s.delims.end) == len(rest) {
		k.Set(key, ref)
		return
	}

	k.Set(key, val[:i]+fmt.Sprint(ref)+rest[j+len(s.delims.end):])
}

type expression struct {
	delims    delimiters
	evaluator opts.Evaluator
	onError   EvalErrorHandler
}

// NewExpressionSolver evaluates values written entirely as "{{ expr }}" with the
// go-options expr evaluator. The merged document is the expression environment,
// so "{{ defaults.chance * 2 }}" reads the defaults.chance key.
func NewExpressionSolver(start, end string) Solver {
	return NewExpressionSolverWithEvaluator(start, end, nil, nil)
}

// NewExpressionSolverWithEvaluator allows a custom evaluator and error handler.
func NewExpressionSolverWithEvaluator(start, end string, eval opts.Evaluator, onErr EvalErrorHandler) Solver {
	if start == "" {
		start = "{{"
	}
	if end == "" {
		end = "}}"
	}
	if eval == nil {
		eval = opts.NewExprEvaluator()
	}
	if onErr == nil {
		onErr = LeaveUnchanged()
	}
	return expression{
		delims:    delimiters{start: start, end: end},
		evaluator: eval,
		onError:   onErr,
	}
}

func (s expression) Solve(k *koanf.Koanf) *koanf.Koanf {
	if k == nil {
		return k
	}
	for key, val := range k.All() {
		str, ok := val.(string)
		if !ok {
			continue
		}
		expr, ok := s.match(str)
		if !ok {
			continue
		}
		result, err := s.evaluator.Evaluate(opts.RuleContext{Snapshot: k.Raw()}, expr)
		if err != nil {
			s.onError(key, expr, err, k)
			continue
		}
		k.Set(key, result)
	}
	return k
}

func (s expression) match(val string) (string, bool) {
	if !strings.HasPrefix(val, s.delims.start) || !strings.HasSuffix(val, s.delims.end) {
		return "", false
	}
	if len(val) < len(s.delims.start)+len(s.delims.end) {
		return "", false
	}
	expr := strings.TrimSpace(val[len(s.delims.start) : len(val)-len(s.delims.end)])
	return expr, expr != ""
}

// DefaultSolvers returns the variable and expression solvers with their usual delimiters.
func DefaultSolvers() []Solver {
	return []Solver{
		NewVariablesSolver("${", "}"),
		NewExpressionSolver("{{", "}}"),
	}
}
