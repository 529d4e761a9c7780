package config

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/modforge/respatch/memory"
)

// Condition gates an entry on an expression over the memory store,
// compiled once at load time. token(n) reads the token namespace as a
// string, strref(n) the string-reference namespace, defined(n) reports
// whether a token has been written.
type Condition struct {
	Source string
	prog   *vm.Program
}

func CompileCondition(src string) (*Condition, error) {
	prog, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: condition %q: %v", ErrLoad, src, err)
	}
	return &Condition{Source: src, prog: prog}, nil
}

func (c *Condition) Eval(mem *memory.Store) (bool, error) {
	env := map[string]any{
		"token": func(id int) (string, error) {
			return mem.TokenString(id)
		},
		"strref": func(id int) (int, error) {
			v, err := mem.StrRef(id)
			return int(v), err
		},
		"defined": func(id int) bool {
			_, err := mem.Token(id)
			return err == nil
		},
	}
	res, err := expr.Run(c.prog, env)
	if err != nil {
		return false, fmt.Errorf("condition %q: %w", c.Source, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q: not a boolean", c.Source)
	}
	return b, nil
}
