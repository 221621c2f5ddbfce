package environment

import (
	"sort"

	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

// Environment is one lexical scope. Lookups and assignments walk outward
// through parent until a scope owning the name is found.
type Environment struct {
	values map[string]types.Value
	parent *Environment
}

// New creates an environment nested under parent, which is nil for the
// global scope.
func New(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]types.Value),
		parent: parent,
	}
}

func (e *Environment) Parent() *Environment {
	return e.parent
}

// Depth counts the scopes above e.
func (e *Environment) Depth() int {
	depth := 0
	for env := e.parent; env != nil; env = env.parent {
		depth++
	}
	return depth
}

// Define binds name in this scope only. Shadowing an outer binding is fine,
// defining the same name twice in one scope is not.
func (e *Environment) Define(name types.Token, value types.Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		return errors.RuntimeError{Message: "name already defined", Token: name}
	}
	if value == nil {
		value = types.Nil{}
	}
	e.values[name.Lexeme] = value
	return nil
}

// Assign updates the nearest existing binding. It never creates one.
func (e *Environment) Assign(name types.Token, value types.Value) error {
	if value == nil {
		value = types.Nil{}
	}
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return errors.RuntimeError{Message: "undefined variable", Token: name}
}

// Get returns the nearest binding. A name bound to nil yields types.Nil and no
// error; an unbound name is an error.
func (e *Environment) Get(name types.Token) (types.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, errors.RuntimeError{Message: "undefined variable", Token: name}
}

// Keys returns the names bound in this scope in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
