package object

import (
	"vscript/internal/verrors"
	"vscript/token"
)

// Environment is a name→Value mapping with an optional enclosing link,
// forming the lexical scope chain. Environments are shared by reference:
// a closure captures the *Environment current at its declaration, not a
// copy of its bindings.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment creates a fresh environment with no enclosing scope —
// used once, for the interpreter's global environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewChild creates a new scope enclosed by outer. Function activation
// records and block statements each push one of these.
func NewChild(outer *Environment) *Environment {
	return &Environment{store: make(map[string]Value), outer: outer}
}

// Define unconditionally binds name to value in this scope. Repeated
// defines in the same scope silently shadow the prior binding.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get resolves name by walking outward from this scope. It fails with
// 未定义的变量 attributed to nameTok when no enclosing scope defines it.
func (e *Environment) Get(nameTok token.Token) (Value, error) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[nameTok.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, verrors.NewRuntimeError(pos(nameTok), "未定义的变量 '%s'", nameTok.Lexeme)
}

// Assign walks outward for the nearest scope already binding nameTok's
// name and overwrites it there. It never creates a new binding; assigning
// to a name with no existing binding anywhere in the chain fails with the
// same error as Get.
func (e *Environment) Assign(nameTok token.Token, value Value) error {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[nameTok.Lexeme]; ok {
			env.store[nameTok.Lexeme] = value
			return nil
		}
	}
	return verrors.NewRuntimeError(pos(nameTok), "未定义的变量 '%s'", nameTok.Lexeme)
}

func pos(t token.Token) verrors.Position {
	return verrors.Position{Line: t.Line, Column: t.Column}
}
