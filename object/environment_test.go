package object

import (
	"testing"

	"vscript/token"
)

func nameTok(name string) token.Token {
	return token.Token{Type: token.IDENT, Lexeme: name, Line: 1, Column: 1}
}

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", &Number{Value: 1})

	v, err := env.Get(nameTok("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := v.(*Number); !ok || n.Value != 1 {
		t.Errorf("got %#v, want Number{1}", v)
	}
}

func TestGetUndefinedIsError(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get(nameTok("y")); err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
}

func TestChildSeesOuterBindings(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Number{Value: 1})
	child := NewChild(outer)

	v, err := child.Get(nameTok("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := v.(*Number); n.Value != 1 {
		t.Errorf("got %v, want 1", n.Value)
	}
}

func TestChildDefineShadowsOuterWithoutMutatingIt(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Number{Value: 1})
	child := NewChild(outer)
	child.Define("x", &Number{Value: 2})

	childVal, _ := child.Get(nameTok("x"))
	outerVal, _ := outer.Get(nameTok("x"))

	if childVal.(*Number).Value != 2 {
		t.Errorf("child x = %v, want 2", childVal.(*Number).Value)
	}
	if outerVal.(*Number).Value != 1 {
		t.Errorf("outer x = %v, want 1 (must not be mutated by child's Define)", outerVal.(*Number).Value)
	}
}

func TestAssignWalksOutwardToExistingBinding(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Number{Value: 1})
	child := NewChild(outer)

	if err := child.Assign(nameTok("x"), &Number{Value: 99}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outerVal, _ := outer.Get(nameTok("x"))
	if outerVal.(*Number).Value != 99 {
		t.Errorf("outer x = %v, want 99 (Assign must mutate the binding where it lives)", outerVal.(*Number).Value)
	}
}

func TestAssignToUndefinedNameIsErrorAndCreatesNoBinding(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign(nameTok("z"), &Number{Value: 1}); err == nil {
		t.Fatal("expected an error assigning to a name with no existing binding")
	}
	if _, err := env.Get(nameTok("z")); err == nil {
		t.Fatal("Assign must not have created a binding for an undefined name")
	}
}
