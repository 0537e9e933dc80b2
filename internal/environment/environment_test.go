package environment

import (
	"testing"

	"github.com/kristofer/glox/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	env := NewGlobal()
	env.Define("x", value.Number(1))

	got, ok := env.Get("x")
	if !ok || got != value.Number(1) {
		t.Fatalf("Get(x) = %v, %v", got, ok)
	}
}

func TestGet_UndefinedReturnsFalse(t *testing.T) {
	env := NewGlobal()
	if _, ok := env.Get("missing"); ok {
		t.Fatal("Get(missing) should report false")
	}
}

func TestChild_SeesParentBindings(t *testing.T) {
	parent := NewGlobal()
	parent.Define("x", value.Number(1))
	child := parent.NewChild()

	got, ok := child.Get("x")
	if !ok || got != value.Number(1) {
		t.Fatalf("child.Get(x) = %v, %v", got, ok)
	}
}

func TestChild_ShadowsParentWithoutMutatingIt(t *testing.T) {
	parent := NewGlobal()
	parent.Define("x", value.Number(1))
	child := parent.NewChild()
	child.Define("x", value.Number(2))

	got, _ := child.Get("x")
	if got != value.Number(2) {
		t.Fatalf("child.Get(x) = %v, want 2", got)
	}
	got, _ = parent.Get("x")
	if got != value.Number(1) {
		t.Fatalf("parent.Get(x) = %v, want unchanged 1", got)
	}
}

func TestAssign_WalksUpToDefiningScope(t *testing.T) {
	parent := NewGlobal()
	parent.Define("x", value.Number(1))
	child := parent.NewChild()

	if ok := child.Assign("x", value.Number(99)); !ok {
		t.Fatal("Assign(x) should succeed via parent scope")
	}
	got, _ := parent.Get("x")
	if got != value.Number(99) {
		t.Fatalf("parent.Get(x) = %v, want 99", got)
	}
}

func TestAssign_UndefinedReturnsFalse(t *testing.T) {
	env := NewGlobal()
	if env.Assign("missing", value.Number(1)) {
		t.Fatal("Assign(missing) should report false")
	}
}

func TestIsGlobal(t *testing.T) {
	global := NewGlobal()
	if !global.IsGlobal() {
		t.Error("NewGlobal() should be global")
	}
	if global.NewChild().IsGlobal() {
		t.Error("a child environment should not be global")
	}
}

// Two aliases of the same environment observe each other's
// mutations, the way a closure and its defining scope must.
func TestSharedEnvironmentAliasingIsVisible(t *testing.T) {
	env := NewGlobal()
	alias := env

	env.Define("x", value.Number(1))
	alias.Define("x", value.Number(2))

	got, _ := env.Get("x")
	if got != value.Number(2) {
		t.Fatalf("env.Get(x) = %v, want 2 (aliasing should be visible)", got)
	}
}
