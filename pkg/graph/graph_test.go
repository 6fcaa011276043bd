package graph

import (
	"reflect"
	"testing"

	"github.com/statebind/statebind/internal/errors"
)

func TestReverseIndex(t *testing.T) {
	g := New()
	g.AddDerivation("b", []string{"a"})
	g.AddDerivation("c", []string{"b"})
	g.AddDerivation("d", []string{"a", "b"})

	if got := g.DependentsOf("a"); !reflect.DeepEqual(got, []string{"b", "d"}) {
		t.Errorf("dependents of a: expected [b d], got %v", got)
	}
	if got := g.DependentsOf("b"); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("dependents of b: expected [c d], got %v", got)
	}
	if got := g.DependentsOf("z"); got != nil {
		t.Errorf("expected nil for unknown property, got %v", got)
	}
}

func TestSelfDependencyExcluded(t *testing.T) {
	g := New()
	g.AddDerivation("b", []string{"a", "b"})

	if got := g.DependenciesOf("b"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("expected [a], got %v", got)
	}
	if got := g.DependentsOf("b"); got != nil {
		t.Errorf("a derivation must not depend on itself, got %v", got)
	}
}

func TestValidateDAG(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		g := New()
		g.AddDerivation("b", []string{"a"})
		g.AddDerivation("c", []string{"b"})
		g.AddDerivation("d", []string{"b", "c"})
		if err := g.ValidateDAG(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		g := New()
		g.AddDerivation("b", []string{"c"})
		g.AddDerivation("c", []string{"b"})
		err := g.ValidateDAG()
		if err == nil {
			t.Fatal("expected a cycle error")
		}
		if !errors.IsCategory(err, errors.CategoryConfig) {
			t.Errorf("expected config category, got %v", err)
		}
	})

	t.Run("base properties do not participate", func(t *testing.T) {
		// "a" is a base property here, not a derivation; an edge to it
		// can never close a cycle.
		g := New()
		g.AddDerivation("b", []string{"a"})
		if err := g.ValidateDAG(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestClear(t *testing.T) {
	g := New()
	g.AddDerivation("b", []string{"a"})
	g.Clear()
	if g.IsDerivation("b") || g.DependentsOf("a") != nil {
		t.Error("clear must drop all entries")
	}
}
