package graph

import (
	"reflect"
	"testing"

	"github.com/statebind/statebind/internal/errors"
)

func TestDeclaredAnalyzer(t *testing.T) {
	a := DeclaredAnalyzer{}
	def := Def{
		Name: "total",
		Fn:   func(v View) any { return nil },
		Deps: []string{"price", "total", "qty", "price", "unknown"},
	}
	deps, err := a.Analyze(def, []string{"price", "qty", "tax"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Self-dependency, duplicates, and unknown names are dropped;
	// declaration order is preserved.
	if !reflect.DeepEqual(deps, []string{"price", "qty"}) {
		t.Errorf("expected [price qty], got %v", deps)
	}
}

func TestDeclaredAnalyzerNotCallable(t *testing.T) {
	a := DeclaredAnalyzer{}
	deps, err := a.Analyze(Def{Name: "broken"}, []string{"x"})
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	if !errors.IsCategory(err, errors.CategoryConfig) {
		t.Errorf("expected config category, got %v", err)
	}
	if len(deps) != 0 {
		t.Errorf("expected empty dependency set, got %v", deps)
	}
}

func TestTraceAnalyzerRecordsReads(t *testing.T) {
	a := TraceAnalyzer{Base: MapView{"x": 1, "y": 2, "z": 3}}
	def := Def{
		Name: "sum",
		Fn: func(v View) any {
			return v.Get("x").(int) + v.Get("y").(int)
		},
	}
	deps, err := a.Analyze(def, []string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(deps, []string{"x", "y"}) {
		t.Errorf("expected [x y] in read order, got %v", deps)
	}
}

func TestTraceAnalyzerExcludesSelf(t *testing.T) {
	a := TraceAnalyzer{Base: MapView{"x": 1}}
	def := Def{
		Name: "loop",
		Fn: func(v View) any {
			_ = v.Get("loop")
			return v.Get("x")
		},
	}
	deps, err := a.Analyze(def, []string{"x", "loop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(deps, []string{"x"}) {
		t.Errorf("self must be excluded, got %v", deps)
	}
}

func TestTraceAnalyzerRecoversPanic(t *testing.T) {
	a := TraceAnalyzer{Base: MapView{"x": 1}}
	def := Def{
		Name: "bad",
		Fn: func(v View) any {
			_ = v.Get("x")
			panic("missing value")
		},
	}
	deps, err := a.Analyze(def, []string{"x"})
	if err == nil {
		t.Fatal("expected a non-fatal analysis warning")
	}
	if !reflect.DeepEqual(deps, []string{"x"}) {
		t.Errorf("reads before the panic must be kept, got %v", deps)
	}
}
