package application

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"craftmanager/internal/domain"
)

func TestResolve_LoadsLazilyOnce(t *testing.T) {
	parts := standardParts()
	r := NewPartResolver(parts, testLogger())

	if _, ok := r.Resolve("mk1pod.v2"); !ok {
		t.Fatal("mk1pod.v2 not resolved")
	}
	if _, ok := r.Resolve("fuelTank.long"); !ok {
		t.Fatal("fuelTank.long not resolved")
	}
	if _, ok := r.Resolve("nope"); ok {
		t.Error("unknown part resolved")
	}

	if parts.calls != 1 {
		t.Errorf("catalog loaded %d times, want 1", parts.calls)
	}
}

func TestResolve_ExactMatch(t *testing.T) {
	r := NewPartResolver(standardParts(), testLogger())

	for _, name := range []string{"MK1POD.V2", "mk1pod", "mk1pod_v2", " mk1pod.v2"} {
		if _, ok := r.Resolve(name); ok {
			t.Errorf("Resolve(%q) matched", name)
		}
	}
}

func TestResolve_EmptyCatalogReloads(t *testing.T) {
	parts := &fakeParts{}
	r := NewPartResolver(parts, testLogger())

	r.Resolve("a")
	r.Resolve("b")

	if parts.calls != 2 {
		t.Errorf("empty catalog loaded %d times, want 2", parts.calls)
	}
}

func TestResolve_LoadErrorIsNotFound(t *testing.T) {
	parts := &fakeParts{err: errors.New("disk on fire")}
	r := NewPartResolver(parts, testLogger())

	if _, ok := r.Resolve("mk1pod.v2"); ok {
		t.Error("expected not found when catalog fails")
	}
	if err := r.Initialize(); err == nil {
		t.Error("Initialize should report the catalog error")
	}
}

func TestInitializeAndInvalidate(t *testing.T) {
	parts := standardParts()
	r := NewPartResolver(parts, testLogger())

	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if r.Len() != 4 {
		t.Errorf("Len = %d, want 4", r.Len())
	}

	parts.parts = append(parts.parts, domain.PartInfo{Name: "newPart"})
	if _, ok := r.Resolve("newPart"); ok {
		t.Error("cache should not see new part before Invalidate")
	}

	r.Invalidate()
	if r.Len() != 0 {
		t.Errorf("Len after Invalidate = %d", r.Len())
	}
	if _, ok := r.Resolve("newPart"); !ok {
		t.Error("newPart not resolved after Invalidate")
	}
	if parts.calls != 2 {
		t.Errorf("catalog loaded %d times, want 2", parts.calls)
	}
}

func TestResolve_LoadErrorLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	parts := &fakeParts{err: errors.New("no GameData")}
	r := NewPartResolver(parts, log.New(&buf))

	for _, name := range []string{"a", "b", "c", "d"} {
		r.Resolve(name)
	}

	if parts.calls != 4 {
		t.Errorf("catalog loaded %d times, want 4", parts.calls)
	}
	if n := strings.Count(buf.String(), "part catalog unavailable"); n != 1 {
		t.Errorf("logged %d warnings, want 1:\n%s", n, buf.String())
	}

	// A successful load rearms the warning
	parts.err = nil
	parts.parts = []domain.PartInfo{{Name: "a"}}
	if _, ok := r.Resolve("a"); !ok {
		t.Fatal("a not resolved after recovery")
	}
	r.Invalidate()
	parts.err = errors.New("no GameData")
	r.Resolve("a")
	if n := strings.Count(buf.String(), "part catalog unavailable"); n != 2 {
		t.Errorf("logged %d warnings after recovery, want 2", n)
	}
}
