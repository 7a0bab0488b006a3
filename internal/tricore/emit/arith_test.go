package emit

import (
	"testing"

	"github.com/tricore-dbt/trcore/internal/tricore/cpustate"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
)

func newTestGlobals(r *ir.Recorder) *Globals {
	return cpustate.DeclareGlobals(r)
}

func TestAddEmitsFlagSequence(t *testing.T) {
	r := ir.NewRecorder()
	g := newTestGlobals(r)
	ret := r.Global("d1")
	a := r.Global("d2")
	c := r.Global("d3")

	Add(r, g, ret, a, c)

	if r.TempCount() != 0 {
		t.Errorf("Add leaked %d temps", r.TempCount())
	}
	if len(r.Ops) == 0 {
		t.Fatalf("Add emitted no ops")
	}
	if r.Ops[0].Name != "add" {
		t.Errorf("first op = %q, want add", r.Ops[0].Name)
	}
}

func TestShaciByFourOnMaxPositive(t *testing.T) {
	// shaci(src, +4) on the recorder: checks only that the left-shift path
	// (shli) is taken and that temps balance. The PSW.V/SV values that
	// shaci(0x7FFFFFFF, +4) produces are not computed by the recorder and
	// are not checked here.
	r := ir.NewRecorder()
	g := newTestGlobals(r)
	ret := r.Global("d1")
	src := r.Global("d2")

	Shaci(r, g, ret, src, 4)

	if r.TempCount() != 0 {
		t.Errorf("Shaci leaked %d temps", r.TempCount())
	}
	foundShift := false
	for _, op := range r.Ops {
		if op.Name == "shli" {
			foundShift = true
		}
	}
	if !foundShift {
		t.Errorf("Shaci(shift=4) did not emit a left shift: %s", r.String())
	}
}

func TestMulI32SBalance(t *testing.T) {
	r := ir.NewRecorder()
	g := newTestGlobals(r)
	ret := r.Global("d1")
	a := r.Global("d2")
	c := r.Global("d3")

	MulI32S(r, g, ret, a, c)
	if r.TempCount() != 0 {
		t.Errorf("MulI32S leaked %d temps", r.TempCount())
	}
}
