package emit

import (
	"testing"

	"github.com/tricore-dbt/trcore/internal/tricore/ir"
)

func TestBit1OpMasksToSingleBit(t *testing.T) {
	r := ir.NewRecorder()
	ret := r.Global("d1")
	a := r.Global("d2")
	c := r.Global("d3")

	Bit1Op(r, ret, a, c, 3, 5, ir.BitAnd)

	if r.TempCount() != 0 {
		t.Errorf("Bit1Op leaked %d temps", r.TempCount())
	}
	last := r.Ops[len(r.Ops)-1]
	if last.Name != "andi" {
		t.Errorf("last op = %q, want andi (mask to bit 0)", last.Name)
	}
}

func TestBit2OpDeposits(t *testing.T) {
	r := ir.NewRecorder()
	ret := r.Global("d1")
	a := r.Global("d2")
	c := r.Global("d3")

	Bit2Op(r, ret, a, c, 0, 0, ir.BitAnd, ir.BitOr)

	if r.TempCount() != 0 {
		t.Errorf("Bit2Op leaked %d temps", r.TempCount())
	}
	last := r.Ops[len(r.Ops)-1]
	if last.Name != "deposit" {
		t.Errorf("last op = %q, want deposit", last.Name)
	}
}

func TestBitShLogicShiftsAndOrs(t *testing.T) {
	r := ir.NewRecorder()
	ret := r.Global("d1")
	a := r.Global("d2")
	c := r.Global("d3")

	BitShLogic(r, ret, a, c, 2, 4, ir.BitAnd)

	if r.TempCount() != 0 {
		t.Errorf("BitShLogic leaked %d temps", r.TempCount())
	}
	last := r.Ops[len(r.Ops)-1]
	if last.Name != "or" {
		t.Errorf("last op = %q, want or (accumulate into shifted ret)", last.Name)
	}
	foundShift := false
	for _, op := range r.Ops {
		if op.Name == "shli" {
			foundShift = true
		}
	}
	if !foundShift {
		t.Errorf("expected a shli shifting ret left, got: %s", r.String())
	}
}

func TestBitInsertDepositsExtractedBit(t *testing.T) {
	r := ir.NewRecorder()
	ret := r.Global("d1")
	a := r.Global("d2")
	c := r.Global("d3")

	BitInsert(r, ret, a, c, 6, 1, false)

	if r.TempCount() != 0 {
		t.Errorf("BitInsert leaked %d temps", r.TempCount())
	}
	last := r.Ops[len(r.Ops)-1]
	if last.Name != "deposit" {
		t.Errorf("last op = %q, want deposit", last.Name)
	}
}

func TestBitInsertInvertedComplementsBit(t *testing.T) {
	r := ir.NewRecorder()
	ret := r.Global("d1")
	a := r.Global("d2")
	c := r.Global("d3")

	BitInsert(r, ret, a, c, 6, 1, true)

	if r.TempCount() != 0 {
		t.Errorf("BitInsert(invert) leaked %d temps", r.TempCount())
	}
	foundXor := false
	for _, op := range r.Ops {
		if op.Name == "xori" {
			foundXor = true
		}
	}
	if !foundXor {
		t.Errorf("expected xori complementing the extracted bit, got: %s", r.String())
	}
}
