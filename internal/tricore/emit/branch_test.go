package emit

import (
	"testing"

	"github.com/tricore-dbt/trcore/internal/tricore/ir"
)

func TestGotoTBChainsOnSamePage(t *testing.T) {
	r := ir.NewRecorder()
	c := &BlockContext{TBPageBase: 0x1000, PageMask: 0xFFFFF000, PC: 0x1000, NextPC: 0x1002}

	GotoTB(r, c, 0, 0x1010)

	if len(r.Ops) == 0 || r.Ops[0].Name != "goto_tb" {
		t.Errorf("same-page GotoTB should chain, got %s", r.String())
	}
}

func TestGotoTBExitsAcrossPages(t *testing.T) {
	r := ir.NewRecorder()
	c := &BlockContext{TBPageBase: 0x1000, PageMask: 0xFFFFF000, PC: 0x1000, NextPC: 0x1002}

	GotoTB(r, c, 0, 0x5000)

	for _, op := range r.Ops {
		if op.Name == "goto_tb" {
			t.Errorf("cross-page GotoTB must not chain: %s", r.String())
		}
	}
}

func TestGotoTBExitsWhenSingleStepping(t *testing.T) {
	r := ir.NewRecorder()
	c := &BlockContext{TBPageBase: 0x1000, PageMask: 0xFFFFF000, PC: 0x1000, NextPC: 0x1002, SingleStepEnabled: true}

	GotoTB(r, c, 0, 0x1010)

	for _, op := range r.Ops {
		if op.Name == "goto_tb" {
			t.Errorf("single-step GotoTB must not chain: %s", r.String())
		}
	}
}

func TestLoopUsesMinusOneSentinel(t *testing.T) {
	r := ir.NewRecorder()
	c := &BlockContext{TBPageBase: 0x1000, PageMask: 0xFFFFF000, PC: 0x1000, NextPC: 0x1004}
	areg := r.Global("a2")

	Loop(r, c, areg, -32)

	foundSentinel := false
	for _, op := range r.Ops {
		if op.Name == "brcondi" && len(op.Args) > 2 && op.Args[2] == "-1" {
			foundSentinel = true
		}
	}
	if !foundSentinel {
		t.Errorf("Loop did not test against the -1 sentinel: %s", r.String())
	}
}
