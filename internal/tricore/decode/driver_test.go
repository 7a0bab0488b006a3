package decode

import (
	"testing"

	"github.com/tricore-dbt/trcore/internal/tricore/cpustate"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
)

// wordEnvironment serves fixed little-endian words to the driver, letting
// each test supply exactly the bytes its scenario needs (spec §8's literal
// end-to-end scenarios).
type wordEnvironment struct {
	base  uint32
	words map[uint32]uint32
}

func (e *wordEnvironment) FetchCode(pc uint32) uint32 {
	if w, ok := e.words[pc]; ok {
		return w
	}
	return 0
}

func newHarness() (*ir.Recorder, *cpustate.Globals) {
	r := ir.NewRecorder()
	g := cpustate.DeclareGlobals(r)
	return r, g
}

// TestShortADD covers spec §8 scenario 1: SRR ADD D1, D2 at pc=0x1000.
func TestShortADD(t *testing.T) {
	r, g := newHarness()
	// SRR ADD: op1=0x42, s1d=1 (bits 11:8), s2=2 (bits 15:12).
	word := uint32(0x42) | (1 << 8) | (2 << 12)
	env := &wordEnvironment{base: 0x1000, words: map[uint32]uint32{0x1000: word}}
	opts := DefaultOptions()
	opts.MaxInstructions = 1 // force the block to end after this one instruction

	res := TranslateBlock(r, g, env, 0x1000, opts)

	if res.ExitState != StateNone {
		t.Errorf("bstate = %v, want StateNone", res.ExitState)
	}
	if res.PCMap[0].PC+2 != 0x1002 {
		t.Errorf("computed next_pc = 0x%x, want 0x1002", res.PCMap[0].PC+2)
	}
	if len(r.Ops) == 0 || r.Ops[0].Name != "add" {
		t.Fatalf("first emitted op = %+v, want add(d1, d1, d2): %s", r.Ops, r.String())
	}
	foundSavedExit := false
	for _, op := range r.Ops {
		if op.Name == "save_pc" && len(op.Args) == 1 && op.Args[0] == "0x1002" {
			foundSavedExit = true
		}
	}
	if !foundSavedExit {
		t.Errorf("expected save_pc(0x1002) on the buffer-limit exit path, got: %s", r.String())
	}
	if res.TempLeak {
		t.Errorf("temp leak: %s", r.String())
	}
}

// TestUnconditional16BitJ covers spec §8 scenario 2: SB J, disp8=2 at
// pc=0x1000, chaining to pc + 2*2 = 0x1004.
func TestUnconditional16BitJ(t *testing.T) {
	r, g := newHarness()
	// SB J: op1=0x3C, disp8=2 at bits [15:8].
	word := uint32(0x3C) | (2 << 8)
	env := &wordEnvironment{base: 0x1000, words: map[uint32]uint32{0x1000: word}}

	res := TranslateBlock(r, g, env, 0x1000, DefaultOptions())

	if res.ExitState != StateBranch {
		t.Errorf("bstate = %v, want StateBranch", res.ExitState)
	}
	foundTarget := false
	for _, op := range r.Ops {
		if op.Name == "save_pc" && len(op.Args) == 1 && op.Args[0] == "0x1004" {
			foundTarget = true
		}
	}
	if !foundTarget {
		t.Errorf("expected save_pc(0x1004) in trace, got: %s", r.String())
	}
}

// TestLdWPostIncrement covers spec §8 scenario 3: 16-bit SLR LD.W D1,[A2+]
// at pc=0x2000 -- a 32-bit signed load from A2 followed by A2 += 4.
func TestLdWPostIncrement(t *testing.T) {
	r, g := newHarness()
	// SLR LD.W POSTINC: op1=0x14, d=1 (bits 11:8), s2=2 (bits 15:12).
	word := uint32(0x14) | (1 << 8) | (2 << 12)
	env := &wordEnvironment{base: 0x2000, words: map[uint32]uint32{0x2000: word}}
	opts := DefaultOptions()
	opts.MaxInstructions = 1

	res := TranslateBlock(r, g, env, 0x2000, opts)

	if res.PCMap[0].PC+2 != 0x2002 {
		t.Errorf("computed next_pc = 0x%x, want 0x2002", res.PCMap[0].PC+2)
	}
	if len(r.Ops) < 2 {
		t.Fatalf("expected qemu_ld + addi, got: %s", r.String())
	}
	if r.Ops[0].Name != "qemu_ld" {
		t.Errorf("first op = %q, want qemu_ld", r.Ops[0].Name)
	}
	if r.Ops[1].Name != "addi" {
		t.Errorf("second op = %q, want addi (post-increment writeback)", r.Ops[1].Name)
	}
}

// TestLoopScenario covers spec §8 scenario 5: SBR_LOOP r1=2, disp4=5,
// pc=0x1000 -> branch target pc + 2*5 - 32 = 0x0FEA.
func TestLoopScenario(t *testing.T) {
	r, g := newHarness()
	// SBR LOOP: op1=0xFC, r2 field at bits [11:8], disp4 at bits [15:12].
	word := uint32(0xFC) | (2 << 8) | (5 << 12)
	env := &wordEnvironment{base: 0x1000, words: map[uint32]uint32{0x1000: word}}

	res := TranslateBlock(r, g, env, 0x1000, DefaultOptions())

	if res.ExitState != StateBranch {
		t.Errorf("bstate = %v, want StateBranch", res.ExitState)
	}
	foundTaken := false
	for _, op := range r.Ops {
		if op.Name == "save_pc" && len(op.Args) == 1 && op.Args[0] == "0xfea" {
			foundTaken = true
		}
	}
	if !foundTaken {
		t.Errorf("expected save_pc(0xfea) loop-taken target in trace, got: %s", r.String())
	}
}

// TestDecodeLengthClassification asserts spec §8's decode-length property:
// bit 0 of the opcode word alone decides 16- vs 32-bit classification, and
// next_pc advances by exactly 2 or 4.
func TestDecodeLengthClassification(t *testing.T) {
	r, g := newHarness()
	// Two back-to-back 16-bit SRR MOV instructions (op1=0x02, even).
	w0 := uint32(0x02) | (1 << 8) | (2 << 12)
	w1 := uint32(0x02) | (3 << 8) | (4 << 12)
	env := &wordEnvironment{words: map[uint32]uint32{0x1000: w0, 0x1002: w1}}
	opts := DefaultOptions()
	opts.MaxInstructions = 2

	res := TranslateBlock(r, g, env, 0x1000, opts)

	if res.InstrCount != 2 {
		t.Fatalf("InstrCount = %d, want 2", res.InstrCount)
	}
	if res.PCMap[0].PC != 0x1000 || res.PCMap[1].PC != 0x1002 {
		t.Errorf("PCMap = %+v, want [0x1000 0x1002]", res.PCMap)
	}
	if res.PCMap[1].PC-res.PCMap[0].PC != 2 {
		t.Errorf("16-bit instruction width = %d, want 2", res.PCMap[1].PC-res.PCMap[0].PC)
	}
}

// TestDecodeErrorStopsBlockWithoutTrap exercises spec §7 error-taxonomy item
// 1: an opcode that matches its size classification but has no case under
// its format decoder's dispatch is a plain decode error -- the block stops
// cleanly (bstate = StateBranch) and, critically, no illegal_opcode helper
// call is emitted; that call is reserved for §7 item 2's architecturally
// illegal opcodes (e.g. CACHEI.W on a post-1.3 core).
func TestDecodeErrorStopsBlockWithoutTrap(t *testing.T) {
	r, g := newHarness()
	// Op1 0xFF (bit0 set -> 32-bit path) matches no entry in format32Table.
	word := uint32(0xFF)
	env := &wordEnvironment{words: map[uint32]uint32{0x3000: word}}

	res := TranslateBlock(r, g, env, 0x3000, DefaultOptions())

	if res.ExitState != StateBranch {
		t.Errorf("bstate = %v, want StateBranch", res.ExitState)
	}
	if res.TempLeak {
		t.Errorf("temp leak on decode-error path: %s", r.String())
	}
	for _, op := range r.Ops {
		if op.Name == "illegal_opcode" {
			t.Errorf("decode error must not emit illegal_opcode, got: %s", r.String())
		}
	}
}

// TestIllegalOpcodeTrapsAndStopsBlock exercises spec §7 error-taxonomy item
// 2: CACHEI.W on a post-1.3 core (FeatureFlag13 set) is architecturally
// illegal, which does emit the illegal_opcode helper and ends the block as
// an exception.
func TestIllegalOpcodeTrapsAndStopsBlock(t *testing.T) {
	r, g := newHarness()
	// OPC1_32_ABSB_CACHEI_W (0x45); bit0 set selects the 32-bit path.
	word := uint32(0x45)
	env := &wordEnvironment{words: map[uint32]uint32{0x3000: word}}

	opts := DefaultOptions()
	opts.Features |= FeatureFlag13

	res := TranslateBlock(r, g, env, 0x3000, opts)

	if res.ExitState != StateExcp {
		t.Errorf("bstate = %v, want StateExcp", res.ExitState)
	}
	if res.TempLeak {
		t.Errorf("temp leak on illegal-opcode path: %s", r.String())
	}
	foundTrap := false
	for _, op := range r.Ops {
		if op.Name == "illegal_opcode" {
			foundTrap = true
		}
	}
	if !foundTrap {
		t.Errorf("expected illegal_opcode call, got: %s", r.String())
	}
}

// TestSingleStepExitsAfterOneInstruction asserts the single-step gate:
// translation stops after exactly one instruction regardless of whether it
// was a branch.
func TestSingleStepExitsAfterOneInstruction(t *testing.T) {
	r, g := newHarness()
	word := uint32(0x02) | (1 << 8) | (2 << 12) // SRR MOV
	env := &wordEnvironment{words: map[uint32]uint32{0x1000: word}}
	opts := DefaultOptions()
	opts.SingleStepEnabled = true

	res := TranslateBlock(r, g, env, 0x1000, opts)

	if res.InstrCount != 1 {
		t.Errorf("InstrCount = %d, want 1 under single-step", res.InstrCount)
	}
}
