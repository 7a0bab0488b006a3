package decode

import (
	"testing"

	"github.com/tricore-dbt/trcore/internal/tricore/cpustate"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
	"github.com/tricore-dbt/trcore/internal/tricore/opcodes"
)

// newBOContext builds a bare context for unit-testing a single format32
// decoder call directly, bypassing TranslateBlock's fetch/branch-state
// machinery -- narrower than driver_test.go's end-to-end scenarios, useful
// for pinning down exactly which IR ops one instruction word produces.
func newBOContext(r *ir.Recorder, g *cpustate.Globals, opcode uint32) *context {
	return &context{
		opts:   DefaultOptions(),
		b:      r,
		g:      g,
		opcode: opcode,
	}
}

// TestDecodeBOLoadByteFamily exercises LD.B under POSTINC, previously one
// of the BO families decodeBO didn't wire at all (spec review: only LD_W/
// ST_W/LD_A were reachable).
func TestDecodeBOLoadByteFamily(t *testing.T) {
	r, g := newHarness()
	// s1d=1 (bits 31:28), s2=2 (bits 11:8), op2=LD_W_POSTINC (bits 23:16).
	word := uint32(opcodes.OPC1_32_BO_LD_B | (2 << 8) | (opcodes.OPC2_32_BO_LD_W_POSTINC << 16) | (1 << 28))
	c := newBOContext(r, g, word)

	decodeBO(c, opcodes.OPC1_32_BO_LD_B, opcodes.OPC2_32_BO_LD_W_POSTINC)

	if r.TempCount() != 0 {
		t.Errorf("decodeBO(LD_B) leaked %d temps: %s", r.TempCount(), r.String())
	}
	found := false
	for _, op := range r.Ops {
		if op.Name == "qemu_ld" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a qemu_ld for LD.B, got: %s", r.String())
	}
}

// TestDecodeBOStoreAFamily exercises ST.A, a family the prior
// implementation had no case for at all.
func TestDecodeBOStoreAFamily(t *testing.T) {
	r, g := newHarness()
	word := uint32(opcodes.OPC1_32_BO_ST_A | (2 << 8) | (opcodes.OPC2_32_BO_ST_W_BR << 16) | (1 << 28))
	c := newBOContext(r, g, word)

	decodeBO(c, opcodes.OPC1_32_BO_ST_A, opcodes.OPC2_32_BO_ST_W_BR)

	if r.TempCount() != 0 {
		t.Errorf("decodeBO(ST_A/BR) leaked %d temps: %s", r.TempCount(), r.String())
	}
	if r.Ops[len(r.Ops)-1].Name != "br_update" {
		t.Errorf("last op = %q, want br_update: %s", r.Ops[len(r.Ops)-1].Name, r.String())
	}
}

// TestDecodeBOLoadDOffset exercises the paired LD.D family under the plain
// offset submode, the case that makes emit.OffsetLd2Regs reachable from a
// decoder for the first time (spec review comment on mem.go's dead paired-
// register emitters).
func TestDecodeBOLoadDOffset(t *testing.T) {
	r, g := newHarness()
	word := uint32(opcodes.OPC1_32_BO_LD_D | (2 << 8) | (opcodes.OPC2_32_BO_LD_D_OFFSET << 16) | (0 << 28))
	c := newBOContext(r, g, word)

	decodeBO(c, opcodes.OPC1_32_BO_LD_D, opcodes.OPC2_32_BO_LD_D_OFFSET)

	if r.TempCount() != 0 {
		t.Errorf("decodeBO(LD_D/OFFSET) leaked %d temps: %s", r.TempCount(), r.String())
	}
	count := 0
	for _, op := range r.Ops {
		if op.Name == "qemu_ld64" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("decodeBO(LD_D/OFFSET) emitted %d qemu_ld64 ops, want exactly 1 (atomic pair access): %s", count, r.String())
	}
}

// TestDecodeBOLoadDCircSingleFinalUpdate exercises the paired LD.D family
// under circular addressing end-to-end through the decoder, locking in the
// fixed single-final-update semantics at the decode level too.
func TestDecodeBOLoadDCircSingleFinalUpdate(t *testing.T) {
	r, g := newHarness()
	word := uint32(opcodes.OPC1_32_BO_LD_D | (2 << 8) | (opcodes.OPC2_32_BO_LD_W_CIRC << 16) | (0 << 28))
	c := newBOContext(r, g, word)

	decodeBO(c, opcodes.OPC1_32_BO_LD_D, opcodes.OPC2_32_BO_LD_W_CIRC)

	if r.TempCount() != 0 {
		t.Errorf("decodeBO(LD_D/CIRC) leaked %d temps: %s", r.TempCount(), r.String())
	}
	updates := 0
	for _, op := range r.Ops {
		if op.Name == "circ_update" {
			updates++
		}
	}
	if updates != 1 {
		t.Errorf("decodeBO(LD_D/CIRC) emitted %d circ_update calls, want exactly 1: %s", updates, r.String())
	}
}

// TestDecodeBOLdmstCirc exercises LDMST under BO-format circular
// addressing, previously only reachable through ABS-format absolute
// addressing.
func TestDecodeBOLdmstCirc(t *testing.T) {
	r, g := newHarness()
	word := uint32(opcodes.OPC1_32_BO_LDMST | (2 << 8) | (opcodes.OPC2_32_BO_LDMST_CIRC << 16) | (0 << 28))
	c := newBOContext(r, g, word)

	decodeBO(c, opcodes.OPC1_32_BO_LDMST, opcodes.OPC2_32_BO_LDMST_CIRC)

	if r.TempCount() != 0 {
		t.Errorf("decodeBO(LDMST/CIRC) leaked %d temps: %s", r.TempCount(), r.String())
	}
	if r.Ops[len(r.Ops)-1].Name != "circ_update" {
		t.Errorf("last op = %q, want circ_update: %s", r.Ops[len(r.Ops)-1].Name, r.String())
	}
}

// TestDecodeBOContextSave exercises the STLCX context-save family, a
// single offset-addressed submode with no register-pair or increment
// writeback of its own.
func TestDecodeBOContextSave(t *testing.T) {
	r, g := newHarness()
	word := uint32(opcodes.OPC1_32_BO_STLCX | (2 << 8))
	c := newBOContext(r, g, word)

	decodeBO(c, opcodes.OPC1_32_BO_STLCX, 0)

	if r.TempCount() != 0 {
		t.Errorf("decodeBO(STLCX) leaked %d temps: %s", r.TempCount(), r.String())
	}
	found := false
	for _, op := range r.Ops {
		if op.Name == "stlcx" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an stlcx call, got: %s", r.String())
	}
}

// TestDecodeBITNewOpcodes exercises the five BIT-format opcodes the prior
// implementation never wired: OR.T, XOR.T, SH.AND.T, INS.T, INSN.T.
func TestDecodeBITNewOpcodes(t *testing.T) {
	cases := []struct {
		name string
		op1  uint32
		want string
	}{
		{"OR_T", opcodes.OPC1_32_BIT_OR_T, "andi"},
		{"XOR_T", opcodes.OPC1_32_BIT_XOR_T, "andi"},
		{"SH_AND_T", opcodes.OPC1_32_BIT_SH_AND_T, "or"},
		{"INS_T", opcodes.OPC1_32_BIT_INS_T, "deposit"},
		{"INSN_T", opcodes.OPC1_32_BIT_INSN_T, "deposit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, g := newHarness()
			// s1=1 (bits 11:8), s2=2 (bits 15:12), d=3 (bits 31:28).
			word := tc.op1 | (1 << 8) | (2 << 12) | (3 << 28)
			c := newBOContext(r, g, word)

			decodeBIT(c, tc.op1)

			if r.TempCount() != 0 {
				t.Errorf("decodeBIT(%s) leaked %d temps: %s", tc.name, r.TempCount(), r.String())
			}
			last := r.Ops[len(r.Ops)-1]
			if last.Name != tc.want {
				t.Errorf("decodeBIT(%s) last op = %q, want %q: %s", tc.name, last.Name, tc.want, r.String())
			}
		})
	}
}
