package decode

import (
	"github.com/tricore-dbt/trcore/internal/tricore/emit"
	"github.com/tricore-dbt/trcore/internal/tricore/fields"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
	"github.com/tricore-dbt/trcore/internal/tricore/opcodes"
)

// decodeSRC handles the 16-bit SRC-format opcodes, grounded on
// decode_src_opc: a single register plus a 4-bit signed immediate.
func decodeSRC(c *context, op1 uint32) {
	r1 := fields.SRCS1D(c.opcode)
	const4 := fields.SRCConst4Sext(c.opcode)

	switch op1 {
	case opcodes.OPC1_16_SRC_ADD:
		emit.AddI(c.b, c.g, c.g.D[r1], c.g.D[r1], const4)
	case opcodes.OPC1_16_SRC_MOV:
		c.b.MovI(c.g.D[r1], const4)
	case opcodes.OPC1_16_SRC_SH:
		emit.Shi(c.b, c.g.D[r1], c.g.D[r1], const4)
	case opcodes.OPC1_16_SRC_SHA:
		emit.Shaci(c.b, c.g, c.g.D[r1], c.g.D[r1], const4)
	case opcodes.OPC1_16_SRC_CADD:
		emit.CondAddI(c.b, c.g, ir.CondNe, c.g.D[r1], const4, c.g.D[r1], c.g.D[15])
	case opcodes.OPC1_16_SRC_EQ:
		c.b.SetCondI(ir.CondEq, c.g.D[15], c.g.D[r1], const4)
	case opcodes.OPC1_16_SRC_LT:
		c.b.SetCondI(ir.CondLt, c.g.D[15], c.g.D[r1], const4)
	default:
		decodeError(c)
	}
}

// decodeSRR handles the 16-bit SRR-format register-register opcodes,
// grounded on decode_srr_opc.
func decodeSRR(c *context, op1 uint32) {
	r1 := fields.SRRS1D(c.opcode)
	r2 := fields.SRRS2(c.opcode)

	switch op1 {
	case opcodes.OPC1_16_SRR_ADD:
		emit.Add(c.b, c.g, c.g.D[r1], c.g.D[r1], c.g.D[r2])
	case opcodes.OPC1_16_SRR_SUB:
		emit.Sub(c.b, c.g, c.g.D[r1], c.g.D[r1], c.g.D[r2])
	case opcodes.OPC1_16_SRR_MUL:
		emit.MulI32S(c.b, c.g, c.g.D[r1], c.g.D[r1], c.g.D[r2])
	case opcodes.OPC1_16_SRR_AND:
		c.b.And(c.g.D[r1], c.g.D[r1], c.g.D[r2])
	case opcodes.OPC1_16_SRR_OR:
		c.b.Or(c.g.D[r1], c.g.D[r1], c.g.D[r2])
	case opcodes.OPC1_16_SRR_XOR:
		c.b.Xor(c.g.D[r1], c.g.D[r1], c.g.D[r2])
	case opcodes.OPC1_16_SRR_MOV:
		c.b.Mov(c.g.D[r1], c.g.D[r2])
	default:
		decodeError(c)
	}
}

// decodeSSR handles the 16-bit SSR-format stores, grounded on
// decode_ssr_opc.
func decodeSSR(c *context, op1 uint32) {
	r1 := fields.SSRS1(c.opcode)
	r2 := fields.SSRS2(c.opcode)

	switch op1 {
	case opcodes.OPC1_16_SSR_ST_A:
		c.b.QemuSt(c.g.A[r1], c.g.A[r2], ir.Width32, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_16_SSR_ST_W:
		c.b.QemuSt(c.g.D[r1], c.g.A[r2], ir.Width32, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_16_SSR_ST_B:
		c.b.QemuSt(c.g.D[r1], c.g.A[r2], ir.Width8, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_16_SSR_ST_H:
		c.b.QemuSt(c.g.D[r1], c.g.A[r2], ir.Width16, ir.LittleEndian, c.opts.MemIdx)
	default:
		decodeError(c)
	}
}

// decodeSC handles the 16-bit SC-format (8-bit immediate, implicit D[15]
// or A[10]), grounded on decode_sc_opc.
func decodeSC(c *context, op1 uint32) {
	const8 := fields.SCConst8(c.opcode)

	switch op1 {
	case opcodes.OPC1_16_SC_AND:
		c.b.AndI(c.g.D[15], c.g.D[15], const8)
	case opcodes.OPC1_16_SC_OR:
		c.b.OrI(c.g.D[15], c.g.D[15], const8)
	case opcodes.OPC1_16_SC_BISR:
		icr8 := icr8Const(c, const8)
		c.b.CallBISR(icr8)
		c.b.FreeTemp(icr8)
	default:
		decodeError(c)
	}
}

func icr8Const(c *context, v uint32) ir.Temp {
	t := c.b.NewTemp()
	c.b.MovI(t, int32(v))
	return t
}

// decodeSLR handles the 16-bit SLR-format loads through A[r2], grounded
// on decode_slr_opc. NOTE: the original QEMU translate.c decodes two of
// these LD.W variants with MO_LESW (sign-extended 16-bit) instead of a
// 32-bit load -- a known upstream encoding bug flagged in spec §9 open
// question 4. Per the decided resolution (SPEC_FULL.md §9.4) this
// implementation does NOT reproduce the bug: both LD.W variants always
// emit a full 32-bit load, matching opcodes.slrLdWBugNote's documented
// intent.
func decodeSLR(c *context, op1 uint32) {
	d := fields.SLRD(c.opcode)
	s2 := fields.SLRS2(c.opcode)

	switch op1 {
	case opcodes.OPC1_16_SLR_LD_W:
		c.b.QemuLd(c.g.D[d], c.g.A[s2], ir.Width32, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_16_SLR_LD_W_POSTINC:
		c.b.QemuLd(c.g.D[d], c.g.A[s2], ir.Width32, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
		c.b.AddI(c.g.A[s2], c.g.A[s2], 4)
	case opcodes.OPC1_16_SLR_LD_BU:
		c.b.QemuLd(c.g.D[d], c.g.A[s2], ir.Width8, ir.Unsigned, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_16_SLR_LD_BU_POSTINC:
		c.b.QemuLd(c.g.D[d], c.g.A[s2], ir.Width8, ir.Unsigned, ir.LittleEndian, c.opts.MemIdx)
		c.b.AddI(c.g.A[s2], c.g.A[s2], 1)
	case opcodes.OPC1_16_SLR_LD_H:
		c.b.QemuLd(c.g.D[d], c.g.A[s2], ir.Width16, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_16_SLR_LD_H_POSTINC:
		c.b.QemuLd(c.g.D[d], c.g.A[s2], ir.Width16, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
		c.b.AddI(c.g.A[s2], c.g.A[s2], 2)
	case opcodes.OPC1_16_SLR_LD_A:
		c.b.QemuLd(c.g.A[d], c.g.A[s2], ir.Width32, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_16_SLR_LD_A_POSTINC:
		c.b.QemuLd(c.g.A[d], c.g.A[s2], ir.Width32, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
		c.b.AddI(c.g.A[s2], c.g.A[s2], 4)
	default:
		decodeError(c)
	}
}

// decodeSRO handles the 16-bit SRO-format offset loads/stores, grounded
// on decode_sro_opc.
func decodeSRO(c *context, op1 uint32) {
	s2 := fields.SROS2(c.opcode)
	off4 := int32(fields.SROOff4(c.opcode))

	switch op1 {
	case opcodes.OPC1_16_SRO_LD_W:
		emit.OffsetLd(c.b, c.g.D[15], c.g.A[s2], off4*4, ir.Width32, ir.Signed, c.opts.MemIdx)
	case opcodes.OPC1_16_SRO_LD_BU:
		emit.OffsetLd(c.b, c.g.D[15], c.g.A[s2], off4, ir.Width8, ir.Unsigned, c.opts.MemIdx)
	case opcodes.OPC1_16_SRO_LD_A:
		emit.OffsetLd(c.b, c.g.A[15], c.g.A[s2], off4*4, ir.Width32, ir.Signed, c.opts.MemIdx)
	default:
		decodeError(c)
	}
}

// decodeSLRO handles the 16-bit SLRO-format (offset load into a fixed
// destination register), grounded on decode's SLRO family.
func decodeSLRO(c *context, op1 uint32) {
	d := fields.SLROD(c.opcode)
	off4 := int32(fields.SLROOff4(c.opcode))

	switch op1 {
	case opcodes.OPC1_16_SLRO_LD_W:
		emit.OffsetLd(c.b, c.g.D[d], c.g.A[15], off4*4, ir.Width32, ir.Signed, c.opts.MemIdx)
	case opcodes.OPC1_16_SLRO_LD_A:
		emit.OffsetLd(c.b, c.g.A[d], c.g.A[15], off4*4, ir.Width32, ir.Signed, c.opts.MemIdx)
	default:
		decodeError(c)
	}
}

// decodeSSRO handles the 16-bit SSRO-format (offset store from a fixed
// source register).
func decodeSSRO(c *context, op1 uint32) {
	s1 := fields.SSROS1(c.opcode)
	off4 := int32(fields.SSROOff4(c.opcode))

	switch op1 {
	case opcodes.OPC1_16_SSRO_ST_W:
		emit.OffsetSt(c.b, c.g.D[s1], c.g.A[15], off4*4, ir.Width32, c.opts.MemIdx)
	case opcodes.OPC1_16_SSRO_ST_A:
		emit.OffsetSt(c.b, c.g.A[s1], c.g.A[15], off4*4, ir.Width32, c.opts.MemIdx)
	default:
		decodeError(c)
	}
}

// decodeSRRS handles the 16-bit SRRS-format ADDSC.A (address-scale add),
// the 6-bit-major-opcode wart: bits [7:6] of the major byte hold the n
// field. decode16 routes on the full 8-bit major through FormatOf16 and
// does not mask it, so only the byte OPC1_16_SRRS_ADDSC_A itself (n = 0)
// reaches this function; the other three bytes sharing its low six bits go
// wherever FormatOf16 maps them. This function masks op1 with 0x3f before
// matching.
func decodeSRRS(c *context, op1 uint32) {
	s1d := fields.SRRSS1D(c.opcode)
	s2 := fields.SRRSS2(c.opcode)
	n := fields.SRRSN(c.opcode)

	switch op1 & 0x3f {
	case opcodes.OPC1_16_SRRS_ADDSC_A & 0x3f:
		shifted := c.b.NewTemp()
		defer c.b.FreeTemp(shifted)
		c.b.ShlI(shifted, c.g.D[15], n)
		c.b.Add(c.g.A[s1d], c.g.A[s2], shifted)
	default:
		decodeError(c)
	}
}

// decodeSB handles the 16-bit SB-format unconditional jumps/calls,
// dispatched through computeBranch (gen_compute_branch).
func decodeSB(c *context, op1 uint32) {
	disp8 := fields.SBDisp8Sext(c.opcode)
	computeBranch(c, op1, 0, 0, 0, disp8)
}

// decodeSBC handles the 16-bit SBC-format compare-immediate branches.
func decodeSBC(c *context, op1 uint32) {
	disp4 := fields.SBCDisp4(c.opcode)
	const4 := fields.SBCConst4Sext(c.opcode)
	computeBranch(c, op1, 0, 0, const4, disp4)
}

// decodeSBRN handles the 16-bit SBRN-format bit-test branches.
func decodeSBRN(c *context, op1 uint32) {
	disp4 := fields.SBRNDisp4(c.opcode)
	n := fields.SBRNN(c.opcode)
	computeBranch(c, op1, 0, 0, int32(n), disp4)
}

// decodeSBR handles the 16-bit SBR-format register-test branches and the
// LOOP instruction (spec §6 supplement item 4/driver §4.7 worked example).
func decodeSBR(c *context, op1 uint32) {
	r1 := fields.SBRS2(c.opcode)
	disp4 := fields.SBRDisp4(c.opcode)
	computeBranch(c, op1, int(r1), 0, 0, disp4)
}

// decodeSR handles the 16-bit SR-format single-register system opcodes
// (RET, RFE, JI, DEBUG and NOT), grounded on decode_sr_system/decode_sr_accu.
func decodeSR(c *context, op1 uint32) {
	r1 := fields.SRS1D(c.opcode)
	op2 := fields.SROP2(c.opcode)

	switch {
	case op1 == opcodes.OPC1_16_SR_JI:
		t := c.b.NewTemp()
		defer c.b.FreeTemp(t)
		c.b.AndI(t, c.g.A[r1], 0xFFFFFFFE)
		c.b.Mov(c.g.PC, t)
		c.b.ExitTB(false, 0)
		c.bstate = StateBranch
	case op1 == opcodes.OPC1_16_SR_NOT:
		c.b.Not(c.g.D[r1], c.g.D[r1])
	case op2 == opcodes.OPC2_16_SR_RET:
		c.b.CallRet()
		c.b.ExitTB(false, 0)
		c.bstate = StateBranch
	case op2 == opcodes.OPC2_16_SR_RFE:
		c.b.CallRFE()
		c.b.ExitTB(false, 0)
		c.bstate = StateBranch
	case op2 == opcodes.OPC2_16_SR_DEBUG:
		// spec §9 open question 2: DEBUG emits a debug trap call and
		// stops the block as an exception, it does not fall through.
		c.b.CallDebugTrap(c.pc)
		c.bstate = StateExcp
	default:
		decodeError(c)
	}
}

// decode16 dispatches a 16-bit instruction word to its format decoder,
// grounded on decode_16Bit_opc.
func decode16(c *context) {
	op1 := fields.Major(c.opcode)
	switch opcodes.FormatOf16(op1) {
	case opcodes.FormatSRC:
		decodeSRC(c, op1)
	case opcodes.FormatSRR:
		decodeSRR(c, op1)
	case opcodes.FormatSSR:
		decodeSSR(c, op1)
	case opcodes.FormatSC:
		decodeSC(c, op1)
	case opcodes.FormatSLR:
		decodeSLR(c, op1)
	case opcodes.FormatSRO:
		decodeSRO(c, op1)
	case opcodes.FormatSLRO:
		decodeSLRO(c, op1)
	case opcodes.FormatSSRO:
		decodeSSRO(c, op1)
	case opcodes.FormatSRRS:
		decodeSRRS(c, op1)
	case opcodes.FormatSB:
		decodeSB(c, op1)
	case opcodes.FormatSBC:
		decodeSBC(c, op1)
	case opcodes.FormatSBRN:
		decodeSBRN(c, op1)
	case opcodes.FormatSBR:
		decodeSBR(c, op1)
	case opcodes.FormatSR:
		decodeSR(c, op1)
	default:
		decodeError(c)
	}
}
