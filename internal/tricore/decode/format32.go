package decode

import (
	"github.com/tricore-dbt/trcore/internal/tricore/emit"
	"github.com/tricore-dbt/trcore/internal/tricore/fields"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
	"github.com/tricore-dbt/trcore/internal/tricore/opcodes"
)

// decodeABS handles the 32-bit ABS-format absolute-addressed loads,
// stores, LDMST and SWAP.W, grounded on decode_abs_ldw/decode_abs_store/
// decode_abs_ldst_swap. The 18-bit absolute address field is reassembled
// by fields.ABSOff18 exactly as EA_ABS_FORMAT does. Every ABS mnemonic
// gets a distinct Op1 value in this catalog (spec §4.1 dispatch is total
// over one-opcode-per-byte formats), so dispatch keys on op1 directly
// rather than the Op2 sub-byte the BO/ABSB families use.
func decodeABS(c *context, op1 uint32) {
	r1 := fields.ABSS1D(c.opcode)
	ea := fields.ABSOff18(c.opcode)

	addr := c.b.NewTemp()
	defer c.b.FreeTemp(addr)
	c.b.MovI(addr, int32(ea))

	switch op1 {
	case opcodes.OPC1_32_ABS_LD_W:
		c.b.QemuLd(c.g.D[r1], addr, ir.Width32, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_LD_H:
		c.b.QemuLd(c.g.D[r1], addr, ir.Width16, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_LD_HU:
		c.b.QemuLd(c.g.D[r1], addr, ir.Width16, ir.Unsigned, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_LD_B:
		c.b.QemuLd(c.g.D[r1], addr, ir.Width8, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_LD_BU:
		c.b.QemuLd(c.g.D[r1], addr, ir.Width8, ir.Unsigned, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_LD_A:
		c.b.QemuLd(c.g.A[r1], addr, ir.Width32, ir.Signed, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_ST_W:
		c.b.QemuSt(c.g.D[r1], addr, ir.Width32, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_ST_H:
		c.b.QemuSt(c.g.D[r1], addr, ir.Width16, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_ST_B:
		c.b.QemuSt(c.g.D[r1], addr, ir.Width8, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_ST_A:
		c.b.QemuSt(c.g.A[r1], addr, ir.Width32, ir.LittleEndian, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_LDMST:
		evenR := fields.EvenPairOrZero(r1)
		emit.Ldmst(c.b, c.g.D[evenR], c.g.D[evenR+1], addr, c.opts.MemIdx)
	case opcodes.OPC1_32_ABS_SWAP_W:
		emit.Swap(c.b, c.g.D[r1], addr, c.opts.MemIdx)
	default:
		decodeError(c)
	}
}

// decodeABSB handles the 32-bit ABSB-format bit-store and CACHEI.W.
// CACHEI.W's pre-/post-increment address-register update is gated behind
// the pre-1.3 feature flag, spec §6 supplement item 6: post-1.3 cores
// raise illegal-opcode instead of updating the address register.
func decodeABSB(c *context) {
	if c.opts.Features&FeatureFlag13 != 0 {
		illegalOpcode(c)
		return
	}
	r2 := fields.ABSS1D(c.opcode)
	c.b.AddI(c.g.A[r2], c.g.A[r2], 4)
}

// decodeB handles the 32-bit B-format far jumps/calls, dispatched through
// computeBranch with the address reconstituted via fields.BDisp24Raw +
// EABAbsolute for the absolute (JA/JLA/CALLA) variants, or pc-relative
// displacement for J/JL/CALL.
func decodeB(c *context, op1 uint32) {
	raw := fields.BDisp24Raw(c.opcode)

	switch op1 {
	case opcodes.OPC1_32_B_JA, opcodes.OPC1_32_B_CALLA:
		dest := fields.EABAbsolute(raw)
		if op1 == opcodes.OPC1_32_B_CALLA {
			ret := savedNextPC(c)
			c.b.CallCall(ret)
			c.b.FreeTemp(ret)
		}
		emit.GotoTB(c.b, c.blk, 0, dest)
		c.bstate = StateBranch
	case opcodes.OPC1_32_B_JLA:
		// spec §6 supplement item 5: JLA writes A[11] then falls through
		// into the same body as JA (the original's case-fallthrough).
		ret := savedNextPC(c)
		c.b.Mov(c.g.A[11], ret)
		c.b.FreeTemp(ret)
		dest := fields.EABAbsolute(raw)
		emit.GotoTB(c.b, c.blk, 0, dest)
		c.bstate = StateBranch
	default:
		computeBranch(c, op1, 0, 0, 0, int32(raw))
	}
}

// decodeBIT handles the 32-bit BIT-format two-source bit operations,
// grounded on decode_bit_logical_t/decode_bit_andacc.
func decodeBIT(c *context, op1 uint32) {
	s1 := fields.BITS1(c.opcode)
	s2 := fields.BITS2(c.opcode)
	d := fields.BITD(c.opcode)
	pos1 := fields.BITPos1(c.opcode)
	pos2 := fields.BITPos2(c.opcode)

	switch op1 {
	case opcodes.OPC1_32_BIT_AND_T:
		emit.Bit1Op(c.b, c.g.D[d], c.g.D[s1], c.g.D[s2], pos1, pos2, ir.BitAnd)
	case opcodes.OPC1_32_BIT_AND_AND_T:
		emit.Bit2Op(c.b, c.g.D[d], c.g.D[s1], c.g.D[s2], pos1, pos2, ir.BitAnd, ir.BitAnd)
	case opcodes.OPC1_32_BIT_OR_T:
		emit.Bit1Op(c.b, c.g.D[d], c.g.D[s1], c.g.D[s2], pos1, pos2, ir.BitOr)
	case opcodes.OPC1_32_BIT_XOR_T:
		emit.Bit1Op(c.b, c.g.D[d], c.g.D[s1], c.g.D[s2], pos1, pos2, ir.BitXor)
	case opcodes.OPC1_32_BIT_SH_AND_T:
		emit.BitShLogic(c.b, c.g.D[d], c.g.D[s1], c.g.D[s2], pos1, pos2, ir.BitAnd)
	case opcodes.OPC1_32_BIT_INS_T:
		emit.BitInsert(c.b, c.g.D[d], c.g.D[s1], c.g.D[s2], pos1, pos2, false)
	case opcodes.OPC1_32_BIT_INSN_T:
		emit.BitInsert(c.b, c.g.D[d], c.g.D[s1], c.g.D[s2], pos1, pos2, true)
	default:
		decodeError(c)
	}
}

// decodeBOLoad handles the common 4-submode BO load family
// (POSTINC/PREINC/BR/CIRC) shared by LD_W/LD_B/LD_BU/LD_H/LD_HU, grounded
// on decode_bo_addrmode_ld_post_pre_base. Factored out so every byte/
// halfword/word load family (previously only LD_W was wired) shares one
// dispatch body instead of five copy-pasted switches.
func decodeBOLoad(c *context, op2 uint32, dst, base, baseHigh ir.Temp, off10 int32, w ir.Width, s ir.Sign) {
	switch op2 {
	case opcodes.OPC2_32_BO_LD_W_POSTINC:
		emit.LdPostincr(c.b, dst, base, off10, w, s, c.opts.MemIdx)
	case opcodes.OPC2_32_BO_LD_W_PREINC:
		emit.LdPreincr(c.b, dst, base, off10, w, s, c.opts.MemIdx)
	case opcodes.OPC2_32_BO_LD_W_BR:
		emit.BrLd(c.b, dst, base, baseHigh, w, s, c.opts.MemIdx)
	case opcodes.OPC2_32_BO_LD_W_CIRC:
		emit.CircLd(c.b, dst, base, baseHigh, w, s, off10, c.opts.MemIdx)
	default:
		decodeError(c)
	}
}

// decodeBOStore is decodeBOLoad's store counterpart, grounded on
// decode_bo_addrmode_post_pre_base, shared by ST_W/ST_A/ST_B/ST_H.
func decodeBOStore(c *context, op2 uint32, src, base, baseHigh ir.Temp, off10 int32, w ir.Width) {
	switch op2 {
	case opcodes.OPC2_32_BO_ST_W_POSTINC:
		emit.StPostincr(c.b, src, base, off10, w, c.opts.MemIdx)
	case opcodes.OPC2_32_BO_ST_W_PREINC:
		emit.StPreincr(c.b, src, base, off10, w, c.opts.MemIdx)
	case opcodes.OPC2_32_BO_ST_W_BR:
		emit.BrSt(c.b, src, base, baseHigh, w, c.opts.MemIdx)
	case opcodes.OPC2_32_BO_ST_W_CIRC:
		emit.CircSt(c.b, src, base, baseHigh, w, off10, c.opts.MemIdx)
	default:
		decodeError(c)
	}
}

// decodeBO handles the 32-bit BO-format base+offset addressing modes,
// grounded on decode_bo_addrmode_ld_post_pre_base /
// decode_bo_addrmode_post_pre_base / decode_bo_ldmst_bol /
// decode_bo_addrmode_stctx_post_pre_base, the functions the original
// splits this format's Op1 families across. Op2 then selects the
// addressing submode (post-/pre-increment, bit-reverse, circular) within
// whichever Op1 family matched, so op1 must gate the op2 switch -- the
// submode constants are deliberately reused across families (spec §4.1's
// "sparse opcode switch" note; see opcodes.OPC2_32_BO_* doc comment).
func decodeBO(c *context, op1, op2 uint32) {
	s1d := fields.BOS1D(c.opcode)
	s2 := fields.BOS2(c.opcode)
	off10 := fields.BODisp10Sext(c.opcode)
	pairS2 := fields.EvenPairOrZero(s2)
	pairS1D := fields.EvenPairOrZero(s1d)

	switch op1 {
	case opcodes.OPC1_32_BO_LD_W_POSTINC:
		decodeBOLoad(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width32, ir.Signed)
	case opcodes.OPC1_32_BO_LD_B:
		decodeBOLoad(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width8, ir.Signed)
	case opcodes.OPC1_32_BO_LD_BU:
		decodeBOLoad(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width8, ir.Unsigned)
	case opcodes.OPC1_32_BO_LD_H:
		decodeBOLoad(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width16, ir.Signed)
	case opcodes.OPC1_32_BO_LD_HU:
		decodeBOLoad(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width16, ir.Unsigned)

	case opcodes.OPC1_32_BO_ST_W_POSTINC:
		decodeBOStore(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width32)
	case opcodes.OPC1_32_BO_ST_A:
		decodeBOStore(c, op2, c.g.A[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width32)
	case opcodes.OPC1_32_BO_ST_B:
		decodeBOStore(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width8)
	case opcodes.OPC1_32_BO_ST_H:
		decodeBOStore(c, op2, c.g.D[s1d], c.g.A[s2], c.g.A[pairS2+1], off10, ir.Width16)

	case opcodes.OPC1_32_BO_LD_A_BR: // LD_A family: BR/CIRC only
		switch op2 {
		case opcodes.OPC2_32_BO_LD_A_BR:
			emit.BrLd(c.b, c.g.A[s1d], c.g.A[s2], c.g.A[pairS2+1], ir.Width32, ir.Signed, c.opts.MemIdx)
		case opcodes.OPC2_32_BO_LD_A_CIRC:
			emit.CircLd(c.b, c.g.A[s1d], c.g.A[s2], c.g.A[pairS2+1], ir.Width32, ir.Signed, off10, c.opts.MemIdx)
		default:
			decodeError(c)
		}

	// Paired-register 64-bit families (spec §4.4/§9 open question 3): each
	// submode exercises a different emit.*2Regs64 primitive -- OFFSET uses
	// the plain base+off10 atomic access, POSTINC updates the base after
	// reading/writing the pair, CIRC advances the packed index through
	// emit.CircLd2Regs64/CircSt2Regs64's single final circ_update.
	case opcodes.OPC1_32_BO_LD_D:
		switch op2 {
		case opcodes.OPC2_32_BO_LD_D_OFFSET:
			emit.OffsetLd2Regs(c.b, c.g.D[pairS1D+1], c.g.D[pairS1D], c.g.A[s2], off10, c.opts.MemIdx)
		case opcodes.OPC2_32_BO_LD_W_POSTINC:
			emit.Ld2Regs64(c.b, c.g.D[pairS1D+1], c.g.D[pairS1D], c.g.A[s2], c.opts.MemIdx)
			c.b.AddI(c.g.A[s2], c.g.A[s2], 8)
		case opcodes.OPC2_32_BO_LD_W_CIRC:
			emit.CircLd2Regs64(c.b, c.g.D[pairS1D], c.g.D[pairS1D+1], c.g.A[s2], c.g.A[pairS2+1], off10, c.opts.MemIdx)
		default:
			decodeError(c)
		}
	case opcodes.OPC1_32_BO_LD_DA:
		switch op2 {
		case opcodes.OPC2_32_BO_LD_D_OFFSET:
			emit.OffsetLd2Regs(c.b, c.g.A[pairS1D+1], c.g.A[pairS1D], c.g.A[s2], off10, c.opts.MemIdx)
		case opcodes.OPC2_32_BO_LD_W_POSTINC:
			emit.Ld2Regs64(c.b, c.g.A[pairS1D+1], c.g.A[pairS1D], c.g.A[s2], c.opts.MemIdx)
			c.b.AddI(c.g.A[s2], c.g.A[s2], 8)
		case opcodes.OPC2_32_BO_LD_W_CIRC:
			emit.CircLd2Regs64(c.b, c.g.A[pairS1D], c.g.A[pairS1D+1], c.g.A[s2], c.g.A[pairS2+1], off10, c.opts.MemIdx)
		default:
			decodeError(c)
		}
	case opcodes.OPC1_32_BO_ST_D:
		switch op2 {
		case opcodes.OPC2_32_BO_ST_D_OFFSET:
			emit.OffsetSt2Regs(c.b, c.g.D[pairS1D+1], c.g.D[pairS1D], c.g.A[s2], off10, c.opts.MemIdx)
		case opcodes.OPC2_32_BO_ST_W_POSTINC:
			emit.St2Regs64(c.b, c.g.D[pairS1D+1], c.g.D[pairS1D], c.g.A[s2], c.opts.MemIdx)
			c.b.AddI(c.g.A[s2], c.g.A[s2], 8)
		case opcodes.OPC2_32_BO_ST_W_CIRC:
			emit.CircSt2Regs64(c.b, c.g.D[pairS1D], c.g.D[pairS1D+1], c.g.A[s2], c.g.A[pairS2+1], off10, c.opts.MemIdx)
		default:
			decodeError(c)
		}
	case opcodes.OPC1_32_BO_ST_DA:
		switch op2 {
		case opcodes.OPC2_32_BO_ST_D_OFFSET:
			emit.OffsetSt2Regs(c.b, c.g.A[pairS1D+1], c.g.A[pairS1D], c.g.A[s2], off10, c.opts.MemIdx)
		case opcodes.OPC2_32_BO_ST_W_POSTINC:
			emit.St2Regs64(c.b, c.g.A[pairS1D+1], c.g.A[pairS1D], c.g.A[s2], c.opts.MemIdx)
			c.b.AddI(c.g.A[s2], c.g.A[s2], 8)
		case opcodes.OPC2_32_BO_ST_W_CIRC:
			emit.CircSt2Regs64(c.b, c.g.A[pairS1D], c.g.A[pairS1D+1], c.g.A[s2], c.g.A[pairS2+1], off10, c.opts.MemIdx)
		default:
			decodeError(c)
		}

	// ST.Q: a single offset-addressed submode, no post/pre/circ variant.
	// Stores the rounded upper half-word of D[s1d]; this implementation
	// truncates rather than rounds (no rounding-mode input is available at
	// decode time), a documented simplification, not a silent guess.
	case opcodes.OPC1_32_BO_ST_Q:
		hi := c.b.NewTemp()
		defer c.b.FreeTemp(hi)
		c.b.ShrI(hi, c.g.D[s1d], 16)
		emit.OffsetSt(c.b, hi, c.g.A[s2], off10, ir.Width16, c.opts.MemIdx)

	// LDMST/SWAP.W under BO-format bit-reverse/circular addressing (spec
	// review: previously only reachable through ABS-format absolute
	// addressing).
	case opcodes.OPC1_32_BO_LDMST:
		switch op2 {
		case opcodes.OPC2_32_BO_LDMST_BR:
			ea := emit.CircEA(c.b, c.g.A[s2], c.g.A[pairS2+1])
			emit.Ldmst(c.b, c.g.D[pairS1D], c.g.D[pairS1D+1], ea, c.opts.MemIdx)
			c.b.FreeTemp(ea)
			c.b.CallBRUpdate(c.g.A[pairS2+1])
		case opcodes.OPC2_32_BO_LDMST_CIRC:
			ea := emit.CircEA(c.b, c.g.A[s2], c.g.A[pairS2+1])
			emit.Ldmst(c.b, c.g.D[pairS1D], c.g.D[pairS1D+1], ea, c.opts.MemIdx)
			c.b.FreeTemp(ea)
			c.b.CallCircUpdate(c.g.A[pairS2+1], off10)
		default:
			decodeError(c)
		}
	case opcodes.OPC1_32_BO_SWAP:
		switch op2 {
		case opcodes.OPC2_32_BO_SWAP_BR:
			ea := emit.CircEA(c.b, c.g.A[s2], c.g.A[pairS2+1])
			emit.Swap(c.b, c.g.D[s1d], ea, c.opts.MemIdx)
			c.b.FreeTemp(ea)
			c.b.CallBRUpdate(c.g.A[pairS2+1])
		case opcodes.OPC2_32_BO_SWAP_CIRC:
			ea := emit.CircEA(c.b, c.g.A[s2], c.g.A[pairS2+1])
			emit.Swap(c.b, c.g.D[s1d], ea, c.opts.MemIdx)
			c.b.FreeTemp(ea)
			c.b.CallCircUpdate(c.g.A[pairS2+1], off10)
		default:
			decodeError(c)
		}

	// Context save/restore (spec §6 helper calls): a single offset-addressed
	// submode, no register-pair or increment writeback of its own -- the
	// context-save-area bookkeeping lives entirely in the helper.
	case opcodes.OPC1_32_BO_LDLCX:
		ea := c.b.NewTemp()
		defer c.b.FreeTemp(ea)
		c.b.AddI(ea, c.g.A[s2], off10)
		c.b.CallLDLCX(ea)
	case opcodes.OPC1_32_BO_LDUCX:
		ea := c.b.NewTemp()
		defer c.b.FreeTemp(ea)
		c.b.AddI(ea, c.g.A[s2], off10)
		c.b.CallLDUCX(ea)
	case opcodes.OPC1_32_BO_STLCX:
		ea := c.b.NewTemp()
		defer c.b.FreeTemp(ea)
		c.b.AddI(ea, c.g.A[s2], off10)
		c.b.CallSTLCX(ea)
	case opcodes.OPC1_32_BO_STUCX:
		ea := c.b.NewTemp()
		defer c.b.FreeTemp(ea)
		c.b.AddI(ea, c.g.A[s2], off10)
		c.b.CallSTUCX(ea)

	default:
		decodeError(c)
	}
}

// decode32 dispatches a 32-bit instruction word to its format decoder,
// grounded on decode_32Bit_opc. The Op2 byte for BIT/BO formats shares the
// bit position convention fields.Op2Byte extracts; ABS dispatches on Op1
// alone (see decodeABS).
func decode32(c *context) {
	op1 := fields.Major(c.opcode)
	op2 := fields.Op2Byte(c.opcode)

	switch opcodes.FormatOf32(op1) {
	case opcodes.FormatABS:
		decodeABS(c, op1)
	case opcodes.FormatABSB:
		decodeABSB(c)
	case opcodes.FormatB:
		decodeB(c, op1)
	case opcodes.FormatBIT:
		decodeBIT(c, op1)
	case opcodes.FormatBO:
		decodeBO(c, op1, op2)
	default:
		decodeError(c)
	}
}
