package decode

import (
	"fmt"

	"github.com/tricore-dbt/trcore/internal/tricore/emit"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
	"github.com/tricore-dbt/trcore/internal/tricore/opcodes"
)

// computeBranch is the tagged-variant dispatcher replacing gen_compute_branch:
// every control-flow opcode, 16- or 32-bit, routes through here and the
// switch always ends with bstate set to StateBranch (spec §6 supplement
// item 4 -- the original's default-arm/unconditional post-switch
// assignment). r1 is a register index where the opcode carries one (SBR,
// BO); const is the SBC/SBRN constant/bit-position field; offset is the
// displacement already extracted in instruction-count units appropriate
// to its format.
func computeBranch(c *context, opc uint32, r1 int, _ int, constant int32, offset int32) {
	switch opc {
	case opcodes.OPC1_16_SB_J, opcodes.OPC1_32_B_J:
		emit.GotoTB(c.b, c.blk, 0, uint32(int32(c.pc)+offset*2))

	case opcodes.OPC1_16_SB_CALL, opcodes.OPC1_32_B_CALL:
		ret := savedNextPC(c)
		c.b.CallCall(ret)
		c.b.FreeTemp(ret)
		emit.GotoTB(c.b, c.blk, 0, uint32(int32(c.pc)+offset*2))

	case opcodes.OPC1_16_SB_JZ:
		emit.BranchCondI(c.b, c.blk, ir.CondEq, c.g.D[15], 0, offset)
	case opcodes.OPC1_16_SB_JNZ:
		emit.BranchCondI(c.b, c.blk, ir.CondNe, c.g.D[15], 0, offset)

	case opcodes.OPC1_16_SBC_JEQ:
		emit.BranchCondI(c.b, c.blk, ir.CondEq, c.g.D[15], constant, offset)
	case opcodes.OPC1_16_SBC_JNE:
		emit.BranchCondI(c.b, c.blk, ir.CondNe, c.g.D[15], constant, offset)

	case opcodes.OPC1_16_SBRN_JZ_T:
		bitBranch(c, ir.CondEq, constant, offset)
	case opcodes.OPC1_16_SBRN_JNZ_T:
		bitBranch(c, ir.CondNe, constant, offset)

	case opcodes.OPC1_16_SBR_JEQ:
		emit.BranchCond(c.b, c.blk, ir.CondEq, c.g.D[r1], c.g.D[15], offset)
	case opcodes.OPC1_16_SBR_JNE:
		emit.BranchCond(c.b, c.blk, ir.CondNe, c.g.D[r1], c.g.D[15], offset)
	case opcodes.OPC1_16_SBR_JNZ:
		emit.BranchCondI(c.b, c.blk, ir.CondNe, c.g.D[r1], 0, offset)
	case opcodes.OPC1_16_SBR_JNZ_A:
		emit.BranchCondI(c.b, c.blk, ir.CondNe, c.g.A[r1], 0, offset)
	case opcodes.OPC1_16_SBR_JGEZ:
		emit.BranchCondI(c.b, c.blk, ir.CondGe, c.g.D[r1], 0, offset)
	case opcodes.OPC1_16_SBR_JGTZ:
		emit.BranchCondI(c.b, c.blk, ir.CondGt, c.g.D[r1], 0, offset)
	case opcodes.OPC1_16_SBR_JLEZ:
		emit.BranchCondI(c.b, c.blk, ir.CondLe, c.g.D[r1], 0, offset)
	case opcodes.OPC1_16_SBR_JLTZ:
		emit.BranchCondI(c.b, c.blk, ir.CondLt, c.g.D[r1], 0, offset)
	case opcodes.OPC1_16_SBR_JZ:
		emit.BranchCondI(c.b, c.blk, ir.CondEq, c.g.D[r1], 0, offset)
	case opcodes.OPC1_16_SBR_JZ_A:
		emit.BranchCondI(c.b, c.blk, ir.CondEq, c.g.A[r1], 0, offset)
	case opcodes.OPC1_16_SBR_LOOP:
		emit.Loop(c.b, c.blk, c.g.A[r1], offset*2-32)

	case opcodes.OPC1_32_B_JL:
		ret := savedNextPC(c)
		c.b.Mov(c.g.A[11], ret)
		c.b.FreeTemp(ret)
		emit.GotoTB(c.b, c.blk, 0, uint32(int32(c.pc)+offset*2))

	default:
		// spec §6 supplement item 4: every matched branch opcode falls
		// into StateBranch unconditionally; an opcode this switch does
		// not recognize is a decode error instead (spec §7 taxonomy
		// item 1), not a silently-accepted branch.
		decodeError(c)
		return
	}
	c.bstate = StateBranch
}

func bitBranch(c *context, cond ir.Cond, bitPos int32, offset int32) {
	temp := c.b.NewTemp()
	defer c.b.FreeTemp(temp)
	c.b.AndI(temp, c.g.D[15], uint32(1)<<uint32(bitPos))
	emit.BranchCondI(c.b, c.blk, cond, temp, 0, offset)
}

// savedNextPC materializes ctx.next_pc as an immediate temp for CALL/JL's
// link-register writeback. The caller frees the returned temp.
func savedNextPC(c *context) ir.Temp {
	t := c.b.NewTemp()
	c.b.MovI(t, int32(c.nextPC))
	return t
}

// decodeError is spec §7 error taxonomy item 1: an opcode matches the
// size classification (16/32) but has no case under its format decoder's
// dispatch. Policy is a plain diagnostic and a clean block stop -- no
// helper call, since nothing architecturally illegal has been observed,
// just an encoding this decoder doesn't recognize (emitting partial IR for
// it would be worse than stopping one instruction early).
func decodeError(c *context) {
	c.opts.logger().Error("decode error: unrecognized opcode",
		"pc", fmt.Sprintf("0x%x", c.pc), "opcode", fmt.Sprintf("0x%x", c.opcode))
	c.bstate = StateBranch
}

// illegalOpcode is spec §7 error taxonomy item 2: an opcode is
// architecturally illegal under the current CPU feature level (e.g.
// CACHEI.W on a post-1.3 core, spec §6 supplement item 6). Policy is to
// emit a call to the exception helper and end the block as an exception,
// distinct from decodeError's plain stop.
func illegalOpcode(c *context) {
	c.opts.logger().Error("illegal opcode trap",
		"pc", fmt.Sprintf("0x%x", c.pc), "opcode", fmt.Sprintf("0x%x", c.opcode))
	c.b.CallIllegalOpcode(c.pc)
	c.bstate = StateExcp
}
