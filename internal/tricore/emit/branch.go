package emit

import "github.com/tricore-dbt/trcore/internal/tricore/ir"

// BlockContext carries the per-block addressing state the original's
// DisasContext held (tb start pc, pc, next_pc, singlestep flag), the
// minimum gen_goto_tb/gen_branch_cond/gen_loop need to decide chaining.
type BlockContext struct {
	TBPageBase        uint32 // start PC of the translation block; masked with PageMask when compared
	PageMask          uint32
	PC                uint32
	NextPC            uint32
	SingleStepEnabled bool
}

// samePage reports whether dest lies on the same guest page as the block's
// translation-block start, the block-chaining gate condition from
// gen_goto_tb.
func (c *BlockContext) samePage(dest uint32) bool {
	return (c.TBPageBase & c.PageMask) == (dest & c.PageMask)
}

// GotoTB emits a chained jump to dest when safe (same page, not
// single-stepping), else an unconditional block exit. Grounded on
// gen_goto_tb.
func GotoTB(b ir.Builder, c *BlockContext, n int, dest uint32) {
	if c.samePage(dest) && !c.SingleStepEnabled {
		b.GotoTB(n)
		b.SaveGuestPC(dest)
		b.ExitTB(true, n)
		return
	}
	b.SaveGuestPC(dest)
	if c.SingleStepEnabled {
		// single-step: the embedder's exception path raises the debug
		// trap on resume, not here -- see CallDebugTrap at decode time.
	}
	b.ExitTB(false, 0)
}

// BranchCond emits a conditional branch to pc+address*2, falling through
// to next_pc otherwise, grounded on gen_branch_cond.
func BranchCond(b ir.Builder, c *BlockContext, cond ir.Cond, r1, r2 ir.Temp, address int32) {
	l := b.NewLabel()
	b.BrCond(cond, r1, r2, l)

	GotoTB(b, c, 1, c.NextPC)

	b.SetLabel(l)
	GotoTB(b, c, 0, uint32(int32(c.PC)+address*2))
}

// BranchCondI is BranchCond with an immediate right-hand operand, grounded
// on gen_branch_condi.
func BranchCondI(b ir.Builder, c *BlockContext, cond ir.Cond, r1 ir.Temp, imm int32, address int32) {
	t := b.NewTemp()
	defer b.FreeTemp(t)
	b.MovI(t, imm)
	BranchCond(b, c, cond, r1, t, address)
}

// Loop emits LOOP: A[r1]--; if A[r1] != -1 goto pc+offset else fall
// through to next_pc. Grounded on gen_loop (the -1 sentinel, not zero, is
// the architectural loop-exit test).
func Loop(b ir.Builder, c *BlockContext, areg ir.Temp, offset int32) {
	l := b.NewLabel()
	b.SubI(areg, areg, 1)
	b.BrCondI(ir.CondEq, areg, -1, l)
	GotoTB(b, c, 1, uint32(int32(c.PC)+offset))
	b.SetLabel(l)
	GotoTB(b, c, 0, c.NextPC)
}
