package decode

import (
	"fmt"

	"github.com/tricore-dbt/trcore/internal/tricore/cpustate"
	"github.com/tricore-dbt/trcore/internal/tricore/emit"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
)

// PageMask isolates the start-of-page bits of a guest address for the
// goto_tb same-page chaining gate (spec §4.5/§8 "Branch chaining gate").
// TriCore's MMU page size is 4KiB, matching the original's TARGET_PAGE_MASK.
const PageMask uint32 = 0xFFFFF000

// Environment is the fetch-side external collaborator (spec §6 "Inputs
// consumed from collaborators"): reading the next opcode word from guest
// memory. A harmless 2-byte over-read past the end of a short block is
// acceptable, since 16-bit instructions only ever consume the low 16 bits
// of the returned word.
type Environment interface {
	FetchCode(pc uint32) uint32
}

// TranslateBlock runs the top-level driver algorithm of spec §4.7: fetch,
// classify 16- vs 32-bit, dispatch to the matching format decoder, repeat
// until a control-flow boundary or buffer-size limit, then finalize the
// block. b is the IR builder the embedder supplies; g is the set of guest
// register globals declared once by cpustate.DeclareGlobals at translator
// startup (spec §2 "Initialization" component) and shared across blocks.
func TranslateBlock(b ir.Builder, g *cpustate.Globals, env Environment, startPC uint32, opts Options) BlockResult {
	startTemps := b.TempCount()

	blk := &emit.BlockContext{
		TBPageBase:        startPC,
		PageMask:          PageMask,
		SingleStepEnabled: opts.SingleStepEnabled,
	}
	c := &context{
		opts: opts,
		b:    b,
		g:    g,
		blk:  blk,
		pc:   startPC,
	}

	count := 0
	for c.bstate == StateNone {
		c.opcode = env.FetchCode(c.pc)

		if c.opcode&1 == 0 {
			c.nextPC = c.pc + 2
		} else {
			c.nextPC = c.pc + 4
		}
		blk.PC = c.pc
		blk.NextPC = c.nextPC

		c.pcMap = append(c.pcMap, PCMapEntry{Index: c.opIndex, PC: c.pc})

		if c.opcode&1 == 0 {
			decode16(c)
		} else {
			decode32(c)
		}
		c.opIndex++
		count++

		if c.bstate != StateNone {
			break
		}

		if count >= opts.MaxInstructions {
			c.b.SaveGuestPC(c.nextPC)
			c.b.ExitTB(false, 0)
			break
		}

		if opts.SingleStepEnabled {
			c.b.SaveGuestPC(c.nextPC)
			c.b.ExitTB(false, 0)
			break
		}

		c.pc = c.nextPC
	}

	endTemps := b.TempCount()
	leak := endTemps != startTemps
	if leak {
		opts.logger().Error("temp leak at block end",
			"start_pc", fmt.Sprintf("0x%x", startPC), "pc", fmt.Sprintf("0x%x", c.pc),
			"start_temps", startTemps, "end_temps", endTemps)
	}

	return BlockResult{
		StartPC:    startPC,
		EndPC:      c.pc,
		Size:       c.pc - startPC,
		InstrCount: count,
		PCMap:      c.pcMap,
		TempLeak:   leak,
		ExitState:  c.bstate,
	}
}
