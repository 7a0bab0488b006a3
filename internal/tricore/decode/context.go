// Package decode implements the top-level translation driver and the
// per-instruction-format decoders (spec §4.7, §4.1): it fetches guest
// instruction words, classifies them 16- vs 32-bit, and calls the emit
// package to produce the IR effects of each decoded instruction.
package decode

import (
	"log/slog"

	"github.com/tricore-dbt/trcore/internal/tricore/cpustate"
	"github.com/tricore-dbt/trcore/internal/tricore/diag"
	"github.com/tricore-dbt/trcore/internal/tricore/emit"
	"github.com/tricore-dbt/trcore/internal/tricore/ir"
)

// BState is the basic-block translation state machine (spec §4.7):
// translation continues fetching instructions while in StateNone, and
// stops as soon as any other state is reached.
type BState int

const (
	StateNone BState = iota
	StateStop
	StateBranch
	StateExcp
)

// FeatureFlag gates core-revision-dependent behavior (spec §6 supplement
// item 6: CACHEI.W address-register update before core revision 1.3).
type FeatureFlag uint32

const (
	FeatureFlag13 FeatureFlag = 1 << iota
)

// Options configures a translation run, modeled on the teacher's
// search.Config/gpu.SearchConfig plain-struct style (spec §4.B).
type Options struct {
	MemIdx            uint32
	Features          FeatureFlag
	MaxInstructions    int // buffer-near-full exit threshold (spec §4.7)
	SingleStepEnabled bool
	Logger            *slog.Logger
}

// DefaultOptions returns Options with the conservative defaults the CLI and
// tests build on: no features, a generous instruction cap, and diagnostics
// discarded.
func DefaultOptions() Options {
	return Options{
		MemIdx:          0,
		MaxInstructions: 4096,
		Logger:          diag.Discard(),
	}
}

// logger returns opts.Logger, falling back to a discarding logger so the
// driver and decoders never need a nil check at each call site.
func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return diag.Discard()
	}
	return o.Logger
}

// context carries the per-block translation state the original's
// DisasContext held: current/next guest PC, raw opcode word, and the
// block-chaining inputs emit.BlockContext needs.
type context struct {
	opts    Options
	b       ir.Builder
	g       *cpustate.Globals
	blk     *emit.BlockContext
	pc      uint32
	nextPC  uint32
	opcode  uint32
	bstate  BState
	pcMap   []PCMapEntry
	opIndex int
}

// PCMapEntry records which guest PC produced the IR op at Index, the
// driver's equivalent of the original's restore_state_to_opc (spec §6
// supplement item 3).
type PCMapEntry struct {
	Index int
	PC    uint32
}

// BlockResult summarizes one translated basic block (spec §4.7).
type BlockResult struct {
	StartPC      uint32
	EndPC        uint32
	Size         uint32
	InstrCount   int
	PCMap        []PCMapEntry
	TempLeak     bool
	ExitState    BState
}
