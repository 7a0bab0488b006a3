package cpustate

import "github.com/tricore-dbt/trcore/internal/tricore/ir"

// Globals holds the IR temp handles bound to every guest register, declared
// once per translator and shared by all emitted blocks (spec §5: "not owned
// by any block"). This is the "Initialization" component of spec §2.
type Globals struct {
	A [16]ir.Temp
	D [16]ir.Temp

	PC, PCXI, PSW, ICR ir.Temp

	PSWFlagC, PSWFlagV, PSWFlagSV, PSWFlagAV, PSWFlagSAV ir.Temp
}

// DeclareGlobals asks b to materialize one IR global per guest register,
// using the same debug names the original QEMU target binds
// (regnames_a/regnames_d), and returns the resulting handles. Call exactly
// once per translator instance; Builder.Global is idempotent so a repeat
// call is harmless but wasteful.
func DeclareGlobals(b ir.Builder) *Globals {
	g := &Globals{}
	for i := 0; i < 16; i++ {
		g.A[i] = b.Global(RegNamesA[i])
		g.D[i] = b.Global(RegNamesD[i])
	}
	g.PC = b.Global("PC")
	g.PCXI = b.Global("PCXI")
	g.PSW = b.Global("PSW")
	g.ICR = b.Global("ICR")

	g.PSWFlagC = b.Global("PSW_C")
	g.PSWFlagV = b.Global("PSW_V")
	g.PSWFlagSV = b.Global("PSW_SV")
	g.PSWFlagAV = b.Global("PSW_AV")
	g.PSWFlagSAV = b.Global("PSW_SAV")
	return g
}

// EHigh and ELow return the IR globals for the high/low half of the paired
// register E[i] (i must be even; spec §4.1 "behavior on odd r is
// implementation-defined" -- this implementation derives the high half as
// i+1 unconditionally per the §9 "assert even-register at extraction" option).
func (g *Globals) ELow(i int) ir.Temp  { return g.D[i] }
func (g *Globals) EHigh(i int) ir.Temp { return g.D[i+1] }
