// Package cpustate declares the guest architectural register set the
// translator core references (spec "Initialization" component, §2) and
// provides a concrete reference implementation for tests and the CLI. In
// production the embedder supplies its own type satisfying Registers; the
// core itself never reads or writes guest state directly, it only emits IR
// globals bound to the names here (spec §1: "guest-CPU architectural state
// structure" is an out-of-scope collaborator).
package cpustate

// ResetPSW is the architectural reset value of PSW (ported from the
// original's cpu_state_reset: env->PSW = 0xb80).
const ResetPSW uint32 = 0xb80

// RegNamesA and RegNamesD are the debug names bound to the address and
// data register globals, matching the original's regnames_a/regnames_d so
// emitted IR globals and any disassembly carry the same names.
var RegNamesA = [16]string{
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"a8", "a9", "sp", "a11", "a12", "a13", "a14", "a15",
}

var RegNamesD = [16]string{
	"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7",
	"d8", "d9", "d10", "d11", "d12", "d13", "d14", "d15",
}

// SP and LR are the conventional address-register indices for the stack
// pointer and the return-address register (spec §3).
const (
	SP = 10
	LR = 11
)

// Registers is the guest-state collaborator interface the core's emitters
// are specified against. State below is the in-repo reference
// implementation; production embedders may supply any type satisfying it.
type Registers interface {
	A(i int) uint32
	SetA(i int, v uint32)
	D(i int) uint32
	SetD(i int, v uint32)
	PC() uint32
	SetPC(v uint32)
	PSW() uint32
	SetPSW(v uint32)
	PCXI() uint32
	SetPCXI(v uint32)
	ICR() uint32
	SetICR(v uint32)
	FlagC() uint32
	SetFlagC(v uint32)
	FlagV() uint32
	SetFlagV(v uint32)
	FlagSV() uint32
	SetFlagSV(v uint32)
	FlagAV() uint32
	SetFlagAV(v uint32)
	FlagSAV() uint32
	SetFlagSAV(v uint32)
}

// State is a plain-value reference implementation of Registers, used by
// decode tests and the CLI in place of a real guest-CPU state structure.
type State struct {
	gprA [16]uint32
	gprD [16]uint32
	pc   uint32
	psw  uint32
	pcxi uint32
	icr  uint32

	// PSW_USB_* flag-cache words; only bit 31 of each is architecturally
	// significant (spec §3), the rest is "don't care" scratch space.
	flagC, flagV, flagSV, flagAV, flagSAV uint32
}

// NewState returns a State reset to architectural defaults.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores PSW to its architectural reset value (ResetPSW); all other
// registers reset to zero.
func (s *State) Reset() {
	*s = State{psw: ResetPSW}
}

func (s *State) A(i int) uint32     { return s.gprA[i] }
func (s *State) SetA(i int, v uint32) { s.gprA[i] = v }
func (s *State) D(i int) uint32     { return s.gprD[i] }
func (s *State) SetD(i int, v uint32) { s.gprD[i] = v }

// EHigh and ELow implement the paired-register E[i] view (spec Glossary):
// E[i] = (D[i+1]:D[i]), defined only for even i.
func (s *State) ELow(i int) uint32  { return s.gprD[i] }
func (s *State) EHigh(i int) uint32 { return s.gprD[i+1] }
func (s *State) E(i int) uint64 {
	return uint64(s.gprD[i+1])<<32 | uint64(s.gprD[i])
}
func (s *State) SetE(i int, v uint64) {
	s.gprD[i] = uint32(v)
	s.gprD[i+1] = uint32(v >> 32)
}

func (s *State) PC() uint32       { return s.pc }
func (s *State) SetPC(v uint32)   { s.pc = v }
func (s *State) PSW() uint32      { return s.psw }
func (s *State) SetPSW(v uint32)  { s.psw = v }
func (s *State) PCXI() uint32     { return s.pcxi }
func (s *State) SetPCXI(v uint32) { s.pcxi = v }
func (s *State) ICR() uint32      { return s.icr }
func (s *State) SetICR(v uint32)  { s.icr = v }

func (s *State) FlagC() uint32       { return s.flagC }
func (s *State) SetFlagC(v uint32)   { s.flagC = v }
func (s *State) FlagV() uint32       { return s.flagV }
func (s *State) SetFlagV(v uint32)   { s.flagV = v }
func (s *State) FlagSV() uint32      { return s.flagSV }
func (s *State) SetFlagSV(v uint32)  { s.flagSV = v }
func (s *State) FlagAV() uint32      { return s.flagAV }
func (s *State) SetFlagAV(v uint32)  { s.flagAV = v }
func (s *State) FlagSAV() uint32     { return s.flagSAV }
func (s *State) SetFlagSAV(v uint32) { s.flagSAV = v }

var _ Registers = (*State)(nil)
