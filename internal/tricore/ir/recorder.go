package ir

import (
	"fmt"
	"strings"
)

// Op is one recorded IR primitive call: its name and a human-readable
// rendering of its operands. Op is the unit decode tests assert against,
// playing the role the teacher's directly-inspectable cpu.State plays for
// z80 instruction tests.
type Op struct {
	Name string
	Args []string
}

func (o Op) String() string {
	return o.Name + "(" + strings.Join(o.Args, ", ") + ")"
}

// Recorder is a reference Builder implementation that appends every
// primitive call to an in-memory log instead of generating code. It is the
// in-repo stand-in for the externally-owned IR emitter library (spec §1),
// used by decode tests and by `trcore decode` to print the emitted trace.
type Recorder struct {
	Ops     []Op
	globals map[string]Temp
	names   map[Temp]string
	nextTmp Temp
	live    map[Temp]bool // temps currently acquired, for the leak-balance check
	acquired int
	released int
}

// NewRecorder returns an empty Recorder ready to accept emission calls.
func NewRecorder() *Recorder {
	return &Recorder{
		globals: make(map[string]Temp),
		names:   make(map[Temp]string),
		live:    make(map[Temp]bool),
	}
}

func (r *Recorder) name(t Temp) string {
	if n, ok := r.names[t]; ok {
		return n
	}
	return fmt.Sprintf("t%d", uint32(t))
}

func (r *Recorder) emit(name string, args ...any) {
	rendered := make([]string, len(args))
	for i, a := range args {
		if t, ok := a.(Temp); ok {
			rendered[i] = r.name(t)
			continue
		}
		rendered[i] = fmt.Sprint(a)
	}
	r.Ops = append(r.Ops, Op{Name: name, Args: rendered})
}

// String renders the full op trace, one call per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// --- globals & temporaries ---

func (r *Recorder) Global(name string) Temp {
	if t, ok := r.globals[name]; ok {
		return t
	}
	r.nextTmp++
	t := r.nextTmp
	r.globals[name] = t
	r.names[t] = name
	return t
}

func (r *Recorder) NewTemp() Temp {
	r.nextTmp++
	t := r.nextTmp
	r.live[t] = true
	r.acquired++
	return t
}

func (r *Recorder) FreeTemp(t Temp) {
	if r.live[t] {
		delete(r.live, t)
		r.released++
	}
}

// TempCount reports the number of currently-live (acquired, not yet freed)
// temporaries. The driver compares the count at block start with the count
// at block end and reports a leak when they differ (spec §5/§8).
func (r *Recorder) TempCount() int {
	return len(r.live)
}

// --- arithmetic / logical ---

func (r *Recorder) Add(dst, a, b Temp)  { r.emit("add", dst, a, b) }
func (r *Recorder) Sub(dst, a, b Temp)  { r.emit("sub", dst, a, b) }
func (r *Recorder) Neg(dst, a Temp)     { r.emit("neg", dst, a) }
func (r *Recorder) And(dst, a, b Temp)  { r.emit("and", dst, a, b) }
func (r *Recorder) Or(dst, a, b Temp)   { r.emit("or", dst, a, b) }
func (r *Recorder) Xor(dst, a, b Temp)  { r.emit("xor", dst, a, b) }
func (r *Recorder) AndC(dst, a, b Temp) { r.emit("andc", dst, a, b) }
func (r *Recorder) OrC(dst, a, b Temp)  { r.emit("orc", dst, a, b) }
func (r *Recorder) Nand(dst, a, b Temp) { r.emit("nand", dst, a, b) }
func (r *Recorder) Nor(dst, a, b Temp)  { r.emit("nor", dst, a, b) }
func (r *Recorder) Eqv(dst, a, b Temp)  { r.emit("eqv", dst, a, b) }
func (r *Recorder) Not(dst, a Temp)     { r.emit("not", dst, a) }

func (r *Recorder) AddI(dst, a Temp, imm int32)  { r.emit("addi", dst, a, imm) }
func (r *Recorder) AndI(dst, a Temp, imm uint32) { r.emit("andi", dst, a, imm) }
func (r *Recorder) OrI(dst, a Temp, imm uint32)  { r.emit("ori", dst, a, imm) }
func (r *Recorder) XorI(dst, a Temp, imm uint32) { r.emit("xori", dst, a, imm) }
func (r *Recorder) SubI(dst, a Temp, imm int32)  { r.emit("subi", dst, a, imm) }

func (r *Recorder) Shl(dst, a, n Temp)        { r.emit("shl", dst, a, n) }
func (r *Recorder) Shr(dst, a, n Temp)        { r.emit("shr", dst, a, n) }
func (r *Recorder) Sar(dst, a, n Temp)        { r.emit("sar", dst, a, n) }
func (r *Recorder) ShlI(dst, a Temp, n uint32) { r.emit("shli", dst, a, n) }
func (r *Recorder) ShrI(dst, a Temp, n uint32) { r.emit("shri", dst, a, n) }
func (r *Recorder) SarI(dst, a Temp, n uint32) { r.emit("sari", dst, a, n) }

func (r *Recorder) SetCond(cond Cond, dst, a, b Temp) { r.emit("setcond", cond, dst, a, b) }
func (r *Recorder) SetCondI(cond Cond, dst, a Temp, imm int32) {
	r.emit("setcondi", cond, dst, a, imm)
}
func (r *Recorder) MovCond(cond Cond, dst, c, cmp, ifTrue, ifFalse Temp) {
	r.emit("movcond", cond, dst, c, cmp, ifTrue, ifFalse)
}
func (r *Recorder) MovCondI(cond Cond, dst, c Temp, cmpImm int32, ifTrue, ifFalse Temp) {
	r.emit("movcondi", cond, dst, c, cmpImm, ifTrue, ifFalse)
}

func (r *Recorder) Deposit(dst, src Temp, pos, width uint32) {
	r.emit("deposit", dst, src, pos, width)
}

func (r *Recorder) Mov(dst, src Temp)  { r.emit("mov", dst, src) }
func (r *Recorder) MovI(dst Temp, imm int32) { r.emit("movi", dst, imm) }

func (r *Recorder) Concat3264(dst64, lo, hi Temp) { r.emit("concat_32_to_64", dst64, lo, hi) }
func (r *Recorder) Extract6432(lo, hi, src64 Temp) { r.emit("extract_64_to_32_pair", lo, hi, src64) }
func (r *Recorder) Muls2(lo, hi, a, b Temp)        { r.emit("muls2", lo, hi, a, b) }

// --- memory ---

func (r *Recorder) QemuLd(dst, addr Temp, w Width, s Sign, e Endian, memIdx uint32) {
	r.emit("qemu_ld", dst, addr, w, s, e, memIdx)
}
func (r *Recorder) QemuSt(src, addr Temp, w Width, e Endian, memIdx uint32) {
	r.emit("qemu_st", src, addr, w, e, memIdx)
}
func (r *Recorder) QemuLd64(dst, addr Temp, memIdx uint32) { r.emit("qemu_ld64", dst, addr, memIdx) }
func (r *Recorder) QemuSt64(src, addr Temp, memIdx uint32) { r.emit("qemu_st64", src, addr, memIdx) }

// --- control flow ---

func (r *Recorder) NewLabel() Label {
	r.nextTmp++ // labels and temps share the handle space for simplicity
	return Label(r.nextTmp)
}
func (r *Recorder) SetLabel(l Label)                    { r.emit("label_set", l) }
func (r *Recorder) BrCond(cond Cond, a, b Temp, l Label) { r.emit("brcond", cond, a, b, l) }
func (r *Recorder) BrCondI(cond Cond, a Temp, imm int32, l Label) {
	r.emit("brcondi", cond, a, imm, l)
}
func (r *Recorder) GotoTB(n int)                { r.emit("goto_tb", n) }
func (r *Recorder) SaveGuestPC(pc uint32)       { r.emit("save_pc", fmt.Sprintf("0x%x", pc)) }
func (r *Recorder) ExitTB(chained bool, exitIndex int) { r.emit("exit_tb", chained, exitIndex) }

// --- helper calls ---

func (r *Recorder) CallCall(retPC Temp)      { r.emit("call", retPC) }
func (r *Recorder) CallRet()                 { r.emit("ret") }
func (r *Recorder) CallRFE()                 { r.emit("rfe") }
func (r *Recorder) CallBISR(icr8 Temp)       { r.emit("bisr", icr8) }
func (r *Recorder) CallLDLCX(ea Temp)        { r.emit("ldlcx", ea) }
func (r *Recorder) CallLDUCX(ea Temp)        { r.emit("lducx", ea) }
func (r *Recorder) CallSTLCX(ea Temp)        { r.emit("stlcx", ea) }
func (r *Recorder) CallSTUCX(ea Temp)        { r.emit("stucx", ea) }
func (r *Recorder) CallAddSSOV(dst, a, b Temp) { r.emit("add_ssov", dst, a, b) }
func (r *Recorder) CallSubSSOV(dst, a, b Temp) { r.emit("sub_ssov", dst, a, b) }
func (r *Recorder) CallBRUpdate(areg Temp)     { r.emit("br_update", areg) }
func (r *Recorder) CallCircUpdate(areg Temp, constOff int32) {
	r.emit("circ_update", areg, constOff)
}
func (r *Recorder) CallIllegalOpcode(pc uint32) { r.emit("illegal_opcode", fmt.Sprintf("0x%x", pc)) }
func (r *Recorder) CallDebugTrap(pc uint32)     { r.emit("debug_trap", fmt.Sprintf("0x%x", pc)) }

var _ Builder = (*Recorder)(nil)
