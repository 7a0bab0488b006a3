package ir

// Builder is the IR emission primitive surface described in spec §6. It is
// the external collaborator the translator core is written against; the
// core never generates machine code itself, it only issues calls here.
//
// Method names are semantic, not tied to any particular backend's naming
// convention (TCG, LLVM IR, or otherwise) -- spec §6 is explicit that the
// primitive names "are semantic, not language-specific".
type Builder interface {
	// Arithmetic / logical.
	Add(dst, a, b Temp)
	Sub(dst, a, b Temp)
	Neg(dst, a Temp)
	And(dst, a, b Temp)
	Or(dst, a, b Temp)
	Xor(dst, a, b Temp)
	AndC(dst, a, b Temp) // a &^ b
	OrC(dst, a, b Temp)  // a | ^b
	Nand(dst, a, b Temp)
	Nor(dst, a, b Temp)
	Eqv(dst, a, b Temp) // ^(a ^ b)
	Not(dst, a Temp)

	AddI(dst, a Temp, imm int32)
	AndI(dst, a Temp, imm uint32)
	OrI(dst, a Temp, imm uint32)
	XorI(dst, a Temp, imm uint32)
	SubI(dst, a Temp, imm int32)

	Shl(dst, a, n Temp)
	Shr(dst, a, n Temp)
	Sar(dst, a, n Temp)
	ShlI(dst, a Temp, n uint32)
	ShrI(dst, a Temp, n uint32)
	SarI(dst, a Temp, n uint32)

	SetCond(cond Cond, dst, a, b Temp)
	SetCondI(cond Cond, dst, a Temp, imm int32)
	MovCond(cond Cond, dst, c, cmp, ifTrue, ifFalse Temp)
	MovCondI(cond Cond, dst, c Temp, cmpImm int32, ifTrue, ifFalse Temp)

	Deposit(dst, src Temp, pos, width uint32)

	Mov(dst, src Temp)
	MovI(dst Temp, imm int32)

	Concat3264(dst64, lo, hi Temp)
	Extract6432(lo, hi, src64 Temp)
	Muls2(lo, hi, a, b Temp) // widening signed 32x32->64

	// Memory.
	QemuLd(dst, addr Temp, w Width, s Sign, e Endian, memIdx uint32)
	QemuSt(src, addr Temp, w Width, e Endian, memIdx uint32)
	QemuLd64(dst, addr Temp, memIdx uint32)
	QemuSt64(src, addr Temp, memIdx uint32)

	// Control flow.
	NewLabel() Label
	SetLabel(l Label)
	BrCond(cond Cond, a, b Temp, l Label)
	BrCondI(cond Cond, a Temp, imm int32, l Label)
	GotoTB(n int)
	SaveGuestPC(pc uint32)
	ExitTB(chained bool, exitIndex int)

	// Globals and temporaries.
	Global(name string) Temp
	NewTemp() Temp
	FreeTemp(t Temp)
	TempCount() int

	// Helper calls (spec §6 "Helpers invoked by emitted code").
	CallCall(retPC Temp)
	CallRet()
	CallRFE()
	CallBISR(icr8 Temp)
	CallLDLCX(ea Temp)
	CallLDUCX(ea Temp)
	CallSTLCX(ea Temp)
	CallSTUCX(ea Temp)
	CallAddSSOV(dst, a, b Temp)
	CallSubSSOV(dst, a, b Temp)
	CallBRUpdate(areg Temp)
	CallCircUpdate(areg Temp, constOff int32)
	CallIllegalOpcode(pc uint32)
	CallDebugTrap(pc uint32)
}
