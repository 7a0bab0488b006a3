package emit

import "github.com/tricore-dbt/trcore/internal/tricore/ir"

// OffsetLd emits r1 = M[r2 + con], grounded on gen_offset_ld.
func OffsetLd(b ir.Builder, r1, r2 ir.Temp, con int32, w ir.Width, s ir.Sign, memIdx uint32) {
	addr := b.NewTemp()
	defer b.FreeTemp(addr)
	b.AddI(addr, r2, con)
	b.QemuLd(r1, addr, w, s, ir.LittleEndian, memIdx)
}

// OffsetSt emits M[r2 + con] = r1, grounded on gen_offset_st.
func OffsetSt(b ir.Builder, r1, r2 ir.Temp, con int32, w ir.Width, memIdx uint32) {
	addr := b.NewTemp()
	defer b.FreeTemp(addr)
	b.AddI(addr, r2, con)
	b.QemuSt(r1, addr, w, ir.LittleEndian, memIdx)
}

// St2Regs64 emits M[address] = rh:rl as a single 64-bit store, grounded on
// gen_st_2regs_64 (tcg_gen_concat_i32_i64 + qemu_st_i64).
func St2Regs64(b ir.Builder, rh, rl, address ir.Temp, memIdx uint32) {
	wide := b.NewTemp()
	defer b.FreeTemp(wide)
	b.Concat3264(wide, rl, rh)
	b.QemuSt64(wide, address, memIdx)
}

// OffsetSt2Regs is St2Regs64 addressed at base+con, grounded on
// gen_offset_st_2regs.
func OffsetSt2Regs(b ir.Builder, rh, rl, base ir.Temp, con int32, memIdx uint32) {
	addr := b.NewTemp()
	defer b.FreeTemp(addr)
	b.AddI(addr, base, con)
	St2Regs64(b, rh, rl, addr, memIdx)
}

// Ld2Regs64 emits rh:rl = M[address] as a single 64-bit load, split back
// into two 32-bit halves, grounded on gen_ld_2regs_64.
func Ld2Regs64(b ir.Builder, rh, rl, address ir.Temp, memIdx uint32) {
	wide := b.NewTemp()
	defer b.FreeTemp(wide)
	b.QemuLd64(wide, address, memIdx)
	b.Extract6432(rl, rh, wide)
}

// OffsetLd2Regs is Ld2Regs64 addressed at base+con, grounded on
// gen_offset_ld_2regs.
func OffsetLd2Regs(b ir.Builder, rh, rl, base ir.Temp, con int32, memIdx uint32) {
	addr := b.NewTemp()
	defer b.FreeTemp(addr)
	b.AddI(addr, base, con)
	Ld2Regs64(b, rh, rl, addr, memIdx)
}

// StPreincr emits M[r2+off] = r1; r2 = r2+off (pre-increment store),
// grounded on gen_st_preincr.
func StPreincr(b ir.Builder, r1, r2 ir.Temp, off int32, w ir.Width, memIdx uint32) {
	addr := b.NewTemp()
	defer b.FreeTemp(addr)
	b.AddI(addr, r2, off)
	b.QemuSt(r1, addr, w, ir.LittleEndian, memIdx)
	b.Mov(r2, addr)
}

// LdPreincr emits r1 = M[r2+off]; r2 = r2+off (pre-increment load),
// grounded on gen_ld_preincr.
func LdPreincr(b ir.Builder, r1, r2 ir.Temp, off int32, w ir.Width, s ir.Sign, memIdx uint32) {
	addr := b.NewTemp()
	defer b.FreeTemp(addr)
	b.AddI(addr, r2, off)
	b.QemuLd(r1, addr, w, s, ir.LittleEndian, memIdx)
	b.Mov(r2, addr)
}

// LdPostincr emits r1 = M[r2]; r2 = r2+off (post-increment load): the
// access uses the unmodified base, the writeback happens after, grounded
// on gen_ld_postincr (the mirror of LdPreincr, which updates the base
// before the access).
func LdPostincr(b ir.Builder, r1, r2 ir.Temp, off int32, w ir.Width, s ir.Sign, memIdx uint32) {
	b.QemuLd(r1, r2, w, s, ir.LittleEndian, memIdx)
	b.AddI(r2, r2, off)
}

// StPostincr emits M[r2] = r1; r2 = r2+off (post-increment store),
// grounded on gen_st_postincr.
func StPostincr(b ir.Builder, r1, r2 ir.Temp, off int32, w ir.Width, memIdx uint32) {
	b.QemuSt(r1, r2, w, ir.LittleEndian, memIdx)
	b.AddI(r2, r2, off)
}

// CircEA computes the shared circular/bit-reverse effective address: A[r]
// + (A[r+1] & 0xFFFF), i.e. the base register plus the 16-bit index packed
// into the low half of the paired address register (spec §4.4). Caller
// owns freeing the returned temp. Exported so BO-format families that need
// the raw address (LDMST, SWAP) without CircLd/CircSt's built-in final
// memory op can compute it directly.
func CircEA(b ir.Builder, ar, arPlus1 ir.Temp) ir.Temp {
	idx := b.NewTemp()
	defer b.FreeTemp(idx)
	ea := b.NewTemp()
	b.AndI(idx, arPlus1, 0xFFFF)
	b.Add(ea, ar, idx)
	return ea
}

// CircLd emits a circular-addressed load: ea = A[r] + (A[r+1] & 0xFFFF);
// dst = M[ea]; then advances the packed index in A[r+1] by constOff modulo
// the length packed in its high bits via the external circ_update helper,
// grounded on gen_bo_addrmode_ld_post_pre_base's OPC2_32_BO_*_CIRC cases.
func CircLd(b ir.Builder, dst, ar, arPlus1 ir.Temp, w ir.Width, s ir.Sign, constOff int32, memIdx uint32) {
	ea := CircEA(b, ar, arPlus1)
	defer b.FreeTemp(ea)
	b.QemuLd(dst, ea, w, s, ir.LittleEndian, memIdx)
	b.CallCircUpdate(arPlus1, constOff)
}

// CircSt is CircLd's store counterpart, grounded on the same family's
// *_CIRC store cases.
func CircSt(b ir.Builder, src, ar, arPlus1 ir.Temp, w ir.Width, constOff int32, memIdx uint32) {
	ea := CircEA(b, ar, arPlus1)
	defer b.FreeTemp(ea)
	b.QemuSt(src, ea, w, ir.LittleEndian, memIdx)
	b.CallCircUpdate(arPlus1, constOff)
}

// CircLd2Regs64 and CircSt2Regs64 implement the paired 64-bit access under
// circular addressing (spec §4.4/§9 open question 3) as two independent
// 32-bit accesses, each computing its own effective address: the low half
// uses the index register's current value; the high half uses index' =
// (index + 4) mod length, computed inline in a scratch temp (index + 4,
// minus the length once if the sum reaches it, which is the modulo whenever
// index < length) so evaluating the second address never writes the real
// register. The address register is then advanced exactly once, by
// constOff, through the only circ_update call, matching
// translate.c:1876-1889's single-final-update semantics -- not once per
// half, which would double-advance the index.
func CircLd2Regs64(b ir.Builder, rl, rh, ar, arPlus1 ir.Temp, constOff int32, memIdx uint32) {
	eaLo := CircEA(b, ar, arPlus1)
	b.QemuLd(rl, eaLo, ir.Width32, ir.Unsigned, ir.LittleEndian, memIdx)
	b.FreeTemp(eaLo)

	idx2 := b.NewTemp()
	length := b.NewTemp()
	wrapped := b.NewTemp()
	defer b.FreeTemp(idx2)
	defer b.FreeTemp(length)
	defer b.FreeTemp(wrapped)
	b.AndI(idx2, arPlus1, 0xFFFF)
	b.AddI(idx2, idx2, 4)
	b.ShrI(length, arPlus1, 16)
	b.Sub(wrapped, idx2, length)
	b.MovCond(ir.CondGeu, idx2, idx2, length, wrapped, idx2)
	eaHi := CircEA(b, ar, idx2)
	defer b.FreeTemp(eaHi)
	b.QemuLd(rh, eaHi, ir.Width32, ir.Unsigned, ir.LittleEndian, memIdx)

	b.CallCircUpdate(arPlus1, constOff)
}

func CircSt2Regs64(b ir.Builder, rl, rh, ar, arPlus1 ir.Temp, constOff int32, memIdx uint32) {
	eaLo := CircEA(b, ar, arPlus1)
	b.QemuSt(rl, eaLo, ir.Width32, ir.LittleEndian, memIdx)
	b.FreeTemp(eaLo)

	idx2 := b.NewTemp()
	length := b.NewTemp()
	wrapped := b.NewTemp()
	defer b.FreeTemp(idx2)
	defer b.FreeTemp(length)
	defer b.FreeTemp(wrapped)
	b.AndI(idx2, arPlus1, 0xFFFF)
	b.AddI(idx2, idx2, 4)
	b.ShrI(length, arPlus1, 16)
	b.Sub(wrapped, idx2, length)
	b.MovCond(ir.CondGeu, idx2, idx2, length, wrapped, idx2)
	eaHi := CircEA(b, ar, idx2)
	defer b.FreeTemp(eaHi)
	b.QemuSt(rh, eaHi, ir.Width32, ir.LittleEndian, memIdx)

	b.CallCircUpdate(arPlus1, constOff)
}

// BrLd emits a bit-reverse-addressed load: ea = A[r] + (A[r+1] & 0xFFFF);
// dst = M[ea]; then updates the low 16 bits of A[r+1] via the external
// bit-reverse helper, grounded on the *_BR cases of the same decode family.
func BrLd(b ir.Builder, dst, ar, arPlus1 ir.Temp, w ir.Width, s ir.Sign, memIdx uint32) {
	ea := CircEA(b, ar, arPlus1)
	defer b.FreeTemp(ea)
	b.QemuLd(dst, ea, w, s, ir.LittleEndian, memIdx)
	b.CallBRUpdate(arPlus1)
}

// BrSt is BrLd's store counterpart.
func BrSt(b ir.Builder, src, ar, arPlus1 ir.Temp, w ir.Width, memIdx uint32) {
	ea := CircEA(b, ar, arPlus1)
	defer b.FreeTemp(ea)
	b.QemuSt(src, ea, w, ir.LittleEndian, memIdx)
	b.CallBRUpdate(arPlus1)
}

// Ldmst emits the LDMST read-modify-write: M[ea] = (M[ea] &^ E[ereg+1]) |
// (E[ereg] & E[ereg+1]), grounded on gen_ldmst. eregLow/eregHigh are the
// D[ereg]/D[ereg+1] temps of the paired register.
func Ldmst(b ir.Builder, eregLow, eregHigh, ea ir.Temp, memIdx uint32) {
	temp := b.NewTemp()
	temp2 := b.NewTemp()
	defer b.FreeTemp(temp)
	defer b.FreeTemp(temp2)

	b.QemuLd(temp, ea, ir.Width32, ir.Unsigned, ir.LittleEndian, memIdx)
	b.AndC(temp, temp, eregHigh)
	b.And(temp2, eregLow, eregHigh)
	b.Or(temp, temp, temp2)
	b.QemuSt(temp, ea, ir.Width32, ir.LittleEndian, memIdx)
}

// Swap emits tmp = M[ea]; M[ea] = D[reg]; D[reg] = tmp, grounded on
// gen_swap.
func Swap(b ir.Builder, reg, ea ir.Temp, memIdx uint32) {
	temp := b.NewTemp()
	defer b.FreeTemp(temp)

	b.QemuLd(temp, ea, ir.Width32, ir.Unsigned, ir.LittleEndian, memIdx)
	b.QemuSt(reg, ea, ir.Width32, ir.LittleEndian, memIdx)
	b.Mov(reg, temp)
}
