// Package fields implements the pure field-extractor functions of spec
// §4.1: one function per (format, field) pair, mapping a decoded 16- or
// 32-bit opcode word to its operand fields. Sign-extension and scaling are
// always baked in here so call sites in the per-format decoders never have
// to remember them.
package fields

// sext extends bit (width-1) of v across the remaining bits of a uint32.
func sext(v uint32, width uint) uint32 {
	shift := 32 - width
	return uint32(int32(v<<shift) >> shift)
}

// --- 16-bit instruction formats ---

// Major returns the 8-bit major opcode common to every 16-bit encoding.
func Major(op uint32) uint32 { return op & 0xFF }

// SRCConst4Sext extracts the SRC-format 4-bit signed immediate.
func SRCConst4Sext(op uint32) int32 { return int32(sext((op>>12)&0xF, 4)) }

// SRCConst4 extracts the SRC-format 4-bit immediate unsigned (used by the
// register-index MOV.A variant, spec §4.1).
func SRCConst4(op uint32) uint32 { return (op >> 12) & 0xF }

// SRCS1D extracts the SRC-format single register field (both source and
// destination).
func SRCS1D(op uint32) uint32 { return (op >> 8) & 0xF }

// SRRS1D and SRRS2 extract the two register fields of an SRR-format opcode.
func SRRS1D(op uint32) uint32 { return (op >> 8) & 0xF }
func SRRS2(op uint32) uint32  { return (op >> 12) & 0xF }

// SSRS1 and SSRS2 extract the SSR-format register fields.
func SSRS1(op uint32) uint32 { return (op >> 8) & 0xF }
func SSRS2(op uint32) uint32 { return (op >> 12) & 0xF }

// SCConst8 extracts the SC-format 8-bit immediate.
func SCConst8(op uint32) uint32 { return (op >> 8) & 0xFF }

// SLRD and SLRS2 extract the SLR-format destination/base register fields.
func SLRD(op uint32) uint32  { return (op >> 8) & 0xF }
func SLRS2(op uint32) uint32 { return (op >> 12) & 0xF }

// SROS2 and SROOff4 extract the SRO-format base register and 4-bit offset.
func SROS2(op uint32) uint32   { return (op >> 8) & 0xF }
func SROOff4(op uint32) uint32 { return (op >> 12) & 0xF }

// SLROD and SLROOff4 extract the SLRO-format destination and 4-bit offset.
func SLROD(op uint32) uint32    { return (op >> 8) & 0xF }
func SLROOff4(op uint32) uint32 { return (op >> 12) & 0xF }

// SSROS1 and SSROOff4 extract the SSRO-format source and 4-bit offset.
func SSROS1(op uint32) uint32   { return (op >> 8) & 0xF }
func SSROOff4(op uint32) uint32 { return (op >> 12) & 0xF }

// SBDisp8Sext extracts the SB-format signed 8-bit branch displacement.
// All SB branch targets are pc + 2*disp (spec §4.1).
func SBDisp8Sext(op uint32) int32 { return int32(sext((op>>8)&0xFF, 8)) }

// SBCDisp4 and SBCConst4Sext extract the SBC-format displacement and signed
// immediate (used by compare-and-branch opcodes).
func SBCDisp4(op uint32) int32       { return int32((op >> 8) & 0xF) }
func SBCConst4Sext(op uint32) int32  { return int32(sext((op>>12)&0xF, 4)) }

// SBRNDisp4 and SBRNN extract the SBRN-format displacement and the 4-bit
// bit-position field n, constrained to [0,15] by the field width itself.
func SBRNDisp4(op uint32) int32 { return int32((op >> 8) & 0xF) }
func SBRNN(op uint32) uint32    { return (op >> 12) & 0xF }

// SBRS2 and SBRDisp4 extract the SBR-format register and displacement.
func SBRS2(op uint32) uint32   { return (op >> 8) & 0xF }
func SBRDisp4(op uint32) int32 { return int32((op >> 12) & 0xF) }

// SRS1D extracts the SR-format single register field.
func SRS1D(op uint32) uint32 { return (op >> 8) & 0xF }

// SROP2 extracts the SR-format 4-bit minor opcode used to further dispatch
// OPCM_16_SR_SYSTEM / OPCM_16_SR_ACCU.
func SROP2(op uint32) uint32 { return (op >> 12) & 0xF }

// SRRSS2, SRRSS1D and SRRSN extract the SRRS-format (ADDSC.A) fields.
func SRRSS2(op uint32) uint32  { return (op >> 8) & 0xF }
func SRRSS1D(op uint32) uint32 { return (op >> 12) & 0xF }
func SRRSN(op uint32) uint32   { return (op >> 6) & 0x3 }

// --- 32-bit instruction formats ---

// Op2Byte extracts the 8-bit byte at bits [23:16] of a 32-bit instruction,
// which holds the BO-format addressing-submode minor opcode.
func Op2Byte(op uint32) uint32 { return (op >> 16) & 0xFF }

// ABSOff18 extracts and reassembles the ABS-format 18-bit absolute address
// field. The encoding is split and must be reassembled exactly as spec
// §4.1 describes: ((off18 & 0x3C000) << 14) | (off18 & 0x3FFF).
func ABSOff18(op uint32) uint32 {
	off18 := ((op >> 12) & 0x3C000) | ((op >> 16) & 0x3C00) | ((op >> 10) & 0x3FF)
	return EAAbs(off18)
}

// EAAbs performs the ABS-format effective-address reconstitution given an
// already-extracted 18-bit field. Split out separately so it is directly
// testable against spec §8's property in isolation from bit layout details.
func EAAbs(off18 uint32) uint32 {
	return ((off18 & 0x3C000) << 14) | (off18 & 0x3FFF)
}

// ABSS1D extracts the ABS-format register field.
func ABSS1D(op uint32) uint32 { return (op >> 8) & 0xF }

// BDisp24Raw assembles the B-format 24-bit displacement field from the raw
// instruction word: bits [31:16] supply the field's low 16 bits and bits
// [15:8] its high 8 bits. Callers pass the result to EABAbsolute for the
// absolute variants.
func BDisp24Raw(op uint32) uint32 {
	return (op >> 16) | ((op>>8)&0xFF)<<16
}

// EABAbsolute performs the B-format absolute-address reconstitution, per
// spec §4.1: ((offset & 0xF00000) << 8) | ((offset & 0x0FFFFF) << 1).
func EABAbsolute(offset uint32) uint32 {
	return ((offset & 0xF00000) << 8) | ((offset & 0x0FFFFF) << 1)
}

// BODisp10Sext extracts the BO-format signed 10-bit addressing offset.
func BODisp10Sext(op uint32) int32 { return int32(sext((op>>16)&0x3FF, 10)) }

// BOS2 and BOS1D extract the BO-format base and data register fields.
func BOS2(op uint32) uint32  { return (op >> 8) & 0xF }
func BOS1D(op uint32) uint32 { return (op >> 28) & 0xF }

// BITPos1, BITPos2, BITD, BITS1, BITS2 extract BIT-format fields.
func BITS1(op uint32) uint32  { return (op >> 8) & 0xF }
func BITS2(op uint32) uint32  { return (op >> 12) & 0xF }
func BITPos1(op uint32) uint32 { return (op >> 23) & 0x1F }
func BITPos2(op uint32) uint32 { return (op >> 16) & 0x1F }
func BITD(op uint32) uint32   { return (op >> 28) & 0xF }

// EvenPairOrZero returns r unchanged when even; callers use this to assert
// the paired-register constraint at extraction time (spec §4.1/§9: "the
// encoding is required to supply an even r", option (a)). Odd r is rounded
// down to the even register below it (5 -> 4); callers that care should
// reject odd r explicitly.
func EvenPairOrZero(r uint32) uint32 { return r &^ 1 }
