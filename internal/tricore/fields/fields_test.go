package fields

import "testing"

func TestSext(t *testing.T) {
	if got := int32(sext(0xF, 4)); got != -1 {
		t.Errorf("sext(0xF, 4) = %d, want -1", got)
	}
	if got := int32(sext(0x7, 4)); got != 7 {
		t.Errorf("sext(0x7, 4) = %d, want 7", got)
	}
}

func TestSRCConst4Sext(t *testing.T) {
	// MOV D[a], #-1 style encoding: const4 field = 0xF at bits [15:12].
	op := uint32(0xF) << 12
	if got := SRCConst4Sext(op); got != -1 {
		t.Errorf("SRCConst4Sext = %d, want -1", got)
	}
}

func TestSBDisp8Sext(t *testing.T) {
	op := uint32(0x80) << 8 // disp8 = 0x80 -> sign bit set
	if got := SBDisp8Sext(op); got != -128 {
		t.Errorf("SBDisp8Sext = %d, want -128", got)
	}
	op = uint32(0x7F) << 8
	if got := SBDisp8Sext(op); got != 127 {
		t.Errorf("SBDisp8Sext = %d, want 127", got)
	}
}

func TestEAAbs(t *testing.T) {
	// ABS address-reconstitution property on the all-ones field 0x3FFFF:
	// off18 reassembly must reproduce the architectural split encoding
	// exactly.
	off18 := uint32(0x3FFFF)
	got := EAAbs(off18)
	want := ((off18 & 0x3C000) << 14) | (off18 & 0x3FFF)
	if got != want {
		t.Errorf("EAAbs(0x%x) = 0x%x, want 0x%x", off18, got, want)
	}
}

func TestEABAbsolute(t *testing.T) {
	offset := uint32(0xFFFFFF)
	got := EABAbsolute(offset)
	want := ((offset & 0xF00000) << 8) | ((offset & 0x0FFFFF) << 1)
	if got != want {
		t.Errorf("EABAbsolute(0x%x) = 0x%x, want 0x%x", offset, got, want)
	}
}

func TestEvenPairOrZero(t *testing.T) {
	if got := EvenPairOrZero(5); got != 4 {
		t.Errorf("EvenPairOrZero(5) = %d, want 4", got)
	}
	if got := EvenPairOrZero(4); got != 4 {
		t.Errorf("EvenPairOrZero(4) = %d, want 4", got)
	}
}

func TestBODisp10Sext(t *testing.T) {
	op := uint32(0x200) << 16 // 10-bit field, sign bit set
	if got := BODisp10Sext(op); got != -512 {
		t.Errorf("BODisp10Sext = %d, want -512", got)
	}
}
