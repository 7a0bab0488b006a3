package cpustate

import "testing"

func TestResetPSW(t *testing.T) {
	s := NewState()
	if s.PSW() != ResetPSW {
		t.Errorf("PSW() after NewState = 0x%x, want 0x%x", s.PSW(), ResetPSW)
	}
	s.SetPSW(0xdead)
	s.SetD(3, 42)
	s.Reset()
	if s.PSW() != ResetPSW || s.D(3) != 0 {
		t.Errorf("Reset() did not restore defaults: PSW=0x%x D[3]=%d", s.PSW(), s.D(3))
	}
}

func TestPairedRegisterE(t *testing.T) {
	s := NewState()
	s.SetD(4, 0x5555_5555)
	s.SetD(5, 0xAAAA_AAAA)
	want := uint64(0xAAAA_AAAA)<<32 | 0x5555_5555
	if got := s.E(4); got != want {
		t.Errorf("E(4) = 0x%x, want 0x%x", got, want)
	}
	s.SetE(6, 0x1111_2222_3333_4444)
	if s.D(6) != 0x3333_4444 || s.D(7) != 0x1111_2222 {
		t.Errorf("SetE(6, ...) split wrong: D6=0x%x D7=0x%x", s.D(6), s.D(7))
	}
}
