package opcodes

import "testing"

func TestFormatOf16(t *testing.T) {
	cases := []struct {
		op1  uint32
		want Format
	}{
		{OPC1_16_SRC_ADD, FormatSRC},
		{OPC1_16_SB_J, FormatSB},
		{OPC1_16_SBC_JEQ, FormatSBC},
		{OPC1_16_SR_JI, FormatSR},
	}
	for _, c := range cases {
		if got := FormatOf16(c.op1); got != c.want {
			t.Errorf("FormatOf16(0x%x) = %v, want %v", c.op1, got, c.want)
		}
	}
}
