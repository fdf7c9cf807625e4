package cpu

import "testing"

type byteStream struct {
	b []byte
	i int
}

func (s *byteStream) FetchU8() uint8 {
	v := s.b[s.i]
	s.i++
	return v
}

func (s *byteStream) FetchU16() uint16 {
	return uint16(s.FetchU8()) | uint16(s.FetchU8())<<8
}

func TestDecodeModRM(t *testing.T) {
	var regs Registers
	regs.SetBX(0x0010)
	regs.SetBP(0x0100)
	regs.SetSI(0x0002)
	regs.SetDI(0x0004)

	tests := []struct {
		name     string
		code     []byte
		seg      SegReg
		override bool
		isReg    bool
		reg      uint8
		offset   uint16
		wantSeg  SegReg
		length   int
		text     string
	}{
		{"bp+disp8 uses ss", []byte{0x46, 0x04}, DS, false, false, 0, 0x0104, SS, 2, "[bp+$04]"},
		{"override beats implicit ss", []byte{0x46, 0x04}, DS, true, false, 0, 0x0104, DS, 2, "ds:[bp+$04]"},
		{"es override on bp", []byte{0x46, 0x04}, ES, true, false, 0, 0x0104, ES, 2, "es:[bp+$04]"},
		{"negative disp8", []byte{0x46, 0xFE}, DS, false, false, 0, 0x00FE, SS, 2, "[bp-$02]"},
		{"bx+si", []byte{0x00}, DS, false, false, 0, 0x0012, DS, 1, "[bx+si]"},
		{"bx+di", []byte{0x01}, DS, false, false, 0, 0x0014, DS, 1, "[bx+di]"},
		{"bp+si", []byte{0x02}, DS, false, false, 0, 0x0102, SS, 1, "[bp+si]"},
		{"bp+di", []byte{0x03}, DS, false, false, 0, 0x0104, SS, 1, "[bp+di]"},
		{"si", []byte{0x04}, DS, false, false, 0, 0x0002, DS, 1, "[si]"},
		{"di", []byte{0x05}, DS, false, false, 0, 0x0004, DS, 1, "[di]"},
		{"direct", []byte{0x06, 0x34, 0x12}, DS, false, false, 0, 0x1234, DS, 3, "[$1234]"},
		{"bx", []byte{0x07}, DS, false, false, 0, 0x0010, DS, 1, "[bx]"},
		{"disp16 wraps", []byte{0x87, 0xFF, 0xFF}, DS, false, false, 0, 0x000F, DS, 3, "[bx+$FFFF]"},
		{"bp+disp16", []byte{0x86, 0x00, 0x10}, DS, false, false, 0, 0x1100, SS, 3, "[bp+$1000]"},
		{"reg field", []byte{0x1F}, DS, false, false, 3, 0x0010, DS, 1, "[bx]"},
		{"register", []byte{0xC3}, DS, false, true, 0, 0, DS, 1, ""},
	}
	for _, tc := range tests {
		s := &byteStream{b: tc.code}
		m := DecodeModRM(s, &regs, tc.seg, tc.override)
		if m.Len != tc.length || s.i != tc.length {
			t.Errorf("%s: expected %d bytes, Len %d consumed %d", tc.name, tc.length, m.Len, s.i)
		}
		if m.EA.IsReg != tc.isReg {
			t.Errorf("%s: expected register operand %v", tc.name, tc.isReg)
			continue
		}
		if m.Reg != tc.reg {
			t.Errorf("%s: expected reg field %d, got %d", tc.name, tc.reg, m.Reg)
		}
		if tc.isReg {
			if m.EA.Reg != 3 || m.EA.Name16() != "bx" || m.EA.Name8() != "bl" {
				t.Errorf("%s: expected bx/bl, got %d", tc.name, m.EA.Reg)
			}
			continue
		}
		if m.EA.Offset != tc.offset {
			t.Errorf("%s: expected offset %04X, got %04X", tc.name, tc.offset, m.EA.Offset)
		}
		if m.EA.Seg != tc.wantSeg {
			t.Errorf("%s: expected segment %s, got %s", tc.name, tc.wantSeg, m.EA.Seg)
		}
		if m.EA.Text != tc.text {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.text, m.EA.Text)
		}
	}
}
