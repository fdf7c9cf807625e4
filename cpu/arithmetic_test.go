package cpu

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

type flagWant struct {
	cf, of, sf, zf, pf bool
}

func checkFlags(t *testing.T, name string, f Flags, w flagWant) {
	t.Helper()
	got := flagWant{f.Get(FlagCF), f.Get(FlagOF), f.Get(FlagSF), f.Get(FlagZF), f.Get(FlagPF)}
	if got != w {
		t.Errorf("%s: expected flags %+v, got %+v", name, w, got)
	}
}

func TestAddSub8(t *testing.T) {
	tests := []struct {
		name     string
		op       func(*Flags, uint8, uint8) uint8
		src, dst uint8
		carry    bool
		want     uint8
		flags    flagWant
	}{
		{"add 50+50", Add8, 0x50, 0x50, false, 0xA0, flagWant{of: true, sf: true, pf: true}},
		{"add carry out", Add8, 0x01, 0xFF, false, 0x00, flagWant{cf: true, zf: true, pf: true}},
		{"add signed overflow", Add8, 0x80, 0x80, false, 0x00, flagWant{cf: true, of: true, zf: true, pf: true}},
		{"adc uses carry", Adc8, 0x01, 0x01, true, 0x03, flagWant{pf: true}},
		{"adc carry chain", Adc8, 0x00, 0xFF, true, 0x00, flagWant{cf: true, zf: true, pf: true}},
		{"sub 00-01", Sub8, 0x01, 0x00, false, 0xFF, flagWant{cf: true, sf: true, pf: true}},
		{"sub equal", Sub8, 0x42, 0x42, false, 0x00, flagWant{zf: true, pf: true}},
		{"sub signed overflow", Sub8, 0x01, 0x80, false, 0x7F, flagWant{of: true}},
		{"sbb borrow in", Sbb8, 0x01, 0x01, true, 0xFF, flagWant{cf: true, sf: true, pf: true}},
		{"sbb no borrow", Sbb8, 0x01, 0x03, false, 0x02, flagWant{}},
	}
	for _, tc := range tests {
		var f Flags
		f.Set(FlagCF, tc.carry)
		got := tc.op(&f, tc.src, tc.dst)
		if got != tc.want {
			t.Errorf("%s: expected %02X, got %02X", tc.name, tc.want, got)
		}
		checkFlags(t, tc.name, f, tc.flags)
	}
}

func TestAddSub16(t *testing.T) {
	tests := []struct {
		name     string
		op       func(*Flags, uint16, uint16) uint16
		src, dst uint16
		want     uint16
		flags    flagWant
	}{
		{"add no carry", Add16, 0x00FF, 0x0001, 0x0100, flagWant{pf: true}},
		{"add carry", Add16, 0x0001, 0xFFFF, 0x0000, flagWant{cf: true, zf: true, pf: true}},
		{"add overflow", Add16, 0x4000, 0x4000, 0x8000, flagWant{of: true, sf: true, pf: true}},
		{"sub borrow", Sub16, 0x0002, 0x0001, 0xFFFF, flagWant{cf: true, sf: true, pf: true}},
		{"sub overflow", Sub16, 0xFFFF, 0x7FFF, 0x8000, flagWant{cf: true, of: true, sf: true, pf: true}},
	}
	for _, tc := range tests {
		var f Flags
		got := tc.op(&f, tc.src, tc.dst)
		if got != tc.want {
			t.Errorf("%s: expected %04X, got %04X", tc.name, tc.want, got)
		}
		checkFlags(t, tc.name, f, tc.flags)
	}
}

func TestAuxiliaryCarry(t *testing.T) {
	is := is.New(t)
	var f Flags
	Add8(&f, 0x01, 0x0F)
	is.True(f.Get(FlagAF))
	Add8(&f, 0x01, 0x01)
	is.True(!f.Get(FlagAF))
	Sub8(&f, 0x01, 0x10)
	is.True(f.Get(FlagAF))
}

func TestLogicClearsCarryAndOverflow(t *testing.T) {
	is := is.New(t)
	f := Flags(FlagCF | FlagOF)
	is.Equal(And8(&f, 0x0F, 0xF3), uint8(0x03))
	checkFlags(t, "and", f, flagWant{pf: true})

	f = Flags(FlagCF | FlagOF)
	is.Equal(Or16(&f, 0x8000, 0x0001), uint16(0x8001))
	checkFlags(t, "or", f, flagWant{sf: true})

	is.Equal(Xor16(&f, 0x1234, 0x1234), uint16(0))
	checkFlags(t, "xor", f, flagWant{zf: true, pf: true})
}

func TestIncDecPreserveCarry(t *testing.T) {
	is := is.New(t)
	f := Flags(FlagCF)
	is.Equal(Inc8(&f, 0xFF), uint8(0))
	is.True(f.Get(FlagCF))
	is.True(f.Get(FlagZF))

	f = 0
	is.Equal(Inc16(&f, 0xFFFF), uint16(0))
	is.True(!f.Get(FlagCF))

	f = 0
	is.Equal(Dec16(&f, 0x8000), uint16(0x7FFF))
	is.True(f.Get(FlagOF))
	is.True(!f.Get(FlagCF))

	f = Flags(FlagCF)
	is.Equal(Dec8(&f, 0x01), uint8(0))
	is.True(f.Get(FlagCF))
}

func TestNeg(t *testing.T) {
	is := is.New(t)
	var f Flags
	is.Equal(Neg8(&f, 0x01), uint8(0xFF))
	is.True(f.Get(FlagCF))
	is.Equal(Neg8(&f, 0x00), uint8(0x00))
	is.True(!f.Get(FlagCF))
	is.Equal(Neg16(&f, 0x8000), uint16(0x8000))
	is.True(f.Get(FlagOF))
}

func TestMultiply(t *testing.T) {
	is := is.New(t)
	var f Flags
	is.Equal(Mul8(&f, 0x10, 0x10), uint16(0x0100))
	is.True(f.Get(FlagCF) && f.Get(FlagOF))
	is.Equal(Mul8(&f, 0x02, 0x03), uint16(0x0006))
	is.True(!f.Get(FlagCF) && !f.Get(FlagOF))

	hi, lo := Mul16(&f, 0x1000, 0x0010)
	is.Equal(hi, uint16(0x0001))
	is.Equal(lo, uint16(0x0000))
	is.True(f.Get(FlagCF))

	is.Equal(Imul8(&f, 0xFF, 0x02), uint16(0xFFFE)) // -1 * 2
	is.True(!f.Get(FlagCF))
	is.Equal(Imul8(&f, 0x40, 0x02), uint16(0x0080)) // 64 * 2 does not fit a signed byte
	is.True(f.Get(FlagCF) && f.Get(FlagOF))

	hi, lo = Imul16(&f, 0xFFFF, 0xFFFF)
	is.Equal(hi, uint16(0))
	is.Equal(lo, uint16(1))
	is.True(!f.Get(FlagOF))
}

func TestDivide(t *testing.T) {
	tests := []struct {
		name         string
		dx, ax, src  uint16
		signed, word bool
		q, r         uint16
		fault        bool
	}{
		{"div8", 0, 0x0064, 0x07, false, false, 14, 2, false},
		{"div8 overflow", 0, 0x1000, 0x01, false, false, 0, 0, true},
		{"div8 by zero", 0, 0x0001, 0x00, false, false, 0, 0, true},
		{"div16 uses dx as high word", 0x0001, 0x0000, 0x0002, false, true, 0x8000, 0, false},
		{"div16 remainder", 0, 0x0007, 0x0002, false, true, 3, 1, false},
		{"div16 overflow", 0x0002, 0x0000, 0x0002, false, true, 0, 0, true},
		{"idiv8 negative", 0, 0xFFF9, 0x02, true, false, 0xFD, 0xFF, false}, // -7/2 = -3 r -1
		{"idiv8 overflow", 0, 0x0100, 0x01, true, false, 0, 0, true},
		{"idiv16", 0xFFFF, 0xFFF9, 0x0002, true, true, 0xFFFD, 0xFFFF, false},
		{"idiv16 overflow", 0xFFFF, 0x8000, 0xFFFF, true, true, 0, 0, true},
	}
	for _, tc := range tests {
		var q, r uint16
		var err error
		switch {
		case tc.word && tc.signed:
			q, r, err = Idiv16(tc.dx, tc.ax, tc.src)
		case tc.word:
			q, r, err = Div16(tc.dx, tc.ax, tc.src)
		default:
			div := Div8
			if tc.signed {
				div = Idiv8
			}
			var q8, r8 uint8
			q8, r8, err = div(tc.ax, uint8(tc.src))
			q, r = uint16(q8), uint16(r8)
		}
		if tc.fault {
			if !errors.Is(err, ErrDivide) {
				t.Errorf("%s: expected ErrDivide, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if q != tc.q || r != tc.r {
			t.Errorf("%s: expected %X r %X, got %X r %X", tc.name, tc.q, tc.r, q, r)
		}
	}
}

func TestShifts(t *testing.T) {
	tests := []struct {
		name    string
		op      uint8
		count   uint8
		in      uint8
		cf      bool
		want    uint8
		wantCF  bool
		checkOF bool
		wantOF  bool
	}{
		{"rol 1", ShiftROL, 1, 0x81, false, 0x03, true, true, true},
		{"ror 1", ShiftROR, 1, 0x01, false, 0x80, true, true, true},
		{"rcl 1 with carry", ShiftRCL, 1, 0x80, true, 0x01, true, false, false},
		{"rcr 1 with carry", ShiftRCR, 1, 0x01, true, 0x80, true, false, false},
		{"shl 1", ShiftSHL, 1, 0x81, false, 0x02, true, true, true},
		{"shl 3", ShiftSHL, 3, 0x21, false, 0x08, true, false, false},
		{"sal alias", ShiftSAL, 1, 0x40, false, 0x80, false, true, true},
		{"shr 1", ShiftSHR, 1, 0x81, false, 0x40, true, true, true},
		{"sar 1", ShiftSAR, 1, 0x81, false, 0xC0, true, true, false},
		{"sar 7", ShiftSAR, 7, 0x80, false, 0xFF, false, false, false},
		{"rol 8 is a full turn", ShiftROL, 8, 0x81, false, 0x81, true, false, false},
	}
	for _, tc := range tests {
		var f Flags
		f.Set(FlagCF, tc.cf)
		got := Shift8(&f, tc.op, tc.count, tc.in)
		if got != tc.want {
			t.Errorf("%s: expected %02X, got %02X", tc.name, tc.want, got)
		}
		if f.Get(FlagCF) != tc.wantCF {
			t.Errorf("%s: expected CF %v", tc.name, tc.wantCF)
		}
		if tc.checkOF && f.Get(FlagOF) != tc.wantOF {
			t.Errorf("%s: expected OF %v", tc.name, tc.wantOF)
		}
	}
}

func TestShiftByZeroChangesNothing(t *testing.T) {
	is := is.New(t)
	f := Flags(FlagCF | FlagZF | FlagOF)
	for op := uint8(0); op < 8; op++ {
		is.Equal(Shift16(&f, op, 0, 0x1234), uint16(0x1234))
		is.Equal(Shift16(&f, op, 0x20, 0x1234), uint16(0x1234)) // count masked to five bits
		is.Equal(f, Flags(FlagCF|FlagZF|FlagOF))
	}
}

func TestShift16(t *testing.T) {
	is := is.New(t)
	var f Flags
	is.Equal(Shift16(&f, ShiftSHR, 4, 0x1234), uint16(0x0123))
	is.True(!f.Get(FlagCF))
	is.Equal(Shift16(&f, ShiftSAR, 4, 0x8000), uint16(0xF800))
	is.Equal(Shift16(&f, ShiftROR, 4, 0x1234), uint16(0x4123))
	is.Equal(Shift16(&f, ShiftSHL, 16, 0x0001), uint16(0))
	is.True(f.Get(FlagCF))
	is.True(f.Get(FlagZF))
}
