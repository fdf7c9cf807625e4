package cpu

import (
	"testing"

	"github.com/matryer/is"
)

func TestResetFlags(t *testing.T) {
	is := is.New(t)
	c := New(nil)
	is.True(c.Flags.Get(FlagZF))
	is.True(c.Flags.Get(FlagIF))
	is.True(!c.Flags.Get(FlagCF))
	is.Equal(c.Flags, Flags(FlagZF|FlagIF))
}

func TestFlagSetPreservesOtherBits(t *testing.T) {
	all := []Flag{FlagCF, FlagPF, FlagAF, FlagZF, FlagSF, FlagTF, FlagIF, FlagDF, FlagOF, FlagNT, FlagRF, FlagVM, FlagAC, FlagVIF, FlagVIP, FlagID}
	// Bits 1, 3, 5, 15 and 22-31 have no name.
	const spare = Flags(1<<1 | 1<<3 | 1<<5 | 1<<15 | 0xFFC00000)
	for _, fl := range all {
		f := spare
		f.Set(fl, true)
		if f != spare|Flags(fl) {
			t.Errorf("setting %X: expected %08X, got %08X", fl, uint32(spare|Flags(fl)), uint32(f))
		}
		f.Set(fl, false)
		if f != spare {
			t.Errorf("clearing %X: expected %08X, got %08X", fl, uint32(spare), uint32(f))
		}
	}
}

func TestIOPL(t *testing.T) {
	is := is.New(t)
	f := Flags(FlagCF | FlagIF | FlagOF)
	for level := uint8(0); level < 4; level++ {
		f.SetIOPL(level)
		is.Equal(f.IOPL(), level)
		is.True(f.Get(FlagCF))
		is.True(f.Get(FlagIF))
		is.True(f.Get(FlagOF))
	}
	f.SetIOPL(0)
	is.Equal(f, Flags(FlagCF|FlagIF|FlagOF))
}

func TestIFAndOFAreIndependent(t *testing.T) {
	is := is.New(t)
	var f Flags
	f.Set(FlagIF, true)
	is.True(!f.Get(FlagOF))
	f.Set(FlagOF, true)
	f.Set(FlagIF, false)
	is.True(f.Get(FlagOF))
}

func TestConditions(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		cc    uint8
		want  bool
	}{
		{"jo set", Flags(FlagOF), 0x0, true},
		{"jno set", Flags(FlagOF), 0x1, false},
		{"jb carry", Flags(FlagCF), 0x2, true},
		{"jnb carry", Flags(FlagCF), 0x3, false},
		{"jz zero", Flags(FlagZF), 0x4, true},
		{"jnz clear", 0, 0x5, true},
		{"jbe zero", Flags(FlagZF), 0x6, true},
		{"ja clear", 0, 0x7, true},
		{"ja carry", Flags(FlagCF), 0x7, false},
		{"js sign", Flags(FlagSF), 0x8, true},
		{"jp parity", Flags(FlagPF), 0xA, true},
		{"jl sf!=of", Flags(FlagSF), 0xC, true},
		{"jl sf==of", Flags(FlagSF | FlagOF), 0xC, false},
		{"jge sf==of", Flags(FlagSF | FlagOF), 0xD, true},
		{"jle zero", Flags(FlagZF), 0xE, true},
		{"jg clear", 0, 0xF, true},
		{"jg sf!=of", Flags(FlagOF), 0xF, false},
	}
	for _, tc := range tests {
		if got := tc.flags.condition(tc.cc); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestFlagsString(t *testing.T) {
	f := Flags(FlagZF | FlagCF)
	want := "of df if tf sf ZF af pf CF"
	if got := f.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
