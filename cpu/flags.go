package cpu

import "strings"

// Flag is one bit (or field) of the flags register.
type Flag uint32

// Flags register bits.
const (
	FlagCF   Flag = 1 << 0  // carry
	FlagPF   Flag = 1 << 2  // parity
	FlagAF   Flag = 1 << 4  // auxiliary carry
	FlagZF   Flag = 1 << 6  // zero
	FlagSF   Flag = 1 << 7  // sign
	FlagTF   Flag = 1 << 8  // trap
	FlagIF   Flag = 1 << 9  // interrupt enable
	FlagDF   Flag = 1 << 10 // direction
	FlagOF   Flag = 1 << 11 // overflow
	FlagIOPL Flag = 3 << 12 // I/O privilege level, read with IOPL
	FlagNT   Flag = 1 << 14 // nested task
	FlagRF   Flag = 1 << 16 // resume
	FlagVM   Flag = 1 << 17 // virtual-8086 mode
	FlagAC   Flag = 1 << 18 // alignment check
	FlagVIF  Flag = 1 << 19 // virtual interrupt
	FlagVIP  Flag = 1 << 20 // virtual interrupt pending
	FlagID   Flag = 1 << 21 // CPUID available
)

// resetFlags is the power-on value of the flags register.
const resetFlags = Flags(FlagZF | FlagIF)

// Flags is the flags register. Bits without a name are preserved as written.
type Flags uint32

// Get reports whether every bit of flag is set.
func (f Flags) Get(flag Flag) bool {
	return uint32(f)&uint32(flag) == uint32(flag)
}

// Set sets or clears flag without touching any other bit.
func (f *Flags) Set(flag Flag, v bool) {
	if v {
		*f |= Flags(flag)
	} else {
		*f &^= Flags(flag)
	}
}

// IOPL returns the 2-bit I/O privilege level.
func (f Flags) IOPL() uint8 {
	return uint8((uint32(f) >> 12) & 3)
}

// SetIOPL writes the I/O privilege level.
func (f *Flags) SetIOPL(level uint8) {
	*f = (*f &^ Flags(FlagIOPL)) | Flags(uint32(level&3)<<12)
}

// condition evaluates a Jcc condition code (the low nibble of 70-7F).
func (f Flags) condition(cc uint8) bool {
	var r bool
	switch (cc >> 1) & 7 {
	case 0:
		r = f.Get(FlagOF)
	case 1:
		r = f.Get(FlagCF)
	case 2:
		r = f.Get(FlagZF)
	case 3:
		r = f.Get(FlagCF) || f.Get(FlagZF)
	case 4:
		r = f.Get(FlagSF)
	case 5:
		r = f.Get(FlagPF)
	case 6:
		r = f.Get(FlagSF) != f.Get(FlagOF)
	case 7:
		r = f.Get(FlagZF) || f.Get(FlagSF) != f.Get(FlagOF)
	}
	if cc&1 != 0 {
		r = !r
	}
	return r
}

var flagOrder = []struct {
	flag Flag
	name string
}{
	{FlagOF, "of"}, {FlagDF, "df"}, {FlagIF, "if"}, {FlagTF, "tf"},
	{FlagSF, "sf"}, {FlagZF, "zf"}, {FlagAF, "af"}, {FlagPF, "pf"}, {FlagCF, "cf"},
}

// String lists the status flags, upper case when set.
func (f Flags) String() string {
	names := make([]string, 0, len(flagOrder))
	for _, fl := range flagOrder {
		if f.Get(fl.flag) {
			names = append(names, strings.ToUpper(fl.name))
		} else {
			names = append(names, fl.name)
		}
	}
	return strings.Join(names, " ")
}

// parityTable holds true for every byte with an even number of set bits.
var parityTable [256]bool

func init() {
	for i := 0; i < 256; i++ {
		n := 0
		for v := i; v != 0; v >>= 1 {
			n += v & 1
		}
		parityTable[i] = n%2 == 0
	}
}
