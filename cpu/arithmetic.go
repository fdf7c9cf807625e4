package cpu

import "fmt"

// width describes an operand size for the shared ALU helpers.
type width struct {
	mask, msb uint32
	bits      uint32
}

var (
	w8  = width{mask: 0xFF, msb: 0x80, bits: 8}
	w16 = width{mask: 0xFFFF, msb: 0x8000, bits: 16}
)

func (f *Flags) setSZP(r uint32, w width) {
	f.Set(FlagZF, r&w.mask == 0)
	f.Set(FlagSF, r&w.msb != 0)
	f.Set(FlagPF, parityTable[uint8(r)])
}

// add computes dst + src + carry. Carry and overflow come from the widened
// sum, not from wrap-around.
func add(f *Flags, src, dst, carry uint32, w width) uint32 {
	r := dst + src + carry
	f.Set(FlagCF, r > w.mask)
	f.Set(FlagOF, ^(dst^src)&(dst^r)&w.msb != 0)
	f.Set(FlagAF, (dst^src^r)&0x10 != 0)
	r &= w.mask
	f.setSZP(r, w)
	return r
}

// sub computes dst - src - borrow. CF is set when a borrow occurred.
func sub(f *Flags, src, dst, borrow uint32, w width) uint32 {
	r := (dst - src - borrow) & w.mask
	f.Set(FlagCF, dst < src+borrow)
	f.Set(FlagOF, (dst^src)&(dst^r)&w.msb != 0)
	f.Set(FlagAF, (dst^src^r)&0x10 != 0)
	f.setSZP(r, w)
	return r
}

func logic(f *Flags, r uint32, w width) uint32 {
	r &= w.mask
	f.Set(FlagCF, false)
	f.Set(FlagOF, false)
	f.Set(FlagAF, false)
	f.setSZP(r, w)
	return r
}

func carryIn(f *Flags) uint32 {
	if f.Get(FlagCF) {
		return 1
	}
	return 0
}

// Add8 returns dst + src and sets CF, OF, AF, SF, ZF and PF.
func Add8(f *Flags, src, dst uint8) uint8 { return uint8(add(f, uint32(src), uint32(dst), 0, w8)) }

// Add16 returns dst + src and sets CF, OF, AF, SF, ZF and PF.
func Add16(f *Flags, src, dst uint16) uint16 {
	return uint16(add(f, uint32(src), uint32(dst), 0, w16))
}

// Adc8 adds with the carry flag as carry-in.
func Adc8(f *Flags, src, dst uint8) uint8 {
	return uint8(add(f, uint32(src), uint32(dst), carryIn(f), w8))
}

// Adc16 adds with the carry flag as carry-in.
func Adc16(f *Flags, src, dst uint16) uint16 {
	return uint16(add(f, uint32(src), uint32(dst), carryIn(f), w16))
}

// Sub8 returns dst - src. CF reports a borrow.
func Sub8(f *Flags, src, dst uint8) uint8 { return uint8(sub(f, uint32(src), uint32(dst), 0, w8)) }

// Sub16 returns dst - src. CF reports a borrow.
func Sub16(f *Flags, src, dst uint16) uint16 {
	return uint16(sub(f, uint32(src), uint32(dst), 0, w16))
}

// Sbb8 subtracts with the carry flag as borrow-in.
func Sbb8(f *Flags, src, dst uint8) uint8 {
	return uint8(sub(f, uint32(src), uint32(dst), carryIn(f), w8))
}

// Sbb16 subtracts with the carry flag as borrow-in.
func Sbb16(f *Flags, src, dst uint16) uint16 {
	return uint16(sub(f, uint32(src), uint32(dst), carryIn(f), w16))
}

// And8 and friends clear CF and OF.
func And8(f *Flags, src, dst uint8) uint8 {
	return uint8(logic(f, uint32(dst&src), w8))
}

func And16(f *Flags, src, dst uint16) uint16 {
	return uint16(logic(f, uint32(dst&src), w16))
}

func Or8(f *Flags, src, dst uint8) uint8 {
	return uint8(logic(f, uint32(dst|src), w8))
}

func Or16(f *Flags, src, dst uint16) uint16 {
	return uint16(logic(f, uint32(dst|src), w16))
}

func Xor8(f *Flags, src, dst uint8) uint8 {
	return uint8(logic(f, uint32(dst^src), w8))
}

func Xor16(f *Flags, src, dst uint16) uint16 {
	return uint16(logic(f, uint32(dst^src), w16))
}

// Inc8 adds one, leaving CF alone.
func Inc8(f *Flags, dst uint8) uint8 {
	cf := f.Get(FlagCF)
	r := Add8(f, 1, dst)
	f.Set(FlagCF, cf)
	return r
}

// Inc16 adds one, leaving CF alone.
func Inc16(f *Flags, dst uint16) uint16 {
	cf := f.Get(FlagCF)
	r := Add16(f, 1, dst)
	f.Set(FlagCF, cf)
	return r
}

// Dec8 subtracts one, leaving CF alone.
func Dec8(f *Flags, dst uint8) uint8 {
	cf := f.Get(FlagCF)
	r := Sub8(f, 1, dst)
	f.Set(FlagCF, cf)
	return r
}

// Dec16 subtracts one, leaving CF alone.
func Dec16(f *Flags, dst uint16) uint16 {
	cf := f.Get(FlagCF)
	r := Sub16(f, 1, dst)
	f.Set(FlagCF, cf)
	return r
}

// Neg8 returns 0 - dst. CF is set unless dst was zero.
func Neg8(f *Flags, dst uint8) uint8 { return Sub8(f, dst, 0) }

// Neg16 returns 0 - dst. CF is set unless dst was zero.
func Neg16(f *Flags, dst uint16) uint16 { return Sub16(f, dst, 0) }

// alu runs one of the eight classic operations by its encoding and reports
// whether the result is written back (CMP only sets flags).
func alu(f *Flags, op uint8, src, dst uint32, w width) (uint32, bool) {
	switch op & 7 {
	case 0:
		return add(f, src, dst, 0, w), true
	case 1:
		return logic(f, dst|src, w), true
	case 2:
		return add(f, src, dst, carryIn(f), w), true
	case 3:
		return sub(f, src, dst, carryIn(f), w), true
	case 4:
		return logic(f, dst&src, w), true
	case 5:
		return sub(f, src, dst, 0, w), true
	case 6:
		return logic(f, dst^src, w), true
	}
	sub(f, src, dst, 0, w)
	return dst, false
}

// Mul8 returns AL * src as a word. CF and OF are set when the high byte is non-zero.
func Mul8(f *Flags, al, src uint8) uint16 {
	r := uint16(al) * uint16(src)
	f.Set(FlagCF, r>>8 != 0)
	f.Set(FlagOF, r>>8 != 0)
	return r
}

// Mul16 returns AX * src as DX:AX. CF and OF are set when DX is non-zero.
func Mul16(f *Flags, ax, src uint16) (hi, lo uint16) {
	r := uint32(ax) * uint32(src)
	hi, lo = uint16(r>>16), uint16(r)
	f.Set(FlagCF, hi != 0)
	f.Set(FlagOF, hi != 0)
	return hi, lo
}

// Imul8 is the signed form of Mul8. CF and OF are set when AH is more than
// the sign extension of AL.
func Imul8(f *Flags, al, src uint8) uint16 {
	r := int16(int8(al)) * int16(int8(src))
	wide := r != int16(int8(r))
	f.Set(FlagCF, wide)
	f.Set(FlagOF, wide)
	return uint16(r)
}

// Imul16 is the signed form of Mul16.
func Imul16(f *Flags, ax, src uint16) (hi, lo uint16) {
	r := int32(int16(ax)) * int32(int16(src))
	wide := r != int32(int16(r))
	f.Set(FlagCF, wide)
	f.Set(FlagOF, wide)
	return uint16(uint32(r) >> 16), uint16(r)
}

// Div8 divides AX by src. A zero divisor or a quotient above 0xFF is a divide fault.
func Div8(ax uint16, src uint8) (q, r uint8, err error) {
	if src == 0 {
		return 0, 0, fmt.Errorf("division by zero: %w", ErrDivide)
	}
	quo := ax / uint16(src)
	if quo > 0xFF {
		return 0, 0, fmt.Errorf("quotient %04X overflows byte: %w", quo, ErrDivide)
	}
	return uint8(quo), uint8(ax % uint16(src)), nil
}

// Div16 divides DX:AX by src. A zero divisor or a quotient above 0xFFFF is a divide fault.
func Div16(dx, ax, src uint16) (q, r uint16, err error) {
	if src == 0 {
		return 0, 0, fmt.Errorf("division by zero: %w", ErrDivide)
	}
	num := uint32(dx)<<16 | uint32(ax)
	quo := num / uint32(src)
	if quo > 0xFFFF {
		return 0, 0, fmt.Errorf("quotient %08X overflows word: %w", quo, ErrDivide)
	}
	return uint16(quo), uint16(num % uint32(src)), nil
}

// Idiv8 is the signed form of Div8. Quotients truncate toward zero.
func Idiv8(ax uint16, src uint8) (q, r uint8, err error) {
	if src == 0 {
		return 0, 0, fmt.Errorf("division by zero: %w", ErrDivide)
	}
	num, den := int32(int16(ax)), int32(int8(src))
	quo := num / den
	if quo > 127 || quo < -128 {
		return 0, 0, fmt.Errorf("quotient %d overflows byte: %w", quo, ErrDivide)
	}
	return uint8(int8(quo)), uint8(int8(num % den)), nil
}

// Idiv16 is the signed form of Div16.
func Idiv16(dx, ax, src uint16) (q, r uint16, err error) {
	if src == 0 {
		return 0, 0, fmt.Errorf("division by zero: %w", ErrDivide)
	}
	num, den := int64(int32(uint32(dx)<<16|uint32(ax))), int64(int16(src))
	quo := num / den
	if quo > 32767 || quo < -32768 {
		return 0, 0, fmt.Errorf("quotient %d overflows word: %w", quo, ErrDivide)
	}
	return uint16(int16(quo)), uint16(int16(num % den)), nil
}

// Shift operations by ModRM reg field.
const (
	ShiftROL uint8 = iota
	ShiftROR
	ShiftRCL
	ShiftRCR
	ShiftSHL
	ShiftSHR
	ShiftSAL // undocumented alias of SHL
	ShiftSAR
)

// Shift8 applies a shift or rotate to a byte. The count is masked to five
// bits; a zero count changes nothing, flags included.
func Shift8(f *Flags, op, count, dst uint8) uint8 {
	return uint8(shift(f, op, uint32(count), uint32(dst), w8))
}

// Shift16 applies a shift or rotate to a word.
func Shift16(f *Flags, op, count uint8, dst uint16) uint16 {
	return uint16(shift(f, op, uint32(count), uint32(dst), w16))
}

func shift(f *Flags, op uint8, count, v uint32, w width) uint32 {
	count &= 0x1F
	if count == 0 {
		return v
	}
	msb := func(x uint32) bool { return x&w.msb != 0 }
	var r uint32
	switch op & 7 {
	case ShiftROL:
		n := count % w.bits
		r = (v<<n | v>>(w.bits-n)) & w.mask
		f.Set(FlagCF, r&1 != 0)
		f.Set(FlagOF, msb(r) != f.Get(FlagCF))
		return r
	case ShiftROR:
		n := count % w.bits
		r = (v>>n | v<<(w.bits-n)) & w.mask
		f.Set(FlagCF, msb(r))
		f.Set(FlagOF, msb(r) != msb(r<<1))
		return r
	case ShiftRCL:
		r = v
		cf := f.Get(FlagCF)
		for i := uint32(0); i < count; i++ {
			out := msb(r)
			r = (r << 1) & w.mask
			if cf {
				r |= 1
			}
			cf = out
		}
		f.Set(FlagCF, cf)
		f.Set(FlagOF, msb(r) != cf)
		return r
	case ShiftRCR:
		r = v
		cf := f.Get(FlagCF)
		f.Set(FlagOF, msb(r) != cf)
		for i := uint32(0); i < count; i++ {
			out := r&1 != 0
			r >>= 1
			if cf {
				r |= w.msb
			}
			cf = out
		}
		f.Set(FlagCF, cf)
		return r
	case ShiftSHL, ShiftSAL:
		f.Set(FlagCF, count <= w.bits && (v<<(count-1))&w.msb != 0)
		r = (v << count) & w.mask
		f.Set(FlagOF, msb(r) != f.Get(FlagCF))
	case ShiftSHR:
		f.Set(FlagCF, (v>>(count-1))&1 != 0)
		f.Set(FlagOF, msb(v))
		r = v >> count
	case ShiftSAR:
		sh := 32 - w.bits
		s := int32(v << sh)
		s >>= sh
		f.Set(FlagCF, (s>>(count-1))&1 != 0)
		f.Set(FlagOF, false)
		r = uint32(s>>count) & w.mask
	}
	f.setSZP(r, w)
	return r
}
