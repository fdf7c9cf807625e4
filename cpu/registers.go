package cpu

import "fmt"

// Reg selects one register slot. The order matches the x86 register encoding.
type Reg int

const (
	EAX Reg = iota
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
	// EIP is the instruction pointer slot.
	EIP

	numRegs
)

var regNames = [numRegs]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi", "eip"}

// Register names by ModRM/opcode encoding.
var (
	reg8Names  = [8]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}
	reg16Names = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}
)

func (r Reg) String() string {
	if r < 0 || r >= numRegs {
		return fmt.Sprintf("reg(%d)", int(r))
	}
	return regNames[r]
}

// Registers is the register file. Each slot is a single 32-bit cell and every
// narrower view masks into that same cell.
type Registers struct {
	r [numRegs]uint32
}

// Get reads a view of a register slot.
func (rf *Registers) Get(reg Reg, size Size) (uint32, error) {
	if reg < 0 || reg >= numRegs {
		return 0, fmt.Errorf("register %d: %w", int(reg), ErrInvalidOperand)
	}
	v := rf.r[reg]
	switch size {
	case SizeByte:
		return v & 0xFF, nil
	case SizeByteHigh:
		if reg > EBX {
			return 0, fmt.Errorf("no high byte view of %s: %w", reg, ErrInvalidOperand)
		}
		return (v >> 8) & 0xFF, nil
	case SizeWord:
		return v & 0xFFFF, nil
	case SizeDword:
		return v, nil
	}
	return 0, fmt.Errorf("invalid size %d for %s: %w", size, reg, ErrInvalidOperand)
}

// Set writes a view of a register slot, leaving the other bits of the slot alone.
func (rf *Registers) Set(reg Reg, size Size, value uint32) error {
	if reg < 0 || reg >= numRegs {
		return fmt.Errorf("register %d: %w", int(reg), ErrInvalidOperand)
	}
	switch size {
	case SizeByte:
		rf.r[reg] = (rf.r[reg] & 0xFFFFFF00) | (value & 0xFF)
	case SizeByteHigh:
		if reg > EBX {
			return fmt.Errorf("no high byte view of %s: %w", reg, ErrInvalidOperand)
		}
		rf.r[reg] = (rf.r[reg] & 0xFFFF00FF) | ((value & 0xFF) << 8)
	case SizeWord:
		rf.r[reg] = (rf.r[reg] & 0xFFFF0000) | (value & 0xFFFF)
	case SizeDword:
		rf.r[reg] = value
	default:
		return fmt.Errorf("invalid size %d for %s: %w", size, reg, ErrInvalidOperand)
	}
	return nil
}

// Reg8 returns an 8-bit register by encoding: AL, CL, DL, BL, AH, CH, DH, BH.
func (rf *Registers) Reg8(idx uint8) uint8 {
	idx &= 7
	if idx < 4 {
		return uint8(rf.r[idx])
	}
	return uint8(rf.r[idx-4] >> 8)
}

// SetReg8 writes an 8-bit register by encoding.
func (rf *Registers) SetReg8(idx uint8, v uint8) {
	idx &= 7
	if idx < 4 {
		rf.r[idx] = (rf.r[idx] & 0xFFFFFF00) | uint32(v)
		return
	}
	rf.r[idx-4] = (rf.r[idx-4] & 0xFFFF00FF) | (uint32(v) << 8)
}

// Reg16 returns a 16-bit register by encoding: AX, CX, DX, BX, SP, BP, SI, DI.
func (rf *Registers) Reg16(idx uint8) uint16 {
	return uint16(rf.r[idx&7])
}

// SetReg16 writes a 16-bit register by encoding.
func (rf *Registers) SetReg16(idx uint8, v uint16) {
	rf.r[idx&7] = (rf.r[idx&7] & 0xFFFF0000) | uint32(v)
}

func (rf *Registers) word(reg Reg) uint16 {
	return uint16(rf.r[reg])
}

func (rf *Registers) setWord(reg Reg, v uint16) {
	rf.r[reg] = (rf.r[reg] & 0xFFFF0000) | uint32(v)
}

func (rf *Registers) low(reg Reg) uint8 {
	return uint8(rf.r[reg])
}

func (rf *Registers) setLow(reg Reg, v uint8) {
	rf.r[reg] = (rf.r[reg] & 0xFFFFFF00) | uint32(v)
}

func (rf *Registers) high(reg Reg) uint8 {
	return uint8(rf.r[reg] >> 8)
}

func (rf *Registers) setHigh(reg Reg, v uint8) {
	rf.r[reg] = (rf.r[reg] & 0xFFFF00FF) | (uint32(v) << 8)
}

func (rf *Registers) dword(reg Reg) uint32 {
	return rf.r[reg]
}

func (rf *Registers) setDword(reg Reg, v uint32) {
	rf.r[reg] = v
}

// 32-bit views.
func (rf *Registers) EAX() uint32 { return rf.dword(EAX) }
func (rf *Registers) ECX() uint32 { return rf.dword(ECX) }
func (rf *Registers) EDX() uint32 { return rf.dword(EDX) }
func (rf *Registers) EBX() uint32 { return rf.dword(EBX) }
func (rf *Registers) ESP() uint32 { return rf.dword(ESP) }
func (rf *Registers) EBP() uint32 { return rf.dword(EBP) }
func (rf *Registers) ESI() uint32 { return rf.dword(ESI) }
func (rf *Registers) EDI() uint32 { return rf.dword(EDI) }
func (rf *Registers) EIP() uint32 { return rf.dword(EIP) }

func (rf *Registers) SetEAX(v uint32) { rf.setDword(EAX, v) }
func (rf *Registers) SetECX(v uint32) { rf.setDword(ECX, v) }
func (rf *Registers) SetEDX(v uint32) { rf.setDword(EDX, v) }
func (rf *Registers) SetEBX(v uint32) { rf.setDword(EBX, v) }
func (rf *Registers) SetESP(v uint32) { rf.setDword(ESP, v) }
func (rf *Registers) SetEBP(v uint32) { rf.setDword(EBP, v) }
func (rf *Registers) SetESI(v uint32) { rf.setDword(ESI, v) }
func (rf *Registers) SetEDI(v uint32) { rf.setDword(EDI, v) }

// 16-bit views.
func (rf *Registers) AX() uint16 { return rf.word(EAX) }
func (rf *Registers) CX() uint16 { return rf.word(ECX) }
func (rf *Registers) DX() uint16 { return rf.word(EDX) }
func (rf *Registers) BX() uint16 { return rf.word(EBX) }
func (rf *Registers) SP() uint16 { return rf.word(ESP) }
func (rf *Registers) BP() uint16 { return rf.word(EBP) }
func (rf *Registers) SI() uint16 { return rf.word(ESI) }
func (rf *Registers) DI() uint16 { return rf.word(EDI) }
func (rf *Registers) IP() uint16 { return rf.word(EIP) }

func (rf *Registers) SetAX(v uint16) { rf.setWord(EAX, v) }
func (rf *Registers) SetCX(v uint16) { rf.setWord(ECX, v) }
func (rf *Registers) SetDX(v uint16) { rf.setWord(EDX, v) }
func (rf *Registers) SetBX(v uint16) { rf.setWord(EBX, v) }
func (rf *Registers) SetSP(v uint16) { rf.setWord(ESP, v) }
func (rf *Registers) SetBP(v uint16) { rf.setWord(EBP, v) }
func (rf *Registers) SetSI(v uint16) { rf.setWord(ESI, v) }
func (rf *Registers) SetDI(v uint16) { rf.setWord(EDI, v) }
func (rf *Registers) SetIP(v uint16) { rf.setWord(EIP, v) }

// 8-bit views.
func (rf *Registers) AL() uint8 { return rf.low(EAX) }
func (rf *Registers) CL() uint8 { return rf.low(ECX) }
func (rf *Registers) DL() uint8 { return rf.low(EDX) }
func (rf *Registers) BL() uint8 { return rf.low(EBX) }
func (rf *Registers) AH() uint8 { return rf.high(EAX) }
func (rf *Registers) CH() uint8 { return rf.high(ECX) }
func (rf *Registers) DH() uint8 { return rf.high(EDX) }
func (rf *Registers) BH() uint8 { return rf.high(EBX) }

func (rf *Registers) SetAL(v uint8) { rf.setLow(EAX, v) }
func (rf *Registers) SetCL(v uint8) { rf.setLow(ECX, v) }
func (rf *Registers) SetDL(v uint8) { rf.setLow(EDX, v) }
func (rf *Registers) SetBL(v uint8) { rf.setLow(EBX, v) }
func (rf *Registers) SetAH(v uint8) { rf.setHigh(EAX, v) }
func (rf *Registers) SetCH(v uint8) { rf.setHigh(ECX, v) }
func (rf *Registers) SetDH(v uint8) { rf.setHigh(EDX, v) }
func (rf *Registers) SetBH(v uint8) { rf.setHigh(EBX, v) }
