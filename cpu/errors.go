package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalOpcode is matched by every decode failure.
	ErrIllegalOpcode = errors.New("illegal opcode")
	// ErrInvalidOperand is returned for register views that do not exist.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrDivide is a divide fault that no interrupt handler took.
	ErrDivide = errors.New("divide error")
	// ErrHalted is returned by Cycle after HLT until the CPU is resumed.
	ErrHalted = errors.New("cpu halted")
)

// IllegalOpcodeError describes an opcode, or group sub-opcode, with no defined behaviour.
type IllegalOpcodeError struct {
	Opcode byte
	// Sub is the ModRM reg field for group opcodes, or -1.
	Sub int
	CS  uint16
	IP  uint16
}

func (e *IllegalOpcodeError) Error() string {
	if e.Sub >= 0 {
		return fmt.Sprintf("illegal opcode %02X /%d at %04X:%04X", e.Opcode, e.Sub, e.CS, e.IP)
	}
	return fmt.Sprintf("illegal opcode %02X at %04X:%04X", e.Opcode, e.CS, e.IP)
}

func (e *IllegalOpcodeError) Unwrap() error { return ErrIllegalOpcode }
