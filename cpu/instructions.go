package cpu

// Size defines the width of a register view or operand.
type Size int

const (
	// SizeInvalid is the zero value.
	SizeInvalid Size = iota
	// SizeByte is the low 8 bits.
	SizeByte
	// SizeByteHigh is bits 8-15 (AH, CH, DH, BH).
	SizeByteHigh
	// SizeWord is 16 bits.
	SizeWord
	// SizeDword is 32 bits.
	SizeDword
)

// Prefix bytes.
const (
	PrefixES    = 0x26
	PrefixCS    = 0x2E
	PrefixSS    = 0x36
	PrefixDS    = 0x3E
	PrefixFS    = 0x64
	PrefixGS    = 0x65
	PrefixLock  = 0xF0
	PrefixREPNE = 0xF2
	PrefixREP   = 0xF3 // also REPE
)

// Opcodes referenced by name outside their handler.
const (
	OPNOP   = 0x90
	OPMOVSB = 0xA4
	OPCMPSB = 0xA6
	OPLODSB = 0xAC
	OPRETF  = 0xCB
	OPRETFI = 0xCA
	OPINT3  = 0xCC
	OPINT   = 0xCD
	OPINTO  = 0xCE
	OPIRET  = 0xCF
	OPCALL  = 0xE8
	OPJMP   = 0xE9
	OPJMPF  = 0xEA
	OPJMPS  = 0xEB
	OPHLT   = 0xF4
)

// Interrupt vectors raised by the engine itself.
const (
	VectorDivide   = 0x00
	VectorBreak    = 0x03
	VectorOverflow = 0x04
)

// aluNames are the eight classic ALU operations, indexed by opcode bits 3-5
// or the ModRM reg field of groups 80-83.
var aluNames = [8]string{"add", "or", "adc", "sbb", "and", "sub", "xor", "cmp"}

// Jcc mnemonics by condition code.
var condNames = [16]string{
	"jo", "jno", "jb", "jnb", "jz", "jnz", "jbe", "ja",
	"js", "jns", "jp", "jnp", "jl", "jge", "jle", "jg",
}

// Shift group mnemonics by ModRM reg field.
var shiftNames = [8]string{"rol", "ror", "rcl", "rcr", "shl", "shr", "sal", "sar"}
