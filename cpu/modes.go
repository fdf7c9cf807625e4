package cpu

// ModRM mod field values.
const (
	// 00 - memory, no displacement (except rm 110: direct address)
	ModeNoDisp uint8 = 0
	// 01 - memory, signed 8-bit displacement
	ModeDisp8 uint8 = 1
	// 10 - memory, 16-bit displacement
	ModeDisp16 uint8 = 2
	// 11 - register operand
	ModeReg uint8 = 3
)

// RMDirect is the rm value that means [disp16] under ModeNoDisp and [BP+disp] otherwise.
const RMDirect uint8 = 6

// eaForm is one row of the 16-bit addressing table.
type eaForm struct {
	base, index Reg // index is numRegs when absent
	text        string
	stack       bool // BP-based: SS unless overridden
}

var eaForms = [8]eaForm{
	{EBX, ESI, "bx+si", false},
	{EBX, EDI, "bx+di", false},
	{EBP, ESI, "bp+si", true},
	{EBP, EDI, "bp+di", true},
	{ESI, numRegs, "si", false},
	{EDI, numRegs, "di", false},
	{EBP, numRegs, "bp", true},
	{EBX, numRegs, "bx", false},
}
