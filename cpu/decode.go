package cpu

import "fmt"

// instruction is the state of the instruction being executed. It is created
// at the start of every Cycle and discarded at the end, so the active data
// segment and repeat prefix cannot leak into the next instruction.
type instruction struct {
	// cs and ip locate the first byte, prefixes included.
	cs, ip uint16
	opcode byte

	// seg is the active data segment; override is set by a segment prefix.
	seg      SegReg
	override bool
	// rep is 0, PrefixREP or PrefixREPNE.
	rep  byte
	lock bool

	mnemonic string
	operands string
}

// opFunc executes one opcode. The opcode byte has been consumed; IP points
// at whatever follows it.
type opFunc func(c *CPU, in *instruction) error

type opcode struct {
	mnemonic string
	fn       opFunc
}

// opcodes is the dispatch table. nil entries are illegal.
var opcodes [256]*opcode

// register fills count consecutive table entries starting at op.
func register(op byte, count int, mnemonic string, fn opFunc) {
	for i := 0; i < count; i++ {
		opcodes[int(op)+i] = &opcode{mnemonic: mnemonic, fn: fn}
	}
}

// maxPrefixes bounds the prefix loop so a run of prefix bytes cannot spin forever.
const maxPrefixes = 14

func init() {
	for i := 0; i < 8; i++ {
		register(byte(i<<3), 6, aluNames[i], opALU)
	}
	register(0x06, 1, "push", opPushSeg)
	register(0x07, 1, "pop", opPopSeg)
	register(0x0E, 1, "push", opPushSeg)
	register(0x16, 1, "push", opPushSeg)
	register(0x17, 1, "pop", opPopSeg)
	register(0x1E, 1, "push", opPushSeg)
	register(0x1F, 1, "pop", opPopSeg)

	register(0x40, 8, "inc", opIncReg)
	register(0x48, 8, "dec", opDecReg)
	register(0x50, 8, "push", opPushReg)
	register(0x58, 8, "pop", opPopReg)
	register(0x70, 16, "j", opJcc)

	register(0x80, 4, "", opGroup1)
	register(0x84, 2, "test", opTestRM)
	register(0x86, 2, "xchg", opXchgRM)
	register(0x88, 4, "mov", opMovRM)
	register(0x8C, 1, "mov", opMovFromSeg)
	register(0x8D, 1, "lea", opLea)
	register(0x8E, 1, "mov", opMovToSeg)
	register(0x8F, 1, "pop", opPopRM)
	register(OPNOP, 1, "nop", opNop)
	register(0x91, 7, "xchg", opXchgAX)
	register(0x98, 1, "cbw", opCbw)
	register(0x99, 1, "cwd", opCwd)
	register(0x9A, 1, "call", opCallFar)
	register(0x9C, 1, "pushf", opPushf)
	register(0x9D, 1, "popf", opPopf)
	register(0x9E, 1, "sahf", opSahf)
	register(0x9F, 1, "lahf", opLahf)
	register(0xA0, 4, "mov", opMovMoffs)
	register(OPMOVSB, 2, "movs", opMovs)
	register(OPCMPSB, 2, "cmps", opCmps)
	register(0xA8, 2, "test", opTestAcc)
	register(0xAA, 2, "stos", opStos)
	register(OPLODSB, 2, "lods", opLods)
	register(0xAE, 2, "scas", opScas)
	register(0xB0, 8, "mov", opMovReg8Imm)
	register(0xB8, 8, "mov", opMovReg16Imm)

	register(0xC2, 1, "ret", opRetImm)
	register(0xC3, 1, "ret", opRet)
	register(0xC4, 1, "les", opLoadFar)
	register(0xC5, 1, "lds", opLoadFar)
	register(0xC6, 2, "mov", opMovRMImm)
	register(OPRETFI, 1, "retf", opRetfImm)
	register(OPRETF, 1, "retf", opRetf)
	register(OPINT3, 1, "int3", opInt3)
	register(OPINT, 1, "int", opInt)
	register(OPINTO, 1, "into", opInto)
	register(OPIRET, 1, "iret", opIret)
	register(0xD0, 4, "", opShiftGroup)

	register(0xE0, 1, "loopnz", opLoop)
	register(0xE1, 1, "loopz", opLoop)
	register(0xE2, 1, "loop", opLoop)
	register(0xE3, 1, "jcxz", opJcxz)
	register(OPCALL, 1, "call", opCallNear)
	register(OPJMP, 1, "jmp", opJmpNear)
	register(OPJMPF, 1, "jmp", opJmpFar)
	register(OPJMPS, 1, "jmp", opJmpShort)

	register(OPHLT, 1, "hlt", opHlt)
	register(0xF5, 1, "cmc", opCmc)
	register(0xF6, 2, "", opGroup3)
	register(0xF8, 1, "clc", opFlag)
	register(0xF9, 1, "stc", opFlag)
	register(0xFA, 1, "cli", opFlag)
	register(0xFB, 1, "sti", opFlag)
	register(0xFC, 1, "cld", opFlag)
	register(0xFD, 1, "std", opFlag)
	register(0xFE, 1, "", opGroup4)
	register(0xFF, 1, "", opGroup5)
}

// decodePrefixes consumes prefix bytes and returns the opcode byte. A run
// longer than maxPrefixes is an illegal opcode on the last prefix byte.
func (c *CPU) decodePrefixes(in *instruction) (byte, error) {
	var b byte
	for n := 0; n <= maxPrefixes; n++ {
		b = c.fetchU8()
		switch b {
		case PrefixES:
			in.seg, in.override = ES, true
		case PrefixCS:
			in.seg, in.override = CS, true
		case PrefixSS:
			in.seg, in.override = SS, true
		case PrefixDS:
			in.seg, in.override = DS, true
		case PrefixFS:
			in.seg, in.override = FS, true
		case PrefixGS:
			in.seg, in.override = GS, true
		case PrefixREP, PrefixREPNE:
			in.rep = b
		case PrefixLock:
			in.lock = true
		default:
			return b, nil
		}
	}
	in.opcode = b
	return b, c.illegal(in, -1)
}

// illegal builds the decode failure for the current instruction. sub is the
// ModRM reg field for group opcodes, or -1.
func (c *CPU) illegal(in *instruction, sub int) error {
	return &IllegalOpcodeError{Opcode: in.opcode, Sub: sub, CS: in.cs, IP: in.ip}
}

// Operand text helpers.
func imm8(v uint8) string   { return fmt.Sprintf("$%02X", v) }
func imm16(v uint16) string { return fmt.Sprintf("$%04X", v) }
