package cpu

import "fmt"

// ByteFetcher supplies the instruction bytes that follow an opcode.
type ByteFetcher interface {
	FetchU8() uint8
	FetchU16() uint16
}

// Operand is the decoded r/m operand of a ModRM byte: either a register
// (by encoding) or an offset addressed through Seg.
type Operand struct {
	IsReg  bool
	Reg    uint8
	Offset uint16
	Seg    SegReg
	// Text is the rendered memory reference, e.g. "[bp+$04]". Empty for registers.
	Text string
}

// Name8 renders the operand as a byte operand.
func (o Operand) Name8() string {
	if o.IsReg {
		return reg8Names[o.Reg&7]
	}
	return "byte " + o.Text
}

// Name16 renders the operand as a word operand.
func (o Operand) Name16() string {
	if o.IsReg {
		return reg16Names[o.Reg&7]
	}
	return o.Text
}

// ModRM is a decoded addressing-mode byte and everything it consumed.
type ModRM struct {
	Mod, Reg, RM uint8
	// EA is the r/m operand.
	EA Operand
	// Len counts the ModRM byte and any displacement bytes.
	Len int
}

// DecodeModRM reads a ModRM byte and its displacement from f. seg is the
// active data segment and override reports whether a prefix selected it;
// BP-based forms switch to SS unless override is set.
func DecodeModRM(f ByteFetcher, regs *Registers, seg SegReg, override bool) ModRM {
	b := f.FetchU8()
	m := ModRM{
		Mod: b >> 6,
		Reg: (b >> 3) & 7,
		RM:  b & 7,
		Len: 1,
	}

	if m.Mod == ModeReg {
		m.EA = Operand{IsReg: true, Reg: m.RM}
		return m
	}

	var off uint16
	var text string
	form := eaForms[m.RM]
	if m.Mod == ModeNoDisp && m.RM == RMDirect {
		off = f.FetchU16()
		m.Len += 2
		text = fmt.Sprintf("$%04X", off)
	} else {
		off = regs.word(form.base)
		if form.index != numRegs {
			off += regs.word(form.index)
		}
		text = form.text
		if form.stack && !override {
			seg = SS
		}
	}

	switch m.Mod {
	case ModeDisp8:
		d := int8(f.FetchU8())
		m.Len++
		off += uint16(int16(d))
		if d < 0 {
			text += fmt.Sprintf("-$%02X", uint8(-int16(d)))
		} else {
			text += fmt.Sprintf("+$%02X", uint8(d))
		}
	case ModeDisp16:
		d := f.FetchU16()
		m.Len += 2
		off += d
		text += fmt.Sprintf("+$%04X", d)
	}

	m.EA = Operand{Offset: off, Seg: seg, Text: "[" + text + "]"}
	if override {
		m.EA.Text = seg.String() + ":" + m.EA.Text
	}
	return m
}

// codeStream fetches from CS:IP, advancing IP.
type codeStream struct{ c *CPU }

func (s codeStream) FetchU8() uint8   { return s.c.fetchU8() }
func (s codeStream) FetchU16() uint16 { return s.c.fetchU16() }

// modrm decodes the ModRM byte following the current opcode.
func (c *CPU) modrm(in *instruction) ModRM {
	return DecodeModRM(codeStream{c}, &c.Registers, in.seg, in.override)
}

// GetRM8 reads a byte operand from a register or memory.
func (c *CPU) GetRM8(o Operand) uint8 {
	if o.IsReg {
		return c.Reg8(o.Reg)
	}
	return c.ReadU8(o.Seg, o.Offset)
}

// GetRM16 reads a word operand from a register or memory.
func (c *CPU) GetRM16(o Operand) uint16 {
	if o.IsReg {
		return c.Reg16(o.Reg)
	}
	return c.ReadU16(o.Seg, o.Offset)
}

// PutRM8 writes a byte operand. Register writes never touch the bus.
func (c *CPU) PutRM8(o Operand, v uint8) {
	if o.IsReg {
		c.SetReg8(o.Reg, v)
		return
	}
	c.WriteU8(o.Seg, o.Offset, v)
}

// PutRM16 writes a word operand.
func (c *CPU) PutRM16(o Operand, v uint16) {
	if o.IsReg {
		c.SetReg16(o.Reg, v)
		return
	}
	c.WriteU16(o.Seg, o.Offset, v)
}
