package cpu

// opALU handles the six forms of the eight classic operations in 00-3F.
// Bits 3-5 of the opcode select the operation, bits 0-2 the form.
func opALU(c *CPU, in *instruction) error {
	op := (in.opcode >> 3) & 7
	switch in.opcode & 7 {
	case 0: // Eb,Gb
		m := c.modrm(in)
		r, wb := alu(&c.Flags, op, uint32(c.Reg8(m.Reg)), uint32(c.GetRM8(m.EA)), w8)
		if wb {
			c.PutRM8(m.EA, uint8(r))
		}
		in.operands = m.EA.Name8() + "," + reg8Names[m.Reg]
	case 1: // Ev,Gv
		m := c.modrm(in)
		r, wb := alu(&c.Flags, op, uint32(c.Reg16(m.Reg)), uint32(c.GetRM16(m.EA)), w16)
		if wb {
			c.PutRM16(m.EA, uint16(r))
		}
		in.operands = m.EA.Name16() + "," + reg16Names[m.Reg]
	case 2: // Gb,Eb
		m := c.modrm(in)
		r, wb := alu(&c.Flags, op, uint32(c.GetRM8(m.EA)), uint32(c.Reg8(m.Reg)), w8)
		if wb {
			c.SetReg8(m.Reg, uint8(r))
		}
		in.operands = reg8Names[m.Reg] + "," + m.EA.Name8()
	case 3: // Gv,Ev
		m := c.modrm(in)
		r, wb := alu(&c.Flags, op, uint32(c.GetRM16(m.EA)), uint32(c.Reg16(m.Reg)), w16)
		if wb {
			c.SetReg16(m.Reg, uint16(r))
		}
		in.operands = reg16Names[m.Reg] + "," + m.EA.Name16()
	case 4: // AL,Ib
		v := c.fetchU8()
		r, wb := alu(&c.Flags, op, uint32(v), uint32(c.AL()), w8)
		if wb {
			c.SetAL(uint8(r))
		}
		in.operands = "al," + imm8(v)
	case 5: // AX,Iv
		v := c.fetchU16()
		r, wb := alu(&c.Flags, op, uint32(v), uint32(c.AX()), w16)
		if wb {
			c.SetAX(uint16(r))
		}
		in.operands = "ax," + imm16(v)
	default:
		return c.illegal(in, -1)
	}
	return nil
}

// opGroup1 handles 80-83: an ALU operation between r/m and an immediate.
// 82 is an alias of 80; 83 sign-extends a byte immediate to a word.
func opGroup1(c *CPU, in *instruction) error {
	m := c.modrm(in)
	in.mnemonic = aluNames[m.Reg]
	switch in.opcode {
	case 0x80, 0x82:
		v := c.fetchU8()
		r, wb := alu(&c.Flags, m.Reg, uint32(v), uint32(c.GetRM8(m.EA)), w8)
		if wb {
			c.PutRM8(m.EA, uint8(r))
		}
		in.operands = m.EA.Name8() + "," + imm8(v)
		return nil
	}

	var v uint16
	if in.opcode == 0x83 {
		v = signExtend8(c.fetchU8())
	} else {
		v = c.fetchU16()
	}
	r, wb := alu(&c.Flags, m.Reg, uint32(v), uint32(c.GetRM16(m.EA)), w16)
	if wb {
		c.PutRM16(m.EA, uint16(r))
	}
	in.operands = m.EA.Name16() + "," + imm16(v)
	return nil
}

// opTestRM handles 84 and 85.
func opTestRM(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if in.opcode&1 == 0 {
		And8(&c.Flags, c.Reg8(m.Reg), c.GetRM8(m.EA))
		in.operands = m.EA.Name8() + "," + reg8Names[m.Reg]
		return nil
	}
	And16(&c.Flags, c.Reg16(m.Reg), c.GetRM16(m.EA))
	in.operands = m.EA.Name16() + "," + reg16Names[m.Reg]
	return nil
}

// opTestAcc handles A8 and A9.
func opTestAcc(c *CPU, in *instruction) error {
	if in.opcode&1 == 0 {
		v := c.fetchU8()
		And8(&c.Flags, v, c.AL())
		in.operands = "al," + imm8(v)
		return nil
	}
	v := c.fetchU16()
	And16(&c.Flags, v, c.AX())
	in.operands = "ax," + imm16(v)
	return nil
}

func opIncReg(c *CPU, in *instruction) error {
	r := in.opcode & 7
	c.SetReg16(r, Inc16(&c.Flags, c.Reg16(r)))
	in.operands = reg16Names[r]
	return nil
}

func opDecReg(c *CPU, in *instruction) error {
	r := in.opcode & 7
	c.SetReg16(r, Dec16(&c.Flags, c.Reg16(r)))
	in.operands = reg16Names[r]
	return nil
}

// opShiftGroup handles D0-D3: D0/D1 shift by one, D2/D3 by CL.
func opShiftGroup(c *CPU, in *instruction) error {
	m := c.modrm(in)
	in.mnemonic = shiftNames[m.Reg]
	count, countText := uint8(1), "1"
	if in.opcode&2 != 0 {
		count, countText = c.CL(), "cl"
	}
	if in.opcode&1 == 0 {
		c.PutRM8(m.EA, Shift8(&c.Flags, m.Reg, count, c.GetRM8(m.EA)))
		in.operands = m.EA.Name8() + "," + countText
		return nil
	}
	c.PutRM16(m.EA, Shift16(&c.Flags, m.Reg, count, c.GetRM16(m.EA)))
	in.operands = m.EA.Name16() + "," + countText
	return nil
}

var group3Names = [8]string{"test", "", "not", "neg", "mul", "imul", "div", "idiv"}

// opGroup3 handles F6 and F7: TEST, NOT, NEG, MUL, IMUL, DIV and IDIV.
func opGroup3(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if group3Names[m.Reg] == "" {
		return c.illegal(in, int(m.Reg))
	}
	in.mnemonic = group3Names[m.Reg]
	if in.opcode == 0xF6 {
		return c.group3Byte(in, m)
	}
	return c.group3Word(in, m)
}

func (c *CPU) group3Byte(in *instruction, m ModRM) error {
	v := c.GetRM8(m.EA)
	in.operands = m.EA.Name8()
	switch m.Reg {
	case 0:
		imm := c.fetchU8()
		And8(&c.Flags, imm, v)
		in.operands += "," + imm8(imm)
	case 2:
		c.PutRM8(m.EA, ^v)
	case 3:
		c.PutRM8(m.EA, Neg8(&c.Flags, v))
	case 4:
		c.SetAX(Mul8(&c.Flags, c.AL(), v))
	case 5:
		c.SetAX(Imul8(&c.Flags, c.AL(), v))
	case 6, 7:
		div := Div8
		if m.Reg == 7 {
			div = Idiv8
		}
		q, r, err := div(c.AX(), v)
		if err != nil {
			return c.divideFault(err)
		}
		c.SetAL(q)
		c.SetAH(r)
	}
	return nil
}

func (c *CPU) group3Word(in *instruction, m ModRM) error {
	v := c.GetRM16(m.EA)
	in.operands = m.EA.Name16()
	switch m.Reg {
	case 0:
		imm := c.fetchU16()
		And16(&c.Flags, imm, v)
		in.operands += "," + imm16(imm)
	case 2:
		c.PutRM16(m.EA, ^v)
	case 3:
		c.PutRM16(m.EA, Neg16(&c.Flags, v))
	case 4:
		hi, lo := Mul16(&c.Flags, c.AX(), v)
		c.SetDX(hi)
		c.SetAX(lo)
	case 5:
		hi, lo := Imul16(&c.Flags, c.AX(), v)
		c.SetDX(hi)
		c.SetAX(lo)
	case 6, 7:
		div := Div16
		if m.Reg == 7 {
			div = Idiv16
		}
		q, r, err := div(c.DX(), c.AX(), v)
		if err != nil {
			return c.divideFault(err)
		}
		c.SetAX(q)
		c.SetDX(r)
	}
	return nil
}

// opGroup4 handles FE: INC and DEC of a byte operand.
func opGroup4(c *CPU, in *instruction) error {
	m := c.modrm(in)
	switch m.Reg {
	case 0:
		in.mnemonic = "inc"
		c.PutRM8(m.EA, Inc8(&c.Flags, c.GetRM8(m.EA)))
	case 1:
		in.mnemonic = "dec"
		c.PutRM8(m.EA, Dec8(&c.Flags, c.GetRM8(m.EA)))
	default:
		return c.illegal(in, int(m.Reg))
	}
	in.operands = m.EA.Name8()
	return nil
}
