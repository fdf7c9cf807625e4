package cpu

// opMovRM handles 88-8B: MOV between a register and r/m in either direction.
func opMovRM(c *CPU, in *instruction) error {
	m := c.modrm(in)
	switch in.opcode & 3 {
	case 0:
		c.PutRM8(m.EA, c.Reg8(m.Reg))
		in.operands = m.EA.Name8() + "," + reg8Names[m.Reg]
	case 1:
		c.PutRM16(m.EA, c.Reg16(m.Reg))
		in.operands = m.EA.Name16() + "," + reg16Names[m.Reg]
	case 2:
		c.SetReg8(m.Reg, c.GetRM8(m.EA))
		in.operands = reg8Names[m.Reg] + "," + m.EA.Name8()
	case 3:
		c.SetReg16(m.Reg, c.GetRM16(m.EA))
		in.operands = reg16Names[m.Reg] + "," + m.EA.Name16()
	}
	return nil
}

// opMovFromSeg handles 8C, MOV Ev,Sw.
func opMovFromSeg(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if m.Reg >= uint8(numSegs) {
		return c.illegal(in, int(m.Reg))
	}
	s := SegReg(m.Reg)
	c.PutRM16(m.EA, c.Selector(s))
	in.operands = m.EA.Name16() + "," + s.String()
	return nil
}

// opMovToSeg handles 8E, MOV Sw,Ev. CS cannot be loaded this way.
func opMovToSeg(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if m.Reg >= uint8(numSegs) || SegReg(m.Reg) == CS {
		return c.illegal(in, int(m.Reg))
	}
	s := SegReg(m.Reg)
	c.SetSelector(s, c.GetRM16(m.EA))
	in.operands = s.String() + "," + m.EA.Name16()
	return nil
}

// opMovMoffs handles A0-A3: the accumulator and a direct offset in the active segment.
func opMovMoffs(c *CPU, in *instruction) error {
	off := c.fetchU16()
	text := "[" + imm16(off) + "]"
	if in.override {
		text = in.seg.String() + ":" + text
	}
	switch in.opcode & 3 {
	case 0:
		c.SetAL(c.ReadU8(in.seg, off))
		in.operands = "al," + text
	case 1:
		c.SetAX(c.ReadU16(in.seg, off))
		in.operands = "ax," + text
	case 2:
		c.WriteU8(in.seg, off, c.AL())
		in.operands = text + ",al"
	case 3:
		c.WriteU16(in.seg, off, c.AX())
		in.operands = text + ",ax"
	}
	return nil
}

func opMovReg8Imm(c *CPU, in *instruction) error {
	r := in.opcode & 7
	v := c.fetchU8()
	c.SetReg8(r, v)
	in.operands = reg8Names[r] + "," + imm8(v)
	return nil
}

func opMovReg16Imm(c *CPU, in *instruction) error {
	r := in.opcode & 7
	v := c.fetchU16()
	c.SetReg16(r, v)
	in.operands = reg16Names[r] + "," + imm16(v)
	return nil
}

// opMovRMImm handles C6 /0 and C7 /0.
func opMovRMImm(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if m.Reg != 0 {
		return c.illegal(in, int(m.Reg))
	}
	if in.opcode&1 == 0 {
		v := c.fetchU8()
		c.PutRM8(m.EA, v)
		in.operands = m.EA.Name8() + "," + imm8(v)
		return nil
	}
	v := c.fetchU16()
	c.PutRM16(m.EA, v)
	in.operands = "word " + m.EA.Name16() + "," + imm16(v)
	if m.EA.IsReg {
		in.operands = m.EA.Name16() + "," + imm16(v)
	}
	return nil
}

// opXchgRM handles 86 and 87.
func opXchgRM(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if in.opcode&1 == 0 {
		a, b := c.GetRM8(m.EA), c.Reg8(m.Reg)
		c.PutRM8(m.EA, b)
		c.SetReg8(m.Reg, a)
		in.operands = reg8Names[m.Reg] + "," + m.EA.Name8()
		return nil
	}
	a, b := c.GetRM16(m.EA), c.Reg16(m.Reg)
	c.PutRM16(m.EA, b)
	c.SetReg16(m.Reg, a)
	in.operands = reg16Names[m.Reg] + "," + m.EA.Name16()
	return nil
}

// opXchgAX handles 91-97.
func opXchgAX(c *CPU, in *instruction) error {
	r := in.opcode & 7
	a, b := c.AX(), c.Reg16(r)
	c.SetAX(b)
	c.SetReg16(r, a)
	in.operands = "ax," + reg16Names[r]
	return nil
}

func opNop(c *CPU, in *instruction) error { return nil }

// opLea loads the offset of a memory operand. A register operand is illegal.
func opLea(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if m.EA.IsReg {
		return c.illegal(in, int(m.Reg))
	}
	c.SetReg16(m.Reg, m.EA.Offset)
	in.operands = reg16Names[m.Reg] + "," + m.EA.Text
	return nil
}

// opLoadFar handles LES and LDS: offset into the register, selector into the segment.
func opLoadFar(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if m.EA.IsReg {
		return c.illegal(in, int(m.Reg))
	}
	s := ES
	if in.opcode == 0xC5 {
		s = DS
	}
	off := c.ReadU16(m.EA.Seg, m.EA.Offset)
	sel := c.ReadU16(m.EA.Seg, m.EA.Offset+2)
	c.SetReg16(m.Reg, off)
	c.SetSelector(s, sel)
	in.operands = reg16Names[m.Reg] + "," + m.EA.Text
	return nil
}

func opCbw(c *CPU, in *instruction) error {
	c.SetAX(signExtend8(c.AL()))
	return nil
}

func opCwd(c *CPU, in *instruction) error {
	if c.AX()&0x8000 != 0 {
		c.SetDX(0xFFFF)
	} else {
		c.SetDX(0)
	}
	return nil
}

// sahfMask covers SF, ZF, AF, PF and CF.
const sahfMask = Flags(FlagSF | FlagZF | FlagAF | FlagPF | FlagCF)

func opSahf(c *CPU, in *instruction) error {
	c.Flags = (c.Flags &^ sahfMask) | (Flags(c.AH()) & sahfMask)
	return nil
}

func opLahf(c *CPU, in *instruction) error {
	c.SetAH(uint8(c.Flags))
	return nil
}
