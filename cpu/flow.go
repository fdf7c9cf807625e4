package cpu

// relative8 reads a signed 8-bit displacement and returns the target it selects.
func (c *CPU) relative8() uint16 {
	d := signExtend8(c.fetchU8())
	return c.IP() + d
}

// opJcc handles 70-7F. The low nibble is the condition code.
func opJcc(c *CPU, in *instruction) error {
	cc := in.opcode & 0x0F
	in.mnemonic = condNames[cc]
	target := c.relative8()
	in.operands = imm16(target)
	if c.Flags.condition(cc) {
		c.SetIP(target)
	}
	return nil
}

func opJmpShort(c *CPU, in *instruction) error {
	target := c.relative8()
	in.operands = "short " + imm16(target)
	c.SetIP(target)
	return nil
}

func opJmpNear(c *CPU, in *instruction) error {
	d := c.fetchU16()
	target := c.IP() + d
	in.operands = imm16(target)
	c.SetIP(target)
	return nil
}

func opJmpFar(c *CPU, in *instruction) error {
	off := c.fetchU16()
	sel := c.fetchU16()
	in.operands = imm16(sel) + ":" + imm16(off)
	c.SetSelector(CS, sel)
	c.SetIP(off)
	return nil
}

func opCallNear(c *CPU, in *instruction) error {
	d := c.fetchU16()
	target := c.IP() + d
	in.operands = imm16(target)
	c.Push16(c.IP())
	c.SetIP(target)
	return nil
}

// opCallFar pushes CS then IP and jumps to the immediate pointer.
func opCallFar(c *CPU, in *instruction) error {
	off := c.fetchU16()
	sel := c.fetchU16()
	in.operands = imm16(sel) + ":" + imm16(off)
	c.farCall(sel, off)
	return nil
}

func (c *CPU) farCall(sel, off uint16) {
	c.Push16(c.Selector(CS))
	c.Push16(c.IP())
	c.SetSelector(CS, sel)
	c.SetIP(off)
}

func opRet(c *CPU, in *instruction) error {
	c.SetIP(c.Pop16())
	return nil
}

// opRetImm pops IP and then releases n bytes of arguments.
func opRetImm(c *CPU, in *instruction) error {
	n := c.fetchU16()
	in.operands = imm16(n)
	c.SetIP(c.Pop16())
	c.SetSP(c.SP() + n)
	return nil
}

func opRetf(c *CPU, in *instruction) error {
	c.SetIP(c.Pop16())
	c.SetSelector(CS, c.Pop16())
	return nil
}

// opRetfImm pops IP, then CS, then releases n bytes of arguments.
func opRetfImm(c *CPU, in *instruction) error {
	n := c.fetchU16()
	in.operands = imm16(n)
	c.SetIP(c.Pop16())
	c.SetSelector(CS, c.Pop16())
	c.SetSP(c.SP() + n)
	return nil
}

// opLoop handles E0-E2. CX is decremented before it is tested.
func opLoop(c *CPU, in *instruction) error {
	target := c.relative8()
	in.operands = imm16(target)
	c.SetCX(c.CX() - 1)
	taken := c.CX() != 0
	switch in.opcode {
	case 0xE0:
		taken = taken && !c.Flags.Get(FlagZF)
	case 0xE1:
		taken = taken && c.Flags.Get(FlagZF)
	}
	if taken {
		c.SetIP(target)
	}
	return nil
}

func opJcxz(c *CPU, in *instruction) error {
	target := c.relative8()
	in.operands = imm16(target)
	if c.CX() == 0 {
		c.SetIP(target)
	}
	return nil
}

// opHlt stops the CPU with IP after the HLT.
func opHlt(c *CPU, in *instruction) error {
	c.Halted = true
	return nil
}

func opCmc(c *CPU, in *instruction) error {
	c.Flags.Set(FlagCF, !c.Flags.Get(FlagCF))
	return nil
}

// opFlag handles F8-FD. Pairs clear then set CF, IF and DF.
func opFlag(c *CPU, in *instruction) error {
	flags := [3]Flag{FlagCF, FlagIF, FlagDF}
	i := (in.opcode - 0xF8) >> 1
	c.Flags.Set(flags[i], in.opcode&1 != 0)
	return nil
}

var group5Names = [8]string{"inc", "dec", "call", "call", "jmp", "jmp", "push", ""}

// opGroup5 handles FF: INC, DEC, near and far indirect CALL and JMP, PUSH.
func opGroup5(c *CPU, in *instruction) error {
	m := c.modrm(in)
	far := m.Reg == 3 || m.Reg == 5
	if group5Names[m.Reg] == "" || far && m.EA.IsReg {
		return c.illegal(in, int(m.Reg))
	}
	in.mnemonic = group5Names[m.Reg]
	in.operands = m.EA.Name16()
	if far {
		in.operands = "far " + m.EA.Text
	}

	switch m.Reg {
	case 0:
		c.PutRM16(m.EA, Inc16(&c.Flags, c.GetRM16(m.EA)))
	case 1:
		c.PutRM16(m.EA, Dec16(&c.Flags, c.GetRM16(m.EA)))
	case 2:
		target := c.GetRM16(m.EA)
		c.Push16(c.IP())
		c.SetIP(target)
	case 3:
		off := c.ReadU16(m.EA.Seg, m.EA.Offset)
		sel := c.ReadU16(m.EA.Seg, m.EA.Offset+2)
		c.farCall(sel, off)
	case 4:
		c.SetIP(c.GetRM16(m.EA))
	case 5:
		off := c.ReadU16(m.EA.Seg, m.EA.Offset)
		sel := c.ReadU16(m.EA.Seg, m.EA.Offset+2)
		c.SetSelector(CS, sel)
		c.SetIP(off)
	case 6:
		c.Push16(c.GetRM16(m.EA))
	}
	return nil
}
