package cpu

// Push16 decrements SP by two and writes v at SS:SP.
func (c *CPU) Push16(v uint16) {
	c.SetSP(c.SP() - 2)
	c.WriteU16(SS, c.SP(), v)
}

// Pop16 reads the word at SS:SP and increments SP by two.
func (c *CPU) Pop16() uint16 {
	v := c.ReadU16(SS, c.SP())
	c.SetSP(c.SP() + 2)
	return v
}

// segment push/pop opcodes encode the segment in bits 3-4.
func opPushSeg(c *CPU, in *instruction) error {
	s := SegReg((in.opcode >> 3) & 3)
	c.Push16(c.Selector(s))
	in.operands = s.String()
	return nil
}

func opPopSeg(c *CPU, in *instruction) error {
	s := SegReg((in.opcode >> 3) & 3)
	c.SetSelector(s, c.Pop16())
	in.operands = s.String()
	return nil
}

// opPushReg pushes the value the register held before the push.
func opPushReg(c *CPU, in *instruction) error {
	r := in.opcode & 7
	c.Push16(c.Reg16(r))
	in.operands = reg16Names[r]
	return nil
}

func opPopReg(c *CPU, in *instruction) error {
	r := in.opcode & 7
	c.SetReg16(r, c.Pop16())
	in.operands = reg16Names[r]
	return nil
}

// opPopRM handles 8F /0, POP Ev.
func opPopRM(c *CPU, in *instruction) error {
	m := c.modrm(in)
	if m.Reg != 0 {
		return c.illegal(in, int(m.Reg))
	}
	c.PutRM16(m.EA, c.Pop16())
	in.operands = m.EA.Name16()
	return nil
}

func opPushf(c *CPU, in *instruction) error {
	c.Push16(uint16(c.Flags))
	return nil
}

// opPopf replaces the low sixteen flag bits.
func opPopf(c *CPU, in *instruction) error {
	c.Flags = (c.Flags &^ 0xFFFF) | Flags(c.Pop16())
	return nil
}
