package cpu

// step returns the index adjustment for one unit of size bytes.
func (c *CPU) step(size uint16) uint16 {
	if c.Flags.Get(FlagDF) {
		return -size
	}
	return size
}

// repeat runs one string operation, or CX of them under a repeat prefix.
// CX is decremented after every iteration. When compare is set, REPE stops
// as soon as ZF is clear and REPNE as soon as ZF is set.
func (c *CPU) repeat(in *instruction, compare bool, op func()) {
	if in.rep == 0 {
		op()
		return
	}
	for c.CX() != 0 {
		op()
		c.SetCX(c.CX() - 1)
		if !compare {
			continue
		}
		zf := c.Flags.Get(FlagZF)
		if in.rep == PrefixREP && !zf || in.rep == PrefixREPNE && zf {
			break
		}
	}
}

// stringSuffix returns the unit size and mnemonic suffix.
func stringSuffix(in *instruction) (uint16, string) {
	if in.opcode&1 == 0 {
		return 1, "b"
	}
	return 2, "w"
}

// opMovs copies from the active segment at SI to ES:DI.
func opMovs(c *CPU, in *instruction) error {
	size, sfx := stringSuffix(in)
	in.mnemonic += sfx
	d := c.step(size)
	c.repeat(in, false, func() {
		if size == 1 {
			c.WriteU8(ES, c.DI(), c.ReadU8(in.seg, c.SI()))
		} else {
			c.WriteU16(ES, c.DI(), c.ReadU16(in.seg, c.SI()))
		}
		c.SetSI(c.SI() + d)
		c.SetDI(c.DI() + d)
	})
	return nil
}

// opCmps compares the active segment at SI with ES:DI, setting flags for [SI]-[DI].
func opCmps(c *CPU, in *instruction) error {
	size, sfx := stringSuffix(in)
	in.mnemonic += sfx
	d := c.step(size)
	c.repeat(in, true, func() {
		if size == 1 {
			Sub8(&c.Flags, c.ReadU8(ES, c.DI()), c.ReadU8(in.seg, c.SI()))
		} else {
			Sub16(&c.Flags, c.ReadU16(ES, c.DI()), c.ReadU16(in.seg, c.SI()))
		}
		c.SetSI(c.SI() + d)
		c.SetDI(c.DI() + d)
	})
	return nil
}

// opStos stores the accumulator at ES:DI.
func opStos(c *CPU, in *instruction) error {
	size, sfx := stringSuffix(in)
	in.mnemonic += sfx
	d := c.step(size)
	c.repeat(in, false, func() {
		if size == 1 {
			c.WriteU8(ES, c.DI(), c.AL())
		} else {
			c.WriteU16(ES, c.DI(), c.AX())
		}
		c.SetDI(c.DI() + d)
	})
	return nil
}

// opLods loads the accumulator from the active segment at SI.
func opLods(c *CPU, in *instruction) error {
	size, sfx := stringSuffix(in)
	in.mnemonic += sfx
	d := c.step(size)
	c.repeat(in, false, func() {
		if size == 1 {
			c.SetAL(c.ReadU8(in.seg, c.SI()))
		} else {
			c.SetAX(c.ReadU16(in.seg, c.SI()))
		}
		c.SetSI(c.SI() + d)
	})
	return nil
}

// opScas compares the accumulator with ES:DI.
func opScas(c *CPU, in *instruction) error {
	size, sfx := stringSuffix(in)
	in.mnemonic += sfx
	d := c.step(size)
	c.repeat(in, true, func() {
		if size == 1 {
			Sub8(&c.Flags, c.ReadU8(ES, c.DI()), c.AL())
		} else {
			Sub16(&c.Flags, c.ReadU16(ES, c.DI()), c.AX())
		}
		c.SetDI(c.DI() + d)
	})
	return nil
}
