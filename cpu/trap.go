package cpu

import (
	"errors"
	"fmt"
)

// Signal raises a software interrupt through the installed handler. Without a
// handler the interrupt is logged and ignored, except the divide fault, which
// is returned as ErrDivide.
func (c *CPU) Signal(vector uint8) error {
	if c.interrupt == nil {
		if vector == VectorDivide {
			return fmt.Errorf("no handler for interrupt %02X: %w", vector, ErrDivide)
		}
		c.Log.WithField("vector", vector).Warn("unhandled interrupt")
		return nil
	}
	err := c.interrupt(c, vector)
	if err != nil {
		return fmt.Errorf("interrupt %02X: %w", vector, err)
	}
	return nil
}

// divideFault routes a failed division to interrupt 0. The destination
// registers have not been written; IP already points past the instruction.
func (c *CPU) divideFault(err error) error {
	if !errors.Is(err, ErrDivide) {
		return err
	}
	c.Log.WithField("ip", c.IP()).Debug(err.Error())
	return c.Signal(VectorDivide)
}

func opInt(c *CPU, in *instruction) error {
	v := c.fetchU8()
	in.operands = imm8(v)
	return c.Signal(v)
}

func opInt3(c *CPU, in *instruction) error {
	return c.Signal(VectorBreak)
}

// opInto raises the overflow interrupt when OF is set.
func opInto(c *CPU, in *instruction) error {
	if !c.Flags.Get(FlagOF) {
		return nil
	}
	return c.Signal(VectorOverflow)
}

// opIret pops IP, CS and the low sixteen flag bits.
func opIret(c *CPU, in *instruction) error {
	c.SetIP(c.Pop16())
	c.SetSelector(CS, c.Pop16())
	c.Flags = (c.Flags &^ 0xFFFF) | Flags(c.Pop16())
	return nil
}
