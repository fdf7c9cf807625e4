package cpu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Cycle fetches, decodes and executes a single instruction, prefixes
// included. An opcode with no defined behaviour returns an error matching
// ErrIllegalOpcode and leaves every register, flag and memory cell as it was.
func (c *CPU) Cycle() error {
	if c.Halted {
		return ErrHalted
	}

	in := instruction{cs: c.Selector(CS), ip: c.IP(), seg: DS}

	// Fetch
	b, err := c.decodePrefixes(&in)
	in.opcode = b
	if err != nil {
		return c.fail(&in, err)
	}

	// Decode
	op := opcodes[b]
	if op == nil {
		return c.fail(&in, c.illegal(&in, -1))
	}
	in.mnemonic = op.mnemonic

	// Execute
	err = op.fn(c, &in)
	if err != nil {
		var ill *IllegalOpcodeError
		if errors.As(err, &ill) {
			return c.fail(&in, err)
		}
		c.emit(&in)
		return fmt.Errorf("execution failed for opcode %02X at %04X:%04X: %w", b, in.cs, in.ip, err)
	}

	c.Cycles++
	c.emit(&in)
	return nil
}

// fail rewinds IP to the start of an undecodable instruction and traces it as data.
func (c *CPU) fail(in *instruction, err error) error {
	c.SetIP(in.ip)
	in.rep, in.lock = 0, false
	in.mnemonic = "db"
	in.operands = imm8(in.opcode)
	c.emit(in)
	c.Log.WithFields(logrus.Fields{
		"cs": in.cs,
		"ip": in.ip,
	}).Errorf("Non-existent instruction %02X", in.opcode)
	return err
}
