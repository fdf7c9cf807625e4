package cpu

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Bus is the memory the CPU executes from. Addresses are linear
// (segment base + offset); words are little-endian at any alignment.
type Bus interface {
	ReadU8(addr uint32) uint8
	ReadU16(addr uint32) uint16
	WriteU8(addr uint32, v uint8)
	WriteU16(addr uint32, v uint16)
}

// InterruptHandler receives software interrupts. It runs synchronously inside
// Cycle and may change any CPU or memory state before returning.
type InterruptHandler func(c *CPU, vector uint8) error

// CPU is a 16-bit real-mode x86 execution unit.
type CPU struct {
	Registers
	// Flags is the flags register.
	Flags Flags

	seg Segments
	bus Bus

	// Halted is set by HLT. Cycle refuses to run until Resume.
	Halted bool
	// Debug enables live trace delivery and debug logging.
	Debug bool
	// Cycles counts completed instructions.
	Cycles uint64

	// Log receives engine diagnostics.
	Log *logrus.Logger

	interrupt InterruptHandler
	observers []func(Trace)
	trace     io.Writer
	last      Trace
}

// New creates a CPU attached to bus, in its reset state.
func New(bus Bus) *CPU {
	log := logrus.New()
	log.SetOutput(io.Discard)
	c := &CPU{
		bus: bus,
		Log: log,
	}
	c.Reset()
	return c
}

// Reset zeroes registers and segments and loads the power-on flags.
func (c *CPU) Reset() {
	c.Registers = Registers{}
	c.seg = Segments{}
	c.Flags = resetFlags
	c.Halted = false
	c.Cycles = 0
	c.last = Trace{}
}

// Bus returns the memory the CPU is attached to.
func (c *CPU) Bus() Bus { return c.bus }

// SetInterruptHandler installs the software interrupt handler. nil removes it.
func (c *CPU) SetInterruptHandler(h InterruptHandler) { c.interrupt = h }

// Halt stops execution as if HLT had run.
func (c *CPU) Halt() { c.Halted = true }

// Resume clears the halted state.
func (c *CPU) Resume() { c.Halted = false }

// LoadCode copies code to seg:off through the bus and points CS:IP at it.
func (c *CPU) LoadCode(seg, off uint16, code []byte) {
	c.SetSelector(CS, seg)
	for i, b := range code {
		c.bus.WriteU8(c.Linear(CS, off+uint16(i)), b)
	}
	c.SetIP(off)
}
