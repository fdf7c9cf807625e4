package cpu

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Trace describes one executed instruction.
type Trace struct {
	CS, IP   uint16
	Prefix   string
	Mnemonic string
	Operands string
}

// String renders the trace line, e.g. "0000:0100  rep movsb".
func (t Trace) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04X:%04X  ", t.CS, t.IP)
	if t.Prefix != "" {
		sb.WriteString(t.Prefix)
		sb.WriteByte(' ')
	}
	sb.WriteString(t.Mnemonic)
	if t.Operands != "" {
		sb.WriteByte(' ')
		sb.WriteString(t.Operands)
	}
	return sb.String()
}

// SetTraceOutput sets where every trace line is written. nil disables the text output.
func (c *CPU) SetTraceOutput(w io.Writer) { c.trace = w }

// OnTrace registers a live observer. Observers only run while Debug is set.
func (c *CPU) OnTrace(f func(Trace)) { c.observers = append(c.observers, f) }

// LastTrace returns the record of the most recent instruction.
func (c *CPU) LastTrace() Trace { return c.last }

func (c *CPU) emit(in *instruction) {
	t := Trace{
		CS:       in.cs,
		IP:       in.ip,
		Mnemonic: in.mnemonic,
		Operands: in.operands,
	}
	switch {
	case in.lock:
		t.Prefix = "lock"
	case in.rep == PrefixREPNE:
		t.Prefix = "repne"
	case in.rep == PrefixREP && (in.opcode&0xF6 == 0xA6):
		t.Prefix = "repe"
	case in.rep == PrefixREP:
		t.Prefix = "rep"
	}
	c.last = t

	if c.trace != nil {
		fmt.Fprintln(c.trace, t.String())
	}
	if !c.Debug {
		return
	}
	for _, f := range c.observers {
		f(t)
	}
	c.Log.WithFields(logrus.Fields{
		"cs":    t.CS,
		"ip":    t.IP,
		"ax":    c.AX(),
		"flags": c.Flags.String(),
	}).Debug("CPU Step")
}
