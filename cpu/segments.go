package cpu

import "fmt"

// SegReg selects a segment register. The order matches the x86 encoding.
type SegReg int

const (
	ES SegReg = iota
	CS
	SS
	DS
	FS
	GS

	numSegs
)

var segNames = [numSegs]string{"es", "cs", "ss", "ds", "fs", "gs"}

func (s SegReg) String() string {
	if s < 0 || s >= numSegs {
		return fmt.Sprintf("seg(%d)", int(s))
	}
	return segNames[s]
}

// Segment is a real-mode segment register. The linear base is computed when
// the selector is written and is never derived lazily.
type Segment struct {
	selector uint16
	base     uint32
}

// Set loads a selector and its base.
func (s *Segment) Set(selector uint16) {
	s.selector = selector
	s.base = uint32(selector) << 4
}

// Selector returns the 16-bit selector value.
func (s Segment) Selector() uint16 { return s.selector }

// Base returns the cached linear base.
func (s Segment) Base() uint32 { return s.base }

// Segments holds ES, CS, SS, DS, FS and GS.
type Segments [numSegs]Segment

// Selector returns the selector held in s.
func (c *CPU) Selector(s SegReg) uint16 { return c.seg[s].selector }

// SetSelector loads a segment register.
func (c *CPU) SetSelector(s SegReg, v uint16) { c.seg[s].Set(v) }

// SegmentBase returns the linear base of s.
func (c *CPU) SegmentBase(s SegReg) uint32 { return c.seg[s].base }

// Linear returns the linear address of s:off.
func (c *CPU) Linear(s SegReg, off uint16) uint32 { return c.seg[s].base + uint32(off) }
