package cpu

import "github.com/sirupsen/logrus"

// ReadU8 reads a byte at s:off.
func (c *CPU) ReadU8(s SegReg, off uint16) uint8 {
	addr := c.Linear(s, off)
	v := c.bus.ReadU8(addr)
	if s != CS && c.Log.IsLevelEnabled(logrus.TraceLevel) {
		c.Log.WithFields(logrus.Fields{"addr": addr, "value": v}).Trace("memory read byte")
	}
	return v
}

// ReadU16 reads a little-endian word at s:off.
func (c *CPU) ReadU16(s SegReg, off uint16) uint16 {
	addr := c.Linear(s, off)
	v := c.bus.ReadU16(addr)
	if s != CS && c.Log.IsLevelEnabled(logrus.TraceLevel) {
		c.Log.WithFields(logrus.Fields{"addr": addr, "value": v}).Trace("memory read word")
	}
	return v
}

// WriteU8 writes a byte at s:off.
func (c *CPU) WriteU8(s SegReg, off uint16, v uint8) {
	addr := c.Linear(s, off)
	if c.Log.IsLevelEnabled(logrus.TraceLevel) {
		c.Log.WithFields(logrus.Fields{"addr": addr, "value": v}).Trace("memory write byte")
	}
	c.bus.WriteU8(addr, v)
}

// WriteU16 writes a little-endian word at s:off.
func (c *CPU) WriteU16(s SegReg, off uint16, v uint16) {
	addr := c.Linear(s, off)
	if c.Log.IsLevelEnabled(logrus.TraceLevel) {
		c.Log.WithFields(logrus.Fields{"addr": addr, "value": v}).Trace("memory write word")
	}
	c.bus.WriteU16(addr, v)
}

// fetchU8 reads the byte at CS:IP and advances IP.
func (c *CPU) fetchU8() uint8 {
	v := c.ReadU8(CS, c.IP())
	c.SetIP(c.IP() + 1)
	return v
}

// fetchU16 reads the word at CS:IP and advances IP.
func (c *CPU) fetchU16() uint16 {
	v := c.ReadU16(CS, c.IP())
	c.SetIP(c.IP() + 2)
	return v
}

// signExtend8 widens a signed byte to a word.
func signExtend8(v uint8) uint16 {
	return uint16(int16(int8(v)))
}
