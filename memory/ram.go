// Package memory provides flat RAM that satisfies cpu.Bus.
package memory

import (
	"encoding/binary"
	"fmt"
)

// DefaultSize is one megabyte, the real-mode address space.
const DefaultSize = 1 << 20

// RAM is a flat byte array. Addresses wrap modulo its size.
type RAM struct {
	data []byte
}

// New allocates size bytes of zeroed RAM. A size of zero or less gives DefaultSize.
func New(size int) *RAM {
	if size <= 0 {
		size = DefaultSize
	}
	return &RAM{data: make([]byte, size)}
}

// Size returns the number of bytes.
func (r *RAM) Size() int { return len(r.data) }

func (r *RAM) wrap(addr uint32) int { return int(addr % uint32(len(r.data))) }

// ReadU8 returns the byte at addr.
func (r *RAM) ReadU8(addr uint32) uint8 { return r.data[r.wrap(addr)] }

// WriteU8 stores a byte at addr.
func (r *RAM) WriteU8(addr uint32, v uint8) { r.data[r.wrap(addr)] = v }

// ReadU16 returns the little-endian word at addr.
func (r *RAM) ReadU16(addr uint32) uint16 {
	a := r.wrap(addr)
	if a+1 < len(r.data) {
		return binary.LittleEndian.Uint16(r.data[a:])
	}
	return uint16(r.data[a]) | uint16(r.data[0])<<8
}

// WriteU16 stores a little-endian word at addr.
func (r *RAM) WriteU16(addr uint32, v uint16) {
	a := r.wrap(addr)
	if a+1 < len(r.data) {
		binary.LittleEndian.PutUint16(r.data[a:], v)
		return
	}
	r.data[a] = uint8(v)
	r.data[0] = uint8(v >> 8)
}

// Load copies data to addr. It fails if the data would run past the end.
func (r *RAM) Load(addr uint32, data []byte) error {
	if int(addr)+len(data) > len(r.data) {
		return fmt.Errorf("load of %d bytes at %05X exceeds %d bytes of memory", len(data), addr, len(r.data))
	}
	copy(r.data[addr:], data)
	return nil
}

// Slice returns n bytes starting at addr, wrapping at the end.
func (r *RAM) Slice(addr uint32, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = r.ReadU8(addr + uint32(i))
	}
	return out
}
