package memory_test

import (
	"testing"

	"github.com/Urethramancer/x86/memory"
	"github.com/matryer/is"
)

func TestWordsAreLittleEndian(t *testing.T) {
	is := is.New(t)
	r := memory.New(64)
	r.WriteU16(3, 0x1234)
	is.Equal(r.ReadU8(3), uint8(0x34))
	is.Equal(r.ReadU8(4), uint8(0x12))
	is.Equal(r.ReadU16(3), uint16(0x1234))
}

func TestAddressesWrap(t *testing.T) {
	is := is.New(t)
	r := memory.New(16)
	r.WriteU8(17, 0xAA)
	is.Equal(r.ReadU8(1), uint8(0xAA))

	r.WriteU16(15, 0xBEEF)
	is.Equal(r.ReadU8(15), uint8(0xEF))
	is.Equal(r.ReadU8(0), uint8(0xBE))
	is.Equal(r.ReadU16(15), uint16(0xBEEF))
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	r := memory.New(8)
	is.NoErr(r.Load(2, []byte{1, 2, 3}))
	is.Equal(r.Slice(2, 3), []byte{1, 2, 3})
	is.True(r.Load(6, []byte{1, 2, 3}) != nil)
}

func TestDefaultSize(t *testing.T) {
	if got := memory.New(0).Size(); got != memory.DefaultSize {
		t.Errorf("expected %d bytes, got %d", memory.DefaultSize, got)
	}
}
