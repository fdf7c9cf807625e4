package vm

import (
	"errors"
	"fmt"
	"io"

	"github.com/Urethramancer/x86/cpu"
)

// ErrUnsupported is returned for service functions the host does not implement.
var ErrUnsupported = errors.New("unsupported service")

// maxDOSString bounds an AH=09h string that lacks its terminator.
const maxDOSString = 0x10000

// InstallDOS installs a minimal DOS and BIOS console: INT 20h terminate,
// INT 21h functions 02h, 09h and 4Ch, and INT 10h teletype output. Console
// output goes to w.
func (v *VM) InstallDOS(w io.Writer) {
	v.HandleInterrupt(0x20, func(c *cpu.CPU) error {
		v.Exit(0)
		return nil
	})
	v.HandleInterrupt(0x21, func(c *cpu.CPU) error {
		return v.int21(c, w)
	})
	v.HandleInterrupt(0x10, func(c *cpu.CPU) error {
		return v.int10(c, w)
	})
}

func (v *VM) int21(c *cpu.CPU, w io.Writer) error {
	switch c.AH() {
	case 0x02:
		_, err := w.Write([]byte{c.DL()})
		return err
	case 0x09:
		var out []byte
		off := c.DX()
		for i := 0; i < maxDOSString; i++ {
			b := c.ReadU8(cpu.DS, off+uint16(i))
			if b == '$' {
				break
			}
			out = append(out, b)
		}
		_, err := w.Write(out)
		return err
	case 0x4C:
		v.Exit(int(c.AL()))
		return nil
	}
	return fmt.Errorf("int 21h function %02X: %w", c.AH(), ErrUnsupported)
}

func (v *VM) int10(c *cpu.CPU, w io.Writer) error {
	switch c.AH() {
	case 0x0E:
		_, err := w.Write([]byte{c.AL()})
		return err
	}
	v.log.WithField("ah", fmt.Sprintf("%02X", c.AH())).Debug("ignored video service")
	return nil
}
