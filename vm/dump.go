package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/Urethramancer/x86/cpu"
	"github.com/fatih/color"
)

var (
	labelColor = color.New(color.FgCyan)
	valueColor = color.New(color.FgHiWhite)
	setColor   = color.New(color.FgGreen, color.Bold)
	clearColor = color.New(color.FgHiBlack)
)

var dumpFlags = []struct {
	flag cpu.Flag
	name string
}{
	{cpu.FlagOF, "O"}, {cpu.FlagDF, "D"}, {cpu.FlagIF, "I"}, {cpu.FlagTF, "T"},
	{cpu.FlagSF, "S"}, {cpu.FlagZF, "Z"}, {cpu.FlagAF, "A"}, {cpu.FlagPF, "P"}, {cpu.FlagCF, "C"},
}

// DumpRegisters writes the registers, segments and flags to w.
func (v *VM) DumpRegisters(w io.Writer) {
	v.Inspect(func(c *cpu.CPU) {
		field := func(name string, val uint16) string {
			return labelColor.Sprint(name) + "=" + valueColor.Sprintf("%04X", val)
		}
		line := []string{
			field("AX", c.AX()), field("BX", c.BX()), field("CX", c.CX()), field("DX", c.DX()),
			field("SP", c.SP()), field("BP", c.BP()), field("SI", c.SI()), field("DI", c.DI()),
		}
		fmt.Fprintln(w, strings.Join(line, " "))

		line = []string{
			field("DS", c.Selector(cpu.DS)), field("ES", c.Selector(cpu.ES)),
			field("SS", c.Selector(cpu.SS)), field("CS", c.Selector(cpu.CS)),
			field("IP", c.IP()),
		}
		fmt.Fprintln(w, strings.Join(line, " "))

		var fl strings.Builder
		for _, f := range dumpFlags {
			if c.Flags.Get(f.flag) {
				fl.WriteString(setColor.Sprint(f.name))
			} else {
				fl.WriteString(clearColor.Sprint("-"))
			}
		}
		fmt.Fprintf(w, "%s %s  %s=%d\n", labelColor.Sprint("FLAGS"), fl.String(), labelColor.Sprint("IOPL"), c.Flags.IOPL())
	})
}
