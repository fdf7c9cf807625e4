package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/Urethramancer/x86/cpu"
	"github.com/Urethramancer/x86/vm"
	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// CLI is the run86 command line.
type CLI struct {
	Image   string   `arg:"" type:"existingfile" help:"Program image to run."`
	COM     bool     `name:"com" default:"true" negatable:"" env:"RUN86_COM" help:"Load as a .COM program at SEG:0100."`
	Seg     string   `name:"seg" default:"0x1000" env:"RUN86_SEG" help:"Load segment."`
	Off     string   `name:"off" default:"0x0000" env:"RUN86_OFF" help:"Load offset for raw images."`
	Mem     int      `name:"mem" default:"1048576" env:"RUN86_MEM" help:"Memory size in bytes."`
	Steps   uint64   `name:"steps" default:"0" env:"RUN86_STEPS" help:"Stop after this many instructions (0 runs to completion)."`
	Break   []string `name:"break" help:"Stop before the instruction at this linear address. Repeatable."`
	Debug   bool     `name:"debug" env:"RUN86_DEBUG" help:"Log every instruction."`
	Trace   string   `name:"trace" type:"path" env:"RUN86_TRACE" help:"Write an instruction trace to this file."`
	Dump    bool     `name:"dump" help:"Print the registers when execution stops."`
	Profile string   `name:"profile" type:"path" help:"Write a CPU profile to this directory."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("run86"),
		kong.Description("Run a 16-bit real-mode x86 program."),
		kong.UsageOnError(),
	)

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	var prof interface{ Stop() }
	if cli.Profile != "" {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath(cli.Profile), profile.Quiet)
	}

	code, err := cli.run(os.Stdout, os.Stderr)
	if prof != nil {
		prof.Stop()
	}
	ctx.FatalIfErrorf(err)
	os.Exit(code)
}

func parseWord(name, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("--%s %q: %w", name, s, err)
	}
	return uint16(v), nil
}

// run loads and executes the image, writing guest output to stdout and
// diagnostics to stderr. It returns the guest's exit code.
func (cli *CLI) run(stdout, stderr io.Writer) (int, error) {
	seg, err := parseWord("seg", cli.Seg)
	if err != nil {
		return 0, err
	}
	off, err := parseWord("off", cli.Off)
	if err != nil {
		return 0, err
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	if cli.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	opts := []vm.Option{vm.WithLogger(log), vm.WithDebug(cli.Debug)}
	if cli.Trace != "" {
		f, err := os.Create(cli.Trace)
		if err != nil {
			return 0, fmt.Errorf("creating trace file: %w", err)
		}
		defer f.Close()
		opts = append(opts, vm.WithTrace(f))
	}

	v := vm.New(cli.Mem, opts...)
	v.InstallDOS(stdout)

	image, err := os.ReadFile(cli.Image)
	if err != nil {
		return 0, fmt.Errorf("reading image: %w", err)
	}
	if cli.COM {
		err = v.LoadCOM(seg, image)
	} else {
		err = v.LoadCode(seg, off, image)
	}
	if err != nil {
		return 0, err
	}

	for _, b := range cli.Break {
		addr, err := strconv.ParseUint(b, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("--break %q: %w", b, err)
		}
		v.SetBreakpoint(uint32(addr))
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = v.RunN(runCtx, cli.Steps)
	if cli.Dump || err != nil && !errors.Is(err, vm.ErrStepLimit) {
		v.DumpRegisters(stderr)
	}

	st := v.Stats()
	log.WithFields(logrus.Fields{
		"instructions": st.Instructions,
		"ips":          int64(st.PerSecond()),
	}).Info("run finished")

	switch {
	case err == nil:
	case errors.Is(err, vm.ErrBreakpoint):
		c := v.CPU
		fmt.Fprintf(stderr, "breakpoint at %04X:%04X\n", c.Selector(cpu.CS), c.IP())
		return 0, nil
	case errors.Is(err, vm.ErrStepLimit):
		return 0, nil
	default:
		return 0, err
	}

	code, _ := v.ExitCode()
	return code, nil
}
