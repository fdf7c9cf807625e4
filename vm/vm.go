// Package vm hosts a CPU and its memory: it loads programs, dispatches
// interrupts to host handlers, and drives execution with breakpoints.
package vm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Urethramancer/x86/cpu"
	"github.com/Urethramancer/x86/memory"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBreakpoint stops Run when CS:IP reaches a breakpoint.
	ErrBreakpoint = errors.New("breakpoint")
	// ErrStepLimit stops RunN after the requested number of instructions.
	ErrStepLimit = errors.New("step limit reached")
)

// Handler services one interrupt vector. Handlers run with the VM unlocked,
// so they may call any VM method except Step, Run and RunN.
type Handler func(c *cpu.CPU) error

// VM is a CPU with RAM and host interrupt services.
type VM struct {
	CPU *cpu.CPU
	RAM *memory.RAM

	log *logrus.Logger

	// run serialises instructions. mu guards everything else and is
	// released while a host handler runs.
	run         sync.Mutex
	mu          sync.Mutex
	inCycle     bool
	handlers    map[uint8]Handler
	breakpoints map[uint32]struct{}

	exited   bool
	exitCode int

	executed uint64
	elapsed  time.Duration
}

// Option configures a VM.
type Option func(*VM)

// WithTrace writes a trace line for every instruction to w.
func WithTrace(w io.Writer) Option {
	return func(v *VM) { v.CPU.SetTraceOutput(w) }
}

// WithLogger replaces the logger shared by the VM and its CPU.
func WithLogger(l *logrus.Logger) Option {
	return func(v *VM) {
		v.log = l
		v.CPU.Log = l
	}
}

// WithDebug turns on live tracing.
func WithDebug(on bool) Option {
	return func(v *VM) { v.CPU.Debug = on }
}

// New creates a VM with memsize bytes of RAM.
func New(memsize int, opts ...Option) *VM {
	ram := memory.New(memsize)
	v := &VM{
		CPU:         cpu.New(ram),
		RAM:         ram,
		handlers:    make(map[uint8]Handler),
		breakpoints: make(map[uint32]struct{}),
	}
	v.log = v.CPU.Log
	v.CPU.SetInterruptHandler(v.dispatch)
	for _, o := range opts {
		o(v)
	}
	return v
}

// LoadCode copies code to seg:off and points CS:IP at it. DS, ES and SS are set to seg.
func (v *VM) LoadCode(seg, off uint16, code []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	addr := uint32(seg)<<4 + uint32(off)
	if err := v.RAM.Load(addr, code); err != nil {
		return fmt.Errorf("loading code: %w", err)
	}
	c := v.CPU
	for _, s := range []cpu.SegReg{cpu.CS, cpu.DS, cpu.ES, cpu.SS} {
		c.SetSelector(s, seg)
	}
	c.SetIP(off)
	c.Resume()
	v.exited = false
	v.exitCode = 0
	return nil
}

// COM image layout.
const (
	comOrigin   = 0x0100
	comMaxSize  = 0xFF00 - 2
	comStackTop = 0xFFFE
)

// LoadCOM loads a .COM image at seg:0100. The program segment prefix at
// seg:0000 starts with INT 20h and SP points at a zero word at seg:FFFE, so a
// near RET from the program terminates it.
func (v *VM) LoadCOM(seg uint16, code []byte) error {
	if len(code) > comMaxSize {
		return fmt.Errorf("COM image is %d bytes, limit is %d", len(code), comMaxSize)
	}
	if err := v.LoadCode(seg, comOrigin, code); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	base := uint32(seg) << 4
	v.RAM.WriteU8(base, 0xCD)
	v.RAM.WriteU8(base+1, 0x20)
	v.RAM.WriteU16(base+comStackTop, 0)
	v.CPU.SetSP(comStackTop)
	return nil
}

// HandleInterrupt installs a host handler for vector. nil removes it.
func (v *VM) HandleInterrupt(vector uint8, h Handler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if h == nil {
		delete(v.handlers, vector)
		return
	}
	v.handlers[vector] = h
}

// dispatch runs inside Cycle. When Step or Run hold v.mu it is dropped for
// the duration of the handler.
func (v *VM) dispatch(c *cpu.CPU, vector uint8) error {
	h, ok := v.handlers[vector]
	if ok {
		if v.inCycle {
			v.inCycle = false
			v.mu.Unlock()
			defer func() {
				v.mu.Lock()
				v.inCycle = true
			}()
		}
		return h(c)
	}
	if vector == cpu.VectorDivide {
		return fmt.Errorf("no handler for interrupt %02X: %w", vector, cpu.ErrDivide)
	}
	v.log.WithFields(logrus.Fields{
		"vector": fmt.Sprintf("%02X", vector),
		"cs":     c.Selector(cpu.CS),
		"ip":     c.IP(),
	}).Warn("unhandled interrupt")
	return nil
}

// Exit halts the CPU and records the program's exit code. It is meant to be
// called from interrupt handlers.
func (v *VM) Exit(code int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.exited = true
	v.exitCode = code
	v.CPU.Halt()
}

// ExitCode returns the exit code and whether the program has terminated.
func (v *VM) ExitCode() (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.exitCode, v.exited
}

// SetBreakpoint stops Run before executing the instruction at a linear address.
func (v *VM) SetBreakpoint(addr uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.breakpoints[addr] = struct{}{}
}

// ClearBreakpoint removes a breakpoint.
func (v *VM) ClearBreakpoint(addr uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.breakpoints, addr)
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (v *VM) Breakpoints() []uint32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	list := make([]uint32, 0, len(v.breakpoints))
	for a := range v.breakpoints {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// Step executes one instruction.
func (v *VM) Step() error {
	v.run.Lock()
	defer v.run.Unlock()
	v.mu.Lock()
	defer v.mu.Unlock()
	start := time.Now()
	err := v.cycle()
	v.elapsed += time.Since(start)
	return err
}

// cycle executes one instruction. Callers hold v.run and v.mu.
func (v *VM) cycle() error {
	v.inCycle = true
	err := v.CPU.Cycle()
	v.inCycle = false
	if err != nil {
		return err
	}
	v.executed++
	return nil
}

// Run executes until the program halts, a breakpoint is reached, an error
// occurs or ctx is cancelled. A halt returns nil. The lock is released
// between instructions so Inspect can run while the program does.
func (v *VM) Run(ctx context.Context) error {
	return v.RunN(ctx, 0)
}

// RunN is Run with a limit of n instructions. Zero means no limit.
func (v *VM) RunN(ctx context.Context, n uint64) error {
	start := time.Now()
	defer func() {
		v.mu.Lock()
		v.elapsed += time.Since(start)
		v.mu.Unlock()
	}()

	for i := uint64(0); n == 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		stop, err := v.runOne()
		if stop {
			return err
		}
	}
	return ErrStepLimit
}

// runOne executes one instruction and reports whether Run should stop.
func (v *VM) runOne() (bool, error) {
	v.run.Lock()
	defer v.run.Unlock()
	v.mu.Lock()
	defer v.mu.Unlock()

	c := v.CPU
	if c.Halted {
		return true, cpu.ErrHalted
	}
	if err := v.cycle(); err != nil {
		return true, err
	}
	if c.Halted {
		return true, nil
	}
	if _, ok := v.breakpoints[c.Linear(cpu.CS, c.IP())]; ok {
		return true, ErrBreakpoint
	}
	return false, nil
}

// Inspect calls f with the CPU while no instruction is executing.
func (v *VM) Inspect(f func(c *cpu.CPU)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	f(v.CPU)
}

// Stats reports execution totals.
type Stats struct {
	Instructions uint64
	Elapsed      time.Duration
}

// PerSecond returns the instruction rate.
func (s Stats) PerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Instructions) / s.Elapsed.Seconds()
}

// Stats returns the instructions executed and the time spent executing them.
func (v *VM) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Stats{Instructions: v.executed, Elapsed: v.elapsed}
}
