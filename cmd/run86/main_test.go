package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/matryer/is"
)

// hello prints "Hi" and exits with code 3.
var hello = []byte{
	0xB4, 0x09, 0xBA, 0x0C, 0x01, 0xCD, 0x21,
	0xB8, 0x03, 0x4C, 0xCD, 0x21,
	'H', 'i', '$',
}

func writeImage(t *testing.T, code []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.com")
	if err := os.WriteFile(path, code, 0o644); err != nil {
		t.Fatalf("writing image: %v", err)
	}
	return path
}

func parse(t *testing.T, args ...string) CLI {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("run86"))
	if err != nil {
		t.Fatalf("building parser: %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	return cli
}

func TestFlags(t *testing.T) {
	is := is.New(t)
	path := writeImage(t, hello)

	cli := parse(t, path)
	is.True(cli.COM)
	is.Equal(cli.Seg, "0x1000")
	is.Equal(cli.Mem, 1<<20)
	is.Equal(cli.Steps, uint64(0))

	cli = parse(t, "--no-com", "--seg", "0x2000", "--off", "0x10", "--break", "0x20010,0x20012", "--steps", "9", "--dump", path)
	is.True(!cli.COM)
	is.Equal(cli.Seg, "0x2000")
	is.Equal(cli.Off, "0x10")
	is.Equal(cli.Break, []string{"0x20010", "0x20012"})
	is.Equal(cli.Steps, uint64(9))
	is.True(cli.Dump)
}

func TestRunCOM(t *testing.T) {
	is := is.New(t)
	cli := parse(t, writeImage(t, hello))
	var stdout, stderr bytes.Buffer
	code, err := cli.run(&stdout, &stderr)
	is.NoErr(err)
	is.Equal(code, 3)
	is.Equal(stdout.String(), "Hi")
}

func TestRunStopsAtBreakpoint(t *testing.T) {
	is := is.New(t)
	cli := parse(t, "--break", "0x10105", writeImage(t, hello))
	var stdout, stderr bytes.Buffer
	code, err := cli.run(&stdout, &stderr)
	is.NoErr(err)
	is.Equal(code, 0)
	is.Equal(stdout.String(), "")
	is.True(strings.Contains(stderr.String(), "breakpoint at 1000:0105"))
}

func TestRunRawImageWithTrace(t *testing.T) {
	is := is.New(t)
	trace := filepath.Join(t.TempDir(), "trace.txt")
	cli := parse(t, "--no-com", "--seg", "0x0800", "--off", "0", "--trace", trace, writeImage(t, []byte{0x90, 0xF4}))
	var stdout, stderr bytes.Buffer
	_, err := cli.run(&stdout, &stderr)
	is.NoErr(err)

	data, err := os.ReadFile(trace)
	is.NoErr(err)
	is.Equal(string(data), "0800:0000  nop\n0800:0001  hlt\n")
}

func TestRunStepLimit(t *testing.T) {
	is := is.New(t)
	cli := parse(t, "--steps", "2", writeImage(t, hello))
	var stdout, stderr bytes.Buffer
	code, err := cli.run(&stdout, &stderr)
	is.NoErr(err)
	is.Equal(code, 0)
	is.Equal(stdout.String(), "")
}

func TestBadAddress(t *testing.T) {
	cli := parse(t, "--seg", "zz", writeImage(t, hello))
	if _, err := cli.run(&bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Errorf("expected an error for a bad segment")
	}
}
