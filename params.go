package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/launchdarkly/fixture-harness/framework"
)

const defaultFixtureDir = "examples"

type commandParams struct {
	dir      string
	dirs     []string
	suffix   string
	format   string
	color    string
	noExit   bool
	verbose  bool
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string) bool {
	return c.read(args, os.Stderr)
}

func (c *commandParams) read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.dir, "dir", defaultFixtureDir, "directory containing fixture files")
	fs.StringVar(&c.suffix, "suffix", framework.DefaultFixtureSuffix, "file name suffix that marks a fixture file")
	fs.StringVar(&c.format, "format", string(framework.FormatText), "report format: text or json")
	fs.StringVar(&c.color, "color", string(framework.ColorAuto), "colorize the text report: auto, always or never")
	fs.BoolVar(&c.noExit, "no-exit", false, "always exit with status 0 after reporting")
	fs.BoolVar(&c.verbose, "verbose", false, "log discovery and resolution steps")
	fs.BoolVar(&c.debug, "debug", false, "show captured debug output for failed fixtures")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show captured debug output for all fixtures")

	fs.Usage = func() {
		fmt.Fprintln(errOut, "usage: fixture-harness [flags] [directory...]")
		fmt.Fprintln(errOut, "Directories after the flags are run and reported one at a time before -dir.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	c.dirs = append(append([]string(nil), fs.Args()...), c.dir)
	switch framework.ReportFormat(c.format) {
	case framework.FormatText, framework.FormatJSON:
	default:
		fmt.Fprintf(errOut, "invalid -format %q\n", c.format)
		fs.Usage()
		return false
	}
	switch framework.ColorMode(c.color) {
	case framework.ColorAuto, framework.ColorAlways, framework.ColorNever:
	default:
		fmt.Fprintf(errOut, "invalid -color %q\n", c.color)
		fs.Usage()
		return false
	}
	if c.suffix == "" {
		fmt.Fprintln(errOut, "-suffix must not be empty")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
