package framework

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/fixture-harness/recorder"
)

type ReportFormat string

const (
	FormatText ReportFormat = "text"
	FormatJSON ReportFormat = "json"
)

type ColorMode string

const (
	// ColorAuto colors output only when the report is written to a terminal.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Reporter writes the records of an assertion store. The zero value writes colorized text
// to stdout and exits with os.Exit when asked to terminate.
type Reporter struct {
	Out    io.Writer
	Format ReportFormat
	Color  ColorMode
	Exit   func(code int)
}

// ExitCode is 0 if every record in store passed and 1 otherwise.
func ExitCode(store recorder.Store) int {
	if store.Passed() {
		return 0
	}
	return 1
}

// Report writes one entry per record, in record order. It does not consume the records,
// so reporting the same store twice gives the same output. If terminate is true, the
// process exits afterward with ExitCode.
func (r Reporter) Report(store recorder.Store, terminate bool) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	var err error
	switch r.Format {
	case FormatText, "":
		err = r.writeText(out, store.Results())
	case FormatJSON:
		err = writeJSON(out, store)
	default:
		return fmt.Errorf("unknown report format %q", r.Format)
	}
	if err != nil {
		return err
	}
	if terminate {
		exit := r.Exit
		if exit == nil {
			exit = os.Exit
		}
		exit(ExitCode(store))
	}
	return nil
}

func (r Reporter) writeText(out io.Writer, results []recorder.Result) error {
	pass := color.New(color.FgHiGreen)
	fail := color.New(color.FgHiRed)
	switch r.Color {
	case ColorAlways:
		pass.EnableColor()
		fail.EnableColor()
	case ColorNever:
		pass.DisableColor()
		fail.DisableColor()
	case ColorAuto, "":
		if !isTerminal(out) {
			pass.DisableColor()
			fail.DisableColor()
		}
	default:
		return fmt.Errorf("unknown color mode %q", r.Color)
	}
	for _, result := range results {
		tag := pass.Sprint("PASS")
		if !result.Passed {
			tag = fail.Sprint("FAIL")
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", tag, result.Label); err != nil {
			return err
		}
	}
	return nil
}

// isTerminal reports whether out is a terminal that should get colored output. Stdout
// follows the color package's own detection, which also honors NO_COLOR and TERM=dumb.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	if f == os.Stdout {
		return !color.NoColor
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeJSON writes {"passed":bool,"results":[{"passed":bool,"label":string},...]}.
func writeJSON(out io.Writer, store recorder.Store) error {
	results := ldvalue.ArrayBuild()
	for _, result := range store.Results() {
		results.Add(ldvalue.ObjectBuild().
			Set("passed", ldvalue.Bool(result.Passed)).
			Set("label", ldvalue.String(result.Label)).
			Build())
	}
	doc := ldvalue.ObjectBuild().
		Set("passed", ldvalue.Bool(store.Passed())).
		Set("results", results.Build()).
		Build()
	_, err := fmt.Fprintln(out, doc.JSONString())
	return err
}
