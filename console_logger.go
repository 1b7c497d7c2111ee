package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/launchdarkly/fixture-harness/framework"
)

// ConsoleFixtureLogger prints fixture progress. Report output goes to stdout, so this
// normally writes to stderr.
type ConsoleFixtureLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleFixtureLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stderr
	}
	return c.Out
}

func (c *ConsoleFixtureLogger) FixtureStarted(id framework.FixtureID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleFixtureLogger) MethodError(id framework.FixtureID, method string, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s: %s\n", method, line)
	}
}

func (c *ConsoleFixtureLogger) FixtureFinished(id framework.FixtureID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.out(), "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleFixtureLogger) FixtureSkipped(id framework.FixtureID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		fmt.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}
