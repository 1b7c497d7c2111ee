package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/launchdarkly/fixture-harness/framework"
)

var consoleFixture = framework.FixtureID{
	Path:     "examples/example_fixture.go",
	Identity: framework.Identity{Namespace: "examples", Name: "ExampleTest"},
}

func TestConsoleLoggerEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleFixtureLogger{Out: &buf}
	logger.FixtureStarted(consoleFixture)
	logger.MethodError(consoleFixture, "TestBroken", errors.New("first\nsecond"))
	logger.FixtureFinished(consoleFixture, true, nil)
	logger.FixtureSkipped(framework.FixtureID{Path: "dir/empty_fixture.go"}, "no struct type declaration found")

	assert.Equal(t, "[examples.ExampleTest]\n"+
		"  TestBroken: first\n"+
		"  TestBroken: second\n"+
		"  FAILED: examples.ExampleTest\n"+
		"  SKIPPED: empty_fixture.go (no struct type declaration found)\n", buf.String())
}

func TestConsoleLoggerDebugOutput(t *testing.T) {
	when := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	output := framework.CapturedOutput{{Time: when, Message: "hello"}}
	dumped := "    DEBUG [2021-03-04 05:06:07.000] hello\n"

	for _, tc := range []struct {
		name              string
		onFailure, onSucc bool
		failed            bool
		expected          string
	}{
		{"failure shown", true, false, true, "  FAILED: examples.ExampleTest\n" + dumped},
		{"failure hidden", false, false, true, "  FAILED: examples.ExampleTest\n"},
		{"success hidden", true, false, false, ""},
		{"success shown", true, true, false, dumped},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &ConsoleFixtureLogger{Out: &buf, DebugOutputOnFailure: tc.onFailure, DebugOutputOnSuccess: tc.onSucc}
			logger.FixtureFinished(consoleFixture, tc.failed, output)
			assert.Equal(t, tc.expected, buf.String())
		})
	}
}
