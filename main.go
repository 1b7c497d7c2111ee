package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	_ "github.com/launchdarkly/fixture-harness/examples"
	"github.com/launchdarkly/fixture-harness/framework"
	"github.com/launchdarkly/fixture-harness/recorder"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	var logger framework.Logger = framework.NullLogger()
	if params.verbose {
		logger = newDebugLogger()
		var command commandBuilder
		command.add(os.Args...)
		logger.Printf("Running %s", command)
	}

	runner := framework.Runner{
		Suffix: params.suffix,
		Logger: logger,
		FixtureLogger: &ConsoleFixtureLogger{
			Out:                  os.Stderr,
			DebugOutputOnFailure: params.debug || params.debugAll,
			DebugOutputOnSuccess: params.debugAll,
		},
	}
	reporter := framework.Reporter{
		Out:    os.Stdout,
		Format: framework.ReportFormat(params.format),
		Color:  framework.ColorMode(params.color),
	}
	if params.noExit {
		reporter.Exit = func(int) {}
	}

	if err := runDirectories(params.dirs, &runner, reporter); err != nil {
		fmt.Fprintf(os.Stderr, "Test run aborted: %s\n", err)
		os.Exit(1)
	}
}

// runDirectories runs and reports each directory with its own store. Only the last report
// terminates, and its exit code also counts failures reported earlier.
func runDirectories(dirs []string, runner *framework.Runner, reporter framework.Reporter) error {
	earlierFailed := false
	for _, dir := range dirs[:len(dirs)-1] {
		store := recorder.New()
		if err := runner.RunFixtures(dir, store); err != nil {
			return err
		}
		if err := reporter.Report(store, false); err != nil {
			return err
		}
		earlierFailed = earlierFailed || !store.Passed()
	}

	exit := reporter.Exit
	if exit == nil {
		exit = os.Exit
	}
	final := reporter
	final.Exit = func(code int) {
		if earlierFailed {
			code = 1
		}
		exit(code)
	}
	return runner.RunAndReport(dirs[len(dirs)-1], nil, final, true)
}

func newDebugLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}
