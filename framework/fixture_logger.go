package framework

import "path/filepath"

// FixtureID identifies a fixture file and, once resolved, the type it declares.
type FixtureID struct {
	Path     string
	Identity Identity
}

func (f FixtureID) String() string {
	if f.Identity.Name == "" {
		return filepath.Base(f.Path)
	}
	return f.Identity.String()
}

// FixtureLogger receives progress events while fixtures run. It is separate from the
// assertion store, which only holds records for the final report.
type FixtureLogger interface {
	FixtureStarted(id FixtureID)
	MethodError(id FixtureID, method string, err error)
	FixtureFinished(id FixtureID, failed bool, debugOutput CapturedOutput)
	FixtureSkipped(id FixtureID, reason string)
}

type nullFixtureLogger struct{}

func (n nullFixtureLogger) FixtureStarted(FixtureID)                        {}
func (n nullFixtureLogger) MethodError(FixtureID, string, error)            {}
func (n nullFixtureLogger) FixtureFinished(FixtureID, bool, CapturedOutput) {}
func (n nullFixtureLogger) FixtureSkipped(FixtureID, string)                {}
