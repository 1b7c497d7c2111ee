package framework

import (
	"errors"
	"fmt"
)

var errNoTypeDeclaration = errors.New("no struct type declaration found")

// DiscoveryError means the fixture directory could not be listed. It aborts the run.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("cannot list fixture directory %s: %s", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ResolutionError means no fixture type could be found in a file. Only that fixture is
// affected; the runner records a failure for it and moves on.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve fixture type in %s: %s", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// InstantiationError means a resolved fixture type could not be constructed. It aborts
// the run.
type InstantiationError struct {
	Fixture FixtureID
	Reason  string
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate fixture %s (%s): %s", e.Fixture, e.Fixture.Path, e.Reason)
}
