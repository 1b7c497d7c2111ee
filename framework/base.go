package framework

import (
	"errors"
	"fmt"
	"strings"

	"github.com/launchdarkly/fixture-harness/recorder"
)

var errNoStore = errors.New("fixture base was not created with NewBase")

// Base is embedded by fixture types. It turns boolean checks into labelled records in the
// shared assertion store, naming the fixture method that made the check.
//
// Frames whose function is declared on Base, or on any type passed to NewBase as excluded,
// are never used for the label. This lets intermediate helper types sit between Base and
// the concrete fixture.
type Base struct {
	store    recorder.Store
	excluded typeSet
	debug    *CapturingLogger
}

// NewBase creates a Base that records into store. Each excluded value is a sample of a
// type (value or pointer) whose methods should be skipped during attribution.
func NewBase(store recorder.Store, excluded ...interface{}) Base {
	return Base{
		store:    store,
		excluded: newTypeSet(excluded...),
		debug:    &CapturingLogger{},
	}
}

// Expect records condition with a label identifying the calling fixture method and the
// line of this call. Extra message arguments are joined with spaces.
func (b *Base) Expect(condition bool, message ...string) {
	if b.store == nil {
		panic(errNoStore)
	}
	label := b.excluded.label(callers(1), strings.Join(message, " "))
	b.store.Expect(condition, label)
}

// Debug captures a message that is shown if the fixture fails and debug output is enabled.
func (b *Base) Debug(format string, args ...interface{}) {
	if b.debug == nil {
		return
	}
	b.debug.capture(b.excluded.label(callers(1), ""), fmt.Sprintf(format, args...))
}

// DebugOutput returns everything captured with Debug so far.
func (b *Base) DebugOutput() CapturedOutput {
	if b.debug == nil {
		return nil
	}
	return b.debug.Output()
}
