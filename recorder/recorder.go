package recorder

import (
	"sync"
)

// Store is the collector of assertion records used by the harness.
type Store interface {
	Expect(passed bool, label string)
	Results() []Result
	Failures() []Result
	Passed() bool
}

// Result is a single assertion outcome.
type Result struct {
	Passed bool
	Label  string
}

// Recorder is the default in-memory Store.
type Recorder struct {
	results []Result
	lock    sync.Mutex
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Expect appends a record.
func (r *Recorder) Expect(passed bool, label string) {
	r.lock.Lock()
	r.results = append(r.results, Result{Passed: passed, Label: label})
	r.lock.Unlock()
}

// Results returns a copy of all records in insertion order.
func (r *Recorder) Results() []Result {
	r.lock.Lock()
	ret := append([]Result(nil), r.results...)
	r.lock.Unlock()
	return ret
}

// Passed returns true if no record has failed. An empty Recorder has passed.
func (r *Recorder) Passed() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, result := range r.results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed records in insertion order.
func (r *Recorder) Failures() []Result {
	r.lock.Lock()
	defer r.lock.Unlock()
	var ret []Result
	for _, result := range r.results {
		if !result.Passed {
			ret = append(ret, result)
		}
	}
	return ret
}
