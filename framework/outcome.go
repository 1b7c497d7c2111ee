package framework

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

var errNoCompletion = errors.New("test method stopped without returning: panic(nil) or runtime.Goexit")

// Outcome is the result of invoking one test method: Returned or Raised.
type Outcome interface {
	outcome()
}

// Returned means the method finished normally.
type Returned struct{}

// Raised means the method panicked or returned a non-nil error.
type Raised struct {
	File    string // empty if the origin is unknown
	Line    int
	Message string
}

func (Returned) outcome() {}
func (Raised) outcome()   {}

func (r Raised) Error() string { return r.Message }

// Label formats the failure the way it is recorded in the assertion store.
func (r Raised) Label(fixture Identity, method string) string {
	var b strings.Builder
	b.WriteString(fixture.String())
	b.WriteString("::")
	b.WriteString(method)
	b.WriteString("()")
	if r.File != "" {
		fmt.Fprintf(&b, " // %s:%d", filepath.Base(r.File), r.Line)
	}
	b.WriteString(" - Exception: ")
	b.WriteString(r.Message)
	return b.String()
}

type testMethod struct {
	name  string
	value reflect.Value
	decl  Raised // declaration position, used when nothing better is known
}

func (m testMethod) callable() bool {
	t := m.value.Type()
	return t.NumIn() == 0 &&
		(t.NumOut() == 0 || (t.NumOut() == 1 && t.Out(0) == errorType))
}

// invoke calls the method with no arguments and waits for it. Panics, returned errors and
// runtime.Goexit are all caught, so every invocation yields exactly one Outcome.
func (m testMethod) invoke() Outcome {
	if !m.callable() {
		raised := m.decl
		raised.Message = fmt.Sprintf("test method must have signature func() or func() error, not %s", m.value.Type())
		return raised
	}

	done := make(chan Outcome, 1)
	go func() {
		completed := false
		defer func() {
			if r := recover(); r != nil {
				done <- raisedFromPanic(r, panicSite(), m.decl)
			} else if !completed {
				raised := m.decl
				raised.Message = errNoCompletion.Error()
				done <- raised
			}
		}()
		outcome := m.call()
		completed = true
		done <- outcome
	}()
	return <-done
}

func (m testMethod) call() Outcome {
	out := m.value.Call(nil)
	if len(out) == 1 && !out[0].IsNil() {
		err, _ := out[0].Interface().(error)
		raised := m.decl
		raised.Message = err.Error()
		if file, line, ok := errorOrigin(err); ok {
			raised.File, raised.Line = file, line
		}
		return raised
	}
	return Returned{}
}

func raisedFromPanic(value interface{}, site *runtime.Frame, decl Raised) Raised {
	raised := decl
	if site != nil {
		raised.File, raised.Line = site.File, site.Line
	}
	switch v := value.(type) {
	case error:
		raised.Message = v.Error()
		if file, line, ok := errorOrigin(v); ok {
			raised.File, raised.Line = file, line
		}
	case string:
		raised.Message = v
	default:
		raised.Message = fmt.Sprint(v)
	}
	return raised
}

// panicSite finds the frame that panicked. It must be called from the deferred function
// that recovers.
func panicSite() *runtime.Frame {
	pcs := make([]uintptr, maxCallDepth)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	sawPanic := false
	for {
		f, more := frames.Next()
		switch {
		case f.Function == "runtime.gopanic":
			sawPanic = true
		case sawPanic && !strings.HasPrefix(f.Function, "runtime."):
			return &f
		}
		if !more {
			return nil
		}
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// errorOrigin returns where the innermost error carrying a stack trace was created.
func errorOrigin(err error) (string, int, bool) {
	var origin errors.Frame
	found := false
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			if trace := st.StackTrace(); len(trace) > 0 {
				origin = trace[0]
				found = true
			}
		}
	}
	if !found {
		return "", 0, false
	}
	line, convErr := strconv.Atoi(fmt.Sprintf("%d", origin))
	if convErr != nil {
		return "", 0, false
	}
	return fmt.Sprintf("%s", origin), line, true
}

// declaration returns where a method of t is declared.
func declaration(t reflect.Type, name string) Raised {
	candidates := []reflect.Type{t}
	if t.Kind() == reflect.Ptr {
		candidates = []reflect.Type{t.Elem(), t}
	}
	for _, c := range candidates {
		m, ok := c.MethodByName(name)
		if !ok {
			continue
		}
		fn := runtime.FuncForPC(m.Func.Pointer())
		if fn == nil {
			continue
		}
		file, line := fn.FileLine(fn.Entry())
		if file != "" && file != autogeneratedFile {
			return Raised{File: file, Line: line}
		}
	}
	return Raised{}
}
