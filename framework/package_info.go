// Package framework discovers and runs fixtures, and reports their assertion records.
//
// The general model is:
//
// 1. A fixture is a struct type that embeds Base and is declared in a file whose name ends
// with the fixture suffix (by default "_fixture.go"). Its package registers a constructor
// at init time with Register.
//
// 2. The runner lists the fixture files of one directory, finds the first struct type
// declared in each by lexing the file, constructs that type through the registry, and
// calls every exported method whose name starts with "Test".
//
// 3. Test methods call Expect, which records a pass or fail into the assertion store along
// with a label naming the test method and the line of the call. A panic or returned error
// in a test method becomes one failed record, and the run goes on.
//
// 4. The reporter prints every record as a PASS or FAIL line and can end the process
// with an exit code suitable for CI.
//
// Everything runs sequentially. Each test method is called on a goroutine of its own so that
// runtime.Goexit can be caught, but the runner waits for it before going on. A test method
// that never returns blocks the whole run.
package framework
