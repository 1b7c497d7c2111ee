// Package recorder contains the assertion store shared by every fixture in a test run.
//
// The harness only appends to a Store and reads it back in aggregate at report time; it
// never inspects or mutates individual records.
package recorder
