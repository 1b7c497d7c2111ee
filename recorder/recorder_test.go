package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyRecorderHasPassed(t *testing.T) {
	r := New()
	assert.True(t, r.Passed())
	assert.Len(t, r.Results(), 0)
	assert.Len(t, r.Failures(), 0)
}

func TestRecorderKeepsInsertionOrder(t *testing.T) {
	r := New()
	r.Expect(true, "first")
	r.Expect(false, "second")
	r.Expect(true, "third")

	assert.Equal(t, []Result{
		{Passed: true, Label: "first"},
		{Passed: false, Label: "second"},
		{Passed: true, Label: "third"},
	}, r.Results())
	assert.False(t, r.Passed())
	assert.Equal(t, []Result{{Passed: false, Label: "second"}}, r.Failures())
}

func TestResultsReturnsCopy(t *testing.T) {
	r := New()
	r.Expect(true, "a")

	results := r.Results()
	results[0].Passed = false

	assert.True(t, r.Passed())
	assert.Equal(t, r.Results(), r.Results())
}
