package framework

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/fixture-harness/recorder"
)

// sourceLine returns the line number of the only line in file that is exactly statement,
// ignoring indentation.
func sourceLine(t *testing.T, file, statement string) int {
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	found := 0
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == statement {
			require.Zero(t, found, "statement appears more than once in %s: %s", file, statement)
			found = i + 1
		}
	}
	require.NotZero(t, found, "statement not found in %s: %s", file, statement)
	return found
}

type sampleFixture struct {
	Base
}

func newSampleFixture(store recorder.Store) *sampleFixture {
	return &sampleFixture{Base: NewBase(store)}
}

func (s *sampleFixture) TestDirect() {
	s.Expect(true, "direct call")
}

func (s *sampleFixture) TestWithoutMessage() {
	s.Expect(false)
}

func (s *sampleFixture) TestSeveralWords() {
	s.Expect(true, "several", "words")
}

func (s *sampleFixture) TestViaHelper() {
	s.expectPositive(-1)
}

func (s *sampleFixture) expectPositive(n int) {
	s.Expect(n > 0, "positive number")
}

func (s *sampleFixture) TestInClosure() {
	check := func() {
		s.Expect(true, "from a closure")
	}
	check()
}

func (s *sampleFixture) TestDebug() {
	s.Debug("value is %d", 3)
}

// sharedChecks sits between Base and the fixture; its frames never name a record.
type sharedChecks struct {
	Base
}

func (c *sharedChecks) expectEven(n int) {
	c.Expect(n%2 == 0, "even number")
}

type layeredFixture struct {
	sharedChecks
}

func newLayeredFixture(store recorder.Store) *layeredFixture {
	return &layeredFixture{sharedChecks{Base: NewBase(store, sharedChecks{})}}
}

func (l *layeredFixture) TestLayered() {
	l.expectEven(4)
}

type genericFixture[T any] struct {
	Base
	value T
}

func (g genericFixture[T]) TestValue() {
	g.Expect(true, "generic value receiver")
}

func (g *genericFixture[T]) TestPointer() {
	g.Expect(true, "generic pointer receiver")
}

func onlyRecord(t *testing.T, store *recorder.Recorder) recorder.Result {
	results := store.Results()
	require.Len(t, results, 1)
	return results[0]
}

func TestExpectNamesTheCallingMethodAndLine(t *testing.T) {
	store := recorder.New()
	newSampleFixture(store).TestDirect()
	assert.Equal(t, recorder.Result{
		Passed: true,
		Label: fmt.Sprintf("framework.sampleFixture::TestDirect() // base_test.go:%d - direct call",
			sourceLine(t, "base_test.go", `s.Expect(true, "direct call")`)),
	}, onlyRecord(t, store))
}

func TestExpectWithoutMessage(t *testing.T) {
	store := recorder.New()
	newSampleFixture(store).TestWithoutMessage()
	assert.Equal(t, recorder.Result{
		Passed: false,
		Label: fmt.Sprintf("framework.sampleFixture::TestWithoutMessage() // base_test.go:%d",
			sourceLine(t, "base_test.go", `s.Expect(false)`)),
	}, onlyRecord(t, store))
}

func TestExpectJoinsMessageArguments(t *testing.T) {
	store := recorder.New()
	newSampleFixture(store).TestSeveralWords()
	assert.True(t, strings.HasSuffix(onlyRecord(t, store).Label, " - several words"))
}

func TestExpectThroughHelperNamesTestMethod(t *testing.T) {
	store := recorder.New()
	newSampleFixture(store).TestViaHelper()
	assert.Equal(t, recorder.Result{
		Passed: false,
		Label: fmt.Sprintf("framework.sampleFixture::TestViaHelper() // base_test.go:%d - positive number",
			sourceLine(t, "base_test.go", `s.Expect(n > 0, "positive number")`)),
	}, onlyRecord(t, store))
}

func TestExpectInClosureNamesEnclosingMethod(t *testing.T) {
	store := recorder.New()
	newSampleFixture(store).TestInClosure()
	assert.Equal(t, fmt.Sprintf("framework.sampleFixture::TestInClosure() // base_test.go:%d - from a closure",
		sourceLine(t, "base_test.go", `s.Expect(true, "from a closure")`)), onlyRecord(t, store).Label)
}

func TestExpectSkipsExcludedIntermediateTypes(t *testing.T) {
	store := recorder.New()
	newLayeredFixture(store).TestLayered()
	assert.Equal(t, recorder.Result{
		Passed: true,
		Label: fmt.Sprintf("framework.layeredFixture::TestLayered() // base_test.go:%d - even number",
			sourceLine(t, "base_test.go", `l.expectEven(4)`)),
	}, onlyRecord(t, store))
}

func TestExpectFromPlainFunction(t *testing.T) {
	store := recorder.New()
	base := NewBase(store)
	base.Expect(true, "plain")
	assert.Equal(t, fmt.Sprintf("framework.TestExpectFromPlainFunction() // base_test.go:%d - plain",
		sourceLine(t, "base_test.go", `base.Expect(true, "plain")`)), onlyRecord(t, store).Label)
}

func TestExpectWithoutStorePanics(t *testing.T) {
	var fixture sampleFixture
	assert.PanicsWithValue(t, errNoStore, func() { fixture.TestDirect() })
}

func TestDebugCapturesLabelledMessages(t *testing.T) {
	fixture := newSampleFixture(recorder.New())
	fixture.TestDebug()
	output := fixture.DebugOutput()
	require.Len(t, output, 1)
	assert.Equal(t, fmt.Sprintf("framework.sampleFixture::TestDebug() // base_test.go:%d",
		sourceLine(t, "base_test.go", `s.Debug("value is %d", 3)`)), output[0].Source)
	assert.Equal(t, "value is 3", output[0].Message)
}

func TestDebugWithoutNewBaseIsIgnored(t *testing.T) {
	var fixture sampleFixture
	fixture.TestDebug()
	assert.Len(t, fixture.DebugOutput(), 0)
}

func TestExpectOnGenericFixture(t *testing.T) {
	store := recorder.New()
	fixture := genericFixture[int]{Base: NewBase(store)}
	fixture.TestValue()
	fixture.TestPointer()
	assert.Equal(t, []string{
		fmt.Sprintf("framework.genericFixture::TestValue() // base_test.go:%d - generic value receiver",
			sourceLine(t, "base_test.go", `g.Expect(true, "generic value receiver")`)),
		fmt.Sprintf("framework.genericFixture::TestPointer() // base_test.go:%d - generic pointer receiver",
			sourceLine(t, "base_test.go", `g.Expect(true, "generic pointer receiver")`)),
	}, labels(store.Results()))
}
