package framework

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/launchdarkly/fixture-harness/recorder"
)

// TestMethodPrefix marks the exported fixture methods that the runner invokes.
const TestMethodPrefix = "Test"

// Runner discovers fixture files in a directory and runs their test methods. The zero
// value uses the default registry and fixture suffix, and logs nothing.
type Runner struct {
	Registry      *Registry
	Suffix        string
	Logger        Logger
	FixtureLogger FixtureLogger
}

type environment struct {
	registry      *Registry
	logger        Logger
	fixtureLogger FixtureLogger
	store         recorder.Store
}

func (r *Runner) environment(store recorder.Store) *environment {
	env := &environment{
		registry:      r.Registry,
		logger:        r.Logger,
		fixtureLogger: r.FixtureLogger,
		store:         store,
	}
	if env.registry == nil {
		env.registry = defaultRegistry
	}
	if env.logger == nil {
		env.logger = NullLogger()
	}
	if env.fixtureLogger == nil {
		env.fixtureLogger = nullFixtureLogger{}
	}
	return env
}

// RunFixtures runs every fixture in dir, recording into store. All fixtures share the
// store.
//
// A *DiscoveryError or *InstantiationError stops the run and is returned. A file without
// a fixture type, and any panic or error from a test method, only adds a failed record.
func (r *Runner) RunFixtures(dir string, store recorder.Store) error {
	files, err := DiscoverFixtures(dir, r.Suffix)
	if err != nil {
		return err
	}
	env := r.environment(store)
	env.logger.Printf("Found %d fixture file(s) in %s", len(files), dir)
	for _, file := range files {
		if err := env.runFixture(file); err != nil {
			return err
		}
	}
	return nil
}

// RunAndReport runs the fixtures in dir and then reports. If store is nil a new Recorder
// is used. Nothing is reported if the run was aborted.
func (r *Runner) RunAndReport(dir string, store recorder.Store, reporter Reporter, terminate bool) error {
	if store == nil {
		store = recorder.New()
	}
	if err := r.RunFixtures(dir, store); err != nil {
		return err
	}
	return reporter.Report(store, terminate)
}

func (env *environment) runFixture(file string) error {
	id, err := ResolvePrimaryType(file)
	if err != nil {
		env.logger.Printf("Skipping %s: %s", file, err)
		env.store.Expect(false, fmt.Sprintf("%s - Exception: %s", filepath.Base(file), err))
		env.fixtureLogger.FixtureSkipped(FixtureID{Path: file}, err.Error())
		return nil
	}
	fixture := FixtureID{Path: file, Identity: id}
	env.logger.Printf("Resolved %s as %s", file, id)
	env.fixtureLogger.FixtureStarted(fixture)

	instance, err := env.instantiate(fixture)
	if err != nil {
		return err
	}

	failuresBefore := len(env.store.Failures())
	for _, m := range testMethods(instance, env.declaredOrder(fixture)) {
		switch outcome := m.invoke().(type) {
		case Raised:
			env.store.Expect(false, outcome.Label(id, m.name))
			env.fixtureLogger.MethodError(fixture, m.name, outcome)
		case Returned:
		}
	}

	failed := len(env.store.Failures()) > failuresBefore
	var debugOutput CapturedOutput
	if d, ok := instance.(interface{ DebugOutput() CapturedOutput }); ok {
		debugOutput = d.DebugOutput()
	}
	env.fixtureLogger.FixtureFinished(fixture, failed, debugOutput)
	return nil
}

func (env *environment) instantiate(fixture FixtureID) (instance interface{}, err error) {
	ctor, ok := env.registry.Lookup(fixture.Identity)
	if !ok {
		return nil, &InstantiationError{Fixture: fixture, Reason: "no constructor is registered for this type"}
	}
	defer func() {
		if r := recover(); r != nil {
			instance, err = nil, &InstantiationError{Fixture: fixture, Reason: fmt.Sprintf("constructor panicked: %v", r)}
		}
	}()
	instance = ctor(env.store)
	if instance == nil || reflect.ValueOf(instance).Kind() == reflect.Ptr && reflect.ValueOf(instance).IsNil() {
		return nil, &InstantiationError{Fixture: fixture, Reason: "constructor returned nil"}
	}
	return instance, nil
}

func (env *environment) declaredOrder(fixture FixtureID) []string {
	methods, err := DeclaredMethods(fixture.Path, fixture.Identity.Name)
	if err != nil {
		env.logger.Printf("Could not read method order from %s, using name order: %s", fixture.Path, err)
	}
	return methods
}

// testMethods returns the exported methods with the test prefix, in declaration order.
// Methods not declared in the fixture file follow in name order.
func testMethods(instance interface{}, order []string) []testMethod {
	v := reflect.ValueOf(instance)
	t := v.Type()
	var methods []testMethod
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !strings.HasPrefix(m.Name, TestMethodPrefix) {
			continue
		}
		methods = append(methods, testMethod{
			name:  m.Name,
			value: v.Method(i),
			decl:  declaration(t, m.Name),
		})
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, seen := rank[name]; !seen {
			rank[name] = i
		}
	}
	position := func(name string) int {
		if i, ok := rank[name]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(methods, func(i, j int) bool {
		return position(methods[i].name) < position(methods[j].name)
	})
	return methods
}

// RunFixtures runs the fixtures in dir with a default Runner.
func RunFixtures(dir string, store recorder.Store) error {
	return (&Runner{}).RunFixtures(dir, store)
}

// ReportResults writes the records in store to stdout.
func ReportResults(store recorder.Store, terminate bool) error {
	return Reporter{}.Report(store, terminate)
}

// RunAndReport runs the fixtures in dir with a default Runner and reports to stdout.
func RunAndReport(dir string, store recorder.Store, terminate bool) error {
	return (&Runner{}).RunAndReport(dir, store, Reporter{}, terminate)
}
