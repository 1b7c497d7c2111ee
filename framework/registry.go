package framework

import (
	"reflect"
	"sort"
	"sync"

	"github.com/launchdarkly/fixture-harness/recorder"
)

// Constructor creates a fixture instance that records into the given store.
type Constructor func(store recorder.Store) interface{}

// Registry maps fixture type names, as resolved from source files, to constructors.
type Registry struct {
	constructors map[string]Constructor
	lock         sync.Mutex
}

var defaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// DefaultRegistry is used by runners that don't specify their own.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register makes a fixture type available to the default registry. It is meant to be
// called from an init function in the fixture's package:
//
//	func init() { framework.Register(NewExampleTest) }
func Register[T any](ctor func(recorder.Store) T) {
	RegisterIn(defaultRegistry, ctor)
}

// RegisterIn is like Register but adds to a specific registry. The fixture name is the
// type's package name and type name, which is what ResolvePrimaryType produces for the
// file declaring it.
func RegisterIn[T any](r *Registry, ctor func(recorder.Store) T) {
	if ctor == nil {
		panic("framework: Register constructor is nil")
	}
	r.Add(FixtureName(reflect.TypeOf((*T)(nil)).Elem()), func(store recorder.Store) interface{} {
		return ctor(store)
	})
}

// Add registers a constructor under an explicit name. It panics if the name is taken.
func (r *Registry) Add(name string, ctor Constructor) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, dup := r.constructors[name]; dup {
		panic("framework: Register called twice for fixture " + name)
	}
	r.constructors[name] = ctor
}

func (r *Registry) Lookup(id Identity) (Constructor, bool) {
	r.lock.Lock()
	ctor, ok := r.constructors[id.String()]
	r.lock.Unlock()
	return ctor, ok
}

// Names returns the registered fixture names, sorted.
func (r *Registry) Names() []string {
	r.lock.Lock()
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	r.lock.Unlock()
	sort.Strings(names)
	return names
}

// FixtureName returns "<package>.<Type>" for a fixture type or a pointer to one.
func FixtureName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return stripTypeArgs(t.String())
}
