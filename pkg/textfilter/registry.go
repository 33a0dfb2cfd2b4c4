// registry.go maintains the set of known filters and their type buckets.
package textfilter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Registry maps short names to filters and classifies them by type.
//
// Writers serialize on a mutex and publish a fresh immutable snapshot on every
// registration; readers load the current snapshot without locking. Entries are
// never removed. Registering a short name again replaces the earlier filter
// and keeps its original position in the registration order.
type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	byName  map[string]Filter
	order   []string
	all     []Filter
	buckets map[Type][]Filter
}

// Default is the process-wide registry the built-in filters register into.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(buildSnapshot(map[string]Filter{}, nil))
	return r
}

// Register adds f under its short name, replacing any filter already
// registered under that name. It fails without registering anything when the
// short name cannot be derived or the declared type is unknown.
func (r *Registry) Register(f Filter) error {
	if f == nil {
		return fmt.Errorf("%w: nil filter", ErrUnknownIdentity)
	}
	name, err := ShortName(f)
	if err != nil {
		return err
	}
	t := TypeOf(f)
	if !t.Valid() {
		return fmt.Errorf("%w: %s declares unknown type %q", ErrWrongFilterType, name, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	byName := maps.Clone(cur.byName)
	order := cur.order
	_, replaced := byName[name]
	if !replaced {
		order = append(slices.Clone(order), name)
	}
	byName[name] = f
	r.snap.Store(buildSnapshot(byName, order))

	entry := Logger().WithFields(logrus.Fields{
		"filter": name,
		"type":   string(t),
	})
	if replaced {
		entry.Warn("replaced registered text filter")
	} else {
		entry.Debug("registered text filter")
	}
	return nil
}

// MustRegister is like Register but panics on error. Meant for init().
func (r *Registry) MustRegister(f Filter) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Lookup returns the filter registered under name.
func (r *Registry) Lookup(name string) (Filter, error) {
	f, ok := r.snap.Load().byName[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	return f, nil
}

// All returns every registered filter in registration order.
func (r *Registry) All() []Filter {
	return slices.Clone(r.snap.Load().all)
}

// Names returns every registered short name in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.snap.Load().order)
}

// ByType returns the filters of type t in registration order. The result is
// empty, never nil, when nothing is registered for t.
func (r *Registry) ByType(t Type) []Filter {
	bucket := r.snap.Load().buckets[t]
	if bucket == nil {
		return []Filter{}
	}
	return slices.Clone(bucket)
}

// Buckets returns every type bucket, including empty ones.
func (r *Registry) Buckets() map[Type][]Filter {
	snap := r.snap.Load()
	out := make(map[Type][]Filter, len(snap.buckets))
	for t, bucket := range snap.buckets {
		out[t] = slices.Clone(bucket)
	}
	return out
}

// MacroFilters returns the filters that expand macro tags, in registration order.
func (r *Registry) MacroFilters() []Filter {
	var out []Filter
	for _, f := range r.snap.Load().all {
		if TypeOf(f).IsMacro() {
			out = append(out, f)
		}
	}
	return out
}

func buildSnapshot(byName map[string]Filter, order []string) *snapshot {
	snap := &snapshot{
		byName:  byName,
		order:   order,
		all:     make([]Filter, 0, len(order)),
		buckets: make(map[Type][]Filter, len(Types)),
	}
	for _, t := range Types {
		snap.buckets[t] = []Filter{}
	}
	for _, name := range order {
		f := byName[name]
		snap.all = append(snap.all, f)
		t := TypeOf(f)
		snap.buckets[t] = append(snap.buckets[t], f)
	}
	return snap
}

// Register adds f to the Default registry.
func Register(f Filter) error { return Default.Register(f) }

// MustRegister adds f to the Default registry and panics on error.
func MustRegister(f Filter) { Default.MustRegister(f) }

// Lookup finds a filter in the Default registry.
func Lookup(name string) (Filter, error) { return Default.Lookup(name) }

// All lists the Default registry in registration order.
func All() []Filter { return Default.All() }

// ByType lists the Default registry's filters of type t.
func ByType(t Type) []Filter { return Default.ByType(t) }

// MacroFilters lists the Default registry's macro filters.
func MacroFilters() []Filter { return Default.MacroFilters() }
