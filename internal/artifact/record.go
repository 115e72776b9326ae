// Package artifact accumulates one document's derived outputs during a
// compile before they are flushed into the cache.
package artifact

import (
	"sort"

	"github.com/weft-dev/weft/internal/cache"
)

// Record collects rendered fragments, navigation entries, the title, and
// dependency edges for one document. It is mutated only by appends while the
// document's compile task runs and is written to the cache exactly once via
// Flush; afterwards the cache is the source of truth.
type Record struct {
	Name    string
	Title   string
	HTML    []string
	Toctree []string

	deps map[cache.Dep]struct{}
}

// New creates an empty record for the named document.
func New(name string) *Record {
	return &Record{Name: name, deps: make(map[cache.Dep]struct{})}
}

// AddHTML appends rendered fragments in call order.
func (r *Record) AddHTML(fragments ...string) {
	r.HTML = append(r.HTML, fragments...)
}

// AddToctree appends navigation entries in call order.
func (r *Record) AddToctree(entries ...string) {
	r.Toctree = append(r.Toctree, entries...)
}

// AddDependency records a (kind, name) edge; duplicates collapse.
func (r *Record) AddDependency(kind, name string) {
	r.deps[cache.Dep{Kind: kind, Name: name}] = struct{}{}
}

// Dependencies returns the recorded edges sorted by kind then name, so the
// persisted payload is deterministic across runs.
func (r *Record) Dependencies() []cache.Dep {
	deps := make([]cache.Dep, 0, len(r.deps))
	for dep := range r.deps {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Kind == deps[j].Kind {
			return deps[i].Name < deps[j].Name
		}
		return deps[i].Kind < deps[j].Kind
	})
	return deps
}

// HTMLName returns the page file name for the document.
func (r *Record) HTMLName() string {
	return r.Name + ".html"
}

// Flush writes the record into the store: dependency edges to the output
// namespace, derived values to the input namespace under the doc, title and
// toctree kinds. This is the only bridge from in-flight build state to
// durable cache state.
func (r *Record) Flush(store *cache.Store) error {
	if _, err := store.SetOutput(r.Name, r.Dependencies()); err != nil {
		return err
	}
	if _, err := store.SetInput(cache.KindDoc, r.Name, r.HTML); err != nil {
		return err
	}
	if _, err := store.SetInput(cache.KindTitle, r.Name, r.Title); err != nil {
		return err
	}
	_, err := store.SetInput(cache.KindToctree, r.Name, r.Toctree)
	return err
}
