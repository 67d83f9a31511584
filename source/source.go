// Package source defines the search executors behind model-backed widgets.
//
// A configuration snapshot names its source; the registry used by the search
// endpoint resolves that name to a live Source at request time. The snapshot
// itself never holds a process-specific handle, so it can be written by one
// replica and read by another.
package source

import (
	"context"
	"sync"

	"github.com/unkn0wn-root/heavyselect"
)

// Result is one autocomplete hit, serialized as {"id": ..., "text": ...}.
type Result struct {
	ID   any    `json:"id"`
	Text string `json:"text"`
}

// Source executes a search described by a configuration snapshot.
// Implementations must be safe for concurrent use.
type Source interface {
	// Search matches term against fields within the collection described by
	// q, returning up to limit results starting at offset plus a flag
	// indicating whether more results exist past this page.
	// An empty term lists the collection unfiltered.
	Search(ctx context.Context, q heavyselect.Query, term string, fields []string, limit, offset int) ([]Result, bool, error)
}

// Registry maps snapshot source names to live sources.
// The zero value is ready to use.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Source
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Source)}
}

func (r *Registry) Register(name string, s Source) {
	r.mu.Lock()
	if r.m == nil {
		r.m = make(map[string]Source)
	}
	r.m[name] = s
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (Source, bool) {
	r.mu.RLock()
	s, ok := r.m[name]
	r.mu.RUnlock()
	return s, ok
}

// Names returns the registered source names (unordered).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.m))
	for name := range r.m {
		out = append(out, name)
	}
	return out
}
