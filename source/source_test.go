package source

import (
	"context"
	"testing"

	"github.com/unkn0wn-root/heavyselect"
)

type nopSource struct{}

func (nopSource) Search(context.Context, heavyselect.Query, string, []string, int, int) ([]Result, bool, error) {
	return nil, false, nil
}

// TestZeroValueRegistry: a Registry declared without NewRegistry must accept
// registrations instead of panicking on a nil map.
func TestZeroValueRegistry(t *testing.T) {
	var r Registry
	r.Register("albums", nopSource{})

	if _, ok := r.Get("albums"); !ok {
		t.Fatalf("registered source not found")
	}
	if _, ok := r.Get("ghosts"); ok {
		t.Fatalf("unregistered source should miss")
	}
	if names := r.Names(); len(names) != 1 || names[0] != "albums" {
		t.Fatalf("Names: %v", names)
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	first := nopSource{}
	r.Register("albums", first)
	r.Register("albums", nopSource{})
	if names := r.Names(); len(names) != 1 {
		t.Fatalf("re-registering a name must replace, got %v", names)
	}
}
