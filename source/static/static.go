// Package static provides an in-memory Source over a fixed result list.
// Useful for small vocabularies (tags, countries) and for tests.
package static

import (
	"context"
	"sort"
	"strings"

	"github.com/unkn0wn-root/heavyselect"
	"github.com/unkn0wn-root/heavyselect/source"
)

type Static struct {
	items []source.Result
}

var _ source.Source = (*Static)(nil)

func New(items []source.Result) *Static {
	cp := make([]source.Result, len(items))
	copy(cp, items)
	return &Static{items: cp}
}

// Search matches term against item text, case-insensitively. Prefix matches
// rank before substring matches; ties keep lexicographic order. Fields and
// query conditions do not apply to a flat list and are ignored.
func (s *Static) Search(_ context.Context, _ heavyselect.Query, term string, _ []string, limit, offset int) ([]source.Result, bool, error) {
	if limit <= 0 || offset < 0 {
		return nil, false, nil
	}

	term = strings.TrimSpace(strings.ToLower(term))
	matches := make([]matched, 0, len(s.items))
	for _, it := range s.items {
		lower := strings.ToLower(it.Text)
		if term != "" && !strings.Contains(lower, term) {
			continue
		}
		matches = append(matches, matched{
			item:     it,
			isPrefix: term != "" && strings.HasPrefix(lower, term),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].item.Text < matches[j].item.Text
	})

	if offset >= len(matches) {
		return nil, false, nil
	}
	matches = matches[offset:]
	more := len(matches) > limit
	if more {
		matches = matches[:limit]
	}

	out := make([]source.Result, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.item)
	}
	return out, more, nil
}

type matched struct {
	item     source.Result
	isPrefix bool
}
