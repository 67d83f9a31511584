package static

import (
	"context"
	"testing"

	"github.com/unkn0wn-root/heavyselect"
	"github.com/unkn0wn-root/heavyselect/source"
)

var items = []source.Result{
	{ID: 1, Text: "Blue Train"},
	{ID: 2, Text: "Kind of Blue"},
	{ID: 3, Text: "Bluegrass Nights"},
	{ID: 4, Text: "Harvest"},
}

func search(t *testing.T, term string, limit, offset int) ([]source.Result, bool) {
	t.Helper()
	res, more, err := New(items).Search(context.Background(), heavyselect.Query{}, term, nil, limit, offset)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	return res, more
}

func TestPrefixMatchesRankFirst(t *testing.T) {
	res, more := search(t, "blue", 10, 0)
	if more {
		t.Fatalf("unexpected more")
	}
	if len(res) != 3 {
		t.Fatalf("got %d results: %v", len(res), res)
	}
	// prefix matches sort before the substring match
	if res[0].Text != "Blue Train" || res[1].Text != "Bluegrass Nights" {
		t.Fatalf("prefix ranking broken: %v", res)
	}
	if res[2].Text != "Kind of Blue" {
		t.Fatalf("substring match should come last: %v", res)
	}
}

func TestEmptyTermListsAll(t *testing.T) {
	res, _ := search(t, "", 10, 0)
	if len(res) != len(items) {
		t.Fatalf("empty term should list everything, got %d", len(res))
	}
}

func TestPagination(t *testing.T) {
	res, more := search(t, "blue", 2, 0)
	if len(res) != 2 || !more {
		t.Fatalf("page 1: len=%d more=%v", len(res), more)
	}
	res, more = search(t, "blue", 2, 2)
	if len(res) != 1 || more {
		t.Fatalf("page 2: len=%d more=%v", len(res), more)
	}
	res, more = search(t, "blue", 2, 10)
	if len(res) != 0 || more {
		t.Fatalf("past the end: len=%d more=%v", len(res), more)
	}
}

func TestNoMatch(t *testing.T) {
	if res, _ := search(t, "zzz", 10, 0); len(res) != 0 {
		t.Fatalf("expected no results: %v", res)
	}
}
