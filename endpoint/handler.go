// Package endpoint serves autocomplete searches for heavyselect widgets.
//
// The handler looks up the request's field_id in the configuration cache,
// reconstructs the stored search (source, fields, page size) and responds
// with {"results": [{"id": ..., "text": ...}], "more": bool}. A missing or
// expired field_id is a normal outcome: rendered pages outlive cache
// entries, so it answers an empty result set, never an error status.
package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/unkn0wn-root/heavyselect"
	"github.com/unkn0wn-root/heavyselect/source"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type searchResponse struct {
	Results []source.Result `json:"results"`
	More    bool            `json:"more"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Callers are expected to pass an Options value produced by NewOptions
// (or equivalent) so defaults are applied.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil || opts.Cache == nil || opts.Sources == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		key := r.URL.Query().Get(opts.FieldParam)
		term := r.URL.Query().Get(opts.TermParam)
		page := parsePage(r.URL.Query().Get(opts.PageParam))

		cfg, ok, err := opts.Cache.Load(r.Context(), key)
		if err != nil {
			opts.Logger.Error("config load failed", heavyselect.Fields{"err": err})
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if !ok {
			writeResults(w, r, nil, false)
			return
		}

		src, ok := opts.Sources.Get(cfg.Source)
		if !ok {
			// snapshot from a replica with a different registry; treat as expired
			opts.Logger.Warn("unknown source in config snapshot", heavyselect.Fields{"source": cfg.Source})
			writeResults(w, r, nil, false)
			return
		}

		q := dependentQuery(cfg, r)
		limit := cfg.Limit()
		results, more, err := src.Search(r.Context(), q, term, cfg.SearchFields, limit, (page-1)*limit)
		if err != nil {
			opts.Logger.Error("search failed", heavyselect.Fields{"source": cfg.Source, "err": err})
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeResults(w, r, results, more)
	})
}

// dependentQuery narrows the snapshot's query by the request's dependent
// field values: each declared dependent field present in the query string
// becomes an equality condition. The client sends the parent fields' current
// values along with the term; an unselected parent (empty value) filters
// nothing.
func dependentQuery(cfg heavyselect.Config, r *http.Request) heavyselect.Query {
	q := cfg.Query
	if len(cfg.DependentFields) == 0 {
		return q
	}
	conds := append([]heavyselect.Cond{}, q.Where...)
	for _, field := range cfg.DependentFields {
		if v := r.URL.Query().Get(field); v != "" {
			conds = append(conds, heavyselect.Cond{Field: field, Op: "=", Value: v})
		}
	}
	q.Where = conds
	return q
}

func writeResults(w http.ResponseWriter, r *http.Request, results []source.Result, more bool) {
	if results == nil {
		results = []source.Result{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(searchResponse{Results: results, More: more})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 1
	}
	return value
}
