package endpoint

import (
	"net/http"

	"github.com/unkn0wn-root/heavyselect"
	"github.com/unkn0wn-root/heavyselect/source"
)

// GuardFunc vets a request before any cache or source access. Returning an
// error rejects the request; wrap a StatusError to pick the status code.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath  string
	FieldParam string
	TermParam  string
	PageParam  string
	Guard      GuardFunc
	Logger     heavyselect.Logger

	// Required
	Cache   heavyselect.ConfigCache
	Sources *source.Registry
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  "/heavyselect/auto.json",
		FieldParam: "field_id",
		TermParam:  "term",
		PageParam:  "page",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/heavyselect/auto.json"
	}
	if opts.FieldParam == "" {
		opts.FieldParam = "field_id"
	}
	if opts.TermParam == "" {
		opts.TermParam = "term"
	}
	if opts.PageParam == "" {
		opts.PageParam = "page"
	}
	if opts.Logger == nil {
		opts.Logger = heavyselect.NopLogger{}
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithFieldParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FieldParam = name
	}
}

func WithTermParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TermParam = name
	}
}

func WithPageParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageParam = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(l heavyselect.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = l
	}
}

func WithCache(c heavyselect.ConfigCache) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Cache = c
	}
}

func WithSources(r *source.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sources = r
	}
}
