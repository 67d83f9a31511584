// Package widget renders select2-style form controls.
//
// Static widgets (Select, MultiSelect) carry their options inline. Heavy
// widgets point the browser at a remote data URL. Model widgets go one step
// further: at render time they snapshot their search configuration into a
// ConfigCache and embed the derived key as data-field_id, which the search
// endpoint uses to reconstruct the query.
package widget

import (
	"context"
	"fmt"
	"html/template"
	"sync/atomic"

	"github.com/unkn0wn-root/heavyselect"
)

// Select is a single-value static select.
type Select struct {
	opts Options
}

func NewSelect(fns ...OptionFn) *Select {
	return &Select{opts: NewOptions(fns...)}
}

func (s *Select) Render(name string, selected ...string) template.HTML {
	return renderSelect(s.opts, renderSpec{name: name, selected: selected})
}

func (s *Select) Media() Media { return mediaFor(s.opts) }

// MultiSelect is a multi-value static select.
type MultiSelect struct {
	opts Options
}

func NewMultiSelect(fns ...OptionFn) *MultiSelect {
	return &MultiSelect{opts: NewOptions(fns...)}
}

func (s *MultiSelect) Render(name string, selected ...string) template.HTML {
	return renderSelect(s.opts, renderSpec{name: name, selected: selected, multiple: true})
}

func (s *MultiSelect) Media() Media { return mediaFor(s.opts) }

// HeavySelect fetches its options from a remote data URL.
type HeavySelect struct {
	opts     Options
	multiple bool
}

// NewHeavySelect fails when no data URL is configured: a remote widget
// without an endpoint can never produce options, and that mistake must
// surface at construction, not at first search.
func NewHeavySelect(fns ...OptionFn) (*HeavySelect, error) {
	opts := NewOptions(fns...)
	if opts.DataURL == "" {
		return nil, fmt.Errorf("widget: heavy select requires a data URL")
	}
	return &HeavySelect{opts: opts}, nil
}

func NewHeavyMultiSelect(fns ...OptionFn) (*HeavySelect, error) {
	w, err := NewHeavySelect(fns...)
	if err != nil {
		return nil, err
	}
	w.multiple = true
	return w, nil
}

// URL returns the configured data URL.
func (s *HeavySelect) URL() string { return s.opts.DataURL }

func (s *HeavySelect) Render(name string, selected ...Choice) template.HTML {
	return renderSelect(s.opts, renderSpec{
		name:       name,
		chosen:     selected,
		multiple:   s.multiple,
		remoteURL:  s.opts.DataURL,
		remoteOnly: true,
	})
}

func (s *HeavySelect) Media() Media { return mediaFor(s.opts) }

// ModelSelect is a source-backed autocomplete widget. Each Render stores a
// fresh configuration snapshot and embeds the derived key in the markup.
type ModelSelect struct {
	opts     Options
	cache    heavyselect.ConfigCache
	cfg      heavyselect.Config
	token    heavyselect.Token
	nonce    atomic.Uint64
	multiple bool
	tags     bool
}

// NewModelSelect validates its configuration eagerly: a dynamic widget with
// no source or no search fields is a programming error and must not be
// deferred to render or search time.
func NewModelSelect(cache heavyselect.ConfigCache, cfg heavyselect.Config, fns ...OptionFn) (*ModelSelect, error) {
	if cache == nil {
		return nil, fmt.Errorf("widget: model select requires a config cache")
	}
	if cfg.Source == "" {
		return nil, fmt.Errorf("widget: model select requires a source")
	}
	if len(cfg.SearchFields) == 0 {
		return nil, fmt.Errorf("widget: model select requires search fields")
	}
	token, err := heavyselect.NewToken()
	if err != nil {
		return nil, err
	}
	opts := NewOptions(fns...)
	if opts.DataURL == "" {
		opts.DataURL = "/heavyselect/auto.json"
	}
	return &ModelSelect{opts: opts, cache: cache, cfg: cfg, token: token}, nil
}

func NewModelMultiSelect(cache heavyselect.ConfigCache, cfg heavyselect.Config, fns ...OptionFn) (*ModelSelect, error) {
	w, err := NewModelSelect(cache, cfg, fns...)
	if err != nil {
		return nil, err
	}
	w.multiple = true
	return w, nil
}

// NewModelTagSelect renders with data-tags enabled, letting users submit
// values absent from the source.
func NewModelTagSelect(cache heavyselect.ConfigCache, cfg heavyselect.Config, fns ...OptionFn) (*ModelSelect, error) {
	w, err := NewModelMultiSelect(cache, cfg, fns...)
	if err != nil {
		return nil, err
	}
	w.tags = true
	return w, nil
}

// Render snapshots the widget configuration into the cache and renders the
// control with the derived key bound as data-field_id. The render nonce
// makes every call derive a fresh key, so markup from an earlier render
// cannot read configuration stored by a later one.
func (m *ModelSelect) Render(ctx context.Context, name string, selected ...Choice) (template.HTML, error) {
	fieldID := fmt.Sprintf("%s:%d", name, m.nonce.Add(1))
	key, err := m.cache.Store(ctx, m.token, fieldID, m.cfg)
	if err != nil {
		return "", err
	}
	return renderSelect(m.opts, renderSpec{
		name:       name,
		chosen:     selected,
		multiple:   m.multiple,
		tags:       m.tags,
		remoteURL:  m.opts.DataURL,
		remoteOnly: true,
		fieldKey:   key,
		dependent:  m.cfg.DependentFields,
	}), nil
}

func (m *ModelSelect) Media() Media { return mediaFor(m.opts) }
