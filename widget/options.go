package widget

// Choice is one fixed option of a static select.
type Choice struct {
	Value string
	Label string
}

type Options struct {
	// Lang sets the rendered lang attribute and picks the i18n asset.
	// "" => "en".
	Lang string

	// Placeholder is shown in the empty control.
	Placeholder string

	// Required suppresses the clear button and the leading empty option.
	Required bool

	// MinimumInputLength is the number of characters before a remote widget
	// starts searching.
	MinimumInputLength int

	// DataURL is the search endpoint for remote widgets. Heavy widgets
	// require it; model widgets default to the endpoint package's default
	// mount path.
	DataURL string

	// Theme sets data-theme on the control, selecting a select2 theme.
	// "" renders no attribute (library default).
	Theme string

	// EmptyLabel is the text of the leading empty option on optional single
	// selects. Usually "" (a blank option the clear button resets to).
	EmptyLabel string

	// MediaCSS and MediaJS override the default asset lists wholesale, for
	// deployments that self-host or pin different builds. nil keeps the
	// defaults; the widget glue and i18n file must then be listed by hand.
	MediaCSS []string
	MediaJS  []string

	// Choices are the fixed options of a static widget.
	Choices []Choice

	// Attrs are extra HTML attributes merged into the control. A "class"
	// entry is appended to the widget class, not replacing it.
	Attrs map[string]string
}

type OptionFn func(*Options)

func NewOptions(fns ...OptionFn) Options {
	var opts Options
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	if opts.MediaCSS != nil {
		opts.MediaCSS = append([]string{}, opts.MediaCSS...)
	}
	if opts.MediaJS != nil {
		opts.MediaJS = append([]string{}, opts.MediaJS...)
	}
	if opts.Choices != nil {
		opts.Choices = append([]Choice{}, opts.Choices...)
	}
	if opts.Attrs != nil {
		cp := make(map[string]string, len(opts.Attrs))
		for k, v := range opts.Attrs {
			cp[k] = v
		}
		opts.Attrs = cp
	}
	return opts
}

func WithLang(lang string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Lang = lang
	}
}

func WithPlaceholder(p string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Placeholder = p
	}
}

func WithRequired(required bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Required = required
	}
}

func WithMinimumInputLength(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MinimumInputLength = n
	}
}

func WithTheme(theme string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = theme
	}
}

func WithEmptyLabel(label string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptyLabel = label
	}
}

func WithMediaCSS(assets []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if assets == nil {
			o.MediaCSS = nil
			return
		}
		o.MediaCSS = append([]string{}, assets...)
	}
}

func WithMediaJS(assets []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if assets == nil {
			o.MediaJS = nil
			return
		}
		o.MediaJS = append([]string{}, assets...)
	}
}

func WithDataURL(url string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DataURL = url
	}
}

func WithChoices(choices []Choice) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if choices == nil {
			o.Choices = nil
			return
		}
		o.Choices = append([]Choice{}, choices...)
	}
}

func WithAttrs(attrs map[string]string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if attrs == nil {
			o.Attrs = nil
			return
		}
		cp := make(map[string]string, len(attrs))
		for k, v := range attrs {
			cp[k] = v
		}
		o.Attrs = cp
	}
}
