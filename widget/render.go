package widget

import (
	"fmt"
	"html"
	"html/template"
	"sort"
	"strconv"
	"strings"
)

// renderSpec carries per-render state on top of the widget Options.
type renderSpec struct {
	name       string
	selected   []string // values matched against static choices
	chosen     []Choice // pre-resolved options for remote widgets
	multiple   bool
	tags       bool
	remoteURL  string
	remoteOnly bool
	fieldKey   string
	dependent  []string
}

const widgetClass = "heavyselect"

func renderSelect(opts Options, spec renderSpec) template.HTML {
	attrs := buildAttrs(opts, spec)

	var b strings.Builder
	b.WriteString("<select")
	writeAttr(&b, "name", spec.name)
	for _, a := range attrs {
		if a.value == "" && boolAttrs[a.name] {
			b.WriteByte(' ')
			b.WriteString(a.name)
			continue
		}
		writeAttr(&b, a.name, a.value)
	}
	b.WriteByte('>')

	// allow-clear needs a target option to clear into; multi selects and
	// required singles must not offer one
	if !spec.multiple && !opts.Required {
		b.WriteString(`<option value="">`)
		b.WriteString(html.EscapeString(opts.EmptyLabel))
		b.WriteString(`</option>`)
	}

	if spec.remoteOnly {
		for _, c := range spec.chosen {
			writeOption(&b, c.Value, c.Label, true)
		}
	} else {
		sel := make(map[string]bool, len(spec.selected))
		for _, v := range spec.selected {
			sel[v] = true
		}
		for _, c := range opts.Choices {
			writeOption(&b, c.Value, c.Label, sel[c.Value])
		}
	}

	b.WriteString("</select>")
	return template.HTML(b.String())
}

type attr struct {
	name  string
	value string
}

var boolAttrs = map[string]bool{"multiple": true, "required": true, "disabled": true}

func buildAttrs(opts Options, spec renderSpec) []attr {
	m := map[string]string{
		"class": widgetClass,
		"lang":  opts.Lang,
		"data-minimum-input-length": strconv.Itoa(opts.MinimumInputLength),
	}

	if spec.multiple {
		m["multiple"] = ""
		// multi selects carry the placeholder even when empty; the clear
		// button applies to single selects only
		m["data-placeholder"] = opts.Placeholder
	} else {
		if opts.Placeholder != "" {
			m["data-placeholder"] = opts.Placeholder
		}
		m["data-allow-clear"] = strconv.FormatBool(!opts.Required)
	}

	if opts.Required {
		m["required"] = ""
	}
	if opts.Theme != "" {
		m["data-theme"] = opts.Theme
	}
	if len(spec.dependent) > 0 {
		m["data-select2-dependent-fields"] = strings.Join(spec.dependent, " ")
	}
	if spec.tags {
		m["data-tags"] = "true"
		m["data-token-separators"] = ","
	}
	if spec.remoteURL != "" {
		m["data-ajax--url"] = spec.remoteURL
		m["data-ajax--cache"] = "true"
		m["data-ajax--type"] = "GET"
	}
	if spec.fieldKey != "" {
		m["data-field_id"] = spec.fieldKey
	}

	// user attrs last; class appends rather than replaces
	for k, v := range opts.Attrs {
		if k == "class" {
			m["class"] = widgetClass + " " + v
			continue
		}
		m[k] = v
	}

	out := make([]attr, 0, len(m))
	for k, v := range m {
		out = append(out, attr{name: k, value: v})
	}
	// deterministic output keeps rendered forms diffable and testable
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func writeAttr(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, ` %s="%s"`, name, html.EscapeString(value))
}

func writeOption(b *strings.Builder, value, label string, selected bool) {
	b.WriteString(`<option value="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
	if selected {
		b.WriteString(" selected")
	}
	b.WriteByte('>')
	b.WriteString(html.EscapeString(label))
	b.WriteString("</option>")
}
