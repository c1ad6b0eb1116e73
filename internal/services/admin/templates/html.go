package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// attr is one HTML attribute. Bare attributes render without a value and
// skipped ones not at all.
type attr struct {
	name  string
	value string
	bare  bool
	skip  bool
}

func a(name, value string) attr { return attr{name: name, value: value} }

func flag(name string, on bool) attr { return attr{name: name, bare: true, skip: !on} }

func when(cond bool, at attr) attr {
	if !cond {
		at.skip = true
	}
	return at
}

// htmlWriter writes escaped markup and keeps the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) open(tag string, attrs ...attr) {
	h.raw("<" + tag)
	for _, at := range attrs {
		switch {
		case at.skip:
		case at.bare:
			h.raw(" " + at.name)
		default:
			h.raw(" " + at.name + `="` + templ.EscapeString(at.value) + `"`)
		}
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) elem(tag, body string, attrs ...attr) {
	h.open(tag, attrs...)
	h.text(body)
	h.close(tag)
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func (h *htmlWriter) options(opts []SelectOption) {
	for _, opt := range opts {
		h.elem("option", opt.Label, a("value", opt.Value), flag("selected", opt.Selected))
	}
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}
