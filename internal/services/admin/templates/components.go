package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/crm-console/internal/platform/icons"
)

// htmlWriter accumulates the first write error so components read linearly.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
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

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) boolAttr(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Loading renders a ring spinner with a screen-reader message.
func Loading(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="loading-wrapper" role="status">`)
		h.raw(`<span class="loading loading-ring loading-md"></span>`)
		if strings.TrimSpace(message) != "" {
			h.raw(`<span class="sr-only">`)
			h.text(message)
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// LazyLoad renders a placeholder that swaps itself for the content at url
// once the page loads.
func LazyLoad(contentURL, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div`)
		h.attr("hx-get", contentURL)
		h.attr("hx-trigger", "load")
		h.attr("hx-swap", "outerHTML")
		h.raw(`>`)
		h.render(Loading(message))
		h.raw(`</div>`)
		return h.err
	})
}

// Icon renders a sprite reference for id. The layout carries the sprite.
func Icon(id icons.ID) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<svg class="icon" aria-hidden="true" width="16" height="16"><use`)
		h.attr("href", "#"+icons.LucideSymbolID(icons.LucideNameOrDefault(id)))
		h.raw(`></use></svg>`)
		return h.err
	})
}
