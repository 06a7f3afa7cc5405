package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/crm-console/internal/platform/icons"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// ComposePageTitle appends the application name to title.
func ComposePageTitle(title string, loc Localizer) string {
	appName := T(loc, "core.app_name")
	title = strings.TrimSpace(title)
	if title == "" {
		return appName
	}
	if strings.HasSuffix(title, "| "+appName) {
		return title
	}
	return title + " | " + appName
}

// Layout renders the full HTML document around body.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		h.raw(`<!doctype html><html`)
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(ComposePageTitle(title, page.Loc))
		h.raw(`</title>`)
		h.raw(`<link rel="stylesheet" href="/static/console.css">`)
		h.raw(`<script`)
		h.attr("src", htmxScriptURL)
		h.raw(`></script><script src="/static/console.js" defer></script></head>`)
		h.raw(`<body>`)
		h.raw(icons.LucideSprite())
		h.raw(`<header class="navbar"><a class="brand" href="/users">`)
		h.render(Icon(icons.Users))
		h.text(T(page.Loc, "core.app_name"))
		h.raw(`</a>`)
		if len(page.Languages) > 0 {
			h.raw(`<nav class="languages"`)
			h.attr("aria-label", T(page.Loc, "core.language"))
			h.raw(`>`)
			for _, option := range page.Languages {
				h.raw(`<a`)
				h.attr("href", option.URL)
				h.attr("hreflang", option.Tag)
				if option.Active {
					h.attr("aria-current", "true")
				}
				h.raw(`>`)
				h.text(option.Label)
				h.raw(`</a>`)
			}
			h.raw(`</nav>`)
		}
		h.raw(`</header><main id="main">`)
		h.render(body)
		h.raw(`</main></body></html>`)
		return h.err
	})
}
