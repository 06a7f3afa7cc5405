// Package htmx renders templ components for full page loads and HTMX swaps
// from the same handler.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// ResponseHeaderKey is the HTMX request header used to detect partial updates.
	ResponseHeaderKey = "HX-Request"
	// RedirectHeaderKey asks HTMX to perform a client-side redirect.
	RedirectHeaderKey = "HX-Redirect"
)

// responseBuffer captures component rendering for HTMX responses.
type responseBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (w *responseBuffer) Header() http.Header {
	return w.header
}

func (w *responseBuffer) WriteHeader(status int) {
	if w.headerWrote {
		return
	}
	w.headerWrote = true
	w.statusCode = status
}

func (w *responseBuffer) Write(body []byte) (int, error) {
	return w.body.Write(body)
}

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(ResponseHeaderKey), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// Redirect sends the browser to target. HTMX requests get an HX-Redirect
// header since a 3xx would be followed inside the swap.
func Redirect(w http.ResponseWriter, r *http.Request, target string, status int) {
	if IsHTMXRequest(r) {
		w.Header().Set(RedirectHeaderKey, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, status)
}

// RenderPage renders a page for normal or HTMX requests.
//
// HTMX requests receive the contents of full's <main> element, or fragment
// when full is nil, prefixed with htmxTitle unless the body has a title.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component, htmxTitle string) {
	RenderPageWithStatus(w, r, http.StatusOK, fragment, full, htmxTitle)
}

// RenderPageWithStatus is RenderPage answering with status. A status written
// by the component itself takes precedence.
func RenderPageWithStatus(w http.ResponseWriter, r *http.Request, status int, fragment templ.Component, full templ.Component, htmxTitle string) {
	if status <= 0 {
		status = http.StatusOK
	}
	w.Header().Add("Vary", ResponseHeaderKey)
	if !IsHTMXRequest(r) {
		if full == nil {
			full = fragment
		}
		if full != nil {
			templ.Handler(full, templ.WithStatus(status)).ServeHTTP(w, r)
		}
		return
	}

	target := fragment
	fromFull := full != nil
	if fromFull {
		target = full
	}
	if target == nil {
		return
	}
	capture := newResponseBuffer()
	templ.Handler(target).ServeHTTP(capture, r)

	body := capture.body.Bytes()
	if fromFull {
		if mainContent, ok := extractMainContent(body); ok {
			body = mainContent
		}
	}
	body = withTitle(body, htmxTitle)

	copyHeaders(w.Header(), capture.Header())
	if capture.statusCode != http.StatusOK {
		status = capture.statusCode
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_, _ = w.Write(body)
}

func withTitle(body []byte, title string) []byte {
	if strings.TrimSpace(title) == "" {
		return body
	}
	if bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		return body
	}
	return append([]byte(title), body...)
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				dst.Add(key, value)
			}
			continue
		}
		// Single-valued headers should not accumulate duplicates when copied from
		// a temporary response buffer.
		for _, value := range values {
			dst.Set(key, value)
		}
	}
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.Index(body[start:], []byte(">"))
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.Index(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
