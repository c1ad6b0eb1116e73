// Package htmx renders templ components for full-page and HTMX requests.
package htmx

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// RequestHeader marks requests issued by HTMX.
	RequestHeader = "HX-Request"
	// RedirectHeader asks HTMX to perform a full client-side redirect.
	RedirectHeader = "HX-Redirect"
	// PushURLHeader replaces the browser URL after a partial swap.
	PushURLHeader = "HX-Push-Url"
)

// IsRequest reports whether the request was initiated by HTMX.
func IsRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// RenderPage renders full for normal requests. For HTMX requests it renders
// fragment, or the inner <main> content of full when fragment is nil.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component) error {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !IsRequest(r) {
		if full == nil {
			full = fragment
		}
		if full == nil {
			return nil
		}
		return full.Render(ctx, w)
	}

	if fragment != nil {
		return fragment.Render(ctx, w)
	}
	if full == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := full.Render(ctx, &buf); err != nil {
		return err
	}
	body := buf.Bytes()
	if inner, ok := extractMainContent(body); ok {
		body = inner
	}
	_, err := w.Write(body)
	return err
}

// Redirect sends the client to target after a successful mutation. HTMX
// requests get HX-Redirect; others get 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsRequest(r) {
		w.Header().Set(RedirectHeader, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.IndexByte(body[start:], '>')
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.LastIndex(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
