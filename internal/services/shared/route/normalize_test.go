package route

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestRedirectTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantOK   bool
		wantCode int
		wantLoc  string
	}{
		{name: "no trailing slash", target: "/users", wantCode: http.StatusOK},
		{name: "trailing slash", target: "/users/", wantOK: true, wantCode: http.StatusMovedPermanently, wantLoc: "/users"},
		{name: "detail trailing slash", target: "/users/u-1/", wantOK: true, wantCode: http.StatusMovedPermanently, wantLoc: "/users/u-1"},
		{name: "keeps query", target: "/users/u-1/?lang=pt-BR", wantOK: true, wantCode: http.StatusMovedPermanently, wantLoc: "/users/u-1?lang=pt-BR"},
		{name: "root path", target: "/", wantCode: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rec := httptest.NewRecorder()

			got := RedirectTrailingSlash(rec, req)
			if got != tc.wantOK {
				t.Fatalf("RedirectTrailingSlash = %v, want %v", got, tc.wantOK)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if got {
				if loc := rec.Header().Get("Location"); loc != tc.wantLoc {
					t.Fatalf("location = %q, want %q", loc, tc.wantLoc)
				}
			}
		})
	}
}

func TestSplitPathParts(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"":            {},
		"u-1":         {"u-1"},
		"/u-1//edit/": {"u-1", "edit"},
		" / ":         {},
	}
	for in, want := range tests {
		if got := SplitPathParts(in); !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitPathParts(%q) = %#v, want %#v", in, got, want)
		}
	}
}
