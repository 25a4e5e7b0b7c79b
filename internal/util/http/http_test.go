package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, UserAgentName+"/") {
				http.Error(w, "bad user agent "+ua, http.StatusBadRequest)
				return
			}
			if r.Header.Get("X-Test") != "yes" {
				http.Error(w, "missing header", http.StatusBadRequest)
				return
			}
			w.Write([]byte("image-bytes"))
		case "/big":
			w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, srv.URL+"/ok", FetchOptions{Headers: map[string]string{"X-Test": "yes"}})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("Fetch() = %q, want %q", data, "image-bytes")
	}

	if _, err := Fetch(ctx, srv.URL+"/missing", FetchOptions{}); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Fetch(missing) error = %v, want HTTP 404", err)
	}

	if _, err := Fetch(ctx, srv.URL+"/big", FetchOptions{MaxBytes: 10}); err == nil {
		t.Error("Fetch() expected error when body exceeds MaxBytes")
	}
}
