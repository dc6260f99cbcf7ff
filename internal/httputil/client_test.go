package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetPage(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<a href="https://vimeo.com/12345">clip</a>`))
	}))
	defer srv.Close()

	body, err := GetPage(context.Background(), srv.Client(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("GetPage() error: %v", err)
	}
	if string(body) != `<a href="https://vimeo.com/12345">clip</a>` {
		t.Errorf("body = %q", body)
	}

	if _, err := GetPage(context.Background(), srv.Client(), srv.URL+"/missing"); err == nil {
		t.Error("GetPage() should fail on 404")
	}
}

func TestGetPageRejectsHTTP(t *testing.T) {
	if _, err := GetPage(context.Background(), NewClient(), "http://example.com/"); err == nil {
		t.Error("GetPage() should reject plain HTTP")
	}
}
