package quillhtml

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("unexpected Accept header %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ops":[{"insert":"remote","attributes":{"italic":true}}]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("HTTPRender: %v", err)
	}
	if got := out.String(); got != "<p><em>remote</em></p>" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestHTTPRenderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{URL: srv.URL, Writer: &out})
	if err == nil || !strings.Contains(err.Error(), "410") {
		t.Fatalf("expected status error, got %v", err)
	}
	if err := HTTPRender(context.Background(), HTTPRenderRequest{Writer: &out}); err == nil {
		t.Fatalf("expected error for missing URL")
	}
	if err := HTTPRender(context.Background(), HTTPRenderRequest{URL: srv.URL}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	err = HTTPRender(context.Background(), HTTPRenderRequest{URL: "ftp://example.com/delta.json", Writer: &out})
	if err == nil || !strings.Contains(err.Error(), "unsupported scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}
