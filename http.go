package quillhtml

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []RenderOption
	Strict  bool
}

// HTTPRender fetches delta JSON over HTTP(S) and writes its HTML.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return fmt.Errorf("render http: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("render http: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("render http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("render http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "application/json")
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("render http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("render http: status %s", resp.Status)
	}
	return Render(RenderRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Options: req.Options,
		Strict:  req.Strict,
	})
}
