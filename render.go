package quillhtml

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// renderState is the per-call scratch space of a render.
type renderState struct {
	items []item
	out   bytes.Buffer
}

func (s *renderState) reset() {
	clear(s.items)
	s.items = s.items[:0]
	s.out.Reset()
}

var statePool = sync.Pool{
	New: func() any {
		return &renderState{}
	},
}

// Renderer converts deltas to HTML with a fixed configuration.
// A Renderer is safe for concurrent use; every call works on its own state.
type Renderer struct {
	cfg renderConfig
}

// NewRenderer creates a renderer. Options are merged over DefaultOptions.
func NewRenderer(opts ...RenderOption) *Renderer {
	return &Renderer{cfg: newRenderConfig(opts)}
}

// Options returns a copy of the renderer's tag vocabulary.
func (r *Renderer) Options() Options {
	out := r.cfg.options
	out.Attributes = make(map[string]TagDef, len(r.cfg.options.Attributes))
	for name, def := range r.cfg.options.Attributes {
		out.Attributes[name] = def.clone()
	}
	return out
}

// Render returns the HTML for d. A delta without ops renders to "".
func (r *Renderer) Render(d Delta) string {
	s := statePool.Get().(*renderState)
	s.reset()
	s.items = transform(s.items, d, &r.cfg)
	emit(&s.out, s.items)
	html := s.out.String()
	s.reset()
	statePool.Put(s)
	if r.cfg.sanitizer != nil && html != "" {
		html = r.cfg.sanitizer.Sanitize(html)
	}
	return html
}

// RenderJSON decodes and renders delta JSON. Input that fails validation or
// decoding renders to "".
func (r *Renderer) RenderJSON(data []byte) string {
	d, err := r.decode(data)
	if err != nil {
		r.cfg.log.Debug("delta rejected", zap.Error(err))
		return ""
	}
	return r.Render(d)
}

func (r *Renderer) decode(data []byte) (Delta, error) {
	if err := ValidateInput(data); err != nil {
		return Delta{}, &DecodeError{Op: "validate", Err: err}
	}
	return DecodeDelta(data)
}

// RenderString renders delta JSON with a one-off renderer.
func RenderString(data []byte, opts ...RenderOption) string {
	return NewRenderer(opts...).RenderJSON(data)
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []RenderOption
	// Strict returns decode errors instead of rendering nothing.
	Strict bool
}

// Render reads one delta document from the reader and writes its HTML.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	return NewRenderer(req.Options...).RenderTo(req.Writer, req.Reader, req.Strict)
}

// RenderTo reads one delta document from r and writes its HTML to w.
// Unless strict is set, undecodable input writes nothing and returns nil.
func (r *Renderer) RenderTo(w io.Writer, src io.Reader, strict bool) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	d, err := r.decode(data)
	if err != nil {
		if strict {
			return err
		}
		r.cfg.log.Debug("delta rejected", zap.Error(err))
		return nil
	}
	html := r.Render(d)
	if html == "" {
		return nil
	}
	if _, err := io.WriteString(w, html); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}
