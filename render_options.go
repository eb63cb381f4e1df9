package quillhtml

import (
	"slices"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// TagAttribute is a static attribute written into an opening tag.
type TagAttribute struct {
	Name  string
	Value string
}

// TagDef describes the element produced for a formatting attribute.
type TagDef struct {
	Tag        string
	Attributes []TagAttribute
	// Value names the tag attribute that receives the operation's attribute
	// value (href for links). Empty means the attribute is a plain toggle.
	Value string
}

// Options holds the tag vocabulary used by the renderer.
type Options struct {
	Attributes map[string]TagDef
	Block      string
	Newline    string
}

// DefaultOptions returns the default tag vocabulary.
func DefaultOptions() Options {
	return Options{
		Attributes: map[string]TagDef{
			"bold":      {Tag: "strong"},
			"italic":    {Tag: "em"},
			"underline": {Tag: "u"},
			"strike":    {Tag: "s"},
			"link":      {Tag: "a", Attributes: []TagAttribute{{Name: "href"}}, Value: "href"},
		},
		Block:   "p",
		Newline: "br",
	}
}

func (d TagDef) clone() TagDef {
	d.Attributes = slices.Clone(d.Attributes)
	return d
}

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	options      Options
	validator    AttributeValidator
	log          *zap.Logger
	detectBlocks bool
	rawValues    bool
	sanitizer    *bluemonday.Policy
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{options: DefaultOptions()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.validator == nil {
		cfg.validator = WhitelistValidator{Attributes: cfg.options.Attributes}
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}
	cfg.log = cfg.log.Named("quillhtml")
	return cfg
}

// WithOptions merges o over the current options. Empty Block and Newline
// keep the current values; attribute definitions replace those of the same name.
func WithOptions(o Options) RenderOption {
	return func(cfg *renderConfig) {
		if o.Block != "" {
			cfg.options.Block = o.Block
		}
		if o.Newline != "" {
			cfg.options.Newline = o.Newline
		}
		for name, def := range o.Attributes {
			cfg.options.Attributes[name] = def.clone()
		}
	}
}

// WithAttribute defines or overrides the tag for a formatting attribute.
func WithAttribute(name string, def TagDef) RenderOption {
	return func(cfg *renderConfig) {
		cfg.options.Attributes[name] = def.clone()
	}
}

// WithBlock sets the block container tag.
func WithBlock(tag string) RenderOption {
	return func(cfg *renderConfig) {
		if tag != "" {
			cfg.options.Block = tag
		}
	}
}

// WithNewline sets the inline line-break tag.
func WithNewline(tag string) RenderOption {
	return func(cfg *renderConfig) {
		if tag != "" {
			cfg.options.Newline = tag
		}
	}
}

// WithValidator replaces the attribute whitelist.
func WithValidator(v AttributeValidator) RenderOption {
	return func(cfg *renderConfig) {
		cfg.validator = v
	}
}

// WithLogger sets the logger used for debug output on dropped attributes
// and degraded input.
func WithLogger(log *zap.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.log = log
	}
}

// WithBlockDetection skips the default block wrap on the first and last
// items when they already open or close a block element.
func WithBlockDetection(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.detectBlocks = enabled
	}
}

// WithRawValues disables escaping of insert text and tag attribute values.
// Only use it with trusted deltas.
func WithRawValues(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.rawValues = enabled
	}
}

// WithSanitizer runs the rendered HTML through a bluemonday policy.
func WithSanitizer(p *bluemonday.Policy) RenderOption {
	return func(cfg *renderConfig) {
		cfg.sanitizer = p
	}
}

// ResolveOptions returns the options a set of RenderOptions resolves to.
func ResolveOptions(opts ...RenderOption) Options {
	return NewRenderer(opts...).Options()
}
