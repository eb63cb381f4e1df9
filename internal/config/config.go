package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"pkt.systems/quillhtml"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	TagAttributeConfig struct {
		Name  string `yaml:"name" validate:"required,attrname"`
		Value string `yaml:"value,omitempty"`
	}

	TagConfig struct {
		Tag        string               `yaml:"tag" validate:"required,alphanum"`
		Value      string               `yaml:"value,omitempty" validate:"omitempty,attrname"`
		Attributes []TagAttributeConfig `yaml:"attributes,omitempty" validate:"dive"`
	}

	RenderConfig struct {
		Block        string               `yaml:"block" validate:"required,alphanum"`
		Newline      string               `yaml:"newline" validate:"required,alphanum"`
		DetectBlocks bool                 `yaml:"detect_blocks"`
		RawValues    bool                 `yaml:"raw_values"`
		Sanitize     string               `yaml:"sanitize" validate:"oneof=none ugc strict"`
		Strict       bool                 `yaml:"strict"`
		Attributes   map[string]TagConfig `yaml:"attributes" validate:"dive,keys,required,endkeys"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Render  RenderConfig  `yaml:"render"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

var (
	attrNameRe = regexp.MustCompile(`^[A-Za-z_:][-A-Za-z0-9_:.]*$`)
	validate   = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("attrname", attrNameValidator); err != nil {
		panic(err)
	}
	return v
}

// attrNameValidator accepts HTML attribute names.
func attrNameValidator(fl validator.FieldLevel) bool {
	return attrNameRe.MatchString(fl.Field().String())
}

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// Only fields we defined are accepted.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var all error
	for _, fe := range verrs {
		all = multierr.Append(all, fmt.Errorf("%s: failed %q constraint (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return all
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the embedded defaults and performs
// validation. An empty path returns the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfg, err = unmarshalConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration file.
func Prepare() []byte {
	return bytes.Clone(defaultConfig)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Sanitizer returns the bluemonday policy selected by the sanitize setting.
func (rc *RenderConfig) Sanitizer() *bluemonday.Policy {
	switch rc.Sanitize {
	case "ugc":
		return bluemonday.UGCPolicy()
	case "strict":
		return bluemonday.StrictPolicy()
	default:
		return nil
	}
}

// RenderOptions converts the render section to renderer options.
func (rc *RenderConfig) RenderOptions() []quillhtml.RenderOption {
	opts := []quillhtml.RenderOption{
		quillhtml.WithBlock(rc.Block),
		quillhtml.WithNewline(rc.Newline),
		quillhtml.WithBlockDetection(rc.DetectBlocks),
		quillhtml.WithRawValues(rc.RawValues),
	}
	names := make([]string, 0, len(rc.Attributes))
	for name := range rc.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		opts = append(opts, quillhtml.WithAttribute(name, rc.Attributes[name].TagDef()))
	}
	if p := rc.Sanitizer(); p != nil {
		opts = append(opts, quillhtml.WithSanitizer(p))
	}
	return opts
}

// TagDef converts a tag configuration to a renderer definition.
func (tc TagConfig) TagDef() quillhtml.TagDef {
	def := quillhtml.TagDef{Tag: tc.Tag, Value: tc.Value}
	for _, a := range tc.Attributes {
		def.Attributes = append(def.Attributes, quillhtml.TagAttribute{Name: a.Name, Value: a.Value})
	}
	return def
}
