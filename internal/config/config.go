// Package config loads service and renderer settings. Values are layered:
// built-in defaults, then an optional TOML file, then DOCRST_ environment
// variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dgallion1/docrst/internal/render"
)

// EnvPrefix is stripped from environment variable names before mapping.
const EnvPrefix = "DOCRST_"

type Config struct {
	Port string `koanf:"port"`

	// Auth
	APIKey string `koanf:"api_key"`

	// Worker pool
	WorkerCount  int `koanf:"worker_count"`
	MaxQueueSize int `koanf:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// Job state
	JobTTL time.Duration `koanf:"job_ttl"`

	// PDF
	PDFFallbackPdftotext bool `koanf:"pdf_fallback_pdftotext"`

	Render RenderConfig `koanf:"render"`
}

// RenderConfig mirrors render.Options in configuration form.
type RenderConfig struct {
	Newlines               string            `koanf:"newlines"`
	Indent                 int               `koanf:"indent"`
	SectionChars           string            `koanf:"section_chars"`
	PreserveCodeBlockFlags bool              `koanf:"preserve_code_block_flags"`
	MaxWidth               int               `koanf:"max_width"`
	Wrap                   bool              `koanf:"wrap"`
	Labels                 map[string]string `koanf:"labels"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"port":                   "8090",
		"api_key":                "",
		"worker_count":           4,
		"max_queue_size":         100,
		"max_upload_bytes":       int64(52428800), // 50MB
		"job_ttl":                "1h",
		"pdf_fallback_pdftotext": true,

		"render.newlines":                  render.NewlinesUnix,
		"render.indent":                    render.DefaultIndent,
		"render.section_chars":             render.DefaultSectionChars,
		"render.preserve_code_block_flags": false,
		"render.max_width":                 render.DefaultMaxWidth,
		"render.wrap":                      false,
	}
}

// envKeys maps environment names (without the prefix, lowercased) to
// config keys. Keys contain underscores, so the name cannot be split
// mechanically.
var envKeys = map[string]string{
	"port":                             "port",
	"api_key":                          "api_key",
	"worker_count":                     "worker_count",
	"max_queue_size":                   "max_queue_size",
	"max_upload_bytes":                 "max_upload_bytes",
	"job_ttl":                          "job_ttl",
	"pdf_fallback_pdftotext":           "pdf_fallback_pdftotext",
	"render_newlines":                  "render.newlines",
	"render_indent":                    "render.indent",
	"render_section_chars":             "render.section_chars",
	"render_preserve_code_block_flags": "render.preserve_code_block_flags",
	"render_max_width":                 "render.max_width",
	"render_wrap":                      "render.wrap",
}

const envLabelPrefix = "render_labels_"

// envKey translates DOCRST_* names; unknown names are dropped.
func envKey(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key, ok := envKeys[name]; ok {
		return key
	}
	if strings.HasPrefix(name, envLabelPrefix) && len(name) > len(envLabelPrefix) {
		return "render.labels." + strings.TrimPrefix(name, envLabelPrefix)
	}
	return ""
}

// Load reads configuration. path names an optional TOML file; an empty
// path skips the file layer, a missing file is an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return Config{}, fmt.Errorf("unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker_count must be positive, got %d", c.WorkerCount)
	}
	if c.MaxQueueSize <= 0 {
		return fmt.Errorf("max_queue_size must be positive, got %d", c.MaxQueueSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.JobTTL <= 0 {
		return fmt.Errorf("job_ttl must be positive, got %s", c.JobTTL)
	}
	return c.Render.Validate()
}

// Validate checks the renderer settings.
func (r RenderConfig) Validate() error {
	switch r.Newlines {
	case render.NewlinesUnix, render.NewlinesWindows, render.NewlinesNative:
	default:
		return fmt.Errorf("render.newlines must be unix, windows or native, got %q", r.Newlines)
	}
	if r.Indent <= 0 {
		return fmt.Errorf("render.indent must be positive, got %d", r.Indent)
	}
	if r.SectionChars == "" {
		return fmt.Errorf("render.section_chars must not be empty")
	}
	if r.MaxWidth <= 0 {
		return fmt.Errorf("render.max_width must be positive, got %d", r.MaxWidth)
	}
	return nil
}

// RenderOptions converts the render settings for render.New.
func (c Config) RenderOptions() render.Options {
	r := c.Render
	return render.Options{
		Newlines:               r.Newlines,
		Indent:                 r.Indent,
		SectionChars:           r.SectionChars,
		PreserveCodeBlockFlags: r.PreserveCodeBlockFlags,
		MaxWidth:               r.MaxWidth,
		WrapParagraphs:         r.Wrap,
		Labels:                 render.DefaultLabels().Merge(r.Labels),
	}
}
