package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/obsnight/transitplan/core/metrics"
	"github.com/obsnight/transitplan/infra/mqtt"
)

// Config is the full service configuration.
type Config struct {
	Planner PlannerConfig  `json:"planner"`
	Output  OutputConfig   `json:"output"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
}

// Load reads a YAML or JSON config file, applies TP_ environment
// overrides, fills defaults and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = koanfyaml.Parser()
	case ".json":
		parser = koanfjson.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. TP_planner__setup_time=true.
	if err := k.Load(env.Provider("TP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "tp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Decode reads a config document from r in the given format ("yaml" or
// "json"), then applies the same defaulting and validation as Load.
func Decode(r io.Reader, format string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return nil, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func finalize(cfg *Config) error {
	cfg.Planner.SetDefaults()
	cfg.Output.SetDefaults()
	cfg.MQTT.SetDefaults()
	if _, err := cfg.Planner.FilterConfig(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	if err := cfg.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}
