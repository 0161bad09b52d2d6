package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "LABREFINE"

type Pipeline struct {
	Name     string `yaml:"name" mapstructure:"name"`
	Version  string `yaml:"version" mapstructure:"version"`
	LogLvl   string `yaml:"log_level" mapstructure:"log_level"`
	Workers  int    `yaml:"workers" mapstructure:"workers"`
	Progress bool   `yaml:"progress" mapstructure:"progress"`
}

type Refine struct {
	MaxGapSeconds float64 `yaml:"max_gap_seconds" mapstructure:"max_gap_seconds"`
	Pattern       string  `yaml:"pattern" mapstructure:"pattern"`
	PhonemeTable  string  `yaml:"phoneme_table" mapstructure:"phoneme_table"` // optional YAML table path
	WriteReport   bool    `yaml:"write_report" mapstructure:"write_report"`
}

type Root struct {
	Pipeline Pipeline `yaml:"pipeline" mapstructure:"pipeline"`
	Refine   Refine   `yaml:"refine" mapstructure:"refine"`
	Paths    struct {
		Outputs string `yaml:"outputs" mapstructure:"outputs"` // empty: <input>/refined_labels
	} `yaml:"paths" mapstructure:"paths"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "labrefine")
	v.SetDefault("pipeline.version", "dev")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.workers", 1)
	v.SetDefault("pipeline.progress", false)
	v.SetDefault("refine.max_gap_seconds", 0.1)
	v.SetDefault("refine.pattern", "*.lab")
	v.SetDefault("refine.phoneme_table", "")
	v.SetDefault("refine.write_report", false)
	v.SetDefault("paths.outputs", "")
}

// Flags maps viper keys to command-line flags; only flags the user actually
// set override file and env values.
type Flags map[string]*pflag.Flag

// Load layers defaults, a YAML file, LABREFINE_* env vars and flags. With an
// empty path the first existing guess under config/<CONFIG_ENV>/ is used; no
// file at all is fine.
func Load(path string, flags Flags) (*Root, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = guess()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	for key, f := range flags {
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func guess() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	for _, p := range []string{
		filepath.Join("config", env, "config.yaml"),
		"labrefine.yaml",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Root) Validate() error {
	var errs []error
	if c.Refine.MaxGapSeconds < 0 {
		errs = append(errs, fmt.Errorf("refine.max_gap_seconds must be >= 0, got %v", c.Refine.MaxGapSeconds))
	}
	if strings.TrimSpace(c.Refine.Pattern) == "" {
		errs = append(errs, errors.New("refine.pattern is empty"))
	} else if _, err := filepath.Match(c.Refine.Pattern, ""); err != nil {
		errs = append(errs, fmt.Errorf("refine.pattern %q: %w", c.Refine.Pattern, err))
	}
	if c.Pipeline.Workers < 1 {
		errs = append(errs, fmt.Errorf("pipeline.workers must be >= 1, got %d", c.Pipeline.Workers))
	}
	return errors.Join(errs...)
}
