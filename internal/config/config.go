package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"

	"github.com/maxbolgarin/revu/internal/agent"
	"github.com/maxbolgarin/revu/internal/chat"
	"github.com/maxbolgarin/revu/internal/git"
	"github.com/maxbolgarin/revu/internal/provider"
	"github.com/maxbolgarin/revu/internal/review"
)

// Config is the root configuration, assembled from an optional YAML file,
// environment variables, and command-line flags (applied in that order,
// later sources win).
type Config struct {
	Git      git.Config      `yaml:"git"`
	Provider provider.Config `yaml:"provider"`
	Agent    agent.Config    `yaml:"agent"`
	Review   review.Config   `yaml:"review"`
	Chat     chat.Config     `yaml:"chat"`

	// Format selects the rendering of results: terminal, markdown, json.
	Format string `yaml:"format" env:"REVU_FORMAT"`

	// OutputPath writes the rendered result to a file instead of stdout.
	OutputPath string `yaml:"output_path" env:"REVU_OUTPUT"`

	// WithContext enables repository context assembly for prompts.
	WithContext bool `yaml:"with_context" env:"REVU_WITH_CONTEXT"`

	// UseProvider switches the change source from local git to the
	// configured remote provider.
	UseProvider bool `yaml:"use_provider" env:"REVU_USE_PROVIDER"`

	Verbose bool `yaml:"verbose" env:"REVU_VERBOSE"`
}

// Load reads configuration from the given YAML file (if any) and the
// environment. Validation happens later in each component's
// PrepareAndValidate, once flags have been applied on top.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, errm.Wrap(err, "config file "+path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, errm.Wrap(err, "failed to read config file")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, errm.Wrap(err, "failed to read environment")
	}
	return cfg, nil
}
