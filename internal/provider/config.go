package provider

import (
	"slices"

	"github.com/maxbolgarin/erro"
)

type ProviderType string

// SupportedProviderTypes defines the supported remote VCS provider types
const (
	GitLab ProviderType = "gitlab"
	GitHub ProviderType = "github"
)

var supportedProviderTypes = []ProviderType{GitLab, GitHub}

// Config represents remote VCS provider configuration. A provider serves
// the same role as the local git client: a source of file changes plus a
// reader for file contents at the reviewed revision.
type Config struct {
	Type    ProviderType `yaml:"type" env:"PROVIDER_TYPE"`
	BaseURL string       `yaml:"base_url" env:"PROVIDER_BASE_URL"`
	Token   string       `yaml:"token" env:"PROVIDER_TOKEN"`

	// Project identifies the repository: "owner/repo" for GitHub,
	// a project path or numeric ID for GitLab.
	Project string `yaml:"project" env:"PROVIDER_PROJECT"`

	// Number is the pull/merge request number to review.
	Number int `yaml:"number" env:"PROVIDER_NUMBER"`

	// Ref is the revision used when reading file contents; empty means
	// the provider's default branch resolution.
	Ref string `yaml:"ref" env:"PROVIDER_REF"`
}

func (c *Config) PrepareAndValidate() error {
	if c.Token == "" {
		return erro.New("token is required")
	}
	if c.Type == "" || !slices.Contains(supportedProviderTypes, c.Type) {
		return erro.New("invalid provider type: %s", c.Type)
	}
	if c.Project == "" {
		return erro.New("project is required")
	}
	if c.Number <= 0 {
		return erro.New("request number is required")
	}
	return nil
}
