package provider

import (
	"github.com/maxbolgarin/erro"

	"github.com/maxbolgarin/revu/internal/model/interfaces"
	"github.com/maxbolgarin/revu/internal/provider/github"
	"github.com/maxbolgarin/revu/internal/provider/gitlab"
)

// Source is a remote change source that can also read file contents at
// the reviewed revision.
type Source interface {
	interfaces.DiffSource
	interfaces.FileReader
}

// New creates a remote provider based on the configuration
func New(cfg Config) (Source, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	switch cfg.Type {
	case GitHub:
		return github.New(github.Config{
			BaseURL: cfg.BaseURL,
			Token:   cfg.Token,
			Project: cfg.Project,
			Number:  cfg.Number,
			Ref:     cfg.Ref,
		})
	case GitLab:
		return gitlab.New(gitlab.Config{
			BaseURL: cfg.BaseURL,
			Token:   cfg.Token,
			Project: cfg.Project,
			Number:  cfg.Number,
			Ref:     cfg.Ref,
		})
	default:
		return nil, erro.New("unsupported provider type: %s", cfg.Type)
	}
}
