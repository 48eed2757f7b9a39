package interfaces

import (
	"context"

	"github.com/maxbolgarin/revu/internal/model"
)

// DiffSource provides the raw file changes to review, either from a local
// git repository or from a hosted merge/pull request.
type DiffSource interface {
	Changes(ctx context.Context) ([]model.FileChange, error)
}

// FileReader resolves a repository-relative path to current file content.
// The second return reports whether the file exists and was readable.
type FileReader interface {
	ReadFile(path string) (string, bool)
}

// AgentAPI defines the interface for calling LLM AI models
type AgentAPI interface {
	CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error)
}
