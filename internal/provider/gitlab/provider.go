package gitlab

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/maxbolgarin/revu/internal/diff"
	"github.com/maxbolgarin/revu/internal/model"
	"github.com/maxbolgarin/revu/internal/model/interfaces"
)

const (
	defaultBaseURL = "https://gitlab.com"
)

var (
	_ interfaces.DiffSource = (*Provider)(nil)
	_ interfaces.FileReader = (*Provider)(nil)
)

// Config identifies one merge request to review.
type Config struct {
	BaseURL string
	Token   string
	Project string // project path or numeric ID
	Number  int
	Ref     string
}

// Provider reads merge request changes through the GitLab API and exposes
// them as the same change records the local git client produces.
type Provider struct {
	client *gitlab.Client
	cfg    Config
	parser *diff.Parser
	logger logze.Logger
}

// New creates a new GitLab provider
func New(cfg Config) (*Provider, error) {
	if cfg.Token == "" {
		return nil, errm.New("GitLab token is required")
	}
	if cfg.Project == "" {
		return nil, errm.New("GitLab project is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client, err := gitlab.NewClient(cfg.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Provider{
		client: client,
		cfg:    cfg,
		parser: diff.NewParser(),
		logger: logze.With("provider", "gitlab"),
	}, nil
}

// Changes retrieves the file changes of the configured merge request.
func (p *Provider) Changes(ctx context.Context) ([]model.FileChange, error) {
	var allDiffs []*gitlab.MergeRequestDiff
	page := 1

	// Fetch all pages of diffs
	for {
		opts := &gitlab.ListMergeRequestDiffsOptions{
			ListOptions: gitlab.ListOptions{
				Page: page,
			},
		}

		diffs, resp, err := p.client.MergeRequests.ListMergeRequestDiffs(p.cfg.Project, p.cfg.Number, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list merge request diffs")
		}

		if resp.StatusCode != http.StatusOK {
			return nil, errm.Errorf("GitLab API returned status %d", resp.StatusCode)
		}

		allDiffs = append(allDiffs, diffs...)

		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	var text strings.Builder
	for _, d := range allDiffs {
		if d.Diff == "" && !d.DeletedFile {
			p.logger.Debug("skipping file without diff", "file", d.NewPath)
			continue
		}
		text.WriteString(diff.Synthesize(d.OldPath, d.NewPath, d.Diff, d.NewFile, d.DeletedFile))
	}

	changes := p.parser.Parse(text.String())
	p.logger.Debug("fetched merge request changes", "number", p.cfg.Number, "files", len(changes))
	return changes, nil
}

// ReadFile fetches a file's content at the configured ref. Failures are
// reported as a plain miss: remote context is best-effort.
func (p *Provider) ReadFile(path string) (string, bool) {
	// The repository files API requires an explicit ref.
	ref := p.cfg.Ref
	if ref == "" {
		ref = "HEAD"
	}
	fileOpts := &gitlab.GetFileOptions{Ref: &ref}

	file, resp, err := p.client.RepositoryFiles.GetFile(p.cfg.Project, path, fileOpts, gitlab.WithContext(context.Background()))
	if err != nil || resp.StatusCode != http.StatusOK || file == nil {
		return "", false
	}

	if file.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return "", false
		}
		return string(decoded), true
	}
	return file.Content, true
}
