package github

import (
	"context"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"

	"github.com/maxbolgarin/revu/internal/diff"
	"github.com/maxbolgarin/revu/internal/model"
	"github.com/maxbolgarin/revu/internal/model/interfaces"
)

var (
	_ interfaces.DiffSource = (*Provider)(nil)
	_ interfaces.FileReader = (*Provider)(nil)
)

// Config identifies one pull request to review.
type Config struct {
	BaseURL string
	Token   string
	Project string // "owner/repo"
	Number  int
	Ref     string
}

// Provider reads pull request changes through the GitHub API and exposes
// them as the same change records the local git client produces.
type Provider struct {
	client *github.Client
	cfg    Config
	owner  string
	repo   string
	parser *diff.Parser
	logger logze.Logger
}

// New creates a new GitHub provider
func New(cfg Config) (*Provider, error) {
	if cfg.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	owner, repo, ok := strings.Cut(cfg.Project, "/")
	if !ok || owner == "" || repo == "" {
		return nil, errm.New("invalid GitHub project format, expected 'owner/repo'")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// Set base URL if provided (for GitHub Enterprise)
	if cfg.BaseURL != "" {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		client: client,
		cfg:    cfg,
		owner:  owner,
		repo:   repo,
		parser: diff.NewParser(),
		logger: logze.With("provider", "github"),
	}, nil
}

// Changes retrieves the file changes of the configured pull request.
// Per-file patches from the API are rebuilt into unified-diff text and run
// through the shared diff parser, so line numbers and counters match the
// local pipeline exactly.
func (p *Provider) Changes(ctx context.Context) ([]model.FileChange, error) {
	opts := &github.ListOptions{PerPage: 100}
	var allFiles []*github.CommitFile

	for {
		files, resp, err := p.client.PullRequests.ListFiles(ctx, p.owner, p.repo, p.cfg.Number, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to list pull request files")
		}

		allFiles = append(allFiles, files...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	var text strings.Builder
	for _, file := range allFiles {
		// Binary files come without a patch; nothing to review there.
		if file.GetPatch() == "" && file.GetStatus() != "removed" {
			p.logger.Debug("skipping file without patch", "file", file.GetFilename())
			continue
		}
		text.WriteString(diff.Synthesize(
			file.GetPreviousFilename(),
			file.GetFilename(),
			file.GetPatch(),
			file.GetStatus() == "added",
			file.GetStatus() == "removed",
		))
	}

	changes := p.parser.Parse(text.String())
	p.logger.Debug("fetched pull request changes", "number", p.cfg.Number, "files", len(changes))
	return changes, nil
}

// ReadFile fetches a file's content at the configured ref. Failures are
// reported as a plain miss: remote context is best-effort.
func (p *Provider) ReadFile(path string) (string, bool) {
	opts := &github.RepositoryContentGetOptions{}
	if p.cfg.Ref != "" {
		opts.Ref = p.cfg.Ref
	}

	content, _, _, err := p.client.Repositories.GetContents(context.Background(), p.owner, p.repo, path, opts)
	if err != nil || content == nil {
		return "", false
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", false
	}
	return decoded, true
}
