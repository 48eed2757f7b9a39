package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/revu/internal/diff"
	"github.com/maxbolgarin/revu/internal/model"
	"github.com/maxbolgarin/revu/internal/model/interfaces"
)

const defaultTimeout = 30 * time.Second

var (
	_ interfaces.DiffSource = (*Client)(nil)
	_ interfaces.FileReader = (*Client)(nil)
)

// runner executes a git command and returns its stdout.
// It is a variable so tests can stub the subprocess boundary.
type runner func(ctx context.Context, dir string, args ...string) (string, error)

// Client extracts changes from a local git repository.
type Client struct {
	repoPath string
	timeout  time.Duration
	target   string
	base     string

	parser *diff.Parser
	run    runner
	log    logze.Logger
}

// Config configures the local git diff source.
type Config struct {
	RepoPath string        `yaml:"repo_path" env:"GIT_REPO_PATH"`
	Target   string        `yaml:"target" env:"GIT_TARGET"`
	Base     string        `yaml:"base" env:"GIT_BASE"`
	Timeout  time.Duration `yaml:"timeout" env:"GIT_TIMEOUT"`
}

// New creates a git client for the given repository path.
func New(cfg Config) *Client {
	return &Client{
		repoPath: lang.Check(cfg.RepoPath, "."),
		target:   lang.Check(cfg.Target, "HEAD"),
		base:     cfg.Base,
		timeout:  lang.Check(cfg.Timeout, defaultTimeout),
		parser:   diff.NewParser(),
		run:      runGit,
		log:      logze.With("component", "git"),
	}
}

// Changes extracts the changes between base and target (or target against
// its parent commit) and parses them into file change records.
func (c *Client) Changes(ctx context.Context) ([]model.FileChange, error) {
	args := []string{"diff", c.base, c.target}
	if c.base == "" {
		args = []string{"diff", c.target + "~1", c.target}
	}

	out, diffErr := c.runBounded(ctx, args...)
	if diffErr == nil {
		return c.parser.Parse(out), nil
	}

	// A fresh repository or a root commit has no parent to diff against;
	// showing the commit itself still produces a usable patch.
	out, showErr := c.runBounded(ctx, "show", c.target, "--format=", "--patch")
	if showErr == nil {
		return c.parser.Parse(out), nil
	}

	return nil, errm.Errorf("failed to get git diff: %s; %s", diffErr, showErr)
}

// ReadFile returns the current working-tree content of a repository file.
func (c *Client) ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(c.repoPath, path))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (c *Client) runBounded(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Debug("running git command", "args", strings.Join(args, " "))
	return c.run(ctx, c.repoPath, args...)
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", errm.Errorf("git %s: %s", args[0], msg)
		}
		return "", errm.Wrap(err, "git "+args[0])
	}

	return stdout.String(), nil
}
