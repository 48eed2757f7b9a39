package review

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/panjf2000/ants/v2"

	"github.com/maxbolgarin/revu/internal/model"
)

const (
	defaultMaxRetries = 2
	defaultRetryDelay = 5 * time.Second
)

// FileReviewer is the single capability the orchestrator needs from the
// model backend.
type FileReviewer interface {
	ReviewFile(ctx context.Context, codeCtx model.CodeContext) (string, error)
}

// Config tunes the orchestration, not the model.
type Config struct {
	// Workers above 1 reviews files in parallel; issue order is re-sorted
	// to input order afterwards, so output stays deterministic.
	Workers int `yaml:"workers" env:"REVIEW_WORKERS"`

	// FailFast aborts the whole run on the first file whose review call
	// fails. The default is to log the failure and keep going.
	FailFast bool `yaml:"fail_fast" env:"REVIEW_FAIL_FAST"`

	MaxRetries int           `yaml:"max_retries" env:"REVIEW_MAX_RETRIES"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"REVIEW_RETRY_DELAY"`
}

func (c *Config) PrepareAndValidate() error {
	c.Workers = lang.Check(c.Workers, 1)
	c.MaxRetries = lang.Check(c.MaxRetries, defaultMaxRetries)
	c.RetryDelay = lang.Check(c.RetryDelay, defaultRetryDelay)
	return nil
}

// Reviewer drives the pipeline for a set of prepared contexts: prompt,
// model call, response parsing, aggregation.
type Reviewer struct {
	cfg   Config
	agent FileReviewer
	log   logze.Logger
}

func New(cfg Config, agent FileReviewer) (*Reviewer, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	return &Reviewer{
		cfg:   cfg,
		agent: agent,
		log:   logze.With("component", "reviewer"),
	}, nil
}

// Review processes contexts strictly in input order (or in parallel with
// the same final order) and returns the aggregated result. Deleted files
// are counted but never sent to the model. A failed review of one file
// does not fail the run unless FailFast is set.
func (r *Reviewer) Review(ctx context.Context, contexts []model.CodeContext) (model.ReviewResult, error) {
	timer := abstract.StartTimer()

	var issues []model.ReviewIssue
	var err error
	if r.cfg.Workers > 1 && len(contexts) > 1 {
		issues, err = r.reviewParallel(ctx, contexts)
	} else {
		issues, err = r.reviewSequential(ctx, contexts)
	}
	if err != nil {
		return model.ReviewResult{}, err
	}

	result := model.ReviewResult{
		Issues:        issues,
		Summary:       buildSummary(issues, len(contexts)),
		FilesReviewed: len(contexts),
		TotalIssues:   len(issues),
	}

	r.log.Info("review finished",
		"files", result.FilesReviewed,
		"issues", result.TotalIssues,
		"elapsed", timer.ElapsedTime().String())

	return result, nil
}

func (r *Reviewer) reviewSequential(ctx context.Context, contexts []model.CodeContext) ([]model.ReviewIssue, error) {
	var issues []model.ReviewIssue
	for _, codeCtx := range contexts {
		found, err := r.reviewOne(ctx, codeCtx)
		if err != nil {
			// A canceled run aborts outright so a partial result is never
			// rendered as a clean review.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if r.cfg.FailFast {
				return nil, errm.Wrap(err, "failed to review "+codeCtx.Path)
			}
			r.log.Err(err, "file review failed, skipping", "file", codeCtx.Path)
			continue
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// reviewParallel fans contexts out to a worker pool. Results are collected
// per input index and flattened back in input order, so parallelism never
// changes what the user sees.
func (r *Reviewer) reviewParallel(ctx context.Context, contexts []model.CodeContext) ([]model.ReviewIssue, error) {
	pool, err := ants.NewPool(r.cfg.Workers)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create worker pool")
	}
	defer pool.Release()

	type fileResult struct {
		issues []model.ReviewIssue
		err    error
	}
	results := abstract.NewSafeMap[int, fileResult]()

	var wg sync.WaitGroup
	for i, codeCtx := range contexts {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			found, ferr := r.reviewOne(ctx, codeCtx)
			results.Set(i, fileResult{issues: found, err: ferr})
		}); err != nil {
			wg.Done()
			results.Set(i, fileResult{err: errm.Wrap(err, "submit to pool")})
		}
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var issues []model.ReviewIssue
	for i, codeCtx := range contexts {
		res, _ := results.Lookup(i)
		if res.err != nil {
			if r.cfg.FailFast {
				return nil, errm.Wrap(res.err, "failed to review "+codeCtx.Path)
			}
			r.log.Err(res.err, "file review failed, skipping", "file", codeCtx.Path)
			continue
		}
		issues = append(issues, res.issues...)
	}
	return issues, nil
}

// reviewOne sends a single context to the model and parses the reply.
// Rate-limit responses are retried a bounded number of times.
func (r *Reviewer) reviewOne(ctx context.Context, codeCtx model.CodeContext) ([]model.ReviewIssue, error) {
	if codeCtx.Type == model.ChangeTypeDeleted {
		r.log.Debug("skipping deleted file", "file", codeCtx.Path)
		return nil, nil
	}

	var response string
	var err error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.cfg.RetryDelay):
			}
		}
		response, err = r.agent.ReviewFile(ctx, codeCtx)
		if err == nil || !isRateLimit(err) {
			break
		}
		r.log.Warn("rate limited, retrying", "file", codeCtx.Path, "attempt", attempt+1)
	}
	if err != nil {
		return nil, err
	}

	issues := ParseResponse(response, codeCtx.Path)
	r.log.Debug("file reviewed", "file", codeCtx.Path, "issues", len(issues))
	return issues, nil
}

func isRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit")
}
