package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/maxbolgarin/revu/internal/model"
)

type fakeAgent struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]string
	errs      map[string]error
}

func (f *fakeAgent) ReviewFile(_ context.Context, codeCtx model.CodeContext) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, codeCtx.Path)
	f.mu.Unlock()

	if err, ok := f.errs[codeCtx.Path]; ok {
		return "", err
	}
	return f.responses[codeCtx.Path], nil
}

func contextsFor(paths ...string) []model.CodeContext {
	out := make([]model.CodeContext, 0, len(paths))
	for _, p := range paths {
		out = append(out, model.CodeContext{
			FileChange: model.FileChange{Path: p, Type: model.ChangeTypeModified},
		})
	}
	return out
}

func issueBlock(msg string) string {
	return fmt.Sprintf("SEVERITY: warning\nMESSAGE: %s\n---", msg)
}

func TestReviewEmpty(t *testing.T) {
	r, err := New(Config{}, &fakeAgent{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := r.Review(context.Background(), nil)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if result.FilesReviewed != 0 || result.TotalIssues != 0 {
		t.Errorf("result = %+v, want zero counts", result)
	}
	if result.Summary != "✅ No issues found in 0 file(s). Great work!" {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestReviewSkipsDeletedFiles(t *testing.T) {
	agent := &fakeAgent{responses: map[string]string{"kept.go": issueBlock("x")}}
	r, err := New(Config{}, agent)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	contexts := contextsFor("kept.go")
	contexts = append(contexts, model.CodeContext{
		FileChange: model.FileChange{Path: "gone.go", Type: model.ChangeTypeDeleted},
	})

	result, err := r.Review(context.Background(), contexts)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	// Deleted file counts toward the total but never reaches the model.
	if result.FilesReviewed != 2 {
		t.Errorf("filesReviewed = %d, want 2", result.FilesReviewed)
	}
	if len(agent.calls) != 1 || agent.calls[0] != "kept.go" {
		t.Errorf("agent calls = %v, want [kept.go]", agent.calls)
	}
	if result.TotalIssues != 1 {
		t.Errorf("totalIssues = %d, want 1", result.TotalIssues)
	}
}

func TestReviewContinuesOnFileFailure(t *testing.T) {
	agent := &fakeAgent{
		responses: map[string]string{
			"a.go": issueBlock("first"),
			"c.go": issueBlock("third"),
		},
		errs: map[string]error{"b.go": errors.New("model exploded")},
	}
	r, err := New(Config{}, agent)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := r.Review(context.Background(), contextsFor("a.go", "b.go", "c.go"))
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if result.TotalIssues != 2 {
		t.Fatalf("totalIssues = %d, want 2", result.TotalIssues)
	}
	if result.Issues[0].File != "a.go" || result.Issues[1].File != "c.go" {
		t.Errorf("issue files = %v", []string{result.Issues[0].File, result.Issues[1].File})
	}
	if result.FilesReviewed != 3 {
		t.Errorf("filesReviewed = %d, want 3", result.FilesReviewed)
	}
}

func TestReviewFailFast(t *testing.T) {
	agent := &fakeAgent{
		errs: map[string]error{"b.go": errors.New("model exploded")},
	}
	r, err := New(Config{FailFast: true}, agent)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = r.Review(context.Background(), contextsFor("a.go", "b.go", "c.go"))
	if err == nil {
		t.Fatal("expected error with FailFast")
	}
}

func TestReviewIssueOrderMatchesInput(t *testing.T) {
	agent := &fakeAgent{responses: map[string]string{}}
	paths := make([]string, 8)
	for i := range paths {
		paths[i] = fmt.Sprintf("file%d.go", i)
		agent.responses[paths[i]] = issueBlock(paths[i])
	}

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			r, err := New(Config{Workers: workers}, agent)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			result, err := r.Review(context.Background(), contextsFor(paths...))
			if err != nil {
				t.Fatalf("Review: %v", err)
			}
			if len(result.Issues) != len(paths) {
				t.Fatalf("got %d issues, want %d", len(result.Issues), len(paths))
			}
			for i, issue := range result.Issues {
				if issue.File != paths[i] {
					t.Errorf("issue %d from %q, want %q", i, issue.File, paths[i])
				}
			}
		})
	}
}

type ctxAwareAgent struct{}

func (ctxAwareAgent) ReviewFile(ctx context.Context, _ model.CodeContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return issueBlock("ok"), nil
}

func TestReviewAbortsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			r, err := New(Config{Workers: workers}, ctxAwareAgent{})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			result, err := r.Review(ctx, contextsFor("a.go", "b.go"))
			if err == nil {
				t.Fatalf("Review returned nil error on canceled context, result %+v", result)
			}
			if !errors.Is(err, context.Canceled) {
				t.Errorf("error = %v, want context.Canceled", err)
			}
		})
	}
}

type rateLimitedAgent struct {
	failures int
	calls    int
}

func (f *rateLimitedAgent) ReviewFile(context.Context, model.CodeContext) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("429 too many requests")
	}
	return issueBlock("after retry"), nil
}

func TestReviewRetriesRateLimit(t *testing.T) {
	agent := &rateLimitedAgent{failures: 1}
	r, err := New(Config{RetryDelay: time.Millisecond}, agent)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := r.Review(context.Background(), contextsFor("a.go"))
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if agent.calls != 2 {
		t.Errorf("calls = %d, want 2", agent.calls)
	}
	if result.TotalIssues != 1 {
		t.Errorf("totalIssues = %d, want 1", result.TotalIssues)
	}
}
