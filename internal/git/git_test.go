package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleDiff = "diff --git a/x.py b/x.py\n--- a/x.py\n+++ b/x.py\n@@ -1,1 +1,2 @@\n-old\n+new\n+added\n"

type call struct {
	args []string
}

func newTestClient(cfg Config, run runner) *Client {
	c := New(cfg)
	c.run = run
	return c
}

func TestChangesDiffAgainstBase(t *testing.T) {
	var calls []call
	c := newTestClient(Config{Base: "main", Target: "feature"}, func(_ context.Context, _ string, args ...string) (string, error) {
		calls = append(calls, call{args: args})
		return sampleDiff, nil
	})

	changes, err := c.Changes(context.Background())
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if len(changes) != 1 || changes[0].Path != "x.py" {
		t.Errorf("changes = %+v", changes)
	}
	if len(calls) != 1 {
		t.Fatalf("git called %d times, want 1", len(calls))
	}
	if !reflect.DeepEqual(calls[0].args, []string{"diff", "main", "feature"}) {
		t.Errorf("args = %v", calls[0].args)
	}
}

func TestChangesDefaultsToParentDiff(t *testing.T) {
	var calls []call
	c := newTestClient(Config{}, func(_ context.Context, _ string, args ...string) (string, error) {
		calls = append(calls, call{args: args})
		return sampleDiff, nil
	})

	if _, err := c.Changes(context.Background()); err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if !reflect.DeepEqual(calls[0].args, []string{"diff", "HEAD~1", "HEAD"}) {
		t.Errorf("args = %v", calls[0].args)
	}
}

func TestChangesFallsBackToShow(t *testing.T) {
	var calls []call
	c := newTestClient(Config{}, func(_ context.Context, _ string, args ...string) (string, error) {
		calls = append(calls, call{args: args})
		if args[0] == "diff" {
			return "", errors.New("unknown revision HEAD~1")
		}
		return sampleDiff, nil
	})

	changes, err := c.Changes(context.Background())
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if len(changes) != 1 {
		t.Errorf("changes = %+v", changes)
	}
	if len(calls) != 2 {
		t.Fatalf("git called %d times, want 2", len(calls))
	}
	if calls[1].args[0] != "show" {
		t.Errorf("fallback args = %v", calls[1].args)
	}
}

func TestChangesAggregatesBothErrors(t *testing.T) {
	c := newTestClient(Config{}, func(_ context.Context, _ string, args ...string) (string, error) {
		if args[0] == "diff" {
			return "", errors.New("diff broke")
		}
		return "", errors.New("show broke")
	})

	_, err := c.Changes(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"diff broke", "show broke"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(Config{RepoPath: dir})

	got, ok := c.ReadFile("a.txt")
	if !ok || got != "content" {
		t.Errorf("ReadFile = %q, %v", got, ok)
	}
	if _, ok := c.ReadFile("missing.txt"); ok {
		t.Error("expected miss for absent file")
	}
}
