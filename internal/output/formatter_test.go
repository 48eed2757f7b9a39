package output

import (
	stdjson "encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/maxbolgarin/revu/internal/model"
)

func sampleResult() model.ReviewResult {
	issues := []model.ReviewIssue{
		{
			Severity:   model.SeverityCritical,
			Category:   model.CategoryBug,
			File:       "a.go",
			Line:       10,
			Message:    "nil dereference",
			Suggestion: "check before use",
		},
		{
			Severity:   model.SeverityInfo,
			Category:   model.CategoryStyle,
			File:       "b.go",
			Line:       0,
			Message:    "long function",
			Suggestion: "No suggestion",
		},
		{
			Severity:   model.SeverityWarning,
			Category:   model.CategoryBug,
			File:       "a.go",
			Line:       22,
			Message:    "ignored error",
			Suggestion: "handle it",
		},
	}
	return model.ReviewResult{
		Issues:        issues,
		Summary:       "Found 3 issue(s) in 2 file(s):",
		FilesReviewed: 2,
		TotalIssues:   3,
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	_, err := Render(sampleResult(), "yaml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("error %q is not ErrInvalidFormat", err)
	}
	if !strings.Contains(err.Error(), "yaml") {
		t.Errorf("error %q does not name the format", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"terminal", FormatTerminal, false},
		{"markdown", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"", FormatTerminal, false},
		{"yaml", "", true},
		{"JSON", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	rendered, err := Render(sampleResult(), FormatJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var parsed struct {
		Summary       string `json:"summary"`
		FilesReviewed int    `json:"files_reviewed"`
		TotalIssues   int    `json:"total_issues"`
		Issues        []struct {
			Severity   string `json:"severity"`
			Category   string `json:"category"`
			File       string `json:"file"`
			Line       int    `json:"line"`
			Message    string `json:"message"`
			Suggestion string `json:"suggestion"`
		} `json:"issues"`
	}
	if err := stdjson.Unmarshal([]byte(rendered), &parsed); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}

	if parsed.TotalIssues != len(parsed.Issues) {
		t.Errorf("total_issues = %d, array length = %d", parsed.TotalIssues, len(parsed.Issues))
	}
	if parsed.FilesReviewed != 2 {
		t.Errorf("files_reviewed = %d, want 2", parsed.FilesReviewed)
	}
	if parsed.Issues[0].Severity != "critical" || parsed.Issues[0].Line != 10 {
		t.Errorf("first issue = %+v", parsed.Issues[0])
	}
}

func TestRenderJSONEmptyIssues(t *testing.T) {
	result := model.ReviewResult{Summary: "clean", FilesReviewed: 1}
	rendered, err := Render(result, FormatJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// An empty issue list must serialize as [], not null.
	if !strings.Contains(rendered, `"issues": []`) {
		t.Errorf("rendered JSON:\n%s", rendered)
	}
}

func TestRenderTerminalGroupsByFile(t *testing.T) {
	rendered, err := Render(sampleResult(), FormatTerminal)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	first := strings.Index(rendered, "a.go")
	second := strings.Index(rendered, "b.go")
	if first == -1 || second == -1 || first > second {
		t.Errorf("file groups out of order:\n%s", rendered)
	}
	// Both a.go issues live in one group, so the path appears once.
	if strings.Count(rendered, "📄 a.go") != 1 {
		t.Errorf("a.go group repeated:\n%s", rendered)
	}
	if !strings.Contains(rendered, "CODE REVIEW RESULTS") {
		t.Errorf("missing banner:\n%s", rendered)
	}
}

func TestRenderMarkdownSections(t *testing.T) {
	rendered, err := Render(sampleResult(), FormatMarkdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"# Code Review Results",
		"## Summary",
		"## Issues Found",
		"### a.go",
		"### b.go",
		"*Issue*: nil dereference",
		"*Suggestion*: check before use",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("markdown missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderMarkdownNoIssues(t *testing.T) {
	result := model.ReviewResult{Summary: "✅ No issues found in 1 file(s). Great work!", FilesReviewed: 1}
	rendered, err := Render(result, FormatMarkdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(rendered, "## Issues Found") {
		t.Errorf("issues section rendered for clean result:\n%s", rendered)
	}
}
