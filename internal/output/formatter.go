package output

import (
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"

	"github.com/maxbolgarin/revu/internal/model"
)

// Format names a rendering of a ReviewResult.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidFormat reports a format name outside the supported set.
var ErrInvalidFormat = errors.New("invalid output format")

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTerminal, FormatMarkdown, FormatJSON:
		return Format(s), nil
	case "":
		return FormatTerminal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// Render produces the requested representation of a result. Unknown
// formats fail with an error naming the requested string.
func Render(result model.ReviewResult, format Format) (string, error) {
	switch format {
	case FormatTerminal:
		return renderTerminal(result), nil
	case FormatMarkdown:
		return renderMarkdown(result), nil
	case FormatJSON:
		return renderJSON(result)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

func renderTerminal(result model.ReviewResult) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("CODE REVIEW RESULTS\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(result.Summary + "\n")

	if len(result.Issues) == 0 {
		return b.String()
	}
	b.WriteString("\n")

	for _, group := range groupByFile(result.Issues) {
		b.WriteString(fmt.Sprintf("📄 %s\n", group.file))
		for _, issue := range group.issues {
			b.WriteString(fmt.Sprintf("  [%s/%s] line %d\n", issue.Severity, issue.Category, issue.Line))
			b.WriteString(fmt.Sprintf("    %s\n", issue.Message))
			b.WriteString(fmt.Sprintf("    💡 %s\n", issue.Suggestion))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderMarkdown(result model.ReviewResult) string {
	var b strings.Builder

	b.WriteString("# Code Review Results\n\n")
	b.WriteString("## Summary\n\n")
	b.WriteString(result.Summary + "\n")

	if len(result.Issues) == 0 {
		return b.String()
	}

	b.WriteString("\n## Issues Found\n")
	for _, group := range groupByFile(result.Issues) {
		b.WriteString(fmt.Sprintf("\n### %s\n", group.file))
		for _, issue := range group.issues {
			b.WriteString(fmt.Sprintf("\n#### **%s** (%s) at line %d\n\n", issue.Severity, issue.Category, issue.Line))
			b.WriteString(fmt.Sprintf("*Issue*: %s\n\n", issue.Message))
			b.WriteString(fmt.Sprintf("*Suggestion*: %s\n", issue.Suggestion))
		}
	}

	return b.String()
}

type jsonIssue struct {
	Severity   string `json:"severity"`
	Category   string `json:"category"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

type jsonResult struct {
	Summary       string      `json:"summary"`
	FilesReviewed int         `json:"files_reviewed"`
	TotalIssues   int         `json:"total_issues"`
	Issues        []jsonIssue `json:"issues"`
}

func renderJSON(result model.ReviewResult) (string, error) {
	out := jsonResult{
		Summary:       result.Summary,
		FilesReviewed: result.FilesReviewed,
		TotalIssues:   result.TotalIssues,
		Issues:        make([]jsonIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		out.Issues = append(out.Issues, jsonIssue{
			Severity:   string(issue.Severity),
			Category:   string(issue.Category),
			File:       issue.File,
			Line:       issue.Line,
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", errm.Wrap(err, "failed to marshal result")
	}
	return string(data), nil
}

type fileGroup struct {
	file   string
	issues []model.ReviewIssue
}

// groupByFile buckets issues by file in first-occurrence order, which for
// a deterministic issue list is the review input order.
func groupByFile(issues []model.ReviewIssue) []fileGroup {
	index := make(map[string]int)
	var groups []fileGroup
	for _, issue := range issues {
		i, ok := index[issue.File]
		if !ok {
			index[issue.File] = len(groups)
			groups = append(groups, fileGroup{file: issue.File})
			i = len(groups) - 1
		}
		groups[i].issues = append(groups[i].issues, issue)
	}
	return groups
}
