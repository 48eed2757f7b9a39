package review

import (
	"strconv"
	"strings"

	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/revu/internal/model"
)

const (
	blockTerminator = "---"

	defaultMessage    = "No message"
	defaultSuggestion = "No suggestion"
)

// ParseResponse extracts issues from a model reply following the block
// protocol: key-value lines per issue, each block closed by a "---" line.
// The parser is total: malformed lines are ignored, missing fields take
// defaults, and a block never closed by a terminator is discarded. Text
// that contains no blocks parses to no issues, which is also how "nothing
// to report" replies look.
func ParseResponse(response, file string) []model.ReviewIssue {
	var issues []model.ReviewIssue
	current := newIssue(file)
	dirty := false

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		if line == blockTerminator {
			if dirty {
				issues = append(issues, current)
			}
			current = newIssue(file)
			dirty = false
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "SEVERITY":
			var known bool
			current.Severity, known = model.NormalizeSeverity(strings.ToLower(value))
			if !known {
				logze.Warn("unknown severity", "value", value, "file", file)
			}
		case "CATEGORY":
			var known bool
			current.Category, known = model.NormalizeCategory(strings.ToLower(value))
			if !known {
				logze.Warn("unknown category", "value", value, "file", file)
			}
		case "LINE":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				current.Line = n
			} else {
				current.Line = 0
			}
		case "MESSAGE":
			if value != "" {
				current.Message = value
			}
		case "SUGGESTION":
			if value != "" {
				current.Suggestion = value
			}
		default:
			continue
		}
		dirty = true
	}

	return issues
}

func newIssue(file string) model.ReviewIssue {
	return model.ReviewIssue{
		Severity:   model.SeverityInfo,
		Category:   model.CategoryGeneral,
		File:       file,
		Line:       0,
		Message:    defaultMessage,
		Suggestion: defaultSuggestion,
	}
}
