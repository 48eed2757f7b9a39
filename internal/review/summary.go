package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maxbolgarin/revu/internal/model"
)

// buildSummary renders the human-readable run summary. It is a pure
// function of the issue list and file count, so the same review always
// produces the same text.
func buildSummary(issues []model.ReviewIssue, filesCount int) string {
	if len(issues) == 0 {
		return fmt.Sprintf("✅ No issues found in %d file(s). Great work!", filesCount)
	}

	var critical, warnings, info int
	for _, issue := range issues {
		switch issue.Severity {
		case model.SeverityCritical:
			critical++
		case model.SeverityWarning:
			warnings++
		case model.SeverityInfo:
			info++
		}
	}

	parts := []string{
		fmt.Sprintf("Found %d issue(s) in %d file(s):", len(issues), filesCount),
		fmt.Sprintf("  • %d critical", critical),
		fmt.Sprintf("  • %d warnings", warnings),
		fmt.Sprintf("  • %d info", info),
	}

	parts = append(parts, "\nBy category:")
	for _, c := range categoryCounts(issues) {
		parts = append(parts, fmt.Sprintf("  • %s: %d", c.category, c.count))
	}

	return strings.Join(parts, "\n")
}

type categoryCount struct {
	category model.Category
	count    int
}

// categoryCounts returns per-category totals sorted by descending count.
// Ties keep the order in which each category was first seen, so the
// breakdown is stable across runs.
func categoryCounts(issues []model.ReviewIssue) []categoryCount {
	index := make(map[model.Category]int)
	var counts []categoryCount
	for _, issue := range issues {
		i, ok := index[issue.Category]
		if !ok {
			index[issue.Category] = len(counts)
			counts = append(counts, categoryCount{category: issue.Category})
			i = len(counts) - 1
		}
		counts[i].count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts
}
