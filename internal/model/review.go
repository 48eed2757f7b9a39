package model

// Severity defines issue severity levels reported by the model.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Category defines issue categories reported by the model.
type Category string

const (
	CategoryBug         Category = "bug"
	CategorySecurity    Category = "security"
	CategoryStyle       Category = "style"
	CategoryPerformance Category = "performance"
	CategoryGeneral     Category = "general"
)

// NormalizeSeverity maps an arbitrary severity string to a known value.
// Unrecognized values fall back to info; the second return reports whether
// the input was already valid so callers can log the normalization.
func NormalizeSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return Severity(s), true
	}
	return SeverityInfo, false
}

// NormalizeCategory maps an arbitrary category string to a known value,
// falling back to general.
func NormalizeCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryBug, CategorySecurity, CategoryStyle, CategoryPerformance, CategoryGeneral:
		return Category(s), true
	}
	return CategoryGeneral, false
}

// ReviewIssue represents one finding produced by the response parser.
type ReviewIssue struct {
	Severity Severity
	Category Category

	// File is always the path of the reviewed FileChange, never parsed
	// from the model output.
	File string

	// Line is the line number the issue refers to; 0 means the issue is
	// general and not tied to a specific line.
	Line int

	Message    string
	Suggestion string
}

// ReviewResult represents the aggregated output of a whole review run.
type ReviewResult struct {
	// Issues in file-processing order, then within-file emission order.
	Issues []ReviewIssue

	// Summary is precomputed from Issues and FilesReviewed.
	Summary string

	// FilesReviewed counts every context handed to the reviewer,
	// including skipped deletions.
	FilesReviewed int

	// TotalIssues always equals len(Issues).
	TotalIssues int
}
