package model

// ChangeType represents the type of change in a file, derived from the
// diff header markers and never supplied by the user.
type ChangeType string

const (
	ChangeTypeAdded    ChangeType = "added"
	ChangeTypeModified ChangeType = "modified"
	ChangeTypeDeleted  ChangeType = "deleted"
)

// FileChange represents one file's change in a single unified diff.
// It is immutable after construction by the diff parser.
type FileChange struct {
	// Path is the repository-relative path of the file.
	Path string

	// Type is derived from "new file mode" / "deleted file mode" markers.
	Type ChangeType

	// Additions holds added-line text in diff order, prefixes stripped.
	Additions []string

	// Deletions holds removed-line text in diff order, prefixes stripped.
	Deletions []string

	// LineNumbers holds the post-image starting line of each hunk, in order.
	LineNumbers []int

	// Diff is the full reconstructed diff text for this file, passed to the
	// model verbatim.
	Diff string
}

// CodeContext is the per-file review input assembled by the context builder.
// One context wraps exactly one FileChange.
type CodeContext struct {
	FileChange

	// RelatedCode maps an import name to a bounded snippet of the file it
	// resolved to, at most 5 entries.
	RelatedCode map[string]string

	// Imports are raw import strings in first-seen order.
	Imports []string

	// ModifiedFunctions and ModifiedClasses are deduplicated symbol names
	// extracted from added lines only.
	ModifiedFunctions []string
	ModifiedClasses   []string
}
