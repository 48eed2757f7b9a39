package diff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/maxbolgarin/revu/internal/model"
)

const (
	newFileMarker     = "new file mode"
	deletedFileMarker = "deleted file mode"
)

// Parser parses unified diff text into per-file change records.
// Parsing is total: any input, however malformed, yields a best-effort
// (possibly empty) result and never an error.
type Parser struct {
	hunkHeaderRegex *regexp.Regexp
	newPathRegex    *regexp.Regexp
	oldPathRegex    *regexp.Regexp
}

// NewParser creates a new diff parser.
func NewParser() *Parser {
	return &Parser{
		hunkHeaderRegex: regexp.MustCompile(`^@@ -\d+,?\d* \+(\d+),?\d* @@`),
		newPathRegex:    regexp.MustCompile(`^\+\+\+ b/(.*)$`),
		oldPathRegex:    regexp.MustCompile(`^--- a/(.*)$`),
	}
}

// fileAccumulator collects one file section while scanning the diff.
type fileAccumulator struct {
	path        string
	oldPath     string
	additions   []string
	deletions   []string
	lineNumbers []int
	diff        []string
	open        bool
}

// Parse scans diffText line by line and returns the ordered file changes.
// A diff with no "diff --git" headers yields an empty result.
func (p *Parser) Parse(diffText string) []model.FileChange {
	var changes []model.FileChange
	var cur fileAccumulator

	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "diff --git") {
			if change, ok := p.flush(&cur); ok {
				changes = append(changes, change)
			}
			cur = fileAccumulator{open: true}
		}

		switch {
		case strings.HasPrefix(line, "+++"):
			if m := p.newPathRegex.FindStringSubmatch(line); m != nil {
				cur.path = m[1]
			}
			cur.diff = append(cur.diff, line)

		case strings.HasPrefix(line, "@@"):
			if m := p.hunkHeaderRegex.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					cur.lineNumbers = append(cur.lineNumbers, n)
				}
			}
			cur.diff = append(cur.diff, line)

		case strings.HasPrefix(line, "+"):
			cur.additions = append(cur.additions, line[1:])
			cur.diff = append(cur.diff, line)

		case strings.HasPrefix(line, "---"):
			// Remember the pre-image path as a fallback for deleted files
			// that carry no "+++" line.
			if m := p.oldPathRegex.FindStringSubmatch(line); m != nil {
				cur.oldPath = m[1]
			}
			cur.diff = append(cur.diff, line)

		case strings.HasPrefix(line, "-"):
			cur.deletions = append(cur.deletions, line[1:])
			cur.diff = append(cur.diff, line)

		default:
			cur.diff = append(cur.diff, line)
		}
	}

	if change, ok := p.flush(&cur); ok {
		changes = append(changes, change)
	}

	return changes
}

// flush finalizes the currently open file section, if any.
func (p *Parser) flush(cur *fileAccumulator) (model.FileChange, bool) {
	if !cur.open {
		return model.FileChange{}, false
	}

	diffText := strings.Join(cur.diff, "\n")
	changeType := detectChangeType(diffText)

	path := cur.path
	if path == "" && changeType == model.ChangeTypeDeleted {
		// Deleted-file sections may omit the "+++" line entirely; the
		// pre-image path is the only name the file ever had.
		path = cur.oldPath
	}

	return model.FileChange{
		Path:        path,
		Type:        changeType,
		Additions:   cur.additions,
		Deletions:   cur.deletions,
		LineNumbers: cur.lineNumbers,
		Diff:        diffText,
	}, true
}

// detectChangeType classifies a file section by its header markers.
func detectChangeType(diffText string) model.ChangeType {
	switch {
	case strings.Contains(diffText, newFileMarker):
		return model.ChangeTypeAdded
	case strings.Contains(diffText, deletedFileMarker):
		return model.ChangeTypeDeleted
	default:
		return model.ChangeTypeModified
	}
}
