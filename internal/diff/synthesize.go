package diff

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/lang"
)

// Synthesize rebuilds unified-diff text for one file from the pieces a
// hosting API returns: per-file patch body plus change flags. The result
// parses through the same state machine as raw git output, so remote and
// local changes produce identical records.
func Synthesize(oldPath, newPath, patch string, isNew, isDeleted bool) string {
	oldPath = lang.Check(oldPath, newPath)
	newPath = lang.Check(newPath, oldPath)

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", oldPath, newPath)
	switch {
	case isNew:
		b.WriteString("new file mode 100644\n")
		b.WriteString("--- /dev/null\n")
		fmt.Fprintf(&b, "+++ b/%s\n", newPath)
	case isDeleted:
		b.WriteString("deleted file mode 100644\n")
		fmt.Fprintf(&b, "--- a/%s\n", oldPath)
		b.WriteString("+++ /dev/null\n")
	default:
		fmt.Fprintf(&b, "--- a/%s\n", oldPath)
		fmt.Fprintf(&b, "+++ b/%s\n", newPath)
	}
	if patch != "" {
		b.WriteString(patch)
		if !strings.HasSuffix(patch, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
