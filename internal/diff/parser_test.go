package diff

import (
	"reflect"
	"strings"
	"testing"

	"github.com/maxbolgarin/revu/internal/model"
)

const modifiedDiff = "diff --git a/x.py b/x.py\n--- a/x.py\n+++ b/x.py\n@@ -1,1 +1,2 @@\n-old\n+new\n+added\n"

func TestParseModifiedFile(t *testing.T) {
	changes := NewParser().Parse(modifiedDiff)

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	c := changes[0]
	if c.Path != "x.py" {
		t.Errorf("path = %q, want x.py", c.Path)
	}
	if c.Type != model.ChangeTypeModified {
		t.Errorf("type = %q, want modified", c.Type)
	}
	if !reflect.DeepEqual(c.Additions, []string{"new", "added"}) {
		t.Errorf("additions = %v", c.Additions)
	}
	if !reflect.DeepEqual(c.Deletions, []string{"old"}) {
		t.Errorf("deletions = %v", c.Deletions)
	}
	if !reflect.DeepEqual(c.LineNumbers, []int{1}) {
		t.Errorf("lineNumbers = %v", c.LineNumbers)
	}
}

func TestParseFileCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"no headers", "some random text\nwith lines\n", 0},
		{"one file", modifiedDiff, 1},
		{"two files", modifiedDiff + modifiedDiff, 2},
		{"three files", modifiedDiff + modifiedDiff + modifiedDiff, 3},
		{"header only", "diff --git a/a.go b/a.go\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewParser().Parse(tt.text)
			if len(got) != tt.want {
				t.Errorf("got %d changes, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseChangeTypes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.ChangeType
	}{
		{
			"added",
			"diff --git a/n.go b/n.go\nnew file mode 100644\n--- /dev/null\n+++ b/n.go\n@@ -0,0 +1,1 @@\n+package n\n",
			model.ChangeTypeAdded,
		},
		{
			"deleted",
			"diff --git a/d.go b/d.go\ndeleted file mode 100644\n--- a/d.go\n+++ /dev/null\n@@ -1,1 +0,0 @@\n-package d\n",
			model.ChangeTypeDeleted,
		},
		{
			"modified",
			modifiedDiff,
			model.ChangeTypeModified,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := NewParser().Parse(tt.text)
			if len(changes) != 1 {
				t.Fatalf("got %d changes, want 1", len(changes))
			}
			if changes[0].Type != tt.want {
				t.Errorf("type = %q, want %q", changes[0].Type, tt.want)
			}
		})
	}
}

func TestParseDeletedFileFallsBackToOldPath(t *testing.T) {
	// Deleted sections may omit a usable "+++ b/" line entirely; the
	// pre-image path is then the only name the file ever had.
	text := "diff --git a/gone.py b/gone.py\ndeleted file mode 100644\n--- a/gone.py\n+++ /dev/null\n@@ -1,2 +0,0 @@\n-a\n-b\n"
	changes := NewParser().Parse(text)

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].Path != "gone.py" {
		t.Errorf("path = %q, want gone.py", changes[0].Path)
	}
	if !reflect.DeepEqual(changes[0].Deletions, []string{"a", "b"}) {
		t.Errorf("deletions = %v", changes[0].Deletions)
	}
}

func TestParseRetainsAllLines(t *testing.T) {
	changes := NewParser().Parse(modifiedDiff)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}

	// The reconstructed per-file diff keeps every input line verbatim.
	want := strings.TrimSuffix(modifiedDiff, "\n")
	got := strings.TrimSuffix(changes[0].Diff, "\n")
	if got != want {
		t.Errorf("diff text =\n%q\nwant\n%q", got, want)
	}
}

func TestParseIgnoresPreambleBeforeFirstHeader(t *testing.T) {
	changes := NewParser().Parse("noise line\n+stray addition\n" + modifiedDiff)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if !reflect.DeepEqual(changes[0].Additions, []string{"new", "added"}) {
		t.Errorf("additions = %v", changes[0].Additions)
	}
}

func TestParseMultiHunkLineNumbers(t *testing.T) {
	text := "diff --git a/m.go b/m.go\n--- a/m.go\n+++ b/m.go\n@@ -1,2 +1,2 @@\n-x\n+y\n@@ -10,3 +12,4 @@\n+z\n"
	changes := NewParser().Parse(text)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if !reflect.DeepEqual(changes[0].LineNumbers, []int{1, 12}) {
		t.Errorf("lineNumbers = %v, want [1 12]", changes[0].LineNumbers)
	}
}

func TestSynthesizeRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		oldPath   string
		newPath   string
		patch     string
		isNew     bool
		isDeleted bool
		wantPath  string
		wantType  model.ChangeType
	}{
		{
			name:     "modified",
			oldPath:  "a.go",
			newPath:  "a.go",
			patch:    "@@ -1,1 +1,1 @@\n-x\n+y",
			wantPath: "a.go",
			wantType: model.ChangeTypeModified,
		},
		{
			name:     "added",
			newPath:  "b.go",
			patch:    "@@ -0,0 +1,1 @@\n+x",
			isNew:    true,
			wantPath: "b.go",
			wantType: model.ChangeTypeAdded,
		},
		{
			name:      "deleted",
			oldPath:   "c.go",
			patch:     "@@ -1,1 +0,0 @@\n-x",
			isDeleted: true,
			wantPath:  "c.go",
			wantType:  model.ChangeTypeDeleted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := Synthesize(tt.oldPath, tt.newPath, tt.patch, tt.isNew, tt.isDeleted)
			changes := NewParser().Parse(text)
			if len(changes) != 1 {
				t.Fatalf("got %d changes, want 1", len(changes))
			}
			if changes[0].Path != tt.wantPath {
				t.Errorf("path = %q, want %q", changes[0].Path, tt.wantPath)
			}
			if changes[0].Type != tt.wantType {
				t.Errorf("type = %q, want %q", changes[0].Type, tt.wantType)
			}
		})
	}
}
