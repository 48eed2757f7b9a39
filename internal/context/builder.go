package context

import (
	"path"
	"strings"

	"github.com/maxbolgarin/logze/v2"

	"github.com/maxbolgarin/revu/internal/model"
	"github.com/maxbolgarin/revu/internal/model/interfaces"
)

const (
	maxRelatedImports = 5
	maxRelatedLines   = 100
)

// Builder enriches a parsed file change with surrounding information from
// the repository: declared imports, symbols touched by the change, and the
// leading lines of files the imports likely resolve to. Everything here is
// advisory input for the reviewing model, so resolution failures are
// skipped rather than reported.
type Builder struct {
	reader interfaces.FileReader
	log    logze.Logger
}

func NewBuilder(reader interfaces.FileReader) *Builder {
	return &Builder{
		reader: reader,
		log:    logze.With("component", "context"),
	}
}

// Build assembles the review context for a single change. Imports and
// modified symbols are always extracted; full additionally resolves
// related-code snippets for the leading imports. Deleted files get an
// empty context: there is nothing left in the tree to read.
func (b *Builder) Build(change model.FileChange, full bool) model.CodeContext {
	out := model.CodeContext{
		FileChange:  change,
		RelatedCode: make(map[string]string),
	}
	if change.Type == model.ChangeTypeDeleted {
		return out
	}

	content, ok := b.reader.ReadFile(change.Path)
	if ok {
		out.Imports = extractImports(content, change.Path)
	}

	out.ModifiedFunctions = extractSymbols(change.Diff, functionPatterns)
	out.ModifiedClasses = extractSymbols(change.Diff, classPatterns)

	if full {
		for _, imp := range firstN(out.Imports, maxRelatedImports) {
			b.resolveRelated(imp, change.Path, out.RelatedCode)
		}
	}

	b.log.DebugIf(len(out.RelatedCode) > 0, "built context",
		"file", change.Path, "imports", len(out.Imports), "related", len(out.RelatedCode))
	return out
}

// resolveRelated tries a fixed list of candidate paths for one import and
// records the first readable one under the import's name, truncated to its
// leading lines.
func (b *Builder) resolveRelated(imp, fromPath string, related map[string]string) {
	name := importBaseName(imp)
	if name == "" {
		return
	}
	dir := path.Dir(fromPath)

	candidates := []string{
		path.Join(dir, name+".py"),
		path.Join(dir, name, "__init__.py"),
		name + ".py",
		path.Join(dir, name+".js"),
		path.Join(dir, name+".ts"),
	}
	for _, candidate := range candidates {
		if candidate == fromPath {
			continue
		}
		content, ok := b.reader.ReadFile(candidate)
		if !ok {
			continue
		}
		related[imp] = headLines(content, maxRelatedLines)
		return
	}
}

// importBaseName reduces a raw import string to a lookup name: the last
// dotted segment for module paths, the file stem for relative JS paths.
func importBaseName(imp string) string {
	imp = strings.TrimSpace(imp)
	if imp == "" {
		return ""
	}
	if i := strings.IndexAny(imp, " ,("); i >= 0 {
		imp = imp[:i]
	}
	imp = strings.TrimPrefix(imp, "./")
	imp = strings.TrimPrefix(imp, "../")
	if i := strings.LastIndex(imp, "/"); i >= 0 {
		imp = imp[i+1:]
	}
	if i := strings.LastIndex(imp, "."); i >= 0 {
		imp = imp[i+1:]
	}
	return imp
}

func headLines(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n")
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
