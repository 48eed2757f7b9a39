package context

import (
	"path"
	"regexp"
	"strings"
)

// Import and symbol extraction is regex-based and deliberately best-effort:
// it mimics what a reviewer skims from a file, not what a compiler resolves.
// Unknown extensions simply produce no results.

type importExtractor func(content string) []string

var importExtractors = map[string]importExtractor{
	".py":   extractPythonImports,
	".js":   extractJSImports,
	".jsx":  extractJSImports,
	".ts":   extractJSImports,
	".tsx":  extractJSImports,
	".java": extractJavaImports,
	".go":   extractGoImports,
}

var (
	pyImportRegex     = regexp.MustCompile(`(?m)^import\s+(.+)$`)
	pyFromImportRegex = regexp.MustCompile(`(?m)^from\s+(.+?)\s+import`)
	jsImportRegex     = regexp.MustCompile(`import\s+.*?from\s+['"](.+?)['"]`)
	jsRequireRegex    = regexp.MustCompile(`require\(['"](.+?)['"]\)`)
	javaImportRegex   = regexp.MustCompile(`(?m)^import\s+(.+?);`)
	goImportRegex     = regexp.MustCompile(`import\s+"(.+?)"`)
)

func extractPythonImports(content string) []string {
	imports := findAll(pyImportRegex, content)
	return append(imports, findAll(pyFromImportRegex, content)...)
}

func extractJSImports(content string) []string {
	imports := findAll(jsImportRegex, content)
	return append(imports, findAll(jsRequireRegex, content)...)
}

func extractJavaImports(content string) []string {
	return findAll(javaImportRegex, content)
}

func extractGoImports(content string) []string {
	return findAll(goImportRegex, content)
}

// Symbol patterns match only added diff lines, so every pattern is anchored
// on the leading "+" of the reconstructed diff text.
var (
	functionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\+\s*def\s+(\w+)`),
		regexp.MustCompile(`(?m)^\+\s*function\s+(\w+)`),
		regexp.MustCompile(`(?m)^\+\s*const\s+(\w+)\s*=\s*(?:async\s*)?\(`),
		regexp.MustCompile(`(?m)^\+\s*(?:public|private|protected).*?(\w+)\s*\(`),
	}
	classPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\+\s*class\s+(\w+)`),
		regexp.MustCompile(`(?m)^\+\s*(?:public|private)?\s*class\s+(\w+)`),
	}
)

// extractImports returns raw import strings in first-seen order for the
// file's language family, or nothing for unrecognized extensions.
func extractImports(content, filePath string) []string {
	ext := strings.ToLower(path.Ext(filePath))
	extract, ok := importExtractors[ext]
	if !ok {
		return nil
	}
	return extract(content)
}

// extractSymbols collects deduplicated symbol names from added lines of the
// diff, preserving first-match order.
func extractSymbols(diff string, patterns []*regexp.Regexp) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(diff, -1) {
			if _, ok := seen[m[1]]; ok {
				continue
			}
			seen[m[1]] = struct{}{}
			names = append(names, m[1])
		}
	}
	return names
}

func findAll(re *regexp.Regexp, content string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	return out
}
