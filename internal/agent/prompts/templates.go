package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maxbolgarin/lang"

	"github.com/maxbolgarin/revu/internal/model"
)

const (
	maxPromptImports  = 10
	maxRelatedFiles   = 2
	maxRelatedSnippet = 500
)

// BuildReviewPrompt renders the review request for a single file change.
// The output is deterministic for a given context: related code is
// emitted in sorted import-name order and snippets are capped so a
// handful of large neighbors cannot crowd out the diff itself.
func BuildReviewPrompt(codeCtx model.CodeContext) model.Prompt {
	return model.Prompt{
		SystemPrompt: reviewSystemPrompt,
		UserPrompt: fmt.Sprintf(reviewUserPromptTemplate,
			codeCtx.Path,
			codeCtx.Type,
			codeCtx.Diff,
			buildContextSection(codeCtx),
		),
	}
}

// ChatSystemPrompt returns the system message that seeds a chat session.
func ChatSystemPrompt() string {
	return chatSystemPrompt
}

func buildContextSection(codeCtx model.CodeContext) string {
	var b strings.Builder

	if len(codeCtx.Imports) > 0 {
		imports := codeCtx.Imports
		if len(imports) > maxPromptImports {
			imports = imports[:maxPromptImports]
		}
		b.WriteString("\nIMPORTS: " + strings.Join(imports, ", ") + "\n")
	}
	if len(codeCtx.ModifiedFunctions) > 0 {
		b.WriteString("\nMODIFIED FUNCTIONS: " + strings.Join(codeCtx.ModifiedFunctions, ", ") + "\n")
	}
	if len(codeCtx.ModifiedClasses) > 0 {
		b.WriteString("\nMODIFIED CLASSES: " + strings.Join(codeCtx.ModifiedClasses, ", ") + "\n")
	}

	if len(codeCtx.RelatedCode) > 0 {
		names := make([]string, 0, len(codeCtx.RelatedCode))
		for name := range codeCtx.RelatedCode {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > maxRelatedFiles {
			names = names[:maxRelatedFiles]
		}

		b.WriteString("\nRELATED CODE:\n")
		for _, name := range names {
			b.WriteString(fmt.Sprintf("\n--- %s ---\n%s\n",
				name, lang.TruncateString(codeCtx.RelatedCode[name], maxRelatedSnippet)))
		}
	}

	return b.String()
}
