package main

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/erikvader/MiniZinc-linter/internal/lint"
)

var printer = message.NewPrinter(language.English)

// renderResults writes one line per finding (and, indented, any attached
// sub-results), followed by a pluralized summary line.
func renderResults(w io.Writer, results []lint.LintResult) {
	for _, r := range results {
		fmt.Fprintln(w, formatResult(r))
		for _, sub := range r.Sub {
			fmt.Fprintf(w, "    %s: %s\n", sub.Message, formatFileContents(sub.FileContents))
		}
		if r.Rewrite != nil {
			fmt.Fprintf(w, "    suggested rewrite: %s\n", *r.Rewrite)
		}
	}
	printer.Fprintf(w, "%d %s found.\n", len(results), pluralProblem(len(results)))
}

func pluralProblem(n int) string {
	if n == 1 {
		return "problem"
	}
	return "problems"
}

func formatResult(r lint.LintResult) string {
	return fmt.Sprintf("%s: %s", formatFileContents(r.FileContents), r.Message)
}

func formatFileContents(fc lint.FileContents) string {
	switch fc.Region.Kind {
	case lint.RegionOneLineMarked:
		return fmt.Sprintf("%s:%d:%d", fc.Filename, fc.Region.Line, fc.Region.StartCol)
	case lint.RegionMultiLine:
		return fmt.Sprintf("%s:%d-%d", fc.Filename, fc.Region.StartLine, fc.Region.EndLine)
	default:
		return fc.Filename
	}
}
