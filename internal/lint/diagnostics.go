// Package lint hosts the rule registry, the LintEnv semantic cache, the
// diagnostic value model, and the conjunctive-context helpers every rule
// in internal/lint/rules builds on.
package lint

import (
	"sort"

	"github.com/erikvader/MiniZinc-linter/internal/ast"
	"github.com/erikvader/MiniZinc-linter/internal/token"
)

// Category is the closed set of diagnostic categories a rule belongs to,
// used by the CLI's --ignore-category flag.
type Category int

const (
	CategoryStyle Category = iota
	CategoryPerformance
	CategoryRedundancy
	CategoryChallengeRule
	CategoryUnsure
)

func (c Category) String() string {
	switch c {
	case CategoryStyle:
		return "style"
	case CategoryPerformance:
		return "performance"
	case CategoryRedundancy:
		return "redundancy"
	case CategoryChallengeRule:
		return "challenge-rule"
	case CategoryUnsure:
		return "unsure"
	default:
		return "?"
	}
}

// RegionKind discriminates Region's tagged-union variants.
type RegionKind int

const (
	RegionNone RegionKind = iota
	RegionOneLineMarked
	RegionMultiLine
)

// Region describes which part of a line, or which range of lines, a
// diagnostic or sub-result points at.
type Region struct {
	Kind RegionKind

	Line     int // OneLineMarked
	StartCol int
	EndCol   int // 0 means "to end of line"

	StartLine int // MultiLine
	EndLine   int
}

func NoRegion() Region { return Region{Kind: RegionNone} }

func OneLineMarked(line, startCol, endCol int) Region {
	return Region{Kind: RegionOneLineMarked, Line: line, StartCol: startCol, EndCol: endCol}
}

func MultiLine(startLine, endLine int) Region {
	return Region{Kind: RegionMultiLine, StartLine: startLine, EndLine: endLine}
}

// FileContents pairs a Region with the file it belongs to. Two
// FileContents compare equal only if both filename and region match
// exactly — this, together with the rule id, is the entire identity of a
// LintResult for deduplication purposes (spec's diagnostic model
// intentionally excludes the message text).
type FileContents struct {
	Filename string
	Region   Region
}

// LocationToFileContents builds a FileContents spanning loc, collapsing
// to a single marked line when loc doesn't cross lines.
func LocationToFileContents(loc ast.Location) FileContents {
	if loc.First.Line == loc.Last.Line {
		return FileContents{
			Filename: loc.First.Filename,
			Region:   OneLineMarked(loc.First.Line, loc.First.Column, loc.Last.Column),
		}
	}
	return FileContents{
		Filename: loc.First.Filename,
		Region:   MultiLine(loc.First.Line, loc.Last.Line),
	}
}

// Sub is a secondary location attached to a LintResult, e.g. pointing at
// the declaration an "unused" diagnostic concerns.
type Sub struct {
	Message string
	FileContents
}

// LintResult is one diagnostic produced by a rule. Equality and ordering
// are defined ONLY on (RuleID, FileContents): two results about the same
// rule and the same source region are the same result even if their
// message text differs, which is what lets tests and deduplication ignore
// incidental wording differences.
type LintResult struct {
	RuleID  int
	Message string
	FileContents
	Rewrite       *string // rendered replacement source, nil if none offered
	Sub           []Sub
	DependsOnInst bool // true if the finding depends on instance data, not just the model shape
}

// SetRewrite renders e and attaches it as this result's suggested fix.
func (r *LintResult) SetRewrite(e ast.Expr) {
	s := ast.Sprint(e)
	r.Rewrite = &s
}

// Equal compares two results the way spec's diagnostic model requires:
// by rule and file-position identity only.
func (r LintResult) Equal(o LintResult) bool {
	return r.RuleID == o.RuleID && r.FileContents == o.FileContents
}

// Less orders results for stable, deterministic output: by file, then
// position, then rule id.
func Less(a, b LintResult) bool {
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}
	pa, pb := regionPos(a.Region), regionPos(b.Region)
	if pa != pb {
		return pa.Less(pb)
	}
	return a.RuleID < b.RuleID
}

func regionPos(r Region) token.Position {
	switch r.Kind {
	case RegionOneLineMarked:
		return token.Position{Line: r.Line, Column: r.StartCol}
	case RegionMultiLine:
		return token.Position{Line: r.StartLine}
	default:
		return token.Position{}
	}
}

// SortResults sorts diagnostics in place for deterministic rendering and
// comparison, per spec's "tests MUST sort both sides before comparing."
func SortResults(rs []LintResult) {
	sort.SliceStable(rs, func(i, j int) bool { return Less(rs[i], rs[j]) })
}
