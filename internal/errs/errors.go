// Package errs is the linter's error taxonomy: usage errors (bad flags, a
// missing file), parse/type errors from the frontend, and internal logic
// errors (a duplicate rule id, an invalid capture index) that should never
// happen and, when they do, abort the run rather than produce a partial
// report.
//
// Grounded on cue/errors: a positioned Error, a List that sorts and
// reports its most severe Kind, and Usage/Parse/Logic constructors,
// trimmed down to what a single-file CLI tool needs.
package errs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erikvader/MiniZinc-linter/internal/token"
)

// Kind classifies an Error for the purpose of picking a process exit code.
type Kind int

const (
	// KindUsage covers bad CLI flags/arguments and frontend parse or type
	// errors — the input was not a runnable request, exit code 1.
	KindUsage Kind = iota
	// KindLogic covers internal invariant violations, e.g.
	// DuplicateRuleID — the tool itself is broken, exit code 2.
	KindLogic
)

// Error is a single positioned diagnostic produced outside the lint
// engine itself (CLI/frontend/registry errors, as opposed to
// lint.LintResult, which is the engine's own diagnostic type).
type Error struct {
	Pos     token.Position
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Usage builds a KindUsage error with no position, for CLI-argument
// problems.
func Usage(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Kind: KindUsage}
}

// Parse builds a KindUsage error positioned at pos, for frontend
// scan/parse/type problems.
func Parse(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...), Kind: KindUsage}
}

// Logic builds a KindLogic error for an internal invariant violation.
func Logic(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Kind: KindLogic}
}

// List is an ordered collection of Errors implementing the error
// interface, modelled on cue/errors' list type.
type List []*Error

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Sort orders errors by position for stable, readable output.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool { return l[i].Pos.Less(l[j].Pos) })
}

// Kind returns the most severe Kind present (KindLogic outranks
// KindUsage), used by the driver to decide the process exit code when
// several errors were collected before aborting.
func (l List) Kind() Kind {
	k := KindUsage
	for _, e := range l {
		if e.Kind == KindLogic {
			k = KindLogic
		}
	}
	return k
}
