package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/erikvader/MiniZinc-linter/internal/errs"
	"github.com/erikvader/MiniZinc-linter/internal/frontend"
	"github.com/erikvader/MiniZinc-linter/internal/lint"
	"github.com/erikvader/MiniZinc-linter/internal/lint/rules"
)

// categoryNames is the closed vocabulary --ignore-category accepts,
// matching lint.Category's String() forms.
var categoryNames = map[string]lint.Category{
	"style":          lint.CategoryStyle,
	"performance":    lint.CategoryPerformance,
	"redundancy":     lint.CategoryRedundancy,
	"challenge-rule": lint.CategoryChallengeRule,
	"unsure":         lint.CategoryUnsure,
}

// run parses args as the lzn command line and returns the process exit
// code: 0 the model was linted (whether or not diagnostics were reported),
// 1 a usage, file-read or parse error, 2 an internal logic error (e.g. a
// duplicate rule id in the registry).
func run(args []string) int {
	var ignoreRules []string
	var ignoreCategories []string

	root := &cobra.Command{
		Use:           "lzn [flags] MODEL_FILE",
		Short:         "Lint a MiniZinc model for common style, performance, and redundancy issues",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringArrayVarP(&ignoreRules, "ignore", "i", nil,
		"ignore the rule with this id or name (repeatable)")
	root.Flags().StringArrayVarP(&ignoreCategories, "ignore-category", "c", nil,
		"ignore every rule in this category: style, performance, redundancy, challenge-rule, unsure (repeatable)")
	root.SetArgs(args)

	code := 0
	root.RunE = func(cmd *cobra.Command, posArgs []string) error {
		var err error
		code, err = lintFile(posArgs[0], ignoreRules, ignoreCategories, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lzn:", err)
		if code == 0 {
			code = 1 // flag or argument error reported before RunE ran
		}
	}
	return code
}

func lintFile(path string, ignoreRules, ignoreCategories []string, stdout, stderr io.Writer) (int, error) {
	reg := lint.NewRegistry()
	if err := rules.InitRules(reg); err != nil {
		return 2, err
	}

	skipID, skipCategory, err := resolveIgnores(reg, ignoreRules, ignoreCategories)
	if err != nil {
		return 1, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return 1, fmt.Errorf("cannot read %s: %w", path, err)
	}

	model, parseErrs := frontend.ParseModel(path, src)
	if len(parseErrs) > 0 {
		renderParseErrors(stderr, parseErrs)
		if parseErrs.Kind() == errs.KindLogic {
			return 2, nil
		}
		return 1, nil
	}

	env := lint.NewEnv(model, frontend.StdlibIncludePath)
	for _, d := range reg.Iter() {
		if skipID[d.ID] || skipCategory[d.Category] {
			continue
		}
		d.Analyze(env)
	}

	results := env.Results()
	renderResults(stdout, results)
	return 0, nil
}

func resolveIgnores(reg *lint.Registry, ignoreRules, ignoreCategories []string) (map[int]bool, map[lint.Category]bool, error) {
	skipID := map[int]bool{}
	for _, s := range ignoreRules {
		if id, convErr := strconv.Atoi(s); convErr == nil {
			if reg.Get(id) == nil {
				return nil, nil, errs.Usage("unknown rule id %d", id)
			}
			skipID[id] = true
			continue
		}
		d := reg.GetByName(s)
		if d == nil {
			return nil, nil, errs.Usage("unknown rule name %q", s)
		}
		skipID[d.ID] = true
	}

	skipCategory := map[lint.Category]bool{}
	for _, s := range ignoreCategories {
		cat, ok := categoryNames[s]
		if !ok {
			return nil, nil, errs.Usage("unknown category %q", s)
		}
		skipCategory[cat] = true
	}

	return skipID, skipCategory, nil
}

func renderParseErrors(w io.Writer, list errs.List) {
	list.Sort()
	for _, e := range list {
		fmt.Fprintln(w, e.Error())
	}
}
