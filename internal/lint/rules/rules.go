// Package rules is the catalogue of concrete lint analyses, each a small
// AnalyzeFunc grounded on one file of original_source/src/linter/rules.
package rules

import "github.com/erikvader/MiniZinc-linter/internal/lint"

// InitRules registers every cataloged rule into reg. Called once by the
// driver at process start, rather than via package init()
// self-registration — see lint.Registry's doc comment for why.
func InitRules(reg *lint.Registry) error {
	all := []lint.RuleDescriptor{
		{ID: 1, Name: "unused-var-funcs", Category: lint.CategoryRedundancy, Analyze: unusedVarFuncs},
		{ID: 4, Name: "constant-variable", Category: lint.CategoryUnsure, Analyze: constantVariable},
		{ID: 5, Name: "globals-in-function", Category: lint.CategoryStyle, Analyze: globalsInFunction},
		{ID: 6, Name: "symmetry-breaking", Category: lint.CategoryUnsure, Analyze: symmetryBreaking},
		{ID: 7, Name: "var-in-gen", Category: lint.CategoryUnsure, Analyze: varInGen},
		{ID: 9, Name: "non-func-hint", Category: lint.CategoryUnsure, Analyze: nonFuncHint},
		{ID: 13, Name: "unbounded-variable", Category: lint.CategoryPerformance, Analyze: unboundedVariable},
		{ID: 15, Name: "element-predicate", Category: lint.CategoryStyle, Analyze: elementPredicate},
		{ID: 17, Name: "global-reified", Category: lint.CategoryChallengeRule, Analyze: globalReified},
		{ID: 18, Name: "operator-on-var", Category: lint.CategoryUnsure, Analyze: operatorOnVar},
		{ID: 19, Name: "one-based-arrays", Category: lint.CategoryPerformance, Analyze: oneBasedArrays},
		{ID: 20, Name: "compacted-if", Category: lint.CategoryStyle, Analyze: compactedIf},
		{ID: 22, Name: "zero-one-vars", Category: lint.CategoryPerformance, Analyze: zeroOneVars},
		{ID: 26, Name: "var-in-if-where", Category: lint.CategoryChallengeRule, Analyze: varInIfWhere},
	}
	for _, d := range all {
		if err := reg.Add(d); err != nil {
			return err
		}
	}
	return nil
}
