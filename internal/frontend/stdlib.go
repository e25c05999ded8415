package frontend

// StdlibIncludePath lists the standard-library MiniZinc include paths
// this frontend recognizes by name but never reads from disk: `include
// "globals.mzn";` and friends always produce an IncludeItem with Model
// == nil, never a tree this parser actually walks. It exists so
// Env/search.Builder.OnlyUserDefined have something to compare an
// include's path prefix against, should a future version of this
// frontend start resolving includes; today every IncludeItem.Model is
// nil regardless, so the search engine's recursive-include machinery
// never actually fires on one of these paths or any other.
var StdlibIncludePath = []string{
	"globals",
	"globals/",
	"globals.mzn",
}
