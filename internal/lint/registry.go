package lint

import (
	"fmt"
	"sort"
)

// AnalyzeFunc is a single rule's analysis entry point: it inspects env's
// model and reports findings through env.Report.
type AnalyzeFunc func(env *Env)

// RuleDescriptor names one catalogued analysis. Ported from
// original_source/src/linter/registry.{hpp,cpp}'s LintRule-keyed map, with
// the category spec's diagnostic model adds.
type RuleDescriptor struct {
	ID       int
	Name     string
	Category Category
	Analyze  AnalyzeFunc
}

// DuplicateRuleIDError is returned by Registry.Add when two descriptors
// claim the same id; the driver treats this as a fatal, exit-code-2
// internal logic error, never a recoverable one — the registry is built
// once at process start and is immutable for the rest of the run.
type DuplicateRuleIDError struct {
	ID       int
	Existing string
	New      string
}

func (e *DuplicateRuleIDError) Error() string {
	return fmt.Sprintf("lint: duplicate rule id %d (%q already registered, got %q)", e.ID, e.Existing, e.New)
}

// Registry is the process-lifetime table of rules. It is populated once,
// by an explicit init_rules()-style call from the driver (cmd/lzn and
// rules.InitRules), rather than via Go init() self-registration — spec's
// design notes call out the registry-construction-order hazard the
// original's REGISTER_RULE macro has, and ask for a registry built
// explicitly by the driver instead.
type Registry struct {
	byID map[int]*RuleDescriptor
	ids  []int // insertion order; Iter sorts a copy
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[int]*RuleDescriptor)}
}

// Add registers d, or returns a *DuplicateRuleIDError if its id is taken.
func (r *Registry) Add(d RuleDescriptor) error {
	if existing, ok := r.byID[d.ID]; ok {
		return &DuplicateRuleIDError{ID: d.ID, Existing: existing.Name, New: d.Name}
	}
	cp := d
	r.byID[d.ID] = &cp
	r.ids = append(r.ids, d.ID)
	return nil
}

// Get returns the descriptor for id, or nil if none is registered.
func (r *Registry) Get(id int) *RuleDescriptor { return r.byID[id] }

// GetByName returns the descriptor named name, or nil.
func (r *Registry) GetByName(name string) *RuleDescriptor {
	for _, id := range r.ids {
		if r.byID[id].Name == name {
			return r.byID[id]
		}
	}
	return nil
}

// Size returns the number of registered rules.
func (r *Registry) Size() int { return len(r.ids) }

// Iter returns every registered rule, sorted by id for stable iteration
// order across runs.
func (r *Registry) Iter() []*RuleDescriptor {
	ids := append([]int{}, r.ids...)
	sort.Ints(ids)
	out := make([]*RuleDescriptor, len(ids))
	for i, id := range ids {
		out[i] = r.byID[id]
	}
	return out
}
