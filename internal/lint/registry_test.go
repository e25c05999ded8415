package lint

import "testing"

func TestRegistryAddAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Add(RuleDescriptor{ID: 1, Name: "a", Category: CategoryStyle}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reg.Get(1); got == nil || got.Name != "a" {
		t.Errorf("Get(1) = %v, want rule %q", got, "a")
	}
	if reg.Get(99) != nil {
		t.Error("Get on an unregistered id must return nil")
	}
	if got := reg.GetByName("a"); got == nil || got.ID != 1 {
		t.Errorf("GetByName(%q) = %v", "a", got)
	}
	if reg.GetByName("missing") != nil {
		t.Error("GetByName on an unregistered name must return nil")
	}
}

func TestRegistryRejectsDuplicateID(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Add(RuleDescriptor{ID: 1, Name: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := reg.Add(RuleDescriptor{ID: 1, Name: "b"})
	if err == nil {
		t.Fatal("want an error when two rules claim the same id")
	}
	if _, ok := err.(*DuplicateRuleIDError); !ok {
		t.Errorf("want a *DuplicateRuleIDError, got %T", err)
	}
}

func TestRegistryIterIsSortedByID(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []int{5, 1, 3} {
		if err := reg.Add(RuleDescriptor{ID: id, Name: "r"}); err != nil {
			t.Fatal(err)
		}
	}
	got := reg.Iter()
	if len(got) != 3 {
		t.Fatalf("want 3 rules, got %d", len(got))
	}
	for i, want := range []int{1, 3, 5} {
		if got[i].ID != want {
			t.Errorf("Iter()[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
	if reg.Size() != 3 {
		t.Errorf("Size() = %d, want 3", reg.Size())
	}
}
