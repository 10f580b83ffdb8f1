package layering

import "testing"

func layers() []Layer[string] {
	return Sort([]Layer[string]{
		{Name: "base", Priority: 100, Elems: []string{"a", "b", "c"}},
		{Name: "patch", Priority: 500, Elems: []string{"", "B"}},
	})
}

func TestSortStrongestFirst(t *testing.T) {
	sorted := layers()
	if sorted[0].Name != "patch" || sorted[1].Name != "base" {
		t.Fatalf("expected strongest first, got %q then %q", sorted[0].Name, sorted[1].Name)
	}
}

func TestSortStable(t *testing.T) {
	sorted := Sort([]Layer[int]{
		{Name: "first", Priority: 10, Elems: []int{1}},
		{Name: "second", Priority: 10, Elems: []int{2}},
	})
	if sorted[0].Name != "first" {
		t.Fatalf("equal priorities must keep declaration order, got %q", sorted[0].Name)
	}
}

func TestPick(t *testing.T) {
	sorted := layers()

	value, idx, ok := Pick(sorted, 1)
	if !ok || value != "B" || idx != 0 {
		t.Fatalf("expected the patch layer to win, got %q from %d (%v)", value, idx, ok)
	}

	// Zero element in the strongest covering layer falls through.
	value, idx, ok = Pick(sorted, 0)
	if !ok || value != "a" || idx != 1 {
		t.Fatalf("expected fall-through to base, got %q from %d (%v)", value, idx, ok)
	}

	// Only the weaker layer covers index 2.
	value, idx, ok = Pick(sorted, 2)
	if !ok || value != "c" || idx != 1 {
		t.Fatalf("expected base coverage, got %q from %d (%v)", value, idx, ok)
	}

	if _, idx, ok := Pick(sorted, 3); ok || idx != -1 {
		t.Fatalf("expected no coverage beyond the union width")
	}
	if _, _, ok := Pick(sorted, -1); ok {
		t.Fatalf("expected negative index to be uncovered")
	}
}

func TestPickAllZero(t *testing.T) {
	sorted := Sort([]Layer[string]{
		{Name: "weak", Priority: 1, Elems: []string{""}},
		{Name: "strong", Priority: 2, Elems: []string{""}},
	})
	value, idx, ok := Pick(sorted, 0)
	if !ok || value != "" || idx != 0 {
		t.Fatalf("expected the strongest covering layer to supply the zero value, got %d (%v)", idx, ok)
	}
}

func TestWidthAndFlatten(t *testing.T) {
	sorted := layers()
	if Width(sorted) != 3 {
		t.Fatalf("expected union width 3, got %d", Width(sorted))
	}

	flattened := Flatten(sorted)
	want := []string{"a", "B", "c"}
	for i := range want {
		if flattened[i] != want[i] {
			t.Fatalf("flattened[%d] = %q, want %q", i, flattened[i], want[i])
		}
	}

	if Flatten([]Layer[string]{}) != nil {
		t.Fatalf("expected no layers to flatten to nil")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(layers()); err != nil {
		t.Fatalf("expected valid layers, got %v", err)
	}
	if err := Validate([]Layer[int]{{Name: ""}}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := Validate([]Layer[int]{{Name: "x"}, {Name: "x"}}); err == nil {
		t.Fatalf("expected duplicate names to fail")
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "second", "third"); got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Fatalf("expected zero when every value is zero, got %d", got)
	}
}
