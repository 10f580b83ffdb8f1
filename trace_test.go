package at

import (
	"testing"

	"github.com/goliatone/go-at/pkg/seq"
)

func TestExplainNative(t *testing.T) {
	decision := Explain([3]int{1, 2, 3}, 1)

	if decision.Strategy != "native" {
		t.Fatalf("expected native, got %q", decision.Strategy)
	}
	if len(decision.Capabilities) != 3 {
		t.Fatalf("expected one check per strategy, got %d", len(decision.Capabilities))
	}
	for _, check := range decision.Capabilities {
		switch check.Strategy {
		case "checked", "index+len":
			if check.Present {
				t.Fatalf("array should not expose %s", check.Strategy)
			}
		case "native":
			if !check.Present {
				t.Fatalf("array should be natively indexable")
			}
			if check.Detail != "array bound=3" {
				t.Fatalf("expected the fixed bound in the detail, got %q", check.Detail)
			}
		default:
			t.Fatalf("unexpected capability %q", check.Strategy)
		}
	}
}

func TestExplainChecked(t *testing.T) {
	decision := Explain(seq.OneBasedOf(1, 2, 3), 1)
	if decision.Strategy != "checked" {
		t.Fatalf("expected checked, got %q", decision.Strategy)
	}
}

func TestExplainPrecedenceOverFallback(t *testing.T) {
	decision := Explain(dualSeq{}, 0)
	if decision.Strategy != "checked" {
		t.Fatalf("expected checked to win over index+len, got %q", decision.Strategy)
	}
	// Both capabilities are still reported present.
	present := map[string]bool{}
	for _, check := range decision.Capabilities {
		present[check.Strategy] = check.Present
	}
	if !present["checked"] || !present["index+len"] {
		t.Fatalf("expected both capabilities present, got %v", present)
	}
}

func TestExplainWithoutIndexFallback(t *testing.T) {
	accessor := New(WithoutIndexFallback())
	decision := accessor.Explain(sizeIndexed{elems: []string{"a"}}, 0)
	if decision.Strategy != "none" {
		t.Fatalf("expected no strategy with the fallback disabled, got %q", decision.Strategy)
	}
}

func TestDecisionJSONRoundTrip(t *testing.T) {
	decision := Explain([]string{"a", "b"}, 1)

	payload, err := decision.ToJSON()
	if err != nil {
		t.Fatalf("serialisation failed: %v", err)
	}

	restored, err := DecisionFromJSON(payload)
	if err != nil {
		t.Fatalf("deserialisation failed: %v", err)
	}
	if restored.Strategy != decision.Strategy {
		t.Fatalf("strategy changed across the round trip: %q vs %q", restored.Strategy, decision.Strategy)
	}
	if len(restored.Capabilities) != len(decision.Capabilities) {
		t.Fatalf("capability list changed across the round trip")
	}
}
