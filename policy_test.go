package at

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-at/pkg/activity"
)

func TestPolicyFromYAML(t *testing.T) {
	policy, err := PolicyFromYAML([]byte("index_fallback: false\nengine: cel\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if policy.IndexFallback == nil || *policy.IndexFallback {
		t.Fatalf("expected the fallback disabled, got %+v", policy)
	}
	if policy.Engine != "cel" {
		t.Fatalf("expected cel engine, got %q", policy.Engine)
	}
}

func TestPolicyFromJSON(t *testing.T) {
	policy, err := PolicyFromJSON([]byte(`{"engine": "expr"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if policy.Engine != "expr" {
		t.Fatalf("expected expr engine, got %q", policy.Engine)
	}
	if policy.IndexFallback != nil {
		t.Fatalf("absent fallback key must stay nil")
	}
}

func TestPolicyRejectsUnknownFields(t *testing.T) {
	if _, err := PolicyFromYAML([]byte("strategy: always\n")); err == nil {
		t.Fatalf("expected unknown keys to be rejected")
	}
}

func TestPolicyRejectsUnknownEngine(t *testing.T) {
	_, err := PolicyFromYAML([]byte("engine: lua\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown resolver engine") {
		t.Fatalf("expected unknown engine failure, got %v", err)
	}
}

func TestPolicyJSEngineRequiresBuildTag(t *testing.T) {
	_, err := PolicyFromYAML([]byte("engine: js\n"))
	if jsResolverAvailable() {
		if err != nil {
			t.Fatalf("expected js engine to be accepted, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected js engine to be rejected without the build tag")
	}
}

func TestPolicyOptionsApply(t *testing.T) {
	policy, err := PolicyFromYAML([]byte("index_fallback: false\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	opts, err := policy.Options()
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}

	accessor := New(opts...)
	coll := sizeIndexed{elems: []string{"a", "b"}}
	if _, err := accessor.Get(coll, 0); !errors.Is(err, ErrNotIndexable) {
		t.Fatalf("expected the policy to disable the fallback, got %v", err)
	}
}

func TestPolicyAuditChannel(t *testing.T) {
	policy, err := PolicyFromYAML([]byte("audit_channel: compliance\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	opts, err := policy.Options()
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}

	capture := &activity.CaptureHook{}
	opts = append(opts, WithActivityHooks(activity.Hooks{capture}))
	accessor := New(opts...)

	if _, err := accessor.Get([]int{1}, 0); err != nil {
		t.Fatalf("access failed: %v", err)
	}
	if len(capture.Events) != 1 || capture.Events[0].Channel != "compliance" {
		t.Fatalf("expected the policy channel on audit events, got %+v", capture.Events)
	}
}

func TestPolicyOptionsSelectEngine(t *testing.T) {
	policy := Policy{Engine: "cel"}
	opts, err := policy.Options()
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}

	accessor := New(opts...)
	value, err := accessor.GetExpr([]string{"first", "second"}, "size - 2")
	if err != nil || value != "first" {
		t.Fatalf("expected first via cel, got %v (%v)", value, err)
	}
}
