package at

import (
	"encoding/json"
	"fmt"
)

// Decision captures which capabilities a request's collection exposes and the
// strategy the dispatcher would select for it.
type Decision struct {
	Collection   string            `json:"collection"`
	Indices      []string          `json:"indices,omitempty"`
	Strategy     string            `json:"strategy"`
	Capabilities []CapabilityCheck `json:"capabilities"`
}

// CapabilityCheck reports one strategy's capability test against the
// collection type.
type CapabilityCheck struct {
	Strategy string `json:"strategy"`
	Present  bool   `json:"present"`
	Detail   string `json:"detail,omitempty"`
}

// Explain runs the capability tests without touching any element, so callers
// can audit why a strategy was (or was not) selected.
func (a *Accessor) Explain(collection any, indices ...any) Decision {
	report := Describe(collection)
	decision := Decision{
		Collection: fmt.Sprintf("%T", collection),
		Indices:    describeIndices(indices),
		Strategy:   selectStrategy(a.config(), collection, indices).String(),
	}
	decision.Capabilities = []CapabilityCheck{
		capabilityCheck(StrategyChecked, report.Checked != nil, methodDetail(report.Checked)),
		capabilityCheck(StrategyIndexLen, report.IndexLen != nil, methodDetail(report.IndexLen)),
		capabilityCheck(StrategyNative, report.Native != nil, nativeDetail(report.Native)),
	}
	return decision
}

func capabilityCheck(strategy Strategy, present bool, detail string) CapabilityCheck {
	return CapabilityCheck{
		Strategy: strategy.String(),
		Present:  present,
		Detail:   detail,
	}
}

func methodDetail(descriptor *MethodDescriptor) string {
	if descriptor == nil {
		return ""
	}
	return descriptor.Name + " " + descriptor.Signature
}

func nativeDetail(descriptor *NativeDescriptor) string {
	if descriptor == nil {
		return ""
	}
	if descriptor.Bound > 0 {
		return fmt.Sprintf("%s bound=%d", descriptor.Kind, descriptor.Bound)
	}
	return descriptor.Kind
}

// ToJSON serialises the decision into JSON for logging or transport helpers.
func (d Decision) ToJSON() ([]byte, error) {
	type alias Decision
	return json.Marshal(alias(d))
}

// DecisionFromJSON deserialises a JSON payload that was previously generated
// via ToJSON.
func DecisionFromJSON(payload []byte) (Decision, error) {
	type alias Decision
	var decision alias
	if err := json.Unmarshal(payload, &decision); err != nil {
		return Decision{}, err
	}
	return Decision(decision), nil
}
