package at

import (
	"encoding/json"
	"reflect"
)

// MethodDescriptor describes a capability method detected on a type.
type MethodDescriptor struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

// NativeDescriptor describes a natively indexable kind. Bound is set only for
// fixed-bound arrays.
type NativeDescriptor struct {
	Kind  string `json:"kind"`
	Bound int    `json:"bound,omitempty"`
}

// Report lists the access capabilities a collection type exposes, one field
// per strategy in precedence order.
type Report struct {
	Type     string            `json:"type"`
	Checked  *MethodDescriptor `json:"checked,omitempty"`
	IndexLen *MethodDescriptor `json:"index_len,omitempty"`
	Native   *NativeDescriptor `json:"native,omitempty"`
}

// Describe derives the capability report for a collection value.
func Describe(collection any) Report {
	rv := reflect.ValueOf(collection)
	if !rv.IsValid() {
		return Report{Type: "<nil>"}
	}
	report := Report{Type: rv.Type().String()}

	if method := methodByName(rv, checkedMethodName); method.IsValid() {
		report.Checked = &MethodDescriptor{
			Name:      checkedMethodName,
			Signature: method.Type().String(),
		}
	}
	if index, _, ok := indexLenCapability(rv); ok {
		report.IndexLen = &MethodDescriptor{
			Name:      indexMethodName,
			Signature: index.Type().String(),
		}
	}

	native := derefNative(rv)
	switch native.Kind() {
	case reflect.Array:
		report.Native = &NativeDescriptor{
			Kind:  native.Kind().String(),
			Bound: native.Type().Len(),
		}
	case reflect.Slice, reflect.String, reflect.Map:
		report.Native = &NativeDescriptor{Kind: native.Kind().String()}
	}
	return report
}

// Strategies returns the viable strategies in precedence order.
func (r Report) Strategies() []Strategy {
	var strategies []Strategy
	if r.Checked != nil {
		strategies = append(strategies, StrategyChecked)
	}
	if r.IndexLen != nil {
		strategies = append(strategies, StrategyIndexLen)
	}
	if r.Native != nil {
		strategies = append(strategies, StrategyNative)
	}
	return strategies
}

// ToJSON serialises the report for diagnostics tooling.
func (r Report) ToJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(alias(r))
}
