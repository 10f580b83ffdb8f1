package at

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-at/internal/policy"
)

// Policy is a declarative accessor configuration, typically checked in next
// to a deployment. A nil IndexFallback leaves the strategy enabled.
type Policy struct {
	IndexFallback *bool  `json:"index_fallback,omitempty" yaml:"index_fallback,omitempty"`
	Engine        string `json:"engine,omitempty" yaml:"engine,omitempty"`
	AuditChannel  string `json:"audit_channel,omitempty" yaml:"audit_channel,omitempty"`
}

// PolicyFromYAML decodes a YAML policy document.
func PolicyFromYAML(payload []byte) (Policy, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return Policy{}, fmt.Errorf("at: decode policy yaml: %w", err)
	}
	return decodePolicy(policy.Context{Source: "yaml"}, doc)
}

// PolicyFromJSON decodes a JSON policy document.
func PolicyFromJSON(payload []byte) (Policy, error) {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Policy{}, fmt.Errorf("at: decode policy json: %w", err)
	}
	return decodePolicy(policy.Context{Source: "json"}, doc)
}

func decodePolicy(ctx policy.Context, doc map[string]any) (Policy, error) {
	decoder := policy.NewDecoder[Policy](
		policy.WithDisallowUnknownFields[Policy](),
		policy.WithPostHook[Policy](func(_ policy.Context, p *Policy) error {
			return p.validate()
		}),
	)
	return decoder.Decode(ctx, doc)
}

func (p Policy) validate() error {
	switch p.Engine {
	case "", "expr", "cel":
		return nil
	case "js":
		if !jsResolverAvailable() {
			return fmt.Errorf("at: js resolver unavailable in this build")
		}
		return nil
	default:
		return fmt.Errorf("at: unknown resolver engine %q", p.Engine)
	}
}

// Options converts the policy into Accessor options.
func (p Policy) Options() ([]Option, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	var opts []Option
	if p.IndexFallback != nil && !*p.IndexFallback {
		opts = append(opts, WithoutIndexFallback())
	}
	if p.AuditChannel != "" {
		opts = append(opts, WithActivityChannel(p.AuditChannel))
	}
	switch p.Engine {
	case "expr":
		opts = append(opts, WithResolver(NewExprResolver()))
	case "cel":
		opts = append(opts, WithResolver(NewCELResolver()))
	case "js":
		opts = append(opts, WithResolver(NewJSResolver()))
	}
	return opts, nil
}
