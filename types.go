package at

import (
	"github.com/goliatone/go-at/pkg/activity"
)

// Feature identifies the revision of the checked-access facility so consuming
// code can gate on its presence at compile time.
const Feature = 1

// Strategy identifies how an access request was (or would be) satisfied.
type Strategy int

const (
	// StrategyNone means no viable strategy exists for the request.
	StrategyNone Strategy = iota
	// StrategyChecked forwards to the collection's own checked-access method.
	StrategyChecked
	// StrategyIndexLen bounds-checks against Len() before calling Index().
	StrategyIndexLen
	// StrategyNative indexes Go arrays, slices, strings, and maps directly.
	StrategyNative
)

func (s Strategy) String() string {
	switch s {
	case StrategyChecked:
		return "checked"
	case StrategyIndexLen:
		return "index+len"
	case StrategyNative:
		return "native"
	default:
		return "none"
	}
}

// Checked is satisfied by collections exposing their own checked access. The
// dispatcher always prefers it over the generic fallbacks because the method
// may encode domain knowledge the fallbacks cannot infer: non-zero start
// positions, sparse domains, multi-coordinate addressing.
type Checked[E any] interface {
	At(index int) (E, error)
}

// Unchecked is satisfied by collections exposing an unchecked index operation
// plus a size query. The valid domain is assumed to be the half-open range
// [0, Len()); collections with a different domain must implement their own
// checked access instead.
type Unchecked[E any] interface {
	Index(i int) E
	Len() int
}

// Accessor dispatches element access requests across the available
// strategies. The zero configuration enables every strategy.
type Accessor struct {
	cfg accessorConfig
}

// Option configures an Accessor.
type Option func(*accessorConfig)

type accessorConfig struct {
	disableIndexFallback bool
	resolver             Resolver
	programCache         ProgramCache
	functions            *FunctionRegistry
	logger               AccessLogger
	activityHooks        activity.Hooks
	activityChannel      string
	emitter              *activity.Emitter
}

func applyOptions(opts []Option) accessorConfig {
	cfg := accessorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithoutIndexFallback disables the Index+Len strategy. The fallback assumes
// a zero-based integral domain it cannot verify, and an unqualified literal
// argument may resolve to it instead of a differently-typed user method;
// callers that consider that hazard unacceptable can switch the strategy off.
func WithoutIndexFallback() Option {
	return func(cfg *accessorConfig) {
		cfg.disableIndexFallback = true
	}
}

// WithResolver configures the index-expression resolver used by GetExpr.
func WithResolver(r Resolver) Option {
	return func(cfg *accessorConfig) {
		cfg.resolver = r
	}
}

// WithFunctionRegistry registers custom functions callable from index
// expressions. The registry is cloned to preserve immutability.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *accessorConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

func (a *Accessor) config() accessorConfig {
	if a == nil {
		return accessorConfig{}
	}
	return a.cfg
}

func (a *Accessor) accessLogger() AccessLogger {
	if a != nil && a.cfg.logger != nil {
		return a.cfg.logger
	}
	return noopAccessLogger{}
}

func (a *Accessor) functionRegistry() *FunctionRegistry {
	if a == nil {
		return nil
	}
	return a.cfg.functions
}
