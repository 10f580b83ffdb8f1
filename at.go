// Package at provides generic, range-checked element access over arbitrary
// collections. Each request is satisfied by exactly one strategy, chosen in a
// fixed precedence order: a collection's own checked-access method, then a
// bounds check against Len() before the unchecked Index() operation, then
// native indexing of Go arrays, slices, strings, and maps. A collection that
// satisfies none of the capabilities yields ErrNotIndexable.
package at

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-at/pkg/activity"
)

// New constructs an Accessor with the supplied configuration.
func New(opts ...Option) *Accessor {
	cfg := applyOptions(opts)
	cfg.emitter = activity.NewEmitter(cfg.activityHooks, activity.Config{
		Enabled: cfg.activityHooks.Enabled(),
		Channel: cfg.activityChannel,
	})
	return &Accessor{cfg: cfg}
}

var defaultAccessor = New()

// Get dispatches the access request through the default Accessor.
func Get(collection any, indices ...any) (any, error) {
	return defaultAccessor.Get(collection, indices...)
}

// MustGet is Get that panics on failure. It is a convenience for callers that
// treat an out-of-range access as unrecoverable; environments that disallow
// panics must use Get instead.
func MustGet(collection any, indices ...any) any {
	value, err := defaultAccessor.Get(collection, indices...)
	if err != nil {
		panic(err)
	}
	return value
}

// GetExpr resolves expression into index arguments and dispatches through the
// default Accessor.
func GetExpr(collection any, expression string) (any, error) {
	return defaultAccessor.GetExpr(collection, expression)
}

// Explain reports the strategy the default Accessor would select, without
// touching any element.
func Explain(collection any, indices ...any) Decision {
	return defaultAccessor.Explain(collection, indices...)
}

// Get returns the element of collection located by the index arguments.
//
// Failures raised by the dispatcher itself (the Index+Len and native
// strategies) unwrap to ErrOutOfRange. Failures produced by a collection's
// own checked-access method pass through unmodified, whatever their type.
func (a *Accessor) Get(collection any, indices ...any) (any, error) {
	start := time.Now()
	value, strategy, err := dispatch(a.config(), collection, indices)
	duration := time.Since(start)
	a.accessLogger().LogAccess(AccessLogEvent{
		Collection: fmt.Sprintf("%T", collection),
		Indices:    describeIndices(indices),
		Strategy:   strategy,
		Duration:   duration,
		Err:        err,
	})
	a.emitAccess(collection, indices, strategy, err)
	return value, err
}

// GetExpr resolves expression against the collection's environment (size,
// registered functions) and dispatches the resulting index arguments. An
// expression that yields a list is treated as a multi-dimensional index set.
func (a *Accessor) GetExpr(collection any, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	resolver, err := a.resolveResolver()
	if err != nil {
		return nil, err
	}
	rctx := ResolveContext{Collection: collection}.withDefaults()
	engine := resolverEngineName(resolver)
	start := time.Now()
	value, resolveErr := resolver.Resolve(rctx, expression)
	duration := time.Since(start)
	resolveErr = wrapResolveError(engine, expression, resolveErr)
	a.accessLogger().LogAccess(AccessLogEvent{
		Collection: fmt.Sprintf("%T", collection),
		Expr:       expression,
		Engine:     engine,
		Duration:   duration,
		Err:        resolveErr,
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	return a.Get(collection, indexArguments(value)...)
}

func (a *Accessor) resolveResolver() (Resolver, error) {
	if a != nil && a.cfg.resolver != nil {
		return a.cfg.resolver, nil
	}
	var exprOpts []ExprResolverOption
	if a != nil && a.cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(a.cfg.programCache))
	}
	if registry := a.functionRegistry(); registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	resolver := NewExprResolver(exprOpts...)
	if resolver == nil {
		return nil, ErrNoResolver
	}
	if a != nil {
		a.cfg.resolver = resolver
	}
	return resolver, nil
}

// indexArguments turns a resolved expression value into index arguments. A
// []any result addresses multiple coordinates; anything else is one index.
func indexArguments(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{value}
}

func describeIndices(indices []any) []string {
	if len(indices) == 0 {
		return nil
	}
	described := make([]string, 0, len(indices))
	for _, index := range indices {
		described = append(described, fmt.Sprintf("%v", index))
	}
	return described
}

// WithActivityHooks attaches audit hooks to the Accessor. Hooks are cloned
// and nil entries dropped to preserve immutability.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *accessorConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel sets the channel stamped on audit events that carry
// none of their own. Events default to the "access" channel.
func WithActivityChannel(channel string) Option {
	return func(cfg *accessorConfig) {
		cfg.activityChannel = channel
	}
}

// ActivityHooks returns a cloned slice of the audit hooks configured on the
// Accessor. The returned slice can be safely mutated by the caller.
func (a *Accessor) ActivityHooks() activity.Hooks {
	if a == nil {
		return nil
	}
	return cloneActivityHooks(a.cfg.activityHooks)
}

// emitAccess fans an audit event out through the configured emitter, which
// applies the channel default. Auditing is best effort: hook failures never
// affect the access result.
func (a *Accessor) emitAccess(collection any, indices []any, strategy Strategy, accessErr error) {
	if a == nil || !a.cfg.emitter.Enabled() {
		return
	}
	input := activity.AccessEventInput{
		Collection: fmt.Sprintf("%T", collection),
		Indices:    describeIndices(indices),
		Strategy:   strategy.String(),
	}
	event := activity.BuildAccessEvent(input)
	if accessErr != nil {
		input.Reason = accessErr.Error()
		event = activity.BuildAccessDeniedEvent(input)
	}
	_ = a.cfg.emitter.Emit(context.Background(), event)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
