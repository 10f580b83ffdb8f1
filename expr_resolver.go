package at

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprResolverOption configures an expr resolver instance.
type ExprResolverOption func(*exprResolver)

// ExprWithProgramCache wires a ProgramCache into the expr resolver.
func ExprWithProgramCache(cache ProgramCache) ExprResolverOption {
	return func(r *exprResolver) {
		r.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr resolver.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprResolverOption {
	return func(r *exprResolver) {
		if registry == nil {
			return
		}
		r.registry = registry.Clone()
	}
}

// exprResolver resolves index expressions using github.com/expr-lang/expr.
type exprResolver struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprResolver constructs a Resolver backed by expr-lang/expr. It is the
// default engine when an Accessor has no resolver configured.
func NewExprResolver(opts ...ExprResolverOption) Resolver {
	r := &exprResolver{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve compiles and runs expression against the context environment.
func (r *exprResolver) Resolve(ctx ResolveContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapResolverError("expr", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	env := r.environment(ctx)
	if r.cache == nil {
		result, err := exprlang.Eval(expression, env)
		if err != nil {
			return nil, wrapResolveError("expr", expression, err)
		}
		return result, nil
	}
	program, err := r.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, wrapResolveError("expr", expression, err)
	}
	return result, nil
}

// Compile returns a compiled index program reusable across collections.
func (r *exprResolver) Compile(expression string) (CompiledIndex, error) {
	if expression == "" {
		return nil, wrapResolverError("expr", fmt.Errorf("expression must not be empty"))
	}
	program, err := r.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledIndex{
		resolver:   r,
		program:    program,
		expression: expression,
	}, nil
}

func (r *exprResolver) loadOrCompile(expression string) (*exprvm.Program, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range r.registryNames() {
		fn := r.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapResolveError("expr", expression, err)
	}
	if r.cache != nil {
		r.cache.Set(expression, program)
	}
	return program, nil
}

type exprCompiledIndex struct {
	resolver   *exprResolver
	program    *exprvm.Program
	expression string
}

func (c *exprCompiledIndex) Resolve(ctx ResolveContext) (any, error) {
	if c.resolver == nil {
		return nil, wrapResolverError("expr", fmt.Errorf("compiled index missing resolver"))
	}
	ctx = ctx.withDefaults()
	if c.program == nil {
		return c.resolver.Resolve(ctx, c.expression)
	}
	env := c.resolver.environment(ctx)
	result, err := exprlang.Run(c.program, env)
	if err != nil {
		return nil, wrapResolveError("expr", c.expression, err)
	}
	return result, nil
}

func (r *exprResolver) environment(ctx ResolveContext) map[string]any {
	env := ctx.binding()
	if r.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return r.registry.Call(name, arguments...)
		}
		for _, name := range r.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return r.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (r *exprResolver) registryNames() []string {
	if r == nil || r.registry == nil {
		return nil
	}
	return r.registry.Names()
}

func (r *exprResolver) registryFunction(name string) Function {
	return func(args ...any) (any, error) {
		return r.registry.Call(name, args...)
	}
}
