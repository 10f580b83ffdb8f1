package at

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELResolverOption configures the CEL resolver.
type CELResolverOption func(*celResolver)

// CELWithProgramCache wires a ProgramCache into the CEL resolver.
func CELWithProgramCache(cache ProgramCache) CELResolverOption {
	return func(r *celResolver) {
		r.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL resolver.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELResolverOption {
	return func(r *celResolver) {
		if registry == nil {
			return
		}
		r.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celResolver struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELResolver constructs a Resolver backed by cel-go.
func NewCELResolver(opts ...CELResolverOption) Resolver {
	r := &celResolver{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *celResolver) Resolve(ctx ResolveContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaults()
	program, err := r.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(r.activation(ctx))
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func (r *celResolver) Compile(expression string) (CompiledIndex, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	return &celCompiledIndex{
		resolver:   r,
		expression: expression,
	}, nil
}

func (r *celResolver) loadOrCompile(expression string) (*celProgram, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := r.buildEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if r.cache != nil {
		r.cache.Set(expression, bundle)
	}
	return bundle, nil
}

func (r *celResolver) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("size", celgo.IntType),
		celgo.Variable("length", celgo.IntType),
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
	}
	if r.registry != nil {
		// CEL has no variadic declarations; "call" is declared at a few
		// fixed arities sharing one binding.
		binding := celgo.FunctionBinding(r.callBinding())
		args := []*celgo.Type{celgo.StringType}
		overloads := make([]celgo.FunctionOpt, 0, 4)
		for i := 0; i < 4; i++ {
			id := fmt.Sprintf("call_dyn_%d", i)
			overloads = append(overloads, celgo.Overload(id, append([]*celgo.Type(nil), args...), celgo.DynType, binding))
			args = append(args, celgo.DynType)
		}
		opts = append(opts, celgo.Function("call", overloads...))
	}
	return celgo.NewEnv(opts...)
}

func (r *celResolver) activation(ctx ResolveContext) map[string]any {
	activation := map[string]any{
		"size":   ctx.Size,
		"length": ctx.Size,
		"now":    ctx.timestamp(),
		"args":   ctx.Args,
	}
	if r.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return r.registry.Call(name, arguments...)
		}
	}
	return activation
}

type celCompiledIndex struct {
	resolver   *celResolver
	expression string
}

func (c *celCompiledIndex) Resolve(ctx ResolveContext) (any, error) {
	if c.resolver == nil {
		return nil, fmt.Errorf("cel compiled index missing resolver")
	}
	ctx = ctx.withDefaults()
	program, err := c.resolver.loadOrCompile(c.expression)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(c.resolver.activation(ctx))
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func (r *celResolver) callBinding() func(...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if r.registry == nil {
			return types.NewErr("at: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("at: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("at: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := r.registry.Call(name, args...)
		if err != nil {
			return types.WrapErr(err)
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
