//go:build js_eval

package at

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsResolver struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewJSResolver constructs a Resolver backed by goja.
func NewJSResolver(opts ...JSResolverOption) Resolver {
	cfg := applyJSResolverOptions(opts)
	return &jsResolver{
		cache:    cfg.cache,
		registry: cfg.registry,
	}
}

func (r *jsResolver) Resolve(ctx ResolveContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaults()
	if r.cache == nil {
		return r.run(ctx, expression, nil)
	}
	program, err := r.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, expression, program)
}

func (r *jsResolver) Compile(expression string) (CompiledIndex, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := r.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &jsCompiledIndex{
		resolver:   r,
		expression: expression,
		program:    program,
	}, nil
}

func (r *jsResolver) loadOrCompile(expression string) (*goja.Program, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", r.wrapExpression(expression), false)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		r.cache.Set(expression, program)
	}
	return program, nil
}

func (r *jsResolver) run(ctx ResolveContext, expression string, program *goja.Program) (any, error) {
	vm := goja.New()
	r.injectContext(vm, ctx)
	if program != nil {
		value, err := vm.RunProgram(program)
		if err != nil {
			return nil, err
		}
		return value.Export(), nil
	}
	value, err := vm.RunString(r.wrapExpression(expression))
	if err != nil {
		return nil, err
	}
	return value.Export(), nil
}

func (r *jsResolver) injectContext(vm *goja.Runtime, ctx ResolveContext) {
	vm.Set("size", ctx.Size)
	vm.Set("length", ctx.Size)
	vm.Set("now", ctx.timestamp())
	vm.Set("args", ctx.Args)
	if r.registry != nil {
		vm.Set("call", func(name string, arguments ...any) (any, error) {
			return r.registry.Call(name, arguments...)
		})
		for _, name := range r.registry.Names() {
			fn := name
			vm.Set(fn, func(arguments ...any) (any, error) {
				return r.registry.Call(fn, arguments...)
			})
		}
	}
}

func (r *jsResolver) wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledIndex struct {
	resolver   *jsResolver
	expression string
	program    *goja.Program
}

func (c *jsCompiledIndex) Resolve(ctx ResolveContext) (any, error) {
	if c.resolver == nil {
		return nil, fmt.Errorf("js compiled index missing resolver")
	}
	ctx = ctx.withDefaults()
	return c.resolver.run(ctx, c.expression, c.program)
}

func jsResolverAvailable() bool {
	return true
}

func jsResolverName(r Resolver) string {
	if _, ok := r.(*jsResolver); ok {
		return "js"
	}
	return ""
}
