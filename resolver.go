package at

import (
	"errors"
	"reflect"
	"time"
)

var ErrNoResolver = errors.New("at: resolver not configured")

// ResolveContext carries inputs needed when resolving an index expression.
type ResolveContext struct {
	Collection any
	// Size is the collection's element count, or -1 when the collection
	// exposes no size query.
	Size int
	Args map[string]any
	Now  *time.Time
}

func (ctx ResolveContext) withDefaults() ResolveContext {
	return ctx.withDefaultSize().withDefaultNow().withDefaultArgs()
}

func (ctx ResolveContext) withDefaultSize() ResolveContext {
	if ctx.Size != 0 {
		return ctx
	}
	if size, ok := sizeOf(ctx.Collection); ok {
		ctx.Size = size
	} else {
		ctx.Size = -1
	}
	return ctx
}

func (ctx ResolveContext) withDefaultNow() ResolveContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx ResolveContext) withDefaultArgs() ResolveContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx ResolveContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

// binding exposes the expression environment shared by every engine.
func (ctx ResolveContext) binding() map[string]any {
	return map[string]any{
		"size":   ctx.Size,
		"length": ctx.Size,
		"args":   ctx.Args,
		"now":    ctx.timestamp(),
	}
}

// Resolver turns an index expression into index arguments. A resolved []any
// addresses multiple coordinates; any other value is a single index.
type Resolver interface {
	Resolve(ctx ResolveContext, expr string) (any, error)
	Compile(expr string) (CompiledIndex, error)
}

// CompiledIndex represents a reusable index-expression program.
type CompiledIndex interface {
	Resolve(ctx ResolveContext) (any, error)
}

// sizeOf queries the collection's element count: a Len() int method when
// present, otherwise the native length of arrays, slices, strings, and maps.
func sizeOf(collection any) (int, bool) {
	rv := reflect.ValueOf(collection)
	if !rv.IsValid() {
		return 0, false
	}
	if size := methodByName(rv, sizeMethodName); size.IsValid() {
		st := size.Type()
		if st.NumIn() == 0 && st.NumOut() == 1 && st.Out(0).Kind() == reflect.Int {
			return int(size.Call(nil)[0].Int()), true
		}
	}
	rv = derefNative(rv)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice, reflect.String, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func resolverEngineName(r Resolver) string {
	if r == nil {
		return "unknown"
	}
	switch r.(type) {
	case *exprResolver:
		return "expr"
	case *celResolver:
		return "cel"
	default:
		if name := jsResolverName(r); name != "" {
			return name
		}
		return "custom"
	}
}
