package at

import (
	"math"
	"reflect"
)

// checkedMethodName is the method probed for a collection's own checked
// access. A method of this name declared on the collection type wins over
// every generic strategy, the method-set analogue of argument-dependent
// lookup in the facility this package generalises.
const checkedMethodName = "At"

const (
	indexMethodName = "Index"
	sizeMethodName  = "Len"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// dispatch selects exactly one strategy for the request and executes it.
func dispatch(cfg accessorConfig, collection any, indices []any) (any, Strategy, error) {
	rv := reflect.ValueOf(collection)
	if !rv.IsValid() || len(indices) == 0 {
		return nil, StrategyNone, notIndexable(collection, indices)
	}

	if method, args, ok := checkedMethod(rv, indices); ok {
		value, err := callChecked(method, args)
		return value, StrategyChecked, err
	}

	// The generic fallbacks are defined for a single index only;
	// multi-coordinate requests must be satisfied by the collection itself.
	if len(indices) != 1 {
		return nil, StrategyNone, notIndexable(collection, indices)
	}

	if !cfg.disableIndexFallback {
		if value, viable, err := indexLenAccess(rv, indices[0]); viable {
			return value, StrategyIndexLen, err
		}
	}

	if value, viable, err := nativeAccess(rv, indices[0]); viable {
		return value, StrategyNative, err
	}

	return nil, StrategyNone, notIndexable(collection, indices)
}

// selectStrategy reports the strategy dispatch would pick, without invoking
// any collection operation.
func selectStrategy(cfg accessorConfig, collection any, indices []any) Strategy {
	rv := reflect.ValueOf(collection)
	if !rv.IsValid() || len(indices) == 0 {
		return StrategyNone
	}
	if _, _, ok := checkedMethod(rv, indices); ok {
		return StrategyChecked
	}
	if len(indices) != 1 {
		return StrategyNone
	}
	if !cfg.disableIndexFallback {
		if _, _, ok := indexLenCapability(rv); ok {
			if _, integral := toIndex(indices[0]); integral {
				return StrategyIndexLen
			}
		}
	}
	if nativeViable(rv, indices[0]) {
		return StrategyNative
	}
	return StrategyNone
}

// methodByName resolves a method on the value, probing an addressable copy so
// pointer-receiver methods are found when the collection arrives by value.
func methodByName(rv reflect.Value, name string) reflect.Value {
	if method := rv.MethodByName(name); method.IsValid() {
		return method
	}
	if rv.Kind() != reflect.Pointer {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		if method := ptr.MethodByName(name); method.IsValid() {
			return method
		}
	}
	return reflect.Value{}
}

// checkedMethod reports whether the collection's own checked access accepts
// the given index arguments. The method must return the element, optionally
// followed by an error.
func checkedMethod(rv reflect.Value, indices []any) (reflect.Value, []reflect.Value, bool) {
	method := methodByName(rv, checkedMethodName)
	if !method.IsValid() {
		return reflect.Value{}, nil, false
	}
	mt := method.Type()
	switch mt.NumOut() {
	case 1:
	case 2:
		if mt.Out(1) != errType {
			return reflect.Value{}, nil, false
		}
	default:
		return reflect.Value{}, nil, false
	}
	args, ok := conformArgs(mt, indices)
	if !ok {
		return reflect.Value{}, nil, false
	}
	return method, args, true
}

// conformArgs matches index arguments against the method signature, allowing
// integer kind conversions but nothing lossier.
func conformArgs(mt reflect.Type, indices []any) ([]reflect.Value, bool) {
	if mt.IsVariadic() {
		if len(indices) < mt.NumIn()-1 {
			return nil, false
		}
	} else if len(indices) != mt.NumIn() {
		return nil, false
	}
	args := make([]reflect.Value, 0, len(indices))
	for i, index := range indices {
		var want reflect.Type
		if mt.IsVariadic() && i >= mt.NumIn()-1 {
			want = mt.In(mt.NumIn() - 1).Elem()
		} else {
			want = mt.In(i)
		}
		value, ok := conformValue(index, want)
		if !ok {
			return nil, false
		}
		args = append(args, value)
	}
	return args, true
}

func conformValue(index any, want reflect.Type) (reflect.Value, bool) {
	if index == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			return reflect.Zero(want), true
		default:
			return reflect.Value{}, false
		}
	}
	av := reflect.ValueOf(index)
	switch {
	case av.Type().AssignableTo(want):
		return av, true
	case isIntegerKind(av.Kind()) && isIntegerKind(want.Kind()):
		return convertInteger(av, want)
	default:
		return reflect.Value{}, false
	}
}

// convertInteger narrows an integer argument to the target type only when the
// value survives unchanged. A conversion that would truncate or flip sign
// forwards a different index than the caller supplied, so the conform step
// fails instead.
func convertInteger(av reflect.Value, want reflect.Type) (reflect.Value, bool) {
	probe := reflect.Zero(want)
	if isSignedKind(av.Kind()) {
		v := av.Int()
		if isSignedKind(want.Kind()) {
			if probe.OverflowInt(v) {
				return reflect.Value{}, false
			}
		} else if v < 0 || probe.OverflowUint(uint64(v)) {
			return reflect.Value{}, false
		}
	} else {
		u := av.Uint()
		if isSignedKind(want.Kind()) {
			if u > math.MaxInt64 || probe.OverflowInt(int64(u)) {
				return reflect.Value{}, false
			}
		} else if probe.OverflowUint(u) {
			return reflect.Value{}, false
		}
	}
	return av.Convert(want), true
}

// callChecked forwards to the collection's method. Its failure behaviour,
// error values and panics alike, passes through unmodified.
func callChecked(method reflect.Value, args []reflect.Value) (any, error) {
	out := method.Call(args)
	if len(out) == 2 {
		var err error
		if !out[1].IsNil() {
			err = out[1].Interface().(error)
		}
		return out[0].Interface(), err
	}
	return out[0].Interface(), nil
}

// indexLenCapability reports whether the type carries an unchecked index
// operation plus a size query of the expected shapes.
func indexLenCapability(rv reflect.Value) (reflect.Value, reflect.Value, bool) {
	index := methodByName(rv, indexMethodName)
	size := methodByName(rv, sizeMethodName)
	if !index.IsValid() || !size.IsValid() {
		return reflect.Value{}, reflect.Value{}, false
	}
	it := index.Type()
	if it.IsVariadic() || it.NumIn() != 1 || it.NumOut() != 1 || !isIntegerKind(it.In(0).Kind()) {
		return reflect.Value{}, reflect.Value{}, false
	}
	st := size.Type()
	if st.NumIn() != 0 || st.NumOut() != 1 || st.Out(0).Kind() != reflect.Int {
		return reflect.Value{}, reflect.Value{}, false
	}
	return index, size, true
}

// indexLenAccess performs the bounds-checked fallback. The fallback is
// restricted to integral, zero-based indices; anything else is left for the
// remaining strategies. On a failed bounds check the unchecked operation is
// never invoked.
func indexLenAccess(rv reflect.Value, index any) (any, bool, error) {
	indexMethod, sizeMethod, ok := indexLenCapability(rv)
	if !ok {
		return nil, false, nil
	}
	i, ok := toIndex(index)
	if !ok {
		return nil, false, nil
	}
	length := int(sizeMethod.Call(nil)[0].Int())
	if i < 0 || i >= length {
		return nil, true, rangeError(index, length, StrategyIndexLen)
	}
	arg, ok := convertInteger(reflect.ValueOf(i), indexMethod.Type().In(0))
	if !ok {
		return nil, false, nil
	}
	return indexMethod.Call([]reflect.Value{arg})[0].Interface(), true, nil
}

// nativeAccess indexes Go's built-in indexable kinds. For maps a missing key
// is an out-of-range condition rather than a zero value.
func nativeAccess(rv reflect.Value, index any) (any, bool, error) {
	rv = derefNative(rv)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice, reflect.String:
		i, ok := toIndex(index)
		if !ok {
			return nil, false, nil
		}
		length := rv.Len()
		if i < 0 || i >= length {
			return nil, true, rangeError(index, length, StrategyNative)
		}
		return rv.Index(i).Interface(), true, nil
	case reflect.Map:
		key, ok := conformValue(index, rv.Type().Key())
		if !ok {
			return nil, false, nil
		}
		element := rv.MapIndex(key)
		if !element.IsValid() {
			return nil, true, rangeError(index, rv.Len(), StrategyNative)
		}
		return element.Interface(), true, nil
	default:
		return nil, false, nil
	}
}

func nativeViable(rv reflect.Value, index any) bool {
	rv = derefNative(rv)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice, reflect.String:
		_, ok := toIndex(index)
		return ok
	case reflect.Map:
		_, ok := conformValue(index, rv.Type().Key())
		return ok
	default:
		return false
	}
}

// derefNative follows one level of indirection so pointers to native
// collections dispatch like the collections themselves.
func derefNative(rv reflect.Value) reflect.Value {
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem()
	}
	return rv
}

// toIndex narrows an index argument to int. Unsigned values beyond the int
// range are clamped so they fail the bounds check instead of wrapping.
func toIndex(index any) (int, bool) {
	if index == nil {
		return 0, false
	}
	rv := reflect.ValueOf(index)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return math.MaxInt, true
		}
		return int(u), true
	default:
		return 0, false
	}
}

func isIntegerKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isSignedKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}
