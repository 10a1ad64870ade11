package deviceinfo

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrMalformedWarnings is returned when warnings are neither a scalar, a sequence nor a set
var ErrMalformedWarnings = errors.New("malformed warnings value")

type warningsKind int

const (
	warningsNone warningsKind = iota
	warningsSingle
	warningsMany
)

// Warnings is the normalized shape of a reported warnings value:
// nothing, a single message or an ordered list of messages.
type Warnings struct {
	kind   warningsKind
	single string
	many   []string
}

func NoWarnings() Warnings { return Warnings{} }

func SingleWarning(msg string) Warnings {
	return Warnings{kind: warningsSingle, single: msg}
}

func ManyWarnings(msgs ...string) Warnings {
	return Warnings{kind: warningsMany, many: msgs}
}

// Messages returns warnings in order, skipping empty ones
func (w Warnings) Messages() []string {
	switch w.kind {
	case warningsSingle:
		if w.single == "" {
			return nil
		}
		return []string{w.single}
	case warningsMany:
		var res []string
		for _, m := range w.many {
			if m != "" {
				res = append(res, m)
			}
		}
		return res
	}
	return nil
}

// ParseWarnings converts a loosely typed warnings value into Warnings.
// Falsy values (nil, "", false, 0, empty collections) mean no warnings, and so do falsy
// elements of a sequence. Sets (map[string]struct{} or map[string]bool) are read in sorted order.
// Any other mapping, struct, func or chan is rejected with ErrMalformedWarnings.
func ParseWarnings(v any) (Warnings, error) {
	if isFalsy(v) {
		return NoWarnings(), nil
	}

	switch t := v.(type) {
	case string:
		return SingleWarning(t), nil
	case []string:
		return ManyWarnings(t...), nil
	case map[string]struct{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return ManyWarnings(keys...), nil
	case map[string]bool:
		keys := make([]string, 0, len(t))
		for k, ok := range t {
			if ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		return ManyWarnings(keys...), nil
	case fmt.Stringer, error:
		return SingleWarning(fmt.Sprint(t)), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		msgs := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if isFalsy(elem) {
				continue
			}
			msgs = append(msgs, fmt.Sprint(elem))
		}
		return ManyWarnings(msgs...), nil
	case reflect.Map, reflect.Struct, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return NoWarnings(), fmt.Errorf("%w: unsupported type %T", ErrMalformedWarnings, v)
	case reflect.Pointer, reflect.Interface:
		return ParseWarnings(rv.Elem().Interface())
	}
	return SingleWarning(fmt.Sprint(v)), nil
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Struct:
		return false
	}
	return rv.IsZero()
}
