// Package deepcopy copies the JSON-like values used for configuration data
// and rule parameters (maps, slices, scalars) without sharing structure.
package deepcopy

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// Value returns a copy of v that shares no maps or slices with it. Nil maps
// and slices stay nil.
func Value(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return v
		}
	}
	out, err := copystructure.Copy(v)
	if err != nil {
		// Only channels, funcs and similar values fail to copy, and none of
		// them come out of YAML or HCL.
		panic(fmt.Sprintf("deepcopy: cannot copy %T: %v", v, err))
	}
	return out
}

// Map returns a deep copy of m.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return Value(m).(map[string]any)
}
