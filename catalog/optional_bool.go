package catalog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/copystructure"
)

func init() {
	copystructure.Copiers[reflect.TypeOf(OptionalBool{})] = func(v any) (any, error) {
		return v.(OptionalBool), nil
	}
	copystructure.Copiers[reflect.TypeOf(&OptionalBool{})] = func(v any) (any, error) {
		ob, _ := v.(*OptionalBool)
		return cloneOptionalBool(ob), nil
	}
}

// OptionalBool is a tree flag that may be left to lower definition layers.
// The zero value is unset.
type OptionalBool struct {
	set   bool
	value bool
}

func NewOptionalBool(value bool) *OptionalBool {
	return &OptionalBool{set: true, value: value}
}

func (ob *OptionalBool) Set(v bool) {
	if ob != nil {
		*ob = OptionalBool{set: true, value: v}
	}
}

// IsSet reports whether some layer supplied the flag.
func (ob *OptionalBool) IsSet() bool { return ob != nil && ob.set }

// Value is false when unset.
func (ob *OptionalBool) Value() bool { return ob.IsSet() && ob.value }

var boolSpellings = map[string]bool{
	"y": true, "yes": true, "on": true,
	"n": false, "no": false, "off": false,
}

// UnmarshalText reads env and flag spellings of a flag; "" and "null" clear it.
func (ob *OptionalBool) UnmarshalText(text []byte) error {
	if ob == nil {
		return fmt.Errorf("optional bool: nil receiver")
	}
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if s == "" || s == "null" {
		*ob = OptionalBool{}
		return nil
	}
	if v, ok := boolSpellings[s]; ok {
		ob.Set(v)
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("optional bool: %q is not a boolean", s)
	}
	ob.Set(v)
	return nil
}

func cloneOptionalBool(ob *OptionalBool) *OptionalBool {
	if ob == nil {
		return nil
	}
	c := *ob
	return &c
}
