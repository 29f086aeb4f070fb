package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	stageLoad     = "load"
	stageSolve    = "solve"
	stageDecode   = "decode"
	stageValidate = "validate"
	stageCompile  = "compile"
)

var (
	// ErrLoad wraps provider failures while layering sources.
	ErrLoad = errors.New("catalog: load stage failed")
	// ErrSolve wraps solver panics.
	ErrSolve = errors.New("catalog: solve stage failed")
	// ErrDecode wraps mapstructure decode failures.
	ErrDecode = errors.New("catalog: decode stage failed")
	// ErrValidate wraps document validation failures.
	ErrValidate = errors.New("catalog: validate stage failed")
	// ErrCompile wraps failures turning a definition into a tree configuration.
	ErrCompile = errors.New("catalog: compile stage failed")
)

// StageError reports the stage that failed together with contextual metadata.
type StageError struct {
	Stage string
	Base  error
	Err   error
	Meta  map[string]any
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches either the stage sentinel or the wrapped error.
func (e *StageError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if errors.Is(e.Base, target) {
		return true
	}
	return errors.Is(e.Err, target)
}

func stageError(stage string, base, err error, meta map[string]any) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Base: base, Err: err, Meta: meta}
}

var (
	optionalBoolType    = reflect.TypeOf(OptionalBool{})
	optionalBoolPtrType = reflect.TypeOf(&OptionalBool{})
	typedSpecType       = reflect.TypeOf(TypedSpec{})
)

// decodeDocument decodes the merged store into a Document.
func decodeDocument(raw map[string]any, strict bool) (*Document, error) {
	doc := &Document{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "koanf",
		Result:           doc,
		WeaklyTypedInput: true,
		ErrorUnused:      strict,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			optionalBoolHook(),
			typedSpecHook(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return doc, nil
}

// optionalBoolHook accepts booleans, bool-like strings and OptionalBool values.
// Empty strings, "null" and empty maps decode as unset.
func optionalBoolHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != optionalBoolType && to != optionalBoolPtrType {
			return data, nil
		}

		ob := &OptionalBool{}
		switch v := data.(type) {
		case nil:
		case OptionalBool:
			ob = cloneOptionalBool(&v)
		case *OptionalBool:
			if v != nil {
				ob = cloneOptionalBool(v)
			}
		case bool:
			ob.Set(v)
		case string:
			if err := ob.UnmarshalText([]byte(v)); err != nil {
				return nil, err
			}
		case map[string]any:
			if len(v) > 0 {
				return nil, fmt.Errorf("optional bool: unexpected map value %v", v)
			}
		default:
			return data, nil
		}

		if to == optionalBoolPtrType {
			return ob, nil
		}
		return *ob, nil
	}
}

// typedSpecHook expands the string shorthand "type" into {type: "type"}.
func typedSpecHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != typedSpecType || from.Kind() != reflect.String {
			return data, nil
		}
		return TypedSpec{Type: strings.TrimSpace(reflect.ValueOf(data).String())}, nil
	}
}
