package registry

import (
	"slices"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goliatone/go-arctree/worldgen"
	"github.com/goliatone/go-errors"
)

// ParamTag is the struct tag read when decoding factory parameters.
const ParamTag = "koanf"

// Factory creates a value from decoded definition parameters.
type Factory[T any] func(params map[string]any) (T, error)

// Types is a registry of factories for one kind of worldgen value. Safe for concurrent use.
type Types[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[worldgen.Identifier]Factory[T]
}

// NewTypes returns an empty registry. kind names the registry in errors, e.g. "trunk_placer".
func NewTypes[T any](kind string) *Types[T] {
	return &Types[T]{
		kind:      kind,
		factories: map[worldgen.Identifier]Factory[T]{},
	}
}

// Kind returns the registry name.
func (t *Types[T]) Kind() string {
	return t.kind
}

// Register adds a factory under id.
func (t *Types[T]) Register(id worldgen.Identifier, factory Factory[T]) error {
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid type identifier").
			WithTextCode("INVALID_IDENTIFIER").
			WithMetadata(map[string]any{"kind": t.kind})
	}
	if factory == nil {
		return errors.New("factory cannot be nil", errors.CategoryBadInput).
			WithTextCode("NIL_FACTORY").
			WithMetadata(map[string]any{"kind": t.kind, "type": id.String()})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.factories[id]; exists {
		return errors.New("type already registered", errors.CategoryValidation).
			WithTextCode("DUPLICATE_TYPE").
			WithMetadata(map[string]any{"kind": t.kind, "type": id.String()})
	}
	t.factories[id] = factory
	return nil
}

// MustRegister is Register that panics. Used for built-ins.
func (t *Types[T]) MustRegister(id worldgen.Identifier, factory Factory[T]) {
	if err := t.Register(id, factory); err != nil {
		panic(err)
	}
}

// Has reports whether id is registered.
func (t *Types[T]) Has(id worldgen.Identifier) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.factories[id]
	return ok
}

// IDs lists the registered identifiers sorted by their string form.
func (t *Types[T]) IDs() []worldgen.Identifier {
	t.mu.RLock()
	ids := make([]worldgen.Identifier, 0, len(t.factories))
	for id := range t.factories {
		ids = append(ids, id)
	}
	t.mu.RUnlock()
	slices.SortFunc(ids, func(a, b worldgen.Identifier) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

// Create runs the factory registered under id.
func (t *Types[T]) Create(id worldgen.Identifier, params map[string]any) (T, error) {
	var zero T

	t.mu.RLock()
	factory, ok := t.factories[id]
	t.mu.RUnlock()
	if !ok {
		return zero, errors.New("unknown type", errors.CategoryValidation).
			WithTextCode("UNKNOWN_TYPE").
			WithMetadata(map[string]any{
				"kind":  t.kind,
				"type":  id.String(),
				"known": idStrings(t.IDs()),
			})
	}

	value, err := factory(params)
	if err != nil {
		return zero, errors.Wrap(err, errors.CategoryValidation, "failed to create "+t.kind).
			WithTextCode("TYPE_CREATE_FAILED").
			WithMetadata(map[string]any{"kind": t.kind, "type": id.String()})
	}
	return value, nil
}

func idStrings(ids []worldgen.Identifier) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// Decode builds a Factory that decodes the parameters into P and converts the result.
func Decode[P any, T any](convert func(P) (T, error)) Factory[T] {
	return func(params map[string]any) (T, error) {
		var p P
		if err := DecodeParams(params, &p); err != nil {
			var zero T
			return zero, err
		}
		return convert(p)
	}
}

// DecodeParams decodes params into target. Keys match fields by ParamTag or, without a tag,
// by the field name ignoring case and underscores ("base_height" fills BaseHeight).
// Unknown keys are an error.
func DecodeParams(params map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          ParamTag,
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		MatchName:        matchParamName,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(params)
}

func matchParamName(key, field string) bool {
	return strings.EqualFold(strings.ReplaceAll(key, "_", ""), strings.ReplaceAll(field, "_", ""))
}
