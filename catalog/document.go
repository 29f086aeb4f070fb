package catalog

import (
	"sort"
	"strings"

	"github.com/goliatone/go-arctree/worldgen"
	"github.com/goliatone/go-errors"
)

// DefaultNamespace qualifies tree keys written without a namespace.
const DefaultNamespace = "arctree"

// Document is the decoded form of every merged definition source.
type Document struct {
	Namespace string                `koanf:"namespace"`
	Trees     map[string]Definition `koanf:"trees"`
}

// Definition declares one tree. Nil or empty-typed parts are left to the builder,
// which either applies its default or reports the field as missing. A supplied
// spawn chance is always forwarded, so 0 is rejected rather than defaulted.
type Definition struct {
	Trunk                    *TypedSpec   `koanf:"trunk"`
	Foliage                  *TypedSpec   `koanf:"foliage"`
	Sapling                  *TypedSpec   `koanf:"sapling"`
	TrunkPlacer              *TypedSpec   `koanf:"trunk_placer"`
	FoliagePlacer            *TypedSpec   `koanf:"foliage_placer"`
	MinimumSize              *TypedSpec   `koanf:"minimum_size"`
	Decorators               []TypedSpec  `koanf:"decorators"`
	Dirt                     *TypedSpec   `koanf:"dirt"`
	IgnoreVines              OptionalBool `koanf:"ignore_vines"`
	ForceDirt                OptionalBool `koanf:"force_dirt"`
	SpawnChance              *int         `koanf:"spawn_chance"`
	Modifiers                []TypedSpec  `koanf:"modifiers"`
	OverrideDefaultModifiers OptionalBool `koanf:"override_default_modifiers"`
	Selector                 *TypedSpec   `koanf:"selector"`
}

// TypedSpec names a registered type and the parameters handed to its factory.
type TypedSpec struct {
	Type   string         `koanf:"type"`
	Params map[string]any `koanf:"params"`
}

// Spec is shorthand for a TypedSpec literal.
func Spec(typ string, params map[string]any) *TypedSpec {
	return &TypedSpec{Type: typ, Params: params}
}

func (s *TypedSpec) present() bool {
	return s != nil && strings.TrimSpace(s.Type) != ""
}

func (d *Document) namespace() string {
	if d.Namespace == "" {
		return DefaultNamespace
	}
	return d.Namespace
}

// Identifier resolves a tree key against the document namespace.
func (d *Document) Identifier(key string) (worldgen.Identifier, error) {
	return worldgen.ParseIdentifierIn(d.namespace(), key)
}

// Keys returns the tree keys in lexical order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Trees))
	for key := range d.Trees {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the namespace and that every key resolves to a distinct identifier.
func (d *Document) Validate() error {
	if d.Namespace != "" {
		if err := worldgen.ID(d.Namespace, "tree").Validate(); err != nil {
			return errors.Wrap(err, errors.CategoryValidation, "invalid document namespace").
				WithTextCode("INVALID_NAMESPACE").
				WithMetadata(map[string]any{"namespace": d.Namespace})
		}
	}

	seen := make(map[worldgen.Identifier]string, len(d.Trees))
	for _, key := range d.Keys() {
		id, err := d.Identifier(key)
		if err != nil {
			return errors.Wrap(err, errors.CategoryValidation, "invalid tree identifier").
				WithTextCode("INVALID_TREE_ID").
				WithMetadata(map[string]any{"key": key})
		}
		if other, ok := seen[id]; ok {
			return errors.New("tree declared twice", errors.CategoryValidation).
				WithTextCode("DUPLICATE_TREE").
				WithMetadata(map[string]any{"id": id.String(), "keys": []string{other, key}})
		}
		seen[id] = key
	}
	return nil
}
