package catalog

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-arctree/registry"
	"github.com/goliatone/go-arctree/tree"
	"github.com/goliatone/go-arctree/worldgen"
)

// Compiler turns definitions into tree configurations using a TypeSet.
type Compiler struct {
	types *registry.TypeSet
}

// NewCompiler uses types, or the built-in registry.DefaultTypeSet when types is nil.
func NewCompiler(types *registry.TypeSet) *Compiler {
	if types == nil {
		types = registry.DefaultTypeSet()
	}
	return &Compiler{types: types}
}

// Compiled pairs a resolved tree identifier with its configuration.
type Compiled struct {
	ID     worldgen.Identifier
	Config *tree.Config
}

// CompileDocument compiles every tree in identifier order and stops at the first failure.
// The error is a *StageError for the compile stage carrying the tree identifier.
func (c *Compiler) CompileDocument(doc *Document) ([]Compiled, error) {
	if doc == nil {
		return nil, nil
	}
	type entry struct {
		id  worldgen.Identifier
		key string
	}
	entries := make([]entry, 0, len(doc.Trees))
	for key := range doc.Trees {
		id, err := doc.Identifier(key)
		if err != nil {
			return nil, stageError(stageCompile, ErrCompile, err, map[string]any{"key": key})
		}
		entries = append(entries, entry{id: id, key: key})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id.String() < entries[j].id.String()
	})

	out := make([]Compiled, 0, len(entries))
	for _, e := range entries {
		cfg, err := c.Compile(doc.Trees[e.key])
		if err != nil {
			return nil, stageError(stageCompile, ErrCompile, err, map[string]any{"tree": e.id.String()})
		}
		out = append(out, Compiled{ID: e.id, Config: cfg})
	}
	return out, nil
}

// Compile resolves each part of def and builds it. Builder errors such as
// tree.ErrMissingField are returned unchanged.
func (c *Compiler) Compile(def Definition) (*tree.Config, error) {
	b := tree.New()

	providers := []struct {
		field string
		spec  *TypedSpec
		set   func(worldgen.BlockStateProvider) *tree.Builder
	}{
		{tree.FieldTrunkProvider, def.Trunk, b.TrunkProvider},
		{tree.FieldFoliageProvider, def.Foliage, b.FoliageProvider},
		{tree.FieldSaplingProvider, def.Sapling, b.SaplingProvider},
		{tree.FieldDirtProvider, def.Dirt, b.DirtProvider},
	}
	for _, p := range providers {
		if !p.spec.present() {
			continue
		}
		provider, err := c.provider(*p.spec)
		if err != nil {
			return nil, partError(p.field, err)
		}
		p.set(provider)
	}

	if def.TrunkPlacer.present() {
		placer, err := create(c.types.TrunkPlacers, *def.TrunkPlacer)
		if err != nil {
			return nil, partError(tree.FieldTrunkPlacer, err)
		}
		b.TrunkPlacer(placer)
	}
	if def.FoliagePlacer.present() {
		placer, err := create(c.types.FoliagePlacers, *def.FoliagePlacer)
		if err != nil {
			return nil, partError(tree.FieldFoliagePlacer, err)
		}
		b.FoliagePlacer(placer)
	}
	if def.MinimumSize.present() {
		size, err := create(c.types.FeatureSizes, *def.MinimumSize)
		if err != nil {
			return nil, partError(tree.FieldMinimumSize, err)
		}
		b.MinimumSize(size)
	}
	if def.Selector.present() {
		selector, err := create(c.types.Selectors, *def.Selector)
		if err != nil {
			return nil, partError(tree.FieldBiomeSelector, err)
		}
		b.BiomeSelector(selector)
	}

	for i, spec := range def.Decorators {
		d, err := create(c.types.Decorators, spec)
		if err != nil {
			return nil, partError(fmt.Sprintf("%s[%d]", tree.FieldDecorators, i), err)
		}
		b.AddDecorator(d)
	}
	for i, spec := range def.Modifiers {
		m, err := create(c.types.Modifiers, spec)
		if err != nil {
			return nil, partError(fmt.Sprintf("%s[%d]", tree.FieldPlacementModifiers, i), err)
		}
		b.AddPlacementModifier(m)
	}

	if def.IgnoreVines.Value() {
		b.IgnoreVines()
	}
	if def.ForceDirt.Value() {
		b.ForceDirt()
	}
	if def.OverrideDefaultModifiers.Value() {
		b.OverrideDefaultPlacement()
	}
	if def.SpawnChance != nil {
		b.SpawnChance(*def.SpawnChance)
	}

	return b.Build()
}

// provider resolves a registered provider type, or reads a bare block state
// such as "minecraft:oak_log[axis=y]" as a simple provider.
func (c *Compiler) provider(spec TypedSpec) (worldgen.BlockStateProvider, error) {
	if id, err := worldgen.ParseIdentifier(spec.Type); err == nil && c.types.Providers.Has(id) {
		return c.types.Providers.Create(id, spec.Params)
	}
	if len(spec.Params) > 0 {
		return create(c.types.Providers, spec)
	}
	state, err := worldgen.ParseBlockState(spec.Type)
	if err != nil {
		return nil, err
	}
	return worldgen.Simple(state), nil
}

func create[T any](types *registry.Types[T], spec TypedSpec) (T, error) {
	id, err := worldgen.ParseIdentifier(spec.Type)
	if err != nil {
		var zero T
		return zero, err
	}
	return types.Create(id, spec.Params)
}

// PartError names the definition part that failed to resolve.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("catalog: %s: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

func partError(part string, err error) error {
	return &PartError{Part: part, Err: err}
}
