package tree

import "github.com/goliatone/go-arctree/worldgen"

// Field names, shared with declarative definitions.
const (
	FieldTrunkProvider            = "trunk_provider"
	FieldFoliageProvider          = "foliage_provider"
	FieldSaplingProvider          = "sapling_provider"
	FieldTrunkPlacer              = "trunk_placer"
	FieldFoliagePlacer            = "foliage_placer"
	FieldMinimumSize              = "minimum_size"
	FieldDecorators               = "decorators"
	FieldDirtProvider             = "dirt_provider"
	FieldIgnoreVines              = "ignore_vines"
	FieldForceDirt                = "force_dirt"
	FieldSpawnChance              = "spawn_chance"
	FieldPlacementModifiers       = "placement_modifiers"
	FieldOverrideDefaultPlacement = "override_default_placement"
	FieldBiomeSelector            = "biome_selector"
)

const (
	// DefaultSpawnChance is the "1 in N" chance used when SpawnChance is never called.
	DefaultSpawnChance = 3
	// MaxSpawnChance is the largest accepted spawn chance denominator.
	MaxSpawnChance = 10
)

// DefaultMinimumSize is the two-layer size (limit 1, lower 0, upper 1).
func DefaultMinimumSize() worldgen.FeatureSize {
	return worldgen.TwoLayers(1, 0, 1)
}

// DefaultDirtProvider places plain dirt under the trunk.
func DefaultDirtProvider() worldgen.BlockStateProvider {
	return worldgen.Simple(worldgen.Dirt)
}

// DefaultBiomeSelector adds trees to overworld biomes.
func DefaultBiomeSelector() worldgen.BiomeSelector {
	return worldgen.FoundInOverworld()
}

// slot keeps a value together with whether it was explicitly set.
type slot[T any] struct {
	value T
	set   bool
}

func (s *slot[T]) put(v T) {
	s.value = v
	s.set = true
}

func (s *slot[T]) fill(v T) {
	if !s.set {
		s.put(v)
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// field is one row of the finalization table: a mandatory field only reports presence,
// an optional one knows how to fill its default.
type field struct {
	name      string
	mandatory bool
	isSet     func(*Builder) bool
	fill      func(*Builder)
}

var fields = []field{
	{name: FieldTrunkProvider, mandatory: true, isSet: func(b *Builder) bool { return b.trunkProvider.set }},
	{name: FieldFoliageProvider, mandatory: true, isSet: func(b *Builder) bool { return b.foliageProvider.set }},
	{name: FieldSaplingProvider, mandatory: true, isSet: func(b *Builder) bool { return b.saplingProvider.set }},
	{name: FieldTrunkPlacer, mandatory: true, isSet: func(b *Builder) bool { return b.trunkPlacer.set }},
	{name: FieldFoliagePlacer, mandatory: true, isSet: func(b *Builder) bool { return b.foliagePlacer.set }},
	{
		name:  FieldMinimumSize,
		isSet: func(b *Builder) bool { return b.minimumSize.set },
		fill:  func(b *Builder) { b.minimumSize.fill(DefaultMinimumSize()) },
	},
	{
		name:  FieldDecorators,
		isSet: func(b *Builder) bool { return b.decorators != nil },
		fill:  func(b *Builder) { b.decorators = orEmpty(b.decorators) },
	},
	{
		name:  FieldDirtProvider,
		isSet: func(b *Builder) bool { return b.dirtProvider.set },
		fill:  func(b *Builder) { b.dirtProvider.fill(DefaultDirtProvider()) },
	},
	{
		name:  FieldIgnoreVines,
		isSet: func(b *Builder) bool { return b.ignoreVines.set },
		fill:  func(b *Builder) { b.ignoreVines.fill(false) },
	},
	{
		name:  FieldForceDirt,
		isSet: func(b *Builder) bool { return b.forceDirt.set },
		fill:  func(b *Builder) { b.forceDirt.fill(false) },
	},
	{
		name:  FieldSpawnChance,
		isSet: func(b *Builder) bool { return b.spawnChance.set },
		fill:  func(b *Builder) { b.spawnChance.fill(DefaultSpawnChance) },
	},
	{
		name:  FieldPlacementModifiers,
		isSet: func(b *Builder) bool { return b.modifiers != nil },
		fill:  func(b *Builder) { b.modifiers = orEmpty(b.modifiers) },
	},
	{
		name:  FieldOverrideDefaultPlacement,
		isSet: func(b *Builder) bool { return b.overrideDefaultPlacement.set },
		fill:  func(b *Builder) { b.overrideDefaultPlacement.fill(false) },
	},
	{
		name:  FieldBiomeSelector,
		isSet: func(b *Builder) bool { return b.selector.set },
		fill:  func(b *Builder) { b.selector.fill(DefaultBiomeSelector()) },
	},
}

// Fields lists every field name in declaration order.
func Fields() []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.name)
	}
	return names
}

// MandatoryFields lists the fields Build requires.
func MandatoryFields() []string {
	var names []string
	for _, f := range fields {
		if f.mandatory {
			names = append(names, f.name)
		}
	}
	return names
}
