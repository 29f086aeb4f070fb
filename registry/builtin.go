package registry

import (
	"github.com/goliatone/go-arctree/worldgen"
	"github.com/goliatone/go-errors"
)

// Selector type identifiers.
var (
	SelectorOverworld = worldgen.ID("arctree", "overworld")
	SelectorTheNether = worldgen.ID("arctree", "the_nether")
	SelectorTheEnd    = worldgen.ID("arctree", "the_end")
	SelectorAll       = worldgen.ID("arctree", "all")
	SelectorCategory  = worldgen.ID("arctree", "category")
	SelectorBiomes    = worldgen.ID("arctree", "biomes")
	SelectorTagged    = worldgen.ID("arctree", "tagged")
)

// TypeSet groups one Types registry per configurable tree part.
type TypeSet struct {
	Providers      *Types[worldgen.BlockStateProvider]
	TrunkPlacers   *Types[worldgen.TrunkPlacer]
	FoliagePlacers *Types[worldgen.FoliagePlacer]
	FeatureSizes   *Types[worldgen.FeatureSize]
	Decorators     *Types[worldgen.TreeDecorator]
	Modifiers      *Types[worldgen.PlacementModifier]
	Selectors      *Types[worldgen.BiomeSelector]
}

// NewTypeSet returns empty registries.
func NewTypeSet() *TypeSet {
	return &TypeSet{
		Providers:      NewTypes[worldgen.BlockStateProvider]("state_provider"),
		TrunkPlacers:   NewTypes[worldgen.TrunkPlacer]("trunk_placer"),
		FoliagePlacers: NewTypes[worldgen.FoliagePlacer]("foliage_placer"),
		FeatureSizes:   NewTypes[worldgen.FeatureSize]("feature_size"),
		Decorators:     NewTypes[worldgen.TreeDecorator]("decorator"),
		Modifiers:      NewTypes[worldgen.PlacementModifier]("placement_modifier"),
		Selectors:      NewTypes[worldgen.BiomeSelector]("biome_selector"),
	}
}

// DefaultTypeSet returns registries holding every built-in type.
func DefaultTypeSet() *TypeSet {
	ts := NewTypeSet()
	registerProviders(ts.Providers)
	registerPlacers(ts.TrunkPlacers, ts.FoliagePlacers)
	registerDecorators(ts.FeatureSizes, ts.Decorators)
	registerModifiers(ts.Modifiers)
	registerSelectors(ts.Selectors)
	return ts
}

func invalidParam(kind, param string, value any, reason string) error {
	return errors.New(kind+" "+param+" "+reason, errors.CategoryValidation).
		WithTextCode("INVALID_PARAM").
		WithMetadata(map[string]any{"kind": kind, "param": param, "value": value})
}

func registerProviders(types *Types[worldgen.BlockStateProvider]) {
	type simpleParams struct {
		State worldgen.BlockState `koanf:"state"`
	}
	types.MustRegister(worldgen.TypeSimpleStateProvider, Decode(func(p simpleParams) (worldgen.BlockStateProvider, error) {
		if p.State.Block.IsZero() {
			return nil, invalidParam("state_provider", "state", p.State, "is required")
		}
		return worldgen.Simple(p.State), nil
	}))
	types.MustRegister(worldgen.TypeWeightedStateProvider, Decode(func(p worldgen.WeightedStateProvider) (worldgen.BlockStateProvider, error) {
		if len(p.Entries) == 0 {
			return nil, invalidParam("state_provider", "entries", p.Entries, "must not be empty")
		}
		for _, e := range p.Entries {
			if e.Weight <= 0 {
				return nil, invalidParam("state_provider", "weight", e.Weight, "must be positive")
			}
		}
		return p, nil
	}))
}

func registerPlacers(trunks *Types[worldgen.TrunkPlacer], foliage *Types[worldgen.FoliagePlacer]) {
	checkHeight := func(base, a, b int) error {
		if base <= 0 {
			return invalidParam("trunk_placer", "base_height", base, "must be positive")
		}
		if a < 0 || b < 0 {
			return invalidParam("trunk_placer", "height_rand", []int{a, b}, "must not be negative")
		}
		return nil
	}
	trunks.MustRegister(worldgen.TypeStraightTrunkPlacer, Decode(func(p worldgen.StraightTrunkPlacer) (worldgen.TrunkPlacer, error) {
		if err := checkHeight(p.BaseHeight, p.HeightRandA, p.HeightRandB); err != nil {
			return nil, err
		}
		return p, nil
	}))
	trunks.MustRegister(worldgen.TypeForkingTrunkPlacer, Decode(func(p worldgen.ForkingTrunkPlacer) (worldgen.TrunkPlacer, error) {
		if err := checkHeight(p.BaseHeight, p.HeightRandA, p.HeightRandB); err != nil {
			return nil, err
		}
		return p, nil
	}))

	foliage.MustRegister(worldgen.TypeBlobFoliagePlacer, Decode(func(p worldgen.BlobFoliagePlacer) (worldgen.FoliagePlacer, error) {
		if p.Radius < 0 || p.Height < 0 {
			return nil, invalidParam("foliage_placer", "radius", p.Radius, "and height must not be negative")
		}
		return p, nil
	}))
	foliage.MustRegister(worldgen.TypeAcaciaFoliagePlacer, Decode(func(p worldgen.AcaciaFoliagePlacer) (worldgen.FoliagePlacer, error) {
		if p.Radius < 0 {
			return nil, invalidParam("foliage_placer", "radius", p.Radius, "must not be negative")
		}
		return p, nil
	}))
}

func checkProbability(kind string, p float64) error {
	if p < 0 || p > 1 {
		return invalidParam(kind, "probability", p, "must be between 0 and 1")
	}
	return nil
}

func registerDecorators(sizes *Types[worldgen.FeatureSize], decorators *Types[worldgen.TreeDecorator]) {
	sizes.MustRegister(worldgen.TypeTwoLayersFeatureSize, Decode(func(p worldgen.TwoLayersFeatureSize) (worldgen.FeatureSize, error) {
		if p.Limit < 0 || p.LowerSize < 0 || p.UpperSize < 0 {
			return nil, invalidParam("feature_size", "limit", p, "and sizes must not be negative")
		}
		return p, nil
	}))

	decorators.MustRegister(worldgen.TypeBeehiveDecorator, Decode(func(p worldgen.BeehiveDecorator) (worldgen.TreeDecorator, error) {
		return p, checkProbability("decorator", p.Probability)
	}))
	decorators.MustRegister(worldgen.TypeLeaveVineDecorator, Decode(func(p worldgen.LeaveVineDecorator) (worldgen.TreeDecorator, error) {
		return p, checkProbability("decorator", p.Probability)
	}))
	decorators.MustRegister(worldgen.TypeCocoaDecorator, Decode(func(p worldgen.CocoaDecorator) (worldgen.TreeDecorator, error) {
		return p, checkProbability("decorator", p.Probability)
	}))
	decorators.MustRegister(worldgen.TypeTrunkVineDecorator, Decode(func(p worldgen.TrunkVineDecorator) (worldgen.TreeDecorator, error) {
		return p, nil
	}))
}

func registerModifiers(modifiers *Types[worldgen.PlacementModifier]) {
	modifiers.MustRegister(worldgen.TypeRarityFilter, Decode(func(p worldgen.RarityFilter) (worldgen.PlacementModifier, error) {
		if p.Chance <= 0 {
			return nil, invalidParam("placement_modifier", "chance", p.Chance, "must be positive")
		}
		return p, nil
	}))
	modifiers.MustRegister(worldgen.TypeSquarePlacement, Decode(func(p worldgen.SquarePlacement) (worldgen.PlacementModifier, error) {
		return p, nil
	}))
	modifiers.MustRegister(worldgen.TypeHeightmapPlacement, Decode(func(p worldgen.HeightmapPlacement) (worldgen.PlacementModifier, error) {
		if p.Heightmap == "" {
			p.Heightmap = worldgen.HeightmapMotionBlocking
		}
		if !p.Heightmap.Valid() {
			return nil, invalidParam("placement_modifier", "heightmap", p.Heightmap, "is not a known heightmap")
		}
		return p, nil
	}))
	modifiers.MustRegister(worldgen.TypeCountPlacement, Decode(func(p worldgen.CountPlacement) (worldgen.PlacementModifier, error) {
		if p.Count <= 0 {
			return nil, invalidParam("placement_modifier", "count", p.Count, "must be positive")
		}
		return p, nil
	}))
}

func registerSelectors(selectors *Types[worldgen.BiomeSelector]) {
	type none struct{}
	fixed := func(selector worldgen.BiomeSelector) Factory[worldgen.BiomeSelector] {
		return Decode(func(none) (worldgen.BiomeSelector, error) { return selector, nil })
	}
	selectors.MustRegister(SelectorOverworld, fixed(worldgen.FoundInOverworld()))
	selectors.MustRegister(SelectorTheNether, fixed(worldgen.FoundInTheNether()))
	selectors.MustRegister(SelectorTheEnd, fixed(worldgen.FoundInTheEnd()))
	selectors.MustRegister(SelectorAll, fixed(worldgen.All()))

	type categoryParams struct {
		Categories []string `koanf:"categories"`
	}
	selectors.MustRegister(SelectorCategory, Decode(func(p categoryParams) (worldgen.BiomeSelector, error) {
		if len(p.Categories) == 0 {
			return nil, invalidParam("biome_selector", "categories", p.Categories, "must not be empty")
		}
		return worldgen.Categories(p.Categories...), nil
	}))

	type biomeParams struct {
		Biomes []worldgen.Identifier `koanf:"biomes"`
	}
	selectors.MustRegister(SelectorBiomes, Decode(func(p biomeParams) (worldgen.BiomeSelector, error) {
		if len(p.Biomes) == 0 {
			return nil, invalidParam("biome_selector", "biomes", p.Biomes, "must not be empty")
		}
		return worldgen.IncludeByKey(p.Biomes...), nil
	}))

	type tagParams struct {
		Tag string `koanf:"tag"`
	}
	selectors.MustRegister(SelectorTagged, Decode(func(p tagParams) (worldgen.BiomeSelector, error) {
		if p.Tag == "" {
			return nil, invalidParam("biome_selector", "tag", p.Tag, "is required")
		}
		return worldgen.Tagged(p.Tag), nil
	}))
}
