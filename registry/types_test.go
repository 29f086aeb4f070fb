package registry

import (
	"testing"

	"github.com/goliatone/go-arctree/worldgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesRegisterAndCreate(t *testing.T) {
	types := NewTypes[worldgen.TrunkPlacer]("trunk_placer")
	id := worldgen.ID("test", "fixed")

	require.NoError(t, types.Register(id, func(map[string]any) (worldgen.TrunkPlacer, error) {
		return worldgen.FixedHeight(4), nil
	}))
	assert.True(t, types.Has(id))
	assert.Equal(t, []worldgen.Identifier{id}, types.IDs())

	placer, err := types.Create(id, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, placer.Height(nil))
}

func TestTypesRejectsDuplicatesAndBadInput(t *testing.T) {
	types := NewTypes[worldgen.FoliagePlacer]("foliage_placer")
	factory := func(map[string]any) (worldgen.FoliagePlacer, error) { return worldgen.Bulb(), nil }
	id := worldgen.ID("test", "bulb")

	require.NoError(t, types.Register(id, factory))
	assert.Error(t, types.Register(id, factory))
	assert.Error(t, types.Register(worldgen.ID("Bad", "id"), factory))
	assert.Error(t, types.Register(worldgen.ID("test", "nil"), nil))
	assert.Panics(t, func() { types.MustRegister(id, factory) })
}

func TestTypesCreateUnknown(t *testing.T) {
	types := NewTypes[worldgen.TreeDecorator]("decorator")
	_, err := types.Create(worldgen.ID("test", "missing"), nil)
	assert.Error(t, err)
}

func TestDecodeParams(t *testing.T) {
	var placer worldgen.StraightTrunkPlacer
	err := DecodeParams(map[string]any{
		"base_height":   "5",
		"height_rand_a": 2,
	}, &placer)
	require.NoError(t, err)
	assert.Equal(t, worldgen.StraightTrunkPlacer{BaseHeight: 5, HeightRandA: 2}, placer)

	err = DecodeParams(map[string]any{"base_heigth": 5}, &placer)
	assert.Error(t, err, "unknown keys must be rejected")
}

func TestDefaultTypeSetBuiltins(t *testing.T) {
	ts := DefaultTypeSet()

	t.Run("simple provider from string", func(t *testing.T) {
		p, err := ts.Providers.Create(worldgen.TypeSimpleStateProvider, map[string]any{
			"state": "minecraft:oak_log[axis=y]",
		})
		require.NoError(t, err)
		assert.True(t, p.State(nil).Equal(worldgen.OakLog.With("axis", "y")))
	})

	t.Run("weighted provider", func(t *testing.T) {
		p, err := ts.Providers.Create(worldgen.TypeWeightedStateProvider, map[string]any{
			"entries": []any{
				map[string]any{"state": "minecraft:dirt", "weight": 3},
				map[string]any{"state": "minecraft:coarse_dirt", "weight": 1},
			},
		})
		require.NoError(t, err)
		weighted, ok := p.(worldgen.WeightedStateProvider)
		require.True(t, ok)
		assert.Len(t, weighted.Entries, 2)
		assert.Equal(t, 3, weighted.Entries[0].Weight)
	})

	t.Run("simple provider requires state", func(t *testing.T) {
		_, err := ts.Providers.Create(worldgen.TypeSimpleStateProvider, nil)
		assert.Error(t, err)
	})

	t.Run("trunk placer validation", func(t *testing.T) {
		_, err := ts.TrunkPlacers.Create(worldgen.TypeStraightTrunkPlacer, map[string]any{"base_height": 0})
		assert.Error(t, err)
	})

	t.Run("feature size", func(t *testing.T) {
		size, err := ts.FeatureSizes.Create(worldgen.TypeTwoLayersFeatureSize, map[string]any{
			"limit": 1, "lower_size": 0, "upper_size": 2,
		})
		require.NoError(t, err)
		assert.Equal(t, worldgen.TwoLayers(1, 0, 2), size)
	})

	t.Run("decorator probability", func(t *testing.T) {
		_, err := ts.Decorators.Create(worldgen.TypeBeehiveDecorator, map[string]any{"probability": 1.5})
		assert.Error(t, err)
		d, err := ts.Decorators.Create(worldgen.TypeBeehiveDecorator, map[string]any{"probability": 0.05})
		require.NoError(t, err)
		assert.Equal(t, worldgen.BeehiveDecorator{Probability: 0.05}, d)
	})

	t.Run("heightmap defaults to motion blocking", func(t *testing.T) {
		m, err := ts.Modifiers.Create(worldgen.TypeHeightmapPlacement, nil)
		require.NoError(t, err)
		assert.Equal(t, worldgen.HeightmapPlacement{Heightmap: worldgen.HeightmapMotionBlocking}, m)

		_, err = ts.Modifiers.Create(worldgen.TypeHeightmapPlacement, map[string]any{"heightmap": "SKY"})
		assert.Error(t, err)
	})

	t.Run("selectors", func(t *testing.T) {
		forest := worldgen.SelectionContext{Biome: worldgen.ID("minecraft", "forest"), Category: "forest", Dimension: worldgen.Overworld}

		category, err := ts.Selectors.Create(SelectorCategory, map[string]any{"categories": "forest,taiga"})
		require.NoError(t, err)
		assert.True(t, category(forest))

		biomes, err := ts.Selectors.Create(SelectorBiomes, map[string]any{"biomes": []any{"minecraft:birch_forest"}})
		require.NoError(t, err)
		assert.False(t, biomes(forest))

		nether, err := ts.Selectors.Create(SelectorTheNether, nil)
		require.NoError(t, err)
		assert.False(t, nether(forest))

		_, err = ts.Selectors.Create(SelectorOverworld, map[string]any{"unexpected": true})
		assert.Error(t, err)
	})
}
