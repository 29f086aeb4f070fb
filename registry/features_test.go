package registry

import (
	"testing"

	"github.com/goliatone/go-arctree/logger"
	"github.com/goliatone/go-arctree/tree"
	"github.com/goliatone/go-arctree/worldgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, selector worldgen.BiomeSelector) *tree.Config {
	t.Helper()
	cfg, err := tree.New().
		TrunkBlock(worldgen.OakLog).
		FoliageBlock(worldgen.OakLeaves).
		SaplingBlock(worldgen.OakSapling).
		TrunkPlacer(worldgen.FixedHeight(5)).
		FoliagePlacer(worldgen.Bulb()).
		BiomeSelector(selector).
		Build()
	require.NoError(t, err)
	return cfg
}

func TestFeaturesRegister(t *testing.T) {
	features := NewFeatures().WithLogger(logger.Nop())
	oak := worldgen.ID("arctree", "oak")

	handle, err := features.Register(oak, buildTree(t, worldgen.FoundInOverworld()))
	require.NoError(t, err)
	assert.Equal(t, tree.Handle{ID: oak, Index: 0}, handle)

	cfg, ok := features.Lookup(oak)
	require.True(t, ok)
	assert.Equal(t, 3, cfg.SpawnChance())

	_, err = features.Register(oak, buildTree(t, worldgen.All()))
	assert.Error(t, err, "duplicate identifiers must be rejected")

	_, err = features.Register(worldgen.ID("arctree", "nil"), nil)
	assert.Error(t, err)

	_, err = features.Register(worldgen.Identifier{}, cfg)
	assert.Error(t, err)

	assert.Equal(t, 1, features.Len())
	_, ok = features.Lookup(worldgen.ID("arctree", "birch"))
	assert.False(t, ok)
}

func TestFeaturesSelect(t *testing.T) {
	features := NewFeatures().WithLogger(logger.Nop())
	oak := worldgen.ID("arctree", "oak")
	crimson := worldgen.ID("arctree", "crimson")
	everywhere := worldgen.ID("arctree", "everywhere")

	for id, selector := range map[worldgen.Identifier]worldgen.BiomeSelector{
		oak:     worldgen.FoundInOverworld(),
		crimson: worldgen.FoundInTheNether(),
	} {
		_, err := features.Register(id, buildTree(t, selector))
		require.NoError(t, err)
	}
	_, err := features.Register(everywhere, buildTree(t, worldgen.All()))
	require.NoError(t, err)

	selected := features.Select(worldgen.SelectionContext{Dimension: worldgen.TheNether})
	ids := make([]worldgen.Identifier, 0, len(selected))
	for _, e := range selected {
		assert.Equal(t, VegetalDecoration, e.Step)
		ids = append(ids, e.Handle.ID)
	}
	assert.ElementsMatch(t, []worldgen.Identifier{crimson, everywhere}, ids)
	assert.Equal(t, everywhere, ids[len(ids)-1], "selection keeps registration order")
}

func TestFeaturesSapling(t *testing.T) {
	features := NewFeatures().WithLogger(logger.Nop())
	oak := worldgen.ID("arctree", "oak")
	handle, err := tree.New().
		TrunkBlock(worldgen.OakLog).
		FoliageBlock(worldgen.OakLeaves).
		SaplingBlock(worldgen.OakSapling).
		TrunkPlacer(worldgen.FixedHeight(5)).
		FoliagePlacer(worldgen.Bulb()).
		BuildAndRegister(features, oak)
	require.NoError(t, err)
	assert.Equal(t, oak, handle.ID)

	gen, ok := features.Sapling(oak)
	require.True(t, ok)
	assert.True(t, gen.Sapling(nil).Equal(worldgen.OakSapling))

	_, ok = features.Sapling(worldgen.ID("arctree", "missing"))
	assert.False(t, ok)
}
