package catalog

import (
	"context"
	"testing"

	"github.com/goliatone/go-arctree/logger"
	"github.com/goliatone/go-arctree/registry"
	"github.com/goliatone/go-arctree/tree"
	"github.com/goliatone/go-arctree/worldgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forestYAML = `
namespace: forest
trees:
  oak:
    trunk: minecraft:oak_log
    foliage: minecraft:oak_leaves
    sapling: minecraft:oak_sapling
    trunk_placer: {type: "minecraft:straight_trunk_placer", params: {base_height: 4}}
    foliage_placer: {type: "minecraft:blob_foliage_placer", params: {radius: 2, height: 3}}
    decorators:
      - minecraft:trunk_vine
      - {type: "minecraft:beehive", params: {probability: 0.02}}
    selector: {type: "arctree:category", params: {categories: [forest]}}
  birch:
    trunk: minecraft:birch_log
    foliage: minecraft:birch_leaves
    sapling: minecraft:birch_sapling
    trunk_placer: {type: "minecraft:straight_trunk_placer", params: {base_height: 5}}
    foliage_placer: {type: "minecraft:blob_foliage_placer", params: {radius: 2, height: 3}}
    spawn_chance: 6
`

func TestInstall(t *testing.T) {
	path := writeFile(t, "forest.yaml", forestYAML)
	features := registry.NewFeatures().WithLogger(logger.Nop())

	handles, err := Install(context.Background(), newTestLoader().WithFile(path), nil, features)
	require.NoError(t, err)
	require.Len(t, handles, 2)
	assert.Equal(t, tree.Handle{ID: worldgen.ID("forest", "birch"), Index: 0}, handles[0])
	assert.Equal(t, tree.Handle{ID: worldgen.ID("forest", "oak"), Index: 1}, handles[1])

	oak, ok := features.Lookup(worldgen.ID("forest", "oak"))
	require.True(t, ok)
	assert.Equal(t, worldgen.OakLeaves, oak.FoliageProvider().State(nil))
	assert.Len(t, oak.Decorators(), 2)

	birch, ok := features.Lookup(worldgen.ID("forest", "birch"))
	require.True(t, ok)
	assert.Equal(t, 6, birch.SpawnChance())

	selected := features.Select(worldgen.SelectionContext{
		Biome:     worldgen.ID("minecraft", "forest"),
		Category:  "forest",
		Dimension: worldgen.Overworld,
	})
	require.Len(t, selected, 2)

	sapling, ok := features.Sapling(worldgen.ID("forest", "oak"))
	require.True(t, ok)
	assert.Equal(t, worldgen.OakSapling, sapling.Sapling(nil))
}

func TestInstallCompileFailureRegistersNothing(t *testing.T) {
	loader := newTestLoader().WithValues(map[string]any{
		"trees": map[string]any{
			"complete": map[string]any{
				"trunk":          "minecraft:oak_log",
				"foliage":        "minecraft:oak_leaves",
				"sapling":        "minecraft:oak_sapling",
				"trunk_placer":   map[string]any{"type": "minecraft:straight_trunk_placer", "params": map[string]any{"base_height": 4}},
				"foliage_placer": map[string]any{"type": "minecraft:blob_foliage_placer"},
			},
			"partial": map[string]any{"trunk": "minecraft:oak_log"},
		},
	})
	features := registry.NewFeatures().WithLogger(logger.Nop())

	handles, err := Install(context.Background(), loader, nil, features)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompile)
	assert.ErrorIs(t, err, tree.ErrMissingField)
	assert.Empty(t, handles)
	assert.Equal(t, 0, features.Len())
}

func TestInstallZeroSpawnChanceIsRejected(t *testing.T) {
	path := writeFile(t, "forest.yaml", forestYAML)
	loader := newTestLoader().
		WithFile(path).
		WithEnv(DefaultEnvPrefix, DefaultEnvDelimiter).
		WithEnviron(environ("ARCTREE_TREES__BIRCH__SPAWN_CHANCE=0"))
	features := registry.NewFeatures().WithLogger(logger.Nop())

	_, err := Install(context.Background(), loader, nil, features)
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrInvalidValue)
	assert.Equal(t, 0, features.Len())
}

func TestInstallRegistrationFailure(t *testing.T) {
	path := writeFile(t, "forest.yaml", forestYAML)
	features := registry.NewFeatures().WithLogger(logger.Nop())

	existing, err := NewCompiler(nil).Compile(oakDefinition())
	require.NoError(t, err)
	_, err = features.Register(worldgen.ID("forest", "oak"), existing)
	require.NoError(t, err)

	handles, err := Install(context.Background(), newTestLoader().WithFile(path), NewCompiler(nil), features)
	require.Error(t, err)
	require.Len(t, handles, 1)
	assert.Equal(t, worldgen.ID("forest", "birch"), handles[0].ID)
}

func TestInstallBadInput(t *testing.T) {
	_, err := Install(context.Background(), nil, nil, registry.NewFeatures())
	assert.Error(t, err)

	_, err = Install(context.Background(), newTestLoader(), nil, nil)
	assert.Error(t, err)
}
