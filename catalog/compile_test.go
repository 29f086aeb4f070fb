package catalog

import (
	"errors"
	"testing"

	"github.com/goliatone/go-arctree/registry"
	"github.com/goliatone/go-arctree/tree"
	"github.com/goliatone/go-arctree/worldgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oakDefinition() Definition {
	return Definition{
		Trunk:         Spec("minecraft:oak_log", nil),
		Foliage:       Spec("arctree:simple", map[string]any{"state": "minecraft:oak_leaves"}),
		Sapling:       Spec("minecraft:oak_sapling", nil),
		TrunkPlacer:   Spec("minecraft:straight_trunk_placer", map[string]any{"base_height": 5}),
		FoliagePlacer: Spec("minecraft:blob_foliage_placer", map[string]any{"radius": 2, "height": 3}),
	}
}

func TestCompileMandatoryOnly(t *testing.T) {
	cfg, err := NewCompiler(nil).Compile(oakDefinition())
	require.NoError(t, err)

	assert.Equal(t, worldgen.OakLog, cfg.TrunkProvider().State(nil))
	assert.Equal(t, worldgen.OakLeaves, cfg.FoliageProvider().State(nil))
	assert.Equal(t, worldgen.OakSapling, cfg.SaplingProvider().State(nil))
	assert.Equal(t, worldgen.StraightTrunkPlacer{BaseHeight: 5}, cfg.TrunkPlacer())
	assert.Equal(t, tree.DefaultSpawnChance, cfg.SpawnChance())
	assert.Equal(t, tree.DefaultMinimumSize(), cfg.MinimumSize())
	assert.Equal(t, worldgen.Dirt, cfg.DirtProvider().State(nil))
	assert.False(t, cfg.IgnoreVines())
	assert.Empty(t, cfg.Decorators())
	assert.Equal(t, tree.DefaultPlacement(tree.DefaultSpawnChance), cfg.Placement())
}

func TestCompileFullDefinition(t *testing.T) {
	def := oakDefinition()
	def.Trunk = Spec("minecraft:oak_log[axis=y]", nil)
	def.MinimumSize = Spec("minecraft:two_layers_feature_size", map[string]any{"limit": 2, "lower_size": 0, "upper_size": 2})
	def.Decorators = []TypedSpec{
		{Type: "minecraft:beehive", Params: map[string]any{"probability": 0.05}},
		{Type: "minecraft:trunk_vine"},
	}
	def.Dirt = Spec("arctree:weighted", map[string]any{
		"entries": []any{
			map[string]any{"state": "minecraft:coarse_dirt", "weight": 1},
		},
	})
	def.IgnoreVines.Set(true)
	def.ForceDirt.Set(false)
	def.SpawnChance = intPtr(8)
	def.Modifiers = []TypedSpec{{Type: "minecraft:count", Params: map[string]any{"count": 2}}}
	def.OverrideDefaultModifiers.Set(true)
	def.Selector = Spec("arctree:category", map[string]any{"categories": "forest,taiga"})

	cfg, err := NewCompiler(nil).Compile(def)
	require.NoError(t, err)

	trunk, err := worldgen.ParseBlockState("minecraft:oak_log[axis=y]")
	require.NoError(t, err)
	assert.Equal(t, trunk, cfg.TrunkProvider().State(nil))
	assert.Equal(t, worldgen.TwoLayers(2, 0, 2), cfg.MinimumSize())
	assert.Equal(t, []worldgen.TreeDecorator{
		worldgen.BeehiveDecorator{Probability: 0.05},
		worldgen.TrunkVineDecorator{},
	}, cfg.Decorators())
	assert.Equal(t, worldgen.State("minecraft:coarse_dirt"), cfg.DirtProvider().State(nil))
	assert.True(t, cfg.IgnoreVines())
	assert.False(t, cfg.ForceDirt())
	assert.Equal(t, 8, cfg.SpawnChance())
	assert.True(t, cfg.OverrideDefaultPlacement())
	assert.Equal(t, []worldgen.PlacementModifier{worldgen.CountPlacement{Count: 2}}, cfg.Placement())

	assert.True(t, cfg.Selects(worldgen.SelectionContext{Category: "taiga"}))
	assert.False(t, cfg.Selects(worldgen.SelectionContext{Category: "desert"}))
}

func TestCompileMissingFields(t *testing.T) {
	def := oakDefinition()
	def.Sapling = nil
	def.FoliagePlacer = &TypedSpec{}

	_, err := NewCompiler(nil).Compile(def)
	require.ErrorIs(t, err, tree.ErrMissingField)

	var missing *tree.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{tree.FieldSaplingProvider, tree.FieldFoliagePlacer}, missing.Fields)
}

func TestCompilePartErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Definition)
		part string
	}{
		{
			name: "unknown trunk placer",
			edit: func(d *Definition) { d.TrunkPlacer = Spec("minecraft:giant_trunk_placer", nil) },
			part: tree.FieldTrunkPlacer,
		},
		{
			name: "invalid foliage params",
			edit: func(d *Definition) {
				d.FoliagePlacer = Spec("minecraft:blob_foliage_placer", map[string]any{"radius": -1})
			},
			part: tree.FieldFoliagePlacer,
		},
		{
			name: "bad block state",
			edit: func(d *Definition) { d.Trunk = Spec("minecraft:oak_log[axis", nil) },
			part: tree.FieldTrunkProvider,
		},
		{
			name: "unknown provider with params",
			edit: func(d *Definition) { d.Foliage = Spec("arctree:noise", map[string]any{"scale": 2}) },
			part: tree.FieldFoliageProvider,
		},
		{
			name: "second decorator",
			edit: func(d *Definition) {
				d.Decorators = []TypedSpec{{Type: "minecraft:trunk_vine"}, {Type: "minecraft:cocoa", Params: map[string]any{"probability": 2}}}
			},
			part: "decorators[1]",
		},
		{
			name: "modifier",
			edit: func(d *Definition) { d.Modifiers = []TypedSpec{{Type: "minecraft:count", Params: map[string]any{"count": 0}}} },
			part: "placement_modifiers[0]",
		},
		{
			name: "selector",
			edit: func(d *Definition) { d.Selector = Spec("arctree:tagged", nil) },
			part: tree.FieldBiomeSelector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := oakDefinition()
			tt.edit(&def)

			_, err := NewCompiler(nil).Compile(def)
			var partErr *PartError
			require.ErrorAs(t, err, &partErr)
			assert.Equal(t, tt.part, partErr.Part)
		})
	}
}

func TestCompileInvalidSpawnChance(t *testing.T) {
	for _, chance := range []int{0, -1, tree.MaxSpawnChance + 1} {
		def := oakDefinition()
		def.SpawnChance = intPtr(chance)

		_, err := NewCompiler(nil).Compile(def)
		assert.ErrorIs(t, err, tree.ErrInvalidValue, "spawn chance %d", chance)
	}

	def := oakDefinition()
	def.SpawnChance = intPtr(tree.MaxSpawnChance)
	cfg, err := NewCompiler(nil).Compile(def)
	require.NoError(t, err)
	assert.Equal(t, tree.MaxSpawnChance, cfg.SpawnChance())
}

func TestCompileCustomTypes(t *testing.T) {
	types := registry.DefaultTypeSet()
	types.TrunkPlacers.MustRegister(worldgen.ID("demo", "stump"), func(map[string]any) (worldgen.TrunkPlacer, error) {
		return worldgen.FixedHeight(1), nil
	})

	def := oakDefinition()
	def.TrunkPlacer = Spec("demo:stump", nil)

	cfg, err := NewCompiler(types).Compile(def)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.TrunkPlacer().Height(nil))
}

func TestCompileDocument(t *testing.T) {
	broken := oakDefinition()
	broken.Trunk = nil

	doc := &Document{Trees: map[string]Definition{
		"oak":   oakDefinition(),
		"birch": oakDefinition(),
	}}
	compiled, err := NewCompiler(nil).CompileDocument(doc)
	require.NoError(t, err)
	require.Len(t, compiled, 2)
	assert.Equal(t, "arctree:birch", compiled[0].ID.String())
	assert.Equal(t, "arctree:oak", compiled[1].ID.String())

	doc = &Document{Trees: map[string]Definition{
		"zz":  oakDefinition(),
		"b:a": oakDefinition(),
	}}
	compiled, err = NewCompiler(nil).CompileDocument(doc)
	require.NoError(t, err)
	require.Len(t, compiled, 2)
	assert.Equal(t, "arctree:zz", compiled[0].ID.String())
	assert.Equal(t, "b:a", compiled[1].ID.String())

	doc.Trees["spruce"] = broken
	_, err = NewCompiler(nil).CompileDocument(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompile)
	assert.ErrorIs(t, err, tree.ErrMissingField)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "arctree:spruce", stageErr.Meta["tree"])
}
