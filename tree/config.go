package tree

import (
	"slices"

	"github.com/goliatone/go-arctree/worldgen"
)

// Config is a finalized tree configuration. Every field is populated and the value never
// changes after Build; sequence accessors return copies.
type Config struct {
	trunkProvider            worldgen.BlockStateProvider
	foliageProvider          worldgen.BlockStateProvider
	saplingProvider          worldgen.BlockStateProvider
	trunkPlacer              worldgen.TrunkPlacer
	foliagePlacer            worldgen.FoliagePlacer
	minimumSize              worldgen.FeatureSize
	decorators               []worldgen.TreeDecorator
	dirtProvider             worldgen.BlockStateProvider
	ignoreVines              bool
	forceDirt                bool
	spawnChance              int
	modifiers                []worldgen.PlacementModifier
	overrideDefaultPlacement bool
	selector                 worldgen.BiomeSelector
}

func (c *Config) TrunkProvider() worldgen.BlockStateProvider   { return worldgen.CloneProvider(c.trunkProvider) }
func (c *Config) FoliageProvider() worldgen.BlockStateProvider { return worldgen.CloneProvider(c.foliageProvider) }
func (c *Config) SaplingProvider() worldgen.BlockStateProvider { return worldgen.CloneProvider(c.saplingProvider) }
func (c *Config) TrunkPlacer() worldgen.TrunkPlacer            { return c.trunkPlacer }
func (c *Config) FoliagePlacer() worldgen.FoliagePlacer        { return c.foliagePlacer }
func (c *Config) MinimumSize() worldgen.FeatureSize            { return c.minimumSize }
func (c *Config) DirtProvider() worldgen.BlockStateProvider    { return worldgen.CloneProvider(c.dirtProvider) }
func (c *Config) IgnoreVines() bool                            { return c.ignoreVines }
func (c *Config) ForceDirt() bool                              { return c.forceDirt }
func (c *Config) SpawnChance() int                             { return c.spawnChance }
func (c *Config) OverrideDefaultPlacement() bool               { return c.overrideDefaultPlacement }
func (c *Config) BiomeSelector() worldgen.BiomeSelector        { return c.selector }

// Decorators returns the decorators in the order they were added.
func (c *Config) Decorators() []worldgen.TreeDecorator {
	return cloneSlice(c.decorators)
}

// PlacementModifiers returns the explicitly added modifiers in the order they were added.
func (c *Config) PlacementModifiers() []worldgen.PlacementModifier {
	return cloneSlice(c.modifiers)
}

// Placement returns the effective modifier chain: DefaultPlacement(SpawnChance) unless the
// defaults were overridden, followed by the added modifiers.
func (c *Config) Placement() []worldgen.PlacementModifier {
	var chain []worldgen.PlacementModifier
	if !c.overrideDefaultPlacement {
		chain = DefaultPlacement(c.spawnChance)
	}
	return append(orEmpty(chain), c.modifiers...)
}

// Selects reports whether the tree is added to the biome described by ctx.
func (c *Config) Selects(ctx worldgen.SelectionContext) bool {
	return c.selector(ctx)
}

// DefaultPlacement is rarity(1 in spawnChance), spread in square, snap to the
// motion-blocking heightmap.
func DefaultPlacement(spawnChance int) []worldgen.PlacementModifier {
	return []worldgen.PlacementModifier{
		worldgen.RarityFilter{Chance: spawnChance},
		worldgen.SquarePlacement{},
		worldgen.HeightmapPlacement{Heightmap: worldgen.HeightmapMotionBlocking},
	}
}

func cloneSlice[T any](s []T) []T {
	return orEmpty(slices.Clone(s))
}

// Handle identifies a configuration accepted by a Registrar.
type Handle struct {
	ID    worldgen.Identifier
	Index int
}

// Registrar is the sink built configurations are handed to.
type Registrar interface {
	Register(id worldgen.Identifier, cfg *Config) (Handle, error)
}
