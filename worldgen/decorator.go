package worldgen

// Feature size, decorator and placement modifier type identifiers.
var (
	TypeTwoLayersFeatureSize = ID("minecraft", "two_layers_feature_size")

	TypeBeehiveDecorator   = ID("minecraft", "beehive")
	TypeLeaveVineDecorator = ID("minecraft", "leave_vine")
	TypeTrunkVineDecorator = ID("minecraft", "trunk_vine")
	TypeCocoaDecorator     = ID("minecraft", "cocoa")

	TypeRarityFilter       = ID("minecraft", "rarity_filter")
	TypeSquarePlacement    = ID("minecraft", "in_square")
	TypeHeightmapPlacement = ID("minecraft", "heightmap")
	TypeCountPlacement     = ID("minecraft", "count")
)

// FeatureSize is the minimum free space a tree needs around its trunk.
type FeatureSize interface {
	Type() Identifier
}

// TwoLayersFeatureSize requires LowerSize clearance below Limit and UpperSize above it.
type TwoLayersFeatureSize struct {
	Limit     int
	LowerSize int
	UpperSize int
}

// TwoLayers builds a TwoLayersFeatureSize.
func TwoLayers(limit, lower, upper int) TwoLayersFeatureSize {
	return TwoLayersFeatureSize{Limit: limit, LowerSize: lower, UpperSize: upper}
}

func (TwoLayersFeatureSize) Type() Identifier { return TypeTwoLayersFeatureSize }

// TreeDecorator adds extra blocks once a tree is placed.
type TreeDecorator interface {
	Type() Identifier
}

// BeehiveDecorator attaches a beehive with the given probability.
type BeehiveDecorator struct {
	Probability float64
}

func (BeehiveDecorator) Type() Identifier { return TypeBeehiveDecorator }

// LeaveVineDecorator hangs vines from leaves.
type LeaveVineDecorator struct {
	Probability float64
}

func (LeaveVineDecorator) Type() Identifier { return TypeLeaveVineDecorator }

// TrunkVineDecorator covers the trunk with vines.
type TrunkVineDecorator struct{}

func (TrunkVineDecorator) Type() Identifier { return TypeTrunkVineDecorator }

// CocoaDecorator grows cocoa pods on the trunk.
type CocoaDecorator struct {
	Probability float64
}

func (CocoaDecorator) Type() Identifier { return TypeCocoaDecorator }

// Heightmap names the surface a HeightmapPlacement snaps to.
type Heightmap string

const (
	HeightmapMotionBlocking Heightmap = "MOTION_BLOCKING"
	HeightmapWorldSurface   Heightmap = "WORLD_SURFACE"
	HeightmapOceanFloor     Heightmap = "OCEAN_FLOOR"
)

// Valid reports whether h is a known heightmap.
func (h Heightmap) Valid() bool {
	switch h {
	case HeightmapMotionBlocking, HeightmapWorldSurface, HeightmapOceanFloor:
		return true
	}
	return false
}

// PlacementModifier filters or moves the positions a placed feature is attempted at.
type PlacementModifier interface {
	Type() Identifier
}

// RarityFilter keeps a position with a 1 in Chance probability.
type RarityFilter struct {
	Chance int
}

func (RarityFilter) Type() Identifier { return TypeRarityFilter }

// SquarePlacement spreads the position randomly inside the chunk.
type SquarePlacement struct{}

func (SquarePlacement) Type() Identifier { return TypeSquarePlacement }

// HeightmapPlacement moves the position to the top of a heightmap.
type HeightmapPlacement struct {
	Heightmap Heightmap
}

func (HeightmapPlacement) Type() Identifier { return TypeHeightmapPlacement }

// CountPlacement repeats the position Count times.
type CountPlacement struct {
	Count int
}

func (CountPlacement) Type() Identifier { return TypeCountPlacement }
