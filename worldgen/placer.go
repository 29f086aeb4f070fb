package worldgen

import "math/rand/v2"

// Placer type identifiers.
var (
	TypeStraightTrunkPlacer = ID("minecraft", "straight_trunk_placer")
	TypeForkingTrunkPlacer  = ID("minecraft", "forking_trunk_placer")
	TypeBlobFoliagePlacer   = ID("minecraft", "blob_foliage_placer")
	TypeAcaciaFoliagePlacer = ID("minecraft", "acacia_foliage_placer")
)

// TrunkPlacer shapes the trunk of a tree.
type TrunkPlacer interface {
	Type() Identifier
	Height(r *rand.Rand) int
}

// FoliagePlacer shapes the canopy of a tree.
type FoliagePlacer interface {
	Type() Identifier
}

// trunkHeight is shared by the vanilla trunk placers: base + rand(a+1) + rand(b+1).
type trunkHeight struct {
	BaseHeight  int
	HeightRandA int
	HeightRandB int
}

func (h trunkHeight) Height(r *rand.Rand) int {
	height := h.BaseHeight
	if r == nil {
		return height
	}
	if h.HeightRandA > 0 {
		height += r.IntN(h.HeightRandA + 1)
	}
	if h.HeightRandB > 0 {
		height += r.IntN(h.HeightRandB + 1)
	}
	return height
}

// StraightTrunkPlacer grows a single vertical column.
type StraightTrunkPlacer struct {
	BaseHeight  int
	HeightRandA int
	HeightRandB int
}

// FixedHeight is a StraightTrunkPlacer without random extra height.
func FixedHeight(height int) StraightTrunkPlacer {
	return StraightTrunkPlacer{BaseHeight: height}
}

func (StraightTrunkPlacer) Type() Identifier { return TypeStraightTrunkPlacer }

func (p StraightTrunkPlacer) Height(r *rand.Rand) int {
	return trunkHeight{p.BaseHeight, p.HeightRandA, p.HeightRandB}.Height(r)
}

// ForkingTrunkPlacer grows a trunk that splits near the top.
type ForkingTrunkPlacer struct {
	BaseHeight  int
	HeightRandA int
	HeightRandB int
}

func (ForkingTrunkPlacer) Type() Identifier { return TypeForkingTrunkPlacer }

func (p ForkingTrunkPlacer) Height(r *rand.Rand) int {
	return trunkHeight{p.BaseHeight, p.HeightRandA, p.HeightRandB}.Height(r)
}

// BlobFoliagePlacer grows the round "bulb" canopy of oak-like trees.
type BlobFoliagePlacer struct {
	Radius int
	Offset int
	Height int
}

// Bulb is the oak canopy: radius 2, offset 0, height 3.
func Bulb() BlobFoliagePlacer {
	return BlobFoliagePlacer{Radius: 2, Offset: 0, Height: 3}
}

func (BlobFoliagePlacer) Type() Identifier { return TypeBlobFoliagePlacer }

// AcaciaFoliagePlacer grows flat canopies.
type AcaciaFoliagePlacer struct {
	Radius int
	Offset int
}

func (AcaciaFoliagePlacer) Type() Identifier { return TypeAcaciaFoliagePlacer }
