package worldgen

import "slices"

// Dimension identifiers.
var (
	Overworld = ID("minecraft", "overworld")
	TheNether = ID("minecraft", "the_nether")
	TheEnd    = ID("minecraft", "the_end")
)

// SelectionContext is what a BiomeSelector sees when the host engine decides where a
// feature is added.
type SelectionContext struct {
	Biome     Identifier
	Category  string
	Dimension Identifier
	Tags      []string
}

// HasTag reports whether the biome carries tag.
func (c SelectionContext) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// BiomeSelector decides whether a feature is added to a biome.
type BiomeSelector func(SelectionContext) bool

// FoundInOverworld matches biomes generated in the overworld.
func FoundInOverworld() BiomeSelector {
	return FoundIn(Overworld)
}

// FoundInTheNether matches nether biomes.
func FoundInTheNether() BiomeSelector {
	return FoundIn(TheNether)
}

// FoundInTheEnd matches end biomes.
func FoundInTheEnd() BiomeSelector {
	return FoundIn(TheEnd)
}

// FoundIn matches biomes of the given dimension.
func FoundIn(dimension Identifier) BiomeSelector {
	return func(ctx SelectionContext) bool {
		return ctx.Dimension == dimension
	}
}

// Categories matches biomes whose category is one of categories.
func Categories(categories ...string) BiomeSelector {
	categories = slices.Clone(categories)
	return func(ctx SelectionContext) bool {
		return slices.Contains(categories, ctx.Category)
	}
}

// IncludeByKey matches the listed biomes.
func IncludeByKey(biomes ...Identifier) BiomeSelector {
	biomes = slices.Clone(biomes)
	return func(ctx SelectionContext) bool {
		return slices.Contains(biomes, ctx.Biome)
	}
}

// Tagged matches biomes carrying tag.
func Tagged(tag string) BiomeSelector {
	return func(ctx SelectionContext) bool {
		return ctx.HasTag(tag)
	}
}

// All matches every biome.
func All() BiomeSelector {
	return func(SelectionContext) bool { return true }
}

// Not inverts a selector.
func Not(selector BiomeSelector) BiomeSelector {
	return func(ctx SelectionContext) bool {
		return !selector(ctx)
	}
}

// And matches when every selector matches.
func And(selectors ...BiomeSelector) BiomeSelector {
	return func(ctx SelectionContext) bool {
		for _, s := range selectors {
			if !s(ctx) {
				return false
			}
		}
		return true
	}
}
