// Package worldgen holds the engine-agnostic value types a tree configuration is assembled from:
// identifiers, block states and state providers, trunk and foliage placers, feature sizes,
// decorators, placement modifiers and biome selectors.
//
// The types only describe a tree. Placement, chunk generation and biome classification belong to
// the host engine that consumes the produced configuration.
package worldgen
