// Package registry keeps the identifier-keyed registries a tree configuration is assembled
// from and handed to.
//
// Types maps type identifiers to factories that decode a parameter map into a worldgen value,
// so declarative definitions can name "minecraft:straight_trunk_placer" and get a
// worldgen.StraightTrunkPlacer back. DefaultTypeSet registers every built-in type.
//
// Features is an in-memory tree.Registrar: it stores built configurations under their
// identifier, refuses duplicates and answers which features a biome receives.
package registry
