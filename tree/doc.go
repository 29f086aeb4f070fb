// Package tree builds validated, immutable tree feature configurations.
//
// A Builder collects the parts of a tree under a fluent API, checks that every mandatory field
// was supplied, fills the remaining fields with their defaults and returns a *Config:
//
//	cfg, err := tree.New().
//		TrunkBlock(worldgen.OakLog).
//		FoliageBlock(worldgen.OakLeaves).
//		SaplingBlock(worldgen.OakSapling).
//		TrunkPlacer(worldgen.FixedHeight(5)).
//		FoliagePlacer(worldgen.Bulb()).
//		SpawnChance(10).
//		Build()
//
// Field catalog:
//   - Mandatory: TrunkProvider, FoliageProvider, SaplingProvider, TrunkPlacer, FoliagePlacer.
//   - Optional: MinimumSize (two layers 1/0/1), decorators (none), DirtProvider (dirt),
//     IgnoreVines (false), ForceDirt (false), SpawnChance (3), placement modifiers (none),
//     OverrideDefaultPlacement (false), BiomeSelector (found in the overworld).
//
// Errors:
//   - ErrMissingField via *MissingFieldError lists every mandatory field left unset.
//   - ErrInvalidValue via *InvalidValueError reports the first rejected setter argument.
//   - ErrAlreadyBuilt is returned when Build is called again on a finalized builder.
//
// A Builder is meant to be created, filled and built by a single goroutine. It carries no
// locking; sharing one across goroutines requires external synchronization.
package tree
