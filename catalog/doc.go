// Package catalog loads declarative tree definitions and compiles them into tree configurations.
//
// A Loader layers sources the way an application config does: default values, Go structs,
// json/yaml/toml files, ARCTREE_ environment variables and command line flags, merged by
// priority into a koanf store. Solvers then resolve ${path} references and {{ expr }}
// expressions, and the result is decoded into a Document.
//
// A Compiler turns each Definition into a *tree.Config through registry.Types, so every
// mandatory-field and value check of tree.Builder applies to file-based trees too.
//
//	loader := catalog.NewLoader().
//		WithFile("trees.yaml").
//		WithEnv(catalog.DefaultEnvPrefix, catalog.DefaultEnvDelimiter)
//	handles, err := catalog.Install(ctx, loader, catalog.NewCompiler(nil), registry.NewFeatures())
//
// Shorthands:
//   - a string where a typed part is expected means {type: <string>}; for block providers a
//     string that is not a provider type is read as a block state, e.g. "minecraft:oak_log[axis=y]".
//   - ignore_vines, force_dirt and override_default_modifiers are OptionalBool values; an unset
//     value never overrides a lower layer.
package catalog
