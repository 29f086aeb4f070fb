package tree

import "github.com/goliatone/go-arctree/worldgen"

// Builder accumulates tree fields. The zero value is not usable; call New.
type Builder struct {
	trunkProvider   slot[worldgen.BlockStateProvider]
	foliageProvider slot[worldgen.BlockStateProvider]
	saplingProvider slot[worldgen.BlockStateProvider]
	trunkPlacer     slot[worldgen.TrunkPlacer]
	foliagePlacer   slot[worldgen.FoliagePlacer]

	minimumSize              slot[worldgen.FeatureSize]
	decorators               []worldgen.TreeDecorator
	dirtProvider             slot[worldgen.BlockStateProvider]
	ignoreVines              slot[bool]
	forceDirt                slot[bool]
	spawnChance              slot[int]
	modifiers                []worldgen.PlacementModifier
	overrideDefaultPlacement slot[bool]
	selector                 slot[worldgen.BiomeSelector]

	valueErr error
	built    bool
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) reject(field string, value any, reason string) {
	if b.valueErr != nil {
		return
	}
	b.valueErr = &InvalidValueError{Field: field, Value: value, Reason: reason}
}

// TrunkProvider sets the block provider for the trunk. Mandatory.
func (b *Builder) TrunkProvider(p worldgen.BlockStateProvider) *Builder {
	if p == nil {
		b.reject(FieldTrunkProvider, p, "must not be nil")
		return b
	}
	b.trunkProvider.put(worldgen.CloneProvider(p))
	return b
}

// TrunkBlock sets the trunk to a single block state.
func (b *Builder) TrunkBlock(state worldgen.BlockState) *Builder {
	return b.TrunkProvider(worldgen.Simple(state))
}

// FoliageProvider sets the block provider for the leaves. Mandatory.
func (b *Builder) FoliageProvider(p worldgen.BlockStateProvider) *Builder {
	if p == nil {
		b.reject(FieldFoliageProvider, p, "must not be nil")
		return b
	}
	b.foliageProvider.put(worldgen.CloneProvider(p))
	return b
}

// FoliageBlock sets the leaves to a single block state.
func (b *Builder) FoliageBlock(state worldgen.BlockState) *Builder {
	return b.FoliageProvider(worldgen.Simple(state))
}

// SaplingProvider sets the block provider for the sapling that grows the tree. Mandatory.
func (b *Builder) SaplingProvider(p worldgen.BlockStateProvider) *Builder {
	if p == nil {
		b.reject(FieldSaplingProvider, p, "must not be nil")
		return b
	}
	b.saplingProvider.put(worldgen.CloneProvider(p))
	return b
}

// SaplingBlock sets the sapling to a single block state.
func (b *Builder) SaplingBlock(state worldgen.BlockState) *Builder {
	return b.SaplingProvider(worldgen.Simple(state))
}

// TrunkPlacer sets the trunk shape. Mandatory.
func (b *Builder) TrunkPlacer(p worldgen.TrunkPlacer) *Builder {
	if p == nil {
		b.reject(FieldTrunkPlacer, p, "must not be nil")
		return b
	}
	b.trunkPlacer.put(p)
	return b
}

// FoliagePlacer sets the canopy shape. Mandatory.
func (b *Builder) FoliagePlacer(p worldgen.FoliagePlacer) *Builder {
	if p == nil {
		b.reject(FieldFoliagePlacer, p, "must not be nil")
		return b
	}
	b.foliagePlacer.put(p)
	return b
}

// MinimumSize sets the clearance the tree needs.
func (b *Builder) MinimumSize(size worldgen.FeatureSize) *Builder {
	if size == nil {
		b.reject(FieldMinimumSize, size, "must not be nil")
		return b
	}
	b.minimumSize.put(size)
	return b
}

// MinimumSizeLayers is MinimumSize with a two-layer size.
func (b *Builder) MinimumSizeLayers(limit, lower, upper int) *Builder {
	return b.MinimumSize(worldgen.TwoLayers(limit, lower, upper))
}

// AddDecorator appends one decorator.
func (b *Builder) AddDecorator(d worldgen.TreeDecorator) *Builder {
	if d == nil {
		b.reject(FieldDecorators, d, "must not be nil")
		return b
	}
	b.decorators = append(b.decorators, d)
	return b
}

// AddDecorators appends decorators in the given order.
func (b *Builder) AddDecorators(ds ...worldgen.TreeDecorator) *Builder {
	for _, d := range ds {
		b.AddDecorator(d)
	}
	return b
}

// DirtProvider sets the block placed under the trunk.
func (b *Builder) DirtProvider(p worldgen.BlockStateProvider) *Builder {
	if p == nil {
		b.reject(FieldDirtProvider, p, "must not be nil")
		return b
	}
	b.dirtProvider.put(worldgen.CloneProvider(p))
	return b
}

// DirtBlock sets the ground block to a single state.
func (b *Builder) DirtBlock(state worldgen.BlockState) *Builder {
	return b.DirtProvider(worldgen.Simple(state))
}

// IgnoreVines lets the tree grow through vines.
func (b *Builder) IgnoreVines() *Builder {
	b.ignoreVines.put(true)
	return b
}

// ForceDirt replaces the ground block even when it is already soil.
func (b *Builder) ForceDirt() *Builder {
	b.forceDirt.put(true)
	return b
}

// SpawnChance sets the "1 in n" chance a candidate position grows a tree.
// Only used by the default placement; see OverrideDefaultPlacement.
func (b *Builder) SpawnChance(n int) *Builder {
	if n <= 0 || n > MaxSpawnChance {
		b.reject(FieldSpawnChance, n, "must be between 1 and 10")
		return b
	}
	b.spawnChance.put(n)
	return b
}

// AddPlacementModifier appends one placement modifier.
func (b *Builder) AddPlacementModifier(m worldgen.PlacementModifier) *Builder {
	if m == nil {
		b.reject(FieldPlacementModifiers, m, "must not be nil")
		return b
	}
	b.modifiers = append(b.modifiers, m)
	return b
}

// AddPlacementModifiers appends modifiers in the given order.
func (b *Builder) AddPlacementModifiers(ms ...worldgen.PlacementModifier) *Builder {
	for _, m := range ms {
		b.AddPlacementModifier(m)
	}
	return b
}

// OverrideDefaultPlacement drops the default rarity, square and heightmap modifiers so only
// the added modifiers apply.
func (b *Builder) OverrideDefaultPlacement() *Builder {
	b.overrideDefaultPlacement.put(true)
	return b
}

// BiomeSelector sets the predicate choosing the biomes the tree is added to.
func (b *Builder) BiomeSelector(selector worldgen.BiomeSelector) *Builder {
	if selector == nil {
		b.reject(FieldBiomeSelector, nil, "must not be nil")
		return b
	}
	b.selector.put(selector)
	return b
}

// Build validates the builder and returns the immutable configuration.
// A failed Build leaves the builder open so the caller can fix it; a successful one
// finalizes it and later calls return ErrAlreadyBuilt.
func (b *Builder) Build() (*Config, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	if b.valueErr != nil {
		return nil, b.valueErr
	}
	if err := b.checkMandatory(); err != nil {
		return nil, err
	}
	for _, f := range fields {
		if f.fill != nil {
			f.fill(b)
		}
	}
	b.built = true
	return b.config(), nil
}

// BuildAndRegister builds the configuration and hands it to r under id.
func (b *Builder) BuildAndRegister(r Registrar, id worldgen.Identifier) (Handle, error) {
	cfg, err := b.Build()
	if err != nil {
		return Handle{}, err
	}
	return r.Register(id, cfg)
}

func (b *Builder) checkMandatory() error {
	var missing []string
	for _, f := range fields {
		if f.mandatory && !f.isSet(b) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

func (b *Builder) config() *Config {
	return &Config{
		trunkProvider:            b.trunkProvider.value,
		foliageProvider:          b.foliageProvider.value,
		saplingProvider:          b.saplingProvider.value,
		trunkPlacer:              b.trunkPlacer.value,
		foliagePlacer:            b.foliagePlacer.value,
		minimumSize:              b.minimumSize.value,
		decorators:               cloneSlice(b.decorators),
		dirtProvider:             b.dirtProvider.value,
		ignoreVines:              b.ignoreVines.value,
		forceDirt:                b.forceDirt.value,
		spawnChance:              b.spawnChance.value,
		modifiers:                cloneSlice(b.modifiers),
		overrideDefaultPlacement: b.overrideDefaultPlacement.value,
		selector:                 b.selector.value,
	}
}
