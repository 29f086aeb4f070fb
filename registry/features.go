package registry

import (
	"slices"
	"sync"

	"github.com/goliatone/go-arctree/logger"
	"github.com/goliatone/go-arctree/tree"
	"github.com/goliatone/go-arctree/worldgen"
	"github.com/goliatone/go-errors"
)

// GenerationStep is the world-generation phase a feature is added in.
type GenerationStep string

// VegetalDecoration is the step trees are generated in.
const VegetalDecoration GenerationStep = "vegetal_decoration"

// Entry is one registered feature.
type Entry struct {
	Handle tree.Handle
	Config *tree.Config
	Step   GenerationStep
}

// Features is an in-memory feature registry. Safe for concurrent use.
type Features struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[worldgen.Identifier]int
	logger  logger.Logger
}

var _ tree.Registrar = (*Features)(nil)

// NewFeatures returns an empty registry.
func NewFeatures() *Features {
	return &Features{
		index:  map[worldgen.Identifier]int{},
		logger: logger.NewDefaultLogger("registry"),
	}
}

func (f *Features) WithLogger(l logger.Logger) *Features {
	if l != nil {
		f.logger = l
	}
	return f
}

// Register stores cfg under id in the vegetal decoration step.
func (f *Features) Register(id worldgen.Identifier, cfg *tree.Config) (tree.Handle, error) {
	if err := id.Validate(); err != nil {
		return tree.Handle{}, errors.Wrap(err, errors.CategoryBadInput, "invalid feature identifier").
			WithTextCode("INVALID_IDENTIFIER")
	}
	if cfg == nil {
		return tree.Handle{}, errors.New("feature config cannot be nil", errors.CategoryBadInput).
			WithTextCode("NIL_CONFIG").
			WithMetadata(map[string]any{"id": id.String()})
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.index[id]; exists {
		return tree.Handle{}, errors.New("feature already registered", errors.CategoryValidation).
			WithTextCode("DUPLICATE_FEATURE").
			WithMetadata(map[string]any{"id": id.String()})
	}

	handle := tree.Handle{ID: id, Index: len(f.entries)}
	f.entries = append(f.entries, Entry{Handle: handle, Config: cfg, Step: VegetalDecoration})
	f.index[id] = handle.Index
	f.logger.Debug("registered feature %s (index %d, spawn chance 1/%d)", id, handle.Index, cfg.SpawnChance())
	return handle, nil
}

// Lookup returns the configuration registered under id.
func (f *Features) Lookup(id worldgen.Identifier) (*tree.Config, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i, ok := f.index[id]
	if !ok {
		return nil, false
	}
	return f.entries[i].Config, true
}

// Sapling returns a sapling generator for the feature registered under id.
func (f *Features) Sapling(id worldgen.Identifier) (*tree.SaplingGenerator, bool) {
	cfg, ok := f.Lookup(id)
	if !ok {
		return nil, false
	}
	return tree.NewSaplingGenerator(cfg), true
}

// Len returns the number of registered features.
func (f *Features) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Entries returns every entry in registration order.
func (f *Features) Entries() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.entries)
}

// Select returns, in registration order, the entries whose biome selector accepts ctx.
func (f *Features) Select(ctx worldgen.SelectionContext) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []Entry
	for _, e := range f.entries {
		if e.Config.Selects(ctx) {
			out = append(out, e)
		}
	}
	return out
}
