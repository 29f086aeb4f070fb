package tree

import (
	"math/rand/v2"

	"github.com/goliatone/go-arctree/worldgen"
)

// SaplingGenerator hands out the configuration a sapling grows into.
type SaplingGenerator struct {
	cfg *Config
}

// NewSaplingGenerator wraps cfg. It panics on nil since a sapling without a tree is a wiring bug.
func NewSaplingGenerator(cfg *Config) *SaplingGenerator {
	if cfg == nil {
		panic("tree: nil config passed to NewSaplingGenerator")
	}
	return &SaplingGenerator{cfg: cfg}
}

// Tree returns the configuration grown from the sapling.
func (g *SaplingGenerator) Tree() *Config {
	return g.cfg
}

// Sapling returns the sapling block state.
func (g *SaplingGenerator) Sapling(r *rand.Rand) worldgen.BlockState {
	return g.cfg.saplingProvider.State(r)
}
