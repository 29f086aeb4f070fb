package worldgen

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
)

// BlockState describes a block with an optional set of state properties,
// written as "minecraft:oak_log[axis=y]".
type BlockState struct {
	Block      Identifier
	Properties map[string]string
}

// State builds a property-less BlockState from an identifier string. It panics on a malformed id.
func State(id string) BlockState {
	return BlockState{Block: MustIdentifier(id)}
}

// ParseBlockState parses "namespace:path[key=value,...]".
func ParseBlockState(s string) (BlockState, error) {
	s = strings.TrimSpace(s)
	name, props, hasProps := strings.Cut(s, "[")
	id, err := ParseIdentifier(name)
	if err != nil {
		return BlockState{}, err
	}
	state := BlockState{Block: id}
	if !hasProps {
		return state, nil
	}
	props, ok := strings.CutSuffix(props, "]")
	if !ok {
		return BlockState{}, fmt.Errorf("worldgen: invalid block state %q: missing closing bracket", s)
	}
	if strings.TrimSpace(props) == "" {
		return state, nil
	}
	state.Properties = map[string]string{}
	for _, pair := range strings.Split(props, ",") {
		key, value, found := strings.Cut(pair, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !found || key == "" || value == "" {
			return BlockState{}, fmt.Errorf("worldgen: invalid block state %q: bad property %q", s, pair)
		}
		state.Properties[key] = value
	}
	return state, nil
}

// With returns a copy of the state with the property set.
func (s BlockState) With(key, value string) BlockState {
	props := maps.Clone(s.Properties)
	if props == nil {
		props = map[string]string{}
	}
	props[key] = value
	return BlockState{Block: s.Block, Properties: props}
}

// Clone returns a copy that shares no property map with s.
func (s BlockState) Clone() BlockState {
	return BlockState{Block: s.Block, Properties: maps.Clone(s.Properties)}
}

// Equal compares block and properties.
func (s BlockState) Equal(other BlockState) bool {
	return s.Block == other.Block && maps.Equal(s.Properties, other.Properties)
}

func (s BlockState) String() string {
	if len(s.Properties) == 0 {
		return s.Block.String()
	}
	keys := slices.Sorted(maps.Keys(s.Properties))
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+s.Properties[k])
	}
	return s.Block.String() + "[" + strings.Join(pairs, ",") + "]"
}

// MarshalText implements encoding.TextMarshaler.
func (s BlockState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *BlockState) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Standard block states used by defaults and examples.
var (
	Dirt       = State("minecraft:dirt")
	OakLog     = State("minecraft:oak_log")
	OakLeaves  = State("minecraft:oak_leaves")
	OakSapling = State("minecraft:oak_sapling")
)

// Provider type identifiers.
var (
	TypeSimpleStateProvider   = ID("arctree", "simple")
	TypeWeightedStateProvider = ID("arctree", "weighted")
)

// BlockStateProvider supplies the block state placed for a tree part.
type BlockStateProvider interface {
	Type() Identifier
	State(r *rand.Rand) BlockState
}

// ProviderCloner is implemented by providers holding mutable state.
type ProviderCloner interface {
	CloneProvider() BlockStateProvider
}

// CloneProvider returns a deep copy of p when it implements ProviderCloner, p otherwise.
func CloneProvider(p BlockStateProvider) BlockStateProvider {
	if c, ok := p.(ProviderCloner); ok {
		return c.CloneProvider()
	}
	return p
}

// SimpleStateProvider always yields the same state.
type SimpleStateProvider struct {
	Value BlockState
}

// Simple wraps a copy of state in a SimpleStateProvider.
func Simple(state BlockState) SimpleStateProvider {
	return SimpleStateProvider{Value: state.Clone()}
}

func (SimpleStateProvider) Type() Identifier { return TypeSimpleStateProvider }

func (p SimpleStateProvider) State(*rand.Rand) BlockState { return p.Value.Clone() }

func (p SimpleStateProvider) CloneProvider() BlockStateProvider { return Simple(p.Value) }

// WeightedState is one entry of a WeightedStateProvider.
type WeightedState struct {
	State  BlockState
	Weight int
}

// WeightedStateProvider picks a state proportionally to the entry weights.
type WeightedStateProvider struct {
	Entries []WeightedState
}

// Weighted copies entries into a WeightedStateProvider.
func Weighted(entries ...WeightedState) WeightedStateProvider {
	out := make([]WeightedState, len(entries))
	for i, e := range entries {
		out[i] = WeightedState{State: e.State.Clone(), Weight: e.Weight}
	}
	return WeightedStateProvider{Entries: out}
}

func (WeightedStateProvider) Type() Identifier { return TypeWeightedStateProvider }

func (p WeightedStateProvider) CloneProvider() BlockStateProvider { return Weighted(p.Entries...) }

// State picks an entry. A nil source yields the first entry with a positive weight.
func (p WeightedStateProvider) State(r *rand.Rand) BlockState {
	total := 0
	for _, e := range p.Entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total == 0 {
		return BlockState{}
	}
	n := 0
	if r != nil {
		n = r.IntN(total)
	}
	for _, e := range p.Entries {
		if e.Weight <= 0 {
			continue
		}
		if n < e.Weight {
			return e.State.Clone()
		}
		n -= e.Weight
	}
	return p.Entries[len(p.Entries)-1].State.Clone()
}
