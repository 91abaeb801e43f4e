package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible generation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical datasets.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemTestForm is the RNG subsystem for the shared test form
	// drawn once per run in fixed_form item mode.
	SubsystemTestForm = "test_form"
)

// SubsystemStudent returns the subsystem name for student N.
// Every student owns an isolated stream so generation can be split
// across workers without changing the output.
func SubsystemStudent(index int) string {
	return fmt.Sprintf("student_%d", index)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
// Workers that need their own stream use StreamFor, which does not touch
// the cache.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := StreamFor(p.key, name)
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// StreamFor returns a fresh, uncached RNG for the named subsystem.
// It is a pure function of (key, name) and therefore safe to call from
// concurrent workers; the returned *rand.Rand must stay with its caller.
func StreamFor(key SimulationKey, name string) *rand.Rand {
	return rand.New(rand.NewSource(int64(key) ^ fnv1a64(name)))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
