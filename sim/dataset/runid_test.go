package dataset

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literise/placement-sim/sim"
)

func TestRunID_StableForSameInputs(t *testing.T) {
	a, err := RunID(sim.DefaultConfig(), testMeta())
	require.NoError(t, err)
	b, err := RunID(sim.DefaultConfig(), testMeta())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, uuid.Nil, a)
	assert.Equal(t, uuid.Version(5), a.Version())
}

func TestRunID_IgnoresWorkersAndExistingRunID(t *testing.T) {
	base, err := RunID(sim.DefaultConfig(), testMeta())
	require.NoError(t, err)

	cfg := sim.DefaultConfig()
	cfg.Workers = 16
	meta := testMeta()
	meta.RunID = "stale"
	other, err := RunID(cfg, meta)
	require.NoError(t, err)
	assert.Equal(t, base, other)
}

func TestRunID_ChangesWithOutputInputs(t *testing.T) {
	base, err := RunID(sim.DefaultConfig(), testMeta())
	require.NoError(t, err)

	cfg := sim.DefaultConfig()
	cfg.Seed = 7
	bySeed, err := RunID(cfg, testMeta())
	require.NoError(t, err)
	assert.NotEqual(t, base, bySeed)

	meta := testMeta()
	meta.CollectionDate = "2026-03-02"
	byDate, err := RunID(sim.DefaultConfig(), meta)
	require.NoError(t, err)
	assert.NotEqual(t, base, byDate)
}
