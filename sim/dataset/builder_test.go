package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_StampsMetadata(t *testing.T) {
	b := NewBuilder(testMeta(), 2)
	require.NoError(t, b.Append(record("STU_00000", 0, 28)))
	assert.Equal(t, 1, b.Len())

	table, err := b.Finalize()
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "2026-03-01", table.Rows[0].CollectionDate)
	assert.Equal(t, SchemaVersion, table.Rows[0].Version)
	assert.Equal(t, testMeta(), table.Meta)
}

func TestBuilder_RejectsDuplicateKey(t *testing.T) {
	b := NewBuilder(testMeta(), 0)
	require.NoError(t, b.Append(record("STU_00000", 0, 28)))
	require.NoError(t, b.Append(record("STU_00000", 0, 12)))
	require.NoError(t, b.Append(record("STU_00001", 1, 28)))

	err := b.Append(record("STU_00000", 0, 12))
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 3, b.Len())
}

func TestBuilder_FinalizeOnce(t *testing.T) {
	b := NewBuilder(testMeta(), 1)
	_, err := b.Finalize()
	require.NoError(t, err)

	_, err = b.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, b.Append(record("STU_00000", 0, 28)), ErrFinalized)
}
