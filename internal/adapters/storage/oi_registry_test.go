package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOIRegistry(t *testing.T) *OIRegistry {
	t.Helper()
	registry, err := NewOIRegistry(filepath.Join(t.TempDir(), "oi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { registry.Close() })
	return registry
}

func TestFormatOI(t *testing.T) {
	// Standard 3-byte OIs are zero-padded; longer OIs keep their width.
	assert.Equal(t, "506f9a", FormatOI(0x506f9a))
	assert.Equal(t, "000fac", FormatOI(0xfac))
	assert.Equal(t, "2233445566", FormatOI(0x2233445566))
}

func TestLookupOperator(t *testing.T) {
	registry := newTestOIRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.InsertOI(ctx, OIEntry{
		OI:          "506f9a",
		Operator:    "Wi-Fi Alliance",
		Country:     "US",
		LastUpdated: time.Now(),
	}))

	operator, err := registry.LookupOperator(ctx, 0x506f9a)
	require.NoError(t, err)
	assert.Equal(t, "Wi-Fi Alliance", operator)

	_, err = registry.LookupOperator(ctx, 0x111111)
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}

func TestInsertOIReplaces(t *testing.T) {
	registry := newTestOIRegistry(t)
	ctx := context.Background()

	entry := OIEntry{OI: "111111", Operator: "First", LastUpdated: time.Now()}
	require.NoError(t, registry.InsertOI(ctx, entry))
	entry.Operator = "Second"
	require.NoError(t, registry.InsertOI(ctx, entry))

	operator, err := registry.LookupOperator(ctx, 0x111111)
	require.NoError(t, err)
	assert.Equal(t, "Second", operator)

	count, err := registry.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBulkInsertOIs(t *testing.T) {
	registry := newTestOIRegistry(t)
	ctx := context.Background()
	now := time.Now()

	entries := []OIEntry{
		{OI: "111111", Operator: "Operator A", Country: "DE", LastUpdated: now},
		{OI: "222222", Operator: "Operator B", Country: "FR", LastUpdated: now},
		{OI: "333333", Operator: "Operator C", LastUpdated: now},
	}
	require.NoError(t, registry.BulkInsertOIs(ctx, entries))

	count, err := registry.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	operator, err := registry.LookupOperator(ctx, 0x222222)
	require.NoError(t, err)
	assert.Equal(t, "Operator B", operator)
}

func TestRegistryClosed(t *testing.T) {
	registry := newTestOIRegistry(t)
	require.NoError(t, registry.Close())

	ctx := context.Background()
	_, err := registry.LookupOperator(ctx, 0x506f9a)
	assert.ErrorIs(t, err, ErrRegistryClosed)

	err = registry.InsertOI(ctx, OIEntry{OI: "111111", Operator: "X"})
	assert.ErrorIs(t, err, ErrRegistryClosed)

	_, err = registry.Count(ctx)
	assert.ErrorIs(t, err, ErrRegistryClosed)

	// Closing twice is a no-op.
	assert.NoError(t, registry.Close())
}
