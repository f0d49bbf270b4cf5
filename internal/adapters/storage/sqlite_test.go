package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

func newTestAdapter(t *testing.T) *SQLiteAdapter {
	t.Helper()
	adapter, err := NewSQLiteAdapter(filepath.Join(t.TempDir(), "networks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestSaveAndLoadNetwork(t *testing.T) {
	adapter := newTestAdapter(t)
	adapter.SetSessionID("session-1")

	nd := domain.NewNetworkDescriptor(domain.MustParseMAC("00:11:22:33:44:55"), fullScan(), nil)
	require.NoError(t, adapter.SaveNetwork(nd))

	loaded, err := adapter.LoadNetworks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.True(t, nd.Equal(got))
	ssid, ok := got.SSID()
	require.True(t, ok)
	assert.Equal(t, "wing", ssid)
	assert.Equal(t, []uint64{0x111111, 0x2222222229}, got.RoamingConsortiums())
	assert.Equal(t, 314, got.ANQPDomainID())
}

func TestSavePreservesFirstSeen(t *testing.T) {
	adapter := newTestAdapter(t)
	nd := domain.NewNetworkDescriptor(domain.MustParseMAC("00:11:22:33:44:55"), fullScan(), nil)

	require.NoError(t, adapter.SaveNetwork(nd))

	var first NetworkModel
	require.NoError(t, adapter.db.Where("key = ?", nd.KeyString()).First(&first).Error)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, adapter.SaveNetwork(nd))

	var second NetworkModel
	require.NoError(t, adapter.db.Where("key = ?", nd.KeyString()).First(&second).Error)

	assert.Equal(t, first.FirstSeen.UnixNano(), second.FirstSeen.UnixNano())
	assert.True(t, second.LastSeen.After(second.FirstSeen))

	loaded, err := adapter.LoadNetworks()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSaveDistinctNetworks(t *testing.T) {
	adapter := newTestAdapter(t)

	for _, bssid := range []string{"00:11:22:33:44:55", "00:11:22:33:44:56", "00:11:22:33:44:57"} {
		scan := domain.NewScanData()
		scan.SSIDPresent = true
		scan.SSIDOctets = []byte("wing")
		nd := domain.NewNetworkDescriptor(domain.MustParseMAC(bssid), scan, nil)
		require.NoError(t, adapter.SaveNetwork(nd))
	}

	loaded, err := adapter.LoadNetworks()
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestLoadSkipsCorruptRows(t *testing.T) {
	adapter := newTestAdapter(t)

	nd := domain.NewNetworkDescriptor(domain.MustParseMAC("00:11:22:33:44:55"), fullScan(), nil)
	require.NoError(t, adapter.SaveNetwork(nd))

	// Corrupt a row behind the adapter's back; the load must go on without it.
	bad := NetworkModel{Key: "'bad':zz", BSSID: "zz"}
	require.NoError(t, adapter.db.Create(&bad).Error)

	loaded, err := adapter.LoadNetworks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, nd.KeyString(), loaded[0].KeyString())
}

func TestLoadEmptyDatabase(t *testing.T) {
	adapter := newTestAdapter(t)
	loaded, err := adapter.LoadNetworks()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
