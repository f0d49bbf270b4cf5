package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/hsmap/internal/anqp"
)

func scanWithSSID(ssid string) *ScanData {
	scan := NewScanData()
	scan.SSIDPresent = true
	scan.SSIDOctets = []byte(ssid)
	return scan
}

func TestNewNetworkDescriptorDefaults(t *testing.T) {
	nd := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:55"), NewScanData(), nil)

	_, ok := nd.SSID()
	assert.False(t, ok)
	assert.Nil(t, nd.SSIDOctets())
	assert.Equal(t, MustParseMAC("00:11:22:33:44:55"), nd.BSSID())
	assert.True(t, nd.HESSID().IsZero())
	assert.False(t, nd.IsInterworking())
	assert.False(t, nd.Has80211uInfo())
	assert.Equal(t, -1, nd.ANQPDomainID())
	assert.Nil(t, nd.RoamingConsortiums())
	assert.Empty(t, nd.ANQPElements())

	_, ok = nd.Ant()
	assert.False(t, ok)
	_, ok = nd.HSRelease()
	assert.False(t, ok)
	_, ok = nd.ExtendedCapabilities()
	assert.False(t, ok)
}

func TestNetworkDescriptorImmutability(t *testing.T) {
	scan := scanWithSSID("cafe")
	scan.RoamingConsortiums = []uint64{0x111111}
	nd := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:55"), scan, nil)

	// Mutating the source scan after construction must not show through.
	scan.SSIDOctets[0] = 'x'
	scan.RoamingConsortiums[0] = 0xdead
	ssid, _ := nd.SSID()
	assert.Equal(t, "cafe", ssid)
	assert.Equal(t, []uint64{0x111111}, nd.RoamingConsortiums())

	// Accessor results are copies, not views.
	nd.RoamingConsortiums()[0] = 0xbeef
	assert.Equal(t, []uint64{0x111111}, nd.RoamingConsortiums())
	nd.SSIDOctets()[0] = 'y'
	assert.Equal(t, []byte("cafe"), nd.SSIDOctets())
}

func TestSSIDEncoding(t *testing.T) {
	utf8Caps := ssidUTF8Bit
	latin1Caps := uint64(0)
	octets := []byte{0xc3, 0xa9} // UTF-8 "é", Latin-1 "Ã©"

	tests := []struct {
		name string
		caps *uint64
		want string
		utf8 bool
	}{
		{"utf8 bit set", &utf8Caps, "é", true},
		{"utf8 bit clear", &latin1Caps, "Ã©", false},
		{"no ext caps element", nil, "Ã©", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := NewScanData()
			scan.SSIDPresent = true
			scan.SSIDOctets = octets
			scan.ExtendedCapabilities = tt.caps

			nd := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:55"), scan, nil)
			ssid, ok := nd.SSID()
			require.True(t, ok)
			assert.Equal(t, tt.want, ssid)
			assert.Equal(t, tt.utf8, nd.IsSSIDUTF8())
			// The raw octets are preserved either way.
			assert.Equal(t, octets, nd.SSIDOctets())
		})
	}
}

func TestSSIDLatin1HighBytes(t *testing.T) {
	// Every Latin-1 octet maps to the code point of equal value, including
	// the 0x80-0x9f control range where naive conversions go wrong.
	scan := NewScanData()
	scan.SSIDPresent = true
	scan.SSIDOctets = []byte{0x80, 0x9f, 0xff}

	nd := NewNetworkDescriptor(0, scan, nil)
	ssid, _ := nd.SSID()
	assert.Equal(t, "ÿ", ssid)
}

func TestComplete(t *testing.T) {
	nd := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:55"), scanWithSSID("wing"), nil)
	assert.Empty(t, nd.ANQPElements())

	elements := map[anqp.ElementType]anqp.Element{
		anqp.VenueName: {Type: anqp.VenueName, Payload: []byte{0x01}},
	}
	completed := nd.Complete(elements)

	// The original descriptor is untouched.
	assert.Empty(t, nd.ANQPElements())
	assert.Len(t, completed.ANQPElements(), 1)

	// Identity and every scanned field carry over.
	assert.True(t, nd.Equal(completed))
	assert.Equal(t, nd.KeyString(), completed.KeyString())
	assert.Equal(t, nd.BSSID(), completed.BSSID())

	// Mutating the caller's map afterwards does not reach the descriptor.
	elements[anqp.NAIRealm] = anqp.Element{Type: anqp.NAIRealm}
	assert.Len(t, completed.ANQPElements(), 1)
}

func TestEqualAndHash(t *testing.T) {
	bssid := MustParseMAC("00:11:22:33:44:55")
	a := NewNetworkDescriptor(bssid, scanWithSSID("wing"), nil)
	b := NewNetworkDescriptor(bssid, scanWithSSID("wing"), nil)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	// Equality ignores everything except (SSID, BSSID).
	richer := scanWithSSID("wing")
	richer.StationCount = 99
	ant := AntFreePublic
	richer.Ant = &ant
	c := NewNetworkDescriptor(bssid, richer, nil)
	assert.True(t, a.Equal(c))
	assert.Equal(t, a.Hash(), c.Hash())

	otherSSID := NewNetworkDescriptor(bssid, scanWithSSID("ring"), nil)
	assert.False(t, a.Equal(otherSSID))

	otherBSSID := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:56"), scanWithSSID("wing"), nil)
	assert.False(t, a.Equal(otherBSSID))

	// Absent SSID compares equal to absent, not to empty-string.
	absent1 := NewNetworkDescriptor(bssid, NewScanData(), nil)
	absent2 := NewNetworkDescriptor(bssid, NewScanData(), nil)
	empty := NewNetworkDescriptor(bssid, scanWithSSID(""), nil)
	assert.True(t, absent1.Equal(absent2))
	assert.False(t, absent1.Equal(empty))
	assert.Equal(t, absent1.Hash(), absent2.Hash())
}

func TestKeyString(t *testing.T) {
	nd := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:55"), scanWithSSID("wing"), nil)
	assert.Equal(t, "'wing':00:11:22:33:44:55", nd.KeyString())
	assert.Equal(t, "00:11:22:33:44:55", nd.BSSIDString())

	absent := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:55"), NewScanData(), nil)
	assert.Equal(t, "'':00:11:22:33:44:55", absent.KeyString())
}

func TestHas80211uInfo(t *testing.T) {
	t.Run("interworking", func(t *testing.T) {
		scan := NewScanData()
		ant := AntPrivate
		scan.Ant = &ant
		assert.True(t, NewNetworkDescriptor(0, scan, nil).Has80211uInfo())
	})
	t.Run("roaming consortium only", func(t *testing.T) {
		scan := NewScanData()
		scan.RoamingConsortiums = []uint64{}
		assert.True(t, NewNetworkDescriptor(0, scan, nil).Has80211uInfo())
	})
	t.Run("hs indication only", func(t *testing.T) {
		scan := NewScanData()
		release := HSReleaseR1
		scan.HSRelease = &release
		assert.True(t, NewNetworkDescriptor(0, scan, nil).Has80211uInfo())
	})
	t.Run("plain network", func(t *testing.T) {
		assert.False(t, NewNetworkDescriptor(0, scanWithSSID("home"), nil).Has80211uInfo())
	})
}

func TestDescriptorString(t *testing.T) {
	scan := scanWithSSID("wing")
	ant := AntTestOrExperimental
	scan.Ant = &ant
	scan.Internet = true
	scan.RoamingConsortiums = []uint64{0x111111}

	s := NewNetworkDescriptor(MustParseMAC("00:11:22:33:44:55"), scan, nil).String()
	assert.Contains(t, s, `"wing"`)
	assert.Contains(t, s, "00:11:22:33:44:55")
	assert.Contains(t, s, "TestOrExperimental")
	assert.Contains(t, s, "111111")

	absent := NewNetworkDescriptor(0, NewScanData(), nil).String()
	assert.Contains(t, absent, "<absent>")
}
