package sniffer

import (
	"encoding/hex"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/hsmap/internal/adapters/sniffer/ie"
)

// frameBuilder assembles raw 802.11 management frames byte by byte so the
// tests do not depend on gopacket's serialization path.
type frameBuilder struct {
	data []byte
}

// addHeader writes the 24-byte management frame header. subtype is the full
// frame-control first byte (0x80 beacon, 0x50 probe response).
func (b *frameBuilder) addHeader(subtype byte, bssid []byte) {
	broadcast := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	b.data = append(b.data, subtype, 0x00) // frame control
	b.data = append(b.data, 0x00, 0x00)    // duration
	b.data = append(b.data, broadcast...)  // addr1: destination
	b.data = append(b.data, bssid...)      // addr2: source
	b.data = append(b.data, bssid...)      // addr3: BSSID
	b.data = append(b.data, 0x00, 0x00)    // sequence control
}

// addFixedParams writes the 12 fixed bytes of a beacon / probe-response body:
// timestamp, beacon interval, capability info.
func (b *frameBuilder) addFixedParams() {
	b.data = append(b.data, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)
	b.data = append(b.data, 0x64, 0x00)
	b.data = append(b.data, 0x01, 0x00)
}

func (b *frameBuilder) addIEs(hexIEs string) {
	raw, err := hex.DecodeString(hexIEs)
	if err != nil {
		panic(err)
	}
	b.data = append(b.data, raw...)
}

// addFCS appends a dummy frame check sequence; the Dot11 decoder strips the
// trailing 4 bytes without validating them.
func (b *frameBuilder) addFCS() {
	b.data = append(b.data, 0xde, 0xad, 0xbe, 0xef)
}

func (b *frameBuilder) packet() gopacket.Packet {
	return gopacket.NewPacket(b.data, layers.LayerTypeDot11, gopacket.Default)
}

const passpointIEs = "000477696e67" +
	"0b052a00cf611e" +
	"6b091e0a01610408621205" +
	"6f0a0e530111112222222229" +
	"dd07506f9a10143a01"

var testBSSID = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}

func TestExtractFrameInfoBeacon(t *testing.T) {
	builder := &frameBuilder{}
	builder.addHeader(0x80, testBSSID)
	builder.addFixedParams()
	builder.addIEs(passpointIEs)
	builder.addFCS()

	bssid, infoElements, ok := ExtractFrameInfo(builder.packet())
	require.True(t, ok)
	assert.Equal(t, "00:11:22:33:44:55", bssid)
	assert.Equal(t, "ie="+passpointIEs, infoElements)

	// The extracted text feeds straight into the decoder.
	nd, err := ie.ParseNetworkDescriptor(bssid, infoElements, nil)
	require.NoError(t, err)
	ssid, ok := nd.SSID()
	require.True(t, ok)
	assert.Equal(t, "wing", ssid)
	assert.True(t, nd.IsInterworking())
	assert.Equal(t, []uint64{0x111111, 0x2222222229}, nd.RoamingConsortiums())
}

func TestExtractFrameInfoProbeResponse(t *testing.T) {
	builder := &frameBuilder{}
	builder.addHeader(0x50, testBSSID)
	builder.addFixedParams()
	builder.addIEs("000477696e67")
	builder.addFCS()

	bssid, infoElements, ok := ExtractFrameInfo(builder.packet())
	require.True(t, ok)
	assert.Equal(t, "00:11:22:33:44:55", bssid)
	assert.Equal(t, "ie=000477696e67", infoElements)
}

func TestExtractFrameInfoIgnoresOtherFrames(t *testing.T) {
	// Probe request (0x40): management, but carries no BSS description.
	builder := &frameBuilder{}
	builder.addHeader(0x40, testBSSID)
	builder.addIEs("000477696e67")
	builder.addFCS()

	_, _, ok := ExtractFrameInfo(builder.packet())
	assert.False(t, ok)
}

func TestExtractFrameInfoNonDot11(t *testing.T) {
	packet := gopacket.NewPacket([]byte{0x00, 0x01, 0x02, 0x03},
		layers.LayerTypeEthernet, gopacket.Default)
	_, _, ok := ExtractFrameInfo(packet)
	assert.False(t, ok)
}
