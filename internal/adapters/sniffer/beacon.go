package sniffer

import (
	"encoding/hex"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// ExtractFrameInfo pulls the BSSID and the information-element payload out
// of a beacon or probe-response frame, rendered in the textual forms the
// decoder consumes. ok is false for any other frame type.
func ExtractFrameInfo(packet gopacket.Packet) (bssid string, infoElements string, ok bool) {
	dot11Layer := packet.Layer(layers.LayerTypeDot11)
	if dot11Layer == nil {
		return "", "", false
	}
	dot11, castOK := dot11Layer.(*layers.Dot11)
	if !castOK {
		return "", "", false
	}

	// The IEs start after the fixed fields of the management frame body;
	// gopacket exposes them as the management layer's payload.
	var payload []byte
	if beacon := packet.Layer(layers.LayerTypeDot11MgmtBeacon); beacon != nil {
		payload = beacon.LayerPayload()
	} else if probeResp := packet.Layer(layers.LayerTypeDot11MgmtProbeResp); probeResp != nil {
		payload = probeResp.LayerPayload()
	} else {
		return "", "", false
	}

	// Address3 carries the BSSID in AP-originated management frames.
	return dot11.Address3.String(), "ie=" + hex.EncodeToString(payload), true
}
