// Package sniffer acquires beacon and probe-response frames from a monitor
// mode interface or a pcap file and hands their IE payloads to the decoder.
package sniffer

import (
	"context"
	"log"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/lcalzada-xor/hsmap/internal/telemetry"
)

const snapLen = 65536

// Sniffer implements ports.FrameSource over libpcap.
type Sniffer struct {
	Interface string
	PcapPath  string // non-empty selects offline replay
	Debug     bool
}

// NewLive captures from an interface in monitor mode.
func NewLive(iface string, debug bool) *Sniffer {
	return &Sniffer{Interface: iface, Debug: debug}
}

// NewOffline replays a previously captured pcap file.
func NewOffline(path string, debug bool) *Sniffer {
	return &Sniffer{PcapPath: path, Debug: debug}
}

func (s *Sniffer) name() string {
	if s.PcapPath != "" {
		return "pcap"
	}
	return s.Interface
}

// Run feeds extracted (bssid, ie text) pairs into sink until the context is
// cancelled or an offline source drains.
func (s *Sniffer) Run(ctx context.Context, sink func(bssid, infoElements string)) error {
	var handle *pcap.Handle
	var err error

	if s.PcapPath != "" {
		handle, err = pcap.OpenOffline(s.PcapPath)
	} else {
		handle, err = pcap.OpenLive(s.Interface, snapLen, true, pcap.BlockForever)
	}
	if err != nil {
		return err
	}
	defer handle.Close()

	// Only management frames carry the IEs we decode.
	if err := handle.SetBPFFilter("type mgt subtype beacon or type mgt subtype probe-resp"); err != nil {
		// Offline captures on non-802.11 link types reject the filter;
		// ExtractFrameInfo discards irrelevant frames anyway.
		log.Printf("sniffer: BPF filter not applied: %v", err)
	}

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	packets := source.Packets()

	for {
		select {
		case <-ctx.Done():
			return nil
		case packet, ok := <-packets:
			if !ok {
				return nil
			}
			telemetry.FramesCaptured.WithLabelValues(s.name()).Inc()
			if bssid, infoElements, relevant := ExtractFrameInfo(packet); relevant {
				sink(bssid, infoElements)
			}
		}
	}
}
