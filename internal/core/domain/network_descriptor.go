package domain

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/lcalzada-xor/hsmap/internal/anqp"
)

// HSRelease identifies the Hotspot 2.0 release advertised in the HS2.0
// Indication element.
type HSRelease int

const (
	HSReleaseR1 HSRelease = iota
	HSReleaseR2
	HSReleaseUnknown
)

func (r HSRelease) String() string {
	switch r {
	case HSReleaseR1:
		return "R1"
	case HSReleaseR2:
		return "R2"
	default:
		return "Unknown"
	}
}

// Bit 48 of the Extended Capabilities bitfield selects UTF-8 SSID encoding.
const ssidUTF8Bit uint64 = 0x0001000000000000

// NetworkDescriptor is an immutable view of a scanned Hotspot 2.0 / Passpoint
// network, assembled from the information elements of a beacon or probe
// response plus any externally resolved ANQP data. Values may be read
// concurrently without coordination; Complete returns a new descriptor
// instead of mutating.
type NetworkDescriptor struct {
	ssid        *string
	ssidOctets  []byte
	bssid       MAC
	hessid      MAC
	stationCnt  int
	channelUtil int
	capacity    int

	ant        *Ant
	internet   bool
	venueGroup *VenueGroup
	venueType  *VenueType

	hsRelease    *HSRelease
	anqpDomainID int

	anqpOICount        int
	roamingConsortiums []uint64

	extendedCapabilities *uint64

	anqpElements map[anqp.ElementType]anqp.Element
}

// NewNetworkDescriptor assembles the immutable descriptor from scanner
// output. SSID text is decoded here, after the full scan, so the encoding
// choice sees the final Extended Capabilities value regardless of element
// order in the stream.
func NewNetworkDescriptor(bssid MAC, scan *ScanData, anqpElements map[anqp.ElementType]anqp.Element) NetworkDescriptor {
	nd := NetworkDescriptor{
		bssid:                bssid,
		hessid:               scan.HESSID,
		stationCnt:           scan.StationCount,
		channelUtil:          scan.ChannelUtilization,
		capacity:             scan.Capacity,
		ant:                  scan.Ant,
		internet:             scan.Internet,
		venueGroup:           scan.VenueGroup,
		venueType:            scan.VenueType,
		hsRelease:            scan.HSRelease,
		anqpDomainID:         scan.ANQPDomainID,
		anqpOICount:          scan.ANQPOICount,
		extendedCapabilities: scan.ExtendedCapabilities,
		anqpElements:         copyANQPElements(anqpElements),
	}

	if scan.RoamingConsortiums != nil {
		nd.roamingConsortiums = append([]uint64{}, scan.RoamingConsortiums...)
	}

	if scan.SSIDPresent {
		nd.ssidOctets = append([]byte{}, scan.SSIDOctets...)
		ssid := decodeSSID(nd.ssidOctets, scan.ExtendedCapabilities)
		nd.ssid = &ssid
	}

	return nd
}

// Complete attaches externally resolved ANQP elements, returning a new
// descriptor that shares every other field. The receiver is never altered,
// so a descriptor handed off before ANQP resolution stays safe to read.
func (nd NetworkDescriptor) Complete(anqpElements map[anqp.ElementType]anqp.Element) NetworkDescriptor {
	completed := nd
	completed.anqpElements = copyANQPElements(anqpElements)
	return completed
}

// SSID returns the decoded network name. ok is false if no SSID element was
// present in the scan.
func (nd NetworkDescriptor) SSID() (string, bool) {
	if nd.ssid == nil {
		return "", false
	}
	return *nd.ssid, true
}

// SSIDOctets returns the raw SSID bytes as captured over the air.
func (nd NetworkDescriptor) SSIDOctets() []byte {
	if nd.ssidOctets == nil {
		return nil
	}
	return append([]byte{}, nd.ssidOctets...)
}

func (nd NetworkDescriptor) BSSID() MAC  { return nd.bssid }
func (nd NetworkDescriptor) HESSID() MAC { return nd.hessid }

func (nd NetworkDescriptor) StationCount() int       { return nd.stationCnt }
func (nd NetworkDescriptor) ChannelUtilization() int { return nd.channelUtil }
func (nd NetworkDescriptor) Capacity() int           { return nd.capacity }

// Ant returns the access network type. ok is false if no Interworking
// element was seen, in which case Internet is not meaningful either.
func (nd NetworkDescriptor) Ant() (Ant, bool) {
	if nd.ant == nil {
		return 0, false
	}
	return *nd.ant, true
}

// IsInterworking reports whether an Interworking (802.11u) element was seen.
func (nd NetworkDescriptor) IsInterworking() bool { return nd.ant != nil }

func (nd NetworkDescriptor) Internet() bool { return nd.internet }

func (nd NetworkDescriptor) VenueGroup() (VenueGroup, bool) {
	if nd.venueGroup == nil {
		return 0, false
	}
	return *nd.venueGroup, true
}

func (nd NetworkDescriptor) VenueType() (VenueType, bool) {
	if nd.venueType == nil {
		return 0, false
	}
	return *nd.venueType, true
}

func (nd NetworkDescriptor) HSRelease() (HSRelease, bool) {
	if nd.hsRelease == nil {
		return 0, false
	}
	return *nd.hsRelease, true
}

// ANQPDomainID returns the domain ID from the HS2.0 Indication element, or
// -1 if the element (or its domain ID field) was absent.
func (nd NetworkDescriptor) ANQPDomainID() int { return nd.anqpDomainID }

// ANQPOICount is the count of additional roaming-consortium OIs retrievable
// via ANQP, distinct from the inline list.
func (nd NetworkDescriptor) ANQPOICount() int { return nd.anqpOICount }

// RoamingConsortiums returns the inline roaming consortium OIs. The result
// is nil if the element was absent and empty (non-nil) if it was present
// with all OI lengths zero.
func (nd NetworkDescriptor) RoamingConsortiums() []uint64 {
	if nd.roamingConsortiums == nil {
		return nil
	}
	return append([]uint64{}, nd.roamingConsortiums...)
}

func (nd NetworkDescriptor) ExtendedCapabilities() (uint64, bool) {
	if nd.extendedCapabilities == nil {
		return 0, false
	}
	return *nd.extendedCapabilities, true
}

// ANQPElements returns the ANQP data attached via Complete. Empty until then.
func (nd NetworkDescriptor) ANQPElements() map[anqp.ElementType]anqp.Element {
	return copyANQPElements(nd.anqpElements)
}

// Has80211uInfo reports whether any 802.11u / Hotspot 2.0 derived data was
// present in the scan.
func (nd NetworkDescriptor) Has80211uInfo() bool {
	return nd.ant != nil || nd.roamingConsortiums != nil || nd.hsRelease != nil
}

// IsSSIDUTF8 reports whether the SSID octets were decoded as UTF-8.
func (nd NetworkDescriptor) IsSSIDUTF8() bool {
	return nd.extendedCapabilities != nil && *nd.extendedCapabilities&ssidUTF8Bit != 0
}

// Equal compares descriptors by (SSID, BSSID) only; ANQP data and the
// remaining numeric fields are deliberately excluded.
func (nd NetworkDescriptor) Equal(other NetworkDescriptor) bool {
	if nd.bssid != other.bssid {
		return false
	}
	if (nd.ssid == nil) != (other.ssid == nil) {
		return false
	}
	return nd.ssid == nil || *nd.ssid == *other.ssid
}

// Hash returns a hash consistent with Equal.
func (nd NetworkDescriptor) Hash() uint64 {
	h := fnv.New64a()
	if nd.ssid != nil {
		h.Write([]byte(*nd.ssid))
	}
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(nd.bssid >> (8 * i))
	}
	h.Write(b[:])
	return h.Sum64()
}

// KeyString returns the stable composite key 'SSID':bssid used to identify
// a network across scans.
func (nd NetworkDescriptor) KeyString() string {
	ssid := ""
	if nd.ssid != nil {
		ssid = *nd.ssid
	}
	return fmt.Sprintf("'%s':%s", ssid, nd.bssid)
}

// BSSIDString returns the BSSID in canonical colon-separated form.
func (nd NetworkDescriptor) BSSIDString() string {
	return nd.bssid.String()
}

// String renders every field for debugging.
func (nd NetworkDescriptor) String() string {
	ssid := "<absent>"
	if nd.ssid != nil {
		ssid = fmt.Sprintf("%q", *nd.ssid)
	}
	return fmt.Sprintf("NetworkDescriptor{ssid=%s, bssid=%s, hessid=%s, "+
		"stationCount=%d, channelUtilization=%d, capacity=%d, ant=%s, "+
		"internet=%t, venueGroup=%s, venueType=%s, hsRelease=%s, "+
		"anqpDomainID=%d, anqpOICount=%d, roamingConsortiums=%s, "+
		"extendedCapabilities=%s, anqpElements=%d}",
		ssid, nd.bssid, nd.hessid,
		nd.stationCnt, nd.channelUtil, nd.capacity, optString(nd.ant),
		nd.internet, optString(nd.venueGroup), optString(nd.venueType),
		optString(nd.hsRelease), nd.anqpDomainID, nd.anqpOICount,
		formatOIs(nd.roamingConsortiums), formatExtCaps(nd.extendedCapabilities),
		len(nd.anqpElements))
}

func decodeSSID(octets []byte, extendedCapabilities *uint64) string {
	if extendedCapabilities != nil && *extendedCapabilities&ssidUTF8Bit != 0 {
		return string(octets)
	}
	// ISO-8859-1: each octet maps directly to the code point of equal value.
	var sb strings.Builder
	sb.Grow(len(octets))
	for _, b := range octets {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

func copyANQPElements(src map[anqp.ElementType]anqp.Element) map[anqp.ElementType]anqp.Element {
	dst := make(map[anqp.ElementType]anqp.Element, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func optString[T fmt.Stringer](v *T) string {
	if v == nil {
		return "<absent>"
	}
	return (*v).String()
}

func formatOIs(ois []uint64) string {
	if ois == nil {
		return "<absent>"
	}
	parts := make([]string, len(ois))
	for i, oi := range ois {
		parts[i] = fmt.Sprintf("%x", oi)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatExtCaps(caps *uint64) string {
	if caps == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%#x", *caps)
}
