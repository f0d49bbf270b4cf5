package ie

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

// IEHandler defines the interface for decoding specific Information Elements
type IEHandler interface {
	// ID returns the IE Tag ID this handler is responsible for
	ID() int
	// Handle decodes the element value and updates the scan state. The value
	// slice is exactly the declared element length; handlers must not assume
	// bytes beyond it exist. A returned error aborts the whole scan.
	Handle(val []byte, scan *domain.ScanData) error
}

// HandlerRegistry manages the collection of IE handlers
type HandlerRegistry struct {
	handlers map[int]IEHandler
}

// NewHandlerRegistry creates a new registry with default handlers
func NewHandlerRegistry() *HandlerRegistry {
	r := &HandlerRegistry{
		handlers: make(map[int]IEHandler),
	}
	r.registerDefaults()
	return r
}

func (r *HandlerRegistry) registerDefaults() {
	r.Register(&SSIDHandler{})
	r.Register(&BSSLoadHandler{})
	r.Register(&InterworkingHandler{})
	r.Register(&RoamingConsortiumHandler{})
	r.Register(&ExtendedCapabilitiesHandler{})
	r.Register(&VendorSpecificHandler{})
}

// Register adds a handler to the registry
func (r *HandlerRegistry) Register(h IEHandler) {
	r.handlers[h.ID()] = h
}

// Get returns the handler for a specific tag ID
func (r *HandlerRegistry) Get(id int) (IEHandler, bool) {
	h, ok := r.handlers[id]
	return h, ok
}

// --- Specific Handlers ---

type SSIDHandler struct{}

func (h *SSIDHandler) ID() int { return TagSSID }

// Handle captures the raw octets verbatim. Text decoding is deferred until
// the scan completes, because the encoding depends on the Extended
// Capabilities element which may appear later in the stream.
func (h *SSIDHandler) Handle(val []byte, scan *domain.ScanData) error {
	scan.SSIDPresent = true
	scan.SSIDOctets = append([]byte{}, val...)
	return nil
}

type BSSLoadHandler struct{}

func (h *BSSLoadHandler) ID() int { return TagBSSLoad }
func (h *BSSLoadHandler) Handle(val []byte, scan *domain.ScanData) error {
	if len(val) != bssLoadLength {
		return fmt.Errorf("%w: BSS Load length is %d, want %d",
			domain.ErrMalformedElement, len(val), bssLoadLength)
	}
	scan.StationCount = int(binary.LittleEndian.Uint16(val[0:2]))
	scan.ChannelUtilization = int(val[2])
	scan.Capacity = int(binary.LittleEndian.Uint16(val[3:5]))
	return nil
}

type InterworkingHandler struct{}

func (h *InterworkingHandler) ID() int { return TagInterworking }

// Handle decodes the Interworking (802.11u) element. Length 1 carries only
// the options byte, 3 adds venue info, 7 adds the HESSID, 9 carries both.
func (h *InterworkingHandler) Handle(val []byte, scan *domain.ScanData) error {
	switch len(val) {
	case 1, 3, 7, 9:
	default:
		return fmt.Errorf("%w: Interworking length is %d, want 1, 3, 7 or 9",
			domain.ErrMalformedElement, len(val))
	}

	options := val[0]
	ant, _ := domain.AntFromCode(int(options & antMask))
	scan.Ant = &ant
	scan.Internet = options&internetBit != 0

	if len(val) == 3 || len(val) == 9 {
		// Venue metadata is cosmetic; a bad venue-info field must not abort
		// network discovery, so the decode error is absorbed here.
		if group, venueType, err := domain.DecodeVenueInfo(val[1], val[2]); err == nil {
			scan.VenueGroup = &group
			scan.VenueType = &venueType
		}
	}
	if len(val) == 7 || len(val) == 9 {
		scan.HESSID = domain.MAC(beUint(val[len(val)-6:]))
	}
	return nil
}

type RoamingConsortiumHandler struct{}

func (h *RoamingConsortiumHandler) ID() int { return TagRoamingConsortium }

// Handle decodes the Roaming Consortium element: an ANQP OI count, a packed
// nibble pair holding the lengths of OI #1 and OI #2, and the OIs
// themselves. OI #3 occupies whatever the element length leaves over.
func (h *RoamingConsortiumHandler) Handle(val []byte, scan *domain.ScanData) error {
	if len(val) < 2 {
		return fmt.Errorf("%w: Roaming Consortium length is %d, want at least 2",
			domain.ErrMalformedElement, len(val))
	}

	scan.ANQPOICount = int(val[0])

	oi1Length := int(val[1] & nibbleMask)
	oi2Length := int(val[1]>>4) & nibbleMask
	oi3Length := len(val) - 2 - oi1Length - oi2Length
	if oi3Length < 0 {
		return fmt.Errorf("%w: OI lengths %d+%d exceed element length %d",
			domain.ErrMalformedElement, oi1Length, oi2Length, len(val))
	}

	ois := make([]uint64, 0, 3)
	offset := 2
	for _, length := range []int{oi1Length, oi2Length, oi3Length} {
		if length > 0 {
			ois = append(ois, beUint(val[offset:offset+length]))
			offset += length
		}
	}
	// Present-but-empty is distinct from absent: the non-nil slice records
	// that the element was seen.
	scan.RoamingConsortiums = ois
	return nil
}

type ExtendedCapabilitiesHandler struct{}

func (h *ExtendedCapabilitiesHandler) ID() int { return TagExtendedCapabilities }
func (h *ExtendedCapabilitiesHandler) Handle(val []byte, scan *domain.ScanData) error {
	var caps uint64
	for i, b := range val {
		if i >= extCapsMaxOctets {
			break
		}
		caps |= uint64(b) << (8 * i)
	}
	scan.ExtendedCapabilities = &caps
	return nil
}

type VendorSpecificHandler struct{}

func (h *VendorSpecificHandler) ID() int { return TagVendorSpecific }

// Handle decodes the HS2.0 Indication element. Vendor elements that are too
// short or carry a different OUI prefix are ordinary vendor data and are
// skipped without error.
func (h *VendorSpecificHandler) Handle(val []byte, scan *domain.ScanData) error {
	if len(val) < 5 || !bytes.Equal(val[:4], hs20IndicationPrefix) {
		return nil
	}

	hsConf := val[4]
	var release domain.HSRelease
	switch (hsConf >> 4) & nibbleMask {
	case 0:
		release = domain.HSReleaseR1
	case 1:
		release = domain.HSReleaseR2
	default:
		release = domain.HSReleaseUnknown
	}
	scan.HSRelease = &release

	if hsConf&anqpDomainIDBit != 0 {
		if len(val) < 7 {
			return fmt.Errorf("%w: ANQP domain ID flagged but element length is %d",
				domain.ErrMalformedElement, len(val))
		}
		scan.ANQPDomainID = int(binary.LittleEndian.Uint16(val[5:7]))
	}
	return nil
}

// beUint reads up to 8 bytes big-endian into an unsigned integer.
func beUint(b []byte) uint64 {
	var v uint64
	for _, octet := range b {
		v = v<<8 | uint64(octet)
	}
	return v
}
