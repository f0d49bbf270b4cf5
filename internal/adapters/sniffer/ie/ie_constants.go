package ie

// Information Element tags recognized by the scanner. Everything else is
// skipped by position advance.
const (
	TagSSID                 = 0
	TagBSSLoad              = 11
	TagInterworking         = 107
	TagRoamingConsortium    = 111
	TagExtendedCapabilities = 127
	TagVendorSpecific       = 221 // 0xDD
)

const (
	// BSS Load is a fixed-size element.
	bssLoadLength = 5

	// Interworking element options byte.
	antMask     = 0x0f
	internetBit = 0x10

	// HS2.0 Indication config byte.
	anqpDomainIDBit = 0x04
	nibbleMask      = 0x0f

	// Extended Capabilities is decoded into a 64-bit field; octets past the
	// eighth carry no bits we consume.
	extCapsMaxOctets = 8
)

// Wi-Fi Alliance OUI (50:6f:9a) followed by the HS2.0 Indication type.
// Vendor-specific elements without this prefix are ordinary vendor data.
var hs20IndicationPrefix = []byte{0x50, 0x6f, 0x9a, 0x10}
