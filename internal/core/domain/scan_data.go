package domain

// ScanData accumulates the fields decoded from a single information-element
// buffer. It is the mutable intermediate between the TLV scan and the
// immutable NetworkDescriptor; SSID octets are kept raw here because their
// text encoding depends on the Extended Capabilities element, which may
// appear later in the stream.
type ScanData struct {
	SSIDPresent bool
	SSIDOctets  []byte

	// BSS Load element
	StationCount       int
	ChannelUtilization int
	Capacity           int

	// Interworking element. Ant non-nil indicates the element was present.
	Ant        *Ant
	Internet   bool
	VenueGroup *VenueGroup
	VenueType  *VenueType
	HESSID     MAC

	// Roaming Consortium element. A nil slice means the element was absent;
	// an empty non-nil slice means it was present with no inline OIs.
	ANQPOICount        int
	RoamingConsortiums []uint64

	// HS2.0 Indication element
	HSRelease    *HSRelease
	ANQPDomainID int

	ExtendedCapabilities *uint64
}

// NewScanData returns a ScanData with the ANQP domain ID at its
// "not present" sentinel.
func NewScanData() *ScanData {
	return &ScanData{ANQPDomainID: -1}
}
