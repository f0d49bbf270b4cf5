package domain

import "fmt"

// VenueGroup is the venue group code from the 2-byte venue-info field
// embedded in the Interworking element (IEEE 802.11u, Venue Name ANQP
// element shares the same code space).
type VenueGroup int

const (
	VenueGroupUnspecified       VenueGroup = 0
	VenueGroupAssembly          VenueGroup = 1
	VenueGroupBusiness          VenueGroup = 2
	VenueGroupEducational       VenueGroup = 3
	VenueGroupFactoryIndustrial VenueGroup = 4
	VenueGroupInstitutional     VenueGroup = 5
	VenueGroupMercantile        VenueGroup = 6
	VenueGroupResidential       VenueGroup = 7
	VenueGroupStorage           VenueGroup = 8
	VenueGroupUtilityMisc       VenueGroup = 9
	VenueGroupVehicular         VenueGroup = 10
	VenueGroupOutdoor           VenueGroup = 11
)

var venueGroupNames = map[VenueGroup]string{
	VenueGroupUnspecified:       "Unspecified",
	VenueGroupAssembly:          "Assembly",
	VenueGroupBusiness:          "Business",
	VenueGroupEducational:       "Educational",
	VenueGroupFactoryIndustrial: "FactoryIndustrial",
	VenueGroupInstitutional:     "Institutional",
	VenueGroupMercantile:        "Mercantile",
	VenueGroupResidential:       "Residential",
	VenueGroupStorage:           "Storage",
	VenueGroupUtilityMisc:       "UtilityMisc",
	VenueGroupVehicular:         "Vehicular",
	VenueGroupOutdoor:           "Outdoor",
}

func (g VenueGroup) String() string {
	if name, ok := venueGroupNames[g]; ok {
		return name
	}
	return fmt.Sprintf("VenueGroup(%d)", int(g))
}

// VenueType is the group-scoped venue type code. Type names are defined per
// group by the standard; this layer only carries the code.
type VenueType int

func (t VenueType) String() string {
	return fmt.Sprintf("VenueType(%d)", int(t))
}

// DecodeVenueInfo decodes the 2-byte venue-info field into its group and
// type codes. A group code outside the assigned range is a decode error;
// callers are expected to treat that as "no venue data" rather than failing
// the surrounding element.
func DecodeVenueInfo(group, venueType byte) (VenueGroup, VenueType, error) {
	g := VenueGroup(group)
	if _, ok := venueGroupNames[g]; !ok {
		return 0, 0, fmt.Errorf("%w: group code %d", ErrInvalidVenueInfo, group)
	}
	return g, VenueType(venueType), nil
}
