// Package anqp carries the Access Network Query Protocol element types and
// the raw-line parser used to attach ANQP query results to a scanned
// network. The decoder core treats these elements as opaque payloads; richer
// per-element decoding happens in the supplicant exchange, outside this
// repository.
package anqp

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ElementType identifies an ANQP element by its ANQP info ID. Hotspot 2.0
// vendor elements use the subtype space offset past the standard IDs.
type ElementType int

const (
	QueryList          ElementType = 256
	CapabilityList     ElementType = 257
	VenueName          ElementType = 258
	EmergencyNumber    ElementType = 259
	NetworkAuthType    ElementType = 260
	RoamingConsortium  ElementType = 261
	IPAddrAvailability ElementType = 262
	NAIRealm           ElementType = 263
	Cellular3GPP       ElementType = 264
	DomainName         ElementType = 268

	// Hotspot 2.0 subtypes, offset to keep the key space disjoint.
	hsBase              ElementType = 0x11000
	HSQueryList         ElementType = hsBase + 1
	HSCapabilityList    ElementType = hsBase + 2
	HSFriendlyName      ElementType = hsBase + 3
	HSWANMetrics        ElementType = hsBase + 4
	HSConnCapability    ElementType = hsBase + 5
	HSNAIHomeRealmQuery ElementType = hsBase + 6
	HSOperatingClass    ElementType = hsBase + 7
	HSOSUProviders      ElementType = hsBase + 8
)

var elementTypeNames = map[ElementType]string{
	QueryList:           "QueryList",
	CapabilityList:      "CapabilityList",
	VenueName:           "VenueName",
	EmergencyNumber:     "EmergencyNumber",
	NetworkAuthType:     "NetworkAuthType",
	RoamingConsortium:   "RoamingConsortium",
	IPAddrAvailability:  "IPAddrAvailability",
	NAIRealm:            "NAIRealm",
	Cellular3GPP:        "Cellular3GPP",
	DomainName:          "DomainName",
	HSQueryList:         "HSQueryList",
	HSCapabilityList:    "HSCapabilityList",
	HSFriendlyName:      "HSFriendlyName",
	HSWANMetrics:        "HSWANMetrics",
	HSConnCapability:    "HSConnCapability",
	HSNAIHomeRealmQuery: "HSNAIHomeRealmQuery",
	HSOperatingClass:    "HSOperatingClass",
	HSOSUProviders:      "HSOSUProviders",
}

func (t ElementType) String() string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ANQPElement(%d)", int(t))
}

// Element is a raw ANQP element as returned by the query exchange.
type Element struct {
	Type    ElementType
	Payload []byte
}

// Line names emitted by the supplicant's BSS dump, mapped to element types.
var lineTypes = map[string]ElementType{
	"anqp_venue_name":                VenueName,
	"anqp_network_auth_type":         NetworkAuthType,
	"anqp_roaming_consortium":        RoamingConsortium,
	"anqp_ip_addr_type_availability": IPAddrAvailability,
	"anqp_nai_realm":                 NAIRealm,
	"anqp_3gpp":                      Cellular3GPP,
	"anqp_domain_name":               DomainName,
	"hs20_operator_friendly_name":    HSFriendlyName,
	"hs20_wan_metrics":               HSWANMetrics,
	"hs20_connection_capability":     HSConnCapability,
	"hs20_operating_class":           HSOperatingClass,
	"hs20_osu_providers_list":        HSOSUProviders,
}

// ParseLines converts raw `name=<hexdump>` response lines into an element
// map. A nil or empty line list yields an empty map. Lines with an unknown
// name or an undecodable payload are skipped; response lines are advisory
// and must not fail the network they decorate.
func ParseLines(lines []string) map[ElementType]Element {
	elements := make(map[ElementType]Element)
	for _, line := range lines {
		name, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		elementType, ok := lineTypes[name]
		if !ok {
			continue
		}
		payload, err := hex.DecodeString(value)
		if err != nil {
			continue
		}
		elements[elementType] = Element{Type: elementType, Payload: payload}
	}
	return elements
}
