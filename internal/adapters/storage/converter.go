package storage

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

// toModel converts a domain descriptor to its database model. Only scan
// fields are persisted; ANQP elements are re-resolved per session.
func toModel(nd domain.NetworkDescriptor, sessionID string) NetworkModel {
	model := NetworkModel{
		Key:                nd.KeyString(),
		SessionID:          sessionID,
		BSSID:              nd.BSSID().String(),
		HESSID:             nd.HESSID().String(),
		StationCount:       nd.StationCount(),
		ChannelUtilization: nd.ChannelUtilization(),
		Capacity:           nd.Capacity(),
		Internet:           nd.Internet(),
		AnqpDomainID:       nd.ANQPDomainID(),
		AnqpOICount:        nd.ANQPOICount(),
	}

	if octets := nd.SSIDOctets(); octets != nil {
		encoded := hex.EncodeToString(octets)
		model.SSIDHex = &encoded
	}
	if ant, ok := nd.Ant(); ok {
		code := int(ant)
		model.Ant = &code
	}
	if group, ok := nd.VenueGroup(); ok {
		code := int(group)
		model.VenueGroup = &code
	}
	if venueType, ok := nd.VenueType(); ok {
		code := int(venueType)
		model.VenueType = &code
	}
	if release, ok := nd.HSRelease(); ok {
		code := int(release)
		model.HSRelease = &code
	}
	if ois := nd.RoamingConsortiums(); ois != nil {
		encoded, _ := json.Marshal(ois)
		s := string(encoded)
		model.RoamingOIs = &s
	}
	if caps, ok := nd.ExtendedCapabilities(); ok {
		s := strconv.FormatUint(caps, 16)
		model.ExtendedCaps = &s
	}

	return model
}

// toDomain rebuilds a descriptor from its persisted row by reconstructing the
// scan state and running it through the normal assembler, so SSID text
// decoding follows the same extended-capabilities rule as a live scan.
func toDomain(model NetworkModel) (domain.NetworkDescriptor, error) {
	bssid, err := domain.ParseMAC(model.BSSID)
	if err != nil {
		return domain.NetworkDescriptor{}, fmt.Errorf("bssid: %w", err)
	}

	scan := domain.NewScanData()
	scan.StationCount = model.StationCount
	scan.ChannelUtilization = model.ChannelUtilization
	scan.Capacity = model.Capacity
	scan.Internet = model.Internet
	scan.ANQPDomainID = model.AnqpDomainID
	scan.ANQPOICount = model.AnqpOICount

	if model.HESSID != "" {
		hessid, err := domain.ParseMAC(model.HESSID)
		if err != nil {
			return domain.NetworkDescriptor{}, fmt.Errorf("hessid: %w", err)
		}
		scan.HESSID = hessid
	}

	if model.SSIDHex != nil {
		octets, err := hex.DecodeString(*model.SSIDHex)
		if err != nil {
			return domain.NetworkDescriptor{}, fmt.Errorf("ssid octets: %w", err)
		}
		scan.SSIDPresent = true
		scan.SSIDOctets = octets
	}
	if model.Ant != nil {
		ant := domain.Ant(*model.Ant)
		scan.Ant = &ant
	}
	if model.VenueGroup != nil {
		group := domain.VenueGroup(*model.VenueGroup)
		scan.VenueGroup = &group
	}
	if model.VenueType != nil {
		venueType := domain.VenueType(*model.VenueType)
		scan.VenueType = &venueType
	}
	if model.HSRelease != nil {
		release := domain.HSRelease(*model.HSRelease)
		scan.HSRelease = &release
	}
	if model.RoamingOIs != nil {
		ois := []uint64{}
		if err := json.Unmarshal([]byte(*model.RoamingOIs), &ois); err != nil {
			return domain.NetworkDescriptor{}, fmt.Errorf("roaming OIs: %w", err)
		}
		scan.RoamingConsortiums = ois
	}
	if model.ExtendedCaps != nil {
		caps, err := strconv.ParseUint(*model.ExtendedCaps, 16, 64)
		if err != nil {
			return domain.NetworkDescriptor{}, fmt.Errorf("extended capabilities: %w", err)
		}
		scan.ExtendedCapabilities = &caps
	}

	return domain.NewNetworkDescriptor(bssid, scan, nil), nil
}
