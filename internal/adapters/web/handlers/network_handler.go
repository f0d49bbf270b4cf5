package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lcalzada-xor/hsmap/internal/adapters/sniffer/ie"
	"github.com/lcalzada-xor/hsmap/internal/core/domain"
	"github.com/lcalzada-xor/hsmap/internal/core/ports"
	"github.com/lcalzada-xor/hsmap/internal/core/services/registry"
	"github.com/lcalzada-xor/hsmap/internal/telemetry"
)

// NetworkHandler serves the discovered-network API.
type NetworkHandler struct {
	Registry  *registry.NetworkRegistry
	Operators ports.OperatorRepository // may be nil
}

// NewNetworkHandler creates a network API handler.
func NewNetworkHandler(reg *registry.NetworkRegistry, operators ports.OperatorRepository) *NetworkHandler {
	return &NetworkHandler{Registry: reg, Operators: operators}
}

// RoamingOIResponse is one inline roaming consortium OI, enriched with the
// registered operator name when the registry knows it.
type RoamingOIResponse struct {
	OI       string `json:"oi"`
	Operator string `json:"operator,omitempty"`
}

// NetworkResponse is the JSON rendering of a network descriptor. Optional
// fields are pointers so "absent" survives serialization.
type NetworkResponse struct {
	Key                  string              `json:"key"`
	SSID                 *string             `json:"ssid"`
	BSSID                string              `json:"bssid"`
	HESSID               string              `json:"hessid"`
	StationCount         int                 `json:"station_count"`
	ChannelUtilization   int                 `json:"channel_utilization"`
	Capacity             int                 `json:"capacity"`
	Interworking         bool                `json:"interworking"`
	AccessNetworkType    *string             `json:"access_network_type"`
	Internet             bool                `json:"internet"`
	VenueGroup           *string             `json:"venue_group"`
	VenueType            *int                `json:"venue_type"`
	HSRelease            *string             `json:"hs_release"`
	AnqpDomainID         int                 `json:"anqp_domain_id"`
	AnqpOICount          int                 `json:"anqp_oi_count"`
	RoamingConsortiums   []RoamingOIResponse `json:"roaming_consortiums,omitempty"`
	ExtendedCapabilities *uint64             `json:"extended_capabilities"`
	ANQPElements         []string            `json:"anqp_elements,omitempty"`
}

// ToNetworkResponse renders a descriptor for the API, resolving OI operator
// names through the repository when one is configured.
func ToNetworkResponse(ctx context.Context, nd domain.NetworkDescriptor, operators ports.OperatorRepository) NetworkResponse {
	resp := NetworkResponse{
		Key:                nd.KeyString(),
		BSSID:              nd.BSSIDString(),
		HESSID:             nd.HESSID().String(),
		StationCount:       nd.StationCount(),
		ChannelUtilization: nd.ChannelUtilization(),
		Capacity:           nd.Capacity(),
		Interworking:       nd.IsInterworking(),
		Internet:           nd.Internet(),
		AnqpDomainID:       nd.ANQPDomainID(),
		AnqpOICount:        nd.ANQPOICount(),
	}

	if ssid, ok := nd.SSID(); ok {
		resp.SSID = &ssid
	}
	if ant, ok := nd.Ant(); ok {
		name := ant.String()
		resp.AccessNetworkType = &name
	}
	if group, ok := nd.VenueGroup(); ok {
		name := group.String()
		resp.VenueGroup = &name
	}
	if venueType, ok := nd.VenueType(); ok {
		code := int(venueType)
		resp.VenueType = &code
	}
	if release, ok := nd.HSRelease(); ok {
		name := release.String()
		resp.HSRelease = &name
	}
	if caps, ok := nd.ExtendedCapabilities(); ok {
		resp.ExtendedCapabilities = &caps
	}

	for _, oi := range nd.RoamingConsortiums() {
		entry := RoamingOIResponse{OI: formatOI(oi)}
		if operators != nil {
			if name, err := operators.LookupOperator(ctx, oi); err == nil {
				entry.Operator = name
			}
		}
		resp.RoamingConsortiums = append(resp.RoamingConsortiums, entry)
	}

	for elementType := range nd.ANQPElements() {
		resp.ANQPElements = append(resp.ANQPElements, elementType.String())
	}

	return resp
}

// HandleList returns all networks discovered this session.
func (h *NetworkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	networks := h.Registry.All()
	responses := make([]NetworkResponse, 0, len(networks))
	for _, nd := range networks {
		responses = append(responses, ToNetworkResponse(r.Context(), nd, h.Operators))
	}
	writeJSON(w, http.StatusOK, responses)
}

// HandleGet returns one network by its composite 'SSID':bssid key.
func (h *NetworkHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	nd, ok := h.Registry.Get(key)
	if !ok {
		http.Error(w, "network not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ToNetworkResponse(r.Context(), nd, h.Operators))
}

// DecodeRequest carries a raw scan result for on-demand decoding.
type DecodeRequest struct {
	BSSID     string   `json:"bssid"`
	IE        string   `json:"ie"`
	ANQPLines []string `json:"anqp_lines,omitempty"`
}

// HandleDecode decodes a submitted scan result, stores it in the registry
// and returns the descriptor. Malformed input is a 400, never a partial
// descriptor.
func (h *NetworkHandler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	nd, err := ie.ParseNetworkDescriptor(req.BSSID, req.IE, req.ANQPLines)
	if err != nil {
		telemetry.DecodeErrors.WithLabelValues(decodeErrorReason(err)).Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stored, _ := h.Registry.Process(nd)
	writeJSON(w, http.StatusOK, ToNetworkResponse(r.Context(), stored, h.Operators))
}

func decodeErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, domain.ErrMalformedElement):
		return "malformed_element"
	default:
		return "invalid_input"
	}
}

func formatOI(oi uint64) string {
	const hexDigits = "0123456789abcdef"
	// OIs are 3-5 bytes; render without leading zero bytes but at least 3.
	buf := make([]byte, 0, 16)
	started := false
	for shift := 56; shift >= 0; shift -= 8 {
		b := byte(oi >> shift)
		if !started && b == 0 && shift > 16 {
			continue
		}
		started = true
		buf = append(buf, hexDigits[b>>4], hexDigits[b&0x0f])
	}
	return string(buf)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handlers: encode response: %v", err)
	}
}
