// Package ie decodes the information-element payload of 802.11 beacon and
// probe-response frames into the fields that drive Hotspot 2.0 / Passpoint
// network discovery. Input is untrusted over-the-air data: the scanner never
// reads past a declared element boundary and rejects the whole buffer when a
// length field lies.
package ie

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/lcalzada-xor/hsmap/internal/anqp"
	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

var (
	registry     *HandlerRegistry
	registryOnce sync.Once
)

func getRegistry() *HandlerRegistry {
	registryOnce.Do(func() {
		registry = NewHandlerRegistry()
	})
	return registry
}

// Scan walks the (tag, length, value) records of an IE buffer and collects
// the decoded fields. A record whose declared length exceeds the remaining
// buffer, or a trailing partial header, aborts the scan with
// domain.ErrMalformedElement: no partial result is returned. Unrecognized
// tags are skipped.
func Scan(data []byte) (*domain.ScanData, error) {
	scan := domain.NewScanData()
	reg := getRegistry()

	offset := 0
	for offset < len(data) {
		if len(data)-offset < 2 {
			return nil, fmt.Errorf("%w: truncated element header at offset %d",
				domain.ErrMalformedElement, offset)
		}
		tag := int(data[offset])
		length := int(data[offset+1])
		offset += 2

		if length > len(data)-offset {
			return nil, &domain.ElementError{
				Tag: tag,
				Err: fmt.Errorf("%w: declared length %d exceeds %d remaining bytes",
					domain.ErrMalformedElement, length, len(data)-offset),
			}
		}

		if handler, found := reg.Get(tag); found {
			if err := handler.Handle(data[offset:offset+length], scan); err != nil {
				return nil, &domain.ElementError{Tag: tag, Err: err}
			}
		}
		offset += length
	}

	return scan, nil
}

// ParseScanText decodes the textual `<prefix>=<hex bytes>` form in which IE
// buffers arrive from the supplicant. A missing separator or undecodable
// payload is fatal.
func ParseScanText(infoElements string) (*domain.ScanData, error) {
	sep := strings.IndexByte(infoElements, '=')
	if sep < 0 {
		return nil, fmt.Errorf("%w: no element separator", domain.ErrInvalidInput)
	}
	raw, err := hex.DecodeString(infoElements[sep+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return Scan(raw)
}

// ParseNetworkDescriptor builds a complete descriptor from the textual BSSID
// and IE forms plus optional raw ANQP response lines (nil means no ANQP
// exchange has happened yet).
func ParseNetworkDescriptor(bssid, infoElements string, anqpLines []string) (domain.NetworkDescriptor, error) {
	mac, err := domain.ParseMAC(bssid)
	if err != nil {
		return domain.NetworkDescriptor{}, err
	}
	scan, err := ParseScanText(infoElements)
	if err != nil {
		return domain.NetworkDescriptor{}, err
	}
	return domain.NewNetworkDescriptor(mac, scan, anqp.ParseLines(anqpLines)), nil
}
