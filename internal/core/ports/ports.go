// Package ports defines the interfaces between the discovery core and its
// adapters.
package ports

import (
	"context"

	"github.com/lcalzada-xor/hsmap/internal/anqp"
	"github.com/lcalzada-xor/hsmap/internal/core/domain"
)

// NetworkStore persists discovered network descriptors.
type NetworkStore interface {
	SaveNetwork(nd domain.NetworkDescriptor) error
	LoadNetworks() ([]domain.NetworkDescriptor, error)
	Close() error
}

// OperatorRepository resolves roaming-consortium OIs to operator names.
type OperatorRepository interface {
	LookupOperator(ctx context.Context, oi uint64) (string, error)
	Close() error
}

// ANQPResolver performs the ANQP query exchange for a discovered network.
// Implementations live outside this repository; the registry only consumes
// the resulting element map.
type ANQPResolver interface {
	Resolve(ctx context.Context, nd domain.NetworkDescriptor) (map[anqp.ElementType]anqp.Element, error)
}

// RegistryObserver is notified when the registry discovers or updates a
// network. Callbacks must not block; they run on the processing goroutine.
type RegistryObserver interface {
	OnNetworkDiscovered(nd domain.NetworkDescriptor)
	OnNetworkUpdated(nd domain.NetworkDescriptor)
}

// FrameSource feeds raw (bssid, ie text) pairs from some capture backend
// into the registry until the context is cancelled or the source drains.
type FrameSource interface {
	Run(ctx context.Context, sink func(bssid, infoElements string)) error
}
