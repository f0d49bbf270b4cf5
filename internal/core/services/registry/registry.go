// Package registry keeps the in-memory set of networks discovered during a
// scan session.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/hsmap/internal/anqp"
	"github.com/lcalzada-xor/hsmap/internal/core/domain"
	"github.com/lcalzada-xor/hsmap/internal/core/ports"
	"github.com/lcalzada-xor/hsmap/internal/telemetry"
)

// NetworkRegistry is a concurrent map of network descriptors keyed by their
// composite 'SSID':bssid key. Descriptors are immutable values, so readers
// holding one returned earlier are unaffected by later updates.
type NetworkRegistry struct {
	mu        sync.RWMutex
	networks  map[string]domain.NetworkDescriptor
	subject   *RegistrySubject
	resolver  ports.ANQPResolver
	sessionID string
}

// NewNetworkRegistry creates a registry for one scan session. resolver may
// be nil when no ANQP backend is available.
func NewNetworkRegistry(resolver ports.ANQPResolver) *NetworkRegistry {
	return &NetworkRegistry{
		networks:  make(map[string]domain.NetworkDescriptor),
		subject:   NewRegistrySubject(),
		resolver:  resolver,
		sessionID: uuid.NewString(),
	}
}

// SessionID identifies this scan session in persisted rows and reports.
func (r *NetworkRegistry) SessionID() string {
	return r.sessionID
}

// Attach registers an observer for discovery and update events.
func (r *NetworkRegistry) Attach(o ports.RegistryObserver) {
	r.subject.Attach(o)
}

// Process stores a freshly decoded descriptor. Returns the stored value and
// whether the network is new to this session. A re-scan of a known network
// keeps previously resolved ANQP data if the new descriptor carries none.
func (r *NetworkRegistry) Process(nd domain.NetworkDescriptor) (domain.NetworkDescriptor, bool) {
	key := nd.KeyString()

	r.mu.Lock()
	existing, known := r.networks[key]
	if known && len(nd.ANQPElements()) == 0 {
		if prior := existing.ANQPElements(); len(prior) > 0 {
			nd = nd.Complete(prior)
		}
	}
	r.networks[key] = nd
	r.mu.Unlock()

	if known {
		r.subject.NotifyUpdated(nd)
		return nd, false
	}
	telemetry.NetworksDiscovered.Inc()
	r.subject.NotifyDiscovered(nd)
	return nd, true
}

// Complete runs the ANQP exchange for a known network and stores the merged
// descriptor. The pre-merge descriptor remains valid for any holder.
func (r *NetworkRegistry) Complete(ctx context.Context, key string) (domain.NetworkDescriptor, error) {
	nd, ok := r.Get(key)
	if !ok {
		return domain.NetworkDescriptor{}, fmt.Errorf("unknown network %s", key)
	}
	if r.resolver == nil {
		return nd, nil
	}

	elements, err := r.resolver.Resolve(ctx, nd)
	if err != nil {
		return domain.NetworkDescriptor{}, fmt.Errorf("anqp resolution for %s: %w", key, err)
	}
	return r.CompleteWith(key, elements)
}

// CompleteWith attaches an already resolved ANQP element map.
func (r *NetworkRegistry) CompleteWith(key string, elements map[anqp.ElementType]anqp.Element) (domain.NetworkDescriptor, error) {
	r.mu.Lock()
	nd, ok := r.networks[key]
	if !ok {
		r.mu.Unlock()
		return domain.NetworkDescriptor{}, fmt.Errorf("unknown network %s", key)
	}
	completed := nd.Complete(elements)
	r.networks[key] = completed
	r.mu.Unlock()

	telemetry.ANQPCompletions.Inc()
	r.subject.NotifyUpdated(completed)
	return completed, nil
}

// Get returns the descriptor stored under the given composite key.
func (r *NetworkRegistry) Get(key string) (domain.NetworkDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nd, ok := r.networks[key]
	return nd, ok
}

// All returns the current descriptors ordered by key.
func (r *NetworkRegistry) All() []domain.NetworkDescriptor {
	r.mu.RLock()
	keys := make([]string, 0, len(r.networks))
	for key := range r.networks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	networks := make([]domain.NetworkDescriptor, 0, len(keys))
	for _, key := range keys {
		networks = append(networks, r.networks[key])
	}
	r.mu.RUnlock()
	return networks
}

// Count returns the number of distinct networks seen this session.
func (r *NetworkRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.networks)
}
