package registry

import (
	"sync"

	"github.com/lcalzada-xor/hsmap/internal/core/domain"
	"github.com/lcalzada-xor/hsmap/internal/core/ports"
)

// RegistrySubject manages observers and notifies them of registry events.
type RegistrySubject struct {
	observers []ports.RegistryObserver
	mu        sync.RWMutex
}

// NewRegistrySubject creates a new subject.
func NewRegistrySubject() *RegistrySubject {
	return &RegistrySubject{
		observers: make([]ports.RegistryObserver, 0),
	}
}

// Attach registers a new observer.
func (s *RegistrySubject) Attach(observer ports.RegistryObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// NotifyDiscovered notifies all observers of a newly discovered network.
// Descriptors are immutable values, so observers may hold them without
// copying.
func (s *RegistrySubject) NotifyDiscovered(nd domain.NetworkDescriptor) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obs := range s.observers {
		obs.OnNetworkDiscovered(nd)
	}
}

// NotifyUpdated notifies all observers of an updated network.
func (s *RegistrySubject) NotifyUpdated(nd domain.NetworkDescriptor) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obs := range s.observers {
		obs.OnNetworkUpdated(nd)
	}
}
