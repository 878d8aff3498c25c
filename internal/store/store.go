// Package store implements the tenant context store: one fully isolated
// dataset per tenant namespace, shared by every component of the running
// process. Operations never touch module-level state; the resolved
// dataset is handed to the callback explicitly, which keeps concurrent
// operations on different tenants trivially safe.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/model"
)

// DefaultNamespace is the namespace unauthenticated callers resolve to.
// Its dataset is seeded empty, never cloned from elsewhere.
const DefaultNamespace = "default"

// ErrTenantExists is returned when registering a namespace that is
// already present.
var ErrTenantExists = errors.New("tenant namespace already registered")

// tenant pairs a dataset with the mutex that serializes operations on it.
type tenant struct {
	mu sync.Mutex
	ds *model.TenantDataset
}

// Store holds every tenant's dataset. Within one tenant, operations apply
// strictly in invocation order; across tenants they proceed concurrently.
type Store struct {
	mu      sync.RWMutex
	tenants map[string]*tenant
}

// New constructs a Store with an empty default tenant.
func New() *Store {
	return &Store{
		tenants: map[string]*tenant{
			DefaultNamespace: {ds: model.NewTenantDataset()},
		},
	}
}

// resolve returns the tenant entry for a namespace, creating an empty one
// on first access.
func (s *Store) resolve(namespace string) (*tenant, error) {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return nil, fmt.Errorf("%w: empty namespace", engine.ErrTenantIsolation)
	}
	s.mu.RLock()
	t, ok := s.tenants[namespace]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok = s.tenants[namespace]; ok {
		return t, nil
	}
	t = &tenant{ds: model.NewTenantDataset()}
	s.tenants[namespace] = t
	return t, nil
}

// WithTenant resolves the dataset for a namespace (creating an empty one
// if absent), runs fn against a working copy and commits the copy back
// atomically when fn succeeds. When fn returns an error the tenant's
// dataset is left exactly as it was, so a mutation either fully applies
// or is fully rejected. The working copy never escapes this call; fn must
// not retain references to it.
func (s *Store) WithTenant(namespace string, fn func(ds *model.TenantDataset) error) error {
	t, err := s.resolve(namespace)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	work := t.ds.Clone()
	if err := fn(work); err != nil {
		return err
	}
	t.ds = work
	return nil
}

// ViewTenant runs fn against a read-only copy of the namespace's dataset.
// Mutations fn performs are discarded.
func (s *Store) ViewTenant(namespace string, fn func(ds *model.TenantDataset) error) error {
	t, err := s.resolve(namespace)
	if err != nil {
		return err
	}
	t.mu.Lock()
	work := t.ds.Clone()
	t.mu.Unlock()
	return fn(work)
}

// Register creates a new tenant namespace whose dataset is cloned from
// the default tenant's. Cloning happens only here, at explicit
// registration time, never on ordinary access.
func (s *Store) Register(namespace string) error {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return fmt.Errorf("%w: empty namespace", engine.ErrTenantIsolation)
	}
	if namespace == DefaultNamespace {
		return fmt.Errorf("%w: %s", ErrTenantExists, namespace)
	}
	def, err := s.resolve(DefaultNamespace)
	if err != nil {
		return err
	}
	def.mu.Lock()
	seed := def.ds.Clone()
	def.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[namespace]; ok {
		return fmt.Errorf("%w: %s", ErrTenantExists, namespace)
	}
	s.tenants[namespace] = &tenant{ds: seed}
	return nil
}

// Namespaces lists the registered namespaces in sorted order.
func (s *Store) Namespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.tenants))
	for ns := range s.tenants {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
