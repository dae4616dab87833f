package drive

import (
	"context"
	"sync"

	"go-cloud-drive/internal/storage"
)

// Registry hands out one Manager per authenticated user. Managers are
// created lazily on first use and kept for the life of the process; a drop
// forces the next request to rebuild (and with it, a full quota recompute).
type Registry struct {
	mu       sync.Mutex
	gateway  Gateway
	objects  storage.Storage
	sessions map[string]*Manager
}

func NewRegistry(gateway Gateway, objects storage.Storage) *Registry {
	return &Registry{
		gateway:  gateway,
		objects:  objects,
		sessions: make(map[string]*Manager),
	}
}

// Manager returns the session for ownerID, creating it if needed.
func (r *Registry) Manager(ctx context.Context, ownerID string, limitBytes int64) (*Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.sessions[ownerID]; ok {
		m.SetQuotaLimit(limitBytes)
		return m, nil
	}

	m, err := NewManager(ctx, r.gateway, r.objects, ownerID, limitBytes)
	if err != nil {
		return nil, err
	}
	r.sessions[ownerID] = m
	return m, nil
}

// Drop discards the session for ownerID.
func (r *Registry) Drop(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, ownerID)
}
