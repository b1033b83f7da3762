package session

import (
	"context"
	"sync"

	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/storage"
	"github.com/notjagan/teamdex/pkg/team"
)

// Manager hands out one session per owner, opening it from storage on first
// use.
type Manager struct {
	catalog  *catalog.Catalog
	resolver team.Resolver
	gateway  *storage.Gateway

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(cat *catalog.Catalog, resolver team.Resolver, gw *storage.Gateway) *Manager {
	return &Manager{
		catalog:  cat,
		resolver: resolver,
		gateway:  gw,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

func (m *Manager) Get(ctx context.Context, owner string) *Session {
	m.mu.Lock()
	sess, ok := m.sessions[owner]
	if !ok {
		sess = newSession(owner, m.catalog, m.resolver, m.gateway)
		m.sessions[owner] = sess
	}
	m.mu.Unlock()

	sess.load(ctx)
	return sess
}

func (m *Manager) Close() error {
	return m.gateway.Close()
}
