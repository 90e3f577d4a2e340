package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/events"
)

// memStore mimics the postgres repository: owner scoping, unique subdomains,
// updated_at bumps on every write.
type memStore struct {
	mu    sync.Mutex
	rows  map[string]domain.Project
	clock time.Time

	// reserved subdomains belong to nobody visible, to force conflicts.
	reserved map[string]bool

	// failWith makes every call return this error when set.
	failWith error

	// conflictsLeft makes the next n inserts fail with ErrConflict.
	conflictsLeft int

	inserts int
}

func newMemStore() *memStore {
	return &memStore{
		rows:     map[string]domain.Project{},
		reserved: map[string]bool{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) subdomainUsed(sub, exceptID string) bool {
	if m.reserved[sub] {
		return true
	}
	for id, r := range m.rows {
		if id != exceptID && r.Subdomain != nil && *r.Subdomain == sub {
			return true
		}
	}
	return false
}

func (m *memStore) Insert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.conflictsLeft > 0 {
		m.conflictsLeft--
		return nil, domain.ErrConflict
	}
	if p.Subdomain != nil && m.subdomainUsed(*p.Subdomain, "") {
		return nil, domain.ErrConflict
	}
	row := *p
	row.ID = uuid.NewString()
	row.SiteConfig = p.SiteConfig.Clone()
	row.CreatedAt = m.tick()
	row.UpdatedAt = row.CreatedAt
	m.rows[row.ID] = row
	out := row
	return &out, nil
}

func (m *memStore) SelectAll(_ context.Context, ownerID string) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []domain.Project{}
	for _, r := range m.rows {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) SelectOne(_ context.Context, id, ownerID string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	r, ok := m.rows[id]
	if !ok || r.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	r.SiteConfig = r.SiteConfig.Clone()
	return &r, nil
}

func (m *memStore) Update(_ context.Context, id, ownerID string, u domain.Update) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	r, ok := m.rows[id]
	if !ok || r.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	if u.Subdomain != nil && m.subdomainUsed(*u.Subdomain, id) {
		return nil, domain.ErrConflict
	}
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Subdomain != nil {
		r.Subdomain = u.Subdomain
	}
	if u.CustomDomain != nil {
		r.CustomDomain = u.CustomDomain
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.TemplateID != nil {
		r.TemplateID = u.TemplateID
	}
	if u.AIEnabled != nil {
		r.AIEnabled = *u.AIEnabled
	}
	if u.SiteConfig != nil {
		r.SiteConfig = u.SiteConfig.Clone()
	}
	r.UpdatedAt = m.tick()
	m.rows[id] = r
	out := r
	return &out, nil
}

func (m *memStore) Delete(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	r, ok := m.rows[id]
	if !ok || r.UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore) SubdomainTaken(_ context.Context, subdomain string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	return m.subdomainUsed(subdomain, ""), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

var errBackend = errors.New("connection reset by peer")
