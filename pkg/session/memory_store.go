package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. It is the default store of
// a Manager and suits tests and single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time

	stop context.CancelFunc
	wg   sync.WaitGroup
}

type MemoryStoreOption func(*MemoryStore)

// WithStoreClock sets the time source used to decide expiry.
func WithStoreClock(now func() time.Time) MemoryStoreOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemoryStore creates an empty store. A positive cleanupInterval starts a
// goroutine that purges expired records until Close is called.
func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	m := &MemoryStore{
		records: make(map[string]*Record),
		now:     time.Now,
		stop:    func() {},
	}
	for _, opt := range opts {
		opt(m)
	}

	if cleanupInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		m.stop = cancel
		m.wg.Add(1)
		go m.cleanup(ctx, cleanupInterval)
	}
	return m
}

// Load returns a copy of the record. Expired records are dropped on sight
// and reported as ErrSessionNotFound.
func (m *MemoryStore) Load(ctx context.Context, id string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	r, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	if r.IsExpired(m.now()) {
		m.mu.Lock()
		// a concurrent Save may have replaced it
		if m.records[id] == r {
			delete(m.records, id)
		}
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return r.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, id string, r *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" || r == nil {
		return ErrInvalidRecord
	}

	m.mu.Lock()
	m.records[id] = r.Clone()
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.records, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.purge(m.now())
	return nil
}

// Len counts stored records, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close stops the cleanup goroutine and waits for it. Safe to call twice.
func (m *MemoryStore) Close() error {
	m.stop()
	m.wg.Wait()
	return nil
}

func (m *MemoryStore) purge(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, r := range m.records {
		if r.IsExpired(now) {
			delete(m.records, id)
		}
	}
}

func (m *MemoryStore) cleanup(ctx context.Context, interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.purge(m.now())
		case <-ctx.Done():
			return
		}
	}
}
