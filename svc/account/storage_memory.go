package account

import (
	"context"
	"sync"
	"time"

	"github.com/simonta/simonta-api/pkg/lookups"
)

// MemoryStorage keeps accounts in process. It enforces the same unique and
// foreign key constraints as the Postgres schema and, when given a
// lookups.Memory, mirrors every write into it so uniqueness rules see the
// stored rows.
type MemoryStorage struct {
	mu     sync.RWMutex
	users  map[int64]StoredUser
	desa   map[int64]struct{}
	nextID int64
	mirror *lookups.Memory
	now    func() time.Time
}

// NewMemoryStorage returns an empty store. mirror may be nil.
func NewMemoryStorage(mirror *lookups.Memory) *MemoryStorage {
	return &MemoryStorage{
		users:  make(map[int64]StoredUser),
		desa:   make(map[int64]struct{}),
		mirror: mirror,
		now:    time.Now,
	}
}

// AddDesa registers a village id referenced by users.id_desa.
func (m *MemoryStorage) AddDesa(id int64, nama string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.desa[id] = struct{}{}
	if m.mirror != nil {
		m.mirror.Put(EntityDesa, id, map[string]any{"nama": nama})
	}
}

func (m *MemoryStorage) CreateUser(ctx context.Context, u *StoredUser) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkConstraints(u, 0); err != nil {
		return err
	}

	m.nextID++
	now := m.now().UTC()
	u.ID = m.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	m.put(*u)
	return nil
}

func (m *MemoryStorage) GetUser(ctx context.Context, id int64) (*StoredUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *MemoryStorage) GetUserByUsername(ctx context.Context, username string) (*StoredUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryStorage) UpdateUser(ctx context.Context, u *StoredUser) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.users[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	if err := m.checkConstraints(u, u.ID); err != nil {
		return err
	}

	u.Username = current.Username
	u.Role = current.Role
	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = m.now().UTC()
	m.put(*u)
	return nil
}

// checkConstraints must be called with the write lock held.
func (m *MemoryStorage) checkConstraints(u *StoredUser, self int64) error {
	for id, other := range m.users {
		if id == self {
			continue
		}
		if other.Username == u.Username {
			return ErrDuplicateUsername
		}
		if other.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	if u.IDDesa != nil {
		if _, ok := m.desa[*u.IDDesa]; !ok {
			return ErrDesaNotFound
		}
	}
	return nil
}

func (m *MemoryStorage) put(u StoredUser) {
	m.users[u.ID] = u
	if m.mirror != nil {
		m.mirror.Put(EntityUsers, u.ID, map[string]any{
			"username": u.Username,
			"email":    u.Email,
		})
	}
}
