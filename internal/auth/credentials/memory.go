package credentials

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemService is the in-memory counterpart of Service, used in tests and
// when no database is configured.
type MemService struct {
	mu    sync.Mutex
	users map[string]memUser // keyed by lowercase username
}

type memUser struct {
	id           string
	passwordHash string
}

func NewMemService() *MemService {
	return &MemService{users: make(map[string]memUser)}
}

func (m *MemService) Register(ctx context.Context, username, password string) (string, error) {
	hash, _, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(username)
	if _, ok := m.users[key]; ok {
		return "", ErrAlreadyRegistered
	}

	u := memUser{id: uuid.New().String(), passwordHash: hash}
	m.users[key] = u
	return u.id, nil
}

func (m *MemService) Authenticate(ctx context.Context, username, password string) (string, error) {
	m.mu.Lock()
	u, ok := m.users[strings.ToLower(username)]
	m.mu.Unlock()

	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := VerifyPassword(u.passwordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return u.id, nil
}
