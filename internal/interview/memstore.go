package interview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is a map-backed Store. It backs unit tests and serves as the
// storage fallback when no database is configured.
type MemStore struct {
	mu         sync.Mutex
	interviews map[string]*Interview
}

func NewMemStore() *MemStore {
	return &MemStore{interviews: make(map[string]*Interview)}
}

func (m *MemStore) Create(ctx context.Context, role string) (*Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	iv := &Interview{
		ID:        uuid.New().String(),
		Role:      role,
		Answers:   []Answer{},
		CreatedAt: time.Now().UTC(),
	}
	m.interviews[iv.ID] = iv

	return copyOf(iv), nil
}

func (m *MemStore) Get(ctx context.Context, id string) (*Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	iv, ok := m.interviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOf(iv), nil
}

func (m *MemStore) Update(ctx context.Context, id string, p Patch) (*Interview, error) {
	if len(p.Answers) > QuestionCount {
		return nil, ErrTooManyAnswers
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	iv, ok := m.interviews[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Completed interviews are read-only.
	if iv.Completed {
		return copyOf(iv), nil
	}

	if p.Answers != nil {
		iv.Answers = append([]Answer(nil), p.Answers...)
	}
	if p.Score != nil {
		iv.Score = *p.Score
	}
	if p.Feedback != nil {
		iv.Feedback = *p.Feedback
	}
	if p.TabSwitches != nil {
		iv.TabSwitches = *p.TabSwitches
	}
	if p.Duration != nil {
		iv.Duration = *p.Duration
	}
	if p.Completed != nil && *p.Completed {
		now := time.Now().UTC()
		iv.Completed = true
		iv.CompletedAt = &now
	}

	return copyOf(iv), nil
}

func copyOf(iv *Interview) *Interview {
	out := *iv
	out.Answers = append([]Answer(nil), iv.Answers...)
	if iv.CompletedAt != nil {
		t := *iv.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}
