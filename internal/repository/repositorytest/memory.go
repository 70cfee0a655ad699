// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository"
)

type document[T any] interface {
	*T
	domain.Document
}

// Memory is a map-backed repository.Repository. Lists are newest first.
type Memory[T any, P document[T]] struct {
	mu    sync.Mutex
	order []string
	docs  map[string]T
	key   func(*T) string

	// Fail, when set, is returned by every write.
	Fail error
	// Writes counts successful Create and Update calls.
	Writes int
}

// NewMemory builds an empty repository. key, when non-nil, emulates a unique index.
func NewMemory[T any, P document[T]](key func(*T) string) *Memory[T, P] {
	return &Memory[T, P]{docs: make(map[string]T), key: key}
}

func (m *Memory[T, P]) Create(_ context.Context, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	P(doc).Stamp(time.Now().UTC())
	id := P(doc).DocumentID().Hex()
	if m.conflicts(id, doc) {
		return repository.ErrDuplicate
	}
	m.docs[id] = *doc
	m.order = append(m.order, id)
	m.Writes++
	return nil
}

func (m *Memory[T, P]) Update(_ context.Context, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	id := P(doc).DocumentID().Hex()
	if _, ok := m.docs[id]; !ok {
		return repository.ErrNotFound
	}
	if m.conflicts(id, doc) {
		return repository.ErrDuplicate
	}
	P(doc).Stamp(time.Now().UTC())
	m.docs[id] = *doc
	m.Writes++
	return nil
}

func (m *Memory[T, P]) GetByID(_ context.Context, id string) (*T, error) {
	if _, err := repository.ParseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doc, nil
}

func (m *Memory[T, P]) List(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.docs[m.order[i]])
	}
	return out, nil
}

func (m *Memory[T, P]) Delete(_ context.Context, id string) error {
	if _, err := repository.ParseID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.docs, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns the first document matching fn.
func (m *Memory[T, P]) Find(fn func(*T) bool) (*T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		doc := m.docs[id]
		if fn(&doc) {
			return &doc, true
		}
	}
	return nil, false
}

// Len returns the number of stored documents.
func (m *Memory[T, P]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func (m *Memory[T, P]) conflicts(id string, doc *T) bool {
	if m.key == nil {
		return false
	}
	k := m.key(doc)
	for otherID, other := range m.docs {
		if otherID != id && m.key(&other) == k {
			return true
		}
	}
	return false
}

// Users is an in-memory repository.UserRepository with a unique email index.
type Users struct {
	*Memory[domain.User, *domain.User]
}

func NewUsers() *Users {
	return &Users{NewMemory[domain.User](func(u *domain.User) string { return u.Email })}
}

func (u *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = repository.NormalizeEmail(email)
	user, ok := u.Find(func(candidate *domain.User) bool { return candidate.Email == email })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}
