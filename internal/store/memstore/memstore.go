package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lukabartula/blog-website-api/internal/models"
)

// Store keeps users in insertion order behind a mutex. It is meant for local
// runs and tests; nothing survives a restart.
type Store struct {
	mu    sync.RWMutex
	users []models.User

	// now is swappable so tests can pin creation times.
	now func() time.Time
}

func New() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) indexOf(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, models.ErrNotFound
	}
	u := s.users[i]
	return &u, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *Store) Insert(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = uuid.NewString()
	u.CreatedAt = s.now()
	s.users = append(s.users, *u)
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) ListPage(ctx context.Context, offset, limit int) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.users) {
		return []models.User{}, nil
	}
	end := len(s.users)
	if limit < end-offset {
		end = offset + limit
	}
	out := make([]models.User, end-offset)
	copy(out, s.users[offset:end])
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Store) Replace(ctx context.Context, id string, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	s.users[i] = *u
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return nil
}
