package repository

import (
	"sync"
	"time"

	"authws-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// memoryRepository is an in-memory UserRepository with the same uniqueness
// semantics as the GORM implementation. Used by tests and local runs
// without a database.
type memoryRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User // keyed by ID
	images []domain.UserImage
}

// NewMemoryRepository creates an empty in-memory user repository.
func NewMemoryRepository() UserRepository {
	return &memoryRepository{
		users: make(map[string]*domain.User),
	}
}

func (r *memoryRepository) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicateKey
		}
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryRepository) FindByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (r *memoryRepository) FindByUsername(username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) FindByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) FindAll() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *memoryRepository) UpdateProfileImage(user *domain.User, image *domain.UserImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone

	image.ID = uuid.New().String()
	image.UserID = user.ID
	image.CreatedAt = time.Now()
	r.images = append(r.images, *image)
	return nil
}
