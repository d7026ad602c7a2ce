package memory

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	db *DB
}

// NewUserRepository construye el repositorio sobre db.
func NewUserRepository(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste el usuario; username duplicado -> domain.ErrConflict.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == user.Username || u.ID == user.ID {
			return domain.ErrConflict
		}
	}
	r.db.users = append(r.db.users, cloneUser(user))
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// List devuelve todos los usuarios en orden de inserción.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}
