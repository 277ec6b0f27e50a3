package memory

import (
	"context"
	"sort"
	"time"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type userRepository Store

func (r *userRepository) GetUser(_ context.Context, id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) GetAllUsers(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userRepository) InsertUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	now := time.Now()
	stored := *user
	stored.ID = r.nextUserID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.nextUserID++
	r.users[stored.ID] = stored
	return &stored, nil
}

func (r *userRepository) UpdateUser(_ context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if update.Username != nil && *update.Username != existing.Username {
		for _, other := range r.users {
			if other.ID != id && other.Username == *update.Username {
				return nil, domain.ErrDuplicateUsername
			}
		}
		existing.Username = *update.Username
	}
	if update.FullName != nil {
		existing.FullName = *update.FullName
	}
	if update.Role != nil {
		existing.Role = *update.Role
	}
	if update.IsActive != nil {
		existing.IsActive = *update.IsActive
	}
	existing.UpdatedAt = time.Now()
	r.users[id] = existing
	return &existing, nil
}

func (r *userRepository) DeleteUser(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}
