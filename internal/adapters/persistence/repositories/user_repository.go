package repositories

import (
	"context"

	"eps-clinic/internal/adapters/persistence/filestore"
	"eps-clinic/internal/core/domain"
)

// userRepository implements UserRepository over a line store
type userRepository struct {
	store *filestore.LineStore
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *filestore.LineStore) UserRepository {
	return &userRepository{store: store}
}

// GetByName returns the first user with the given name, or nil when absent
func (r *userRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	recs, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if recString(rec, "name") == name {
			return userFromRecord(rec), nil
		}
	}
	return nil, nil
}

// ExistsByName checks whether a user with the given name exists
func (r *userRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	user, err := r.GetByName(ctx, name)
	return user != nil, err
}

// Create appends a new user and rewrites the backing store
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.Update(func(recs []filestore.Record) ([]filestore.Record, error) {
		return append(recs, userToRecord(user)), nil
	})
}

// SetSession flips the session flag on the first user with the given name.
// Returns false when no such user exists. The record is mutated in place so
// every other field survives untouched.
func (r *userRepository) SetSession(ctx context.Context, name string, active bool) (bool, error) {
	found := false
	err := r.store.Update(func(recs []filestore.Record) ([]filestore.Record, error) {
		for _, rec := range recs {
			if recString(rec, "name") == name {
				rec["session"] = active
				found = true
				break
			}
		}
		return recs, nil
	})
	return found, err
}

func userFromRecord(rec filestore.Record) *domain.User {
	user := &domain.User{Extra: map[string]any{}}
	for k, v := range rec {
		switch k {
		case "name":
			user.Name, _ = v.(string)
		case "password":
			user.Password, _ = v.(string)
		case "role":
			user.Role, _ = v.(string)
		case "session":
			user.Session, _ = v.(bool)
		default:
			user.Extra[k] = v
		}
	}
	return user
}

func userToRecord(user *domain.User) filestore.Record {
	rec := filestore.Record{}
	for k, v := range user.Extra {
		rec[k] = v
	}
	rec["name"] = user.Name
	rec["password"] = user.Password
	rec["role"] = user.Role
	// session stays absent until the first explicit open; absent reads as false
	if user.Session {
		rec["session"] = true
	}
	return rec
}

// recString reads a string field from a record, empty when absent or not a string
func recString(rec filestore.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}
