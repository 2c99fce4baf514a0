package user

import (
	"context"
	"fmt"

	"campuslife/internal/common"
	"campuslife/internal/dbjson"
)

const usersDoc = "users"

// UserRepository is the read/write surface over the persisted user list.
// Every mutation is a whole-document read-modify-write.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]dbjson.User, error)
	GetUserByID(ctx context.Context, id dbjson.UserID) (*dbjson.User, error)
	// FindByLogin looks a user up by student id or email, the two accepted
	// login identifiers.
	FindByLogin(ctx context.Context, identifier string) (*dbjson.User, error)
	CreateUser(ctx context.Context, u *dbjson.User) error
	UpdateUser(ctx context.Context, u *dbjson.User) error
	// UpdateUsers saves several users in one document write. Follow
	// toggles depend on this: both sides of the edge land together or not
	// at all.
	UpdateUsers(ctx context.Context, users ...*dbjson.User) error

	StudentIDExists(ctx context.Context, studentID string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	store *dbjson.Store
}

func NewUserRepository(store *dbjson.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) load() ([]dbjson.User, error) {
	var users []dbjson.User
	if err := r.store.Read(usersDoc, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) save(users []dbjson.User) error {
	return r.store.Write(usersDoc, users)
}

func (r *userRepository) ListUsers(ctx context.Context) ([]dbjson.User, error) {
	return r.load()
}

func (r *userRepository) GetUserByID(ctx context.Context, id dbjson.UserID) (*dbjson.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
}

func (r *userRepository) FindByLogin(ctx context.Context, identifier string) (*dbjson.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].StudentID == identifier || users[i].Email == identifier {
			u := users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", identifier, common.ErrNotFound)
}

func (r *userRepository) CreateUser(ctx context.Context, u *dbjson.User) error {
	users, err := r.load()
	if err != nil {
		return err
	}
	users = append(users, *u)
	return r.save(users)
}

func (r *userRepository) UpdateUser(ctx context.Context, u *dbjson.User) error {
	return r.UpdateUsers(ctx, u)
}

func (r *userRepository) UpdateUsers(ctx context.Context, updated ...*dbjson.User) error {
	users, err := r.load()
	if err != nil {
		return err
	}
	for _, u := range updated {
		found := false
		for i := range users {
			if users[i].ID == u.ID {
				users[i] = *u
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("user %s: %w", u.ID, common.ErrNotFound)
		}
	}
	return r.save(users)
}

func (r *userRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	return r.exists(func(u *dbjson.User) bool { return u.StudentID == studentID })
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(func(u *dbjson.User) bool { return u.Username == username })
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(func(u *dbjson.User) bool { return u.Email == email })
}

func (r *userRepository) exists(match func(*dbjson.User) bool) (bool, error) {
	users, err := r.load()
	if err != nil {
		return false, err
	}
	for i := range users {
		if match(&users[i]) {
			return true, nil
		}
	}
	return false, nil
}
