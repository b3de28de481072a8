package session

import (
	"sync"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

// Directory is the in-memory list of known accounts, shared by every
// session.
type Directory struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewDirectory seeds a directory with users.
func NewDirectory(users []domain.User) *Directory {
	return &Directory{users: append([]domain.User{}, users...)}
}

// FindByEmail returns the account with exactly this email.
func (d *Directory) FindByEmail(email string) (domain.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

// FindByID returns the account with this id.
func (d *Directory) FindByID(id string) (domain.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// Users returns every account in registration order.
func (d *Directory) Users() []domain.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.User{}, d.users...)
}

// Add appends a user unless its email is already taken.
func (d *Directory) Add(user domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Email == user.Email {
			return ErrEmailInUse
		}
	}
	d.users = append(d.users, user)
	return nil
}

func (d *Directory) remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, u := range d.users {
		if u.ID == id {
			d.users = append(d.users[:i:i], d.users[i+1:]...)
			return
		}
	}
}
