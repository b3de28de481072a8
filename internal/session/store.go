// Package session tracks the signed-in user of a client and persists that
// user as a JSON record in key-value storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

// Storage is the key-value backend holding persisted session records.
type Storage interface {
	// Get reports false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Options tunes session behavior.
type Options struct {
	// LoginDelay and RegisterDelay simulate backend latency.
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	// VerifyPasswords checks the password of accounts that carry a hash.
	// When false, any password is accepted for an existing account.
	VerifyPasswords bool
	Hasher          PasswordHasher
	NewID           domain.IDGenerator
	Logger          *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = domain.NewID
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	EmployeeID string
	StoreID    string
}

// Store is the session of one client: the current user plus the storage
// key its record lives under.
type Store struct {
	mu      sync.Mutex
	dir     *Directory
	storage Storage
	key     string
	opts    Options
	current *domain.User
}

// NewStore builds a signed-out session persisted under key.
func NewStore(dir *Directory, storage Storage, key string, opts Options) *Store {
	return &Store{dir: dir, storage: storage, key: key, opts: opts.withDefaults()}
}

// Key returns the storage key of the persisted record.
func (s *Store) Key() string {
	return s.key
}

// CurrentUser returns the signed-in user.
func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// Restore loads the persisted record. An absent record leaves the session
// signed out. The record is trusted as-is; an undecodable record is
// discarded.
func (s *Store) Restore(ctx context.Context) (domain.User, bool, error) {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return domain.User{}, false, err
	}
	if !ok {
		s.setCurrent(nil)
		return domain.User{}, false, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.opts.Logger.Warn("discarding corrupt session record", zap.String("key", s.key), zap.Error(err))
		s.setCurrent(nil)
		return domain.User{}, false, s.storage.Delete(ctx, s.key)
	}
	s.setCurrent(&user)
	return user, true, nil
}

// Login signs in the account with this email. An unknown email fails with
// ErrInvalidCredentials and leaves the session unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (domain.User, error) {
	if err := wait(ctx, s.opts.LoginDelay); err != nil {
		return domain.User{}, err
	}

	user, ok := s.dir.FindByEmail(email)
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	if s.opts.VerifyPasswords && user.PasswordHash != "" && s.opts.Hasher != nil {
		if err := s.opts.Hasher.Compare(user.PasswordHash, password); err != nil {
			return domain.User{}, ErrInvalidCredentials
		}
	}

	if err := s.persist(ctx, user); err != nil {
		return domain.User{}, err
	}
	s.opts.Logger.Info("user signed in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Register creates an employee account, adds it to the directory and signs
// it in. A taken email fails with ErrEmailInUse and leaves the directory
// unchanged.
func (s *Store) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := wait(ctx, s.opts.RegisterDelay); err != nil {
		return domain.User{}, err
	}
	if _, taken := s.dir.FindByEmail(in.Email); taken {
		return domain.User{}, ErrEmailInUse
	}

	user := domain.User{
		ID:         s.opts.NewID(),
		Name:       in.Name,
		Email:      in.Email,
		EmployeeID: in.EmployeeID,
		Role:       domain.UserRoleEmployee,
		StoreID:    in.StoreID,
	}
	if s.opts.Hasher != nil && in.Password != "" {
		hash, err := s.opts.Hasher.Hash(in.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.dir.Add(user); err != nil {
		return domain.User{}, err
	}
	if err := s.persist(ctx, user); err != nil {
		s.dir.remove(user.ID)
		return domain.User{}, err
	}
	s.opts.Logger.Info("user registered", zap.String("user_id", user.ID), zap.String("store_id", user.StoreID))
	return user, nil
}

// Logout clears the current user and its persisted record.
func (s *Store) Logout(ctx context.Context) error {
	s.setCurrent(nil)
	return s.storage.Delete(ctx, s.key)
}

func (s *Store) persist(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, string(raw)); err != nil {
		return err
	}
	s.setCurrent(&user)
	return nil
}

func (s *Store) setCurrent(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = user
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsAuthError reports whether err is a login or registration rejection.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrEmailInUse)
}
