// Package auth registers users and verifies their credentials. The engine
// receives the authenticated login string and trusts it; nothing here touches
// wallets.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations     = 185000
	keyLen         = 32
	saltLen        = 16
	minPasswordLen = 4
)

var (
	ErrEmptyLogin     = errors.New("empty login")
	ErrShortPassword  = errors.New("password too short")
	ErrDuplicateLogin = errors.New("login already taken")
)

// User carries the stored credential material for one login.
type User struct {
	Login        string
	PasswordHash string
	Salt         []byte
}

// UserStore is a keyed upsert over users.
type UserStore interface {
	FindByLogin(login string) (*User, bool)
	Save(u *User)
}

// MemoryUserStore keeps users for the process lifetime only; credentials are
// not persisted across runs.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]*User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*User)}
}

func (s *MemoryUserStore) FindByLogin(login string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[login]
	return u, ok
}

func (s *MemoryUserStore) Save(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Login] = u
}

// Service implements salted-hash registration and verification with
// PBKDF2-HMAC-SHA256.
type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) Register(login, password string) error {
	if strings.TrimSpace(login) == "" {
		return ErrEmptyLogin
	}
	if len(password) < minPasswordLen {
		return ErrShortPassword
	}
	if _, exists := s.users.FindByLogin(login); exists {
		return ErrDuplicateLogin
	}
	salt, err := newSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	s.users.Save(&User{
		Login:        login,
		PasswordHash: hash(password, salt),
		Salt:         salt,
	})
	return nil
}

// Authenticate reports whether the password matches login's stored
// credentials. Unknown logins simply fail.
func (s *Service) Authenticate(login, password string) bool {
	u, ok := s.users.FindByLogin(login)
	if !ok {
		return false
	}
	h := hash(password, u.Salt)
	return subtle.ConstantTimeCompare([]byte(h), []byte(u.PasswordHash)) == 1
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func hash(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}
