package identity

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/luxpos/cashier-admin/internal/core/domain"
	"github.com/luxpos/cashier-admin/internal/core/ports"
)

const sessionTTL = 24 * time.Hour

type memoryRecord struct {
	id            string
	email         string
	name          string
	role          domain.Role
	passwordHash  string
	emailVerified bool
}

// Memory is an in-process IdentityStore. It hashes passwords with bcrypt and
// mints HS256 session tokens, so the auth path behaves like the real service.
// Used for local development wiring and tests; state is lost on restart.
type Memory struct {
	mu         sync.RWMutex
	signingKey []byte
	byID       map[string]*memoryRecord
	byEmail    map[string]string
}

func NewMemory(signingKey string) *Memory {
	return &Memory{
		signingKey: []byte(signingKey),
		byID:       make(map[string]*memoryRecord),
		byEmail:    make(map[string]string),
	}
}

func (m *Memory) CreateIdentity(_ context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[in.Email]; exists {
		return nil, &domain.StoreError{Message: "a user with this email address has already been registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rec := &memoryRecord{
		id:            uuid.NewString(),
		email:         in.Email,
		name:          in.Name,
		role:          in.Role,
		passwordHash:  string(hash),
		emailVerified: in.EmailVerified,
	}
	m.byID[rec.id] = rec
	m.byEmail[rec.email] = rec.id

	return rec.identity(), nil
}

func (m *Memory) DeleteIdentity(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[id]
	if !ok {
		return &domain.StoreError{Message: "user not found"}
	}
	delete(m.byID, id)
	delete(m.byEmail, rec.email)
	return nil
}

func (m *Memory) ValidateSession(_ context.Context, token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.signingKey, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byID[sub]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return rec.identity(), nil
}

// IssueSession mints a session token for an existing identity.
func (m *Memory) IssueSession(id string) (string, error) {
	m.mu.RLock()
	rec, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return "", domain.ErrInvalidToken
	}

	claims := jwt.MapClaims{
		"sub":   rec.id,
		"email": rec.email,
		"role":  string(rec.role),
		"exp":   time.Now().Add(sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.signingKey)
}

// CheckPassword verifies a password against the stored hash.
func (m *Memory) CheckPassword(email, password string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(m.byID[id].passwordHash), []byte(password)) == nil
}

func (r *memoryRecord) identity() *domain.Identity {
	return &domain.Identity{
		ID:            r.id,
		Email:         r.email,
		Name:          r.name,
		Role:          r.role,
		EmailVerified: r.emailVerified,
	}
}
