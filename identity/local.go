package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital-menu-api/models"
	"digital-menu-api/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the payload of tokens issued by Local
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Local keeps accounts in the service database and issues HS256 tokens
type Local struct {
	store  *store.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewLocal(s *store.Store, secret string, ttl time.Duration) *Local {
	return &Local{store: s, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Register creates an account and returns its identity
func (l *Local) Register(ctx context.Context, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account := &models.Account{Email: email, PasswordHash: string(hash)}
	if err := l.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &User{ID: account.ID, Email: account.Email}, nil
}

// Login checks the password and returns the identity
func (l *Local) Login(ctx context.Context, email, password string) (*User, error) {
	account, err := l.store.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &User{ID: account.ID, Email: account.Email}, nil
}

// IssueToken signs a token for u
func (l *Local) IssueToken(u *User) (string, error) {
	now := l.now()
	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(l.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(l.secret)
}

// Authenticate verifies the signature and expiry, then reloads the account so
// a deleted account stops authenticating immediately
func (l *Local) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return l.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(l.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthenticated
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	account, err := l.store.AccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return &User{ID: account.ID, Email: account.Email}, nil
}
