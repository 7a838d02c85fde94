package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, wrong algorithm, or past expiration. Callers get no
// finer detail than "not valid".
var ErrInvalidToken = errors.New("invalid token")

// KeySource supplies the process-wide signing key. Rotation is out of
// scope, but keeping this behind an interface means a rotating source
// can be dropped in without touching the TokenManager.
type KeySource interface {
	SigningKey() []byte
}

// StaticKey is a KeySource backed by a fixed secret from configuration.
type StaticKey []byte

// SigningKey returns the key bytes.
func (k StaticKey) SigningKey() []byte { return []byte(k) }

// Claims defines the JWT claims structure. The username is the only
// identity claim a token carries.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed, time-limited identity tokens.
// Verification is stateless: signature, clock, and key decide validity.
type TokenManager struct {
	keys KeySource
	ttl  time.Duration
}

// NewTokenManager creates a TokenManager signing with keys and issuing
// tokens that expire ttl after issuance.
func NewTokenManager(keys KeySource, ttl time.Duration) *TokenManager {
	return &TokenManager{keys: keys, ttl: ttl}
}

// Issue creates a new signed token bound to username.
func (tm *TokenManager) Issue(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.keys.SigningKey())
}

// Verify parses and validates a token string, returning the bound username.
func (tm *TokenManager) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.keys.SigningKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

// BearerToken extracts the token from an Authorization: Bearer header.
// Returns "" when the header is absent or not in bearer form.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
