package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inkwellhq/inkwell-server/internal/model"
)

// Claims represents the signed cookie payload carrying the opaque session token.
type Claims struct {
	jwt.RegisteredClaims
	SessionToken uuid.UUID `json:"session_token"`
}

// Codec signs session tokens into cookie values and verifies them back,
// backed by symmetric HMAC. A cookie that fails verification never reaches
// the session store.
type Codec struct {
	secretKey string
	ttl       time.Duration
}

// NewCodec creates a Codec with the provided secret key and cookie lifetime.
func NewCodec(secretKey string, ttl time.Duration) model.SessionCodec {
	return &Codec{secretKey: secretKey, ttl: ttl}
}

// Issue wraps the session token into a signed cookie value.
func (c *Codec) Issue(sessionToken uuid.UUID) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		SessionToken: sessionToken,
	})

	value, err := t.SignedString([]byte(c.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}

	return value, nil
}

// Parse validates a cookie value and extracts the session token.
func (c *Codec) Parse(value string) (uuid.UUID, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(c.secretKey), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse session cookie: %w", err)
	}
	if !t.Valid {
		return uuid.Nil, fmt.Errorf("session cookie is invalid")
	}
	if claims.SessionToken == uuid.Nil {
		return uuid.Nil, fmt.Errorf("session cookie has no session token")
	}
	return claims.SessionToken, nil
}
