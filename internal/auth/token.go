package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers bad signature, malformed structure and expiry
// alike. Callers cannot tell which check failed; the original cause is
// kept only as wrapped detail for logging.
var ErrInvalidToken = errors.New("invalid token")

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// JWT claims
type Claims struct {
	Email     string    `json:"email,omitempty"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs claims with the private key and verifies tokens with the
// public key. Issuing never needs the public half, verifying never needs
// the private half.
type Codec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	method     jwt.SigningMethod
}

func NewCodec(privatePEM, publicPEM []byte, algorithm string) (*Codec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %q", algorithm)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return &Codec{
		privateKey: privateKey,
		publicKey:  publicKey,
		method:     method,
	}, nil
}

// Encode stamps iat, a fresh jti, and exp (unless the caller set one),
// then signs the claims.
func (c *Codec) Encode(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()

	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ID = uuid.NewString()

	token := jwt.NewWithClaims(c.method, &claims)
	return token.SignedString(c.privateKey)
}

func (c *Codec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
