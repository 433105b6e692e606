// Package auth issues and verifies the signed identity tokens handed to API clients.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pkg/errors"
)

var (
	nowFunc = time.Now // mockable

	// ErrInvalidToken is returned for every token that fails verification,
	// whether it is malformed, tampered with, signed with another key or expired.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Email string                 `json:"email"`
	Data  map[string]interface{} `json:"data,omitempty"` // any other claims sent by the client
}

type TokenService struct {
	appName         string
	secretKey       []byte
	expirationDelta time.Duration
}

func NewTokenService(appName, secretKey string, expirationDelta time.Duration) *TokenService {
	return &TokenService{
		appName:         appName,
		secretKey:       []byte(secretKey),
		expirationDelta: expirationDelta,
	}
}

// Issue generates a signed token string for the given claims.
// Registered claims are always overwritten: the token is valid for the configured delta from now.
func (svc *TokenService) Issue(claims Claims) (string, error) {
	now := nowFunc()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    svc.appName,
		Subject:   claims.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(svc.expirationDelta)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(svc.secretKey)
	if err != nil {
		return "", pkgerrors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Verify checks the token signature & expiry and returns its claims.
func (svc *TokenService) Verify(tokenString string) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(*jwt.Token) (interface{}, error) { return svc.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(nowFunc),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the verified claims.
func NewContext(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// FromContext returns the claims stored in ctx by NewContext, if any.
func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(Claims)
	return claims, ok
}
