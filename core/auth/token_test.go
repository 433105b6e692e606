package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService("SkillBoost", "secret", time.Hour)

	tests := []struct {
		name   string
		claims Claims
	}{
		{name: "email only", claims: Claims{Email: "a@x.com"}},
		{name: "with data", claims: Claims{Email: "b@x.com", Data: map[string]interface{}{"name": "Bee", "photo": "https://i.ibb.co/b.png"}}},
		{name: "empty email", claims: Claims{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Issue(tt.claims)
			require.NoError(t, err)

			got, err := svc.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tt.claims.Email, got.Email)
			assert.Equal(t, tt.claims.Data, got.Data)
			assert.Equal(t, "SkillBoost", got.Issuer)
			assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestTokenService_Verify(t *testing.T) {
	svc := NewTokenService("SkillBoost", "secret", time.Hour)

	validToken, err := svc.Issue(Claims{Email: "a@x.com"})
	require.NoError(t, err)

	// issued 2 hours ago: expired an hour ago
	nowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := svc.Issue(Claims{Email: "a@x.com"})
	nowFunc = time.Now // reset
	require.NoError(t, err)

	otherKeyToken, err := NewTokenService("SkillBoost", "other-secret", time.Hour).Issue(Claims{Email: "a@x.com"})
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: "a@x.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiryToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "a@x.com"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid token", token: validToken},
		{name: "no token", token: "", wantErr: ErrInvalidToken},
		{name: "malformed", token: "not.a.jwt", wantErr: ErrInvalidToken},
		{name: "tampered", token: validToken + "x", wantErr: ErrInvalidToken},
		{name: "expired", token: expiredToken, wantErr: ErrInvalidToken},
		{name: "wrong secret", token: otherKeyToken, wantErr: ErrInvalidToken},
		{name: "alg none", token: noneToken, wantErr: ErrInvalidToken},
		{name: "no expiry", token: noExpiryToken, wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Empty(t, claims.Email)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", claims.Email)
		})
	}
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), Claims{Email: "a@x.com"})
	claims, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestTokenService_Issue_keepsCause(t *testing.T) {
	svc := NewTokenService("SkillBoost", "secret", time.Hour)

	_, err := svc.Issue(Claims{Email: "a@x.com", Data: map[string]interface{}{"ch": make(chan int)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing token")

	var typeErr *json.UnsupportedTypeError
	assert.ErrorAs(t, err, &typeErr)
}
