package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userstorer/internal/server/models"
)

func TestIssueToken_ClaimsVerifyAgainstPublicKey(t *testing.T) {
	privPem, _, key := generateKeyPairPem(t)

	priv, err := ParsePrivateKey(privPem)
	require.NoError(t, err)

	user := &models.User{
		ID:       "id-123",
		Username: "tester",
		Email:    "test@example.com",
		Roles:    []string{"admin", "user"},
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tokenString, err := IssueToken(user, now, priv, DefaultIssuer, TokenValidity)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "user-storer", claims.Issuer)
	assert.Equal(t, "id-123", claims.Subject)
	assert.Equal(t, "test@example.com", claims.UPN)
	assert.ElementsMatch(t, []string{"admin", "user"}, claims.Groups)
	assert.Equal(t, "tester", claims.Username)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(900*time.Second).Unix(), claims.ExpiresAt.Unix())
}

func TestIssueToken_NilRolesBecomeEmptyGroups(t *testing.T) {
	privPem, _, key := generateKeyPairPem(t)
	priv, err := ParsePrivateKey(privPem)
	require.NoError(t, err)

	user := &models.User{ID: "id-1", Email: "a@b.c"}
	now := time.Now()

	tokenString, err := IssueToken(user, now, priv, DefaultIssuer, TokenValidity)
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	require.NoError(t, err)

	assert.NotNil(t, claims.Groups)
	assert.Empty(t, claims.Groups)
}
