package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_RoundTrip(t *testing.T) {
	v := NewVerifier("s3cret", "gestion-correos")
	tok, err := v.Issue("u-1", "ana@ins.gov.co", []string{"gestor", "ROLE_GESTOR", "admin"}, time.Hour, time.Now())
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "ana@ins.gov.co", c.Email)
	assert.Equal(t, []string{"ROLE_GESTOR", "ROLE_ADMIN"}, c.Roles)
}

func TestVerify_SingleRolClaim(t *testing.T) {
	v := NewVerifier("s3cret", "")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		UserID: "u-2",
		Rol:    "revisor",
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_REVISOR"}, c.Roles)
}

func TestVerify_Rejects(t *testing.T) {
	v := NewVerifier("s3cret", "gestion-correos")
	now := time.Now()

	expired, err := v.Issue("u-1", "", nil, time.Minute, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), expired)
	assert.Error(t, err)

	other, err := NewVerifier("otro", "gestion-correos").Issue("u-1", "", nil, time.Hour, now)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), other)
	assert.Error(t, err)

	wrongIss, err := NewVerifier("s3cret", "otro").Issue("u-1", "", nil, time.Hour, now)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), wrongIss)
	assert.Error(t, err)

	noUser, err := v.Issue("", "", nil, time.Hour, now)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), noUser)
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = NewVerifier("", "").Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
