package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gestion-correos/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt secret not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUserID = errors.New("jwt claims missing user id")
)

// TokenClaims es el payload esperado. Acepta "rol" (un rol) o "roles" (lista);
// ambos en forma "GESTOR" o "ROLE_GESTOR".
type TokenClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email,omitempty"`
	Rol    string   `json:"rol,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier con HS256.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret)), issuer: strings.TrimSpace(issuer)}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	tc := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, tc, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}
	if !parsed.Valid {
		return auth.Claims{}, jwt.ErrTokenSignatureInvalid
	}

	uid := strings.TrimSpace(tc.UserID)
	if uid == "" {
		uid = strings.TrimSpace(tc.Subject)
	}
	if uid == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	roles := tc.Roles
	if tc.Rol != "" {
		roles = append([]string{tc.Rol}, roles...)
	}
	return auth.Claims{
		UserID: uid,
		Email:  strings.TrimSpace(tc.Email),
		Roles:  NormalizeRoles(roles),
	}, nil
}

// Issue firma un token HS256. Solo lo usan los tests; en producción los tokens los emite el proveedor de identidad.
func (v *Verifier) Issue(userID, email string, roles []string, ttl time.Duration, now time.Time) (string, error) {
	if v == nil || len(v.secret) == 0 {
		return "", ErrNotConfigured
	}
	tc := TokenClaims{
		UserID: userID,
		Email:  email,
		Roles:  NormalizeRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(v.secret)
}

// NormalizeRoles deja los roles en forma ROLE_* en mayúsculas, sin duplicados.
func NormalizeRoles(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, r := range in {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if !strings.HasPrefix(r, "ROLE_") {
			r = "ROLE_" + r
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
