package auth

import "context"

// AuthVerifier valida un token de acceso y devuelve los claims con roles ROLE_*.
// Lo implementa adapters/auth/jwtauth; nil en el router activa el modo dev.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	// Roles en formato token: ROLE_ADMIN, ROLE_GESTOR, ...
	Roles []string
}

// HasAnyRole responde si los claims incluyen al menos uno de los roles dados.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
