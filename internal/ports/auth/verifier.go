package auth

import "context"

// AuthVerifier verifica el token del voluntario y devuelve sus claims (incluye iniciales).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
