package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-frontdesk/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// HeaderVolunteerInitials es el header del modo dev.
const HeaderVolunteerInitials = "X-Volunteer-Initials"

// VolunteerContext:
// - Si verifier == nil => modo dev: si viene X-Volunteer-Initials setea claims con esas iniciales.
// - Si verifier != nil y viene Bearer token => Verify() y setea claims.
// - Si no hay claims el request sigue igual; los handlers exigen iniciales (body o claims).
func VolunteerContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if initials := strings.TrimSpace(r.Header.Get(HeaderVolunteerInitials)); initials != "" {
					claims := auth.Claims{UserID: initials, Initials: initials}
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// El handler decide; sin claims las escrituras piden iniciales en el body.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// Initials devuelve las iniciales explícitas o, si faltan, las del voluntario autenticado.
func Initials(ctx context.Context, explicit string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if c, ok := GetClaims(ctx); ok {
		return strings.TrimSpace(c.Initials)
	}
	return ""
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
