package hosted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"clinic-frontdesk/internal/platform/httpclient"
	"clinic-frontdesk/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("auth backend not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUnauthorized  = errors.New("auth backend unauthorized")
	ErrUpstream      = errors.New("auth backend upstream error")
)

const userPath = "/auth/v1/user"

// Verifier implementa auth.AuthVerifier contra el endpoint de usuario del backend hosteado.
// El client ya lleva la apikey; el token del voluntario va en Authorization.
type Verifier struct {
	client *httpclient.Client
}

func NewVerifier(client *httpclient.Client) *Verifier {
	return &Verifier{client: client}
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Initials string `json:"initials"`
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var out userResponse
	err := v.client.DoJSON(ctx, http.MethodGet, userPath, map[string]string{
		"Authorization": "Bearer " + token,
	}, nil, &out)
	if err != nil {
		if he, ok := httpclient.AsHTTPError(err); ok &&
			(he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("auth backend response missing user id")
	}

	initials := strings.TrimSpace(out.UserMetadata.Initials)
	if initials == "" {
		initials = initialsOf(out.UserMetadata.FullName)
	}

	return auth.Claims{
		UserID:   out.ID,
		Email:    strings.TrimSpace(out.Email),
		Initials: strings.ToUpper(initials),
	}, nil
}

// initialsOf("Ana María López") == "AML"
func initialsOf(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			if unicode.IsLetter(r) {
				b.WriteRune(unicode.ToUpper(r))
				break
			}
		}
	}
	return b.String()
}
