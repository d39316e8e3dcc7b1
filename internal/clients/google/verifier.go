// Package google wraps Google ID-token validation behind the service-level
// verifier interface.
package google

import (
	"context"

	"github.com/courseforge/courseforge/internal/services"
	"google.golang.org/api/idtoken"
)

type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

func (v *Verifier) Verify(ctx context.Context, tokenID string) (*services.GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, tokenID, v.clientID)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	name, _ := payload.Claims["name"].(string)

	return &services.GoogleProfile{
		Email:         email,
		EmailVerified: verified,
		Name:          name,
	}, nil
}
