package auth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// GoogleProfile is the subset of a verified Google ID token the signup flow
// needs.
type GoogleProfile struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// GoogleVerifier validates frontend-supplied Google ID tokens against a fixed
// OAuth client ID.
type GoogleVerifier struct {
	ClientID string
}

var ErrGoogleNotConfigured = errors.New("google auth not configured")

// Verify checks signature and audience and extracts the profile claims.
func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (GoogleProfile, error) {
	if g.ClientID == "" {
		return GoogleProfile{}, ErrGoogleNotConfigured
	}

	payload, err := idtoken.Validate(ctx, rawToken, g.ClientID)
	if err != nil {
		return GoogleProfile{}, err
	}

	p := GoogleProfile{Subject: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		p.Email = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		p.Name = v
	} else if v, ok := payload.Claims["given_name"].(string); ok {
		p.Name = v
	}
	if p.Name == "" {
		p.Name = "User"
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		p.AvatarURL = v
	}
	if p.Email == "" {
		return GoogleProfile{}, errors.New("google token missing email claim")
	}
	return p, nil
}
