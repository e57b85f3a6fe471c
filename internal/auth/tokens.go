package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A token is only ever valid for the purpose it was minted
// with; the middleware rejects reset tokens and the reset flow rejects
// session tokens.
const (
	PurposeSession       = "session"
	PurposePasswordReset = "password-reset"
)

const (
	SessionTTL = 7 * 24 * time.Hour
	ResetTTL   = time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens signs and verifies HS256 JWTs for sessions and password resets.
type Tokens struct {
	Secret []byte
}

// Claims carried by a verified token.
type Claims struct {
	UserID  string
	Role    string
	Purpose string
}

// SignSession mints a 7-day session token for the given user.
func (t *Tokens) SignSession(userID, role string) (string, error) {
	return t.sign(jwt.MapClaims{
		"sub":     userID,
		"role":    role,
		"purpose": PurposeSession,
		"exp":     time.Now().Add(SessionTTL).Unix(),
	})
}

// SignPasswordReset mints a 1-hour single-purpose reset token.
func (t *Tokens) SignPasswordReset(userID string) (string, error) {
	return t.sign(jwt.MapClaims{
		"sub":     userID,
		"purpose": PurposePasswordReset,
		"exp":     time.Now().Add(ResetTTL).Unix(),
	})
}

func (t *Tokens) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

// Verify parses and validates raw and requires it to carry the given purpose.
// Expired, tampered, non-HMAC and wrong-purpose tokens all come back as
// ErrInvalidToken.
func (t *Tokens) Verify(raw, purpose string) (Claims, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.Secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Claims{}, ErrInvalidToken
	}
	if p, _ := mc["purpose"].(string); p != purpose {
		return Claims{}, ErrInvalidToken
	}

	role, _ := mc["role"].(string)
	return Claims{UserID: sub, Role: role, Purpose: purpose}, nil
}
