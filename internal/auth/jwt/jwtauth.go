package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// Audience values distinguish staff tokens from customer session tokens.
const (
	AudienceAdmin   = "admin"
	AudienceSession = "session"
)

// Claims is the verified content of a token.
type Claims struct {
	Subject  string
	Email    string
	Audience string
}

func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (*Claims, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return nil, err
	}

	c := &Claims{Subject: t.Subject()}
	if aud := t.Audience(); len(aud) > 0 {
		c.Audience = aud[0]
	}
	if email, ok := t.Get("email"); ok {
		c.Email, _ = email.(string)
	}
	return c, nil
}

// VerifyTokenWithAudience verifies the token and requires the given audience.
func VerifyTokenWithAudience(jwtAuth *jwtauth.JWTAuth, token, audience string) (*Claims, error) {
	c, err := VerifyToken(jwtAuth, token)
	if err != nil {
		return nil, err
	}
	if c.Audience != audience {
		return nil, fmt.Errorf("unexpected token audience: %s", c.Audience)
	}
	return c, nil
}

// NewAdminToken creates a staff JWT with the username as subject.
func NewAdminToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, username string) (string, error) {
	return newToken(jwtAuth, map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
		"aud": AudienceAdmin,
		"sub": username,
	})
}

// NewSessionToken creates a customer JWT carrying the user id and email.
func NewSessionToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, userId, email string) (string, error) {
	return newToken(jwtAuth, map[string]interface{}{
		"exp":   time.Now().Add(ttl).Unix(),
		"aud":   AudienceSession,
		"sub":   userId,
		"email": email,
	})
}

func newToken(jwtAuth *jwtauth.JWTAuth, claims map[string]interface{}) (string, error) {
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}
