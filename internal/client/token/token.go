// Package token decodes the payload segment of the signed access token
// issued by the grading service. The client holds no signing secret, so the
// token is parsed without signature verification; the server remains the
// authority on its validity. What the client needs from the payload is the
// role claim, which gates navigation.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aipapergrader/papergrader/internal/client/models"
)

var ErrMissingRoleClaim = errors.New("token missing role claim")

// Claims is the token payload shape the client cares about.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// DecodePayload parses the token's payload segment into Claims. A token that
// is not three base64url segments, or whose payload is not valid JSON, yields
// a decode error.
func DecodePayload(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}
	return claims, nil
}

// Role extracts and validates the role claim. A structurally valid token
// without a role claim fails with ErrMissingRoleClaim; an unrecognized role
// value fails with models.ErrUnknownRole.
func Role(tokenString string) (models.Role, error) {
	claims, err := DecodePayload(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Role == "" {
		return "", ErrMissingRoleClaim
	}
	return models.ParseRole(claims.Role)
}
