package auth

import (
	"errors"

	autherrors "github.com/apper-canvas/staffsync-program-correct/internal/auth/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier turns the auth provider's signed token into a user.
type TokenVerifier interface {
	Verify(token string) (session.User, error)
}

type hmacVerifier struct {
	secret []byte
}

// NewHMACVerifier verifies HS256 tokens signed with secret.
func NewHMACVerifier(secret string) TokenVerifier {
	return &hmacVerifier{secret: []byte(secret)}
}

var registeredClaims = []string{"exp", "iat", "nbf", "iss", "aud", "jti"}

func (v *hmacVerifier) Verify(tokenString string) (session.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}

	// Providers either nest the user object under "user" or put its fields
	// at the top level next to the registered claims.
	if nested, ok := claims["user"].(map[string]any); ok {
		if len(nested) == 0 {
			return nil, autherrors.ErrMissingUser
		}
		return session.User(nested), nil
	}

	user := session.User{}
	for k, val := range claims {
		user[k] = val
	}
	for _, k := range registeredClaims {
		delete(user, k)
	}
	if len(user) == 0 {
		return nil, autherrors.ErrMissingUser
	}
	return user, nil
}
