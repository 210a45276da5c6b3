package userservice

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// accessClaims is the decoded identity claim carried by an access
// token. UserID is the only field the rest of the system relies on.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// newAccessToken signs an access token for the given user with the
// service's shared secret.
func (s *UserService) newAccessToken(userID int) (string, error) {
	now := time.Now()

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// parseAccessToken verifies the signature and expiry of a token and
// returns the user ID it was issued for. Any failure collapses into
// ErrInvalidToken so callers cannot distinguish a forged token from an
// expired one.
func (s *UserService) parseAccessToken(token string) (int, error) {
	var claims accessClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}
