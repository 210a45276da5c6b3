package userservice

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func testTokenService(secret string, ttl time.Duration) *UserService {
	return &UserService{secret: []byte(secret), tokenTTL: ttl}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	token, err := s.newAccessToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := s.parseAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	token, err := s.newAccessToken(42)
	assert.NoError(t, err)

	other := testTokenService("another-secret", time.Hour)
	_, err = other.parseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_Expired(t *testing.T) {
	s := testTokenService("test-secret", -time.Minute)

	token, err := s.newAccessToken(42)
	assert.NoError(t, err)

	_, err = s.parseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_Malformed(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.parseAccessToken(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseAccessToken_UnsignedAlgRejected(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(42),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 42,
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = s.parseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_MissingUserID(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = s.parseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
