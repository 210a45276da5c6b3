package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ossilind/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

// NewUserService wires the user store to the message broker and the
// credential verifier. The signing secret is injected here at startup
// so nothing in the package reaches for a global.
func NewUserService(db *sql.DB, mb common.MessageProducer, secret []byte, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = AccessTokenTime
	}

	return &UserService{
		m:        newUserModel(db),
		mb:       mb,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// CreateUser creates a new user account and publishes a user.created
// event for the welcome email consumer.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
		Password: Password{Plain: password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email    string
		Username string
	}{
		Email:    u.Email,
		Username: u.Username,
	}

	emailData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, emailData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and issues a signed access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*string, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := s.newAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// VerifyAccessToken decodes and verifies a bearer token against the
// shared secret, then resolves the identity claim to a stored user. A
// token that verifies but references a deleted user fails the same way
// as a bad token.
func (s *UserService) VerifyAccessToken(ctx context.Context, token string) (*User, error) {
	userID, err := s.parseAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.m.getUserByID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	return user, nil
}

// GetUserByID returns a stored user by its identifier.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByID(ctx, id)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
