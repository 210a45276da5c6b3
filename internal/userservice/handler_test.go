package userservice

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/ossilind/bloglist/internal/common"
	"github.com/stretchr/testify/assert"
)

func testUser() User {
	return User{
		Username: "testuser",
		Email:    "testuser@example.com",
		Password: Password{
			Plain: "TestPassword123!",
		},
	}
}

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, func() error, error) {
	db := common.TestDB("file://../../migrations", t)

	connURL := common.TestRabbitMQ(t)
	mb, err := common.NewMessageBroker(connURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not create message broker: %w", err)
	}

	err = common.SetupUserExchange(mb)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not setup user exchange: %w", err)
	}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		return err
	}

	return NewUserService(db, mb, []byte("test-secret"), time.Hour), db, cleanup, nil
}

func TestCreateUser(t *testing.T) {
	s, db, cleanup, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		payload     User
		expectedErr error
	}{
		{
			name:        "valid user",
			payload:     testUser(),
			expectedErr: nil,
		},
		{
			name: "empty username",
			payload: User{
				Email:    testUser().Email,
				Password: testUser().Password,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"username": "must be provided"}},
		},
		{
			name: "empty email",
			payload: User{
				Username: testUser().Username,
				Password: testUser().Password,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"email": "must be provided"}},
		},
		{
			name: "empty password",
			payload: User{
				Username: testUser().Username,
				Email:    testUser().Email,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			u, err := s.CreateUser(ctx, tc.payload.Username, tc.payload.Email, tc.payload.Password.Plain)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, u.ID)

				var count int
				err = db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s, _, cleanup, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = s.CreateUser(ctx, testUser().Username, testUser().Email, testUser().Password.Plain)
	assert.NoError(t, err)

	_, err = s.CreateUser(ctx, testUser().Username, "other@example.com", testUser().Password.Plain)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestLoginUser(t *testing.T) {
	s, _, cleanup, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := s.CreateUser(ctx, testUser().Username, testUser().Email, testUser().Password.Plain)
	assert.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := s.LoginUser(ctx, testUser().Username, testUser().Password.Plain)
		assert.NoError(t, err)
		assert.NotNil(t, token)

		verified, err := s.VerifyAccessToken(ctx, *token)
		assert.NoError(t, err)
		assert.Equal(t, u.ID, verified.ID)
		assert.Equal(t, testUser().Username, verified.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.LoginUser(ctx, testUser().Username, "WrongPassword123!")
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := s.LoginUser(ctx, "nobody", testUser().Password.Plain)
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
	})

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

func TestVerifyAccessToken_DeletedUser(t *testing.T) {
	s, db, cleanup, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = s.CreateUser(ctx, testUser().Username, testUser().Email, testUser().Password.Plain)
	assert.NoError(t, err)

	token, err := s.LoginUser(ctx, testUser().Username, testUser().Password.Plain)
	assert.NoError(t, err)

	_, err = db.Exec("DELETE FROM users")
	assert.NoError(t, err)

	_, err = s.VerifyAccessToken(ctx, *token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}
