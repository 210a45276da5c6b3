package userservice

import (
	"database/sql"
	"time"

	"github.com/ossilind/bloglist/internal/common"
)

const (
	// AccessTokenTime is the default lifetime of an access token when
	// the configuration does not provide one.
	AccessTokenTime time.Duration = 7 * 24 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m        *DBModel
	mb       common.MessageProducer
	secret   []byte
	tokenTTL time.Duration
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}
