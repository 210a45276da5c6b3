package blogservice

import (
	"database/sql"
	"time"

	"github.com/ossilind/bloglist/internal/common"
)

// Owner is the projection of a user exposed alongside a blog. It
// deliberately carries nothing but the identifier: no username, no
// password hash, no blog list.
type Owner struct {
	ID int `json:"id"`
}

type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	User      Owner     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
