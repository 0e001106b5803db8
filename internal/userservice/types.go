package userservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mayleng/inkpost/internal/common"
)

const (
	AccessTokenTime time.Duration = 24 * time.Hour

	userCacheTime time.Duration = 5 * time.Minute
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	c      *common.Cache
	tokens *TokenManager
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsAnonymous() bool {
	return u.ID == uuid.Nil
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthToken is the signed bearer token handed to a logged-in user.
type AuthToken struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}
