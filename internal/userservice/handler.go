package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/mayleng/inkpost/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, jwtSecret string) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		tokens: NewTokenManager(jwtSecret),
	}
}

// RegisterUser creates a new user account and publishes a user.registered
// event for the welcome mail worker.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		ID:       uuid.New(),
		Name:     name,
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
		Name  string
		Email string
	}{
		Name:  u.Name,
		Email: u.Email,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, eventData, common.UserRegisteredKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and issues a signed bearer token. A
// missing account and a wrong password are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	match, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrAuthenticationFailure
	}

	return s.tokens.New(user.ID, AccessTokenTime)
}

// GetUserByAccessToken resolves a bearer token to the user it was issued
// for. Verified lookups sit behind a short-lived cache so repeated requests
// from the same caller skip the database.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	key := common.CacheKeyUserByID(userID.String())
	if cached, ok := s.c.Get(key); ok {
		if user, ok := cached.(*User); ok {
			return user, nil
		}
	}

	user, err := s.m.getUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, user, userCacheTime)

	return user, nil
}
