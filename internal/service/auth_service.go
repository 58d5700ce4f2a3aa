package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/repository"
	"github.com/iliyamo/movienight/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupInput is the body of a signup request.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// TokenUser is the identity carried by a valid access token.
type TokenUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// AuthService registers users and issues and verifies access tokens.
type AuthService struct {
	Users      *repository.UserRepo
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
	Now        func() time.Time
}

func NewAuthService(users *repository.UserRepo, secret string, ttl time.Duration, bcryptCost int) *AuthService {
	return &AuthService{Users: users, Secret: secret, TokenTTL: ttl, BcryptCost: bcryptCost, Now: utcNow}
}

// Signup creates a user.  Duplicate usernames and emails are rejected by a
// lookup first and by the unique keys if two signups race.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (model.UserPublic, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return model.UserPublic{}, invalidf("Missing fields")
	}
	if !emailPattern.MatchString(email) {
		return model.UserPublic{}, invalidf("Invalid email format")
	}

	taken, err := s.Users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return model.UserPublic{}, err
	}
	if taken {
		return model.UserPublic{}, ErrUserExists
	}

	hash, err := utils.HashPassword(in.Password, s.BcryptCost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return model.UserPublic{}, invalidf("Password is too long")
	}
	if err != nil {
		return model.UserPublic{}, err
	}
	u := model.User{Username: username, Email: email, PasswordHash: hash, CreatedAt: s.Now()}
	if err := s.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.UserPublic{}, ErrUserExists
		}
		return model.UserPublic{}, err
	}
	return u.Public(), nil
}

// Login checks credentials and issues an access token.  Unknown users and
// wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (utils.AccessToken, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return utils.AccessToken{}, invalidf("Missing fields")
	}

	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BurnVerify(password, s.BcryptCost)
			return utils.AccessToken{}, ErrInvalidCredentials
		}
		return utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return utils.AccessToken{}, ErrInvalidCredentials
	}
	return utils.NewAccessToken(s.Secret, u.ID, u.Username, s.TokenTTL, s.Now())
}

// ValidateToken returns the identity inside raw.
func (s *AuthService) ValidateToken(raw string) (TokenUser, error) {
	if strings.TrimSpace(raw) == "" {
		return TokenUser{}, ErrMissingToken
	}
	claims, err := utils.ParseAccessToken(s.Secret, raw)
	if err != nil {
		return TokenUser{}, ErrInvalidToken
	}
	return TokenUser{ID: claims.UserID, Username: claims.Username}, nil
}

// ListUsers returns every user, newest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.UserPublic, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.UserPublic, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
