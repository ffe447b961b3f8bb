package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"unicode/utf8"

	"charsheet-restful/auth"
	"charsheet-restful/models"
	"charsheet-restful/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// MinPasswordLength is counted in characters, not bytes.
	MinPasswordLength = 8
	// MaxNameLength bounds usernames and nicknames, in characters. It
	// matches the width of the users columns.
	MaxNameLength = 64
)

// AuthService registers users, logs them in and resolves access tokens.
type AuthService interface {
	Register(ctx context.Context, input *RegisterInput) (*UserView, error)
	Login(ctx context.Context, input *LoginInput) (*UserView, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	repo     repositories.UserRepository
	hasher   auth.PasswordHasher
	newToken func() (string, error)

	// dummyHash is compared against when the username is unknown so that
	// both login failures cost one hash comparison.
	dummyOnce sync.Once
	dummyHash string
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates a new AuthService instance
func NewAuthService(repo repositories.UserRepository, hasher auth.PasswordHasher) AuthService {
	return &authService{
		repo:     repo,
		hasher:   hasher,
		newToken: auth.NewAccessToken,
	}
}

// Register creates a user. Uniqueness of username and nickname is decided by
// the store at insert time, so concurrent registrations cannot both succeed.
func (s *authService) Register(ctx context.Context, input *RegisterInput) (*UserView, error) {
	if input.Username == "" || input.Password == "" || input.Nickname == "" {
		return nil, newError("auth", KindValidation, MsgRegisterFieldsRequired)
	}
	if utf8.RuneCountInString(input.Username) > MaxNameLength || utf8.RuneCountInString(input.Nickname) > MaxNameLength {
		return nil, newError("auth", KindValidation, MsgNameTooLong)
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return nil, newError("auth", KindValidation, MsgPasswordTooShort)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, newError("auth", KindValidation, MsgPasswordTooLong)
		}
		return nil, internalError("auth", err, "hash password")
	}

	token, err := s.newToken()
	if err != nil {
		return nil, internalError("auth", err, "generate access token")
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Nickname:     input.Nickname,
		AccessToken:  token,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError("auth", KindConflict, MsgCredentialsTaken)
		}
		return nil, internalError("auth", err, "create user %q", input.Username)
	}

	return &UserView{
		ID:          user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		AccessToken: user.AccessToken,
	}, nil
}

// Login checks a username/password pair. Unknown users and wrong passwords
// produce the same error.
func (s *authService) Login(ctx context.Context, input *LoginInput) (*UserView, error) {
	if input.Username == "" || input.Password == "" {
		return nil, newError("auth", KindValidation, MsgLoginFieldsRequired)
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Compare(s.dummy(), input.Password)
			return nil, newError("auth", KindAuth, MsgCredentialsMismatch)
		}
		return nil, internalError("auth", err, "find user %q", input.Username)
	}

	// Collations such as MySQL's *_ci match "ALICE" to "alice".
	if user.Username != input.Username {
		s.hasher.Compare(s.dummy(), input.Password)
		return nil, newError("auth", KindAuth, MsgCredentialsMismatch)
	}
	if !s.hasher.Compare(user.PasswordHash, input.Password) {
		return nil, newError("auth", KindAuth, MsgCredentialsMismatch)
	}

	return &UserView{
		ID:          user.ID,
		Nickname:    user.Nickname,
		AccessToken: user.AccessToken,
	}, nil
}

// Authenticate returns the user owning token.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, newError("auth", KindAuth, MsgPleaseLogIn)
	}

	user, err := s.repo.FindByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError("auth", KindAuth, MsgPleaseLogIn)
		}
		return nil, internalError("auth", err, "find user by access token")
	}
	// The lookup may be case-insensitive depending on the column collation.
	if subtle.ConstantTimeCompare([]byte(user.AccessToken), []byte(token)) != 1 {
		return nil, newError("auth", KindAuth, MsgPleaseLogIn)
	}
	return user, nil
}

func (s *authService) dummy() string {
	s.dummyOnce.Do(func() {
		// Hash only fails for passwords over 72 bytes.
		s.dummyHash, _ = s.hasher.Hash("charsheet-dummy-password")
	})
	return s.dummyHash
}
