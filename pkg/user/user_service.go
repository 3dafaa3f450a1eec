package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/paydivvy/paydivvy/internal/auth"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmailExists        = errors.New("this email is already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service interface {
	SignUp(ctx context.Context, email, password string) (User, string, error)
	SignIn(ctx context.Context, email, password string) (User, string, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetOrCreateGoogleUser(ctx context.Context, googleId, email, displayName string) (User, string, error)
}

type ServiceImpl struct {
	repo   Repo
	tokens *auth.TokenManager
}

func NewUserService(repo Repo, tokens *auth.TokenManager) *ServiceImpl {
	return &ServiceImpl{repo: repo, tokens: tokens}
}

// SignUp creates a password account and returns the user with a session token.
func (s *ServiceImpl) SignUp(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !looksLikeEmail(email) {
		return User{}, "", ErrInvalidEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, "", err
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return User{}, "", ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, "", fmt.Errorf("failed to check email availability: %w", err)
	}

	user := User{
		Uid:          uuid.NewString(),
		Email:        email,
		DisplayName:  email[:strings.Index(email, "@")],
		Provider:     PasswordProvider,
		PasswordHash: hash,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, "", fmt.Errorf("failed to create user: %w", err)
	}
	user.Id = id

	token, err := s.tokens.Generate(user.Uid, user.Email)
	if err != nil {
		return User{}, "", err
	}
	log.Infof("new account registered: %s", user.Uid)
	return user, token, nil
}

func (s *ServiceImpl) SignIn(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, "", ErrInvalidCredentials
	} else if err != nil {
		return User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, password) {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Uid, user.Email)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

// GetOrCreateGoogleUser provisions a local account on first Google sign-in
// and returns a session token either way.
func (s *ServiceImpl) GetOrCreateGoogleUser(ctx context.Context, googleId, email, displayName string) (User, string, error) {
	user, err := s.repo.GetUserByGoogleId(ctx, googleId)
	if errors.Is(err, ErrUserNotFound) {
		user = User{
			Uid:         uuid.NewString(),
			Email:       strings.ToLower(email),
			DisplayName: displayName,
			Provider:    GoogleProvider,
			GoogleId:    googleId,
		}
		id, createErr := s.repo.CreateUser(ctx, user)
		if createErr != nil {
			return User{}, "", fmt.Errorf("failed to provision google user: %w", createErr)
		}
		user.Id = id
		log.Infof("provisioned account %s from google sign-in", user.Uid)
	} else if err != nil {
		return User{}, "", fmt.Errorf("failed to look up google user: %w", err)
	}

	token, err := s.tokens.Generate(user.Uid, user.Email)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func looksLikeEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
