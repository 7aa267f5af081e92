package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

const defaultBcryptCost = 10

// AuthService implements registration, login and existence checks.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	cost   int
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = defaultBcryptCost
	}
	return &AuthService{repo: repo, tokens: tokens, cost: bcryptCost, log: log}
}

// passwordDigest is what bcrypt actually hashes. bcrypt stops at 72 bytes, and
// a 50 character password in a multi-byte script exceeds that, so the password
// is first reduced to a fixed 44 byte SHA-256 digest.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Validate runs the format rules and, only for fields that passed them, the
// uniqueness lookups. It never writes.
func (s *AuthService) Validate(ctx context.Context, u domain.NormalizedUser) ([]string, error) {
	res := domain.CheckFormat(u)
	msgs := res.Errors

	if res.UsernameOK {
		taken, err := s.exists(ctx, s.repo.FindByUsername, u.Username)
		if err != nil {
			return nil, fmt.Errorf("validate username: %w", err)
		}
		if taken {
			msgs = append(msgs, domain.MsgUsernameTaken)
		}
	}

	if res.EmailOK {
		taken, err := s.exists(ctx, s.repo.FindByEmail, u.Email)
		if err != nil {
			return nil, fmt.Errorf("validate email: %w", err)
		}
		if taken {
			msgs = append(msgs, domain.MsgEmailTaken)
		}
	}

	return msgs, nil
}

// Register validates raw input and inserts the user with a bcrypt hash.
// Validation failures are returned as *domain.ValidationErrors.
func (s *AuthService) Register(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
	u := domain.CleanUp(raw)

	msgs, err := s.Validate(ctx, u)
	if err != nil {
		return nil, err
	}
	if verr := domain.NewValidationErrors(msgs...); verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(u.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// Lost the race against a concurrent registration; the unique index caught it.
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return nil, domain.NewValidationErrors(domain.MsgUsernameTaken)
		case errors.Is(err, domain.ErrEmailExists):
			return nil, domain.NewValidationErrors(domain.MsgEmailTaken)
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return &domain.AuthenticatedUser{User: *created, Gravatar: domain.Gravatar(created.Email)}, nil
}

// Authenticate checks credentials. It returns domain.ErrInvalidCredentials for
// an unknown username or a hash mismatch, and domain.ErrLoginUnavailable when
// the lookup itself fails.
func (s *AuthService) Authenticate(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
	u := domain.CleanUp(raw)

	user, err := s.repo.FindByUsername(ctx, u.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("login lookup failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrLoginUnavailable, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordDigest(u.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.AuthenticatedUser{User: *user, Gravatar: domain.Gravatar(user.Email)}, nil
}

// Login is the session flavour of Authenticate.
func (s *AuthService) Login(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error) {
	au, err := s.Authenticate(ctx, raw)
	if err != nil {
		s.log.Info().Msg("login rejected")
		return nil, err
	}
	s.log.Info().Str("user_id", au.User.ID).Msg("login succeeded")
	return au, nil
}

// APILogin is the token flavour of Authenticate.
func (s *AuthService) APILogin(ctx context.Context, raw map[string]any) (string, error) {
	au, err := s.Authenticate(ctx, raw)
	if err != nil {
		return "", err
	}
	token, err := s.tokens.Issue(au.User.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// FindByUsername resolves the public view of a user. Non-string input fails
// fast with domain.ErrUserNotFound.
func (s *AuthService) FindByUsername(ctx context.Context, username any) (*domain.PublicUser, error) {
	name, ok := username.(string)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.repo.FindByUsername(ctx, name)
	if err != nil {
		return nil, err
	}
	return &domain.PublicUser{
		ID:       user.ID,
		Username: user.Username,
		Gravatar: domain.Gravatar(user.Email),
	}, nil
}

func (s *AuthService) DoesUsernameExist(ctx context.Context, username any) (bool, error) {
	name, ok := username.(string)
	if !ok {
		return false, nil
	}
	return s.exists(ctx, s.repo.FindByUsername, name)
}

// DoesEmailExist resolves false for non-string input.
func (s *AuthService) DoesEmailExist(ctx context.Context, email any) (bool, error) {
	addr, ok := email.(string)
	if !ok {
		return false, nil
	}
	return s.exists(ctx, s.repo.FindByEmail, addr)
}

func (s *AuthService) exists(ctx context.Context, find func(context.Context, string) (*domain.User, error), key string) (bool, error) {
	_, err := find(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}
