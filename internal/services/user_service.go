package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-tracker-api/internal/auth"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserData    = errors.New("username and a password of at most 72 bytes are required")
)

// UserService handles registration, authentication and archival of users.
type UserService struct {
	userRepo   repository.UserRepository
	hasher     auth.Hasher
	tokens     *auth.TokenService
	revocation auth.RevocationStore
	log        logrus.FieldLogger
}

// NewUserService creates a new UserService. revocation may be nil, in which
// case tokens issued before an archival stay valid until they expire.
func NewUserService(
	userRepo repository.UserRepository,
	hasher auth.Hasher,
	tokens *auth.TokenService,
	revocation auth.RevocationStore,
	log logrus.FieldLogger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		hasher:     hasher,
		tokens:     tokens,
		revocation: revocation,
		log:        log,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// Register creates a user and returns a token for it.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" || len(input.Password) > auth.MaxPasswordBytes {
		return "", ErrInvalidUserData
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = constants.RoleUser
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Authenticate verifies credentials and returns a fresh token. Unknown users,
// archived users and wrong passwords all yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if user.Archived || !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.issue(user)
}

// Archive marks the user as archived and revokes its outstanding tokens.
func (s *UserService) Archive(ctx context.Context, id uint64) error {
	if err := s.userRepo.Archive(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to archive user: %w", err)
	}

	if s.revocation != nil {
		// The user stays archived even when revocation fails.
		if err := s.revocation.RevokeUser(ctx, id); err != nil {
			s.log.WithError(err).WithField("user_id", id).Warn("Failed to revoke tokens of archived user")
		}
	}

	return nil
}

func (s *UserService) issue(user *models.User) (string, error) {
	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
