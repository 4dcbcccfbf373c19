package service

import (
	"context"
	"strings"
	"time"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserServiceImpl implements ports.UserService.
type UserServiceImpl struct {
	docs ports.DocumentTransactor
	log  zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(docs ports.DocumentTransactor, log zerolog.Logger) *UserServiceImpl {
	return &UserServiceImpl{docs: docs, log: log}
}

// Create adds a user with an empty wallet. Emails are unique.
func (s *UserServiceImpl) Create(ctx context.Context, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, apperror.Validation("name and email are required")
	}

	user := domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	err := s.docs.Update(ctx, func(doc *domain.Document) error {
		if doc.FindUserByEmail(email) != nil {
			return apperror.ErrConflict("email already registered")
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user created")
	return &user, nil
}

// List returns all users in creation order.
func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// Get returns one user.
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}
	user := doc.FindUser(id)
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	out := *user
	return &out, nil
}
