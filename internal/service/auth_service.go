package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"

	"github.com/rs/zerolog"
)

// StaticCredentialAuthenticator is a placeholder ports.Authenticator that
// checks one plaintext username/password pair. Replace it with a real
// identity provider; nothing else depends on how credentials are checked.
type StaticCredentialAuthenticator struct {
	docs     ports.DocumentTransactor
	fallback domain.AdminCredentials
}

// NewStaticCredentialAuthenticator uses the document's adminCredentials,
// or fallback when the document has none.
func NewStaticCredentialAuthenticator(docs ports.DocumentTransactor, fallback domain.AdminCredentials) *StaticCredentialAuthenticator {
	return &StaticCredentialAuthenticator{docs: docs, fallback: fallback}
}

// Authenticate returns an admin principal for matching credentials.
func (a *StaticCredentialAuthenticator) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	doc, err := a.docs.View(ctx)
	if err != nil {
		return nil, err
	}

	creds := doc.AdminCredentials
	if creds.IsZero() {
		creds = a.fallback
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
	if !userOK || !passOK || creds.Username == "" {
		return nil, apperror.ErrInvalidCredentials()
	}

	return &domain.Principal{Username: creds.Username, IsAdmin: true}, nil
}

// EnsureCredentials writes the fallback pair into the document if it has none.
func (a *StaticCredentialAuthenticator) EnsureCredentials(ctx context.Context) error {
	return a.docs.Update(ctx, func(doc *domain.Document) error {
		if doc.AdminCredentials.IsZero() {
			doc.AdminCredentials = a.fallback
		}
		return nil
	})
}

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	authn    ports.Authenticator
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(authn ports.Authenticator, tokenSvc ports.TokenService, log zerolog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		authn:    authn,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Login checks credentials and issues a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	principal, err := s.authn.Authenticate(ctx, username, password)
	if err != nil {
		s.log.Warn().Str("username", username).Msg("admin login rejected")
		return nil, err
	}

	token, expiresAt, err := s.tokenSvc.Generate(*principal)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Str("username", principal.Username).Msg("admin logged in")

	return &ports.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Principal: *principal,
	}, nil
}
