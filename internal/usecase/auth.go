package usecase

import (
	"context"

	"github.com/polkiloo/bakery/internal/config"
	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	pkgAuth "github.com/polkiloo/bakery/internal/pkg/auth"
)

// OperatorSubject is the token subject issued to the shop operator.
const OperatorSubject = "operator"

// AuthUseCase guards operator routes with a single configured password.
type AuthUseCase struct {
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(cfg *config.Config, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{passwordHash: cfg.AdminPasswordHash, hasher: hasher, tokens: strategy}
}

// Enabled reports whether operator routes require a token.
func (u *AuthUseCase) Enabled() bool {
	return u.passwordHash != ""
}

// Login checks the operator password and returns a session token.
func (u *AuthUseCase) Login(_ context.Context, password string) (string, error) {
	if !u.Enabled() {
		return "", domainErrors.ErrAuthDisabled
	}
	if password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(OperatorSubject)
}

// ParseToken validates an operator token and returns its subject.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil {
		return "", err
	}
	if subject != OperatorSubject {
		return "", pkgAuth.ErrInvalidToken
	}
	return subject, nil
}
