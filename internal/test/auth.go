package test

import (
	"errors"

	pkgAuth "github.com/polkiloo/bakery/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(subject string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(subject)
	}
	return "token-" + subject, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if len(token) > len("token-") && token[:len("token-")] == "token-" {
		return token[len("token-"):], nil
	}
	return "", pkgAuth.ErrInvalidToken
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// OperatorAuthStub implements the middleware operator check.
type OperatorAuthStub struct {
	Disabled bool
	Subject  string
	Err      error
	ParseFn  func(string) (string, error)
}

// AuthEnabled reports whether tokens are required.
func (s OperatorAuthStub) AuthEnabled() bool {
	return !s.Disabled
}

// ParseToken either delegates to override or returns predefined result.
func (s OperatorAuthStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.Subject == "" {
		return "operator", nil
	}
	return s.Subject, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
