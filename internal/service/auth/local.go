package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/store"
)

// Bootstrap admin credentials. The first successful login with them creates
// the admin account.
const (
	AdminEmail             = "admin@example.com"
	AdminDisplayName       = "Admin User"
	adminBootstrapPassword = "admin123"
)

// LocalOptions configures a LocalStrategy.
type LocalOptions struct {
	Signer      *TokenSigner
	Revocations RevocationStore
	Hasher      PasswordHasher
	// BootstrapAdmin enables creation of the admin account on first login.
	BootstrapAdmin bool
}

// LocalStrategy authenticates users by email and password against the user
// store and issues HS256 access tokens.
type LocalStrategy struct {
	users          store.UserStore
	signer         *TokenSigner
	revocations    RevocationStore
	hasher         PasswordHasher
	bootstrapAdmin bool
	logger         *slog.Logger
}

var _ Strategy = (*LocalStrategy)(nil)

// NewLocalStrategy creates a LocalStrategy. Revocations default to an
// in-memory store and the hasher to bcrypt.
func NewLocalStrategy(users store.UserStore, opts LocalOptions, logger *slog.Logger) (*LocalStrategy, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if opts.Signer == nil {
		return nil, errors.New("token signer cannot be nil")
	}
	if opts.Revocations == nil {
		opts.Revocations = NewMemoryRevocationStore()
	}
	if opts.Hasher == nil {
		opts.Hasher = NewBcryptHasher(DefaultBcryptCost)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LocalStrategy{
		users:          users,
		signer:         opts.Signer,
		revocations:    opts.Revocations,
		hasher:         opts.Hasher,
		bootstrapAdmin: opts.BootstrapAdmin,
		logger:         logger.With(slog.String("component", "local_auth")),
	}, nil
}

// Name implements Strategy.
func (s *LocalStrategy) Name() Provider {
	return ProviderLocal
}

// Authenticate implements Strategy.
func (s *LocalStrategy) Authenticate(ctx context.Context, creds Credentials) (Principal, error) {
	email := strings.TrimSpace(creds.Email)

	if s.bootstrapAdmin && email == AdminEmail && creds.Password == adminBootstrapPassword {
		admin, created, err := s.ensureAdmin(ctx)
		if err != nil {
			return Principal{}, err
		}
		if created {
			return principalFor(admin), nil
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" {
		return Principal{}, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, creds.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if user.Status == domain.UserStatusDisabled {
		return Principal{}, ErrInvalidCredentials
	}

	return principalFor(user), nil
}

// ensureAdmin creates the admin account if it does not exist yet. created is
// false when the account was already present.
func (s *LocalStrategy) ensureAdmin(ctx context.Context) (domain.User, bool, error) {
	_, err := s.users.FindByEmail(ctx, AdminEmail)
	if err == nil {
		return domain.User{}, false, nil
	}
	if !store.IsNotFoundError(err) {
		return domain.User{}, false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := s.hasher.Hash(adminBootstrapPassword)
	if err != nil {
		return domain.User{}, false, err
	}
	admin, err := domain.NewUser(AdminEmail, AdminDisplayName)
	if err != nil {
		return domain.User{}, false, err
	}
	admin = admin.WithStatus(domain.UserStatusActive).WithPasswordHash(hash)

	saved, err := s.users.Save(ctx, admin)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.InfoContext(ctx, "bootstrap admin account created", slog.String("user_id", saved.ID.String()))
	return saved, true, nil
}

// ValidateToken implements Strategy.
func (s *LocalStrategy) ValidateToken(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrMissingToken
	}

	revoked, err := s.revocations.IsRevoked(ctx, token)
	if err != nil {
		return Principal{}, err
	}
	if revoked {
		return Principal{}, ErrRevokedToken
	}

	claims, err := s.signer.Parse(token)
	if err != nil {
		return Principal{}, err
	}
	return claims.Principal(), nil
}

// GenerateTokens implements Strategy.
func (s *LocalStrategy) GenerateTokens(_ context.Context, p Principal) (Token, error) {
	signed, _, err := s.signer.Sign(p)
	if err != nil {
		return Token{}, err
	}
	return Token{
		AccessToken: signed,
		ExpiresIn:   int(s.signer.Lifetime().Seconds()),
	}, nil
}

// RevokeToken implements Strategy. Revoking an already expired token is a
// no-op.
func (s *LocalStrategy) RevokeToken(ctx context.Context, token string) error {
	claims, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil
		}
		return err
	}
	return s.revocations.Revoke(ctx, token, claims.ExpiresAt.Time)
}

// RolesFor returns the roles granted to the account with the given email.
func RolesFor(email string) []string {
	if email == AdminEmail {
		return []string{RoleAdmin, RoleUser}
	}
	return []string{RoleUser}
}

func principalFor(u domain.User) Principal {
	return Principal{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Roles:       RolesFor(u.Email),
	}
}
