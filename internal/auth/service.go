// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/middleware"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminInfo struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              string
	IsActive          bool
	LastLogin         *time.Time
	PasswordChangedAt *time.Time
}

type AdminProvider interface {
	GetByEmail(ctx context.Context, email string) (*AdminInfo, error)
	GetByID(ctx context.Context, id string) (*AdminInfo, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	ChangePassword(ctx context.Context, id, passwordHash string, at time.Time) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

type Service struct {
	jwt    *JWTManager
	admins AdminProvider
	redis  *redis.Client
	logger *slog.Logger
}

// NewService accepts a nil redis client; logout then only discards the
// token client side and it stays valid until it expires.
func NewService(
	jwt *JWTManager,
	admins AdminProvider,
	redisClient *redis.Client,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		jwt:    jwt,
		admins: admins,
		redis:  redisClient,
		logger: logger,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.admins.GetByEmail(ctx, core.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(req.Password, &admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !admin.IsActive {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.admins.UpdatePassword(ctx, admin.ID, newHash); err != nil {
			s.logger.Warn("password rehash failed", "admin_id", admin.ID, "error", err)
		}
	}

	now := time.Now().UTC()
	if err := s.admins.RecordLogin(ctx, admin.ID, now); err != nil {
		s.logger.Warn("record login failed", "admin_id", admin.ID, "error", err)
	}
	admin.LastLogin = &now

	issued, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		AdminID: admin.ID,
		Role:    admin.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		Admin:     ToAdminResponse(admin),
	}, nil
}

// VerifyAccessToken backs the auth gate. Beyond the signature it checks
// the revocation list and re-reads the admin so a deactivated account or
// a password change locks out tokens already issued.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	verified, err := s.jwt.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.isRevoked(ctx, verified.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, core.ErrTokenRevoked
	}

	admin, err := s.admins.GetByID(ctx, verified.AdminID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrTokenInvalid
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}

	if !admin.IsActive {
		return nil, core.ErrInactiveAdmin
	}

	// iat has second precision, so a token minted in the same second as
	// the change is still accepted.
	if admin.PasswordChangedAt != nil &&
		verified.IssuedAt.Before(admin.PasswordChangedAt.Truncate(time.Second)) {
		return nil, core.ErrTokenRevoked
	}

	return &middleware.AccessTokenClaims{
		AdminID:   admin.ID,
		Role:      admin.Role,
		TokenID:   verified.ID,
		ExpiresAt: verified.ExpiresAt,
	}, nil
}

const blacklistPrefix = "auth:blacklist:"

func (s *Service) isRevoked(ctx context.Context, jti string) (bool, error) {
	if s.redis == nil {
		return false, nil
	}

	n, err := s.redis.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return n > 0, nil
}

// Logout revokes the presented token until it would have expired.
func (s *Service) Logout(ctx context.Context, claims *middleware.AccessTokenClaims) error {
	if s.redis == nil || claims == nil || claims.TokenID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, blacklistPrefix+claims.TokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// ChangePassword stores the new hash and returns a fresh token; every
// token issued before the change stops verifying.
func (s *Service) ChangePassword(
	ctx context.Context,
	adminID string,
	req ChangePasswordRequest,
) (*LoginResponse, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}

	valid, err := core.VerifyPassword(req.CurrentPassword, admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	changedAt := time.Now().UTC().Truncate(time.Second)
	if err := s.admins.ChangePassword(ctx, adminID, newHash, changedAt); err != nil {
		return nil, fmt.Errorf("change password: %w", err)
	}

	issued, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		AdminID: admin.ID,
		Role:    admin.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		Admin:     ToAdminResponse(admin),
	}, nil
}

func (s *Service) CurrentAdmin(ctx context.Context, adminID string) (*AdminResponse, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	resp := ToAdminResponse(admin)
	return &resp, nil
}
