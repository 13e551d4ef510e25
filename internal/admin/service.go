// AngelaMos | 2026
// service.go

package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keyurm111/eloska-luxe-showcase/internal/auth"
	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

var ErrEmailExists = errors.New("admin email already exists")

// Service adapts the admin collection to the auth package and backs the
// createadmin command.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*auth.AdminInfo, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAdminInfo(a), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.AdminInfo, error) {
	a, err := s.repo.GetByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return toAdminInfo(a), nil
}

func (s *Service) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash, nil)
}

func (s *Service) ChangePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash, &at)
}

func (s *Service) RecordLogin(ctx context.Context, id string, at time.Time) error {
	return s.repo.RecordLogin(ctx, id, at)
}

type CreateInput struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=128"`
	Role     string `validate:"required,oneof=admin super_admin"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*auth.AdminInfo, error) {
	in.Email = core.NormalizeEmail(in.Email)
	if err := core.NewValidator().Struct(in); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	hash, err := core.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Admin{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return toAdminInfo(a), nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.repo.SetActive(ctx, id, false)
}

func toAdminInfo(a *Admin) *auth.AdminInfo {
	return &auth.AdminInfo{
		ID:                a.ID.Hex(),
		Name:              a.Name,
		Email:             a.Email,
		PasswordHash:      a.Password,
		Role:              a.Role,
		IsActive:          a.IsActive,
		LastLogin:         a.LastLogin,
		PasswordChangedAt: a.PasswordChangedAt,
	}
}
