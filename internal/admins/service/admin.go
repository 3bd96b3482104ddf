package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	adminerrors "estatehub/internal/admins/errors"
	"estatehub/internal/admins/repository"
	"estatehub/internal/admins/validator"
	"estatehub/pkg/auth"
	"estatehub/pkg/config"
	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/model"
	"estatehub/pkg/notification"
	"estatehub/pkg/sanitizer"
	"estatehub/pkg/validation"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidOTP         = "Invalid or expired OTP"
	msgOTPNotRequested    = "OTP not requested"
)

type TokenIssuer interface {
	Issue(adminID, email, role string) (string, time.Time, error)
}

type AdminService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	// RequestResetOTP never reveals whether the address belongs to an admin.
	RequestResetOTP(ctx context.Context, req *model.ResetOTPRequest) error
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error
	Me(ctx context.Context, id string) (*model.Admin, error)
	Seed(ctx context.Context, seeds []config.AdminSeed) error
}

type adminService struct {
	repo      repository.AdminRepository
	validator *validator.AdminValidator
	notifier  notification.Notifier
	tokens    TokenIssuer
	cfg       *config.Config
	now       func() time.Time
}

func NewAdminService(
	repo repository.AdminRepository,
	validator *validator.AdminValidator,
	notifier notification.Notifier,
	tokens TokenIssuer,
	cfg *config.Config,
) AdminService {
	return &adminService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		tokens:    tokens,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *adminService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	req.Sanitize()
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, validation.AsAppError(err)
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, adminerrors.ErrNotFound) {
			s.cfg.Log.Warn("Login attempt for unknown admin")
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		s.cfg.Log.Error("Failed to look up admin", "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if !auth.CheckHash(admin.PasswordHash, req.Password) {
		s.cfg.Log.Warn("Login attempt with wrong password", "admin_id", admin.ID)
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(admin.ID, admin.Email, roleOf(admin))
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "admin_id", admin.ID, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("Admin logged in", "admin_id", admin.ID)
	return &model.LoginResponse{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

func (s *adminService) RequestResetOTP(ctx context.Context, req *model.ResetOTPRequest) error {
	req.Sanitize()
	if err := s.validator.ValidateResetOTP(req); err != nil {
		return validation.AsAppError(err)
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, adminerrors.ErrNotFound) {
			s.cfg.Log.Warn("Reset code requested for unknown admin")
			return nil
		}
		s.cfg.Log.Error("Failed to look up admin", "error", err)
		return apperrors.Internal("Failed to request reset code", err)
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return apperrors.Internal("Failed to generate reset code", err)
	}
	otpHash, err := auth.HashOTP(otp)
	if err != nil {
		return apperrors.Internal("Failed to generate reset code", err)
	}

	expiresAt := s.now().UTC().Add(s.cfg.AdminOTPTTL)
	if err := s.repo.SetResetOTP(ctx, admin.ID, otpHash, expiresAt); err != nil {
		s.cfg.Log.Error("Failed to store reset code", "admin_id", admin.ID, "error", err)
		return apperrors.Internal("Failed to request reset code", err)
	}

	s.notifier.Notify(ctx, notification.FormAdminOTP, map[string]string{
		"email":      admin.Email,
		"name":       admin.Name,
		"otp":        otp,
		"expires_in": humanDuration(s.cfg.AdminOTPTTL),
	})

	s.cfg.Log.Info("Reset code issued", "admin_id", admin.ID)
	return nil
}

func (s *adminService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	req.Sanitize()
	if err := s.validator.ValidateResetPassword(req); err != nil {
		return validation.AsAppError(err)
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, adminerrors.ErrNotFound) {
			return apperrors.InvalidInput(msgInvalidOTP)
		}
		s.cfg.Log.Error("Failed to look up admin", "error", err)
		return apperrors.Internal("Failed to reset password", err)
	}

	if admin.ResetOTPHash == "" || admin.ResetOTPExpiresAt == nil {
		return apperrors.InvalidInput(msgOTPNotRequested)
	}
	if !s.now().Before(*admin.ResetOTPExpiresAt) || !auth.CheckHash(admin.ResetOTPHash, req.OTP) {
		s.cfg.Log.Warn("Rejected reset code", "admin_id", admin.ID)
		return apperrors.InvalidInput(msgInvalidOTP)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return apperrors.InvalidInput(err.Error())
		}
		return apperrors.Internal("Failed to reset password", err)
	}

	if err := s.repo.SetPassword(ctx, admin.ID, hash); err != nil {
		s.cfg.Log.Error("Failed to store new password", "admin_id", admin.ID, "error", err)
		return apperrors.Internal("Failed to reset password", err)
	}

	s.cfg.Log.Info("Admin password reset", "admin_id", admin.ID)
	return nil
}

func (s *adminService) Me(ctx context.Context, id string) (*model.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, adminerrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Admin", id)
		case errors.Is(err, adminerrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid admin ID format")
		}
		s.cfg.Log.Error("Failed to retrieve admin", "admin_id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve admin", err)
	}
	return admin, nil
}

// Seed inserts every configured account whose email is not registered yet.
// Existing admins are left untouched.
func (s *adminService) Seed(ctx context.Context, seeds []config.AdminSeed) error {
	if len(seeds) == 0 {
		s.cfg.Log.Warn("No admin seed accounts configured", "env", config.EnvAdminSeedAccounts)
		return nil
	}

	created := 0
	for _, seed := range seeds {
		email := sanitizer.Email(seed.Email)

		_, err := s.repo.FindByEmail(ctx, email)
		if err == nil {
			continue
		}
		if !errors.Is(err, adminerrors.ErrNotFound) {
			return fmt.Errorf("look up seed admin: %w", err)
		}

		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("hash seed admin password: %w", err)
		}

		admin := &model.Admin{
			Email:        email,
			Name:         sanitizer.TrimAndNormalize(seed.Name),
			PasswordHash: hash,
			Role:         auth.RoleAdmin,
		}
		if err := s.repo.Create(ctx, admin); err != nil {
			if errors.Is(err, adminerrors.ErrDuplicateKey) {
				continue
			}
			return fmt.Errorf("create seed admin: %w", err)
		}
		created++
		s.cfg.Log.Info("Seeded admin account", "admin_id", admin.ID)
	}

	s.cfg.Log.Info("Admin seeding complete", "configured", len(seeds), "created", created)
	return nil
}

func roleOf(admin *model.Admin) string {
	if admin.Role == "" {
		return auth.RoleAdmin
	}
	return admin.Role
}

func humanDuration(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	return d.String()
}
