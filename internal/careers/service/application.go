package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	careererrors "estatehub/internal/careers/errors"
	"estatehub/internal/careers/repository"
	"estatehub/internal/careers/validator"
	"estatehub/pkg/config"
	"estatehub/pkg/dedup"
	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/model"
	"estatehub/pkg/notification"
	"estatehub/pkg/validation"
)

type ApplicationService interface {
	Apply(ctx context.Context, req *model.CareerRequest) (*model.Application, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Application, int64, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	ResumeURL(ctx context.Context, id string) (string, error)
}

type applicationService struct {
	repo      repository.ApplicationRepository
	validator *validator.ApplicationValidator
	notifier  notification.Notifier
	cfg       *config.Config
	now       func() time.Time
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	validator *validator.ApplicationValidator,
	notifier notification.Notifier,
	cfg *config.Config,
) ApplicationService {
	return &applicationService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, req *model.CareerRequest) (*model.Application, error) {
	req.Sanitize()

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Career application validation failed", "error", err)
		return nil, validation.AsAppError(err)
	}

	app := req.ToApplication()

	candidate := dedup.Candidate{
		Email:  app.Email,
		Fields: map[string]string{dedup.FieldPosition: app.Position},
	}
	policy, err := dedup.Check(ctx, s.repo, dedup.CareerPolicies(app.Position), candidate, s.now().UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to check for duplicate application", "error", err)
		return nil, apperrors.Internal("Failed to check for duplicate submissions", err)
	}
	if policy != nil {
		s.cfg.Log.Info("Duplicate application rejected", "policy", policy.Name, "position", app.Position)
		return nil, apperrors.Duplicate(policy.Message)
	}

	if err := s.repo.Create(ctx, app); err != nil {
		s.cfg.Log.Error("Failed to create application", "position", app.Position, "error", err)
		return nil, apperrors.Internal("Failed to save application", err)
	}

	s.cfg.Log.Info("Application created successfully", "id", app.ID, "position", app.Position)

	data := map[string]string{
		"name":     app.Name,
		"email":    app.Email,
		"phone":    app.Phone,
		"position": app.Position,
	}
	for k, v := range map[string]string{
		"experience":   app.Experience,
		"cover_letter": app.CoverLetter,
		"resume_url":   app.ResumeURL,
	} {
		if v != "" {
			data[k] = v
		}
	}
	s.notifier.Notify(ctx, notification.FormCareer, data)

	return app, nil
}

func (s *applicationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Application, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var apps []*model.Application
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count applications", "error", err)
			errCount = apperrors.Internal("Failed to count applications", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		apps, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list applications", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve applications", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return apps, count, nil
}

func (s *applicationService) GetByID(ctx context.Context, id string) (*model.Application, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Application ID cannot be empty")
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "Failed to retrieve application", id)
	}
	return app, nil
}

// UpdateStatus accepts any valid status; applications have no transition guard.
func (s *applicationService) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	if err := s.validator.ValidateStatus(&model.ApplicationStatusUpdate{Status: status}); err != nil {
		return validation.AsAppError(err)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return s.mapRepoError(err, "Failed to update application status", id)
	}

	s.cfg.Log.Info("Application status updated", "id", id, "status", status)
	return nil
}

func (s *applicationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Application ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, "Failed to delete application", id)
	}

	s.cfg.Log.Info("Application deleted successfully", "id", id)
	return nil
}

// ResumeURL returns the stored resume link. Only absolute http(s) URLs are served.
func (s *applicationService) ResumeURL(ctx context.Context, id string) (string, error) {
	app, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(app.ResumeURL)
	if app.ResumeURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperrors.NotFound("Resume")
	}
	return app.ResumeURL, nil
}

func (s *applicationService) mapRepoError(err error, msg, id string) error {
	if errors.Is(err, careererrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Application", id)
	}
	if errors.Is(err, careererrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid application ID format")
	}
	s.cfg.Log.Error(msg, "id", id, "error", err)
	return apperrors.Internal(msg, err)
}
