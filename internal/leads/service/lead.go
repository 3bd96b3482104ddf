package service

import (
	"context"
	"errors"
	"sync"
	"time"

	leaderrors "estatehub/internal/leads/errors"
	"estatehub/internal/leads/repository"
	"estatehub/internal/leads/validator"
	"estatehub/pkg/config"
	"estatehub/pkg/dedup"
	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/model"
	"estatehub/pkg/notification"
	"estatehub/pkg/sanitizer"
	"estatehub/pkg/validation"
)

type LeadService interface {
	Submit(ctx context.Context, req model.LeadRequest) (*model.Lead, error)
	List(ctx context.Context, kind model.LeadKind, filter repository.LeadFilter, limit int, offset int64) ([]*model.Lead, int64, error)
	GetByID(ctx context.Context, kind model.LeadKind, id string) (*model.Lead, error)
	Update(ctx context.Context, kind model.LeadKind, id string, updates *model.LeadUpdate) (*model.Lead, error)
	UpdateStatus(ctx context.Context, kind model.LeadKind, id string, status model.LeadStatus) error
	Delete(ctx context.Context, kind model.LeadKind, id string) error
}

type leadService struct {
	repo      repository.LeadRepository
	validator *validator.LeadValidator
	notifier  notification.Notifier
	cfg       *config.Config
	now       func() time.Time
}

func NewLeadService(
	repo repository.LeadRepository,
	validator *validator.LeadValidator,
	notifier notification.Notifier,
	cfg *config.Config,
) LeadService {
	return &leadService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Policies returns the dedup policies of a kind. Callbacks have none.
func Policies(kind model.LeadKind) []dedup.Policy {
	switch kind {
	case model.KindInquiry:
		return dedup.InquiryPolicies
	case model.KindBuilderInquiry:
		return dedup.BuilderInquiryPolicies
	case model.KindLocationInquiry:
		return dedup.LocationInquiryPolicies
	case model.KindSearchBoxEnquiry:
		return dedup.SearchBoxPolicies
	default:
		return nil
	}
}

func (s *leadService) Submit(ctx context.Context, req model.LeadRequest) (*model.Lead, error) {
	req.Sanitize()

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Lead validation failed", "error", err)
		return nil, validation.AsAppError(err)
	}

	lead := req.ToLead()
	lead.Normalize()

	if policies := Policies(lead.Kind); len(policies) > 0 {
		candidate := dedup.Candidate{
			Email: lead.Email,
			Phone: lead.Phone,
			Fields: map[string]string{
				dedup.FieldLocation:    lead.Location,
				dedup.FieldProjectName: lead.ProjectName,
			},
		}

		policy, err := dedup.Check(ctx, s.repo.Finder(lead.Kind), policies, candidate, s.now().UTC())
		if err != nil {
			s.cfg.Log.Error("Failed to check for duplicate lead",
				"kind", lead.Kind,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to check for duplicate submissions", err)
		}
		if policy != nil {
			s.cfg.Log.Info("Duplicate lead rejected",
				"kind", lead.Kind,
				"policy", policy.Name,
			)
			return nil, apperrors.Duplicate(policy.Message)
		}
	}

	if lead.Kind.TracksStatus() {
		lead.Status = model.StatusPending
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		s.cfg.Log.Error("Failed to create lead",
			"kind", lead.Kind,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to save submission", err)
	}

	s.cfg.Log.Info("Lead created successfully",
		"id", lead.ID,
		"kind", lead.Kind,
	)

	if form := lead.Kind.FormType(); form != "" {
		s.notifier.Notify(ctx, notification.FormType(form), notificationData(lead))
	}
	return lead, nil
}

func (s *leadService) List(ctx context.Context, kind model.LeadKind, filter repository.LeadFilter, limit int, offset int64) ([]*model.Lead, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter.Query = sanitizer.TrimAndNormalize(filter.Query)

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperrors.InvalidInput("Invalid status filter: " + string(filter.Status))
	}

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var leads []*model.Lead
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx, kind, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count leads", "kind", kind, "error", err)
			errCount = apperrors.Internal("Failed to count leads", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		leads, err = s.repo.FindAll(sharedCtx, kind, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list leads",
				"kind", kind,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve leads", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return leads, count, nil
}

func (s *leadService) GetByID(ctx context.Context, kind model.LeadKind, id string) (*model.Lead, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Lead ID cannot be empty")
	}

	lead, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, s.mapRepoError(err, "Failed to retrieve lead", kind, id)
	}
	return lead, nil
}

func (s *leadService) Update(ctx context.Context, kind model.LeadKind, id string, updates *model.LeadUpdate) (*model.Lead, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Lead ID cannot be empty")
	}

	sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Lead update validation failed", "kind", kind, "id", id, "error", err)
		return nil, validation.AsAppError(err)
	}

	existing, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, s.mapRepoError(err, "Failed to check lead existence", kind, id)
	}

	mergeLeadUpdates(existing, updates)
	existing.Normalize()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, s.mapRepoError(err, "Failed to update lead", kind, id)
	}

	s.cfg.Log.Info("Lead updated successfully", "kind", kind, "id", id)
	return existing, nil
}

func (s *leadService) UpdateStatus(ctx context.Context, kind model.LeadKind, id string, status model.LeadStatus) error {
	if !kind.TracksStatus() {
		return apperrors.Unprocessable(string(kind) + " does not track status")
	}

	if err := s.validator.ValidateStatus(&model.LeadStatusUpdate{Status: status}); err != nil {
		return validation.AsAppError(err)
	}

	existing, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return s.mapRepoError(err, "Failed to check lead existence", kind, id)
	}

	current := existing.Status
	if current == "" {
		current = model.StatusPending
	}
	if !current.CanTransition(status) {
		s.cfg.Log.Warn("Rejected lead status transition",
			"kind", kind,
			"id", id,
			"from", current,
			"to", status,
		)
		return apperrors.Conflict("Cannot change status from " + string(current) + " to " + string(status))
	}

	if err := s.repo.UpdateStatus(ctx, kind, id, status); err != nil {
		return s.mapRepoError(err, "Failed to update lead status", kind, id)
	}

	s.cfg.Log.Info("Lead status updated",
		"kind", kind,
		"id", id,
		"from", current,
		"to", status,
	)
	return nil
}

func (s *leadService) Delete(ctx context.Context, kind model.LeadKind, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Lead ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return s.mapRepoError(err, "Failed to delete lead", kind, id)
	}

	s.cfg.Log.Info("Lead deleted successfully", "kind", kind, "id", id)
	return nil
}

func (s *leadService) mapRepoError(err error, msg string, kind model.LeadKind, id string) error {
	if errors.Is(err, leaderrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Lead", id)
	}
	if errors.Is(err, leaderrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid lead ID format")
	}
	s.cfg.Log.Error(msg,
		"kind", kind,
		"id", id,
		"error", err,
	)
	return apperrors.Internal(msg, err)
}

func sanitizeUpdate(u *model.LeadUpdate) {
	for _, f := range []*string{u.Name, u.Source, u.ProjectName, u.BuilderName, u.Location, u.PropertyType, u.Budget} {
		if f != nil {
			*f = sanitizer.TrimAndNormalize(*f)
		}
	}
	if u.Message != nil {
		*u.Message = sanitizer.Text(*u.Message)
	}
}

func mergeLeadUpdates(l *model.Lead, u *model.LeadUpdate) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Message != nil {
		l.Message = *u.Message
	}
	if u.Source != nil {
		l.Source = *u.Source
	}
	if u.ProjectName != nil {
		l.ProjectName = *u.ProjectName
	}
	if u.BuilderName != nil {
		l.BuilderNameRaw = *u.BuilderName
		if *u.BuilderName == "" {
			l.BuilderName = ""
		}
	}
	if u.Location != nil {
		l.Location = *u.Location
		if *u.Location == "" {
			l.BaseLocation = ""
		}
	}
	if u.PropertyType != nil {
		l.PropertyType = *u.PropertyType
	}
	if u.Budget != nil {
		l.Budget = *u.Budget
	}
}

// notificationData flattens a lead into the template fields. Empty values are left out.
func notificationData(l *model.Lead) map[string]string {
	fields := map[string]string{
		"name":          l.Name,
		"email":         l.Email,
		"phone":         l.Phone,
		"message":       l.Message,
		"source":        l.Source,
		"project_name":  l.ProjectName,
		"builder_name":  l.BuilderName,
		"location":      l.Location,
		"base_location": l.BaseLocation,
		"property_type": l.PropertyType,
		"budget":        l.Budget,
	}
	data := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			data[k] = v
		}
	}
	return data
}
