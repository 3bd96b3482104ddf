package service

import (
	"context"
	"errors"
	"sync"
	"time"

	newslettererrors "estatehub/internal/newsletter/errors"
	"estatehub/internal/newsletter/repository"
	"estatehub/internal/newsletter/validator"
	"estatehub/pkg/config"
	"estatehub/pkg/dedup"
	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/model"
	"estatehub/pkg/notification"
	"estatehub/pkg/validation"
)

// TokenOpener recovers the address sealed into an unsubscribe link.
type TokenOpener interface {
	Open(token string) (string, error)
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, req *model.NewsletterRequest) (*model.Subscription, error)
	Unsubscribe(ctx context.Context, token string) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Subscription, int64, error)
	Delete(ctx context.Context, id string) error
}

type subscriptionService struct {
	repo      repository.SubscriptionRepository
	validator *validator.SubscriptionValidator
	notifier  notification.Notifier
	tokens    TokenOpener
	cfg       *config.Config
	now       func() time.Time
}

func NewSubscriptionService(
	repo repository.SubscriptionRepository,
	validator *validator.SubscriptionValidator,
	notifier notification.Notifier,
	tokens TokenOpener,
	cfg *config.Config,
) SubscriptionService {
	return &subscriptionService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		tokens:    tokens,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, req *model.NewsletterRequest) (*model.Subscription, error) {
	req.Sanitize()

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Newsletter validation failed", "error", err)
		return nil, validation.AsAppError(err)
	}

	candidate := dedup.Candidate{
		Email:  req.Email,
		Fields: map[string]string{dedup.FieldStatus: string(model.SubscriptionActive)},
	}
	policy, err := dedup.Check(ctx, s.repo, dedup.NewsletterPolicies, candidate, s.now().UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to check for existing subscription", "error", err)
		return nil, apperrors.Internal("Failed to check for existing subscription", err)
	}
	if policy != nil {
		return nil, apperrors.Duplicate(policy.Message)
	}

	sub := req.ToSubscription()

	existing, err := s.repo.FindByEmail(ctx, sub.Email)
	switch {
	case err == nil:
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
		if err := s.repo.Reactivate(ctx, sub); err != nil {
			s.cfg.Log.Error("Failed to reactivate subscription", "id", sub.ID, "error", err)
			return nil, apperrors.Internal("Failed to subscribe", err)
		}
		s.cfg.Log.Info("Subscription reactivated", "id", sub.ID)
	case errors.Is(err, newslettererrors.ErrNotFound):
		if err := s.repo.Create(ctx, sub); err != nil {
			if errors.Is(err, newslettererrors.ErrDuplicateKey) {
				return nil, apperrors.Duplicate(dedup.MsgNewsletterExists)
			}
			s.cfg.Log.Error("Failed to create subscription", "error", err)
			return nil, apperrors.Internal("Failed to subscribe", err)
		}
		s.cfg.Log.Info("Subscription created successfully", "id", sub.ID, "source", sub.Source)
	default:
		s.cfg.Log.Error("Failed to look up subscription", "error", err)
		return nil, apperrors.Internal("Failed to subscribe", err)
	}

	data := map[string]string{"email": sub.Email, "source": sub.Source}
	if sub.Name != "" {
		data["name"] = sub.Name
	}
	s.notifier.Notify(ctx, notification.FormNewsletter, data)

	return sub, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, token string) error {
	email, err := s.tokens.Open(token)
	if err != nil {
		s.cfg.Log.Warn("Rejected unsubscribe token", "error", err)
		return apperrors.InvalidInput("Invalid unsubscribe link")
	}

	if err := s.repo.Unsubscribe(ctx, email); err != nil {
		if errors.Is(err, newslettererrors.ErrNotFound) {
			return apperrors.NotFound("Subscription")
		}
		s.cfg.Log.Error("Failed to unsubscribe", "error", err)
		return apperrors.Internal("Failed to unsubscribe", err)
	}

	s.cfg.Log.Info("Subscription cancelled")
	return nil
}

func (s *subscriptionService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Subscription, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var subs []*model.Subscription
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count subscriptions", "error", err)
			errCount = apperrors.Internal("Failed to count subscriptions", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		subs, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list subscriptions", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve subscriptions", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return subs, count, nil
}

func (s *subscriptionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Subscription ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, newslettererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Subscription", id)
		}
		if errors.Is(err, newslettererrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid subscription ID format")
		}
		s.cfg.Log.Error("Failed to delete subscription", "id", id, "error", err)
		return apperrors.Internal("Failed to delete subscription", err)
	}

	s.cfg.Log.Info("Subscription deleted successfully", "id", id)
	return nil
}
