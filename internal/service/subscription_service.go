package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/early-access-service/internal/domain"
	"github.com/spec-kit/early-access-service/internal/events"
	"github.com/spec-kit/early-access-service/internal/persistence"
	"github.com/spec-kit/early-access-service/internal/repository"
	"github.com/spec-kit/early-access-service/pkg/util"
)

// MissingFieldsMessage is the endpoint's rejection message for incomplete payloads.
const MissingFieldsMessage = "Missing name or email"

const counterKeyPrefix = "early_access:submissions:"

// SubscriptionService coordinates the early-access ingestion flow.
type SubscriptionService struct {
	submissions repository.SubmissionRepository
	dispatcher  events.Dispatcher
	redis       *persistence.Redis
	logger      *zap.Logger
}

// SubscriptionDependencies bundles collaborators for the subscription service.
type SubscriptionDependencies struct {
	SubmissionRepo repository.SubmissionRepository
	Dispatcher     events.Dispatcher
	Redis          *persistence.Redis
	Logger         *zap.Logger
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(deps SubscriptionDependencies) *SubscriptionService {
	return &SubscriptionService{
		submissions: deps.SubmissionRepo,
		dispatcher:  deps.Dispatcher,
		redis:       deps.Redis,
		logger:      deps.Logger,
	}
}

// Subscribe persists one submission. Name and email are required; phone is
// accepted as-is at this layer since the endpoint trusts no client-side
// guarantee. Returns the inserted rows with database-assigned fields.
func (s *SubscriptionService) Subscribe(ctx context.Context, sub domain.Submission) ([]domain.Submission, error) {
	s.publishReceived(ctx, sub)

	if sub.Name == "" || sub.Email == "" {
		s.publishRejected(ctx, MissingFieldsMessage)
		return nil, util.NewClientError(MissingFieldsMessage)
	}

	inserted, err := s.submissions.Insert(ctx, []domain.Submission{sub})
	if err != nil {
		s.logger.Error("insert submission failed", zap.Error(err), zap.String("email", sub.Email))
		return nil, util.NewPersistenceError(err)
	}

	for _, row := range inserted {
		s.publishStored(ctx, row)
	}
	s.bumpDailyCounter(ctx)

	return inserted, nil
}

// SubmissionsLastWeek counts rows inserted over the past seven days.
func (s *SubscriptionService) SubmissionsLastWeek(ctx context.Context) (int64, error) {
	return s.submissions.CountSince(ctx, 7)
}

// SubmissionsToday returns the best-effort daily counter. A missing or
// unreachable Redis yields zero, not an error.
func (s *SubscriptionService) SubmissionsToday(ctx context.Context) int64 {
	if s.redis == nil || s.redis.Client == nil {
		return 0
	}
	count, err := s.redis.Client.Get(ctx, dailyCounterKey(time.Now())).Int64()
	if err != nil {
		return 0
	}
	return count
}

func (s *SubscriptionService) publishReceived(ctx context.Context, sub domain.Submission) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSubmissionReceived,
		Timestamp: time.Now().UTC(),
		Payload: events.SubmissionReceivedPayload{
			Name:  sub.Name,
			Email: sub.Email,
		},
	})
}

func (s *SubscriptionService) publishStored(ctx context.Context, row domain.Submission) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSubmissionStored,
		Timestamp: time.Now().UTC(),
		Payload: events.SubmissionStoredPayload{
			SubmissionID: row.ID,
			Email:        row.Email,
			Name:         row.Name,
		},
	})
}

func (s *SubscriptionService) publishRejected(ctx context.Context, reason string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSubmissionRejected,
		Timestamp: time.Now().UTC(),
		Payload:   events.SubmissionRejectedPayload{Reason: reason},
	})
}

func (s *SubscriptionService) bumpDailyCounter(ctx context.Context) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	key := dailyCounterKey(time.Now())
	if err := s.redis.Client.Incr(ctx, key).Err(); err != nil {
		s.logger.Debug("daily counter unavailable", zap.Error(err))
		return
	}
	s.redis.Client.Expire(ctx, key, 48*time.Hour)
}

func dailyCounterKey(t time.Time) string {
	return counterKeyPrefix + t.UTC().Format("2006-01-02")
}
