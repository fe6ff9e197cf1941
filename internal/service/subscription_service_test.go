package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/early-access-service/internal/domain"
	"github.com/spec-kit/early-access-service/internal/events"
	"github.com/spec-kit/early-access-service/internal/repository"
	"github.com/spec-kit/early-access-service/pkg/util"
)

type stubRepo struct {
	insertErr error
	received  []domain.Submission
}

var _ repository.SubmissionRepository = (*stubRepo)(nil)

func (s *stubRepo) Insert(_ context.Context, submissions []domain.Submission) ([]domain.Submission, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.received = append(s.received, submissions...)
	out := make([]domain.Submission, len(submissions))
	copy(out, submissions)
	for i := range out {
		out[i].ID = "row-1"
	}
	return out, nil
}

func (s *stubRepo) CountSince(context.Context, int) (int64, error) {
	return int64(len(s.received)), nil
}

func newService(repo repository.SubmissionRepository, dispatcher events.Dispatcher) *SubscriptionService {
	return NewSubscriptionService(SubscriptionDependencies{
		SubmissionRepo: repo,
		Dispatcher:     dispatcher,
		Logger:         zap.NewNop(),
	})
}

func TestSubscribeRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		sub  domain.Submission
	}{
		{"no name", domain.Submission{Email: "a@b.com"}},
		{"no email", domain.Submission{Name: "A"}},
		{"neither", domain.Submission{Phone: "1234567"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := newService(repo, nil)

			_, err := svc.Subscribe(context.Background(), tc.sub)

			domainErr := util.ToDomainError(err)
			if domainErr == nil || domainErr.Kind != util.KindClient {
				t.Fatalf("err = %v, want client kind", err)
			}
			if domainErr.Message != MissingFieldsMessage {
				t.Fatalf("message = %q", domainErr.Message)
			}
			if len(repo.received) != 0 {
				t.Fatal("rejected submission reached the repository")
			}
		})
	}
}

func TestSubscribeWrapsPersistenceFailure(t *testing.T) {
	svc := newService(&stubRepo{insertErr: errors.New("connection refused")}, nil)

	_, err := svc.Subscribe(context.Background(), domain.Submission{Name: "A", Email: "a@b.com"})

	domainErr := util.ToDomainError(err)
	if domainErr == nil || domainErr.Kind != util.KindPersistence {
		t.Fatalf("err = %v, want persistence kind", err)
	}
	if domainErr.Message != "connection refused" {
		t.Fatalf("message = %q, want collaborator's message", domainErr.Message)
	}
}

func TestSubscribePublishesStoredEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var stored []events.Event
	dispatcher.Subscribe(events.EventSubmissionStored, func(_ context.Context, e events.Event) error {
		stored = append(stored, e)
		return nil
	})

	svc := newService(&stubRepo{}, dispatcher)
	rows, err := svc.Subscribe(context.Background(), domain.Submission{Name: "A", Email: "a@b.com", Phone: "1234567"})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "row-1" {
		t.Fatalf("rows = %v", rows)
	}

	if len(stored) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(stored))
	}
	payload, ok := stored[0].Payload.(events.SubmissionStoredPayload)
	if !ok {
		t.Fatalf("payload type %T", stored[0].Payload)
	}
	if payload.SubmissionID != "row-1" || payload.Email != "a@b.com" {
		t.Fatalf("payload = %+v", payload)
	}
	if stored[0].ID == "" {
		t.Fatal("event missing id")
	}
}

func TestSubscribePublishesReceivedEventAtIngress(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var received []events.Event
	dispatcher.Subscribe(events.EventSubmissionReceived, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	svc := newService(&stubRepo{}, dispatcher)

	// Received fires for every attempt, even ones rejected for missing fields.
	if _, err := svc.Subscribe(context.Background(), domain.Submission{Name: "A"}); err == nil {
		t.Fatal("expected rejection")
	}
	if _, err := svc.Subscribe(context.Background(), domain.Submission{Name: "A", Email: "a@b.com"}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if len(received) != 2 {
		t.Fatalf("expected 2 received events, got %d", len(received))
	}
	payload, ok := received[1].Payload.(events.SubmissionReceivedPayload)
	if !ok {
		t.Fatalf("payload type %T", received[1].Payload)
	}
	if payload.Name != "A" || payload.Email != "a@b.com" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestSubscribePublishesRejectedEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var rejected []events.Event
	dispatcher.Subscribe(events.EventSubmissionRejected, func(_ context.Context, e events.Event) error {
		rejected = append(rejected, e)
		return nil
	})

	svc := newService(&stubRepo{}, dispatcher)
	_, err := svc.Subscribe(context.Background(), domain.Submission{Name: "A"})
	if err == nil {
		t.Fatal("expected rejection")
	}
	if len(rejected) != 1 {
		t.Fatalf("expected 1 rejected event, got %d", len(rejected))
	}
}

func TestSubmissionsTodayWithoutRedisIsZero(t *testing.T) {
	svc := newService(&stubRepo{}, nil)
	if got := svc.SubmissionsToday(context.Background()); got != 0 {
		t.Fatalf("SubmissionsToday = %d, want 0", got)
	}
}
