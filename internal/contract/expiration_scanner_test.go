package contract

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/sambizara/GRH-Back/internal/events"
	"github.com/sambizara/GRH-Back/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeOutbox struct {
	events []kafka.OutboxEvent
	err    error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func expiringContract(endsIn int, today time.Time) Contract {
	end := today.AddDate(0, 0, endsIn)
	return Contract{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Type:         TypeCDD,
		StartDate:    today.AddDate(-1, 0, 0),
		EndDate:      &end,
		Status:       StatusActive,
		DepartmentID: uuid.New(),
		Active:       true,
	}
}

func TestExpirationScanner_ClassifyExpiring(t *testing.T) {
	today := day("2026-03-02")
	ctx := context.Background()

	in5 := expiringContract(5, today)
	in7 := expiringContract(7, today)
	in10 := expiringContract(10, today)
	in25 := expiringContract(25, today)
	repo := &fakeRepo{
		FindExpiringBetweenFn: func(ctx context.Context, from, to time.Time) ([]Contract, error) {
			return []Contract{in25, in7, in5, in10}, nil
		},
	}
	scanner := NewExpirationScanner(repo, nil)

	buckets, err := scanner.ClassifyExpiring(ctx, today)

	assert.NoError(t, err)
	// A contract five days out lands in the 7-day bucket only.
	assert.Len(t, buckets.Within7, 2)
	assert.Len(t, buckets.Within15, 1)
	assert.Len(t, buckets.Within30, 1)
	assert.Equal(t, in5.ID.String(), buckets.Within7[0].ContractID)
	assert.Equal(t, 5, buckets.Within7[0].DaysRemaining)
	assert.Equal(t, in7.ID.String(), buckets.Within7[1].ContractID)
	assert.Equal(t, in10.ID.String(), buckets.Within15[0].ContractID)
	assert.Equal(t, in25.ID.String(), buckets.Within30[0].ContractID)
}

func TestExpirationScanner_SkipsOutOfHorizon(t *testing.T) {
	today := day("2026-03-02")
	ctx := context.Background()

	expired := expiringContract(-2, today)
	faraway := expiringContract(45, today)
	openEnded := expiringContract(5, today)
	openEnded.EndDate = nil
	repo := &fakeRepo{
		FindExpiringBetweenFn: func(ctx context.Context, from, to time.Time) ([]Contract, error) {
			return []Contract{expired, faraway, openEnded}, nil
		},
	}
	scanner := NewExpirationScanner(repo, nil)

	stats, err := scanner.Stats(ctx, today)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestExpirationScanner_Stats(t *testing.T) {
	today := day("2026-03-02")
	ctx := context.Background()

	repo := &fakeRepo{
		FindExpiringBetweenFn: func(ctx context.Context, from, to time.Time) ([]Contract, error) {
			return []Contract{
				expiringContract(1, today),
				expiringContract(6, today),
				expiringContract(12, today),
				expiringContract(28, today),
				expiringContract(30, today),
			}, nil
		},
	}
	scanner := NewExpirationScanner(repo, nil)

	stats, err := scanner.Stats(ctx, today)

	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Within7)
	assert.Equal(t, 1, stats.Within15)
	assert.Equal(t, 2, stats.Within30)
	assert.Equal(t, 5, stats.Total)
}

func TestExpirationScanner_CheckAndNotify(t *testing.T) {
	today := day("2026-03-02")
	ctx := context.Background()

	in3 := expiringContract(3, today)
	in12 := expiringContract(12, today)
	in29 := expiringContract(29, today)
	repo := &fakeRepo{
		FindExpiringBetweenFn: func(ctx context.Context, from, to time.Time) ([]Contract, error) {
			return []Contract{in3, in12, in29}, nil
		},
	}
	outbox := &fakeOutbox{}
	scanner := NewExpirationScanner(repo, outbox)

	buckets, err := scanner.CheckAndNotify(ctx, today)

	assert.NoError(t, err)
	assert.Len(t, buckets.Within7, 1)
	assert.Len(t, outbox.events, 3)

	urgencyByContract := map[string]string{}
	for _, e := range outbox.events {
		assert.Equal(t, events.ContractExpiringTopic, e.Topic)
		assert.Equal(t, "contract.expiring", e.EventType)
		assert.Equal(t, kafka.OutboxStatusPending, e.Status)

		var payload events.ContractExpiringEvent
		assert.NoError(t, json.Unmarshal(e.Payload, &payload))
		urgencyByContract[payload.ContractID] = payload.Urgency
	}
	assert.Equal(t, events.UrgencyUrgent, urgencyByContract[in3.ID.String()])
	assert.Equal(t, events.UrgencyWarning, urgencyByContract[in12.ID.String()])
	assert.Equal(t, events.UrgencyInfo, urgencyByContract[in29.ID.String()])
}

func TestExpirationScanner_EnqueueFailureDoesNotFailScan(t *testing.T) {
	today := day("2026-03-02")
	ctx := context.Background()

	repo := &fakeRepo{
		FindExpiringBetweenFn: func(ctx context.Context, from, to time.Time) ([]Contract, error) {
			return []Contract{expiringContract(3, today)}, nil
		},
	}
	outbox := &fakeOutbox{err: assert.AnError}
	scanner := NewExpirationScanner(repo, outbox)

	buckets, err := scanner.CheckAndNotify(ctx, today)

	assert.NoError(t, err)
	assert.Len(t, buckets.Within7, 1)
	assert.Empty(t, outbox.events)
}
