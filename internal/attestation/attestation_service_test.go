package attestation

import (
	"context"
	"database/sql"
	"testing"

	attestationerrors "github.com/sambizara/GRH-Back/internal/attestation/errors"
	"github.com/sambizara/GRH-Back/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID map[string]*Attestation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Attestation{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Attestation) error {
	clone := *a
	f.byID[a.ID.String()] = &clone
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context, status string) ([]Attestation, error) {
	return nil, nil
}

func (f *fakeRepo) FindAllByUser(ctx context.Context, userID string) ([]Attestation, error) {
	return nil, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Attestation, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Attestation) error {
	clone := *a
	f.byID[a.ID.String()] = &clone
	return nil
}

type notifyCall struct {
	userID   string
	category string
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(ctx context.Context, userID, category, title, message string) {
	f.calls = append(f.calls, notifyCall{userID: userID, category: category})
}

func (f *fakeNotifier) Record(ctx context.Context, n *notification.Notification) error { return nil }

func (f *fakeNotifier) GetMine(ctx context.Context, userID string) ([]notification.NotificationResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, userID, id string) error { return nil }

func (f *fakeNotifier) MarkAllRead(ctx context.Context, userID string) error { return nil }

func contentPtr(v string) *string { return &v }

func TestService_Decide(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	userID := uuid.New().String()

	setup := func(t *testing.T) (Service, *fakeRepo, *fakeNotifier, string) {
		t.Helper()
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := NewService(repo, notifier)
		resp, err := svc.Create(ctx, userID, CreateAttestationRequest{
			Type:   TypeWork,
			Reason: "bank loan application",
		})
		assert.NoError(t, err)
		return svc, repo, notifier, resp.ID
	}

	t.Run("approval stores the content and notifies", func(t *testing.T) {
		svc, repo, notifier, id := setup(t)

		resp, err := svc.Decide(ctx, actorID, id, DecideAttestationRequest{
			Status:  StatusApproved,
			Content: contentPtr("We certify that the employee works here."),
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.NotNil(t, resp.DecidedBy)
		assert.NotNil(t, repo.byID[id].Content)
		assert.Len(t, notifier.calls, 1)
		assert.Equal(t, userID, notifier.calls[0].userID)
		assert.Equal(t, notification.CategoryAttestation, notifier.calls[0].category)
	})

	t.Run("approval without content", func(t *testing.T) {
		svc, _, _, id := setup(t)

		_, err := svc.Decide(ctx, actorID, id, DecideAttestationRequest{
			Status:  StatusApproved,
			Content: contentPtr("   "),
		})

		assert.ErrorIs(t, err, attestationerrors.ErrContentRequired)
	})

	t.Run("rejection needs no content", func(t *testing.T) {
		svc, _, notifier, id := setup(t)

		resp, err := svc.Decide(ctx, actorID, id, DecideAttestationRequest{Status: StatusRejected})

		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Len(t, notifier.calls, 1)
	})

	t.Run("a decided attestation stays decided", func(t *testing.T) {
		svc, _, _, id := setup(t)

		_, err := svc.Decide(ctx, actorID, id, DecideAttestationRequest{Status: StatusRejected})
		assert.NoError(t, err)

		_, err = svc.Decide(ctx, actorID, id, DecideAttestationRequest{
			Status:  StatusApproved,
			Content: contentPtr("late approval"),
		})
		assert.ErrorIs(t, err, attestationerrors.ErrAlreadyDecided)
	})

	t.Run("unknown attestation", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		_, err := svc.Decide(ctx, actorID, uuid.New().String(), DecideAttestationRequest{Status: StatusRejected})

		assert.ErrorIs(t, err, attestationerrors.ErrAttestationNotFound)
	})
}
