package presence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	presenceerrors "github.com/sambizara/GRH-Back/internal/presence/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byUserAndDate map[string]*Presence
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUserAndDate: map[string]*Presence{}}
}

func presenceKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, p *Presence) error {
	f.byUserAndDate[presenceKey(p.UserID.String(), p.PresenceDate)] = p
	return nil
}

func (f *fakeRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Presence, error) {
	p, ok := f.byUserAndDate[presenceKey(userID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, from, to *time.Time) ([]Presence, error) {
	return nil, nil
}

func (f *fakeRepo) FindAllByUser(ctx context.Context, userID string) ([]Presence, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Presence) error {
	f.byUserAndDate[presenceKey(p.UserID.String(), p.PresenceDate)] = p
	return nil
}

func newTestService(t *testing.T, db *sql.DB, repo Repository, at time.Time) *service {
	t.Helper()
	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time { return at }
	return svc
}

func TestService_CheckIn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("on time", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		at := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
		svc := newTestService(t, db, newFakeRepo(), at)

		resp, err := svc.CheckIn(ctx, userID, CheckInRequest{})

		assert.NoError(t, err)
		assert.Equal(t, StatusPresent, resp.Status)
		assert.Equal(t, "2026-03-02", resp.PresenceDate)
	})

	t.Run("after the cutoff is flagged late", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		at := time.Date(2026, 3, 2, 9, 16, 0, 0, time.UTC)
		svc := newTestService(t, db, newFakeRepo(), at)

		resp, err := svc.CheckIn(ctx, userID, CheckInRequest{})

		assert.NoError(t, err)
		assert.Equal(t, StatusLate, resp.Status)
	})

	t.Run("second check-in the same day is rejected", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := newFakeRepo()
		at := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
		svc := newTestService(t, db, repo, at)

		_, err := svc.CheckIn(ctx, userID, CheckInRequest{})
		assert.NoError(t, err)

		_, err = svc.CheckIn(ctx, userID, CheckInRequest{})
		assert.ErrorIs(t, err, presenceerrors.ErrAlreadyCheckedIn)
	})
}

func TestService_CheckOut(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	morning := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 2, 17, 45, 0, 0, time.UTC)

	t.Run("closes the day", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := newFakeRepo()
		svc := newTestService(t, db, repo, morning)

		_, err := svc.CheckIn(ctx, userID, CheckInRequest{})
		assert.NoError(t, err)

		svc.now = func() time.Time { return evening }
		resp, err := svc.CheckOut(ctx, userID, CheckOutRequest{})

		assert.NoError(t, err)
		assert.NotNil(t, resp.CheckOut)
	})

	t.Run("without a check-in", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := newTestService(t, db, newFakeRepo(), evening)

		_, err := svc.CheckOut(ctx, userID, CheckOutRequest{})

		assert.ErrorIs(t, err, presenceerrors.ErrNotCheckedIn)
	})

	t.Run("twice", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := newFakeRepo()
		svc := newTestService(t, db, repo, morning)

		_, err := svc.CheckIn(ctx, userID, CheckInRequest{})
		assert.NoError(t, err)

		svc.now = func() time.Time { return evening }
		_, err = svc.CheckOut(ctx, userID, CheckOutRequest{})
		assert.NoError(t, err)

		_, err = svc.CheckOut(ctx, userID, CheckOutRequest{})
		assert.ErrorIs(t, err, presenceerrors.ErrAlreadyCheckedOut)
	})
}
