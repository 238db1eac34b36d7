package stage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sambizara/GRH-Back/internal/notification"
	"github.com/sambizara/GRH-Back/internal/rbac"
	stageerrors "github.com/sambizara/GRH-Back/internal/stage/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID       map[string]*Stage
	persons    map[string]*Person
	profiles   map[string]*InternProfile
	candidates []Person
	admins     []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:     map[string]*Stage{},
		persons:  map[string]*Person{},
		profiles: map[string]*InternProfile{},
	}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, s *Stage) error {
	clone := *s
	f.byID[s.ID.String()] = &clone
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]Stage, error) {
	var out []Stage
	for _, s := range f.byID {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Stage, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeRepo) FindOneByIntern(ctx context.Context, internID string) (*Stage, error) {
	for _, s := range f.byID {
		if s.InternID.String() == internID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) HasActiveByIntern(ctx context.Context, internID string) (bool, error) {
	for _, s := range f.byID {
		if s.InternID.String() != internID {
			continue
		}
		for _, active := range ActiveStatuses {
			if s.Status == active {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeRepo) FindByMentor(ctx context.Context, mentorID string) ([]Stage, error) {
	var out []Stage
	for _, s := range f.byID {
		if s.MentorID != nil && s.MentorID.String() == mentorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindPendingByMentor(ctx context.Context, mentorID string) ([]Stage, error) {
	var out []Stage
	for _, s := range f.byID {
		if s.MentorID != nil && s.MentorID.String() == mentorID &&
			s.MentorDecision == DecisionPending {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindDecidedByMentor(ctx context.Context, mentorID string) ([]Stage, error) {
	var out []Stage
	for _, s := range f.byID {
		if s.MentorID != nil && s.MentorID.String() == mentorID &&
			s.MentorDecision != DecisionPending {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindUnassigned(ctx context.Context) ([]Stage, error) {
	var out []Stage
	for _, s := range f.byID {
		if s.MentorID == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, s *Stage) error {
	clone := *s
	f.byID[s.ID.String()] = &clone
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) FindPerson(ctx context.Context, userID string) (*Person, error) {
	p, ok := f.persons[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeRepo) FindInternProfile(ctx context.Context, userID string) (*InternProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeRepo) FindMentorCandidates(ctx context.Context, position string) ([]Person, error) {
	return f.candidates, nil
}

func (f *fakeRepo) AdminIDs(ctx context.Context) ([]string, error) {
	return f.admins, nil
}

type notifyCall struct {
	userID   string
	category string
	title    string
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(ctx context.Context, userID, category, title, message string) {
	f.calls = append(f.calls, notifyCall{userID: userID, category: category, title: title})
}

func (f *fakeNotifier) Record(ctx context.Context, n *notification.Notification) error { return nil }

func (f *fakeNotifier) GetMine(ctx context.Context, userID string) ([]notification.NotificationResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, userID, id string) error { return nil }

func (f *fakeNotifier) MarkAllRead(ctx context.Context, userID string) error { return nil }

func seedIntern(f *fakeRepo) uuid.UUID {
	id := uuid.New()
	f.persons[id.String()] = &Person{
		ID: id, FirstName: "Awa", LastName: "Diallo",
		Role: rbac.RoleStagiaire, IsActive: true,
	}
	return id
}

func seedEmployee(f *fakeRepo) uuid.UUID {
	id := uuid.New()
	f.persons[id.String()] = &Person{
		ID: id, FirstName: "Marc", LastName: "Petit",
		Role: rbac.RoleSalarie, IsActive: true,
	}
	return id
}

func strPtr(v string) *string { return &v }

func newTestService(repo Repository, notifier notification.Service, at time.Time) *service {
	svc := NewService(repo, notifier).(*service)
	svc.now = func() time.Time { return at }
	return svc
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a pending stage and notifies the mentor", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())
		internID := seedIntern(repo)
		mentorID := seedEmployee(repo)

		resp, err := svc.Create(ctx, CreateStageRequest{
			InternID:  internID.String(),
			MentorID:  strPtr(mentorID.String()),
			Subject:   "API gateway hardening",
			StartDate: "2026-10-01",
			EndDate:   "2027-03-31",
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, DecisionPending, resp.MentorDecision)
		assert.Equal(t, mentorID.String(), *resp.MentorID)
		if assert.Len(t, notifier.calls, 1) {
			assert.Equal(t, mentorID.String(), notifier.calls[0].userID)
			assert.Equal(t, notification.CategoryStage, notifier.calls[0].category)
		}
	})

	t.Run("rejects an unknown intern", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())

		_, err := svc.Create(ctx, CreateStageRequest{
			InternID:  uuid.New().String(),
			Subject:   "subject",
			StartDate: "2026-10-01",
			EndDate:   "2027-03-31",
		})

		assert.ErrorIs(t, err, stageerrors.ErrInternNotFound)
	})

	t.Run("rejects a user who is not an intern", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())
		employeeID := seedEmployee(repo)

		_, err := svc.Create(ctx, CreateStageRequest{
			InternID:  employeeID.String(),
			Subject:   "subject",
			StartDate: "2026-10-01",
			EndDate:   "2027-03-31",
		})

		assert.ErrorIs(t, err, stageerrors.ErrNotAnIntern)
	})

	t.Run("rejects a mentor who is not an employee", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())
		internID := seedIntern(repo)
		otherIntern := seedIntern(repo)

		_, err := svc.Create(ctx, CreateStageRequest{
			InternID:  internID.String(),
			MentorID:  strPtr(otherIntern.String()),
			Subject:   "subject",
			StartDate: "2026-10-01",
			EndDate:   "2027-03-31",
		})

		assert.ErrorIs(t, err, stageerrors.ErrMentorNotEmployee)
	})

	t.Run("rejects an intern with an ongoing assignment", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())
		internID := seedIntern(repo)

		_, err := svc.Create(ctx, CreateStageRequest{
			InternID:  internID.String(),
			Subject:   "first",
			StartDate: "2026-10-01",
			EndDate:   "2027-03-31",
		})
		assert.NoError(t, err)

		_, err = svc.Create(ctx, CreateStageRequest{
			InternID:  internID.String(),
			Subject:   "second",
			StartDate: "2026-10-01",
			EndDate:   "2027-03-31",
		})
		assert.ErrorIs(t, err, stageerrors.ErrInternAlreadyAssigned)
	})

	t.Run("validates the date range", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())
		internID := seedIntern(repo)

		_, err := svc.Create(ctx, CreateStageRequest{
			InternID:  internID.String(),
			Subject:   "subject",
			StartDate: "2027-03-31",
			EndDate:   "2026-10-01",
		})
		assert.ErrorIs(t, err, stageerrors.ErrInvalidDateRange)

		_, err = svc.Create(ctx, CreateStageRequest{
			InternID:  internID.String(),
			Subject:   "subject",
			StartDate: "01/10/2026",
			EndDate:   "2027-03-31",
		})
		assert.ErrorIs(t, err, stageerrors.ErrInvalidDateFormat)
	})
}

func TestService_AutoMatch(t *testing.T) {
	ctx := context.Background()
	day := func(s string) time.Time {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			panic(err)
		}
		return t
	}

	t.Run("proposes the intern to every matching employee", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())
		internID := uuid.New()
		start, end := day("2026-10-01"), day("2027-03-31")
		repo.profiles[internID.String()] = &InternProfile{
			ID: internID, FirstName: "Awa", LastName: "Diallo",
			Role: rbac.RoleStagiaire, School: "ESP Dakar", Field: "Backend Engineer",
			InternshipStart: &start, InternshipEnd: &end,
		}
		repo.candidates = []Person{
			{ID: uuid.New(), FirstName: "Marc", LastName: "Petit", Role: rbac.RoleSalarie},
			{ID: uuid.New(), FirstName: "Lea", LastName: "Morel", Role: rbac.RoleSalarie},
		}

		count, err := svc.AutoMatch(ctx, internID.String())

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Len(t, repo.byID, 2)
		assert.Len(t, notifier.calls, 2)
		for _, s := range repo.byID {
			assert.Equal(t, StatusProposed, s.Status)
			assert.Equal(t, DecisionPending, s.MentorDecision)
			assert.Equal(t, start, s.StartDate)
			assert.Equal(t, end, s.EndDate)
			assert.Contains(t, s.Subject, "Backend Engineer")
		}
	})

	t.Run("returns zero when no employee matches", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())
		internID := uuid.New()
		repo.profiles[internID.String()] = &InternProfile{
			ID: internID, Role: rbac.RoleStagiaire, Field: "Data Science",
		}

		count, err := svc.AutoMatch(ctx, internID.String())

		assert.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, repo.byID)
		assert.Empty(t, notifier.calls)
	})

	t.Run("defaults the window when the profile has no dates", func(t *testing.T) {
		repo := newFakeRepo()
		now := day("2026-09-01")
		svc := newTestService(repo, &fakeNotifier{}, now)
		internID := uuid.New()
		repo.profiles[internID.String()] = &InternProfile{
			ID: internID, Role: rbac.RoleStagiaire, Field: "Backend Engineer",
		}
		repo.candidates = []Person{{ID: uuid.New(), Role: rbac.RoleSalarie}}

		count, err := svc.AutoMatch(ctx, internID.String())

		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		for _, s := range repo.byID {
			assert.Equal(t, now.Truncate(24*time.Hour), s.StartDate)
			assert.Equal(t, s.StartDate.AddDate(0, defaultProposalMonths, 0), s.EndDate)
		}
	})

	t.Run("rejects a non-intern", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())
		employeeID := uuid.New()
		repo.profiles[employeeID.String()] = &InternProfile{
			ID: employeeID, Role: rbac.RoleSalarie,
		}

		_, err := svc.AutoMatch(ctx, employeeID.String())

		assert.ErrorIs(t, err, stageerrors.ErrNotAnIntern)
	})
}

func seedStage(repo *fakeRepo, internID uuid.UUID, mentorID *uuid.UUID) *Stage {
	st := &Stage{
		ID:             uuid.New(),
		InternID:       internID,
		MentorID:       mentorID,
		Subject:        "API gateway hardening",
		StartDate:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:         StatusPending,
		MentorDecision: DecisionPending,
	}
	repo.byID[st.ID.String()] = st
	return st
}

func TestService_ConfirmReject(t *testing.T) {
	ctx := context.Background()
	decidedAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("mentor confirmation settles the assignment", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, decidedAt)
		internID := seedIntern(repo)
		mentorID := seedEmployee(repo)
		st := seedStage(repo, internID, &mentorID)

		resp, err := svc.Confirm(ctx, mentorID.String(), st.ID.String(), ConfirmStageRequest{
			Subject:    strPtr("Payments platform internship"),
			Objectives: []string{"ship the reconciliation job"},
			Comments:   "welcome aboard",
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusConfirmed, resp.Status)
		assert.Equal(t, DecisionConfirmed, resp.MentorDecision)
		assert.Equal(t, "Payments platform internship", resp.Subject)
		assert.Equal(t, []string{"ship the reconciliation job"}, resp.Objectives)
		assert.NotNil(t, resp.MentorDecidedAt)
		if assert.Len(t, notifier.calls, 1) {
			assert.Equal(t, internID.String(), notifier.calls[0].userID)
			assert.Equal(t, notification.CategoryStage, notifier.calls[0].category)
		}
	})

	t.Run("only the assigned mentor may decide", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, decidedAt)
		internID := seedIntern(repo)
		mentorID := seedEmployee(repo)
		st := seedStage(repo, internID, &mentorID)

		_, err := svc.Confirm(ctx, uuid.New().String(), st.ID.String(), ConfirmStageRequest{})

		assert.ErrorIs(t, err, stageerrors.ErrNotStageMentor)
	})

	t.Run("a settled assignment cannot be decided again", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, decidedAt)
		internID := seedIntern(repo)
		mentorID := seedEmployee(repo)
		st := seedStage(repo, internID, &mentorID)

		_, err := svc.Confirm(ctx, mentorID.String(), st.ID.String(), ConfirmStageRequest{})
		assert.NoError(t, err)

		_, err = svc.Reject(ctx, mentorID.String(), st.ID.String(), RejectStageRequest{Reason: "overloaded"})
		assert.ErrorIs(t, err, stageerrors.ErrAlreadyDecided)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, decidedAt)
		internID := seedIntern(repo)
		mentorID := seedEmployee(repo)
		st := seedStage(repo, internID, &mentorID)

		_, err := svc.Reject(ctx, mentorID.String(), st.ID.String(), RejectStageRequest{Reason: "  "})

		assert.ErrorIs(t, err, stageerrors.ErrRejectReasonRequired)
	})

	t.Run("rejection notifies the intern and every HR admin", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, decidedAt)
		internID := seedIntern(repo)
		mentorID := seedEmployee(repo)
		st := seedStage(repo, internID, &mentorID)
		repo.admins = []string{uuid.New().String(), uuid.New().String()}

		resp, err := svc.Reject(ctx, mentorID.String(), st.ID.String(), RejectStageRequest{
			Reason:   "team at capacity",
			Comments: "try the data team",
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Equal(t, DecisionRejected, resp.MentorDecision)
		assert.Equal(t, "team at capacity", resp.RejectReason)
		if assert.Len(t, notifier.calls, 3) {
			assert.Equal(t, internID.String(), notifier.calls[0].userID)
			assert.ElementsMatch(t, repo.admins,
				[]string{notifier.calls[1].userID, notifier.calls[2].userID})
		}
	})
}

func TestService_AssignMentor(t *testing.T) {
	ctx := context.Background()

	t.Run("reassignment restarts the confirmation cycle", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())
		internID := seedIntern(repo)
		oldMentor := seedEmployee(repo)
		newMentor := seedEmployee(repo)
		st := seedStage(repo, internID, &oldMentor)
		st.Status = StatusRejected
		st.MentorDecision = DecisionRejected
		st.RejectReason = "team at capacity"

		resp, err := svc.AssignMentor(ctx, st.ID.String(), AssignMentorRequest{
			MentorID: newMentor.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, newMentor.String(), *resp.MentorID)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, DecisionPending, resp.MentorDecision)
		assert.Empty(t, resp.RejectReason)
		if assert.Len(t, notifier.calls, 1) {
			assert.Equal(t, newMentor.String(), notifier.calls[0].userID)
		}
	})

	t.Run("rejects assigning the current mentor again", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())
		internID := seedIntern(repo)
		mentorID := seedEmployee(repo)
		st := seedStage(repo, internID, &mentorID)

		_, err := svc.AssignMentor(ctx, st.ID.String(), AssignMentorRequest{
			MentorID: mentorID.String(),
		})

		assert.ErrorIs(t, err, stageerrors.ErrMentorAlreadyAssigned)
	})
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completion notifies the intern", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, time.Now())
		internID := seedIntern(repo)
		st := seedStage(repo, internID, nil)

		resp, err := svc.SetStatus(ctx, st.ID.String(), SetStageStatusRequest{Status: StatusCompleted})

		assert.NoError(t, err)
		assert.Equal(t, StatusCompleted, resp.Status)
		if assert.Len(t, notifier.calls, 1) {
			assert.Equal(t, internID.String(), notifier.calls[0].userID)
			assert.Equal(t, "Internship completed", notifier.calls[0].title)
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeNotifier{}, time.Now())
		internID := seedIntern(repo)
		st := seedStage(repo, internID, nil)

		_, err := svc.SetStatus(ctx, st.ID.String(), SetStageStatusRequest{Status: "PAUSED"})

		assert.ErrorIs(t, err, stageerrors.ErrInvalidStatus)
	})
}

func TestService_GetMine(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeNotifier{}, time.Now())
	internID := seedIntern(repo)

	_, err := svc.GetMine(ctx, internID.String())
	assert.ErrorIs(t, err, stageerrors.ErrStageNotFound)

	seedStage(repo, internID, nil)
	resp, err := svc.GetMine(ctx, internID.String())
	assert.NoError(t, err)
	assert.Equal(t, internID.String(), resp.InternID)
}
