package contract

import (
	"context"
	"database/sql"
	"testing"
	"time"

	contracterrors "github.com/sambizara/GRH-Back/internal/contract/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	CreateFn                func(ctx context.Context, c *Contract) error
	FindAllFn               func(ctx context.Context, filter ListFilter) ([]Contract, error)
	FindAllByUserFn         func(ctx context.Context, userID string) ([]Contract, error)
	FindByIDFn              func(ctx context.Context, id string) (*Contract, error)
	UpdateFn                func(ctx context.Context, c *Contract) error
	FindOverlappingActiveFn func(ctx context.Context, userID string, start time.Time, end *time.Time, excludeID string) ([]Contract, error)
	FindExpiringBetweenFn   func(ctx context.Context, from, to time.Time) ([]Contract, error)
	AppendRenewalRecordFn   func(ctx context.Context, record *RenewalRecord) error
	UserExistsFn            func(ctx context.Context, userID string) (bool, error)
	DepartmentExistsFn      func(ctx context.Context, departmentID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, c *Contract) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, c)
}

func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]Contract, error) {
	return f.FindAllFn(ctx, filter)
}

func (f *fakeRepo) FindAllByUser(ctx context.Context, userID string) ([]Contract, error) {
	return f.FindAllByUserFn(ctx, userID)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Contract, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, c *Contract) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, c)
}

func (f *fakeRepo) FindOverlappingActive(ctx context.Context, userID string, start time.Time, end *time.Time, excludeID string) ([]Contract, error) {
	if f.FindOverlappingActiveFn == nil {
		return nil, nil
	}
	return f.FindOverlappingActiveFn(ctx, userID, start, end, excludeID)
}

func (f *fakeRepo) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]Contract, error) {
	return f.FindExpiringBetweenFn(ctx, from, to)
}

func (f *fakeRepo) AppendRenewalRecord(ctx context.Context, record *RenewalRecord) error {
	if f.AppendRenewalRecordFn == nil {
		return nil
	}
	return f.AppendRenewalRecordFn(ctx, record)
}

func (f *fakeRepo) UserExists(ctx context.Context, userID string) (bool, error) {
	if f.UserExistsFn == nil {
		return true, nil
	}
	return f.UserExistsFn(ctx, userID)
}

func (f *fakeRepo) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	if f.DepartmentExistsFn == nil {
		return true, nil
	}
	return f.DepartmentExistsFn(ctx, departmentID)
}

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func validCreateRequest() CreateContractRequest {
	return CreateContractRequest{
		UserID:       uuid.New().String(),
		Type:         TypeCDD,
		StartDate:    "2026-01-01",
		EndDate:      strPtr("2026-12-31"),
		Salary:       floatPtr(2800),
		Position:     strPtr("Backend Developer"),
		DepartmentID: uuid.New().String(),
	}
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New().String()

	newService := func(repo *fakeRepo) Service {
		return NewService(nil, repo)
	}

	t.Run("fixed-term contract requires an end date", func(t *testing.T) {
		req := validCreateRequest()
		req.EndDate = nil

		_, err := newService(&fakeRepo{}).Create(ctx, creatorID, req)

		assert.ErrorIs(t, err, contracterrors.ErrEndDateRequired)
	})

	t.Run("permanent contract needs no end date", func(t *testing.T) {
		req := validCreateRequest()
		req.Type = TypeCDI
		req.EndDate = nil

		resp, err := newService(&fakeRepo{}).Create(ctx, creatorID, req)

		assert.NoError(t, err)
		assert.Nil(t, resp.EndDate)
		assert.Equal(t, StatusActive, resp.Status)
	})

	t.Run("internship forbids a salary", func(t *testing.T) {
		req := validCreateRequest()
		req.Type = TypeStage

		_, err := newService(&fakeRepo{}).Create(ctx, creatorID, req)

		assert.ErrorIs(t, err, contracterrors.ErrSalaryForbiddenForStage)
	})

	t.Run("internship needs neither salary nor position", func(t *testing.T) {
		req := validCreateRequest()
		req.Type = TypeStage
		req.Salary = nil
		req.Position = nil

		_, err := newService(&fakeRepo{}).Create(ctx, creatorID, req)

		assert.NoError(t, err)
	})

	t.Run("salary required otherwise", func(t *testing.T) {
		req := validCreateRequest()
		req.Salary = nil

		_, err := newService(&fakeRepo{}).Create(ctx, creatorID, req)

		assert.ErrorIs(t, err, contracterrors.ErrSalaryRequired)
	})

	t.Run("position required otherwise", func(t *testing.T) {
		req := validCreateRequest()
		req.Position = strPtr("")

		_, err := newService(&fakeRepo{}).Create(ctx, creatorID, req)

		assert.ErrorIs(t, err, contracterrors.ErrPositionRequired)
	})

	t.Run("end date must come after start date", func(t *testing.T) {
		req := validCreateRequest()
		req.EndDate = strPtr("2026-01-01")

		_, err := newService(&fakeRepo{}).Create(ctx, creatorID, req)

		assert.ErrorIs(t, err, contracterrors.ErrInvalidDateRange)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeRepo{
			UserExistsFn: func(ctx context.Context, userID string) (bool, error) { return false, nil },
		}

		_, err := newService(repo).Create(ctx, creatorID, validCreateRequest())

		assert.ErrorIs(t, err, contracterrors.ErrUserNotFound)
	})

	t.Run("overlapping active contract", func(t *testing.T) {
		repo := &fakeRepo{
			FindOverlappingActiveFn: func(ctx context.Context, userID string, start time.Time, end *time.Time, excludeID string) ([]Contract, error) {
				return []Contract{{ID: uuid.New()}}, nil
			},
		}

		_, err := newService(repo).Create(ctx, creatorID, validCreateRequest())

		assert.ErrorIs(t, err, contracterrors.ErrContractOverlap)
	})

	t.Run("success persists an active contract", func(t *testing.T) {
		var created *Contract
		repo := &fakeRepo{
			CreateFn: func(ctx context.Context, c *Contract) error {
				created = c
				return nil
			},
		}
		req := validCreateRequest()

		resp, err := newService(repo).Create(ctx, creatorID, req)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, StatusActive, created.Status)
		assert.True(t, created.Active)
		assert.Equal(t, creatorID, created.CreatedBy.String())
		assert.Equal(t, req.UserID, resp.UserID)
		assert.False(t, resp.IsRenewal)
	})
}

func TestService_UpdateClearsEndDateForPermanent(t *testing.T) {
	ctx := context.Background()
	end := day("2026-12-31")
	existing := Contract{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Type:         TypeCDD,
		StartDate:    day("2026-01-01"),
		EndDate:      &end,
		Status:       StatusActive,
		Salary:       floatPtr(2800),
		Position:     strPtr("Backend Developer"),
		DepartmentID: uuid.New(),
		Active:       true,
	}
	var updated *Contract
	repo := &fakeRepo{
		FindByIDFn: func(ctx context.Context, id string) (*Contract, error) {
			clone := existing
			return &clone, nil
		},
		UpdateFn: func(ctx context.Context, c *Contract) error {
			updated = c
			return nil
		},
	}
	svc := NewService(nil, repo)

	resp, err := svc.Update(ctx, existing.ID.String(), UpdateContractRequest{Type: strPtr(TypeCDI)})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Nil(t, updated.EndDate)
	assert.Nil(t, resp.EndDate)
	assert.Equal(t, TypeCDI, resp.Type)
}

func TestService_Renew(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	end := day("2026-12-31")
	position := strPtr("Backend Developer")
	old := Contract{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Type:         TypeCDD,
		StartDate:    day("2026-01-01"),
		EndDate:      &end,
		Status:       StatusActive,
		Salary:       floatPtr(2800),
		Position:     position,
		DepartmentID: uuid.New(),
		Active:       true,
	}

	t.Run("permanent contract cannot be renewed", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		cdi := old
		cdi.Type = TypeCDI
		cdi.EndDate = nil
		repo := &fakeRepo{
			FindByIDFn: func(ctx context.Context, id string) (*Contract, error) { return &cdi, nil },
		}

		_, err := NewService(db, repo).Renew(ctx, actorID, cdi.ID.String(), RenewContractRequest{StartDate: "2027-01-01"})

		assert.ErrorIs(t, err, contracterrors.ErrPermanentNotRenewable)
	})

	t.Run("unknown contract", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeRepo{
			FindByIDFn: func(ctx context.Context, id string) (*Contract, error) { return nil, gorm.ErrRecordNotFound },
		}

		_, err := NewService(db, repo).Renew(ctx, actorID, uuid.New().String(), RenewContractRequest{StartDate: "2027-01-01"})

		assert.ErrorIs(t, err, contracterrors.ErrContractNotFound)
	})

	t.Run("overlap excludes the contract being renewed", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		var gotExclude string
		repo := &fakeRepo{
			FindByIDFn: func(ctx context.Context, id string) (*Contract, error) {
				clone := old
				return &clone, nil
			},
			FindOverlappingActiveFn: func(ctx context.Context, userID string, start time.Time, end *time.Time, excludeID string) ([]Contract, error) {
				gotExclude = excludeID
				return []Contract{{ID: uuid.New()}}, nil
			},
		}

		_, err := NewService(db, repo).Renew(ctx, actorID, old.ID.String(), RenewContractRequest{
			StartDate: "2027-01-01",
			EndDate:   strPtr("2027-12-31"),
		})

		assert.ErrorIs(t, err, contracterrors.ErrContractOverlap)
		assert.Equal(t, old.ID.String(), gotExclude)
	})

	t.Run("success terminates the old and links the new", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		var terminated *Contract
		var created *Contract
		var record *RenewalRecord
		repo := &fakeRepo{
			FindByIDFn: func(ctx context.Context, id string) (*Contract, error) {
				clone := old
				return &clone, nil
			},
			UpdateFn: func(ctx context.Context, c *Contract) error {
				terminated = c
				return nil
			},
			CreateFn: func(ctx context.Context, c *Contract) error {
				created = c
				return nil
			},
			AppendRenewalRecordFn: func(ctx context.Context, r *RenewalRecord) error {
				record = r
				return nil
			},
		}

		resp, err := NewService(db, repo).Renew(ctx, actorID, old.ID.String(), RenewContractRequest{
			StartDate: "2027-01-01",
			EndDate:   strPtr("2027-12-31"),
			Reason:    "extension after project renewal",
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusTerminated, terminated.Status)
		assert.True(t, created.IsRenewal)
		assert.NotNil(t, created.PreviousContractID)
		assert.Equal(t, old.ID, *created.PreviousContractID)
		// Unset fields carry over from the old contract.
		assert.Equal(t, TypeCDD, created.Type)
		assert.Equal(t, old.Salary, created.Salary)
		assert.Equal(t, position, created.Position)
		assert.Equal(t, old.DepartmentID, created.DepartmentID)
		assert.Equal(t, old.ID, record.OldContractID)
		assert.Equal(t, created.ID, record.NewContractID)
		assert.Equal(t, StatusTerminated, resp.Old.Status)
		assert.Equal(t, StatusActive, resp.New.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEvaluateRenewability(t *testing.T) {
	now := day("2026-03-02")
	end := day("2026-06-30")
	past := day("2026-01-31")

	tests := []struct {
		name   string
		c      Contract
		want   bool
		reason string
	}{
		{
			name:   "permanent contract",
			c:      Contract{Type: TypeCDI, Status: StatusActive},
			want:   false,
			reason: ReasonPermanent,
		},
		{
			name:   "terminated contract",
			c:      Contract{Type: TypeCDD, Status: StatusTerminated, EndDate: &end},
			want:   false,
			reason: ReasonNotActive,
		},
		{
			name:   "expired contract",
			c:      Contract{Type: TypeCDD, Status: StatusActive, EndDate: &past},
			want:   false,
			reason: ReasonAlreadyExpired,
		},
		{
			name: "active fixed-term contract",
			c:    Contract{Type: TypeCDD, Status: StatusActive, EndDate: &end},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluateRenewability(&tt.c, now)
			assert.Equal(t, tt.want, got.CanRenew)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestService_DeleteIsSoft(t *testing.T) {
	ctx := context.Background()
	existing := Contract{
		ID:     uuid.New(),
		Type:   TypeCDD,
		Status: StatusActive,
		Active: true,
	}
	var updated *Contract
	repo := &fakeRepo{
		FindByIDFn: func(ctx context.Context, id string) (*Contract, error) {
			clone := existing
			return &clone, nil
		},
		UpdateFn: func(ctx context.Context, c *Contract) error {
			updated = c
			return nil
		},
	}

	err := NewService(nil, repo).Delete(ctx, existing.ID.String())

	assert.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, StatusTerminated, updated.Status)
}
