package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sambizara/GRH-Back/internal/rbac"
	usererrors "github.com/sambizara/GRH-Back/internal/user/errors"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context, role string) ([]User, error) { return nil, nil }

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
	return nil
}

func (f *fakeRepo) CountByRole(ctx context.Context, role string) (int64, error) { return 0, nil }

func employeePayload() *EmployeeDetailsRequest {
	return &EmployeeDetailsRequest{
		StaffNumber: "EMP-0042",
		HireDate:    "2024-09-01",
	}
}

func internPayload() *InternDetailsRequest {
	return &InternDetailsRequest{
		School:          "ESP Dakar",
		Field:           "Computer Science",
		InternshipStart: "2026-02-01",
		InternshipEnd:   "2026-07-31",
	}
}

func employeeRequest() CreateUserRequest {
	return CreateUserRequest{
		FirstName: "Moussa",
		LastName:  "Fall",
		Email:     "moussa.fall@grh.test",
		Password:  "changeme123",
		Role:      rbac.RoleSalarie,
		Employee:  employeePayload(),
	}
}

func TestService_CreateRolePayloads(t *testing.T) {
	ctx := context.Background()

	t.Run("employee with details", func(t *testing.T) {
		repo := newFakeRepo()

		resp, err := NewService(repo).Create(ctx, employeeRequest())

		assert.NoError(t, err)
		assert.Equal(t, rbac.RoleSalarie, resp.Role)
		assert.NotNil(t, resp.Employee)
		assert.Equal(t, "EMP-0042", resp.Employee.StaffNumber)
	})

	t.Run("employee without details", func(t *testing.T) {
		req := employeeRequest()
		req.Employee = nil

		_, err := NewService(newFakeRepo()).Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrEmployeeDetailsRequired)
	})

	t.Run("employee with intern details", func(t *testing.T) {
		req := employeeRequest()
		req.Intern = internPayload()

		_, err := NewService(newFakeRepo()).Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrDetailsRoleMismatch)
	})

	t.Run("intern without details", func(t *testing.T) {
		req := employeeRequest()
		req.Role = rbac.RoleStagiaire
		req.Employee = nil

		_, err := NewService(newFakeRepo()).Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrInternDetailsRequired)
	})

	t.Run("intern with details", func(t *testing.T) {
		req := employeeRequest()
		req.Role = rbac.RoleStagiaire
		req.Employee = nil
		req.Intern = internPayload()

		resp, err := NewService(newFakeRepo()).Create(ctx, req)

		assert.NoError(t, err)
		assert.NotNil(t, resp.Intern)
		assert.Equal(t, "ESP Dakar", resp.Intern.School)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		_, err := svc.Create(ctx, employeeRequest())
		assert.NoError(t, err)

		_, err = svc.Create(ctx, employeeRequest())
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		repo := newFakeRepo()
		req := employeeRequest()

		_, err := NewService(repo).Create(ctx, req)

		assert.NoError(t, err)
		stored := repo.byEmail[req.Email]
		assert.NotEqual(t, req.Password, stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.Password)))
	})
}

func TestService_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	resp, err := svc.Create(ctx, employeeRequest())
	assert.NoError(t, err)

	assert.NoError(t, svc.ToggleStatus(ctx, resp.ID, false))
	assert.False(t, repo.byID[resp.ID].IsActive)

	assert.NoError(t, svc.ToggleStatus(ctx, resp.ID, true))
	assert.True(t, repo.byID[resp.ID].IsActive)
}
