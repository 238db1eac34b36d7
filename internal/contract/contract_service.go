package contract

import (
	"context"
	"database/sql"
	"errors"
	"time"

	contracterrors "github.com/sambizara/GRH-Back/internal/contract/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CanRenew reason strings, surfaced verbatim to the client.
const (
	ReasonPermanent      = "a permanent (CDI) contract cannot be renewed"
	ReasonNotActive      = "only an active contract can be renewed"
	ReasonAlreadyExpired = "the contract has already expired"
)

//go:generate mockgen -source=contract_service.go -destination=mock/contract_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, creatorID string, req CreateContractRequest) (ContractResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]ContractResponse, error)
	GetMine(ctx context.Context, userID string) ([]ContractResponse, error)
	GetByID(ctx context.Context, id string) (ContractResponse, error)
	Update(ctx context.Context, id string, req UpdateContractRequest) (ContractResponse, error)
	Renew(ctx context.Context, actorID, oldID string, req RenewContractRequest) (RenewalResponse, error)
	CanRenew(ctx context.Context, id string) (CanRenewResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("contract.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, creatorID string, req CreateContractRequest) (ContractResponse, error) {
	s.logger.Debug("create contract requested",
		zap.String("user_id", req.UserID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
	)

	creatorUUID, err := uuid.Parse(creatorID)
	if err != nil {
		return ContractResponse{}, contracterrors.ErrInvalidUserID
	}
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return ContractResponse{}, contracterrors.ErrInvalidUserID
	}
	deptUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return ContractResponse{}, contracterrors.ErrInvalidDepartmentID
	}

	startDate, err := parseContractDate(req.StartDate)
	if err != nil {
		return ContractResponse{}, err
	}
	var endDate *time.Time
	if req.EndDate != nil {
		d, err := parseContractDate(*req.EndDate)
		if err != nil {
			return ContractResponse{}, err
		}
		endDate = &d
	}

	if err := validateTypeRules(req.Type, endDate, req.Salary, req.Position); err != nil {
		return ContractResponse{}, err
	}
	if endDate != nil && !endDate.After(startDate) {
		return ContractResponse{}, contracterrors.ErrInvalidDateRange
	}

	if ok, err := s.repo.UserExists(ctx, req.UserID); err != nil {
		return ContractResponse{}, err
	} else if !ok {
		return ContractResponse{}, contracterrors.ErrUserNotFound
	}
	if ok, err := s.repo.DepartmentExists(ctx, req.DepartmentID); err != nil {
		return ContractResponse{}, err
	} else if !ok {
		return ContractResponse{}, contracterrors.ErrDepartmentNotFound
	}

	overlapping, err := s.repo.FindOverlappingActive(ctx, req.UserID, startDate, endDate, "")
	if err != nil {
		return ContractResponse{}, err
	}
	if len(overlapping) > 0 {
		s.logger.Warn("create contract overlap rejected",
			zap.String("user_id", req.UserID),
			zap.String("conflicting_contract_id", overlapping[0].ID.String()),
		)
		return ContractResponse{}, contracterrors.ErrContractOverlap
	}

	c := &Contract{
		ID:           uuid.New(),
		UserID:       userUUID,
		Type:         req.Type,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       StatusActive,
		Salary:       req.Salary,
		Position:     req.Position,
		DepartmentID: deptUUID,
		Active:       true,
		CreatedBy:    creatorUUID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create contract persist failed", zap.Error(err))
		return ContractResponse{}, err
	}

	s.logger.Info("create contract success",
		zap.String("contract_id", c.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("type", c.Type),
	)
	return mapContractToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]ContractResponse, error) {
	contracts, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapContractsToResponse(contracts), nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]ContractResponse, error) {
	contracts, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapContractsToResponse(contracts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ContractResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, contracterrors.ErrContractNotFound
		}
		return ContractResponse{}, err
	}
	return mapContractToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateContractRequest) (ContractResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, contracterrors.ErrContractNotFound
		}
		return ContractResponse{}, err
	}

	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.StartDate != nil {
		d, err := parseContractDate(*req.StartDate)
		if err != nil {
			return ContractResponse{}, err
		}
		c.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseContractDate(*req.EndDate)
		if err != nil {
			return ContractResponse{}, err
		}
		c.EndDate = &d
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Salary != nil {
		c.Salary = req.Salary
	}
	if req.Position != nil {
		c.Position = req.Position
	}

	// An open-ended contract carries no end date, whatever was set before.
	if c.Type == TypeCDI {
		c.EndDate = nil
	}

	if err := validateTypeRules(c.Type, c.EndDate, c.Salary, c.Position); err != nil {
		return ContractResponse{}, err
	}
	if c.EndDate != nil && !c.EndDate.After(c.StartDate) {
		return ContractResponse{}, contracterrors.ErrInvalidDateRange
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update contract persist failed",
			zap.String("contract_id", id),
			zap.Error(err),
		)
		return ContractResponse{}, err
	}

	s.logger.Info("update contract success", zap.String("contract_id", id))
	return mapContractToResponse(*c), nil
}

// Renew terminates the old contract and opens a fresh one in a single
// transaction. Type, salary, position and department fall back to the old
// contract's values when the request leaves them unset.
func (s *service) Renew(ctx context.Context, actorID, oldID string, req RenewContractRequest) (RenewalResponse, error) {
	s.logger.Debug("renew contract requested",
		zap.String("contract_id", oldID),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RenewalResponse{}, contracterrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("renew contract begin tx failed", zap.Error(err))
		return RenewalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	old, err := qtx.FindByID(ctx, oldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RenewalResponse{}, contracterrors.ErrContractNotFound
		}
		return RenewalResponse{}, err
	}
	if old.Type == TypeCDI {
		return RenewalResponse{}, contracterrors.ErrPermanentNotRenewable
	}

	startDate, err := parseContractDate(req.StartDate)
	if err != nil {
		return RenewalResponse{}, err
	}
	var endDate *time.Time
	if req.EndDate != nil {
		d, err := parseContractDate(*req.EndDate)
		if err != nil {
			return RenewalResponse{}, err
		}
		endDate = &d
	}

	newType := old.Type
	if req.Type != nil {
		newType = *req.Type
	}
	salary := old.Salary
	if req.Salary != nil {
		salary = req.Salary
	}
	position := old.Position
	if req.Position != nil {
		position = req.Position
	}

	if err := validateTypeRules(newType, endDate, salary, position); err != nil {
		return RenewalResponse{}, err
	}
	if endDate != nil && !endDate.After(startDate) {
		return RenewalResponse{}, contracterrors.ErrInvalidDateRange
	}

	overlapping, err := qtx.FindOverlappingActive(ctx, old.UserID.String(), startDate, endDate, oldID)
	if err != nil {
		return RenewalResponse{}, err
	}
	if len(overlapping) > 0 {
		return RenewalResponse{}, contracterrors.ErrContractOverlap
	}

	old.Status = StatusTerminated
	if err := qtx.Update(ctx, old); err != nil {
		s.logger.Error("renew contract terminate old failed",
			zap.String("contract_id", oldID),
			zap.Error(err),
		)
		return RenewalResponse{}, err
	}

	oldUUID := old.ID
	reason := req.Reason
	renewed := &Contract{
		ID:                 uuid.New(),
		UserID:             old.UserID,
		Type:               newType,
		StartDate:          startDate,
		EndDate:            endDate,
		Status:             StatusActive,
		Salary:             salary,
		Position:           position,
		DepartmentID:       old.DepartmentID,
		IsRenewal:          true,
		PreviousContractID: &oldUUID,
		Active:             true,
		CreatedBy:          actorUUID,
	}
	if reason != "" {
		renewed.RenewalReason = &reason
	}
	if err := qtx.Create(ctx, renewed); err != nil {
		s.logger.Error("renew contract create new failed", zap.Error(err))
		return RenewalResponse{}, err
	}

	record := &RenewalRecord{
		ID:            uuid.New(),
		ContractID:    old.ID,
		OldContractID: old.ID,
		NewContractID: renewed.ID,
		Reason:        reason,
		RenewedAt:     time.Now().UTC(),
	}
	if err := qtx.AppendRenewalRecord(ctx, record); err != nil {
		s.logger.Error("renew contract append record failed", zap.Error(err))
		return RenewalResponse{}, err
	}
	old.RenewalHistory = append(old.RenewalHistory, *record)

	if err := tx.Commit(); err != nil {
		s.logger.Error("renew contract commit failed", zap.Error(err))
		return RenewalResponse{}, err
	}

	s.logger.Info("renew contract success",
		zap.String("old_contract_id", old.ID.String()),
		zap.String("new_contract_id", renewed.ID.String()),
		zap.String("user_id", old.UserID.String()),
	)
	return RenewalResponse{
		Old: mapContractToResponse(*old),
		New: mapContractToResponse(*renewed),
	}, nil
}

func (s *service) CanRenew(ctx context.Context, id string) (CanRenewResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CanRenewResponse{}, contracterrors.ErrContractNotFound
		}
		return CanRenewResponse{}, err
	}
	return evaluateRenewability(c, time.Now().UTC()), nil
}

func evaluateRenewability(c *Contract, now time.Time) CanRenewResponse {
	if c.Type == TypeCDI {
		return CanRenewResponse{CanRenew: false, Reason: ReasonPermanent}
	}
	if c.Status != StatusActive {
		return CanRenewResponse{CanRenew: false, Reason: ReasonNotActive}
	}
	if c.EndDate != nil && c.EndDate.Before(now) {
		return CanRenewResponse{CanRenew: false, Reason: ReasonAlreadyExpired}
	}
	return CanRenewResponse{CanRenew: true}
}

// Delete deactivates the contract instead of removing the row, so renewal
// chains keep resolving.
func (s *service) Delete(ctx context.Context, id string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contracterrors.ErrContractNotFound
		}
		return err
	}

	c.Active = false
	c.Status = StatusTerminated
	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("delete contract persist failed",
			zap.String("contract_id", id),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("delete contract success", zap.String("contract_id", id))
	return nil
}

func validateTypeRules(contractType string, endDate *time.Time, salary *float64, position *string) error {
	if contractType != TypeCDI && endDate == nil {
		return contracterrors.ErrEndDateRequired
	}
	if contractType == TypeStage {
		if salary != nil {
			return contracterrors.ErrSalaryForbiddenForStage
		}
		return nil
	}
	if salary == nil {
		return contracterrors.ErrSalaryRequired
	}
	if position == nil || *position == "" {
		return contracterrors.ErrPositionRequired
	}
	return nil
}

func parseContractDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, contracterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapContractToResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:            c.ID.String(),
		UserID:        c.UserID.String(),
		Type:          c.Type,
		StartDate:     c.StartDate.Format("2006-01-02"),
		Status:        c.Status,
		Salary:        c.Salary,
		Position:      c.Position,
		DepartmentID:  c.DepartmentID.String(),
		IsRenewal:     c.IsRenewal,
		RenewalReason: c.RenewalReason,
		Active:        c.Active,
	}
	if c.EndDate != nil {
		v := c.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	if c.PreviousContractID != nil {
		v := c.PreviousContractID.String()
		resp.PreviousContractID = &v
	}
	for _, r := range c.RenewalHistory {
		resp.RenewalHistory = append(resp.RenewalHistory, RenewalRecordResponse{
			OldContractID: r.OldContractID.String(),
			NewContractID: r.NewContractID.String(),
			Reason:        r.Reason,
			RenewedAt:     r.RenewedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func mapContractsToResponse(contracts []Contract) []ContractResponse {
	resp := make([]ContractResponse, len(contracts))
	for i, c := range contracts {
		resp[i] = mapContractToResponse(c)
	}
	return resp
}
