package stage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sambizara/GRH-Back/internal/notification"
	"github.com/sambizara/GRH-Back/internal/rbac"
	stageerrors "github.com/sambizara/GRH-Back/internal/stage/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultProposalMonths sizes the auto-matcher's proposed window when the
// intern profile carries no internship dates.
const defaultProposalMonths = 6

//go:generate mockgen -source=stage_service.go -destination=mock/stage_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStageRequest) (StageResponse, error)
	AutoMatch(ctx context.Context, internID string) (int, error)
	AssignMentor(ctx context.Context, id string, req AssignMentorRequest) (StageResponse, error)
	Confirm(ctx context.Context, mentorID, id string, req ConfirmStageRequest) (StageResponse, error)
	Reject(ctx context.Context, mentorID, id string, req RejectStageRequest) (StageResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]StageResponse, error)
	GetByID(ctx context.Context, id string) (StageResponse, error)
	GetMine(ctx context.Context, internID string) (StageResponse, error)
	GetMentored(ctx context.Context, mentorID string) ([]StageResponse, error)
	GetPendingForMentor(ctx context.Context, mentorID string) ([]StageResponse, error)
	GetDecisionHistory(ctx context.Context, mentorID string) ([]StageResponse, error)
	GetUnassigned(ctx context.Context) ([]StageResponse, error)
	Update(ctx context.Context, id string, req UpdateStageRequest) (StageResponse, error)
	SetStatus(ctx context.Context, id string, req SetStageStatusRequest) (StageResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	notifier notification.Service
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier notification.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("stage.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stage.service")
	}
	return &service{repo: repo, notifier: notifier, logger: l, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateStageRequest) (StageResponse, error) {
	internUUID, err := uuid.Parse(req.InternID)
	if err != nil {
		return StageResponse{}, stageerrors.ErrInvalidUserID
	}

	intern, err := s.repo.FindPerson(ctx, req.InternID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StageResponse{}, stageerrors.ErrInternNotFound
		}
		return StageResponse{}, err
	}
	if intern.Role != rbac.RoleStagiaire {
		return StageResponse{}, stageerrors.ErrNotAnIntern
	}

	var mentorUUID *uuid.UUID
	var mentor *Person
	if req.MentorID != nil && *req.MentorID != "" {
		mentor, err = s.lookupMentor(ctx, *req.MentorID)
		if err != nil {
			return StageResponse{}, err
		}
		mentorUUID = &mentor.ID
	}

	busy, err := s.repo.HasActiveByIntern(ctx, req.InternID)
	if err != nil {
		return StageResponse{}, err
	}
	if busy {
		return StageResponse{}, stageerrors.ErrInternAlreadyAssigned
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return StageResponse{}, err
	}

	st := &Stage{
		ID:             uuid.New(),
		InternID:       internUUID,
		MentorID:       mentorUUID,
		Subject:        req.Subject,
		StartDate:      start,
		EndDate:        end,
		Status:         StatusPending,
		MentorDecision: DecisionPending,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		s.logger.Error("create stage persist failed", zap.Error(err))
		return StageResponse{}, err
	}

	if mentor != nil && s.notifier != nil {
		s.notifier.Notify(ctx, mentor.ID.String(), notification.CategoryStage,
			"New intern to confirm",
			fmt.Sprintf("Intern %s %s has been assigned to you. Please confirm or reject the assignment.",
				intern.FirstName, intern.LastName))
	}

	s.logger.Info("create stage success",
		zap.String("stage_id", st.ID.String()),
		zap.String("intern_id", req.InternID),
	)
	return mapToResponse(*st), nil
}

// AutoMatch proposes the intern to every active employee whose contract
// position matches the intern's field, and notifies each of them. It returns
// the number of proposals created.
func (s *service) AutoMatch(ctx context.Context, internID string) (int, error) {
	internUUID, err := uuid.Parse(internID)
	if err != nil {
		return 0, stageerrors.ErrInvalidUserID
	}

	profile, err := s.repo.FindInternProfile(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, stageerrors.ErrInternNotFound
		}
		return 0, err
	}
	if profile.Role != rbac.RoleStagiaire {
		return 0, stageerrors.ErrNotAnIntern
	}

	candidates, err := s.repo.FindMentorCandidates(ctx, profile.Field)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		s.logger.Info("auto-match found no candidates",
			zap.String("intern_id", internID),
			zap.String("field", profile.Field),
		)
		return 0, nil
	}

	start, end := s.proposalWindow(profile)
	subject := fmt.Sprintf("%s internship - %s", profile.Field, profile.School)

	for _, candidate := range candidates {
		mentorID := candidate.ID
		st := &Stage{
			ID:             uuid.New(),
			InternID:       internUUID,
			MentorID:       &mentorID,
			Subject:        subject,
			StartDate:      start,
			EndDate:        end,
			Status:         StatusProposed,
			MentorDecision: DecisionPending,
		}
		if err := s.repo.Create(ctx, st); err != nil {
			s.logger.Error("auto-match proposal persist failed",
				zap.String("mentor_id", mentorID.String()),
				zap.Error(err),
			)
			return 0, err
		}

		if s.notifier != nil {
			s.notifier.Notify(ctx, mentorID.String(), notification.CategoryStage,
				"New intern proposed",
				fmt.Sprintf("Intern %s %s (%s, %s) has been proposed for your team.",
					profile.FirstName, profile.LastName, profile.Field, profile.School))
		}
	}

	s.logger.Info("auto-match success",
		zap.String("intern_id", internID),
		zap.Int("proposals", len(candidates)),
	)
	return len(candidates), nil
}

func (s *service) AssignMentor(ctx context.Context, id string, req AssignMentorRequest) (StageResponse, error) {
	st, err := s.findStage(ctx, id)
	if err != nil {
		return StageResponse{}, err
	}

	mentor, err := s.lookupMentor(ctx, req.MentorID)
	if err != nil {
		return StageResponse{}, err
	}
	if st.MentorID != nil && *st.MentorID == mentor.ID {
		return StageResponse{}, stageerrors.ErrMentorAlreadyAssigned
	}

	// Reassignment restarts the confirmation cycle.
	st.MentorID = &mentor.ID
	st.Status = StatusPending
	st.MentorDecision = DecisionPending
	st.MentorDecidedAt = nil
	st.RejectReason = ""
	st.MentorComments = ""

	if err := s.repo.Update(ctx, st); err != nil {
		s.logger.Error("assign mentor persist failed", zap.String("stage_id", id), zap.Error(err))
		return StageResponse{}, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, mentor.ID.String(), notification.CategoryStage,
			"New intern to confirm",
			"A new intern has been assigned to you. Please confirm or reject the assignment.")
	}

	s.logger.Info("assign mentor success",
		zap.String("stage_id", id),
		zap.String("mentor_id", mentor.ID.String()),
	)
	return mapToResponse(*st), nil
}

// Confirm records the mentor's acceptance. Only the assigned mentor may
// confirm, and only while the decision is still pending.
func (s *service) Confirm(ctx context.Context, mentorID, id string, req ConfirmStageRequest) (StageResponse, error) {
	st, err := s.stageForMentor(ctx, mentorID, id)
	if err != nil {
		return StageResponse{}, err
	}

	now := s.now().UTC()
	st.MentorDecision = DecisionConfirmed
	st.MentorDecidedAt = &now
	st.MentorComments = req.Comments
	st.Status = StatusConfirmed
	if req.Subject != nil && strings.TrimSpace(*req.Subject) != "" {
		st.Subject = *req.Subject
	}
	if len(req.Objectives) > 0 {
		st.Objectives = req.Objectives
	}

	if err := s.repo.Update(ctx, st); err != nil {
		s.logger.Error("confirm stage persist failed", zap.String("stage_id", id), zap.Error(err))
		return StageResponse{}, err
	}

	s.notifyIntern(ctx, st, "Internship confirmed",
		fmt.Sprintf("Your internship %q has been confirmed by your mentor.", st.Subject))

	s.logger.Info("confirm stage success", zap.String("stage_id", id))
	return mapToResponse(*st), nil
}

// Reject records the mentor's refusal. The intern and every HR admin are
// notified so the intern can be re-matched.
func (s *service) Reject(ctx context.Context, mentorID, id string, req RejectStageRequest) (StageResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return StageResponse{}, stageerrors.ErrRejectReasonRequired
	}

	st, err := s.stageForMentor(ctx, mentorID, id)
	if err != nil {
		return StageResponse{}, err
	}

	now := s.now().UTC()
	st.MentorDecision = DecisionRejected
	st.MentorDecidedAt = &now
	st.RejectReason = req.Reason
	st.MentorComments = req.Comments
	st.Status = StatusRejected

	if err := s.repo.Update(ctx, st); err != nil {
		s.logger.Error("reject stage persist failed", zap.String("stage_id", id), zap.Error(err))
		return StageResponse{}, err
	}

	s.notifyIntern(ctx, st, "Internship assignment rejected",
		fmt.Sprintf("Your internship assignment was rejected by the mentor. Reason: %s", req.Reason))

	if s.notifier != nil {
		adminIDs, err := s.repo.AdminIDs(ctx)
		if err != nil {
			s.logger.Warn("admin lookup for rejection notice failed", zap.Error(err))
		}
		for _, adminID := range adminIDs {
			s.notifier.Notify(ctx, adminID, notification.CategoryStage,
				"Internship assignment rejected",
				fmt.Sprintf("The internship %q was rejected by its mentor. Reason: %s",
					st.Subject, req.Reason))
		}
	}

	s.logger.Info("reject stage success", zap.String("stage_id", id))
	return mapToResponse(*st), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]StageResponse, error) {
	stages, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(stages), nil
}

func (s *service) GetByID(ctx context.Context, id string) (StageResponse, error) {
	st, err := s.findStage(ctx, id)
	if err != nil {
		return StageResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) GetMine(ctx context.Context, internID string) (StageResponse, error) {
	st, err := s.repo.FindOneByIntern(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StageResponse{}, stageerrors.ErrStageNotFound
		}
		return StageResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) GetMentored(ctx context.Context, mentorID string) ([]StageResponse, error) {
	stages, err := s.repo.FindByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(stages), nil
}

func (s *service) GetPendingForMentor(ctx context.Context, mentorID string) ([]StageResponse, error) {
	stages, err := s.repo.FindPendingByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(stages), nil
}

func (s *service) GetDecisionHistory(ctx context.Context, mentorID string) ([]StageResponse, error) {
	stages, err := s.repo.FindDecidedByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(stages), nil
}

func (s *service) GetUnassigned(ctx context.Context) ([]StageResponse, error) {
	stages, err := s.repo.FindUnassigned(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(stages), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStageRequest) (StageResponse, error) {
	st, err := s.findStage(ctx, id)
	if err != nil {
		return StageResponse{}, err
	}

	if req.Subject != nil && strings.TrimSpace(*req.Subject) != "" {
		st.Subject = *req.Subject
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return StageResponse{}, err
		}
		st.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return StageResponse{}, err
		}
		st.EndDate = end
	}
	if !st.EndDate.After(st.StartDate) {
		return StageResponse{}, stageerrors.ErrInvalidDateRange
	}

	if err := s.repo.Update(ctx, st); err != nil {
		s.logger.Error("update stage persist failed", zap.String("stage_id", id), zap.Error(err))
		return StageResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) SetStatus(ctx context.Context, id string, req SetStageStatusRequest) (StageResponse, error) {
	if !IsValidStatus(req.Status) {
		return StageResponse{}, stageerrors.ErrInvalidStatus
	}

	st, err := s.findStage(ctx, id)
	if err != nil {
		return StageResponse{}, err
	}

	st.Status = req.Status
	if err := s.repo.Update(ctx, st); err != nil {
		s.logger.Error("set stage status persist failed", zap.String("stage_id", id), zap.Error(err))
		return StageResponse{}, err
	}

	if req.Status == StatusCompleted {
		s.notifyIntern(ctx, st, "Internship completed",
			fmt.Sprintf("Your internship %q has been marked as completed.", st.Subject))
	}

	s.logger.Info("set stage status success",
		zap.String("stage_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*st), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findStage(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete stage persist failed", zap.String("stage_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete stage success", zap.String("stage_id", id))
	return nil
}

func (s *service) findStage(ctx context.Context, id string) (*Stage, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stageerrors.ErrStageNotFound
		}
		return nil, err
	}
	return st, nil
}

// stageForMentor loads a stage and checks that mentorID is its assigned
// mentor with a decision still pending.
func (s *service) stageForMentor(ctx context.Context, mentorID, id string) (*Stage, error) {
	mentorUUID, err := uuid.Parse(mentorID)
	if err != nil {
		return nil, stageerrors.ErrInvalidUserID
	}
	st, err := s.findStage(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.MentorID == nil || *st.MentorID != mentorUUID {
		return nil, stageerrors.ErrNotStageMentor
	}
	if st.MentorDecision != DecisionPending {
		return nil, stageerrors.ErrAlreadyDecided
	}
	return st, nil
}

func (s *service) lookupMentor(ctx context.Context, mentorID string) (*Person, error) {
	if _, err := uuid.Parse(mentorID); err != nil {
		return nil, stageerrors.ErrInvalidUserID
	}
	mentor, err := s.repo.FindPerson(ctx, mentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stageerrors.ErrMentorNotFound
		}
		return nil, err
	}
	if mentor.Role != rbac.RoleSalarie {
		return nil, stageerrors.ErrMentorNotEmployee
	}
	return mentor, nil
}

func (s *service) notifyIntern(ctx context.Context, st *Stage, title, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, st.InternID.String(), notification.CategoryStage, title, message)
}

func (s *service) proposalWindow(profile *InternProfile) (time.Time, time.Time) {
	if profile.InternshipStart != nil && profile.InternshipEnd != nil &&
		profile.InternshipEnd.After(*profile.InternshipStart) {
		return *profile.InternshipStart, *profile.InternshipEnd
	}
	start := s.now().UTC().Truncate(24 * time.Hour)
	return start, start.AddDate(0, defaultProposalMonths, 0)
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, stageerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, stageerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(st Stage) StageResponse {
	resp := StageResponse{
		ID:             st.ID.String(),
		InternID:       st.InternID.String(),
		Subject:        st.Subject,
		StartDate:      st.StartDate.Format("2006-01-02"),
		EndDate:        st.EndDate.Format("2006-01-02"),
		Status:         st.Status,
		MentorDecision: st.MentorDecision,
		RejectReason:   st.RejectReason,
		MentorComments: st.MentorComments,
		Objectives:     st.Objectives,
		Descriptions:   st.Descriptions,
		CreatedAt:      st.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if st.MentorID != nil {
		v := st.MentorID.String()
		resp.MentorID = &v
	}
	if st.MentorDecidedAt != nil {
		v := st.MentorDecidedAt.Format(time.RFC3339)
		resp.MentorDecidedAt = &v
	}
	return resp
}

func mapToListResponse(stages []Stage) []StageResponse {
	resp := make([]StageResponse, len(stages))
	for i, st := range stages {
		resp[i] = mapToResponse(st)
	}
	return resp
}
