package contract

import (
	"net/http"
	"time"

	"github.com/sambizara/GRH-Back/internal/rbac"
	"github.com/sambizara/GRH-Back/internal/shared/apperror"
	"github.com/sambizara/GRH-Back/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	scanner ExpirationScanner
	logger  *zap.Logger
}

func NewHandler(service Service, scanner ExpirationScanner, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("contract.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.handler")
	}
	return &Handler{service: service, scanner: scanner, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("contract request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	creatorID := c.GetString("user_id")

	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create contract validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), creatorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Contract created", resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	filter := ListFilter{
		UserID:       c.Query("user_id"),
		Type:         c.Query("type"),
		Status:       c.Query("status"),
		DepartmentID: c.Query("department_id"),
		ActiveOnly:   c.Query("include_inactive") != "true",
	}

	resp, err := h.service.GetAll(ctx, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Contracts retrieved", resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	resp, err := h.service.GetMine(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Contracts retrieved", resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Non-admins may only read their own contracts.
	if c.GetString("role") != rbac.RoleAdminRH && resp.UserID != c.GetString("user_id") {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"You do not have permission to access this resource", nil)
		return
	}

	response.Success(c, http.StatusOK, "Contract retrieved", resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update contract validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Contract updated", resp, nil)
}

func (h *Handler) Renew(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetString("user_id")

	var req RenewContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http renew contract validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.Renew(ctx, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Contract renewed", resp, nil)
}

func (h *Handler) CanRenew(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.service.CanRenew(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Renewal eligibility evaluated", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Contract deactivated", gin.H{"deleted": true}, nil)
}

// GetExpiring runs the scanner on demand, optionally enqueueing the expiry
// notifications when ?notify=true.
func (h *Handler) GetExpiring(c *gin.Context) {
	ctx := c.Request.Context()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var (
		buckets ExpiringContracts
		err     error
	)
	if c.Query("notify") == "true" {
		buckets, err = h.scanner.CheckAndNotify(ctx, today)
	} else {
		buckets, err = h.scanner.ClassifyExpiring(ctx, today)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Expiring contracts retrieved", buckets, nil)
}

func (h *Handler) GetExpirationStats(c *gin.Context) {
	ctx := c.Request.Context()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	stats, err := h.scanner.Stats(ctx, today)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Expiration statistics retrieved", stats, nil)
}
