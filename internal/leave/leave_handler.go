package leave

import (
	"net/http"

	"github.com/sambizara/GRH-Back/internal/leavebalance"
	"github.com/sambizara/GRH-Back/internal/rbac"
	"github.com/sambizara/GRH-Back/internal/shared/apperror"
	"github.com/sambizara/GRH-Back/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	ledger  leavebalance.Ledger
	logger  *zap.Logger
}

func NewHandler(service Service, ledger leavebalance.Ledger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, ledger: ledger, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Leave request created", resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.service.GetAll(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave requests retrieved", resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	resp, err := h.service.GetMine(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave requests retrieved", resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Non-admins may only read their own requests.
	if c.GetString("role") != rbac.RoleAdminRH && resp.UserID != c.GetString("user_id") {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"You do not have permission to access this resource", nil)
		return
	}

	response.Success(c, http.StatusOK, "Leave request retrieved", resp, nil)
}

func (h *Handler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetString("user_id")

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set leave status validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	resp, err := h.service.SetStatus(ctx, actorID, id, req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave request status updated", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	requesterID := c.GetString("user_id")
	requesterRole := c.GetString("role")

	if err := h.service.Delete(ctx, id, requesterID, requesterRole); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave request deleted", gin.H{"deleted": true}, nil)
}

// GetBalances exposes the remaining entitlement per category for the
// authenticated user (or any user, for HR admins).
func (h *Handler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	if target := c.Query("user_id"); target != "" {
		if c.GetString("role") != rbac.RoleAdminRH && target != userID {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource", nil)
			return
		}
		userID = target
	}

	summary, err := h.ledger.GetRemainingAll(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Leave balances retrieved", summary, nil)
}
