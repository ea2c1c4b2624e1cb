package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/snapshot"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	service *snapshot.Service
	logger  *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service *snapshot.Service, logger *zap.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ActionResponse carries one resolved action. Action is empty when nothing
// applies; that is a successful resolution, not an error.
type ActionResponse struct {
	ReportID      string `json:"report_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Action        string `json:"action"`
}

// IngestResponse reports how many snapshot records were written
type IngestResponse struct {
	Records int `json:"records"`
}

// ExportResponse carries the path of the produced workbook
type ExportResponse struct {
	ReportID string `json:"report_id"`
	Path     string `json:"path"`
}

// accountID parses the account_id query parameter shared by the decision
// endpoints
func accountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("account_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "account_id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func (h *Handlers) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, snapshot.ErrReportNotFound),
		errors.Is(err, snapshot.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, snapshot.ErrNotExportable):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// IngestSnapshot handles POST /api/snapshot
func (h *Handlers) IngestSnapshot(c *gin.Context) {
	var bundle snapshot.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid snapshot payload",
		})
		return
	}

	records, err := h.service.IngestSnapshot(c.Request.Context(), &bundle)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    IngestResponse{Records: records},
	})
}

// GetReportPrimaryAction handles GET /api/reports/:id/primary-action
func (h *Handlers) GetReportPrimaryAction(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	reportID := c.Param("id")

	action, err := h.service.ReportPrimaryAction(c.Request.Context(), reportID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ActionResponse{ReportID: reportID, Action: action.String()},
	})
}

// GetReportPreviewAction handles GET /api/reports/:id/preview-action
func (h *Handlers) GetReportPreviewAction(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	reportID := c.Param("id")

	animationRunning := c.Query("payment_animation") == "true"
	// defaults on: only an explicit opt-out skips the terminal-state check
	checkApprovedState := c.DefaultQuery("check_approved_state", "true") != "false"

	action, err := h.service.ReportPreviewAction(c.Request.Context(), reportID, id, animationRunning, checkApprovedState)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ActionResponse{ReportID: reportID, Action: action.String()},
	})
}

// GetTransactionThreadAction handles GET /api/transactions/:id/thread-action
func (h *Handlers) GetTransactionThreadAction(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	transactionID := c.Param("id")

	action, err := h.service.TransactionThreadAction(c.Request.Context(), transactionID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ActionResponse{TransactionID: transactionID, Action: action.String()},
	})
}

// ExportReport handles POST /api/reports/:id/export
func (h *Handlers) ExportReport(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	reportID := c.Param("id")

	path, err := h.service.ExportReport(c.Request.Context(), reportID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ExportResponse{ReportID: reportID, Path: path},
	})
}
