package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adityasinghr651/civics-api/internal/dto"
	"github.com/adityasinghr651/civics-api/internal/models"
	appErrors "github.com/adityasinghr651/civics-api/pkg/errors"
	"github.com/adityasinghr651/civics-api/pkg/response"
)

type reportService interface {
	Create(ctx context.Context, req dto.CreateReportRequest) (string, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
	Get(ctx context.Context, id string) (*models.Report, error)
	ListByReporter(ctx context.Context, email string) ([]models.Report, error)
}

// ReportHandler exposes the report endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler builds a new handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Register mounts the report routes on the given group.
func (h *ReportHandler) Register(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.POST("", h.Create)
	reports.POST("/:id/status", h.UpdateStatus)
	reports.GET("/:id", h.Get)
	reports.GET("/user/:email", h.ListByUser)
}

// Create godoc
// @Summary Submit a civic-issue report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.CreateReportRequest true "Report payload"
// @Success 201 {object} map[string]interface{}
// @Router /api/reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation,
			"Missing required fields: title, description, reporterEmail."))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": id})
}

// UpdateStatus godoc
// @Summary Update a report's status
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body dto.UpdateStatusRequest true "Status payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/reports/{id}/status [post]
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Missing required field: status."))
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, nil)
}

// Get godoc
// @Summary Fetch a single report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"report": report})
}

// ListByUser godoc
// @Summary List reports submitted by an email address
// @Tags Reports
// @Produce json
// @Param email path string true "Reporter email"
// @Success 200 {object} map[string]interface{}
// @Router /api/reports/user/{email} [get]
func (h *ReportHandler) ListByUser(c *gin.Context) {
	reports, err := h.service.ListByReporter(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"reports": reports})
}
