package handler

import (
	"movie-wallet/internal/adapter/http/dto"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the wallet page summary.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetDashboard handles GET /api/v1/users/:id/dashboard.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	dashboard, err := h.reportingSvc.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToDashboardResponse(dashboard))
}
