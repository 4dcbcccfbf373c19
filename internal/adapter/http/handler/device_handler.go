package handler

import (
	"errors"
	"io"

	"movie-wallet/internal/adapter/http/dto"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// DeviceHandler records and lists synthetic device fingerprints.
type DeviceHandler struct {
	deviceSvc ports.DeviceService
}

func NewDeviceHandler(deviceSvc ports.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceSvc: deviceSvc}
}

// Ping handles POST /api/v1/devices/ping. The body is optional.
func (h *DeviceHandler) Ping(c *gin.Context) {
	var req dto.DevicePingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	device, err := h.deviceSvc.Ping(c.Request.Context(), ports.DevicePingRequest{
		UserAgent: c.Request.UserAgent(),
		Owner:     req.Owner,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToDeviceResponse(device))
}

// List handles GET /api/v1/devices.
func (h *DeviceHandler) List(c *gin.Context) {
	devices, err := h.deviceSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.DeviceResponse, 0, len(devices))
	for i := range devices {
		items = append(items, dto.ToDeviceResponse(&devices[i]))
	}
	response.OK(c, items)
}
