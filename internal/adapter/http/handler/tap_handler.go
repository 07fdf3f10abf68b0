package handler

import (
	"campus-access-gateway/internal/adapter/http/dto"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/pkg/apperror"
	"campus-access-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// TapHandler handles the tap-authorization endpoint.
type TapHandler struct {
	tapSvc ports.TapService
}

// NewTapHandler creates a new TapHandler.
func NewTapHandler(tapSvc ports.TapService) *TapHandler {
	return &TapHandler{tapSvc: tapSvc}
}

// ProcessTap handles POST /api/v1/tap. Denials come back as 200s with
// success=false; error statuses are reserved for malformed requests and
// infrastructure faults.
func (h *TapHandler) ProcessTap(c *gin.Context) {
	var req dto.TapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.tapSvc.ProcessTap(c.Request.Context(), ports.TapRequest{
		CardUID: req.CardUID,
		Service: req.Service,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTapResponse(result))
}
