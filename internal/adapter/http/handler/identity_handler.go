package handler

import (
	"campus-access-gateway/internal/adapter/http/dto"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// IdentityHandler handles identity read endpoints.
type IdentityHandler struct {
	reportingSvc ports.ReportingService
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(reportingSvc ports.ReportingService) *IdentityHandler {
	return &IdentityHandler{reportingSvc: reportingSvc}
}

// ListIdentities handles GET /api/v1/identities.
func (h *IdentityHandler) ListIdentities(c *gin.Context) {
	identities, err := h.reportingSvc.ListIdentities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.IdentityResponse, 0, len(identities))
	for i := range identities {
		out = append(out, toIdentityResponse(&identities[i]))
	}
	response.OK(c, out)
}

// GetIdentity handles GET /api/v1/identities/:card_uid.
func (h *IdentityHandler) GetIdentity(c *gin.Context) {
	identity, err := h.reportingSvc.GetIdentity(c.Request.Context(), c.Param("card_uid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toIdentityResponse(identity))
}
