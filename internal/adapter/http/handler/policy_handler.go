package handler

import (
	"campus-access-gateway/internal/adapter/http/dto"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// PolicyHandler handles policy read endpoints.
type PolicyHandler struct {
	policySvc ports.PolicyService
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(policySvc ports.PolicyService) *PolicyHandler {
	return &PolicyHandler{policySvc: policySvc}
}

// ListPolicies handles GET /api/v1/policies.
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	policies, err := h.policySvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.PolicyResponse, 0, len(policies))
	for i := range policies {
		out = append(out, toPolicyResponse(&policies[i]))
	}
	response.OK(c, out)
}
