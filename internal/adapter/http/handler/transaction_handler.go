package handler

import (
	"strconv"

	"campus-access-gateway/internal/adapter/http/dto"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/pkg/apperror"
	"campus-access-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger read endpoints.
type TransactionHandler struct {
	reportingSvc ports.ReportingService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(reportingSvc ports.ReportingService) *TransactionHandler {
	return &TransactionHandler{reportingSvc: reportingSvc}
}

// ListTransactions handles GET /api/v1/transactions?limit=N.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("limit must be an integer"))
			return
		}
		limit = parsed
	}

	txns, err := h.reportingSvc.ListTransactions(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, toTransactionResponse(&txns[i]))
	}
	response.OK(c, out)
}
