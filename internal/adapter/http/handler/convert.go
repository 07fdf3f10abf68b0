package handler

import (
	"time"

	"campus-access-gateway/internal/adapter/http/dto"
	"campus-access-gateway/internal/core/domain"
)

// rupees converts paise to a rupee amount for response bodies.
func rupees(paise int64) float64 {
	return float64(paise) / 100
}

func toTapResponse(r *domain.TapResult) dto.TapResponse {
	resp := dto.TapResponse{
		Success:          r.Success,
		Student:          r.Student,
		Service:          r.Service,
		Action:           r.Action,
		BalanceRemaining: rupees(r.BalanceRemaining),
	}
	if r.AmountDeducted != nil {
		amount := rupees(*r.AmountDeducted)
		resp.AmountDeducted = &amount
	}
	return resp
}

func toIdentityResponse(i *domain.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:            i.ID,
		Name:          i.Name,
		RollNo:        i.RollNo,
		CardUID:       i.CardUID,
		WalletBalance: rupees(i.WalletBalance),
		Status:        string(i.Status),
	}
}

func toTransactionResponse(t *domain.TransactionWithName) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID,
		Student:   t.IdentityName,
		Service:   domain.DisplayService(t.Service),
		Amount:    rupees(t.Amount),
		Timestamp: t.Timestamp.UTC().Format(time.RFC3339),
	}
}

func toPolicyResponse(p *domain.Policy) dto.PolicyResponse {
	return dto.PolicyResponse{
		Service:         domain.DisplayService(p.Service),
		Cost:            rupees(p.Cost),
		RequiresPayment: p.RequiresPayment,
	}
}
