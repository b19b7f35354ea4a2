package dto

import (
	"time"

	"github.com/ludotheca/ludotheca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRegisterRequest defines the payload for creating a till.
type CreateRegisterRequest struct {
	Code           string          `json:"code" binding:"required,max=20"`
	Name           string          `json:"name" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// OpenSessionRequest defines the payload for opening a session.
type OpenSessionRequest struct {
	Comment string `json:"comment"`
}

// RecordMovementRequest defines the payload for recording a movement.
// Amount is always positive; the direction is carried by Type.
type RecordMovementRequest struct {
	Type          domain.MovementType  `json:"type" binding:"required,oneof=IN OUT"`
	Amount        decimal.Decimal      `json:"amount" binding:"required,decimalgt0"`
	Category      string               `json:"category" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH CHEQUE CARD TRANSFER"`
	Label         string               `json:"label"`
	ReferenceID   *string              `json:"referenceID"`
}

// CloseSessionRequest defines the payload for closing a session.
// DeclaredBalance is the physically counted closing balance.
type CloseSessionRequest struct {
	DeclaredBalance decimal.Decimal `json:"declaredBalance" binding:"required"`
	Comment         string          `json:"comment"`
}

// VoidRequest carries the audit reason for voiding a session or movement.
type VoidRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListSessionsParams defines query parameters for listing sessions.
type ListSessionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// RegisterResponse defines the data returned for a register.
type RegisterResponse struct {
	RegisterID     string          `json:"registerID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID    string                `json:"movementID"`
	Type          domain.MovementType   `json:"type"`
	Category      string                `json:"category"`
	Amount        decimal.Decimal       `json:"amount"`
	PaymentMethod domain.PaymentMethod  `json:"paymentMethod"`
	Status        domain.MovementStatus `json:"status"`
	Label         string                `json:"label"`
	VoidReason    string                `json:"voidReason,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
}

// SessionResponse defines the data returned for a session.
type SessionResponse struct {
	SessionID          string               `json:"sessionID"`
	RegisterID         string               `json:"registerID"`
	Status             domain.SessionStatus `json:"status"`
	OpenedBy           string               `json:"openedBy"`
	ClosedBy           *string              `json:"closedBy,omitempty"`
	OpeningBalance     decimal.Decimal      `json:"openingBalance"`
	TheoreticalBalance decimal.Decimal      `json:"theoreticalBalance"`
	DeclaredBalance    *decimal.Decimal     `json:"declaredBalance,omitempty"`
	Variance           *decimal.Decimal     `json:"variance,omitempty"`
	OpenedAt           time.Time            `json:"openedAt"`
	ClosedAt           *time.Time           `json:"closedAt,omitempty"`
	Movements          []MovementResponse   `json:"movements,omitempty"`
}

// ListSessionsResponse wraps a page of sessions.
type ListSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToRegisterResponse converts a domain.CashRegister to its DTO.
func ToRegisterResponse(r *domain.CashRegister) RegisterResponse {
	return RegisterResponse{
		RegisterID:     r.RegisterID,
		Code:           r.Code,
		Name:           r.Name,
		CurrentBalance: r.CurrentBalance,
		CreatedAt:      r.CreatedAt,
	}
}

// ToMovementResponse converts a domain.CashMovement to its DTO.
func ToMovementResponse(m *domain.CashMovement) MovementResponse {
	return MovementResponse{
		MovementID:    m.MovementID,
		Type:          m.Type,
		Category:      m.Category,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		Status:        m.Status,
		Label:         m.Label,
		VoidReason:    m.VoidReason,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToSessionResponse converts a domain.CashSession (with or without
// movements loaded) to its DTO.
func ToSessionResponse(s *domain.CashSession) SessionResponse {
	resp := SessionResponse{
		SessionID:          s.SessionID,
		RegisterID:         s.RegisterID,
		Status:             s.Status,
		OpenedBy:           s.OpenedBy,
		ClosedBy:           s.ClosedBy,
		OpeningBalance:     s.OpeningBalance,
		TheoreticalBalance: s.TheoreticalBalance,
		DeclaredBalance:    s.DeclaredBalance,
		Variance:           s.Variance,
		OpenedAt:           s.OpenedAt,
		ClosedAt:           s.ClosedAt,
	}
	if len(s.Movements) > 0 {
		resp.Movements = make([]MovementResponse, len(s.Movements))
		for i := range s.Movements {
			resp.Movements[i] = ToMovementResponse(&s.Movements[i])
		}
	}
	return resp
}
