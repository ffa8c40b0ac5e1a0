// Package requests models member service requests: actions a member initiates
// from the portal that require staff review before they touch the ledger.
package requests

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestType string

const (
	TypeDeposit        RequestType = "DEPOSIT"
	TypeRepayment      RequestType = "REPAYMENT"
	TypeLoanRequest    RequestType = "LOAN_REQUEST"
	TypeProfileUpdate  RequestType = "PROFILE_UPDATE"
	TypePasswordReset  RequestType = "PASSWORD_RESET"
	TypeDocumentUpload RequestType = "DOCUMENT_UPLOAD"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

// Request is a member-initiated service request and its review outcome.
type Request struct {
	ID          string           `json:"id"`
	RequestID   string           `json:"request_id"`
	Type        RequestType      `json:"type"`
	Status      RequestStatus    `json:"status"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description,omitempty"`
	StaffNotes  string           `json:"staff_notes,omitempty"`
	ProcessedBy string           `json:"processed_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty"`
}

// NewRequest is the payload for creating a request. ReceiptURL carries the
// uploaded proof-of-payment for deposit and repayment requests.
type NewRequest struct {
	Type        RequestType      `json:"type"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description"`
	ReceiptURL  string           `json:"receipt_url,omitempty"`
}
