package notifications

import "time"

// NotificationType mirrors the backend's event taxonomy.
type NotificationType string

const (
	TypeDeposit                NotificationType = "DEPOSIT"
	TypeWithdrawal             NotificationType = "WITHDRAWAL"
	TypeLoanApproved           NotificationType = "LOAN_APPROVED"
	TypeLoanRejected           NotificationType = "LOAN_REJECTED"
	TypeLoanDisbursed          NotificationType = "LOAN_DISBURSED"
	TypeLoanRepayment          NotificationType = "LOAN_REPAYMENT"
	TypeLoanRepaymentApproved  NotificationType = "LOAN_REPAYMENT_APPROVED"
	TypeLoanRepaymentRejected  NotificationType = "LOAN_REPAYMENT_REJECTED"
	TypeDepositRequestApproved NotificationType = "DEPOSIT_REQUEST_APPROVED"
	TypeDepositRequestRejected NotificationType = "DEPOSIT_REQUEST_REJECTED"
	TypePenaltyApplied         NotificationType = "PENALTY_APPLIED"
	TypeInterestCredited       NotificationType = "INTEREST_CREDITED"
	TypeAccountFrozen          NotificationType = "ACCOUNT_FROZEN"
	TypeAccountUnfrozen        NotificationType = "ACCOUNT_UNFROZEN"
	TypeProfileUpdate          NotificationType = "PROFILE_UPDATE"
	TypeSystem                 NotificationType = "SYSTEM"
)

// Notification is a member notification. One canonical field per concept:
// ID identifies the notification and Read carries the read flag, regardless
// of which aliases the backend emits.
type Notification struct {
	ID        string            `json:"notification_id"`
	MemberID  string            `json:"member_id"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Read      bool              `json:"is_read"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
