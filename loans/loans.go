package loans

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	StatusPending     LoanStatus = "PENDING"
	StatusUnderReview LoanStatus = "UNDER_REVIEW"
	StatusApproved    LoanStatus = "APPROVED"
	StatusRejected    LoanStatus = "REJECTED"
	StatusDisbursed   LoanStatus = "DISBURSED"
	StatusFullyPaid   LoanStatus = "FULLY_PAID"
)

type InterestType string

const (
	InterestFlat      InterestType = "FLAT"
	InterestDeclining InterestType = "DECLINING"
)

type RepaymentFrequency string

const (
	RepayMonthly   RepaymentFrequency = "MONTHLY"
	RepayWeekly    RepaymentFrequency = "WEEKLY"
	RepayQuarterly RepaymentFrequency = "QUARTERLY"
)

// Loan is a member loan as reported by the backend. All amortization figures
// (installment, outstanding balance, totals) are computed server-side.
type Loan struct {
	ID                 string             `json:"id"`
	LoanID             string             `json:"loan_id"`
	ProductName        string             `json:"product_name"`
	AppliedAmount      decimal.Decimal    `json:"applied_amount"`
	ApprovedAmount     *decimal.Decimal   `json:"approved_amount,omitempty"`
	InterestRate       decimal.Decimal    `json:"interest_rate"`
	InterestType       InterestType       `json:"interest_type"`
	TermMonths         int                `json:"term_months"`
	RepaymentFrequency RepaymentFrequency `json:"repayment_frequency"`
	MonthlyInstallment decimal.Decimal    `json:"monthly_installment"`
	OutstandingBalance decimal.Decimal    `json:"outstanding_balance"`
	TotalPaid          decimal.Decimal    `json:"total_paid"`
	TotalInterest      decimal.Decimal    `json:"total_interest"`
	TotalPenalty       decimal.Decimal    `json:"total_penalty"`
	Status             LoanStatus         `json:"status"`
	Purpose            string             `json:"purpose,omitempty"`
	NextPaymentDate    string             `json:"next_payment_date,omitempty"`
	DaysOverdue        int                `json:"days_overdue"`
	DisbursedAt        *time.Time         `json:"disbursed_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

type ScheduleStatus string

const (
	SchedulePending ScheduleStatus = "PENDING"
	SchedulePaid    ScheduleStatus = "PAID"
	ScheduleOverdue ScheduleStatus = "OVERDUE"
	SchedulePartial ScheduleStatus = "PARTIAL"
)

// ScheduleItem is one period of the precomputed amortization schedule.
type ScheduleItem struct {
	Period       int             `json:"period"`
	DueDate      string          `json:"due_date"`
	Principal    decimal.Decimal `json:"principal"`
	Interest     decimal.Decimal `json:"interest"`
	TotalPayment decimal.Decimal `json:"total_payment"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Status       ScheduleStatus  `json:"status"`
}

// Detail bundles a loan with its amortization schedule, as returned by the
// loan detail endpoint.
type Detail struct {
	Loan
	Schedule []ScheduleItem `json:"schedule"`
}
