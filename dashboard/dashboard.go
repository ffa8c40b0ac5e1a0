// Package dashboard holds the aggregated figures shown on the member home
// screen. Everything here is computed server-side and merely displayed.
package dashboard

import "github.com/shopspring/decimal"

// KPISummary is the headline figure set for a member.
type KPISummary struct {
	TotalSavings         decimal.Decimal `json:"total_savings"`
	LoanOutstanding      decimal.Decimal `json:"loan_outstanding"`
	NextPaymentAmount    decimal.Decimal `json:"next_payment_amount"`
	NextPaymentDate      string          `json:"next_payment_date,omitempty"`
	SavingsChangePercent decimal.Decimal `json:"savings_change_percent"`
	TotalAccounts        int             `json:"total_accounts"`
	ActiveLoans          int             `json:"active_loans"`
}

// SavingsPoint is one month of the savings trend sparkline.
type SavingsPoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}
