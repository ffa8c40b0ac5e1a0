package accounts

import (
	"time"

	"github.com/shopspring/decimal"
)

// Savings account categories offered by the cooperative.
type AccountType string

const (
	TypeCompulsory   AccountType = "COMPULSORY"
	TypeVoluntary    AccountType = "VOLUNTARY"
	TypeFixed        AccountType = "FIXED"
	TypeShareCapital AccountType = "SHARE_CAPITAL"
)

type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusFrozen AccountStatus = "FROZEN"
	StatusClosed AccountStatus = "CLOSED"
)

// Account is a savings account as reported by the backend. Balances are
// computed server-side; the lien amount is the portion pledged as loan
// collateral and not withdrawable.
type Account struct {
	ID                  string          `json:"id"`
	AccountNumber       string          `json:"account_number"`
	AccountType         AccountType     `json:"account_type"`
	Balance             decimal.Decimal `json:"balance"`
	LienAmount          decimal.Decimal `json:"lien_amount"`
	AvailableBalance    decimal.Decimal `json:"available_balance"`
	Status              AccountStatus   `json:"status"`
	InterestRate        decimal.Decimal `json:"interest_rate"`
	LastTransactionDate *time.Time      `json:"last_transaction_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

type TransactionType string

const (
	TxDeposit          TransactionType = "DEPOSIT"
	TxWithdrawal       TransactionType = "WITHDRAWAL"
	TxInterest         TransactionType = "INTEREST"
	TxTransfer         TransactionType = "TRANSFER"
	TxLoanDisbursement TransactionType = "LOAN_DISBURSEMENT"
	TxLoanRepayment    TransactionType = "LOAN_REPAYMENT"
	TxFee              TransactionType = "FEE"
	TxPenalty          TransactionType = "PENALTY"
)

// Transaction is a posted ledger entry. BalanceAfter is the account balance
// once the entry was applied, as recorded by the backend.
type Transaction struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reference     string          `json:"reference,omitempty"`
	Description   string          `json:"description,omitempty"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	PerformedBy   string          `json:"performed_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionPage is one page of an account's transaction history.
type TransactionPage struct {
	Data    []Transaction `json:"data"`
	HasMore bool          `json:"hasMore"`
}
