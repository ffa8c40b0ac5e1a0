package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/alefdelta/sacco-client/accounts"
	"github.com/alefdelta/sacco-client/dashboard"
	"github.com/alefdelta/sacco-client/loans"
	"github.com/alefdelta/sacco-client/members"
	"github.com/alefdelta/sacco-client/notifications"
	"github.com/alefdelta/sacco-client/requests"
)

// Me returns the authenticated member's profile.
func (c *Client) Me(ctx context.Context) (*members.Member, error) {
	var m members.Member
	if err := c.getJSON(ctx, "/client/me", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// KPISummary returns the dashboard headline figures.
func (c *Client) KPISummary(ctx context.Context) (*dashboard.KPISummary, error) {
	var summary dashboard.KPISummary
	if err := c.getJSON(ctx, "/client/kpi-summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SavingsHistory returns the monthly savings trend for the sparkline.
func (c *Client) SavingsHistory(ctx context.Context) ([]dashboard.SavingsPoint, error) {
	var points []dashboard.SavingsPoint
	if err := c.getJSON(ctx, "/client/savings-history", &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Accounts lists the member's savings accounts.
func (c *Client) Accounts(ctx context.Context) ([]accounts.Account, error) {
	var accs []accounts.Account
	if err := c.getJSON(ctx, "/client/accounts", &accs); err != nil {
		return nil, err
	}
	return accs, nil
}

// AccountTransactions returns one page of an account's transaction history.
// Pages start at 1.
func (c *Client) AccountTransactions(ctx context.Context, accountID string, page int) (*accounts.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	path := fmt.Sprintf("/client/accounts/%s/transactions?page=%d", url.PathEscape(accountID), page)
	var txPage accounts.TransactionPage
	if err := c.getJSON(ctx, path, &txPage); err != nil {
		return nil, err
	}
	return &txPage, nil
}

// Loans lists the member's loans.
func (c *Client) Loans(ctx context.Context) ([]loans.Loan, error) {
	var ls []loans.Loan
	if err := c.getJSON(ctx, "/client/loans", &ls); err != nil {
		return nil, err
	}
	return ls, nil
}

// LoanDetail returns a loan together with its amortization schedule.
func (c *Client) LoanDetail(ctx context.Context, loanID string) (*loans.Detail, error) {
	var detail loans.Detail
	if err := c.getJSON(ctx, "/client/loans/"+url.PathEscape(loanID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Requests lists the member's service requests.
func (c *Client) Requests(ctx context.Context) ([]requests.Request, error) {
	var reqs []requests.Request
	if err := c.getJSON(ctx, "/client/requests", &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// CreateRequest submits a new service request. An idempotency key is attached
// so a resubmitted form cannot create a duplicate request.
func (c *Client) CreateRequest(ctx context.Context, newReq requests.NewRequest) (*requests.Request, error) {
	body := struct {
		requests.NewRequest
		IdempotencyKey string `json:"idempotency_key"`
	}{NewRequest: newReq, IdempotencyKey: uuid.New().String()}

	var created requests.Request
	if err := c.postJSON(ctx, "/client/requests", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Notifications lists the member's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]notifications.Notification, error) {
	var ns []notifications.Notification
	if err := c.getJSON(ctx, "/client/notifications", &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.postJSON(ctx, "/client/notifications/"+url.PathEscape(notificationID)+"/read", nil, nil)
}
