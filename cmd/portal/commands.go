package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/alefdelta/sacco-client/apiclient"
	"github.com/alefdelta/sacco-client/internal/utils"
	"github.com/alefdelta/sacco-client/requests"
	"github.com/alefdelta/sacco-client/session"
)

// refreshWindow: a token expiring this soon is refreshed before the command
// runs, so the command itself does not race the expiry.
const refreshWindow = time.Minute

func dispatch(ctx context.Context, manager *session.Manager, client *apiclient.Client, args []string) error {
	command, rest := args[0], args[1:]

	switch command {
	case "login":
		return cmdLogin(ctx, manager, rest)
	case "logout":
		manager.Logout()
		fmt.Println("Signed out.")
		return nil
	}

	if !manager.Current().IsAuthenticated {
		return errors.New("not signed in; run `portal login` first")
	}
	refreshIfExpiring(ctx, manager)

	switch command {
	case "whoami":
		return cmdWhoami(manager)
	case "dashboard":
		return cmdDashboard(ctx, client)
	case "accounts":
		return cmdAccounts(ctx, client)
	case "transactions":
		return cmdTransactions(ctx, client, rest)
	case "loans":
		return cmdLoans(ctx, client)
	case "loan":
		return cmdLoanDetail(ctx, client, rest)
	case "requests":
		return cmdRequests(ctx, client)
	case "deposit":
		return cmdDeposit(ctx, client, rest)
	case "notifications":
		return cmdNotifications(ctx, client)
	case "read":
		return cmdMarkRead(ctx, client, rest)
	default:
		return errors.Errorf("unknown command %q", command)
	}
}

// refreshIfExpiring is best-effort: a failed refresh already logged the
// session out, and the following call will report that state.
func refreshIfExpiring(ctx context.Context, manager *session.Manager) {
	if !manager.TokenExpiresWithin(refreshWindow) {
		return
	}
	_ = manager.RefreshAuth(ctx)
}

func cmdLogin(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	phone := fs.String("phone", "", "registered phone number")
	password := fs.String("password", "", "password")
	remember := fs.Bool("remember", true, "keep the session across restarts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *phone == "" || *password == "" {
		return errors.New("-phone and -password are required")
	}

	if err := manager.Login(ctx, *phone, *password, *remember); err != nil {
		return err
	}
	state := manager.Current()
	fmt.Printf("Welcome, %s (%s)\n", state.Member.FullName(), state.Member.MemberID)
	return nil
}

func cmdWhoami(manager *session.Manager) error {
	m := manager.Current().Member
	fmt.Printf("%s  %s\n", m.MemberID, m.FullName())
	fmt.Printf("Phone: %s  Status: %s\n", m.Phone, m.Status)
	if m.Email != "" {
		fmt.Printf("Email: %s\n", m.Email)
	}
	return nil
}

func cmdDashboard(ctx context.Context, client *apiclient.Client) error {
	summary, err := client.KPISummary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Total savings:    %s\n", birr(summary.TotalSavings))
	fmt.Printf("Loan outstanding: %s\n", birr(summary.LoanOutstanding))
	if summary.NextPaymentDate != "" {
		fmt.Printf("Next payment:     %s due %s\n", birr(summary.NextPaymentAmount), summary.NextPaymentDate)
	}
	fmt.Printf("Accounts: %d  Active loans: %d\n", summary.TotalAccounts, summary.ActiveLoans)
	return nil
}

func cmdAccounts(ctx context.Context, client *apiclient.Client) error {
	accs, err := client.Accounts(ctx)
	if err != nil {
		return err
	}
	for _, a := range accs {
		fmt.Printf("%-20s %-14s %12s available %12s  %s\n",
			a.AccountNumber, a.AccountType, birr(a.Balance), birr(a.AvailableBalance), a.Status)
	}
	return nil
}

func cmdTransactions(ctx context.Context, client *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ContinueOnError)
	accountID := fs.String("account", "", "account id")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accountID == "" {
		return errors.New("-account is required")
	}

	txPage, err := client.AccountTransactions(ctx, *accountID, *page)
	if err != nil {
		return err
	}
	for _, tx := range txPage.Data {
		fmt.Printf("%-18s %-16s %12s  balance %12s  %s\n",
			tx.TransactionID, tx.Type, birr(tx.Amount), birr(tx.BalanceAfter), humanize.Time(tx.CreatedAt))
	}
	if txPage.HasMore {
		fmt.Printf("More available: -page %d\n", *page+1)
	}
	return nil
}

func cmdLoans(ctx context.Context, client *apiclient.Client) error {
	ls, err := client.Loans(ctx)
	if err != nil {
		return err
	}
	for _, l := range ls {
		fmt.Printf("%-14s %-18s outstanding %12s  %s\n", l.LoanID, l.ProductName, birr(l.OutstandingBalance), l.Status)
	}
	return nil
}

func cmdLoanDetail(ctx context.Context, client *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("loan", flag.ContinueOnError)
	id := fs.String("id", "", "loan id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	detail, err := client.LoanDetail(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  %s%% %s over %d months\n",
		detail.LoanID, detail.ProductName, detail.InterestRate, detail.InterestType, detail.TermMonths)
	fmt.Printf("Approved: %s  Outstanding: %s  Paid: %s  Status: %s\n",
		birr(utils.Value(detail.ApprovedAmount)), birr(detail.OutstandingBalance), birr(detail.TotalPaid), detail.Status)
	for _, item := range detail.Schedule {
		fmt.Printf("  %2d  %s  principal %10s  interest %9s  total %10s  %s\n",
			item.Period, item.DueDate, birr(item.Principal), birr(item.Interest), birr(item.TotalPayment), item.Status)
	}
	return nil
}

func cmdRequests(ctx context.Context, client *apiclient.Client) error {
	reqs, err := client.Requests(ctx)
	if err != nil {
		return err
	}
	for _, r := range reqs {
		amount := "-"
		if r.Amount != nil {
			amount = birr(*r.Amount)
		}
		fmt.Printf("%-14s %-14s %12s  %-9s %s\n", r.RequestID, r.Type, amount, r.Status, humanize.Time(r.CreatedAt))
	}
	return nil
}

func cmdDeposit(ctx context.Context, client *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ContinueOnError)
	amount := fs.String("amount", "", "deposit amount in ETB")
	note := fs.String("note", "", "description for the teller")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *amount == "" {
		return errors.New("-amount is required")
	}
	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return errors.Wrap(err, "invalid amount")
	}

	created, err := client.CreateRequest(ctx, requests.NewRequest{
		Type:        requests.TypeDeposit,
		Amount:      &value,
		Description: *note,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Submitted %s, status %s\n", created.RequestID, created.Status)
	return nil
}

func cmdNotifications(ctx context.Context, client *apiclient.Client) error {
	ns, err := client.Notifications(ctx)
	if err != nil {
		return err
	}
	for _, n := range ns {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %-12s %-28s %s\n", marker, n.ID, n.Title, humanize.Time(n.CreatedAt))
	}
	return nil
}

func cmdMarkRead(ctx context.Context, client *apiclient.Client, args []string) error {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	id := fs.String("id", "", "notification id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}
	return client.MarkNotificationRead(ctx, *id)
}

func birr(d decimal.Decimal) string {
	return "ETB " + humanize.CommafWithDigits(d.InexactFloat64(), 2)
}
