// Package payments orchestrates money movement: bulk vendor payouts,
// Interac transfers between peers, money requests, and settling shared
// expenses. Every mutation runs inside a session update, so a failure
// partway through never leaves the ledger half-written.
package payments

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/festivault/festivault-backend/internal/session"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

// Confirmer phrases the confirmation line for a completed bulk payout.
type Confirmer interface {
	ConfirmBulkPayment(payments []model.VendorPayment, total money.Money) string
}

type BulkPaymentResult struct {
	Message                string                `json:"message"`
	AIConfirmation         string                `json:"ai_confirmation"`
	TotalAmount            money.Money           `json:"total_amount"`
	RemainingWalletBalance money.Money           `json:"remaining_wallet_balance"`
	Payments               []model.VendorPayment `json:"payments"`
}

type SendInput struct {
	Email            string
	Amount           money.Money
	Message          string
	SecurityQuestion string
	SecurityAnswer   string
}

type RequestInput struct {
	Email   string
	Amount  money.Money
	Message string
}

// LedgerEntry is one row of the combined activity feed: either a
// wallet transaction or a transfer.
type LedgerEntry struct {
	Source    string                   `json:"source"`
	Wallet    *model.WalletTransaction `json:"wallet_transaction,omitempty"`
	Transfer  *model.Transfer          `json:"transfer,omitempty"`
	Timestamp time.Time                `json:"timestamp"`
}

type Service interface {
	BulkPayVendors(ctx context.Context, sess *session.Session) (*BulkPaymentResult, error)
	SendTransfer(ctx context.Context, sess *session.Session, in SendInput) (*model.Transfer, money.Money, error)
	RequestMoney(ctx context.Context, sess *session.Session, in RequestInput) (*model.Transfer, error)
	SettleExpense(ctx context.Context, sess *session.Session, expenseRef, email string) (*model.Transfer, error)
	Transactions(ctx context.Context, sess *session.Session, limit int) ([]LedgerEntry, error)
	PendingRequests(ctx context.Context, sess *session.Session) ([]model.Transfer, error)
	SettlementSuggestions(ctx context.Context, sess *session.Session) ([]model.SettlementSuggestion, error)
}

type service struct {
	confirmer Confirmer
	now       func() time.Time
}

func NewService(confirmer Confirmer) (Service, error) {
	if confirmer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments service requires a confirmer")
	}
	return &service{confirmer: confirmer, now: time.Now}, nil
}

// BulkPayVendors pays every pending expense from the wallet in one
// shot. The wallet must cover the full pending total up front; if it
// cannot, nothing is paid and every expense stays pending.
func (s *service) BulkPayVendors(ctx context.Context, sess *session.Session) (*BulkPaymentResult, error) {
	var result BulkPaymentResult
	err := sess.Update(func(st *session.State) error {
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "create a budget before paying vendors")
		}
		pending := st.Budget.PendingExpenses()
		if len(pending) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "no pending expenses to pay")
		}

		total := st.Budget.PendingTotal()
		if st.Wallet.Balance.Cents() < total.Cents() {
			return pkgerrors.Newf(pkgerrors.CodeInsufficientFunds,
				"pending payments total %s but the wallet holds %s", total, st.Wallet.Balance)
		}

		now := s.now().UTC()
		payments := make([]model.VendorPayment, 0, len(pending))
		for _, idx := range pending {
			exp := &st.Budget.Expenses[idx]
			desc := "Vendor payment"
			if exp.VendorName != "" {
				desc += ": " + exp.VendorName
			}
			tx, err := st.Wallet.Debit(exp.Amount, enums.TransactionTypeExpense, desc, now)
			if err != nil {
				// The upfront check covers the sum, so a failed
				// debit here means the ledger itself is broken.
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bulk payment debit failed after funds check")
			}
			exp.Status = enums.ExpenseStatusPaid
			payments = append(payments, model.VendorPayment{
				ExpenseID:     exp.ID,
				Vendor:        exp.VendorName,
				Amount:        exp.Amount,
				TransactionID: tx.ID,
			})
		}

		result = BulkPaymentResult{
			Message:                fmt.Sprintf("Successfully paid %d vendors", len(payments)),
			AIConfirmation:         s.confirmer.ConfirmBulkPayment(payments, total),
			TotalAmount:            total,
			RemainingWalletBalance: st.Wallet.Balance,
			Payments:               payments,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SendTransfer debits the wallet and records a completed outgoing
// transfer in one atomic step.
func (s *service) SendTransfer(ctx context.Context, sess *session.Session, in SendInput) (*model.Transfer, money.Money, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, 0, err
	}
	if !in.Amount.IsPositive() {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "transfer amount must be positive")
	}

	var (
		transfer model.Transfer
		balance  money.Money
	)
	err := sess.Update(func(st *session.State) error {
		now := s.now().UTC()
		if _, err := st.Wallet.Debit(in.Amount, enums.TransactionTypePurchase,
			fmt.Sprintf("Interac e-Transfer to %s", in.Email), now); err != nil {
			return err
		}
		transfer = model.Transfer{
			ID:                model.NewTransferID(),
			Kind:              enums.TransferKindSend,
			CounterpartyEmail: in.Email,
			Amount:            in.Amount,
			Status:            enums.TransferStatusCompleted,
			Message:           in.Message,
			SecurityQuestion:  in.SecurityQuestion,
			SecurityAnswer:    in.SecurityAnswer,
			Timestamp:         now,
		}
		st.Transfers = append(st.Transfers, transfer)
		balance = st.Wallet.Balance
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &transfer, balance, nil
}

// RequestMoney records a pending incoming request. No money moves
// until the counterparty acts outside the system.
func (s *service) RequestMoney(ctx context.Context, sess *session.Session, in RequestInput) (*model.Transfer, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request amount must be positive")
	}

	var transfer model.Transfer
	err := sess.Update(func(st *session.State) error {
		transfer = model.Transfer{
			ID:                model.NewTransferID(),
			Kind:              enums.TransferKindRequest,
			CounterpartyEmail: in.Email,
			Amount:            in.Amount,
			Status:            enums.TransferStatusPending,
			Message:           in.Message,
			Timestamp:         s.now().UTC(),
		}
		st.Transfers = append(st.Transfers, transfer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// SettleExpense marks a shared expense as settled by a peer. The
// expense is flagged paid and a settlement transfer is logged, but the
// wallet is untouched because the money changed hands outside the
// wallet.
func (s *service) SettleExpense(ctx context.Context, sess *session.Session, expenseRef, email string) (*model.Transfer, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var transfer model.Transfer
	err := sess.Update(func(st *session.State) error {
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "create a budget before settling expenses")
		}
		idx, err := resolveExpense(st.Budget, expenseRef)
		if err != nil {
			return err
		}
		exp := &st.Budget.Expenses[idx]
		if exp.Status != enums.ExpenseStatusPending {
			return pkgerrors.Newf(pkgerrors.CodeConflict, "expense %s is already settled", exp.ID)
		}

		exp.Status = enums.ExpenseStatusPaid
		transfer = model.Transfer{
			ID:                model.NewTransferID(),
			Kind:              enums.TransferKindSettlement,
			CounterpartyEmail: email,
			Amount:            exp.Amount,
			Status:            enums.TransferStatusCompleted,
			Message:           fmt.Sprintf("Settled %s (%s)", exp.VendorName, exp.Category),
			ExpenseID:         exp.ID,
			Timestamp:         s.now().UTC(),
		}
		st.Transfers = append(st.Transfers, transfer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// Transactions merges wallet entries and transfers into one feed,
// newest first. limit <= 0 returns everything.
func (s *service) Transactions(ctx context.Context, sess *session.Session, limit int) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	err := sess.View(func(st *session.State) error {
		entries = make([]LedgerEntry, 0, len(st.Wallet.Transactions)+len(st.Transfers))
		for i := range st.Wallet.Transactions {
			tx := st.Wallet.Transactions[i]
			entries = append(entries, LedgerEntry{Source: "wallet", Wallet: &tx, Timestamp: tx.Timestamp})
		}
		for i := range st.Transfers {
			tr := st.Transfers[i]
			entries = append(entries, LedgerEntry{Source: "transfer", Transfer: &tr, Timestamp: tr.Timestamp})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// PendingRequests lists money requests that have not been settled yet,
// newest first.
func (s *service) PendingRequests(ctx context.Context, sess *session.Session) ([]model.Transfer, error) {
	var requests []model.Transfer
	err := sess.View(func(st *session.State) error {
		for _, tr := range st.Transfers {
			if tr.Kind == enums.TransferKindRequest && tr.Status == enums.TransferStatusPending {
				requests = append(requests, tr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Timestamp.After(requests[j].Timestamp)
	})
	return requests, nil
}

// SettlementSuggestions proposes an even two-way split of each
// category's pending total.
func (s *service) SettlementSuggestions(ctx context.Context, sess *session.Session) ([]model.SettlementSuggestion, error) {
	var suggestions []model.SettlementSuggestion
	err := sess.View(func(st *session.State) error {
		if st.Budget == nil {
			return pkgerrors.New(pkgerrors.CodeNoBudget, "no budget created yet")
		}
		for _, cat := range enums.Categories {
			var pending money.Money
			for _, exp := range st.Budget.Expenses {
				if exp.Category == cat && exp.Status == enums.ExpenseStatusPending {
					pending = pending.Add(exp.Amount)
				}
			}
			if !pending.IsPositive() {
				continue
			}
			half := money.FromCents(pending.Cents() / 2)
			suggestions = append(suggestions, model.SettlementSuggestion{
				Category:       cat,
				SuggestedSplit: half,
				Reason:         fmt.Sprintf("Pending %s expenses total %s. An even split is %s each.", cat, pending, half),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// resolveExpense accepts an EXP- id or a numeric index into the
// expense log.
func resolveExpense(b *model.Budget, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "expense reference is required")
	}
	if strings.HasPrefix(ref, "EXP-") {
		for i := range b.Expenses {
			if b.Expenses[i].ID == ref {
				return i, nil
			}
		}
		return 0, pkgerrors.Newf(pkgerrors.CodeNotFound, "no expense with id %s", ref)
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid expense reference %q", ref)
	}
	if idx < 0 || idx >= len(b.Expenses) {
		return 0, pkgerrors.Newf(pkgerrors.CodeNotFound, "no expense at index %d", idx)
	}
	return idx, nil
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email address is required")
	}
	return nil
}
