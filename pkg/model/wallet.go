package model

import (
	"fmt"
	"time"

	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/money"
)

// WalletAccount is the session cash balance and its append-only
// transaction log. The balance never goes negative; every mutation
// appends exactly one immutable transaction whose balance_after equals
// the running sum of all amounts before it.
type WalletAccount struct {
	Balance      money.Money         `json:"balance"`
	Transactions []WalletTransaction `json:"transactions"`
}

// WalletTransaction is one immutable entry in the wallet log. Amount is
// signed: credits positive, debits negative.
type WalletTransaction struct {
	ID            string                `json:"id"`
	Type          enums.TransactionType `json:"type"`
	Amount        money.Money           `json:"amount"`
	BalanceAfter  money.Money           `json:"balance_after"`
	PaymentMethod enums.PaymentMethod   `json:"payment_method,omitempty"`
	Description   string                `json:"description,omitempty"`
	Status        string                `json:"status"`
	Timestamp     time.Time             `json:"timestamp"`
}

// WalletStats is derived by folding the transaction log; it is never
// persisted so it cannot drift from the log.
type WalletStats struct {
	CurrentBalance   money.Money `json:"current_balance"`
	TotalAdded       money.Money `json:"total_added"`
	TotalSpent       money.Money `json:"total_spent"`
	TransactionCount int         `json:"transaction_count"`
}

// Credit adds funds and appends the add_funds transaction.
func (w *WalletAccount) Credit(amount money.Money, method enums.PaymentMethod, now time.Time) (*WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than 0")
	}
	tx := WalletTransaction{
		ID:            NewTransactionID(),
		Type:          enums.TransactionTypeAddFunds,
		Amount:        amount,
		BalanceAfter:  w.Balance.Add(amount),
		PaymentMethod: method,
		Description:   fmt.Sprintf("Added %s to wallet via %s", amount, method),
		Status:        "completed",
		Timestamp:     now,
	}
	w.Balance = tx.BalanceAfter
	w.Transactions = append(w.Transactions, tx)
	return &w.Transactions[len(w.Transactions)-1], nil
}

// Debit removes funds and appends a transaction with a negative amount.
// It refuses to let the balance go negative.
func (w *WalletAccount) Debit(amount money.Money, txType enums.TransactionType, description string, now time.Time) (*WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than 0")
	}
	if !txType.IsDebit() {
		return nil, pkgerrors.Newf(pkgerrors.CodeInternal, "transaction type %s cannot debit", txType)
	}
	if w.Balance < amount {
		return nil, pkgerrors.Newf(pkgerrors.CodeInsufficientFunds,
			"Insufficient funds. Balance: %s, Required: %s", w.Balance, amount)
	}
	tx := WalletTransaction{
		ID:           NewTransactionID(),
		Type:         txType,
		Amount:       amount.Neg(),
		BalanceAfter: w.Balance.Sub(amount),
		Description:  description,
		Status:       "completed",
		Timestamp:    now,
	}
	w.Balance = tx.BalanceAfter
	w.Transactions = append(w.Transactions, tx)
	return &w.Transactions[len(w.Transactions)-1], nil
}

// Stats folds the transaction log into the derived aggregate.
func (w *WalletAccount) Stats() WalletStats {
	stats := WalletStats{
		CurrentBalance:   w.Balance,
		TransactionCount: len(w.Transactions),
	}
	for _, tx := range w.Transactions {
		if tx.Type == enums.TransactionTypeAddFunds {
			stats.TotalAdded = stats.TotalAdded.Add(tx.Amount)
		} else if tx.Type.IsDebit() {
			stats.TotalSpent = stats.TotalSpent.Add(tx.Amount.Abs())
		}
	}
	return stats
}

// RecentTransactions returns the log newest-first, optionally limited.
// A limit of zero or less returns everything.
func (w *WalletAccount) RecentTransactions(limit int) []WalletTransaction {
	out := make([]WalletTransaction, 0, len(w.Transactions))
	for i := len(w.Transactions) - 1; i >= 0; i-- {
		out = append(out, w.Transactions[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// CheckConsistency verifies the prefix-sum invariant over the log.
func (w *WalletAccount) CheckConsistency() error {
	var running money.Money
	for i, tx := range w.Transactions {
		running = running.Add(tx.Amount)
		if tx.BalanceAfter != running {
			return pkgerrors.Newf(pkgerrors.CodeInternal,
				"wallet log corrupt at entry %d: balance_after %s, running sum %s", i, tx.BalanceAfter, running)
		}
	}
	if w.Balance != running {
		return pkgerrors.Newf(pkgerrors.CodeInternal,
			"wallet balance %s disagrees with log sum %s", w.Balance, running)
	}
	return nil
}

// Clone deep-copies the wallet for transactional updates.
func (w *WalletAccount) Clone() WalletAccount {
	dup := WalletAccount{Balance: w.Balance}
	dup.Transactions = append([]WalletTransaction(nil), w.Transactions...)
	return dup
}
