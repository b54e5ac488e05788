// Package wallet exposes the shared wallet: adding funds, reading the
// balance, and browsing the transaction log. Debits happen through the
// payments orchestrator, not here.
package wallet

import (
	"context"
	"time"

	"github.com/festivault/festivault-backend/internal/session"
	"github.com/festivault/festivault-backend/pkg/enums"
	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/model"
	"github.com/festivault/festivault-backend/pkg/money"
)

type Service interface {
	AddFunds(ctx context.Context, sess *session.Session, amount money.Money, method enums.PaymentMethod) (*model.WalletTransaction, money.Money, error)
	Balance(ctx context.Context, sess *session.Session) (money.Money, error)
	Transactions(ctx context.Context, sess *session.Session, limit int) ([]model.WalletTransaction, error)
	Stats(ctx context.Context, sess *session.Session) (*model.WalletStats, error)
}

type service struct {
	now func() time.Time
}

func NewService() (Service, error) {
	return &service{now: time.Now}, nil
}

func (s *service) AddFunds(ctx context.Context, sess *session.Session, amount money.Money, method enums.PaymentMethod) (*model.WalletTransaction, money.Money, error) {
	if !amount.IsPositive() {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !method.IsValid() {
		return nil, 0, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown payment method %q", method)
	}

	var (
		tx      model.WalletTransaction
		balance money.Money
	)
	err := sess.Update(func(st *session.State) error {
		created, err := st.Wallet.Credit(amount, method, s.now().UTC())
		if err != nil {
			return err
		}
		tx = *created
		balance = st.Wallet.Balance
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &tx, balance, nil
}

func (s *service) Balance(ctx context.Context, sess *session.Session) (money.Money, error) {
	var balance money.Money
	err := sess.View(func(st *session.State) error {
		balance = st.Wallet.Balance
		return nil
	})
	return balance, err
}

// Transactions returns wallet entries newest first. limit <= 0 returns
// everything.
func (s *service) Transactions(ctx context.Context, sess *session.Session, limit int) ([]model.WalletTransaction, error) {
	var txs []model.WalletTransaction
	err := sess.View(func(st *session.State) error {
		txs = st.Wallet.RecentTransactions(limit)
		return nil
	})
	return txs, err
}

func (s *service) Stats(ctx context.Context, sess *session.Session) (*model.WalletStats, error) {
	var stats model.WalletStats
	err := sess.View(func(st *session.State) error {
		stats = st.Wallet.Stats()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
