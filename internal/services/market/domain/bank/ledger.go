// Package bank implements the hold/currency ledger collaborator: multi-asset
// fungible balances plus named-reason reservations on the native currency.
// A hold blocks spending without transferring ownership and is releasable
// only under its own reason tag.
package bank

import (
	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

// Ledger tracks free balances per currency and held balances per reason.
// Mutating methods validate every precondition before writing, so a failed
// call leaves the ledger untouched.
type Ledger struct {
	balances map[chain.Currency]map[chain.AccountID]*uint256.Int
	holds    map[chain.HoldReason]map[chain.AccountID]*uint256.Int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[chain.Currency]map[chain.AccountID]*uint256.Int),
		holds:    make(map[chain.HoldReason]map[chain.AccountID]*uint256.Int),
	}
}

// Balance returns a copy of the free balance of account in cur.
func (l *Ledger) Balance(cur chain.Currency, account chain.AccountID) *uint256.Int {
	accounts := l.balances[cur]
	if accounts == nil {
		return chain.ZeroAmount()
	}
	value := accounts[account]
	if value == nil {
		return chain.ZeroAmount()
	}
	return new(uint256.Int).Set(value)
}

// HeldBalance returns a copy of the balance held for account under reason.
func (l *Ledger) HeldBalance(reason chain.HoldReason, account chain.AccountID) *uint256.Int {
	accounts := l.holds[reason]
	if accounts == nil {
		return chain.ZeroAmount()
	}
	value := accounts[account]
	if value == nil {
		return chain.ZeroAmount()
	}
	return new(uint256.Int).Set(value)
}

// Mint credits amount of cur to account.
func (l *Ledger) Mint(cur chain.Currency, account chain.AccountID, amount *uint256.Int) error {
	next, err := chain.CheckedAdd(l.Balance(cur, account), amount)
	if err != nil {
		return err
	}
	l.setBalance(cur, account, next)
	return nil
}

// Burn debits amount of cur from account.
func (l *Ledger) Burn(cur chain.Currency, account chain.AccountID, amount *uint256.Int) error {
	balance := l.Balance(cur, account)
	if balance.Lt(amount) {
		return apperrors.New(apperrors.CodeInsufficientBalance, "burn exceeds free balance")
	}
	l.setBalance(cur, account, balance.Sub(balance, amount))
	return nil
}

// Transfer moves amount of cur from one account to another. A transfer to
// the same account leaves the balance untouched after the sufficiency check.
func (l *Ledger) Transfer(cur chain.Currency, from, to chain.AccountID, amount *uint256.Int) error {
	fromBalance := l.Balance(cur, from)
	if fromBalance.Lt(amount) {
		return apperrors.New(apperrors.CodeInsufficientBalance, "transfer exceeds free balance")
	}
	if from == to {
		return nil
	}
	toBalance, err := chain.CheckedAdd(l.Balance(cur, to), amount)
	if err != nil {
		return err
	}
	l.setBalance(cur, from, fromBalance.Sub(fromBalance, amount))
	l.setBalance(cur, to, toBalance)
	return nil
}

// Hold moves amount of the native currency from the free balance of account
// into the reservation tagged reason.
func (l *Ledger) Hold(reason chain.HoldReason, account chain.AccountID, amount *uint256.Int) error {
	balance := l.Balance(chain.Native(), account)
	if balance.Lt(amount) {
		return apperrors.New(apperrors.CodeInsufficientBalance, "hold exceeds free balance")
	}
	held, err := chain.CheckedAdd(l.HeldBalance(reason, account), amount)
	if err != nil {
		return err
	}
	l.setBalance(chain.Native(), account, balance.Sub(balance, amount))
	l.setHeld(reason, account, held)
	return nil
}

// Release returns amount held for account under reason to its free balance.
func (l *Ledger) Release(reason chain.HoldReason, account chain.AccountID, amount *uint256.Int) error {
	held := l.HeldBalance(reason, account)
	if held.Lt(amount) {
		return apperrors.New(apperrors.CodeInsufficientHold, "release exceeds held balance")
	}
	balance, err := chain.CheckedAdd(l.Balance(chain.Native(), account), amount)
	if err != nil {
		return err
	}
	l.setHeld(reason, account, held.Sub(held, amount))
	l.setBalance(chain.Native(), account, balance)
	return nil
}

// TransferHeld moves amount held for from under reason into the free balance
// of to. It is the slashing primitive: held funds leave the depositor without
// ever becoming spendable by them.
func (l *Ledger) TransferHeld(reason chain.HoldReason, from, to chain.AccountID, amount *uint256.Int) error {
	held := l.HeldBalance(reason, from)
	if held.Lt(amount) {
		return apperrors.New(apperrors.CodeInsufficientHold, "slash exceeds held balance")
	}
	balance, err := chain.CheckedAdd(l.Balance(chain.Native(), to), amount)
	if err != nil {
		return err
	}
	l.setHeld(reason, from, held.Sub(held, amount))
	l.setBalance(chain.Native(), to, balance)
	return nil
}

func (l *Ledger) setBalance(cur chain.Currency, account chain.AccountID, value *uint256.Int) {
	accounts := l.balances[cur]
	if accounts == nil {
		accounts = make(map[chain.AccountID]*uint256.Int)
		l.balances[cur] = accounts
	}
	if value.IsZero() {
		delete(accounts, account)
		return
	}
	accounts[account] = value
}

func (l *Ledger) setHeld(reason chain.HoldReason, account chain.AccountID, value *uint256.Int) {
	accounts := l.holds[reason]
	if accounts == nil {
		accounts = make(map[chain.AccountID]*uint256.Int)
		l.holds[reason] = accounts
	}
	if value.IsZero() {
		delete(accounts, account)
		return
	}
	accounts[account] = value
}
