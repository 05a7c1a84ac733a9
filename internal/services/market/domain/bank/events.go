package bank

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

// TypeMinted credits freshly issued funds to an account.
const TypeMinted event.Type = "bank.minted"

// Types lists every bank event for registry validation.
func Types() []event.Type {
	return []event.Type{TypeMinted}
}

// MintedPayload credits amount of a currency to an account.
type MintedPayload struct {
	Currency chain.Currency  `json:"currency"`
	Account  chain.AccountID `json:"account"`
	Amount   *uint256.Int    `json:"amount"`
}

// Apply folds a committed bank event into the ledger.
func Apply(l *Ledger, evt event.Event) error {
	switch evt.Type {
	case TypeMinted:
		var p MintedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		return l.Mint(p.Currency, p.Account, p.Amount)
	}
	return fmt.Errorf("bank: unhandled event type %q", evt.Type)
}
