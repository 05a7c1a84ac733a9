package bank

import (
	"testing"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

const (
	alice = chain.AccountID("alice")
	bob   = chain.AccountID("bob")
)

func TestMintAndTransfer(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	if err := ledger.Mint(chain.Native(), alice, chain.Amount(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Transfer(chain.Native(), alice, bob, chain.Amount(40)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := ledger.Balance(chain.Native(), alice); !got.Eq(chain.Amount(60)) {
		t.Fatalf("alice balance = %v, want 60", got)
	}
	if got := ledger.Balance(chain.Native(), bob); !got.Eq(chain.Amount(40)) {
		t.Fatalf("bob balance = %v, want 40", got)
	}
}

func TestTransferInsufficientLeavesBalancesUnchanged(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	if err := ledger.Mint(chain.Native(), alice, chain.Amount(10)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	err := ledger.Transfer(chain.Native(), alice, bob, chain.Amount(11))
	if apperrors.CodeOf(err) != apperrors.CodeInsufficientBalance {
		t.Fatalf("expected INSUFFICIENT_BALANCE, got %v", err)
	}
	if got := ledger.Balance(chain.Native(), alice); !got.Eq(chain.Amount(10)) {
		t.Fatalf("alice balance = %v, want 10", got)
	}
	if got := ledger.Balance(chain.Native(), bob); !got.IsZero() {
		t.Fatalf("bob balance = %v, want 0", got)
	}
}

func TestTransferToSelfLeavesBalanceUnchanged(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	if err := ledger.Mint(chain.Native(), alice, chain.Amount(10)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Transfer(chain.Native(), alice, alice, chain.Amount(4)); err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	if got := ledger.Balance(chain.Native(), alice); !got.Eq(chain.Amount(10)) {
		t.Fatalf("alice balance = %v, want 10", got)
	}

	// The sufficiency check still applies to the degenerate case.
	err := ledger.Transfer(chain.Native(), alice, alice, chain.Amount(11))
	if apperrors.CodeOf(err) != apperrors.CodeInsufficientBalance {
		t.Fatalf("expected INSUFFICIENT_BALANCE, got %v", err)
	}
}

func TestHoldBlocksSpending(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	if err := ledger.Mint(chain.Native(), alice, chain.Amount(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Hold(chain.HoldRegionDeposit, alice, chain.Amount(80)); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if got := ledger.Balance(chain.Native(), alice); !got.Eq(chain.Amount(20)) {
		t.Fatalf("free balance = %v, want 20", got)
	}
	if err := ledger.Transfer(chain.Native(), alice, bob, chain.Amount(30)); err == nil {
		t.Fatal("expected transfer of held funds to fail")
	}
	if got := ledger.HeldBalance(chain.HoldRegionDeposit, alice); !got.Eq(chain.Amount(80)) {
		t.Fatalf("held balance = %v, want 80", got)
	}
}

func TestReleaseIsReasonScoped(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	if err := ledger.Mint(chain.Native(), alice, chain.Amount(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Hold(chain.HoldRegionDeposit, alice, chain.Amount(50)); err != nil {
		t.Fatalf("hold region: %v", err)
	}
	if err := ledger.Hold(chain.HoldLocationDeposit, alice, chain.Amount(30)); err != nil {
		t.Fatalf("hold location: %v", err)
	}

	// A release under one reason must never dip into another reason's funds.
	err := ledger.Release(chain.HoldLocationDeposit, alice, chain.Amount(31))
	if apperrors.CodeOf(err) != apperrors.CodeInsufficientHold {
		t.Fatalf("expected INSUFFICIENT_HOLD, got %v", err)
	}
	if err := ledger.Release(chain.HoldLocationDeposit, alice, chain.Amount(30)); err != nil {
		t.Fatalf("release location: %v", err)
	}
	if got := ledger.HeldBalance(chain.HoldRegionDeposit, alice); !got.Eq(chain.Amount(50)) {
		t.Fatalf("region hold = %v, want 50", got)
	}
	if got := ledger.Balance(chain.Native(), alice); !got.Eq(chain.Amount(50)) {
		t.Fatalf("free balance = %v, want 50", got)
	}
}

func TestTransferHeldRoutesToRecipient(t *testing.T) {
	t.Parallel()

	treasury := chain.AccountID("treasury")
	ledger := NewLedger()
	if err := ledger.Mint(chain.Native(), alice, chain.Amount(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := ledger.Hold(chain.HoldRegionDeposit, alice, chain.Amount(100)); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if err := ledger.TransferHeld(chain.HoldRegionDeposit, alice, treasury, chain.Amount(25)); err != nil {
		t.Fatalf("transfer held: %v", err)
	}
	if got := ledger.HeldBalance(chain.HoldRegionDeposit, alice); !got.Eq(chain.Amount(75)) {
		t.Fatalf("held = %v, want 75", got)
	}
	if got := ledger.Balance(chain.Native(), treasury); !got.Eq(chain.Amount(25)) {
		t.Fatalf("treasury = %v, want 25", got)
	}
	// Slashed funds never return to the depositor's free balance.
	if got := ledger.Balance(chain.Native(), alice); !got.IsZero() {
		t.Fatalf("alice free = %v, want 0", got)
	}
}

func TestTokenCurrenciesAreIndependent(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	if err := ledger.Mint(chain.TokenCurrency(0), alice, chain.Amount(10)); err != nil {
		t.Fatalf("mint token 0: %v", err)
	}
	if err := ledger.Mint(chain.TokenCurrency(1), alice, chain.Amount(7)); err != nil {
		t.Fatalf("mint token 1: %v", err)
	}
	if got := ledger.Balance(chain.TokenCurrency(0), alice); !got.Eq(chain.Amount(10)) {
		t.Fatalf("token 0 = %v, want 10", got)
	}
	if got := ledger.Balance(chain.TokenCurrency(1), alice); !got.Eq(chain.Amount(7)) {
		t.Fatalf("token 1 = %v, want 7", got)
	}
	if got := ledger.Balance(chain.Native(), alice); !got.IsZero() {
		t.Fatalf("native = %v, want 0", got)
	}
	if err := ledger.Burn(chain.TokenCurrency(0), alice, chain.Amount(10)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if err := ledger.Burn(chain.TokenCurrency(0), alice, chain.Amount(1)); err == nil {
		t.Fatal("expected burn beyond balance to fail")
	}
}
