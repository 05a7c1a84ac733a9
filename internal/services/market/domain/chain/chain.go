// Package chain defines the shared primitives of the market chain state:
// account and asset identifiers, block heights, currencies, and checked
// monetary arithmetic.
package chain

import (
	"fmt"

	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
)

// AccountID identifies an account on the market chain.
type AccountID string

// BlockNumber is the abstract monotonically increasing chain height.
type BlockNumber uint64

// RegionID identifies a created region. Region ids are assigned from a
// monotonic counter and never reused.
type RegionID uint32

// AssetID identifies a fractionalized property token asset.
type AssetID uint32

// HoldReason tags a named balance reservation. Funds held under one reason
// are never touched by releases under another.
type HoldReason string

const (
	// HoldRegionDeposit reserves region proposal, auction, and ownership deposits.
	HoldRegionDeposit HoldReason = "REGION_DEPOSIT_RESERVE"
	// HoldLocationDeposit reserves per-location registration deposits.
	HoldLocationDeposit HoldReason = "LOCATION_DEPOSIT_RESERVE"
)

// CurrencyKind distinguishes the native settlement currency from
// per-property token assets.
type CurrencyKind string

const (
	CurrencyNative CurrencyKind = "native"
	CurrencyToken  CurrencyKind = "token"
)

// Currency identifies a fungible asset class held by the bank ledger.
type Currency struct {
	Kind  CurrencyKind `json:"kind"`
	Asset AssetID      `json:"asset,omitempty"`
}

// Native returns the native settlement currency.
func Native() Currency {
	return Currency{Kind: CurrencyNative}
}

// TokenCurrency returns the currency of a property token asset.
func TokenCurrency(asset AssetID) Currency {
	return Currency{Kind: CurrencyToken, Asset: asset}
}

// String renders the currency for map keys and log lines.
func (c Currency) String() string {
	if c.Kind == CurrencyNative {
		return "native"
	}
	return fmt.Sprintf("token/%d", c.Asset)
}

// Amount constructs a monetary amount from a uint64.
func Amount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// ZeroAmount returns a fresh zero amount.
func ZeroAmount() *uint256.Int {
	return uint256.NewInt(0)
}

// CheckedAdd returns a+b or ArithmeticOverflow.
func CheckedAdd(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, apperrors.New(apperrors.CodeArithmeticOverflow, "amount addition overflows")
	}
	return sum, nil
}

// CheckedSub returns a-b or ArithmeticOverflow when b exceeds a.
func CheckedSub(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, apperrors.New(apperrors.CodeArithmeticOverflow, "amount subtraction underflows")
	}
	return diff, nil
}

// MulPpm returns a * ppm / 1_000_000 with checked intermediate arithmetic.
// It is the fixed-point multiply used for tax and slash fractions.
func MulPpm(a *uint256.Int, ppm uint32) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(a, uint256.NewInt(uint64(ppm)))
	if overflow {
		return nil, apperrors.New(apperrors.CodeMultiplyError, "ppm multiply overflows")
	}
	return product.Div(product, uint256.NewInt(1_000_000)), nil
}
