// Package token implements the fractional property ledger: fixed-supply
// fungible tokens per property asset, escrowed at creation and distributed to
// investors, with strict conservation between escrow and recorded owners.
package token

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/bank"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/nft"
	"github.com/deedshare/deedshare/internal/services/market/domain/region"
)

// PropertyAsset is a tokenized property.
type PropertyAsset struct {
	ID         chain.AssetID
	RegionID   chain.RegionID
	Location   string
	Collection nft.CollectionID
	Item       nft.ItemID
	Supply     *uint256.Int
	Price      *uint256.Int
	Data       string
	Funding    chain.AccountID
	Finalized  bool
	SpvCreated bool
}

// State is the property ledger folded from the journal. OwnerTokens is the
// authoritative bookkeeping; the bank balances must always agree with it.
type State struct {
	Assets      map[chain.AssetID]*PropertyAsset
	Owners      map[chain.AssetID]map[chain.AccountID]bool
	OwnerTokens map[chain.AssetID]map[chain.AccountID]*uint256.Int
	NextAssetID chain.AssetID
}

// NewState returns an empty property ledger.
func NewState() *State {
	return &State{
		Assets:      make(map[chain.AssetID]*PropertyAsset),
		Owners:      make(map[chain.AssetID]map[chain.AccountID]bool),
		OwnerTokens: make(map[chain.AssetID]map[chain.AccountID]*uint256.Int),
	}
}

// Params bound the property ledger.
type Params struct {
	// MaxPropertyToken caps a single asset's fixed supply.
	MaxPropertyToken *uint256.Int
	// MaxPropertyOwners caps the owner set per asset.
	MaxPropertyOwners int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		MaxPropertyToken:  chain.Amount(1_000_000),
		MaxPropertyOwners: 100,
	}
}

// View is the read context a decision runs against.
type View struct {
	State   *State
	Regions *region.State
	Ledger  *bank.Ledger
	NFTs    *nft.Registry
	Params  Params
}

// EscrowAccount is the deterministic per-asset escrow account.
func EscrowAccount(id chain.AssetID) chain.AccountID {
	return chain.AccountID(fmt.Sprintf("property-escrow-%d", id))
}

// OwnerBalance returns the recorded bookkeeping balance of owner in asset.
func (s *State) OwnerBalance(id chain.AssetID, owner chain.AccountID) *uint256.Int {
	balance := s.OwnerTokens[id][owner]
	if balance == nil {
		return chain.ZeroAmount()
	}
	return new(uint256.Int).Set(balance)
}

// OwnerList returns the current owner set of the asset.
func (s *State) OwnerList(id chain.AssetID) []chain.AccountID {
	owners := make([]chain.AccountID, 0, len(s.Owners[id]))
	for owner := range s.Owners[id] {
		owners = append(owners, owner)
	}
	return owners
}
