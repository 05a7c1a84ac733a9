// Package region implements the region governance state machine: proposal
// intake, weighted voting, auctioning, ownership transfer, contested removal,
// resignation, and regional operator slashing.
//
// Every operation is a pure decision over current state producing journal
// events; Apply folds committed events back into state. A rejected operation
// emits nothing and therefore has no effect.
package region

import (
	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/bank"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/nft"
	"github.com/deedshare/deedshare/internal/services/market/domain/roles"
)

// Identifier is the caller-supplied jurisdiction code a proposal round is
// named after ("Japan", "England"). A created region keeps its identifier;
// identifiers of live regions cannot be re-proposed.
type Identifier string

// Vote is a voting direction.
type Vote string

const (
	VoteYes Vote = "yes"
	VoteNo  Vote = "no"
)

// VoteRecord stores one voter's current direction and power.
type VoteRecord struct {
	Vote  Vote
	Power *uint256.Int
}

// VoteStats aggregates voting power per direction.
type VoteStats struct {
	Yes *uint256.Int
	No  *uint256.Int
}

// Proposal is a pending region proposal in its voting window.
type Proposal struct {
	Identifier Identifier
	Proposer   chain.AccountID
	Deposit    *uint256.Int
	Expiry     chain.BlockNumber
	Stats      VoteStats
}

// Auction is a live or concluded-but-unclaimed region auction. At most one
// non-zero collateral hold exists per auction: the current high bidder's.
type Auction struct {
	Identifier Identifier
	HighBidder chain.AccountID
	HighBid    *uint256.Int
	Expiry     chain.BlockNumber
}

// Region is a created region.
type Region struct {
	ID              chain.RegionID
	Identifier      Identifier
	Owner           chain.AccountID
	Collection      nft.CollectionID
	ListingDuration uint32
	TaxPpm          uint32
	LocationCount   uint32
	NextOwnerChange chain.BlockNumber
	Resigning       bool
	Deposit         *uint256.Int
}

// Takeover is the single outstanding legacy takeover request for a region.
type Takeover struct {
	Proposer chain.AccountID
	Deposit  *uint256.Int
}

// RemovalProposal is a pending contested-removal vote against a region owner.
type RemovalProposal struct {
	RegionID chain.RegionID
	Proposer chain.AccountID
	Deposit  *uint256.Int
	Expiry   chain.BlockNumber
	Stats    VoteStats
}

// ReplacementAuction re-auctions an owned region after a passed removal vote
// or an elapsed resignation notice.
type ReplacementAuction struct {
	RegionID    chain.RegionID
	HighBidder  chain.AccountID
	HighBid     *uint256.Int
	Expiry      chain.BlockNumber
	Resignation bool
}

// State is the full governance state folded from the journal.
type State struct {
	Proposals    map[Identifier]*Proposal
	Votes        map[Identifier]map[chain.AccountID]VoteRecord
	Auctions     map[Identifier]*Auction
	Regions      map[chain.RegionID]*Region
	ByIdentifier map[Identifier]chain.RegionID
	Takeovers    map[chain.RegionID]*Takeover
	Removals     map[chain.RegionID]*RemovalProposal
	RemovalVotes map[chain.RegionID]map[chain.AccountID]VoteRecord
	Replacements map[chain.RegionID]*ReplacementAuction
	Locations    map[chain.RegionID]map[string]bool
	Lawyers      map[chain.RegionID]map[chain.AccountID]bool
	LastProposed map[chain.AccountID]chain.BlockNumber
	NextRegionID chain.RegionID
}

// NewState returns an empty governance state.
func NewState() *State {
	return &State{
		Proposals:    make(map[Identifier]*Proposal),
		Votes:        make(map[Identifier]map[chain.AccountID]VoteRecord),
		Auctions:     make(map[Identifier]*Auction),
		Regions:      make(map[chain.RegionID]*Region),
		ByIdentifier: make(map[Identifier]chain.RegionID),
		Takeovers:    make(map[chain.RegionID]*Takeover),
		Removals:     make(map[chain.RegionID]*RemovalProposal),
		RemovalVotes: make(map[chain.RegionID]map[chain.AccountID]VoteRecord),
		Replacements: make(map[chain.RegionID]*ReplacementAuction),
		Locations:    make(map[chain.RegionID]map[string]bool),
		Lawyers:      make(map[chain.RegionID]map[chain.AccountID]bool),
		LastProposed: make(map[chain.AccountID]chain.BlockNumber),
	}
}

// View is the read context a decision runs against.
type View struct {
	State  *State
	Ledger *bank.Ledger
	Roles  *roles.Registry
	NFTs   *nft.Registry
	Height chain.BlockNumber
	Params Params
}

// IsLawyer reports whether account is a registered lawyer for the region.
func (s *State) IsLawyer(regionID chain.RegionID, account chain.AccountID) bool {
	return s.Lawyers[regionID][account]
}

// LocationRegistered reports whether the postcode is registered in the region.
func (s *State) LocationRegistered(regionID chain.RegionID, postcode string) bool {
	return s.Locations[regionID][postcode]
}
