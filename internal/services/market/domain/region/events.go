package region

import (
	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/nft"
)

// Event types committed by the region state machine.
const (
	TypeProposed                event.Type = "region.proposed"
	TypeVoteCast                event.Type = "region.vote_cast"
	TypeProposalRejected        event.Type = "region.proposal_rejected"
	TypeAuctionOpened           event.Type = "region.auction_opened"
	TypeBidPlaced               event.Type = "region.bid_placed"
	TypeAuctionLapsed           event.Type = "region.auction_lapsed"
	TypeCreated                 event.Type = "region.created"
	TypeListingDurationAdjusted event.Type = "region.listing_duration_adjusted"
	TypeTaxAdjusted             event.Type = "region.tax_adjusted"
	TypeTakeoverProposed        event.Type = "region.takeover_proposed"
	TypeTakeoverAccepted        event.Type = "region.takeover_accepted"
	TypeTakeoverRejected        event.Type = "region.takeover_rejected"
	TypeTakeoverCancelled       event.Type = "region.takeover_cancelled"
	TypeRemovalProposed         event.Type = "region.removal_proposed"
	TypeRemovalVoteCast         event.Type = "region.removal_vote_cast"
	TypeRemovalRejected         event.Type = "region.removal_rejected"
	TypeReplacementOpened       event.Type = "region.replacement_auction_opened"
	TypeReplacementBidPlaced    event.Type = "region.replacement_bid_placed"
	TypeReplacementLapsed       event.Type = "region.replacement_auction_lapsed"
	TypeOwnerReplaced           event.Type = "region.owner_replaced"
	TypeResignationInitiated    event.Type = "region.resignation_initiated"
	TypeLawyerRegistered        event.Type = "region.lawyer_registered"
	TypeLocationCreated         event.Type = "region.location_created"
)

// Types lists every region event type for journal registration.
func Types() []event.Type {
	return []event.Type{
		TypeProposed, TypeVoteCast, TypeProposalRejected, TypeAuctionOpened,
		TypeBidPlaced, TypeAuctionLapsed, TypeCreated,
		TypeListingDurationAdjusted, TypeTaxAdjusted,
		TypeTakeoverProposed, TypeTakeoverAccepted, TypeTakeoverRejected,
		TypeTakeoverCancelled, TypeRemovalProposed, TypeRemovalVoteCast,
		TypeRemovalRejected, TypeReplacementOpened, TypeReplacementBidPlaced,
		TypeReplacementLapsed, TypeOwnerReplaced, TypeResignationInitiated,
		TypeLawyerRegistered, TypeLocationCreated,
	}
}

// ProposedPayload records a new region proposal and its held deposit.
type ProposedPayload struct {
	Identifier Identifier        `json:"identifier"`
	Proposer   chain.AccountID   `json:"proposer"`
	Deposit    *uint256.Int      `json:"deposit"`
	Expiry     chain.BlockNumber `json:"expiry"`
}

// VoteCastPayload records a vote (or re-vote) on a pending proposal.
type VoteCastPayload struct {
	Identifier Identifier      `json:"identifier"`
	Voter      chain.AccountID `json:"voter"`
	Vote       Vote            `json:"vote"`
	Power      *uint256.Int    `json:"power"`
}

// ProposalRejectedPayload purges a failed proposal and releases its deposit.
type ProposalRejectedPayload struct {
	Identifier Identifier      `json:"identifier"`
	Proposer   chain.AccountID `json:"proposer"`
	Deposit    *uint256.Int    `json:"deposit"`
}

// AuctionOpenedPayload converts a passed proposal into an auction.
type AuctionOpenedPayload struct {
	Identifier Identifier        `json:"identifier"`
	Proposer   chain.AccountID   `json:"proposer"`
	Deposit    *uint256.Int      `json:"deposit"`
	Expiry     chain.BlockNumber `json:"expiry"`
}

// BidPlacedPayload records an accepted bid and the outbid collateral to release.
type BidPlacedPayload struct {
	Identifier Identifier      `json:"identifier"`
	Bidder     chain.AccountID `json:"bidder"`
	Amount     *uint256.Int    `json:"amount"`
	PrevBidder chain.AccountID `json:"prev_bidder,omitempty"`
	PrevAmount *uint256.Int    `json:"prev_amount,omitempty"`
}

// AuctionLapsedPayload purges an auction that expired without bids.
type AuctionLapsedPayload struct {
	Identifier Identifier `json:"identifier"`
}

// CreatedPayload records a region creation by the winning bidder.
type CreatedPayload struct {
	Identifier      Identifier       `json:"identifier"`
	RegionID        chain.RegionID   `json:"region_id"`
	Owner           chain.AccountID  `json:"owner"`
	Collection      nft.CollectionID `json:"collection"`
	ListingDuration uint32           `json:"listing_duration"`
	TaxPpm          uint32           `json:"tax_ppm"`
	Deposit         *uint256.Int     `json:"deposit"`
}

// DurationAdjustedPayload records a listing duration change.
type DurationAdjustedPayload struct {
	RegionID        chain.RegionID `json:"region_id"`
	ListingDuration uint32         `json:"listing_duration"`
}

// TaxAdjustedPayload records a tax change.
type TaxAdjustedPayload struct {
	RegionID chain.RegionID `json:"region_id"`
	TaxPpm   uint32         `json:"tax_ppm"`
}

// TakeoverProposedPayload records a legacy takeover request and its deposit.
type TakeoverProposedPayload struct {
	RegionID chain.RegionID  `json:"region_id"`
	Proposer chain.AccountID `json:"proposer"`
	Deposit  *uint256.Int    `json:"deposit"`
}

// TakeoverAcceptedPayload transfers ownership to the requester.
type TakeoverAcceptedPayload struct {
	RegionID   chain.RegionID  `json:"region_id"`
	OldOwner   chain.AccountID `json:"old_owner"`
	NewOwner   chain.AccountID `json:"new_owner"`
	OldDeposit *uint256.Int    `json:"old_deposit"`
	NewDeposit *uint256.Int    `json:"new_deposit"`
}

// TakeoverClosedPayload rejects or cancels a takeover, releasing its deposit.
type TakeoverClosedPayload struct {
	RegionID chain.RegionID  `json:"region_id"`
	Proposer chain.AccountID `json:"proposer"`
	Deposit  *uint256.Int    `json:"deposit"`
}

// RemovalProposedPayload opens a contested-removal vote.
type RemovalProposedPayload struct {
	RegionID chain.RegionID    `json:"region_id"`
	Proposer chain.AccountID   `json:"proposer"`
	Deposit  *uint256.Int      `json:"deposit"`
	Expiry   chain.BlockNumber `json:"expiry"`
}

// RemovalVoteCastPayload records a vote on a removal proposal.
type RemovalVoteCastPayload struct {
	RegionID chain.RegionID  `json:"region_id"`
	Voter    chain.AccountID `json:"voter"`
	Vote     Vote            `json:"vote"`
	Power    *uint256.Int    `json:"power"`
}

// RemovalRejectedPayload purges a failed removal vote.
type RemovalRejectedPayload struct {
	RegionID chain.RegionID  `json:"region_id"`
	Proposer chain.AccountID `json:"proposer"`
	Deposit  *uint256.Int    `json:"deposit"`
}

// ReplacementOpenedPayload opens a replacement auction for an owned region.
type ReplacementOpenedPayload struct {
	RegionID    chain.RegionID    `json:"region_id"`
	Expiry      chain.BlockNumber `json:"expiry"`
	Resignation bool              `json:"resignation"`
	Proposer    chain.AccountID   `json:"proposer,omitempty"`
	Deposit     *uint256.Int      `json:"deposit,omitempty"`
}

// ReplacementBidPayload records a replacement auction bid.
type ReplacementBidPayload struct {
	RegionID   chain.RegionID  `json:"region_id"`
	Bidder     chain.AccountID `json:"bidder"`
	Amount     *uint256.Int    `json:"amount"`
	PrevBidder chain.AccountID `json:"prev_bidder,omitempty"`
	PrevAmount *uint256.Int    `json:"prev_amount,omitempty"`
}

// ReplacementLapsedPayload closes a replacement auction that drew no bids.
type ReplacementLapsedPayload struct {
	RegionID chain.RegionID `json:"region_id"`
}

// OwnerReplacedPayload concludes a replacement auction: the high bidder takes
// ownership, the deposed owner is slashed (zero on resignation) and refunded
// the remainder of their permanent deposit.
type OwnerReplacedPayload struct {
	RegionID    chain.RegionID  `json:"region_id"`
	OldOwner    chain.AccountID `json:"old_owner"`
	NewOwner    chain.AccountID `json:"new_owner"`
	Bid         *uint256.Int    `json:"bid"`
	OldDeposit  *uint256.Int    `json:"old_deposit"`
	SlashAmount *uint256.Int    `json:"slash_amount"`
	Refund      *uint256.Int    `json:"refund"`
	Resignation bool            `json:"resignation"`
}

// ResignationInitiatedPayload schedules an owner's exit.
type ResignationInitiatedPayload struct {
	RegionID    chain.RegionID    `json:"region_id"`
	Owner       chain.AccountID   `json:"owner"`
	EffectiveAt chain.BlockNumber `json:"effective_at"`
}

// LawyerRegisteredPayload designates an eligible lawyer for a region.
type LawyerRegisteredPayload struct {
	RegionID chain.RegionID  `json:"region_id"`
	Lawyer   chain.AccountID `json:"lawyer"`
}

// LocationCreatedPayload registers a postcode and its held deposit.
type LocationCreatedPayload struct {
	RegionID chain.RegionID `json:"region_id"`
	Postcode string         `json:"postcode"`
	Deposit  *uint256.Int   `json:"deposit"`
}
