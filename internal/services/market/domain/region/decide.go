package region

import (
	"fmt"

	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/roles"
)

func requireWhitelisted(v View, caller chain.AccountID) error {
	if !v.Roles.Has(caller, roles.RoleWhitelisted) {
		return apperrors.New(apperrors.CodeUserNotWhitelisted, "caller is not whitelisted")
	}
	return nil
}

func requireRegion(v View, regionID chain.RegionID) (*Region, error) {
	reg, ok := v.State.Regions[regionID]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeRegionUnknown, "region does not exist",
			map[string]string{"region_id": fmt.Sprintf("%d", regionID)})
	}
	return reg, nil
}

func requireFreeBalance(v View, account chain.AccountID, amount *uint256.Int) error {
	if v.Ledger.Balance(chain.Native(), account).Lt(amount) {
		return apperrors.New(apperrors.CodeInsufficientBalance, "free balance below required deposit")
	}
	return nil
}

// thresholdMet applies the integer percentage comparison
// yes*100 >= threshold*(yes+no) with checked arithmetic. A round without
// votes never passes.
func thresholdMet(stats VoteStats, thresholdPercent uint32) (bool, error) {
	total, err := chain.CheckedAdd(stats.Yes, stats.No)
	if err != nil {
		return false, err
	}
	if total.IsZero() {
		return false, nil
	}
	yesScaled, overflow := new(uint256.Int).MulOverflow(stats.Yes, uint256.NewInt(100))
	if overflow {
		return false, apperrors.New(apperrors.CodeMultiplyError, "vote threshold multiply overflows")
	}
	needed, overflow := new(uint256.Int).MulOverflow(total, uint256.NewInt(uint64(thresholdPercent)))
	if overflow {
		return false, apperrors.New(apperrors.CodeMultiplyError, "vote threshold multiply overflows")
	}
	return !yesScaled.Lt(needed), nil
}

// ProposeNewRegion opens a voting round for a new region identifier. The
// caller must hold the regional operator role and respects a per-account
// cooldown; a proposal deposit is held for the voting window.
func ProposeNewRegion(v View, caller chain.AccountID, ident Identifier) ([]event.Event, error) {
	if !v.Roles.Has(caller, roles.RoleRegionalOperator) {
		return nil, apperrors.New(apperrors.CodeNoPermission, "caller is not a regional operator")
	}
	if ident == "" {
		return nil, apperrors.New(apperrors.CodeIdentifierEmpty, "region identifier is required")
	}
	if _, pending := v.State.Proposals[ident]; pending {
		return nil, apperrors.New(apperrors.CodeProposalAlreadyPending, "proposal already pending for identifier")
	}
	if _, auctioned := v.State.Auctions[ident]; auctioned {
		return nil, apperrors.New(apperrors.CodeProposalAlreadyPending, "auction already open for identifier")
	}
	if _, exists := v.State.ByIdentifier[ident]; exists {
		return nil, apperrors.New(apperrors.CodeRegionAlreadyExists, "identifier already belongs to a region")
	}
	if last, ok := v.State.LastProposed[caller]; ok && v.Height < last+v.Params.ProposalCooldown {
		return nil, apperrors.New(apperrors.CodeProposalCooldownActive, "proposal cooldown has not elapsed")
	}
	if err := requireFreeBalance(v, caller, v.Params.ProposalDeposit); err != nil {
		return nil, err
	}

	evt, err := event.New(TypeProposed, caller, ProposedPayload{
		Identifier: ident,
		Proposer:   caller,
		Deposit:    v.Params.ProposalDeposit,
		Expiry:     v.Height + v.Params.VotingTime,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// VoteOnRegionProposal casts or replaces a weighted vote on a pending
// proposal. Power derives from the voter's free native balance at call time.
func VoteOnRegionProposal(v View, caller chain.AccountID, ident Identifier, vote Vote) ([]event.Event, error) {
	if err := requireWhitelisted(v, caller); err != nil {
		return nil, err
	}
	if vote != VoteYes && vote != VoteNo {
		return nil, apperrors.New(apperrors.CodeInvalidVote, "vote must be yes or no")
	}
	proposal, ok := v.State.Proposals[ident]
	if !ok {
		return nil, apperrors.New(apperrors.CodeProposalUnknown, "no pending proposal for identifier")
	}
	if v.Height >= proposal.Expiry {
		return nil, apperrors.New(apperrors.CodeVotingClosed, "voting window has closed")
	}

	evt, err := event.New(TypeVoteCast, caller, VoteCastPayload{
		Identifier: ident,
		Voter:      caller,
		Vote:       vote,
		Power:      v.Ledger.Balance(chain.Native(), caller),
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// resolveProposal produces the resolution event for an expired proposal:
// conversion to an auction when the threshold was met, otherwise rejection
// with deposit release.
func resolveProposal(v View, proposal *Proposal) (event.Event, bool, error) {
	passed, err := thresholdMet(proposal.Stats, v.Params.ThresholdPercent)
	if err != nil {
		return event.Event{}, false, err
	}
	if passed {
		evt, err := event.New(TypeAuctionOpened, proposal.Proposer, AuctionOpenedPayload{
			Identifier: proposal.Identifier,
			Proposer:   proposal.Proposer,
			Deposit:    proposal.Deposit,
			Expiry:     v.Height + v.Params.AuctionTime,
		})
		return evt, true, err
	}
	evt, err := event.New(TypeProposalRejected, proposal.Proposer, ProposalRejectedPayload{
		Identifier: proposal.Identifier,
		Proposer:   proposal.Proposer,
		Deposit:    proposal.Deposit,
	})
	return evt, false, err
}

// BidOnRegion places a bid in a region auction. An expired, passed proposal
// that the sweep has not resolved yet is resolved lazily in the same
// operation; outbidding atomically releases the previous bidder's collateral.
func BidOnRegion(v View, caller chain.AccountID, ident Identifier, amount *uint256.Int) ([]event.Event, error) {
	if err := requireWhitelisted(v, caller); err != nil {
		return nil, err
	}

	var events []event.Event
	auction, open := v.State.Auctions[ident]
	auctionExpiry := chain.BlockNumber(0)
	highBid := chain.ZeroAmount()
	highBidder := chain.AccountID("")
	if open {
		auctionExpiry = auction.Expiry
		highBid = auction.HighBid
		highBidder = auction.HighBidder
	} else if proposal, pending := v.State.Proposals[ident]; pending && v.Height >= proposal.Expiry {
		resolution, passed, err := resolveProposal(v, proposal)
		if err != nil {
			return nil, err
		}
		if !passed {
			return nil, apperrors.New(apperrors.CodeAuctionUnknown, "proposal did not pass; no auction to bid on")
		}
		events = append(events, resolution)
		auctionExpiry = v.Height + v.Params.AuctionTime
	} else {
		return nil, apperrors.New(apperrors.CodeAuctionUnknown, "no open auction for identifier")
	}

	if v.Height >= auctionExpiry {
		return nil, apperrors.New(apperrors.CodeAuctionClosed, "auction has expired")
	}
	if amount.Lt(v.Params.MinimumDeposit) {
		return nil, apperrors.New(apperrors.CodeBidTooLow, "bid below minimum region deposit")
	}
	if !highBid.Lt(amount) {
		return nil, apperrors.New(apperrors.CodeBidTooLow, "bid must exceed current highest bid")
	}
	// A raise by the standing high bidder only needs the difference free;
	// their previous hold is released in the same batch.
	required := amount
	if caller == highBidder {
		net, err := chain.CheckedSub(amount, highBid)
		if err != nil {
			return nil, err
		}
		required = net
	}
	if err := requireFreeBalance(v, caller, required); err != nil {
		return nil, err
	}

	payload := BidPlacedPayload{
		Identifier: ident,
		Bidder:     caller,
		Amount:     amount,
	}
	if highBidder != "" {
		payload.PrevBidder = highBidder
		payload.PrevAmount = highBid
	}
	evt, err := event.New(TypeBidPlaced, caller, payload)
	if err != nil {
		return nil, err
	}
	return append(events, evt), nil
}

// CreateNewRegion mints the region for the auction winner once the auction
// has expired. The winning bid stays held as the region's permanent deposit.
func CreateNewRegion(v View, caller chain.AccountID, ident Identifier, listingDuration, taxPpm uint32) ([]event.Event, error) {
	auction, ok := v.State.Auctions[ident]
	if !ok {
		return nil, apperrors.New(apperrors.CodeAuctionUnknown, "no auction for identifier")
	}
	if v.Height < auction.Expiry {
		return nil, apperrors.New(apperrors.CodeAuctionStillOpen, "auction has not expired yet")
	}
	if auction.HighBidder == "" || auction.HighBidder != caller {
		return nil, apperrors.New(apperrors.CodeNotHighestBidder, "caller is not the highest bidder")
	}
	if err := validateListingDuration(v.Params, listingDuration); err != nil {
		return nil, err
	}

	evt, err := event.New(TypeCreated, caller, CreatedPayload{
		Identifier:      ident,
		RegionID:        v.State.NextRegionID,
		Owner:           caller,
		Collection:      v.NFTs.NextCollectionID(),
		ListingDuration: listingDuration,
		TaxPpm:          taxPpm,
		Deposit:         auction.HighBid,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

func validateListingDuration(p Params, duration uint32) error {
	if duration == 0 {
		return apperrors.New(apperrors.CodeListingDurationCantBeZero, "listing duration cannot be zero")
	}
	if duration > p.MaxListingDuration {
		return apperrors.New(apperrors.CodeListingDurationTooHigh, "listing duration above maximum")
	}
	return nil
}

// AdjustListingDuration changes a region's listing duration bound.
func AdjustListingDuration(v View, caller chain.AccountID, regionID chain.RegionID, duration uint32) ([]event.Event, error) {
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner != caller {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the region owner may adjust listing duration")
	}
	if err := validateListingDuration(v.Params, duration); err != nil {
		return nil, err
	}
	evt, err := event.New(TypeListingDurationAdjusted, caller, DurationAdjustedPayload{
		RegionID:        regionID,
		ListingDuration: duration,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// AdjustRegionTax changes a region's tax fraction.
func AdjustRegionTax(v View, caller chain.AccountID, regionID chain.RegionID, taxPpm uint32) ([]event.Event, error) {
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner != caller {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the region owner may adjust tax")
	}
	evt, err := event.New(TypeTaxAdjusted, caller, TaxAdjustedPayload{
		RegionID: regionID,
		TaxPpm:   taxPpm,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}
