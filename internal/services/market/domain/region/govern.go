package region

import (
	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

// ProposeRegionTakeover opens the single outstanding legacy takeover request
// for a region, holding a deposit equal to the region's permanent deposit.
func ProposeRegionTakeover(v View, caller chain.AccountID, regionID chain.RegionID) ([]event.Event, error) {
	if err := requireWhitelisted(v, caller); err != nil {
		return nil, err
	}
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner == caller {
		return nil, apperrors.New(apperrors.CodeAlreadyRegionOwner, "caller already owns the region")
	}
	if _, pending := v.State.Takeovers[regionID]; pending {
		return nil, apperrors.New(apperrors.CodeTakeoverAlreadyPending, "takeover already pending for region")
	}
	if err := requireFreeBalance(v, caller, reg.Deposit); err != nil {
		return nil, err
	}

	evt, err := event.New(TypeTakeoverProposed, caller, TakeoverProposedPayload{
		RegionID: regionID,
		Proposer: caller,
		Deposit:  reg.Deposit,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// HandleTakeover lets the region owner accept or reject the pending takeover.
// Accepting transfers ownership and releases the old owner's deposit to them;
// the requester's deposit becomes the new permanent hold. Rejecting releases
// the requester's deposit.
func HandleTakeover(v View, caller chain.AccountID, regionID chain.RegionID, accept bool) ([]event.Event, error) {
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner != caller {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the region owner may handle a takeover")
	}
	takeover, ok := v.State.Takeovers[regionID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNoTakeoverRequest, "no pending takeover for region")
	}

	if accept {
		evt, err := event.New(TypeTakeoverAccepted, caller, TakeoverAcceptedPayload{
			RegionID:   regionID,
			OldOwner:   reg.Owner,
			NewOwner:   takeover.Proposer,
			OldDeposit: reg.Deposit,
			NewDeposit: takeover.Deposit,
		})
		if err != nil {
			return nil, err
		}
		return []event.Event{evt}, nil
	}
	evt, err := event.New(TypeTakeoverRejected, caller, TakeoverClosedPayload{
		RegionID: regionID,
		Proposer: takeover.Proposer,
		Deposit:  takeover.Deposit,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// CancelRegionTakeover lets the requester withdraw their pending takeover,
// releasing the held deposit.
func CancelRegionTakeover(v View, caller chain.AccountID, regionID chain.RegionID) ([]event.Event, error) {
	if _, err := requireRegion(v, regionID); err != nil {
		return nil, err
	}
	takeover, ok := v.State.Takeovers[regionID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNoTakeoverRequest, "no pending takeover for region")
	}
	if takeover.Proposer != caller {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the requester may cancel a takeover")
	}

	evt, err := event.New(TypeTakeoverCancelled, caller, TakeoverClosedPayload{
		RegionID: regionID,
		Proposer: takeover.Proposer,
		Deposit:  takeover.Deposit,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// ProposeRemoveRegionalOperator opens a contested-removal vote against the
// sitting region owner.
func ProposeRemoveRegionalOperator(v View, caller chain.AccountID, regionID chain.RegionID) ([]event.Event, error) {
	if err := requireWhitelisted(v, caller); err != nil {
		return nil, err
	}
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner == caller {
		return nil, apperrors.New(apperrors.CodeAlreadyRegionOwner, "owners resign instead of contesting themselves")
	}
	if _, pending := v.State.Removals[regionID]; pending {
		return nil, apperrors.New(apperrors.CodeRemovalAlreadyPending, "removal vote already pending for region")
	}
	if _, open := v.State.Replacements[regionID]; open {
		return nil, apperrors.New(apperrors.CodeRemovalAlreadyPending, "replacement auction already open for region")
	}
	if err := requireFreeBalance(v, caller, v.Params.ProposalDeposit); err != nil {
		return nil, err
	}

	evt, err := event.New(TypeRemovalProposed, caller, RemovalProposedPayload{
		RegionID: regionID,
		Proposer: caller,
		Deposit:  v.Params.ProposalDeposit,
		Expiry:   v.Height + v.Params.VotingTime,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// VoteOnRemoveOwnerProposal casts or replaces a weighted vote on a pending
// removal proposal.
func VoteOnRemoveOwnerProposal(v View, caller chain.AccountID, regionID chain.RegionID, vote Vote) ([]event.Event, error) {
	if err := requireWhitelisted(v, caller); err != nil {
		return nil, err
	}
	if vote != VoteYes && vote != VoteNo {
		return nil, apperrors.New(apperrors.CodeInvalidVote, "vote must be yes or no")
	}
	removal, ok := v.State.Removals[regionID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeProposalUnknown, "no pending removal vote for region")
	}
	if v.Height >= removal.Expiry {
		return nil, apperrors.New(apperrors.CodeVotingClosed, "voting window has closed")
	}

	evt, err := event.New(TypeRemovalVoteCast, caller, RemovalVoteCastPayload{
		RegionID: regionID,
		Voter:    caller,
		Vote:     vote,
		Power:    v.Ledger.Balance(chain.Native(), caller),
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// BidOnRegionReplacement places a bid in an open replacement auction. The
// sitting owner may not bid on their own replacement.
func BidOnRegionReplacement(v View, caller chain.AccountID, regionID chain.RegionID, amount *uint256.Int) ([]event.Event, error) {
	if err := requireWhitelisted(v, caller); err != nil {
		return nil, err
	}
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner == caller {
		return nil, apperrors.New(apperrors.CodeAlreadyRegionOwner, "the sitting owner may not bid")
	}
	replacement, open := v.State.Replacements[regionID]
	if !open {
		return nil, apperrors.New(apperrors.CodeAuctionUnknown, "no open replacement auction for region")
	}
	if v.Height >= replacement.Expiry {
		return nil, apperrors.New(apperrors.CodeAuctionClosed, "replacement auction has expired")
	}
	if amount.Lt(v.Params.MinimumDeposit) {
		return nil, apperrors.New(apperrors.CodeBidTooLow, "bid below minimum region deposit")
	}
	if !replacement.HighBid.Lt(amount) {
		return nil, apperrors.New(apperrors.CodeBidTooLow, "bid must exceed current highest bid")
	}
	required := amount
	if caller == replacement.HighBidder {
		net, err := chain.CheckedSub(amount, replacement.HighBid)
		if err != nil {
			return nil, err
		}
		required = net
	}
	if err := requireFreeBalance(v, caller, required); err != nil {
		return nil, err
	}

	payload := ReplacementBidPayload{
		RegionID: regionID,
		Bidder:   caller,
		Amount:   amount,
	}
	if replacement.HighBidder != "" {
		payload.PrevBidder = replacement.HighBidder
		payload.PrevAmount = replacement.HighBid
	}
	evt, err := event.New(TypeReplacementBidPlaced, caller, payload)
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// InitiateRegionOwnerResignation schedules the owner's exit after the notice
// period; the sweep opens a replacement auction once the notice elapses.
func InitiateRegionOwnerResignation(v View, caller chain.AccountID, regionID chain.RegionID) ([]event.Event, error) {
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner != caller {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the region owner may resign")
	}
	if reg.Resigning {
		return nil, apperrors.New(apperrors.CodeResignationPending, "resignation already noticed")
	}
	if _, open := v.State.Replacements[regionID]; open {
		return nil, apperrors.New(apperrors.CodeResignationPending, "replacement auction already open for region")
	}

	evt, err := event.New(TypeResignationInitiated, caller, ResignationInitiatedPayload{
		RegionID:    regionID,
		Owner:       caller,
		EffectiveAt: v.Height + v.Params.NoticePeriod,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// RegisterLawyer lets the region owner designate an account as an eligible
// lawyer for the region's legal workflow.
func RegisterLawyer(v View, caller chain.AccountID, regionID chain.RegionID, lawyer chain.AccountID) ([]event.Event, error) {
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner != caller {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the region owner may register lawyers")
	}
	if v.State.IsLawyer(regionID, lawyer) {
		return nil, apperrors.New(apperrors.CodeLawyerAlreadyAssigned, "lawyer already registered for region")
	}

	evt, err := event.New(TypeLawyerRegistered, caller, LawyerRegisteredPayload{
		RegionID: regionID,
		Lawyer:   lawyer,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// CreateNewLocation registers a postcode inside a region, holding the
// location deposit.
func CreateNewLocation(v View, caller chain.AccountID, regionID chain.RegionID, postcode string) ([]event.Event, error) {
	reg, err := requireRegion(v, regionID)
	if err != nil {
		return nil, err
	}
	if reg.Owner != caller {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the region owner may register locations")
	}
	if postcode == "" {
		return nil, apperrors.New(apperrors.CodePostcodeEmpty, "postcode is required")
	}
	if len(postcode) > v.Params.PostcodeLimit {
		return nil, apperrors.New(apperrors.CodePostcodeTooLong, "postcode exceeds length limit")
	}
	if v.State.LocationRegistered(regionID, postcode) {
		return nil, apperrors.New(apperrors.CodeLocationRegistered, "location already registered")
	}
	if err := requireFreeBalance(v, caller, v.Params.LocationDeposit); err != nil {
		return nil, err
	}

	evt, err := event.New(TypeLocationCreated, caller, LocationCreatedPayload{
		RegionID: regionID,
		Postcode: postcode,
		Deposit:  v.Params.LocationDeposit,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}
