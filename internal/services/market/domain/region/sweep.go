package region

import (
	"sort"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

// SystemActor attributes events produced by the block sweep rather than a
// caller.
const SystemActor chain.AccountID = "system"

// Sweep resolves everything that expired at or before the view's height:
// proposals (to auction or rejection), no-bid auctions, removal votes,
// replacement auctions, and elapsed resignation notices. Auctions with a
// standing bid are left open for the winner to claim. Iteration order is
// sorted so replay is deterministic.
func Sweep(v View) ([]event.Event, error) {
	var events []event.Event

	idents := make([]Identifier, 0, len(v.State.Proposals))
	for ident := range v.State.Proposals {
		idents = append(idents, ident)
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i] < idents[j] })
	for _, ident := range idents {
		proposal := v.State.Proposals[ident]
		if v.Height < proposal.Expiry {
			continue
		}
		resolution, _, err := resolveProposal(v, proposal)
		if err != nil {
			return nil, err
		}
		events = append(events, resolution)
	}

	idents = idents[:0]
	for ident := range v.State.Auctions {
		idents = append(idents, ident)
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i] < idents[j] })
	for _, ident := range idents {
		auction := v.State.Auctions[ident]
		if v.Height < auction.Expiry || auction.HighBidder != "" {
			continue
		}
		evt, err := event.New(TypeAuctionLapsed, SystemActor, AuctionLapsedPayload{
			Identifier: ident,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	opened := make(map[chain.RegionID]bool)
	regionIDs := make([]chain.RegionID, 0, len(v.State.Removals))
	for id := range v.State.Removals {
		regionIDs = append(regionIDs, id)
	}
	sort.Slice(regionIDs, func(i, j int) bool { return regionIDs[i] < regionIDs[j] })
	for _, id := range regionIDs {
		removal := v.State.Removals[id]
		if v.Height < removal.Expiry {
			continue
		}
		passed, err := thresholdMet(removal.Stats, v.Params.ThresholdPercent)
		if err != nil {
			return nil, err
		}
		var evt event.Event
		if passed {
			evt, err = event.New(TypeReplacementOpened, SystemActor, ReplacementOpenedPayload{
				RegionID: id,
				Expiry:   v.Height + v.Params.AuctionTime,
				Proposer: removal.Proposer,
				Deposit:  removal.Deposit,
			})
			opened[id] = true
		} else {
			evt, err = event.New(TypeRemovalRejected, SystemActor, RemovalRejectedPayload{
				RegionID: id,
				Proposer: removal.Proposer,
				Deposit:  removal.Deposit,
			})
		}
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	regionIDs = regionIDs[:0]
	for id := range v.State.Replacements {
		regionIDs = append(regionIDs, id)
	}
	sort.Slice(regionIDs, func(i, j int) bool { return regionIDs[i] < regionIDs[j] })
	for _, id := range regionIDs {
		replacement := v.State.Replacements[id]
		if v.Height < replacement.Expiry {
			continue
		}
		evt, err := concludeReplacement(v, replacement)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	regionIDs = regionIDs[:0]
	for id := range v.State.Regions {
		regionIDs = append(regionIDs, id)
	}
	sort.Slice(regionIDs, func(i, j int) bool { return regionIDs[i] < regionIDs[j] })
	for _, id := range regionIDs {
		reg := v.State.Regions[id]
		if !reg.Resigning || v.Height < reg.NextOwnerChange {
			continue
		}
		if _, open := v.State.Replacements[id]; open || opened[id] {
			continue
		}
		evt, err := event.New(TypeReplacementOpened, SystemActor, ReplacementOpenedPayload{
			RegionID:    id,
			Expiry:      v.Height + v.Params.AuctionTime,
			Resignation: true,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	return events, nil
}

// concludeReplacement closes an expired replacement auction. With a standing
// bid the high bidder takes the region: their bid becomes the permanent hold,
// the deposed owner is slashed (nothing on resignation) and refunded the
// remainder. Without bids the auction lapses and the owner retains.
func concludeReplacement(v View, replacement *ReplacementAuction) (event.Event, error) {
	if replacement.HighBidder == "" {
		return event.New(TypeReplacementLapsed, SystemActor, ReplacementLapsedPayload{
			RegionID: replacement.RegionID,
		})
	}
	reg := v.State.Regions[replacement.RegionID]
	slash := chain.ZeroAmount()
	if !replacement.Resignation {
		var err error
		slash, err = chain.MulPpm(reg.Deposit, v.Params.SlashPenaltyPpm)
		if err != nil {
			return event.Event{}, err
		}
	}
	refund, err := chain.CheckedSub(reg.Deposit, slash)
	if err != nil {
		return event.Event{}, err
	}
	return event.New(TypeOwnerReplaced, SystemActor, OwnerReplacedPayload{
		RegionID:    replacement.RegionID,
		OldOwner:    reg.Owner,
		NewOwner:    replacement.HighBidder,
		Bid:         replacement.HighBid,
		OldDeposit:  reg.Deposit,
		SlashAmount: slash,
		Refund:      refund,
		Resignation: replacement.Resignation,
	})
}
