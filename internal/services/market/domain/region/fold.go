package region

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

func (s *VoteStats) count(dir Vote, power *uint256.Int) error {
	target := s.Yes
	if dir == VoteNo {
		target = s.No
	}
	next, err := chain.CheckedAdd(target, power)
	if err != nil {
		return err
	}
	if dir == VoteNo {
		s.No = next
	} else {
		s.Yes = next
	}
	return nil
}

func (s *VoteStats) retract(dir Vote, power *uint256.Int) {
	if dir == VoteNo {
		s.No = new(uint256.Int).Sub(s.No, power)
		return
	}
	s.Yes = new(uint256.Int).Sub(s.Yes, power)
}

func recordVote(votes map[chain.AccountID]VoteRecord, stats *VoteStats, voter chain.AccountID, dir Vote, power *uint256.Int) error {
	if prev, voted := votes[voter]; voted {
		stats.retract(prev.Vote, prev.Power)
	}
	if err := stats.count(dir, power); err != nil {
		return err
	}
	votes[voter] = VoteRecord{Vote: dir, Power: power}
	return nil
}

// Apply folds a committed governance event into the view's state and
// collaborators. Decisions validate every precondition before emitting, so a
// failure here means a corrupted journal or a programming error.
func Apply(v View, evt event.Event) error {
	switch evt.Type {
	case TypeProposed:
		var p ProposedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Hold(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
			return err
		}
		v.State.Proposals[p.Identifier] = &Proposal{
			Identifier: p.Identifier,
			Proposer:   p.Proposer,
			Deposit:    p.Deposit,
			Expiry:     p.Expiry,
			Stats:      VoteStats{Yes: chain.ZeroAmount(), No: chain.ZeroAmount()},
		}
		v.State.Votes[p.Identifier] = make(map[chain.AccountID]VoteRecord)
		v.State.LastProposed[p.Proposer] = evt.Height
		return nil

	case TypeVoteCast:
		var p VoteCastPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		proposal := v.State.Proposals[p.Identifier]
		return recordVote(v.State.Votes[p.Identifier], &proposal.Stats, p.Voter, p.Vote, p.Power)

	case TypeProposalRejected:
		var p ProposalRejectedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Release(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
			return err
		}
		delete(v.State.Proposals, p.Identifier)
		delete(v.State.Votes, p.Identifier)
		return nil

	case TypeAuctionOpened:
		var p AuctionOpenedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Release(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
			return err
		}
		delete(v.State.Proposals, p.Identifier)
		delete(v.State.Votes, p.Identifier)
		v.State.Auctions[p.Identifier] = &Auction{
			Identifier: p.Identifier,
			HighBid:    chain.ZeroAmount(),
			Expiry:     p.Expiry,
		}
		return nil

	case TypeBidPlaced:
		var p BidPlacedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if p.PrevBidder != "" {
			if err := v.Ledger.Release(chain.HoldRegionDeposit, p.PrevBidder, p.PrevAmount); err != nil {
				return err
			}
		}
		if err := v.Ledger.Hold(chain.HoldRegionDeposit, p.Bidder, p.Amount); err != nil {
			return err
		}
		auction := v.State.Auctions[p.Identifier]
		auction.HighBidder = p.Bidder
		auction.HighBid = p.Amount
		return nil

	case TypeAuctionLapsed:
		var p AuctionLapsedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		delete(v.State.Auctions, p.Identifier)
		return nil

	case TypeCreated:
		var p CreatedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		delete(v.State.Auctions, p.Identifier)
		col := v.NFTs.CreateCollection(p.Owner)
		if col != p.Collection {
			return fmt.Errorf("region: collection id drift: minted %d, recorded %d", col, p.Collection)
		}
		v.State.Regions[p.RegionID] = &Region{
			ID:              p.RegionID,
			Identifier:      p.Identifier,
			Owner:           p.Owner,
			Collection:      p.Collection,
			ListingDuration: p.ListingDuration,
			TaxPpm:          p.TaxPpm,
			Deposit:         p.Deposit,
		}
		v.State.ByIdentifier[p.Identifier] = p.RegionID
		v.State.NextRegionID = p.RegionID + 1
		return nil

	case TypeListingDurationAdjusted:
		var p DurationAdjustedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		v.State.Regions[p.RegionID].ListingDuration = p.ListingDuration
		return nil

	case TypeTaxAdjusted:
		var p TaxAdjustedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		v.State.Regions[p.RegionID].TaxPpm = p.TaxPpm
		return nil

	case TypeTakeoverProposed:
		var p TakeoverProposedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Hold(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
			return err
		}
		v.State.Takeovers[p.RegionID] = &Takeover{Proposer: p.Proposer, Deposit: p.Deposit}
		return nil

	case TypeTakeoverAccepted:
		var p TakeoverAcceptedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Release(chain.HoldRegionDeposit, p.OldOwner, p.OldDeposit); err != nil {
			return err
		}
		reg := v.State.Regions[p.RegionID]
		reg.Owner = p.NewOwner
		reg.Deposit = p.NewDeposit
		delete(v.State.Takeovers, p.RegionID)
		return nil

	case TypeTakeoverRejected, TypeTakeoverCancelled:
		var p TakeoverClosedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Release(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
			return err
		}
		delete(v.State.Takeovers, p.RegionID)
		return nil

	case TypeRemovalProposed:
		var p RemovalProposedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Hold(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
			return err
		}
		v.State.Removals[p.RegionID] = &RemovalProposal{
			RegionID: p.RegionID,
			Proposer: p.Proposer,
			Deposit:  p.Deposit,
			Expiry:   p.Expiry,
			Stats:    VoteStats{Yes: chain.ZeroAmount(), No: chain.ZeroAmount()},
		}
		v.State.RemovalVotes[p.RegionID] = make(map[chain.AccountID]VoteRecord)
		return nil

	case TypeRemovalVoteCast:
		var p RemovalVoteCastPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		removal := v.State.Removals[p.RegionID]
		return recordVote(v.State.RemovalVotes[p.RegionID], &removal.Stats, p.Voter, p.Vote, p.Power)

	case TypeRemovalRejected:
		var p RemovalRejectedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Release(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
			return err
		}
		delete(v.State.Removals, p.RegionID)
		delete(v.State.RemovalVotes, p.RegionID)
		return nil

	case TypeReplacementOpened:
		var p ReplacementOpenedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if p.Proposer != "" {
			if err := v.Ledger.Release(chain.HoldRegionDeposit, p.Proposer, p.Deposit); err != nil {
				return err
			}
		}
		delete(v.State.Removals, p.RegionID)
		delete(v.State.RemovalVotes, p.RegionID)
		v.State.Replacements[p.RegionID] = &ReplacementAuction{
			RegionID:    p.RegionID,
			HighBid:     chain.ZeroAmount(),
			Expiry:      p.Expiry,
			Resignation: p.Resignation,
		}
		return nil

	case TypeReplacementBidPlaced:
		var p ReplacementBidPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if p.PrevBidder != "" {
			if err := v.Ledger.Release(chain.HoldRegionDeposit, p.PrevBidder, p.PrevAmount); err != nil {
				return err
			}
		}
		if err := v.Ledger.Hold(chain.HoldRegionDeposit, p.Bidder, p.Amount); err != nil {
			return err
		}
		replacement := v.State.Replacements[p.RegionID]
		replacement.HighBidder = p.Bidder
		replacement.HighBid = p.Amount
		return nil

	case TypeReplacementLapsed:
		var p ReplacementLapsedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		delete(v.State.Replacements, p.RegionID)
		return nil

	case TypeOwnerReplaced:
		var p OwnerReplacedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if !p.SlashAmount.IsZero() {
			if err := v.Ledger.TransferHeld(chain.HoldRegionDeposit, p.OldOwner, v.Params.Treasury, p.SlashAmount); err != nil {
				return err
			}
		}
		if err := v.Ledger.Release(chain.HoldRegionDeposit, p.OldOwner, p.Refund); err != nil {
			return err
		}
		reg := v.State.Regions[p.RegionID]
		reg.Owner = p.NewOwner
		reg.Deposit = p.Bid
		reg.Resigning = false
		reg.NextOwnerChange = 0
		delete(v.State.Replacements, p.RegionID)
		return nil

	case TypeResignationInitiated:
		var p ResignationInitiatedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		reg := v.State.Regions[p.RegionID]
		reg.Resigning = true
		reg.NextOwnerChange = p.EffectiveAt
		return nil

	case TypeLawyerRegistered:
		var p LawyerRegisteredPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if v.State.Lawyers[p.RegionID] == nil {
			v.State.Lawyers[p.RegionID] = make(map[chain.AccountID]bool)
		}
		v.State.Lawyers[p.RegionID][p.Lawyer] = true
		return nil

	case TypeLocationCreated:
		var p LocationCreatedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		if err := v.Ledger.Hold(chain.HoldLocationDeposit, evt.Actor, p.Deposit); err != nil {
			return err
		}
		if v.State.Locations[p.RegionID] == nil {
			v.State.Locations[p.RegionID] = make(map[string]bool)
		}
		v.State.Locations[p.RegionID][p.Postcode] = true
		v.State.Regions[p.RegionID].LocationCount++
		return nil
	}
	return fmt.Errorf("region: unhandled event type %q", evt.Type)
}
