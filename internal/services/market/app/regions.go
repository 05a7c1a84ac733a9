package app

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/region"
)

// ProposeNewRegion opens a community vote on claiming a region identifier.
func (r *Runtime) ProposeNewRegion(ctx context.Context, caller chain.AccountID, ident region.Identifier) error {
	return r.commit(ctx, "market.ProposeNewRegion", func() ([]event.Event, error) {
		return region.ProposeNewRegion(r.regionView(), caller, ident)
	})
}

// VoteOnRegionProposal records a vote on an open region proposal.
func (r *Runtime) VoteOnRegionProposal(ctx context.Context, caller chain.AccountID, ident region.Identifier, vote region.Vote) error {
	return r.commit(ctx, "market.VoteOnRegionProposal", func() ([]event.Event, error) {
		return region.VoteOnRegionProposal(r.regionView(), caller, ident, vote)
	})
}

// BidOnRegion places or raises a bid in a region auction.
func (r *Runtime) BidOnRegion(ctx context.Context, caller chain.AccountID, ident region.Identifier, amount *uint256.Int) error {
	return r.commit(ctx, "market.BidOnRegion", func() ([]event.Event, error) {
		return region.BidOnRegion(r.regionView(), caller, ident, amount)
	})
}

// CreateNewRegion lets an auction winner claim the region.
func (r *Runtime) CreateNewRegion(ctx context.Context, caller chain.AccountID, ident region.Identifier, listingDuration, taxPpm uint32) error {
	return r.commit(ctx, "market.CreateNewRegion", func() ([]event.Event, error) {
		return region.CreateNewRegion(r.regionView(), caller, ident, listingDuration, taxPpm)
	})
}

// AdjustListingDuration updates a region's listing duration.
func (r *Runtime) AdjustListingDuration(ctx context.Context, caller chain.AccountID, regionID chain.RegionID, duration uint32) error {
	return r.commit(ctx, "market.AdjustListingDuration", func() ([]event.Event, error) {
		return region.AdjustListingDuration(r.regionView(), caller, regionID, duration)
	})
}

// AdjustRegionTax updates a region's tax rate.
func (r *Runtime) AdjustRegionTax(ctx context.Context, caller chain.AccountID, regionID chain.RegionID, taxPpm uint32) error {
	return r.commit(ctx, "market.AdjustRegionTax", func() ([]event.Event, error) {
		return region.AdjustRegionTax(r.regionView(), caller, regionID, taxPpm)
	})
}

// ProposeRegionTakeover offers to buy out the sitting region owner.
func (r *Runtime) ProposeRegionTakeover(ctx context.Context, caller chain.AccountID, regionID chain.RegionID) error {
	return r.commit(ctx, "market.ProposeRegionTakeover", func() ([]event.Event, error) {
		return region.ProposeRegionTakeover(r.regionView(), caller, regionID)
	})
}

// HandleTakeover accepts or rejects a pending takeover offer.
func (r *Runtime) HandleTakeover(ctx context.Context, caller chain.AccountID, regionID chain.RegionID, accept bool) error {
	return r.commit(ctx, "market.HandleTakeover", func() ([]event.Event, error) {
		return region.HandleTakeover(r.regionView(), caller, regionID, accept)
	})
}

// CancelRegionTakeover withdraws the caller's own takeover offer.
func (r *Runtime) CancelRegionTakeover(ctx context.Context, caller chain.AccountID, regionID chain.RegionID) error {
	return r.commit(ctx, "market.CancelRegionTakeover", func() ([]event.Event, error) {
		return region.CancelRegionTakeover(r.regionView(), caller, regionID)
	})
}

// ProposeRemoveRegionalOperator opens a vote on deposing a region owner.
func (r *Runtime) ProposeRemoveRegionalOperator(ctx context.Context, caller chain.AccountID, regionID chain.RegionID) error {
	return r.commit(ctx, "market.ProposeRemoveRegionalOperator", func() ([]event.Event, error) {
		return region.ProposeRemoveRegionalOperator(r.regionView(), caller, regionID)
	})
}

// VoteOnRemoveOwnerProposal records a vote on an open removal proposal.
func (r *Runtime) VoteOnRemoveOwnerProposal(ctx context.Context, caller chain.AccountID, regionID chain.RegionID, vote region.Vote) error {
	return r.commit(ctx, "market.VoteOnRemoveOwnerProposal", func() ([]event.Event, error) {
		return region.VoteOnRemoveOwnerProposal(r.regionView(), caller, regionID, vote)
	})
}

// BidOnRegionReplacement bids to succeed a deposed or resigning owner.
func (r *Runtime) BidOnRegionReplacement(ctx context.Context, caller chain.AccountID, regionID chain.RegionID, amount *uint256.Int) error {
	return r.commit(ctx, "market.BidOnRegionReplacement", func() ([]event.Event, error) {
		return region.BidOnRegionReplacement(r.regionView(), caller, regionID, amount)
	})
}

// InitiateRegionOwnerResignation starts the owner's notice period.
func (r *Runtime) InitiateRegionOwnerResignation(ctx context.Context, caller chain.AccountID, regionID chain.RegionID) error {
	return r.commit(ctx, "market.InitiateRegionOwnerResignation", func() ([]event.Event, error) {
		return region.InitiateRegionOwnerResignation(r.regionView(), caller, regionID)
	})
}

// RegisterLawyer admits a lawyer to practice in a region.
func (r *Runtime) RegisterLawyer(ctx context.Context, caller chain.AccountID, regionID chain.RegionID, lawyer chain.AccountID) error {
	return r.commit(ctx, "market.RegisterLawyer", func() ([]event.Event, error) {
		return region.RegisterLawyer(r.regionView(), caller, regionID, lawyer)
	})
}

// CreateNewLocation registers a postcode within a region.
func (r *Runtime) CreateNewLocation(ctx context.Context, caller chain.AccountID, regionID chain.RegionID, postcode string) error {
	return r.commit(ctx, "market.CreateNewLocation", func() ([]event.Event, error) {
		return region.CreateNewLocation(r.regionView(), caller, regionID, postcode)
	})
}
