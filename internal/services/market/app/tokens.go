package app

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/legal"
	"github.com/deedshare/deedshare/internal/services/market/domain/token"
)

// CreatePropertyToken mints a property asset with a fixed token supply held
// by the asset's escrow account.
func (r *Runtime) CreatePropertyToken(ctx context.Context, funding chain.AccountID, regionID chain.RegionID, location string, tokenAmount, price *uint256.Int, data string) error {
	return r.commit(ctx, "market.CreatePropertyToken", func() ([]event.Event, error) {
		return token.CreatePropertyToken(r.tokenView(), funding, regionID, location, tokenAmount, price, data)
	})
}

// DistributePropertyTokenToOwner moves tokens from escrow to an investor.
func (r *Runtime) DistributePropertyTokenToOwner(ctx context.Context, caller chain.AccountID, id chain.AssetID, investor chain.AccountID, amount *uint256.Int) error {
	return r.commit(ctx, "market.DistributePropertyTokenToOwner", func() ([]event.Event, error) {
		return token.DistributePropertyTokenToOwner(r.tokenView(), caller, id, investor, amount)
	})
}

// TransferPropertyToken moves tokens between owners.
func (r *Runtime) TransferPropertyToken(ctx context.Context, id chain.AssetID, sender, fundsSource, receiver chain.AccountID, amount *uint256.Int) error {
	return r.commit(ctx, "market.TransferPropertyToken", func() ([]event.Event, error) {
		return token.TransferPropertyToken(r.tokenView(), id, sender, fundsSource, receiver, amount)
	})
}

// TakePropertyToken reclaims one owner's full holding back to escrow.
func (r *Runtime) TakePropertyToken(ctx context.Context, caller chain.AccountID, id chain.AssetID, owner chain.AccountID) error {
	return r.commit(ctx, "market.TakePropertyToken", func() ([]event.Event, error) {
		events, _, err := token.TakePropertyToken(r.tokenView(), caller, id, owner)
		return events, err
	})
}

// RemoveTokenOwnership strips a single owner's holding.
func (r *Runtime) RemoveTokenOwnership(ctx context.Context, caller chain.AccountID, id chain.AssetID, owner chain.AccountID) error {
	return r.commit(ctx, "market.RemoveTokenOwnership", func() ([]event.Event, error) {
		return token.RemoveTokenOwnership(r.tokenView(), caller, id, owner)
	})
}

// RemoveTokenOwnerList strips the listed owners' holdings.
func (r *Runtime) RemoveTokenOwnerList(ctx context.Context, caller chain.AccountID, id chain.AssetID, owners []chain.AccountID) error {
	return r.commit(ctx, "market.RemoveTokenOwnerList", func() ([]event.Event, error) {
		return token.RemoveTokenOwnerList(r.tokenView(), caller, id, owners)
	})
}

// ClearTokenOwners reclaims every holding of an asset back to escrow.
func (r *Runtime) ClearTokenOwners(ctx context.Context, caller chain.AccountID, id chain.AssetID) error {
	return r.commit(ctx, "market.ClearTokenOwners", func() ([]event.Event, error) {
		return token.ClearTokenOwners(r.tokenView(), caller, id)
	})
}

// BurnPropertyToken destroys an asset once escrow holds its full supply.
func (r *Runtime) BurnPropertyToken(ctx context.Context, caller chain.AccountID, id chain.AssetID) error {
	return r.commit(ctx, "market.BurnPropertyToken", func() ([]event.Event, error) {
		return token.BurnPropertyToken(r.tokenView(), caller, id)
	})
}

// RegisterSpv marks the special purpose vehicle as incorporated.
func (r *Runtime) RegisterSpv(ctx context.Context, caller chain.AccountID, id chain.AssetID) error {
	return r.commit(ctx, "market.RegisterSpv", func() ([]event.Event, error) {
		return token.RegisterSpv(r.tokenView(), caller, id)
	})
}

// LawyerClaimCase assigns a lawyer to one side of an asset's legal case.
func (r *Runtime) LawyerClaimCase(ctx context.Context, lawyer chain.AccountID, id chain.AssetID, side legal.Side, costs []legal.CostEntry) error {
	return r.commit(ctx, "market.LawyerClaimCase", func() ([]event.Event, error) {
		return legal.LawyerClaimCase(r.legalView(), lawyer, id, side, costs)
	})
}

// RemoveLawyerClaim releases a lawyer's pending claim on a case side.
func (r *Runtime) RemoveLawyerClaim(ctx context.Context, lawyer chain.AccountID, id chain.AssetID, side legal.Side) error {
	return r.commit(ctx, "market.RemoveLawyerClaim", func() ([]event.Event, error) {
		return legal.RemoveLawyerClaim(r.legalView(), lawyer, id, side)
	})
}

// LawyerConfirmDocuments approves or rejects a side's legal documents.
func (r *Runtime) LawyerConfirmDocuments(ctx context.Context, lawyer chain.AccountID, id chain.AssetID, side legal.Side, approve bool) error {
	return r.commit(ctx, "market.LawyerConfirmDocuments", func() ([]event.Event, error) {
		return legal.LawyerConfirmDocuments(r.legalView(), lawyer, id, side, approve)
	})
}
