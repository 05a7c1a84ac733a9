package app

import (
	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/legal"
	"github.com/deedshare/deedshare/internal/services/market/domain/region"
	"github.com/deedshare/deedshare/internal/services/market/domain/token"
)

// RegionInfo is a point-in-time snapshot of one region.
type RegionInfo struct {
	ID              chain.RegionID
	Identifier      region.Identifier
	Owner           chain.AccountID
	ListingDuration uint32
	TaxPpm          uint32
	LocationCount   uint32
	Resigning       bool
	Deposit         *uint256.Int
}

// PropertyAssetInfo is a point-in-time snapshot of one property asset.
type PropertyAssetInfo struct {
	ID         chain.AssetID
	RegionID   chain.RegionID
	Location   string
	Supply     *uint256.Int
	Price      *uint256.Int
	Data       string
	Funding    chain.AccountID
	Finalized  bool
	SpvCreated bool
}

// LegalCaseInfo is a point-in-time snapshot of one legal workflow.
type LegalCaseInfo struct {
	AssetID       chain.AssetID
	SecondAttempt bool
	Sides         map[legal.Side]LegalSideInfo
}

// LegalSideInfo describes one side of a legal case.
type LegalSideInfo struct {
	Lawyer chain.AccountID
	Status legal.Status
	Costs  []legal.CostEntry
}

// RegionInfo returns the region snapshot for an id.
func (r *Runtime) RegionInfo(id chain.RegionID) (RegionInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.regions.Regions[id]
	if !ok {
		return RegionInfo{}, apperrors.New(apperrors.CodeRegionUnknown, "region not found")
	}
	return RegionInfo{
		ID:              reg.ID,
		Identifier:      reg.Identifier,
		Owner:           reg.Owner,
		ListingDuration: reg.ListingDuration,
		TaxPpm:          reg.TaxPpm,
		LocationCount:   reg.LocationCount,
		Resigning:       reg.Resigning,
		Deposit:         new(uint256.Int).Set(reg.Deposit),
	}, nil
}

// RegionByIdentifier resolves a region snapshot by its identifier.
func (r *Runtime) RegionByIdentifier(ident region.Identifier) (RegionInfo, error) {
	r.mu.RLock()
	id, ok := r.regions.ByIdentifier[ident]
	r.mu.RUnlock()
	if !ok {
		return RegionInfo{}, apperrors.New(apperrors.CodeRegionUnknown, "region not found")
	}
	return r.RegionInfo(id)
}

// PropertyAsset returns the asset snapshot for an id.
func (r *Runtime) PropertyAsset(id chain.AssetID) (PropertyAssetInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	asset, ok := r.tokens.Assets[id]
	if !ok {
		return PropertyAssetInfo{}, apperrors.New(apperrors.CodePropertyAssetNotRegistered, "asset not registered")
	}
	return PropertyAssetInfo{
		ID:         asset.ID,
		RegionID:   asset.RegionID,
		Location:   asset.Location,
		Supply:     new(uint256.Int).Set(asset.Supply),
		Price:      new(uint256.Int).Set(asset.Price),
		Data:       asset.Data,
		Funding:    asset.Funding,
		Finalized:  asset.Finalized,
		SpvCreated: asset.SpvCreated,
	}, nil
}

// PropertyOwners lists an asset's owners in deterministic order.
func (r *Runtime) PropertyOwners(id chain.AssetID) ([]chain.AccountID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.tokens.Assets[id]; !ok {
		return nil, apperrors.New(apperrors.CodePropertyAssetNotRegistered, "asset not registered")
	}
	return r.tokens.OwnerList(id), nil
}

// TokenBalance returns one owner's recorded holding of an asset.
func (r *Runtime) TokenBalance(id chain.AssetID, owner chain.AccountID) (*uint256.Int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.tokens.Assets[id]; !ok {
		return nil, apperrors.New(apperrors.CodePropertyAssetNotRegistered, "asset not registered")
	}
	return r.tokens.OwnerBalance(id, owner), nil
}

// FreeBalance returns an account's free balance in a currency.
func (r *Runtime) FreeBalance(cur chain.Currency, account chain.AccountID) *uint256.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.Balance(cur, account)
}

// EscrowBalance returns the undistributed supply held by an asset's escrow.
func (r *Runtime) EscrowBalance(id chain.AssetID) *uint256.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.Balance(chain.TokenCurrency(id), token.EscrowAccount(id))
}

// LegalCase returns the legal workflow snapshot for an asset.
func (r *Runtime) LegalCase(id chain.AssetID) (LegalCaseInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wf, ok := r.legal.Workflows[id]
	if !ok {
		return LegalCaseInfo{}, apperrors.New(apperrors.CodeLawyerCaseUnknown, "no legal case for asset")
	}
	info := LegalCaseInfo{
		AssetID:       wf.AssetID,
		SecondAttempt: wf.SecondAttempt,
		Sides:         make(map[legal.Side]LegalSideInfo, len(wf.Sides)),
	}
	for side, cs := range wf.Sides {
		costs := make([]legal.CostEntry, len(cs.Costs))
		copy(costs, cs.Costs)
		info.Sides[side] = LegalSideInfo{
			Lawyer: cs.Lawyer,
			Status: cs.Status,
			Costs:  costs,
		}
	}
	return info, nil
}
