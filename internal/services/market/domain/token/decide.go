package token

import (
	"github.com/holiman/uint256"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

func requireAsset(v View, id chain.AssetID) (*PropertyAsset, error) {
	asset, ok := v.State.Assets[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodePropertyAssetNotRegistered, "property asset is not registered")
	}
	return asset, nil
}

// CreatePropertyToken tokenizes a registered location: one deed item in the
// region's collection plus the full fungible supply, both minted into the
// asset's escrow account.
func CreatePropertyToken(v View, funding chain.AccountID, regionID chain.RegionID, location string, tokenAmount, price *uint256.Int, data string) ([]event.Event, error) {
	reg, ok := v.Regions.Regions[regionID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeRegionUnknown, "region does not exist")
	}
	if !v.Regions.LocationRegistered(regionID, location) {
		return nil, apperrors.New(apperrors.CodeLocationUnknown, "location is not registered in the region")
	}
	if tokenAmount.IsZero() {
		return nil, apperrors.New(apperrors.CodeTokenAmountZero, "token amount cannot be zero")
	}
	if v.Params.MaxPropertyToken.Lt(tokenAmount) {
		return nil, apperrors.New(apperrors.CodeTokenAmountTooHigh, "token amount above maximum supply")
	}
	item, err := v.NFTs.NextItemID(reg.Collection)
	if err != nil {
		return nil, err
	}

	evt, err := event.New(TypePropertyCreated, funding, PropertyCreatedPayload{
		AssetID:    v.State.NextAssetID,
		RegionID:   regionID,
		Location:   location,
		Collection: reg.Collection,
		Item:       item,
		Supply:     tokenAmount,
		Price:      price,
		Data:       data,
		Funding:    funding,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// DistributePropertyTokenToOwner moves tokens from escrow to an investor and
// admits them into the bounded owner set.
func DistributePropertyTokenToOwner(v View, caller chain.AccountID, id chain.AssetID, investor chain.AccountID, amount *uint256.Int) ([]event.Event, error) {
	if _, err := requireAsset(v, id); err != nil {
		return nil, err
	}
	escrow := EscrowAccount(id)
	if v.Ledger.Balance(chain.TokenCurrency(id), escrow).Lt(amount) {
		return nil, apperrors.New(apperrors.CodeNotEnoughToken, "escrow balance below distribution amount")
	}
	if !v.State.Owners[id][investor] && len(v.State.Owners[id]) >= v.Params.MaxPropertyOwners {
		return nil, apperrors.New(apperrors.CodeTooManyOwners, "owner set is full")
	}

	evt, err := event.New(TypeDistributed, caller, DistributedPayload{
		AssetID:  id,
		Investor: investor,
		Amount:   amount,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// TransferPropertyToken moves tokens between owners, checked against the
// recorded bookkeeping rather than raw balances. fundsSource identifies the
// paying party in delegated-payment flows and is recorded for audit.
func TransferPropertyToken(v View, id chain.AssetID, sender, fundsSource, receiver chain.AccountID, amount *uint256.Int) ([]event.Event, error) {
	if _, err := requireAsset(v, id); err != nil {
		return nil, err
	}
	if sender == receiver {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "sender and receiver must differ")
	}
	senderBalance := v.State.OwnerBalance(id, sender)
	if senderBalance.Lt(amount) {
		return nil, apperrors.New(apperrors.CodeNotEnoughToken, "sender bookkeeping balance below transfer amount")
	}
	seats := len(v.State.Owners[id])
	if senderBalance.Eq(amount) {
		seats--
	}
	if !v.State.Owners[id][receiver] && seats >= v.Params.MaxPropertyOwners {
		return nil, apperrors.New(apperrors.CodeTooManyOwners, "owner set is full")
	}

	evt, err := event.New(TypeTransferred, sender, TransferredPayload{
		AssetID:     id,
		Sender:      sender,
		FundsSource: fundsSource,
		Receiver:    receiver,
		Amount:      amount,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// TakePropertyToken reclaims an owner's full recorded balance to escrow and
// reports the amount taken. An owner without a record yields zero and no
// events; it never fails on missing records.
func TakePropertyToken(v View, caller chain.AccountID, id chain.AssetID, owner chain.AccountID) ([]event.Event, *uint256.Int, error) {
	if _, err := requireAsset(v, id); err != nil {
		return nil, nil, err
	}
	amount := v.State.OwnerBalance(id, owner)
	if amount.IsZero() {
		return nil, chain.ZeroAmount(), nil
	}

	evt, err := event.New(TypeTaken, caller, TakenPayload{
		AssetID: id,
		Owner:   owner,
		Amount:  amount,
	})
	if err != nil {
		return nil, nil, err
	}
	return []event.Event{evt}, amount, nil
}

// RemoveTokenOwnership winds down a single owner record, reclaiming the
// tokens to escrow.
func RemoveTokenOwnership(v View, caller chain.AccountID, id chain.AssetID, owner chain.AccountID) ([]event.Event, error) {
	if _, err := requireAsset(v, id); err != nil {
		return nil, err
	}
	amount := v.State.OwnerBalance(id, owner)
	if amount.IsZero() {
		return nil, nil
	}
	evt, err := event.New(TypeOwnershipRemoved, caller, OwnershipRemovedPayload{
		AssetID: id,
		Owner:   owner,
		Amount:  amount,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// RemoveTokenOwnerList winds down the given owner records.
func RemoveTokenOwnerList(v View, caller chain.AccountID, id chain.AssetID, owners []chain.AccountID) ([]event.Event, error) {
	if _, err := requireAsset(v, id); err != nil {
		return nil, err
	}
	var events []event.Event
	for _, owner := range owners {
		batch, err := RemoveTokenOwnership(v, caller, id, owner)
		if err != nil {
			return nil, err
		}
		events = append(events, batch...)
	}
	return events, nil
}

// ClearTokenOwners winds down every owner record of the asset. Owners are
// visited in sorted order so the journal is deterministic.
func ClearTokenOwners(v View, caller chain.AccountID, id chain.AssetID) ([]event.Event, error) {
	if _, err := requireAsset(v, id); err != nil {
		return nil, err
	}
	owners := v.State.OwnerList(id)
	sortAccounts(owners)
	return RemoveTokenOwnerList(v, caller, id, owners)
}

// BurnPropertyToken retires an asset once the full supply is back in escrow:
// the deed item is burned and the token balance destroyed.
func BurnPropertyToken(v View, caller chain.AccountID, id chain.AssetID) ([]event.Event, error) {
	asset, err := requireAsset(v, id)
	if err != nil {
		return nil, err
	}
	escrow := EscrowAccount(id)
	if !v.Ledger.Balance(chain.TokenCurrency(id), escrow).Eq(asset.Supply) {
		return nil, apperrors.New(apperrors.CodeTokensStillDistributed, "tokens remain outside escrow")
	}

	evt, err := event.New(TypeBurned, caller, BurnedPayload{
		AssetID:    id,
		Collection: asset.Collection,
		Item:       asset.Item,
		Supply:     asset.Supply,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// RegisterSpv marks the asset's special purpose vehicle as created. Repeat
// calls are harmless no-ops.
func RegisterSpv(v View, caller chain.AccountID, id chain.AssetID) ([]event.Event, error) {
	asset, err := requireAsset(v, id)
	if err != nil {
		return nil, err
	}
	if asset.SpvCreated {
		return nil, nil
	}
	evt, err := event.New(TypeSpvRegistered, caller, SpvRegisteredPayload{AssetID: id})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}
