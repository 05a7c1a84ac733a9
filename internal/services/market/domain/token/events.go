package token

import (
	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/nft"
)

const (
	TypePropertyCreated  event.Type = "token.property_created"
	TypeDistributed      event.Type = "token.distributed"
	TypeTransferred      event.Type = "token.transferred"
	TypeTaken            event.Type = "token.taken"
	TypeOwnershipRemoved event.Type = "token.ownership_removed"
	TypeBurned           event.Type = "token.burned"
	TypeSpvRegistered    event.Type = "token.spv_registered"
	TypeFinalized        event.Type = "token.finalized"
)

// Types lists every property ledger event for registry validation.
func Types() []event.Type {
	return []event.Type{
		TypePropertyCreated, TypeDistributed, TypeTransferred, TypeTaken,
		TypeOwnershipRemoved, TypeBurned, TypeSpvRegistered, TypeFinalized,
	}
}

// PropertyCreatedPayload mints the deed item and the full token supply into
// the asset's escrow account.
type PropertyCreatedPayload struct {
	AssetID    chain.AssetID    `json:"asset_id"`
	RegionID   chain.RegionID   `json:"region_id"`
	Location   string           `json:"location"`
	Collection nft.CollectionID `json:"collection"`
	Item       nft.ItemID       `json:"item"`
	Supply     *uint256.Int     `json:"supply"`
	Price      *uint256.Int     `json:"price"`
	Data       string           `json:"data,omitempty"`
	Funding    chain.AccountID  `json:"funding"`
}

// DistributedPayload moves tokens from escrow to an investor.
type DistributedPayload struct {
	AssetID  chain.AssetID   `json:"asset_id"`
	Investor chain.AccountID `json:"investor"`
	Amount   *uint256.Int    `json:"amount"`
}

// TransferredPayload moves tokens between recorded owners.
type TransferredPayload struct {
	AssetID     chain.AssetID   `json:"asset_id"`
	Sender      chain.AccountID `json:"sender"`
	FundsSource chain.AccountID `json:"funds_source"`
	Receiver    chain.AccountID `json:"receiver"`
	Amount      *uint256.Int    `json:"amount"`
}

// TakenPayload reclaims one owner's full recorded balance to escrow.
type TakenPayload struct {
	AssetID chain.AssetID   `json:"asset_id"`
	Owner   chain.AccountID `json:"owner"`
	Amount  *uint256.Int    `json:"amount"`
}

// OwnershipRemovedPayload winds down one owner record, reclaiming to escrow.
type OwnershipRemovedPayload struct {
	AssetID chain.AssetID   `json:"asset_id"`
	Owner   chain.AccountID `json:"owner"`
	Amount  *uint256.Int    `json:"amount"`
}

// BurnedPayload retires a fully reclaimed asset.
type BurnedPayload struct {
	AssetID    chain.AssetID    `json:"asset_id"`
	Collection nft.CollectionID `json:"collection"`
	Item       nft.ItemID       `json:"item"`
	Supply     *uint256.Int     `json:"supply"`
}

// SpvRegisteredPayload marks the asset's SPV as created.
type SpvRegisteredPayload struct {
	AssetID chain.AssetID `json:"asset_id"`
}

// FinalizedPayload marks the asset finalized after legal approval.
type FinalizedPayload struct {
	AssetID chain.AssetID `json:"asset_id"`
}
