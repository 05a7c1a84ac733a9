package token

import (
	"fmt"
	"sort"

	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

func sortAccounts(accounts []chain.AccountID) {
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })
}

// Apply folds a committed property ledger event into the view's state and
// collaborators.
func Apply(v View, evt event.Event) error {
	switch evt.Type {
	case TypePropertyCreated:
		var p PropertyCreatedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		escrow := EscrowAccount(p.AssetID)
		item, err := v.NFTs.Mint(p.Collection, escrow)
		if err != nil {
			return err
		}
		if item != p.Item {
			return fmt.Errorf("token: item id drift: minted %d, recorded %d", item, p.Item)
		}
		if err := v.Ledger.Mint(chain.TokenCurrency(p.AssetID), escrow, p.Supply); err != nil {
			return err
		}
		v.State.Assets[p.AssetID] = &PropertyAsset{
			ID:         p.AssetID,
			RegionID:   p.RegionID,
			Location:   p.Location,
			Collection: p.Collection,
			Item:       p.Item,
			Supply:     p.Supply,
			Price:      p.Price,
			Data:       p.Data,
			Funding:    p.Funding,
		}
		v.State.Owners[p.AssetID] = make(map[chain.AccountID]bool)
		v.State.OwnerTokens[p.AssetID] = make(map[chain.AccountID]*uint256.Int)
		v.State.NextAssetID = p.AssetID + 1
		return nil

	case TypeDistributed:
		var p DistributedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		escrow := EscrowAccount(p.AssetID)
		if err := v.Ledger.Transfer(chain.TokenCurrency(p.AssetID), escrow, p.Investor, p.Amount); err != nil {
			return err
		}
		next, err := chain.CheckedAdd(v.State.OwnerBalance(p.AssetID, p.Investor), p.Amount)
		if err != nil {
			return err
		}
		v.State.Owners[p.AssetID][p.Investor] = true
		v.State.OwnerTokens[p.AssetID][p.Investor] = next
		return nil

	case TypeTransferred:
		var p TransferredPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		cur := chain.TokenCurrency(p.AssetID)
		if err := v.Ledger.Transfer(cur, p.Sender, p.Receiver, p.Amount); err != nil {
			return err
		}
		senderNext, err := chain.CheckedSub(v.State.OwnerBalance(p.AssetID, p.Sender), p.Amount)
		if err != nil {
			return err
		}
		if senderNext.IsZero() {
			delete(v.State.Owners[p.AssetID], p.Sender)
			delete(v.State.OwnerTokens[p.AssetID], p.Sender)
		} else {
			v.State.OwnerTokens[p.AssetID][p.Sender] = senderNext
		}
		// Read the receiver after the sender update so a degenerate
		// sender==receiver event cannot double-count.
		receiverNext, err := chain.CheckedAdd(v.State.OwnerBalance(p.AssetID, p.Receiver), p.Amount)
		if err != nil {
			return err
		}
		v.State.Owners[p.AssetID][p.Receiver] = true
		v.State.OwnerTokens[p.AssetID][p.Receiver] = receiverNext
		return nil

	case TypeTaken, TypeOwnershipRemoved:
		var p TakenPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		escrow := EscrowAccount(p.AssetID)
		if err := v.Ledger.Transfer(chain.TokenCurrency(p.AssetID), p.Owner, escrow, p.Amount); err != nil {
			return err
		}
		delete(v.State.Owners[p.AssetID], p.Owner)
		delete(v.State.OwnerTokens[p.AssetID], p.Owner)
		return nil

	case TypeBurned:
		var p BurnedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		escrow := EscrowAccount(p.AssetID)
		if err := v.NFTs.Burn(p.Collection, p.Item); err != nil {
			return err
		}
		if err := v.Ledger.Burn(chain.TokenCurrency(p.AssetID), escrow, p.Supply); err != nil {
			return err
		}
		delete(v.State.Assets, p.AssetID)
		delete(v.State.Owners, p.AssetID)
		delete(v.State.OwnerTokens, p.AssetID)
		return nil

	case TypeSpvRegistered:
		var p SpvRegisteredPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		v.State.Assets[p.AssetID].SpvCreated = true
		return nil

	case TypeFinalized:
		var p FinalizedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		v.State.Assets[p.AssetID].Finalized = true
		return nil
	}
	return fmt.Errorf("token: unhandled event type %q", evt.Type)
}
