// Package nft implements the non-fungible registry collaborator: collection
// and item creation, ownership queries, transfers, and burns. A region's
// namespace is one collection; a property's unique title is one item.
package nft

import (
	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

// CollectionID identifies a collection. Assigned monotonically, never reused.
type CollectionID uint32

// ItemID identifies an item within a collection.
type ItemID uint32

type collection struct {
	admin    chain.AccountID
	items    map[ItemID]chain.AccountID
	nextItem ItemID
}

// Registry tracks collections and item ownership.
type Registry struct {
	collections    map[CollectionID]*collection
	nextCollection CollectionID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{collections: make(map[CollectionID]*collection)}
}

// NextCollectionID returns the id the next created collection will receive.
// Decisions record it so folds can assert deterministic assignment.
func (r *Registry) NextCollectionID() CollectionID {
	return r.nextCollection
}

// CreateCollection creates a collection administered by admin and returns its id.
func (r *Registry) CreateCollection(admin chain.AccountID) CollectionID {
	id := r.nextCollection
	r.nextCollection++
	r.collections[id] = &collection{
		admin: admin,
		items: make(map[ItemID]chain.AccountID),
	}
	return id
}

// NextItemID returns the id the next minted item in the collection will receive.
func (r *Registry) NextItemID(col CollectionID) (ItemID, error) {
	c, ok := r.collections[col]
	if !ok {
		return 0, apperrors.New(apperrors.CodeCollectionUnknown, "collection does not exist")
	}
	return c.nextItem, nil
}

// Mint creates a new item in the collection owned by owner.
func (r *Registry) Mint(col CollectionID, owner chain.AccountID) (ItemID, error) {
	c, ok := r.collections[col]
	if !ok {
		return 0, apperrors.New(apperrors.CodeCollectionUnknown, "collection does not exist")
	}
	id := c.nextItem
	c.nextItem++
	c.items[id] = owner
	return id, nil
}

// Owner returns the owner of an item.
func (r *Registry) Owner(col CollectionID, item ItemID) (chain.AccountID, bool) {
	c, ok := r.collections[col]
	if !ok {
		return "", false
	}
	owner, ok := c.items[item]
	return owner, ok
}

// Transfer reassigns an item to newOwner.
func (r *Registry) Transfer(col CollectionID, item ItemID, newOwner chain.AccountID) error {
	c, ok := r.collections[col]
	if !ok {
		return apperrors.New(apperrors.CodeCollectionUnknown, "collection does not exist")
	}
	if _, ok := c.items[item]; !ok {
		return apperrors.New(apperrors.CodeItemUnknown, "item does not exist")
	}
	c.items[item] = newOwner
	return nil
}

// Burn destroys an item.
func (r *Registry) Burn(col CollectionID, item ItemID) error {
	c, ok := r.collections[col]
	if !ok {
		return apperrors.New(apperrors.CodeCollectionUnknown, "collection does not exist")
	}
	if _, ok := c.items[item]; !ok {
		return apperrors.New(apperrors.CodeItemUnknown, "item does not exist")
	}
	delete(c.items, item)
	return nil
}
