// Package roles implements the role registry collaborator: which account may
// act in which capacity.
package roles

import (
	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

// Role names a granted capacity.
type Role string

const (
	// RoleWhitelisted permits voting and bidding.
	RoleWhitelisted Role = "whitelisted"
	// RoleRegionalOperator permits proposing new regions.
	RoleRegionalOperator Role = "regional_operator"
)

// Registry maps accounts to their granted roles.
type Registry struct {
	grants map[chain.AccountID]map[Role]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{grants: make(map[chain.AccountID]map[Role]bool)}
}

// Has reports whether account holds role.
func (r *Registry) Has(account chain.AccountID, role Role) bool {
	return r.grants[account][role]
}

// Assign grants role to account.
func (r *Registry) Assign(account chain.AccountID, role Role) error {
	if r.Has(account, role) {
		return apperrors.New(apperrors.CodeRoleAlreadyAssigned, "role already assigned")
	}
	granted := r.grants[account]
	if granted == nil {
		granted = make(map[Role]bool)
		r.grants[account] = granted
	}
	granted[role] = true
	return nil
}

// Remove revokes role from account.
func (r *Registry) Remove(account chain.AccountID, role Role) error {
	if !r.Has(account, role) {
		return apperrors.New(apperrors.CodeRoleNotAssigned, "role not assigned")
	}
	delete(r.grants[account], role)
	if len(r.grants[account]) == 0 {
		delete(r.grants, account)
	}
	return nil
}
