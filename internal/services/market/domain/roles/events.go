package roles

import (
	"fmt"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

const (
	TypeAssigned event.Type = "roles.assigned"
	TypeRemoved  event.Type = "roles.removed"
)

// Types lists every role event for registry validation.
func Types() []event.Type {
	return []event.Type{TypeAssigned, TypeRemoved}
}

// RolePayload assigns or removes one role grant.
type RolePayload struct {
	Account chain.AccountID `json:"account"`
	Role    Role            `json:"role"`
}

// Apply folds a committed role event into the registry.
func Apply(r *Registry, evt event.Event) error {
	switch evt.Type {
	case TypeAssigned:
		var p RolePayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		return r.Assign(p.Account, p.Role)
	case TypeRemoved:
		var p RolePayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		return r.Remove(p.Account, p.Role)
	}
	return fmt.Errorf("roles: unhandled event type %q", evt.Type)
}
