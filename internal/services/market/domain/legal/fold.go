package legal

import (
	"fmt"

	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

// Apply folds a committed legal workflow event into the view's state and the
// bank ledger. Token events emitted alongside (finalize, reclaim, burn) are
// folded by the token package.
func Apply(v View, evt event.Event) error {
	switch evt.Type {
	case TypeCaseClaimed:
		var p CaseClaimedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		escrow := EscrowAccount(p.AssetID)
		for _, entry := range p.Costs {
			if err := v.Ledger.Transfer(entry.Currency, p.Funding, escrow, entry.Amount); err != nil {
				return err
			}
		}
		workflow, ok := v.State.Workflows[p.AssetID]
		if !ok {
			workflow = &Workflow{AssetID: p.AssetID, Sides: make(map[Side]*CaseSide)}
			v.State.Workflows[p.AssetID] = workflow
		}
		workflow.Sides[p.Side] = &CaseSide{
			Lawyer: p.Lawyer,
			Status: StatusPending,
			Costs:  p.Costs,
		}
		return nil

	case TypeClaimRemoved:
		var p ClaimRemovedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		escrow := EscrowAccount(p.AssetID)
		for _, entry := range p.Costs {
			if err := v.Ledger.Transfer(entry.Currency, escrow, p.Funding, entry.Amount); err != nil {
				return err
			}
		}
		workflow := v.State.Workflows[p.AssetID]
		delete(workflow.Sides, p.Side)
		if len(workflow.Sides) == 0 {
			delete(v.State.Workflows, p.AssetID)
		}
		return nil

	case TypeDocumentsConfirmed:
		var p DocumentsConfirmedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		track := v.State.Workflows[p.AssetID].Sides[p.Side]
		if p.Approved {
			track.Status = StatusApproved
		} else {
			track.Status = StatusRejected
		}
		return nil

	case TypeRetryOpened:
		var p RetryOpenedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		workflow := v.State.Workflows[p.AssetID]
		workflow.SecondAttempt = true
		for _, track := range workflow.Sides {
			track.Status = StatusPending
		}
		return nil

	case TypeCaseTerminated:
		var p CaseTerminatedPayload
		if err := evt.Decode(&p); err != nil {
			return err
		}
		escrow := EscrowAccount(p.AssetID)
		for _, entry := range p.Refunds.Refunds {
			if err := v.Ledger.Transfer(entry.Currency, escrow, p.Funding, entry.Amount); err != nil {
				return err
			}
		}
		delete(v.State.Workflows, p.AssetID)
		return nil
	}
	return fmt.Errorf("legal: unhandled event type %q", evt.Type)
}
