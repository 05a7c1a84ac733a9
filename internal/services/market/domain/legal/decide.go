package legal

import (
	"sort"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/token"
)

func requireAsset(v View, id chain.AssetID) (*token.PropertyAsset, error) {
	asset, ok := v.Tokens.Assets[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodePropertyAssetNotRegistered, "property asset is not registered")
	}
	return asset, nil
}

func requireClaimedSide(v View, id chain.AssetID, side Side) (*Workflow, *CaseSide, error) {
	workflow, ok := v.State.Workflows[id]
	if !ok {
		return nil, nil, apperrors.New(apperrors.CodeLawyerCaseUnknown, "no legal case for asset")
	}
	track, ok := workflow.Sides[side]
	if !ok {
		return nil, nil, apperrors.New(apperrors.CodeLawyerCaseUnknown, "side has not been claimed")
	}
	return workflow, track, nil
}

// LawyerClaimCase assigns the calling lawyer to one track of the asset's
// workflow and escrows the proposed costs from the funding account.
func LawyerClaimCase(v View, lawyer chain.AccountID, id chain.AssetID, side Side, costs []CostEntry) ([]event.Event, error) {
	asset, err := requireAsset(v, id)
	if err != nil {
		return nil, err
	}
	if asset.Finalized {
		return nil, apperrors.New(apperrors.CodeAssetFinalized, "asset is already finalized")
	}
	if !side.Valid() {
		return nil, apperrors.New(apperrors.CodeLawyerCaseUnknown, "unknown workflow side")
	}
	if !v.Regions.IsLawyer(asset.RegionID, lawyer) {
		return nil, apperrors.New(apperrors.CodeLawyerNotRegistered, "lawyer is not registered in the asset's region")
	}
	if workflow, ok := v.State.Workflows[id]; ok {
		if _, claimed := workflow.Sides[side]; claimed {
			return nil, apperrors.New(apperrors.CodeLawyerAlreadyAssigned, "side already claimed")
		}
		if other, claimed := workflow.Sides[side.Other()]; claimed && other.Lawyer == lawyer {
			return nil, apperrors.New(apperrors.CodeLawyerAlreadyAssigned, "lawyer already serves the other side")
		}
	}
	if len(costs) > v.Params.MaxCostEntries {
		return nil, apperrors.New(apperrors.CodeTooManyCostEntries, "too many cost entries")
	}
	seen := make(map[chain.Currency]bool, len(costs))
	for _, entry := range costs {
		if seen[entry.Currency] {
			return nil, apperrors.New(apperrors.CodeTooManyCostEntries, "duplicate cost currency")
		}
		seen[entry.Currency] = true
		if v.Ledger.Balance(entry.Currency, asset.Funding).Lt(entry.Amount) {
			return nil, apperrors.New(apperrors.CodeInsufficientBalance, "funding account cannot cover lawyer costs")
		}
	}

	evt, err := event.New(TypeCaseClaimed, lawyer, CaseClaimedPayload{
		AssetID: id,
		Side:    side,
		Lawyer:  lawyer,
		Funding: asset.Funding,
		Costs:   costs,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// RemoveLawyerClaim withdraws a still-pending claim and refunds its costs to
// the funding account.
func RemoveLawyerClaim(v View, lawyer chain.AccountID, id chain.AssetID, side Side) ([]event.Event, error) {
	asset, err := requireAsset(v, id)
	if err != nil {
		return nil, err
	}
	_, track, err := requireClaimedSide(v, id, side)
	if err != nil {
		return nil, err
	}
	if track.Lawyer != lawyer {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the assigned lawyer may withdraw")
	}
	if track.Status != StatusPending {
		return nil, apperrors.New(apperrors.CodeCaseNotPending, "side is no longer pending")
	}

	evt, err := event.New(TypeClaimRemoved, lawyer, ClaimRemovedPayload{
		AssetID: id,
		Side:    side,
		Lawyer:  lawyer,
		Funding: asset.Funding,
		Costs:   track.Costs,
	})
	if err != nil {
		return nil, err
	}
	return []event.Event{evt}, nil
}

// LawyerConfirmDocuments records the track's decision. Both tracks approved
// finalizes the asset. The first rejection re-opens both tracks for a single
// retry; a second rejection terminates the workflow with refunds and winds
// the asset down.
func LawyerConfirmDocuments(v View, lawyer chain.AccountID, id chain.AssetID, side Side, approve bool) ([]event.Event, error) {
	asset, err := requireAsset(v, id)
	if err != nil {
		return nil, err
	}
	workflow, track, err := requireClaimedSide(v, id, side)
	if err != nil {
		return nil, err
	}
	if track.Lawyer != lawyer {
		return nil, apperrors.New(apperrors.CodeNoPermission, "only the assigned lawyer may confirm")
	}
	if track.Status != StatusPending {
		return nil, apperrors.New(apperrors.CodeCaseNotPending, "side is no longer pending")
	}

	confirmed, err := event.New(TypeDocumentsConfirmed, lawyer, DocumentsConfirmedPayload{
		AssetID:  id,
		Side:     side,
		Lawyer:   lawyer,
		Approved: approve,
	})
	if err != nil {
		return nil, err
	}
	events := []event.Event{confirmed}

	if approve {
		other, claimed := workflow.Sides[side.Other()]
		if claimed && other.Status == StatusApproved {
			finalized, err := event.New(token.TypeFinalized, lawyer, token.FinalizedPayload{AssetID: id})
			if err != nil {
				return nil, err
			}
			events = append(events, finalized)
		}
		return events, nil
	}

	if !workflow.SecondAttempt {
		retry, err := event.New(TypeRetryOpened, lawyer, RetryOpenedPayload{AssetID: id})
		if err != nil {
			return nil, err
		}
		return append(events, retry), nil
	}

	terminal, err := terminate(v, lawyer, asset, workflow, side)
	if err != nil {
		return nil, err
	}
	return append(events, terminal...), nil
}

// terminate builds the terminal rejection batch: the refund report, reclaim
// of every distributed token to escrow, and the asset burn.
func terminate(v View, lawyer chain.AccountID, asset *token.PropertyAsset, workflow *Workflow, rejectedSide Side) ([]event.Event, error) {
	refunds, err := workflow.mergeCosts()
	if err != nil {
		return nil, err
	}
	details := workflow.details()
	if rejectedSide == SideDeveloper {
		details.DeveloperStatus = StatusRejected
	} else {
		details.SpvStatus = StatusRejected
	}

	terminated, err := event.New(TypeCaseTerminated, lawyer, CaseTerminatedPayload{
		AssetID: asset.ID,
		Funding: asset.Funding,
		Refunds: RefundInfos{Refunds: refunds, Details: details},
	})
	if err != nil {
		return nil, err
	}
	events := []event.Event{terminated}

	owners := v.Tokens.OwnerList(asset.ID)
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	for _, owner := range owners {
		reclaimed, err := event.New(token.TypeOwnershipRemoved, lawyer, token.OwnershipRemovedPayload{
			AssetID: asset.ID,
			Owner:   owner,
			Amount:  v.Tokens.OwnerBalance(asset.ID, owner),
		})
		if err != nil {
			return nil, err
		}
		events = append(events, reclaimed)
	}

	burned, err := event.New(token.TypeBurned, lawyer, token.BurnedPayload{
		AssetID:    asset.ID,
		Collection: asset.Collection,
		Item:       asset.Item,
		Supply:     asset.Supply,
	})
	if err != nil {
		return nil, err
	}
	return append(events, burned), nil
}
