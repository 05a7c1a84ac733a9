package legal

import (
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
)

const (
	TypeCaseClaimed        event.Type = "legal.case_claimed"
	TypeClaimRemoved       event.Type = "legal.claim_removed"
	TypeDocumentsConfirmed event.Type = "legal.documents_confirmed"
	TypeRetryOpened        event.Type = "legal.retry_opened"
	TypeCaseTerminated     event.Type = "legal.case_terminated"
)

// Types lists every legal workflow event for registry validation.
func Types() []event.Type {
	return []event.Type{
		TypeCaseClaimed, TypeClaimRemoved, TypeDocumentsConfirmed,
		TypeRetryOpened, TypeCaseTerminated,
	}
}

// CaseClaimedPayload assigns a lawyer to one track, moving their costs from
// the funding account into the asset's legal escrow.
type CaseClaimedPayload struct {
	AssetID chain.AssetID   `json:"asset_id"`
	Side    Side            `json:"side"`
	Lawyer  chain.AccountID `json:"lawyer"`
	Funding chain.AccountID `json:"funding"`
	Costs   []CostEntry     `json:"costs,omitempty"`
}

// ClaimRemovedPayload withdraws a pending claim, refunding its costs.
type ClaimRemovedPayload struct {
	AssetID chain.AssetID   `json:"asset_id"`
	Side    Side            `json:"side"`
	Lawyer  chain.AccountID `json:"lawyer"`
	Funding chain.AccountID `json:"funding"`
	Costs   []CostEntry     `json:"costs,omitempty"`
}

// DocumentsConfirmedPayload records a track's approve/reject decision.
type DocumentsConfirmedPayload struct {
	AssetID  chain.AssetID   `json:"asset_id"`
	Side     Side            `json:"side"`
	Lawyer   chain.AccountID `json:"lawyer"`
	Approved bool            `json:"approved"`
}

// RetryOpenedPayload re-opens both tracks after a first rejection.
type RetryOpenedPayload struct {
	AssetID chain.AssetID `json:"asset_id"`
}

// CaseTerminatedPayload ends the workflow after a second rejection: the
// accumulated costs flow back to the paying party and the asset is wound
// down.
type CaseTerminatedPayload struct {
	AssetID chain.AssetID   `json:"asset_id"`
	Funding chain.AccountID `json:"funding"`
	Refunds RefundInfos     `json:"refunds"`
}
