// Package legal implements the two-sided document workflow that finalizes a
// tokenized property: a developer-side and an SPV-side lawyer each claim the
// case, record their costs, and approve or reject the documents. One retry is
// allowed; a second rejection terminates the asset with refunds.
package legal

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/deedshare/deedshare/internal/services/market/domain/bank"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/nft"
	"github.com/deedshare/deedshare/internal/services/market/domain/region"
	"github.com/deedshare/deedshare/internal/services/market/domain/token"
)

// Side names one of the two document tracks.
type Side string

const (
	SideDeveloper Side = "real_estate_developer"
	SideSpv       Side = "spv"
)

// Other returns the opposite track.
func (s Side) Other() Side {
	if s == SideDeveloper {
		return SideSpv
	}
	return SideDeveloper
}

// Valid reports whether s names a known track.
func (s Side) Valid() bool {
	return s == SideDeveloper || s == SideSpv
}

// Status is a track's document status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// CostEntry is one lawyer cost in a given payment currency.
type CostEntry struct {
	Currency chain.Currency `json:"currency"`
	Amount   *uint256.Int   `json:"amount"`
}

// CaseSide is one claimed track of a workflow.
type CaseSide struct {
	Lawyer chain.AccountID
	Status Status
	Costs  []CostEntry
}

// Workflow is the per-asset legal process.
type Workflow struct {
	AssetID       chain.AssetID
	Sides         map[Side]*CaseSide
	SecondAttempt bool
}

// LawyerDetails snapshots the workflow for refund reporting.
type LawyerDetails struct {
	DeveloperLawyer chain.AccountID `json:"developer_lawyer,omitempty"`
	DeveloperStatus Status          `json:"developer_status,omitempty"`
	SpvLawyer       chain.AccountID `json:"spv_lawyer,omitempty"`
	SpvStatus       Status          `json:"spv_status,omitempty"`
	SecondAttempt   bool            `json:"second_attempt"`
}

// RefundInfos reports a terminal failure: the per-currency refund owed to the
// paying party and the final lawyer snapshot.
type RefundInfos struct {
	Refunds []CostEntry   `json:"refunds"`
	Details LawyerDetails `json:"details"`
}

// State is the legal workflow state folded from the journal.
type State struct {
	Workflows map[chain.AssetID]*Workflow
}

// NewState returns an empty workflow state.
func NewState() *State {
	return &State{Workflows: make(map[chain.AssetID]*Workflow)}
}

// Params bound the workflow.
type Params struct {
	// MaxCostEntries caps distinct payment currencies per side.
	MaxCostEntries int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{MaxCostEntries: 8}
}

// View is the read context a decision runs against.
type View struct {
	State   *State
	Tokens  *token.State
	Regions *region.State
	Ledger  *bank.Ledger
	NFTs    *nft.Registry
	Params  Params
}

// EscrowAccount holds claimed lawyer costs for an asset until the workflow
// resolves.
func EscrowAccount(id chain.AssetID) chain.AccountID {
	return chain.AccountID(fmt.Sprintf("legal-escrow-%d", id))
}

func (w *Workflow) details() LawyerDetails {
	d := LawyerDetails{SecondAttempt: w.SecondAttempt}
	if side, ok := w.Sides[SideDeveloper]; ok {
		d.DeveloperLawyer = side.Lawyer
		d.DeveloperStatus = side.Status
	}
	if side, ok := w.Sides[SideSpv]; ok {
		d.SpvLawyer = side.Lawyer
		d.SpvStatus = side.Status
	}
	return d
}

// mergeCosts folds both sides' cost entries into one per-currency total.
func (w *Workflow) mergeCosts() ([]CostEntry, error) {
	totals := make(map[chain.Currency]*uint256.Int)
	var order []chain.Currency
	for _, side := range []Side{SideDeveloper, SideSpv} {
		track, ok := w.Sides[side]
		if !ok {
			continue
		}
		for _, entry := range track.Costs {
			if existing, seen := totals[entry.Currency]; seen {
				next, err := chain.CheckedAdd(existing, entry.Amount)
				if err != nil {
					return nil, err
				}
				totals[entry.Currency] = next
				continue
			}
			totals[entry.Currency] = new(uint256.Int).Set(entry.Amount)
			order = append(order, entry.Currency)
		}
	}
	merged := make([]CostEntry, 0, len(order))
	for _, cur := range order {
		merged = append(merged, CostEntry{Currency: cur, Amount: totals[cur]})
	}
	return merged, nil
}
