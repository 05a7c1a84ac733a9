package rest

import (
	"net/http"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/app"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/legal"
)

type costEntryRequest struct {
	Currency string `json:"currency"`
	AssetID  uint32 `json:"asset_id,omitempty"`
	Amount   string `json:"amount"`
}

type claimCaseRequest struct {
	Side  string             `json:"side"`
	Costs []costEntryRequest `json:"costs"`
}

type confirmDocumentsRequest struct {
	Side    string `json:"side"`
	Approve bool   `json:"approve"`
}

type legalSideResponse struct {
	Lawyer string `json:"lawyer"`
	Status string `json:"status"`
}

type legalCaseResponse struct {
	AssetID       uint32                       `json:"asset_id"`
	SecondAttempt bool                         `json:"second_attempt"`
	Sides         map[string]legalSideResponse `json:"sides"`
}

func legalCaseResponseFrom(info app.LegalCaseInfo) legalCaseResponse {
	resp := legalCaseResponse{
		AssetID:       uint32(info.AssetID),
		SecondAttempt: info.SecondAttempt,
		Sides:         make(map[string]legalSideResponse, len(info.Sides)),
	}
	for side, cs := range info.Sides {
		resp.Sides[string(side)] = legalSideResponse{
			Lawyer: string(cs.Lawyer),
			Status: string(cs.Status),
		}
	}
	return resp
}

func costEntriesFrom(reqs []costEntryRequest) ([]legal.CostEntry, error) {
	costs := make([]legal.CostEntry, 0, len(reqs))
	for _, req := range reqs {
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return nil, err
		}
		var cur chain.Currency
		switch chain.CurrencyKind(req.Currency) {
		case chain.CurrencyNative:
			cur = chain.Native()
		case chain.CurrencyToken:
			cur = chain.TokenCurrency(chain.AssetID(req.AssetID))
		default:
			return nil, apperrors.New(apperrors.CodeInvalidRequest, "cost currency must be native or token")
		}
		costs = append(costs, legal.CostEntry{Currency: cur, Amount: amount})
	}
	return costs, nil
}

func (h *Handler) handleGetLegalCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	info, err := h.runtime.LegalCase(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, legalCaseResponseFrom(info))
}

func (h *Handler) handleClaimCase(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req claimCaseRequest
	if !h.decode(w, r, &req) {
		return
	}
	costs, err := costEntriesFrom(req.Costs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.LawyerClaimCase(r.Context(), identity.Account, id, legal.Side(req.Side), costs); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, nil)
}

func (h *Handler) handleRemoveClaim(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	side := legal.Side(r.PathValue("side"))
	if err := h.runtime.RemoveLawyerClaim(r.Context(), identity.Account, id, side); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleConfirmDocuments(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req confirmDocumentsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.LawyerConfirmDocuments(r.Context(), identity.Account, id, legal.Side(req.Side), req.Approve); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}
