package rest

import (
	"net/http"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

type mintRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

type accountRequest struct {
	Account string `json:"account"`
}

func (h *Handler) handleMintFunds(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req mintRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.MintFunds(r.Context(), h.capability(identity), chain.AccountID(req.Account), chain.Native(), amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleWhitelist(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req accountRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.WhitelistAccount(r.Context(), h.capability(identity), chain.AccountID(req.Account)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleAddOperator(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req accountRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.AddRegionalOperator(r.Context(), h.capability(identity), chain.AccountID(req.Account)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleRemoveOperator(w http.ResponseWriter, r *http.Request, identity Identity) {
	account := chain.AccountID(r.PathValue("account"))
	if err := h.runtime.RemoveRegionalOperator(r.Context(), h.capability(identity), account); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}
