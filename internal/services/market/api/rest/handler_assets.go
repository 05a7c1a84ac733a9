package rest

import (
	"net/http"

	"github.com/deedshare/deedshare/internal/services/market/app"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

type createAssetRequest struct {
	RegionID uint32 `json:"region_id"`
	Location string `json:"location"`
	Supply   string `json:"supply"`
	Price    string `json:"price"`
	Data     string `json:"data"`
}

type distributeRequest struct {
	Investor string `json:"investor"`
	Amount   string `json:"amount"`
}

type transferRequest struct {
	Receiver    string `json:"receiver"`
	FundsSource string `json:"funds_source"`
	Amount      string `json:"amount"`
}

type assetResponse struct {
	ID         uint32 `json:"id"`
	RegionID   uint32 `json:"region_id"`
	Location   string `json:"location"`
	Supply     string `json:"supply"`
	Price      string `json:"price"`
	Data       string `json:"data"`
	Funding    string `json:"funding"`
	Finalized  bool   `json:"finalized"`
	SpvCreated bool   `json:"spv_created"`
}

func assetResponseFrom(info app.PropertyAssetInfo) assetResponse {
	return assetResponse{
		ID:         uint32(info.ID),
		RegionID:   uint32(info.RegionID),
		Location:   info.Location,
		Supply:     info.Supply.Dec(),
		Price:      info.Price.Dec(),
		Data:       info.Data,
		Funding:    string(info.Funding),
		Finalized:  info.Finalized,
		SpvCreated: info.SpvCreated,
	}
}

func (h *Handler) handleCreateAsset(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req createAssetRequest
	if !h.decode(w, r, &req) {
		return
	}
	supply, err := parseAmount(req.Supply)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	price, err := parseAmount(req.Price)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.CreatePropertyToken(r.Context(), identity.Account, chain.RegionID(req.RegionID), req.Location, supply, price, req.Data); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, nil)
}

func (h *Handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	info, err := h.runtime.PropertyAsset(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, assetResponseFrom(info))
}

func (h *Handler) handleListOwners(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	owners, err := h.runtime.PropertyOwners(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	names := make([]string, len(owners))
	for i, owner := range owners {
		names[i] = string(owner)
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"owners": names})
}

func (h *Handler) handleOwnerBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	owner := chain.AccountID(r.PathValue("account"))
	balance, err := h.runtime.TokenBalance(id, owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"owner":   string(owner),
		"balance": balance.Dec(),
	})
}

func (h *Handler) handleDistribute(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req distributeRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.DistributePropertyTokenToOwner(r.Context(), identity.Account, id, chain.AccountID(req.Investor), amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req transferRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	fundsSource := chain.AccountID(req.FundsSource)
	if req.FundsSource == "" {
		fundsSource = chain.AccountID(req.Receiver)
	}
	if err := h.runtime.TransferPropertyToken(r.Context(), id, identity.Account, fundsSource, chain.AccountID(req.Receiver), amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

type takeTokensRequest struct {
	Owner string `json:"owner"`
}

func (h *Handler) handleTakeTokens(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req takeTokensRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.TakePropertyToken(r.Context(), identity.Account, id, chain.AccountID(req.Owner)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleRemoveOwnership(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	owner := chain.AccountID(r.PathValue("account"))
	if err := h.runtime.RemoveTokenOwnership(r.Context(), identity.Account, id, owner); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleClearOwners(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.ClearTokenOwners(r.Context(), identity.Account, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleRegisterSpv(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.RegisterSpv(r.Context(), identity.Account, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleBurn(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathAssetID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.BurnPropertyToken(r.Context(), identity.Account, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}
