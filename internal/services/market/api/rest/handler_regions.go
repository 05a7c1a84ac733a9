package rest

import (
	"net/http"

	"github.com/deedshare/deedshare/internal/services/market/app"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/region"
)

type proposeRegionRequest struct {
	Identifier string `json:"identifier"`
}

type voteRequest struct {
	Vote string `json:"vote"`
}

type bidRequest struct {
	Amount string `json:"amount"`
}

type createRegionRequest struct {
	Identifier      string `json:"identifier"`
	ListingDuration uint32 `json:"listing_duration"`
	TaxPpm          uint32 `json:"tax_ppm"`
}

type adjustDurationRequest struct {
	ListingDuration uint32 `json:"listing_duration"`
}

type adjustTaxRequest struct {
	TaxPpm uint32 `json:"tax_ppm"`
}

type takeoverDecisionRequest struct {
	Accept bool `json:"accept"`
}

type registerLawyerRequest struct {
	Lawyer string `json:"lawyer"`
}

type createLocationRequest struct {
	Postcode string `json:"postcode"`
}

type regionResponse struct {
	ID              uint32 `json:"id"`
	Identifier      string `json:"identifier"`
	Owner           string `json:"owner"`
	ListingDuration uint32 `json:"listing_duration"`
	TaxPpm          uint32 `json:"tax_ppm"`
	LocationCount   uint32 `json:"location_count"`
	Resigning       bool   `json:"resigning"`
	Deposit         string `json:"deposit"`
}

func regionResponseFrom(info app.RegionInfo) regionResponse {
	return regionResponse{
		ID:              uint32(info.ID),
		Identifier:      string(info.Identifier),
		Owner:           string(info.Owner),
		ListingDuration: info.ListingDuration,
		TaxPpm:          info.TaxPpm,
		LocationCount:   info.LocationCount,
		Resigning:       info.Resigning,
		Deposit:         info.Deposit.Dec(),
	}
}

func (h *Handler) handleProposeRegion(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req proposeRegionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.ProposeNewRegion(r.Context(), identity.Account, region.Identifier(req.Identifier)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, nil)
}

func (h *Handler) handleVoteOnProposal(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req voteRequest
	if !h.decode(w, r, &req) {
		return
	}
	ident := region.Identifier(r.PathValue("identifier"))
	if err := h.runtime.VoteOnRegionProposal(r.Context(), identity.Account, ident, region.Vote(req.Vote)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleBidOnRegion(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req bidRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ident := region.Identifier(r.PathValue("identifier"))
	if err := h.runtime.BidOnRegion(r.Context(), identity.Account, ident, amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleCreateRegion(w http.ResponseWriter, r *http.Request, identity Identity) {
	var req createRegionRequest
	if !h.decode(w, r, &req) {
		return
	}
	ident := region.Identifier(req.Identifier)
	if err := h.runtime.CreateNewRegion(r.Context(), identity.Account, ident, req.ListingDuration, req.TaxPpm); err != nil {
		h.writeError(w, r, err)
		return
	}
	info, err := h.runtime.RegionByIdentifier(ident)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, regionResponseFrom(info))
}

func (h *Handler) handleGetRegion(w http.ResponseWriter, r *http.Request) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	info, err := h.runtime.RegionInfo(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, regionResponseFrom(info))
}

func (h *Handler) handleAdjustDuration(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req adjustDurationRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.AdjustListingDuration(r.Context(), identity.Account, id, req.ListingDuration); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleAdjustTax(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req adjustTaxRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.AdjustRegionTax(r.Context(), identity.Account, id, req.TaxPpm); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleProposeTakeover(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.ProposeRegionTakeover(r.Context(), identity.Account, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, nil)
}

func (h *Handler) handleTakeoverDecision(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req takeoverDecisionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.HandleTakeover(r.Context(), identity.Account, id, req.Accept); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleCancelTakeover(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.CancelRegionTakeover(r.Context(), identity.Account, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleProposeRemoval(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.ProposeRemoveRegionalOperator(r.Context(), identity.Account, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, nil)
}

func (h *Handler) handleVoteOnRemoval(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req voteRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.VoteOnRemoveOwnerProposal(r.Context(), identity.Account, id, region.Vote(req.Vote)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleReplacementBid(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req bidRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.BidOnRegionReplacement(r.Context(), identity.Account, id, amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleResignation(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.runtime.InitiateRegionOwnerResignation(r.Context(), identity.Account, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, nil)
}

func (h *Handler) handleRegisterLawyer(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req registerLawyerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.RegisterLawyer(r.Context(), identity.Account, id, chain.AccountID(req.Lawyer)); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleCreateLocation(w http.ResponseWriter, r *http.Request, identity Identity) {
	id, err := pathRegionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req createLocationRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.runtime.CreateNewLocation(r.Context(), identity.Account, id, req.Postcode); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, nil)
}
