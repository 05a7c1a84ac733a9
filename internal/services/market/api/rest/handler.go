// Package rest exposes the market runtime over an authenticated JSON API.
package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/holiman/uint256"
	"google.golang.org/grpc/codes"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/app"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

const maxRequestBody = 1 << 20

// Handler routes market API requests to the runtime.
type Handler struct {
	runtime *app.Runtime
	auth    AuthConfig
	logger  *slog.Logger
	mux     *http.ServeMux
}

// NewHandler builds the market API surface over a runtime.
func NewHandler(runtime *app.Runtime, auth AuthConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		runtime: runtime,
		auth:    auth,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /v1/height", h.handleHeight)

	h.mux.HandleFunc("POST /v1/admin/mint", h.authed(h.handleMintFunds))
	h.mux.HandleFunc("POST /v1/admin/whitelist", h.authed(h.handleWhitelist))
	h.mux.HandleFunc("POST /v1/admin/operators", h.authed(h.handleAddOperator))
	h.mux.HandleFunc("DELETE /v1/admin/operators/{account}", h.authed(h.handleRemoveOperator))

	h.mux.HandleFunc("POST /v1/regions/proposals", h.authed(h.handleProposeRegion))
	h.mux.HandleFunc("POST /v1/regions/proposals/{identifier}/votes", h.authed(h.handleVoteOnProposal))
	h.mux.HandleFunc("POST /v1/regions/auctions/{identifier}/bids", h.authed(h.handleBidOnRegion))
	h.mux.HandleFunc("POST /v1/regions", h.authed(h.handleCreateRegion))
	h.mux.HandleFunc("GET /v1/regions/{id}", h.handleGetRegion)
	h.mux.HandleFunc("PUT /v1/regions/{id}/listing-duration", h.authed(h.handleAdjustDuration))
	h.mux.HandleFunc("PUT /v1/regions/{id}/tax", h.authed(h.handleAdjustTax))
	h.mux.HandleFunc("POST /v1/regions/{id}/takeovers", h.authed(h.handleProposeTakeover))
	h.mux.HandleFunc("POST /v1/regions/{id}/takeovers/decision", h.authed(h.handleTakeoverDecision))
	h.mux.HandleFunc("DELETE /v1/regions/{id}/takeovers", h.authed(h.handleCancelTakeover))
	h.mux.HandleFunc("POST /v1/regions/{id}/removals", h.authed(h.handleProposeRemoval))
	h.mux.HandleFunc("POST /v1/regions/{id}/removals/votes", h.authed(h.handleVoteOnRemoval))
	h.mux.HandleFunc("POST /v1/regions/{id}/replacement-bids", h.authed(h.handleReplacementBid))
	h.mux.HandleFunc("POST /v1/regions/{id}/resignation", h.authed(h.handleResignation))
	h.mux.HandleFunc("POST /v1/regions/{id}/lawyers", h.authed(h.handleRegisterLawyer))
	h.mux.HandleFunc("POST /v1/regions/{id}/locations", h.authed(h.handleCreateLocation))

	h.mux.HandleFunc("POST /v1/assets", h.authed(h.handleCreateAsset))
	h.mux.HandleFunc("GET /v1/assets/{id}", h.handleGetAsset)
	h.mux.HandleFunc("GET /v1/assets/{id}/owners", h.handleListOwners)
	h.mux.HandleFunc("GET /v1/assets/{id}/owners/{account}", h.handleOwnerBalance)
	h.mux.HandleFunc("POST /v1/assets/{id}/distributions", h.authed(h.handleDistribute))
	h.mux.HandleFunc("POST /v1/assets/{id}/transfers", h.authed(h.handleTransfer))
	h.mux.HandleFunc("POST /v1/assets/{id}/reclaims", h.authed(h.handleTakeTokens))
	h.mux.HandleFunc("DELETE /v1/assets/{id}/owners/{account}", h.authed(h.handleRemoveOwnership))
	h.mux.HandleFunc("DELETE /v1/assets/{id}/owners", h.authed(h.handleClearOwners))
	h.mux.HandleFunc("POST /v1/assets/{id}/spv", h.authed(h.handleRegisterSpv))
	h.mux.HandleFunc("POST /v1/assets/{id}/burn", h.authed(h.handleBurn))

	h.mux.HandleFunc("GET /v1/assets/{id}/legal", h.handleGetLegalCase)
	h.mux.HandleFunc("POST /v1/assets/{id}/legal/claims", h.authed(h.handleClaimCase))
	h.mux.HandleFunc("DELETE /v1/assets/{id}/legal/claims/{side}", h.authed(h.handleRemoveClaim))
	h.mux.HandleFunc("POST /v1/assets/{id}/legal/confirmations", h.authed(h.handleConfirmDocuments))
}

// authed verifies the bearer token before invoking the handler.
func (h *Handler) authed(next func(http.ResponseWriter, *http.Request, Identity)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := identityFromRequest(r, h.auth)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next(w, r, identity)
	}
}

func (h *Handler) capability(identity Identity) app.Capability {
	return app.Capability{Admin: identity.Admin}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		h.writeError(w, r, apperrors.Wrap(apperrors.CodeInvalidRequest, "decode request body", err))
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	h.writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": err.Error(),
	})
}

// httpStatus maps a domain code to an HTTP status via its gRPC class.
func httpStatus(code apperrors.Code) int {
	switch code.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.FailedPrecondition:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.OutOfRange:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func pathRegionID(r *http.Request) (chain.RegionID, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeInvalidRequest, "region id must be a number")
	}
	return chain.RegionID(id), nil
}

func pathAssetID(r *http.Request) (chain.AssetID, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeInvalidRequest, "asset id must be a number")
	}
	return chain.AssetID(id), nil
}

// parseAmount decodes a decimal string into a 256-bit amount.
func parseAmount(value string) (*uint256.Int, error) {
	if value == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "amount is required")
	}
	amount, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidRequest, fmt.Sprintf("amount %q is not a valid decimal", value), err)
	}
	return amount, nil
}

func (h *Handler) handleHeight(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]uint64{"height": uint64(h.runtime.Height())})
}
