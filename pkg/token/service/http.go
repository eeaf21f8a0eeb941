package service

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
	apphttp "github.com/chainsafe/token-bridge-validator/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// CreateTokenRequest is the body of POST /tokens.
type CreateTokenRequest struct {
	ChainID uint64 `json:"chainId"`
	Token   string `json:"token"`
}

// RegisterRoutes registers the supported-token endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/tokens/{chainId}", apphttp.HandleError(h.listTokens))
	r.Get("/tokens/{chainId}/{token}", apphttp.HandleError(h.getToken))
	r.Post("/tokens", apphttp.HandleError(h.createToken))
}

func (h *HTTP) listTokens(w http.ResponseWriter, r *http.Request) error {
	chainID, err := ParseChainID(chi.URLParam(r, "chainId"))
	if err != nil {
		return err
	}
	tokens, err := h.service.GetSupportedTokens(r.Context(), chainID)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, tokens)
	return nil
}

func (h *HTTP) getToken(w http.ResponseWriter, r *http.Request) error {
	chainID, err := ParseChainID(chi.URLParam(r, "chainId"))
	if err != nil {
		return err
	}
	st, err := h.service.GetSupportedToken(r.Context(), chainID, chi.URLParam(r, "token"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, st)
	return nil
}

func (h *HTTP) createToken(w http.ResponseWriter, r *http.Request) error {
	var req CreateTokenRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.ChainID == 0 {
		return apperrors.BadRequestError(nil, "chainId is required")
	}
	st, err := h.service.CreateSupportedToken(r.Context(), req.ChainID, req.Token)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, st)
	return nil
}

// ParseChainID parses a chain id path parameter.
func ParseChainID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequestError(err, "invalid chain id")
	}
	return id, nil
}
