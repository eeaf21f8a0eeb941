package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
	apphttp "github.com/chainsafe/token-bridge-validator/pkg/app/http"
	tokenservice "github.com/chainsafe/token-bridge-validator/pkg/token/service"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the claim endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/transactions/{account}", apphttp.HandleError(h.getTransactions))
	r.Get("/validator/{txType}/{sourceChainId}/{targetChainId}/{txHash}", apphttp.HandleError(h.getAttestation))
	r.Post("/transactions/{txType}/claim", apphttp.HandleError(h.acknowledgeClaim))
}

func (h *HTTP) getTransactions(w http.ResponseWriter, r *http.Request) error {
	views, err := h.service.GetTransactions(r.Context(), chi.URLParam(r, "account"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, views)
	return nil
}

func (h *HTTP) getAttestation(w http.ResponseWriter, r *http.Request) error {
	txType, err := parseType(r)
	if err != nil {
		return err
	}
	sourceChainID, err := tokenservice.ParseChainID(chi.URLParam(r, "sourceChainId"))
	if err != nil {
		return err
	}
	targetChainID, err := tokenservice.ParseChainID(chi.URLParam(r, "targetChainId"))
	if err != nil {
		return err
	}

	att, err := h.service.GetPendingAttestation(r.Context(), transaction.Key{
		BridgeTxHash:  chi.URLParam(r, "txHash"),
		Type:          txType,
		SourceChainID: sourceChainID,
		TargetChainID: targetChainID,
	})
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, att)
	return nil
}

func (h *HTTP) acknowledgeClaim(w http.ResponseWriter, r *http.Request) error {
	txType, err := parseType(r)
	if err != nil {
		return err
	}

	var req transaction.ClaimRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.SourceChainID == 0 || req.TargetChainID == 0 {
		return apperrors.BadRequestError(nil, "sourceChainId and targetChainId are required")
	}

	view, err := h.service.AcknowledgeClaim(r.Context(), txType, &req)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, view)
	return nil
}

func parseType(r *http.Request) (transaction.Type, error) {
	t, err := transaction.ParseType(chi.URLParam(r, "txType"))
	if err != nil {
		return "", apperrors.BadRequestError(err, "unknown transaction type")
	}
	return t, nil
}
