package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/dto/response"
	"car-rental-booking/internal/usecase"
	"car-rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WalletHandler struct {
	service usecase.WalletService
	log     *zap.Logger
}

func NewWalletHandler(service usecase.WalletService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log,
	}
}

// CheckTransaction handles POST /api/check-wallet-transaction
func (h *WalletHandler) CheckTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CheckWalletTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	used, err := h.service.CheckTransactionUsed(r.Context(), req.TransactionID)
	if err != nil {
		respondServiceError(w, h.log, err, "check wallet transaction")
		return
	}

	utils.ResponseSuccess(w, "Transaction checked", &response.WalletTransactionResponse{
		TransactionID: req.TransactionID,
		Used:          used,
	})
}

// GetAddress handles GET /api/wallets/{network}
func (h *WalletHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	network := entity.Network(chi.URLParam(r, "network"))
	if network != entity.NetworkTRX && network != entity.NetworkETH {
		utils.ResponseBadRequest(w, "Unsupported network", nil)
		return
	}

	address, err := h.service.GetAddress(r.Context(), network)
	if err != nil {
		respondServiceError(w, h.log, err, "get wallet address")
		return
	}

	utils.ResponseSuccess(w, "Wallet address loaded", &response.WalletAddressResponse{
		Network: string(network),
		Address: address,
	})
}

// UpsertAddress handles PUT /api/wallets (admin)
func (h *WalletHandler) UpsertAddress(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpsertAddress(r.Context(), &req); err != nil {
		respondServiceError(w, h.log, err, "upsert wallet address")
		return
	}

	utils.ResponseSuccess(w, "Wallet address saved", nil)
}
