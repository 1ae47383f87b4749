package handler

import (
	"net/http"

	"github.com/7Pranavv/Evenoo/internal/model"
	"github.com/7Pranavv/Evenoo/internal/service"

	"github.com/gin-gonic/gin"
)

const topUpDescription = "Wallet top-up"

type WalletHandler struct {
	service service.WalletService
}

func NewWalletHandler(service service.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", RequireAuth())
	{
		router.GET("wallet", h.Balance)
		router.GET("wallet/transactions", h.Transactions)
		router.POST("wallet/top-up", h.TopUp)
		router.POST("admin/wallets/:id/reconcile", RequireAuth(model.RoleAdmin), h.Reconcile)
	}
}

func (h *WalletHandler) Balance(c *gin.Context) {
	actor, _ := CurrentActor(c)

	balance, err := h.service.Balance(requestContext(c), actor.UserID)
	if err != nil {
		handleError(c, err, "WalletBalance")
		return
	}

	handleSuccess(c, gin.H{"balance": balance}, http.StatusOK)
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	actor, _ := CurrentActor(c)

	txs, err := h.service.Transactions(requestContext(c), actor.UserID)
	if err != nil {
		handleError(c, err, "WalletTransactions")
		return
	}

	handleSuccess(c, txs, http.StatusOK)
}

// TopUp credits the caller's wallet. There is no payment gateway behind it.
func (h *WalletHandler) TopUp(c *gin.Context) {
	var req model.TopUpRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	actor, _ := CurrentActor(c)

	tx, err := h.service.Credit(requestContext(c), actor.UserID, req.Amount, topUpDescription, nil)
	if err != nil {
		handleError(c, err, "WalletTopUp")
		return
	}

	handleSuccess(c, tx, http.StatusCreated)
}

// Reconcile rewrites a user's stored balance from the ledger.
func (h *WalletHandler) Reconcile(c *gin.Context) {
	userID, ok := BindUUID(c, "id")
	if !ok {
		return
	}

	balance, err := h.service.RecomputeBalance(requestContext(c), userID)
	if err != nil {
		handleError(c, err, "WalletReconcile")
		return
	}

	handleSuccess(c, gin.H{"user_id": userID, "balance": balance}, http.StatusOK)
}
