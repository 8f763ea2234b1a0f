// README: Wallet top-up, balance and transaction history.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rideshare/internal/modules/wallet"
)

type WalletHandler struct {
	wallets *wallet.Service
}

func NewWalletHandler(wallets *wallet.Service) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

type topUpReq struct {
	Amount string `json:"amount"`
}

func (h *WalletHandler) TopUp(c *gin.Context) {
	var req topUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a decimal number")
		return
	}
	balance, err := h.wallets.TopUp(c.Request.Context(), actingUser(c), amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance.String()})
}

func (h *WalletHandler) Get(c *gin.Context) {
	balance, err := h.wallets.Balance(c.Request.Context(), actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance.String()})
}

type transactionView struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	RideID    *int64    `json:"ride_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.wallets.History(c.Request.Context(), actingUser(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, transactionView{
			ID:        tx.ID,
			Kind:      string(tx.Kind),
			Amount:    tx.Amount.String(),
			RideID:    tx.RideID,
			CreatedAt: tx.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}
