package handlers

import (
	"github.com/valyala/fasthttp"

	"bank-dashboard/internal/models"
	"bank-dashboard/internal/services"
)

type TransferHandler struct {
	accounts *services.AccountService
}

func NewTransferHandler(accounts *services.AccountService) *TransferHandler {
	return &TransferHandler{accounts: accounts}
}

// Transfer handles POST /api/transfer. The validator gate runs first; a
// rejected transfer never reaches the ledger.
func (h *TransferHandler) Transfer(ctx *fasthttp.RequestCtx) {
	var req models.TransferRequest
	if !decodeBody(ctx, &req) {
		return
	}

	result, err := h.accounts.Transfer(ctx, req.FromAccount, req.ToAccount, req.Amount)
	if err != nil {
		respondFailure(ctx, "TransferHandler", err)
		return
	}

	respondJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message":      "successfully transferred $" + req.Amount.StringFixed(2),
		"from_account": result.FromAccount,
		"to_account":   result.ToAccount,
	})
}

// Feed handles GET /api/transactions?account=: the global feed, newest
// first.
func (h *TransferHandler) Feed(ctx *fasthttp.RequestCtx) {
	accountNumber := string(ctx.QueryArgs().Peek("account"))

	transactions, err := h.accounts.Feed(ctx, accountNumber)
	if err != nil {
		respondFailure(ctx, "TransferHandler", err)
		return
	}

	respondJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"total":        len(transactions),
	})
}
