package handlers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"bank-dashboard/internal/filter"
	"bank-dashboard/internal/models"
	"bank-dashboard/internal/services"
)

type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// List handles GET /api/accounts?status=&q=.
func (h *AccountHandler) List(ctx *fasthttp.RequestCtx) {
	status := filter.ParseStatus(string(ctx.QueryArgs().Peek("status")))
	query := string(ctx.QueryArgs().Peek("q"))

	accounts, err := h.accounts.List(ctx, status, query)
	if err != nil {
		respondFailure(ctx, "AccountHandler", err)
		return
	}

	response := models.AccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	}
	for _, account := range accounts {
		if account.IsActive {
			response.ActiveCount++
		} else {
			response.ClosedCount++
		}
	}
	respondJSON(ctx, fasthttp.StatusOK, response)
}

// Get handles GET /api/accounts/{number}: the account plus its history in
// chronological order.
func (h *AccountHandler) Get(ctx *fasthttp.RequestCtx) {
	number, ok := pathAccountNumber(ctx)
	if !ok {
		return
	}

	account, transactions, err := h.accounts.Get(ctx, number)
	if err != nil {
		respondFailure(ctx, "AccountHandler", err)
		return
	}

	respondJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"account":      account,
		"transactions": transactions,
	})
}

// Create handles POST /api/accounts.
func (h *AccountHandler) Create(ctx *fasthttp.RequestCtx) {
	var req models.CreateAccountRequest
	if !decodeBody(ctx, &req) {
		return
	}

	account, err := h.accounts.Create(ctx, req.HolderName, req.InitialBalance)
	if err != nil {
		respondFailure(ctx, "AccountHandler", err)
		return
	}
	respondJSON(ctx, fasthttp.StatusCreated, account)
}

// Deposit handles POST /api/accounts/{number}/deposit.
func (h *AccountHandler) Deposit(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, "deposited", h.accounts.Deposit)
}

// Withdraw handles POST /api/accounts/{number}/withdraw.
func (h *AccountHandler) Withdraw(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, "withdrew", h.accounts.Withdraw)
}

type mutationOp func(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (*models.Account, error)

func (h *AccountHandler) mutate(ctx *fasthttp.RequestCtx, verb string, op mutationOp) {
	number, ok := pathAccountNumber(ctx)
	if !ok {
		return
	}
	var req models.MutationRequest
	if !decodeBody(ctx, &req) {
		return
	}

	account, err := op(ctx, number, req.Amount, req.Description)
	if err != nil {
		respondFailure(ctx, "AccountHandler", err)
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "successfully " + verb + " $" + req.Amount.StringFixed(2),
		"account": account,
	})
}

// Close handles POST /api/accounts/{number}/close. Double-close is rejected
// before the network call.
func (h *AccountHandler) Close(ctx *fasthttp.RequestCtx) {
	number, ok := pathAccountNumber(ctx)
	if !ok {
		return
	}

	account, err := h.accounts.Close(ctx, number)
	if err != nil {
		respondFailure(ctx, "AccountHandler", err)
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "account " + number + " has been closed",
		"account": account,
	})
}
