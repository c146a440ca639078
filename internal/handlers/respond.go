// Package handlers exposes the gateway's JSON surface. Handlers decode,
// delegate to a service, and map the error taxonomy onto status codes;
// composition logic lives in the services and the pure core packages.
package handlers

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"

	"bank-dashboard/internal/analytics"
	"bank-dashboard/internal/ledger"
	"bank-dashboard/internal/models"
	"bank-dashboard/internal/services"
	"bank-dashboard/internal/utils"
)

func respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(payload)
}

func respondError(ctx *fasthttp.RequestCtx, status int, message string) {
	respondJSON(ctx, status, map[string]string{"error": message})
}

// respondFailure maps a service or ledger error onto the gateway surface.
// Local validation failures are 400s with the reason inline; remote failures
// collapse into one transient notice so the caller keeps its prior view.
func respondFailure(ctx *fasthttp.RequestCtx, component string, err error) {
	var validationErr *services.ValidationError
	var unknownKind *analytics.UnknownKindError
	var remote *ledger.RemoteError

	switch {
	case errors.As(err, &validationErr):
		respondError(ctx, fasthttp.StatusBadRequest, validationErr.Error())

	case errors.Is(err, services.ErrHolderRequired),
		errors.Is(err, services.ErrNegativeInitialBalance):
		respondError(ctx, fasthttp.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrBusy):
		respondError(ctx, fasthttp.StatusConflict, "a request for this account is already in progress")

	case errors.Is(err, services.ErrStaleView):
		utils.LogWarning(component, "stale view discarded: %v", err)
		respondError(ctx, fasthttp.StatusServiceUnavailable, "view superseded")

	case errors.As(err, &unknownKind):
		// Contract violation between client and ledger. Fail loudly rather
		// than render a guessed sign.
		utils.LogError(component, "ledger contract violation", err)
		respondError(ctx, fasthttp.StatusInternalServerError, err.Error())

	case ledger.IsNotFound(err):
		respondError(ctx, fasthttp.StatusNotFound, "account not found")

	case errors.As(err, &remote):
		if remote.Status < 500 && remote.Message != "" {
			respondError(ctx, fasthttp.StatusBadRequest, remote.Message)
			return
		}
		utils.LogError(component, "ledger error", err)
		respondError(ctx, fasthttp.StatusBadGateway, "ledger error, please try again")

	case errors.Is(err, models.ErrMalformedPayload):
		utils.LogError(component, "malformed ledger payload", err)
		respondError(ctx, fasthttp.StatusBadGateway, "ledger returned a malformed response")

	case errors.Is(err, ledger.ErrUnavailable):
		respondError(ctx, fasthttp.StatusBadGateway, "ledger unavailable, please try again")

	default:
		utils.LogError(component, "request failed", err)
		respondError(ctx, fasthttp.StatusInternalServerError, "internal error")
	}
}

func decodeBody(ctx *fasthttp.RequestCtx, out interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), out); err != nil {
		respondError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathAccountNumber(ctx *fasthttp.RequestCtx) (string, bool) {
	number, ok := ctx.UserValue("number").(string)
	if !ok || number == "" {
		respondError(ctx, fasthttp.StatusBadRequest, "missing account number")
		return "", false
	}
	return number, true
}
