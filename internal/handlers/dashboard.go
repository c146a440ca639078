package handlers

import (
	"time"

	"github.com/valyala/fasthttp"

	"bank-dashboard/internal/services"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	ledger    services.Ledger
}

func NewDashboardHandler(dashboard *services.DashboardService, ledger services.Ledger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		ledger:    ledger,
	}
}

// Dashboard handles GET /api/dashboard: the joined summary + flow +
// distribution + recent-activity view.
func (h *DashboardHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	view, err := h.dashboard.View(ctx)
	if err != nil {
		respondFailure(ctx, "DashboardHandler", err)
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, view)
}

// Health handles GET /health: process liveness plus ledger reachability.
func (h *DashboardHandler) Health(ctx *fasthttp.RequestCtx) {
	ledgerStatus := "reachable"
	status := fasthttp.StatusOK
	if err := h.pingLedger(ctx); err != nil {
		ledgerStatus = "unreachable"
		status = fasthttp.StatusServiceUnavailable
	}
	respondJSON(ctx, status, map[string]string{
		"status": "ok",
		"ledger": ledgerStatus,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *DashboardHandler) pingLedger(ctx *fasthttp.RequestCtx) error {
	_, err := h.ledger.Summary(ctx)
	return err
}
