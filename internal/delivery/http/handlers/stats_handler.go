package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/usecase"
	orderdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/order"
)

type StatsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	log         *slog.Logger
}

func NewStatsHandler(analyticsUC usecase.AnalyticsUsecase, log *slog.Logger) *StatsHandler {
	return &StatsHandler{analyticsUC: analyticsUC, log: log}
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsUC.GetOrderStats(r.Context())
	if err != nil {
		writeError(w, h.log, "order stats", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, orderdto.NewStatsOutput(stats))
}

func (h *StatsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", usecase.DefaultSalesDays)
	if err != nil {
		writeError(w, h.log, "daily sales", err)
		return
	}
	sales, err := h.analyticsUC.GetDailySales(r.Context(), days)
	if err != nil {
		writeError(w, h.log, "daily sales", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, sales)
}

func (h *StatsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", usecase.DefaultTopProducts)
	if err != nil {
		writeError(w, h.log, "top products", err)
		return
	}
	top, err := h.analyticsUC.GetTopProducts(r.Context(), limit)
	if err != nil {
		writeError(w, h.log, "top products", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, orderdto.NewTopProductOutputs(top))
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return n, nil
}
