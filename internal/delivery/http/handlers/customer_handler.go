package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/dto/admin/response"
	"github.com/LavaJover/shvark-foodbot-service/internal/usecase"
)

type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	log        *slog.Logger
}

func NewCustomerHandler(customerUC usecase.CustomerUsecase, log *slog.Logger) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC, log: log}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerUC.ListCustomers(r.Context())
	if err != nil {
		writeError(w, h.log, "list customers", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, response.NewCustomerResponses(customers))
}
