package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/dto/admin/request"
	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/dto/admin/response"
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/usecase"
	orderdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/order"
)

type OrderHandler struct {
	orderUC usecase.OrderUsecase
	log     *slog.Logger
}

func NewOrderHandler(orderUC usecase.OrderUsecase, log *slog.Logger) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, log: log}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(strings.ToLower(r.URL.Query().Get("status")))
	orders, err := h.orderUC.GetOrders(r.Context(), domain.OrderFilter{Status: status})
	if err != nil {
		writeError(w, h.log, "list orders", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, response.NewOrderResponses(orders))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, domain.ErrOrderNotFound)
	if err != nil {
		writeError(w, h.log, "get order", err)
		return
	}
	order, err := h.orderUC.GetOrderByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, "get order", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, response.NewOrderResponse(order))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, domain.ErrOrderNotFound)
	if err != nil {
		writeError(w, h.log, "update order status", err)
		return
	}
	var req request.UpdateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, "update order status", err)
		return
	}

	order, err := h.orderUC.UpdateOrderStatus(r.Context(), &orderdto.UpdateStatusInput{
		OrderID: id,
		Status:  req.Status,
		Note:    req.Note,
	})
	if err != nil {
		writeError(w, h.log, "update order status", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, response.NewOrderResponse(order))
}
