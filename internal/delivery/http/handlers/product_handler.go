package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/dto/admin/request"
	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/dto/admin/response"
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/usecase"
	productdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/product"
)

type ProductHandler struct {
	productUC usecase.ProductUsecase
	log       *slog.Logger
}

func NewProductHandler(productUC usecase.ProductUsecase, log *slog.Logger) *ProductHandler {
	return &ProductHandler{productUC: productUC, log: log}
}

// List returns active products; include_inactive=true adds the soft-deleted ones.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	products, err := h.productUC.ListProducts(r.Context(), includeInactive)
	if err != nil {
		writeError(w, h.log, "list products", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, response.NewProductResponses(products))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, "create product", err)
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), &productdto.CreateProductInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, h.log, "create product", err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, response.NewProductResponse(product))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, domain.ErrProductNotFound)
	if err != nil {
		writeError(w, h.log, "update product", err)
		return
	}
	var req request.UpdateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, "update product", err)
		return
	}

	product, err := h.productUC.UpdateProduct(r.Context(), id, &productdto.UpdateProductInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, h.log, "update product", err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, response.NewProductResponse(product))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, domain.ErrProductNotFound)
	if err != nil {
		writeError(w, h.log, "delete product", err)
		return
	}
	if err := h.productUC.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, h.log, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
