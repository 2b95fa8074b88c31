package mappers

import (
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
)

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID,
		Code:        model.Code,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		ImageURL:    model.ImageURL,
		Category:    model.Category,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMProduct(product *domain.Product) *models.ProductModel {
	return &models.ProductModel{
		ID:          product.ID,
		Code:        domain.NormalizeCode(product.Code),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ProductPatchColumns turns a partial update into the column map gorm's Updates expects.
func ProductPatchColumns(patch domain.ProductPatch) map[string]interface{} {
	columns := make(map[string]interface{})
	if patch.Code != nil {
		columns["code"] = domain.NormalizeCode(*patch.Code)
	}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.Description != nil {
		columns["description"] = *patch.Description
	}
	if patch.Price != nil {
		columns["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		columns["image_url"] = *patch.ImageURL
	}
	if patch.Category != nil {
		columns["category"] = *patch.Category
	}
	if patch.IsActive != nil {
		columns["is_active"] = *patch.IsActive
	}
	return columns
}
