package mappers

import (
	"testing"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToGORMProduct_NormalizesCode(t *testing.T) {
	model := ToGORMProduct(&domain.Product{Code: " f010 ", Name: "Pad Thai", Price: decimal.RequireFromString("11.50")})
	assert.Equal(t, "F010", model.Code)
}

func TestProductPatchColumns_OnlySetFields(t *testing.T) {
	name := "Veggie Burger"
	active := false
	columns := ProductPatchColumns(domain.ProductPatch{Name: &name, IsActive: &active})

	assert.Equal(t, map[string]interface{}{"name": "Veggie Burger", "is_active": false}, columns)
}

func TestToDomainOrder_CarriesItemsAndEstimate(t *testing.T) {
	eta := time.Date(2026, 10, 14, 12, 45, 0, 0, time.UTC)
	model := &models.OrderModel{
		ID:                    "o-1",
		OrderNumber:           "ORD-20261014-ABCDEF",
		TotalAmount:           decimal.RequireFromString("25.98"),
		OrderStatus:           domain.StatusPending,
		PaymentStatus:         "pending",
		EstimatedDeliveryTime: &eta,
		Items: []models.OrderItemModel{
			{ID: "i-1", OrderID: "o-1", ProductCode: "F002", ProductName: "Chicken Burger", Quantity: 2,
				UnitPrice: decimal.RequireFromString("12.99"), TotalPrice: decimal.RequireFromString("25.98")},
		},
	}

	order := ToDomainOrder(model)
	assert.Equal(t, eta, order.EstimatedDeliveryTime)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	if assert.Len(t, order.Items, 1) {
		assert.Equal(t, "F002", order.Items[0].ProductCode)
		assert.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("25.98")))
	}

	back := ToGORMOrder(order)
	assert.Equal(t, &eta, back.EstimatedDeliveryTime)
	assert.Equal(t, domain.StatusPending, back.OrderStatus)
}
