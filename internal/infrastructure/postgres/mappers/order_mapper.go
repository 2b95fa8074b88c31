package mappers

import (
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:              model.ID,
		OrderNumber:     model.OrderNumber,
		CustomerID:      model.CustomerID,
		MessengerID:     model.MessengerID,
		DeliveryAddress: model.DeliveryAddress,
		CustomerPhone:   model.CustomerPhone,
		CustomerName:    model.CustomerName,
		TotalAmount:     model.TotalAmount,
		Currency:        model.Currency,
		Status:          model.OrderStatus,
		PaymentStatus:   domain.PaymentStatus(model.PaymentStatus),
		PaymentMethod:   model.PaymentMethod,
		Notes:           model.Notes,
		DeliveredAt:     model.DeliveredAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	if model.EstimatedDeliveryTime != nil {
		order.EstimatedDeliveryTime = *model.EstimatedDeliveryTime
	}
	if len(model.Items) > 0 {
		order.Items = make([]domain.OrderItem, len(model.Items))
		for i := range model.Items {
			order.Items[i] = ToDomainOrderItem(&model.Items[i])
		}
	}
	return order
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	model := &models.OrderModel{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		MessengerID:     order.MessengerID,
		DeliveryAddress: order.DeliveryAddress,
		CustomerPhone:   order.CustomerPhone,
		CustomerName:    order.CustomerName,
		TotalAmount:     order.TotalAmount,
		Currency:        order.Currency,
		OrderStatus:     order.Status,
		PaymentStatus:   string(order.PaymentStatus),
		PaymentMethod:   order.PaymentMethod,
		Notes:           order.Notes,
		DeliveredAt:     order.DeliveredAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if !order.EstimatedDeliveryTime.IsZero() {
		eta := order.EstimatedDeliveryTime
		model.EstimatedDeliveryTime = &eta
	}
	return model
}

func ToDomainOrderItem(model *models.OrderItemModel) domain.OrderItem {
	return domain.OrderItem{
		ID:          model.ID,
		OrderID:     model.OrderID,
		ProductID:   model.ProductID,
		ProductCode: model.ProductCode,
		ProductName: model.ProductName,
		Quantity:    model.Quantity,
		UnitPrice:   model.UnitPrice,
		TotalPrice:  model.TotalPrice,
		CreatedAt:   model.CreatedAt,
	}
}

func ToGORMOrderItem(item *domain.OrderItem) *models.OrderItemModel {
	return &models.OrderItemModel{
		ID:          item.ID,
		OrderID:     item.OrderID,
		ProductID:   item.ProductID,
		ProductCode: item.ProductCode,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
		CreatedAt:   item.CreatedAt,
	}
}

func ToGORMStatusHistory(entry *domain.OrderStatusHistory) *models.OrderStatusHistoryModel {
	return &models.OrderStatusHistoryModel{
		ID:        entry.ID,
		OrderID:   entry.OrderID,
		Status:    entry.Status,
		Notes:     entry.Notes,
		ChangedBy: entry.ChangedBy,
		CreatedAt: orNow(entry.CreatedAt),
	}
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
