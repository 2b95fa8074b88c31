package response

import (
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID                    string              `json:"id"`
	OrderNumber           string              `json:"order_number"`
	CustomerID            string              `json:"customer_id"`
	MessengerID           string              `json:"messenger_id,omitempty"`
	DeliveryAddress       string              `json:"delivery_address"`
	CustomerPhone         string              `json:"customer_phone"`
	CustomerName          string              `json:"customer_name,omitempty"`
	TotalAmount           decimal.Decimal     `json:"total_amount"`
	Currency              string              `json:"currency"`
	Status                domain.OrderStatus  `json:"status"`
	PaymentStatus         string              `json:"payment_status"`
	PaymentMethod         string              `json:"payment_method"`
	Notes                 string              `json:"notes,omitempty"`
	EstimatedDeliveryTime time.Time           `json:"estimated_delivery_time"`
	DeliveredAt           *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	Items                 []OrderItemResponse `json:"items,omitempty"`
}

type CustomerResponse struct {
	ID          string    `json:"id"`
	MessengerID string    `json:"messenger_id"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = NewProductResponse(p)
	}
	return out
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		CustomerID:            o.CustomerID,
		MessengerID:           o.MessengerID,
		DeliveryAddress:       o.DeliveryAddress,
		CustomerPhone:         o.CustomerPhone,
		CustomerName:          o.CustomerName,
		TotalAmount:           o.TotalAmount,
		Currency:              o.Currency,
		Status:                o.Status,
		PaymentStatus:         string(o.PaymentStatus),
		PaymentMethod:         o.PaymentMethod,
		Notes:                 o.Notes,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		DeliveredAt:           o.DeliveredAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}

func NewOrderResponses(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = NewOrderResponse(o)
	}
	return out
}

func NewCustomerResponses(customers []*domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = CustomerResponse{
			ID:          c.ID,
			MessengerID: c.MessengerID,
			Phone:       c.Phone,
			Address:     c.Address,
			Name:        c.Name,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		}
	}
	return out
}
