package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	publisher "github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	orderdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/order"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type OrderUsecase interface {
	PlaceOrder(ctx context.Context, input *orderdto.PlaceOrderInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, input *orderdto.UpdateStatusInput) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	ReportFailure(ctx context.Context, input *orderdto.PlaceOrderInput, err error)
}

// OrderEventPublisher is the part of the Kafka publisher the order flow needs.
type OrderEventPublisher interface {
	PublishOrderEvent(topic string, event publisher.OrderEvent) error
	PublishOrderFailure(topic string, event publisher.OrderFailureEvent) error
}

type Topics struct {
	Orders   string
	Failures string
}

type DefaultOrderUsecase struct {
	OrderRepo   domain.OrderRepository
	Publisher   OrderEventPublisher
	Topics      Topics
	Metrics     *metrics.BotMetrics
	Logger      *slog.Logger
	now         func() time.Time
	orderNumber func() string
}

// NewDefaultOrderUsecase builds the order flow. events may be nil when Kafka is not configured.
func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	events OrderEventPublisher,
	topics Topics,
	botMetrics *metrics.BotMetrics,
	logger *slog.Logger,
) (*DefaultOrderUsecase, error) {
	suffix, err := nanoid.CustomASCII(orderNumberAlphabet, 6)
	if err != nil {
		return nil, fmt.Errorf("failed to init order number generator: %w", err)
	}
	uc := &DefaultOrderUsecase{
		OrderRepo: orderRepo,
		Publisher: events,
		Topics:    topics,
		Metrics:   botMetrics,
		Logger:    logger,
		now:       time.Now,
	}
	uc.orderNumber = func() string {
		return fmt.Sprintf("ORD-%s-%s", uc.now().Format("20060102"), suffix())
	}
	return uc, nil
}

// PlaceOrder stores a pending cash-on-delivery order. The total is the sum of the item
// line totals, so it always matches the stored items.
func (uc *DefaultOrderUsecase) PlaceOrder(ctx context.Context, input *orderdto.PlaceOrderInput) (*domain.Order, error) {
	if input.MessengerID == "" {
		return nil, domain.ErrMissingParticipant
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	total := decimal.Zero
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		code := domain.NormalizeCode(in.Code)
		if code == "" {
			code = "CART"
		}
		item := domain.OrderItem{
			ProductID:   in.ProductID,
			ProductCode: code,
			ProductName: in.Name,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		}
		item.TotalPrice = item.LineTotal()
		total = total.Add(item.TotalPrice)
		items = append(items, item)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	now := uc.now()
	order := &domain.Order{
		OrderNumber:           uc.orderNumber(),
		MessengerID:           input.MessengerID,
		DeliveryAddress:       input.DeliveryAddress,
		CustomerPhone:         input.CustomerPhone,
		CustomerName:          input.CustomerName,
		TotalAmount:           total,
		Currency:              currency,
		Status:                domain.StatusPending,
		PaymentStatus:         domain.PaymentPending,
		PaymentMethod:         domain.PaymentMethodCashOnDelivery,
		Notes:                 input.Notes,
		EstimatedDeliveryTime: now.Add(domain.DeliveryEstimate),
		Items:                 items,
	}

	contact := domain.CustomerContact{
		MessengerID: input.MessengerID,
		Phone:       input.CustomerPhone,
		Address:     input.DeliveryAddress,
		Name:        input.CustomerName,
	}
	if err := uc.OrderRepo.CreateOrder(ctx, order, contact); err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = orderdto.SourceBot
	}
	amount, _ := total.Float64()
	uc.Metrics.RecordOrderPlaced(source, currency, amount)
	uc.Logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("total", total.StringFixed(2)),
		slog.String("currency", currency),
		slog.Int("items", len(items)),
	)
	uc.publishEvent(domain.ChangeInsert, order)
	return order, nil
}

// ReportFailure records an order the store refused: log, metric and, with Kafka, the failure topic.
func (uc *DefaultOrderUsecase) ReportFailure(ctx context.Context, input *orderdto.PlaceOrderInput, err error) {
	cause := domain.FailureCauseOf(err)
	uc.Metrics.RecordPersistFailure(string(cause))
	uc.Logger.Error("failed to save order",
		slog.String("participant", input.MessengerID),
		slog.String("cause", string(cause)),
		slog.String("error", err.Error()),
	)

	if uc.Publisher == nil || uc.Topics.Failures == "" {
		return
	}
	event := publisher.OrderFailureEvent{
		ParticipantID:   input.MessengerID,
		Cause:           cause,
		Error:           err.Error(),
		DeliveryAddress: input.DeliveryAddress,
		CustomerPhone:   input.CustomerPhone,
		Currency:        input.Currency,
		OccurredAt:      uc.now().UTC(),
	}
	total := decimal.Zero
	for _, item := range input.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		event.Items = append(event.Items, publisher.FailedItem{
			Code:      item.Code,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}
	event.TotalAmount = total.StringFixed(2)

	if pubErr := uc.Publisher.PublishOrderFailure(uc.Topics.Failures, event); pubErr != nil {
		uc.Logger.Error("failed to publish order failure", slog.String("error", pubErr.Error()))
	}
}

func (uc *DefaultOrderUsecase) UpdateOrderStatus(ctx context.Context, input *orderdto.UpdateStatusInput) (*domain.Order, error) {
	status := domain.OrderStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := uc.OrderRepo.UpdateOrderStatus(ctx, input.OrderID, status, strings.TrimSpace(input.Note))
	if err != nil {
		return nil, err
	}

	uc.Metrics.RecordStatusChange(string(status))
	uc.publishEvent(domain.ChangeUpdate, order)
	return order, nil
}

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(ctx, orderID)
}

func (uc *DefaultOrderUsecase) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return uc.OrderRepo.GetOrders(ctx, filter)
}

func (uc *DefaultOrderUsecase) publishEvent(eventType domain.ChangeType, order *domain.Order) {
	if uc.Publisher == nil || uc.Topics.Orders == "" {
		return
	}
	if err := uc.Publisher.PublishOrderEvent(uc.Topics.Orders, publisher.NewOrderEvent(eventType, order)); err != nil {
		uc.Logger.Error("failed to publish order event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}
