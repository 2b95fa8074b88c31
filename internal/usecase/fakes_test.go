package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	publisher "github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/kafka"
)

type fakeOrderRepo struct {
	mu        sync.Mutex
	created   []*domain.Order
	contacts  []domain.CustomerContact
	createErr error

	counts    map[domain.OrderStatus]int64
	today     int64
	delivered []domain.OrderAmount
	items     []domain.OrderItem
	since     time.Time
	updated   *domain.Order
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *domain.Order, contact domain.CustomerContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	order.ID = "order-1"
	r.created = append(r.created, order)
	r.contacts = append(r.contacts, contact)
	return nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, orderID string, status domain.OrderStatus, note string) (*domain.Order, error) {
	if orderID == "missing" {
		return nil, domain.ErrOrderNotFound
	}
	r.updated = &domain.Order{ID: orderID, Status: status, Notes: note}
	return r.updated, nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) GetOrders(_ context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) CountOrders(_ context.Context, status domain.OrderStatus, since time.Time) (int64, error) {
	if !since.IsZero() {
		return r.today, nil
	}
	return r.counts[status], nil
}

func (r *fakeOrderRepo) DeliveredOrdersSince(_ context.Context, since time.Time) ([]domain.OrderAmount, error) {
	r.since = since
	return r.delivered, nil
}

func (r *fakeOrderRepo) DeliveredOrderItems(_ context.Context) ([]domain.OrderItem, error) {
	return r.items, nil
}

type fakeProductRepo struct {
	products  []*domain.Product
	listErr   error
	created   *domain.Product
	upserted  []*domain.Product
	patch     domain.ProductPatch
	createErr error
	deleted   map[string]bool
}

func (r *fakeProductRepo) ListProducts(_ context.Context, includeInactive bool) ([]*domain.Product, error) {
	if r.listErr != nil || includeInactive {
		return r.products, r.listErr
	}
	var active []*domain.Product
	for _, p := range r.products {
		if !r.deleted[p.ID] {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *fakeProductRepo) GetProductByCode(_ context.Context, code string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, productID string) (*domain.Product, error) {
	return &domain.Product{ID: productID}, nil
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, product *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	product.ID = "p-1"
	r.created = product
	r.products = append(r.products, product)
	return nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	r.patch = patch
	return &domain.Product{ID: productID}, nil
}

func (r *fakeProductRepo) SoftDeleteProduct(_ context.Context, productID string) error {
	if r.deleted == nil {
		r.deleted = make(map[string]bool)
	}
	r.deleted[productID] = true
	return nil
}

func (r *fakeProductRepo) UpsertProducts(_ context.Context, products []*domain.Product) error {
	r.upserted = products
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	events   []publisher.OrderEvent
	failures []publisher.OrderFailureEvent
	topics   []string
}

func (p *fakePublisher) PublishOrderEvent(topic string, event publisher.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) PublishOrderFailure(topic string, event publisher.OrderFailureEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.failures = append(p.failures, event)
	return nil
}
