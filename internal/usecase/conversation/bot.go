package conversation

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/order"
	"github.com/go-playground/validator/v10"
)

const (
	PayloadGetStarted  = "GET_STARTED"
	PayloadShowMenu    = "SHOW_MENU"
	PayloadOrderPrefix = "ORDER_"

	lockStripes = 64
)

var menuKeywords = []string{"MENU", "START", "HI", "HELLO"}

var ErrInvalidCart = errors.New("invalid cart event")

type Menu interface {
	Lookup(code string) (*domain.Product, bool)
	Items() []*domain.Product
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, input *orderdto.PlaceOrderInput) (*domain.Order, error)
	ReportFailure(ctx context.Context, input *orderdto.PlaceOrderInput, err error)
}

// Bot walks each participant through start -> awaiting_address -> awaiting_phone -> completed.
// Events of one participant are handled one at a time.
type Bot struct {
	menu     Menu
	sessions domain.SessionStore
	orders   OrderPlacer
	validate *validator.Validate
	logger   *slog.Logger

	locks [lockStripes]sync.Mutex
}

func NewBot(menu Menu, sessions domain.SessionStore, orders OrderPlacer, validate *validator.Validate, logger *slog.Logger) *Bot {
	return &Bot{
		menu:     menu,
		sessions: sessions,
		orders:   orders,
		validate: validate,
		logger:   logger,
	}
}

func (b *Bot) lock(participantID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(participantID))
	mu := &b.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// HandleMessage answers a text or attachment message.
func (b *Bot) HandleMessage(ctx context.Context, participantID string, msg Message) domain.OutboundMessage {
	defer b.lock(participantID)()

	if msg.Text == "" {
		if msg.HasAttachments {
			return reply(attachmentText)
		}
		return reply(helpText)
	}

	s := b.loadSession(ctx, participantID)
	switch s.Step {
	case domain.StepAwaitingAddress:
		s.Address = msg.Text
		s.Step = domain.StepAwaitingPhone
		b.saveSession(ctx, s)
		return reply(askPhoneText)

	case domain.StepAwaitingPhone:
		s.Phone = msg.Text
		return b.complete(ctx, s)
	}

	if product, ok := b.menu.Lookup(msg.Text); ok {
		return b.selectProduct(ctx, s, product)
	}
	if containsKeyword(msg.Text) {
		b.saveSession(ctx, s)
		return reply(menuText(b.menu.Items()))
	}
	b.saveSession(ctx, s)
	return reply(helpText)
}

// HandlePostback answers a button click.
func (b *Bot) HandlePostback(ctx context.Context, participantID, payload string) domain.OutboundMessage {
	defer b.lock(participantID)()

	switch {
	case payload == PayloadGetStarted:
		return reply(welcomeText())
	case payload == PayloadShowMenu:
		return reply(menuText(b.menu.Items()))
	case strings.HasPrefix(payload, PayloadOrderPrefix):
		code := strings.TrimPrefix(payload, PayloadOrderPrefix)
		if product, ok := b.menu.Lookup(code); ok {
			return b.selectProduct(ctx, b.loadSession(ctx, participantID), product)
		}
		b.logger.Warn("postback for unknown product", slog.String("code", code))
	}
	return reply(helpText)
}

// HandleCart puts a pre-assembled cart on the session and asks for the delivery address.
func (b *Bot) HandleCart(ctx context.Context, event CartEvent) (domain.OutboundMessage, error) {
	if err := b.validate.Struct(event); err != nil {
		return domain.OutboundMessage{}, fmt.Errorf("%w: %v", ErrInvalidCart, err)
	}
	for _, p := range event.Products {
		if p.UnitPrice.IsNegative() {
			return domain.OutboundMessage{}, fmt.Errorf("%w: negative unit price for %q", ErrInvalidCart, p.Name)
		}
	}

	defer b.lock(event.ParticipantID)()

	cart := &domain.Cart{
		Currency: strings.ToUpper(strings.TrimSpace(event.Products[0].Currency)),
		Note:     event.Note,
		Source:   event.Source,
	}
	if cart.Currency == "" {
		cart.Currency = domain.DefaultCartCurrency
	}
	for _, p := range event.Products {
		cart.Items = append(cart.Items, domain.CartItem{
			Code:      p.Code,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}

	s := b.loadSession(ctx, event.ParticipantID)
	s.Cart = cart
	s.SelectedItem = nil
	s.Step = domain.StepAwaitingAddress
	b.saveSession(ctx, s)

	b.logger.Info("cart received",
		slog.String("participant", event.ParticipantID),
		slog.Int("items", len(cart.Items)),
		slog.String("source", event.Source),
	)
	return reply(cartReceivedText(cart)), nil
}

func (b *Bot) selectProduct(ctx context.Context, s *domain.Session, product *domain.Product) domain.OutboundMessage {
	s.SelectedItem = &domain.SelectedItem{
		ProductID:   product.ID,
		Code:        domain.NormalizeCode(product.Code),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
	s.Cart = nil
	s.Step = domain.StepAwaitingAddress
	b.saveSession(ctx, s)
	return reply(selectionText(s.SelectedItem))
}

// complete places the order and ends the conversation whether or not the store accepted it.
func (b *Bot) complete(ctx context.Context, s *domain.Session) domain.OutboundMessage {
	s.Step = domain.StepCompleted
	defer func() {
		if err := b.sessions.Delete(ctx, s.ParticipantID); err != nil {
			b.logger.Error("failed to delete session",
				slog.String("participant", s.ParticipantID),
				slog.String("error", err.Error()),
			)
		}
	}()

	input := orderInput(s)
	if len(input.Items) == 0 {
		b.logger.Warn("phone received without a selection", slog.String("participant", s.ParticipantID))
		return reply(helpText)
	}

	order, err := b.orders.PlaceOrder(ctx, input)
	if err != nil {
		b.orders.ReportFailure(ctx, input, err)
		return reply(unconfirmedText(s))
	}
	return reply(confirmationText(s, order))
}

func orderInput(s *domain.Session) *orderdto.PlaceOrderInput {
	input := &orderdto.PlaceOrderInput{
		MessengerID:     s.ParticipantID,
		DeliveryAddress: s.Address,
		CustomerPhone:   s.Phone,
	}
	switch {
	case s.Cart != nil:
		input.Currency = s.Cart.Currency
		input.Notes = s.Cart.Note
		input.Source = orderdto.SourceCart
		for _, item := range s.Cart.Items {
			input.Items = append(input.Items, orderdto.ItemInput{
				Code:      item.Code,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
	case s.SelectedItem != nil:
		input.Currency = domain.DefaultCurrency
		input.Source = orderdto.SourceBot
		item := orderdto.ItemInput{
			Code:      s.SelectedItem.Code,
			Name:      s.SelectedItem.Name,
			Quantity:  1,
			UnitPrice: s.SelectedItem.Price,
		}
		if s.SelectedItem.ProductID != "" {
			id := s.SelectedItem.ProductID
			item.ProductID = &id
		}
		input.Items = []orderdto.ItemInput{item}
	}
	return input
}

func (b *Bot) loadSession(ctx context.Context, participantID string) *domain.Session {
	s, err := b.sessions.Get(ctx, participantID)
	if err == nil {
		return s
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		b.logger.Error("failed to load session",
			slog.String("participant", participantID),
			slog.String("error", err.Error()),
		)
	}
	return domain.NewSession(participantID)
}

func (b *Bot) saveSession(ctx context.Context, s *domain.Session) {
	s.UpdatedAt = time.Now()
	if err := b.sessions.Save(ctx, s); err != nil {
		b.logger.Error("failed to save session",
			slog.String("participant", s.ParticipantID),
			slog.String("step", string(s.Step)),
			slog.String("error", err.Error()),
		)
	}
}

func containsKeyword(text string) bool {
	upper := strings.ToUpper(text)
	for _, kw := range menuKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

func reply(text string) domain.OutboundMessage {
	return domain.OutboundMessage{Text: text}
}
