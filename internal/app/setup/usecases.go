package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/broadcaster"
	"github.com/LavaJover/shvark-foodbot-service/internal/usecase"
	"github.com/LavaJover/shvark-foodbot-service/internal/usecase/conversation"
	"github.com/go-playground/validator/v10"
)

type UseCases struct {
	OrderUsecase     usecase.OrderUsecase
	ProductUsecase   usecase.ProductUsecase
	CustomerUsecase  usecase.CustomerUsecase
	AnalyticsUsecase usecase.AnalyticsUsecase
	Menu             *usecase.MenuCache
	ChangeFeed       *usecase.ChangeFeed
	Bot              *conversation.Bot
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	validate := validator.New()

	// a nil *DefaultKafkaPublisher must not become a non-nil interface
	var events usecase.OrderEventPublisher
	if deps.Publisher != nil {
		events = deps.Publisher
	}

	orderUsecase, err := usecase.NewDefaultOrderUsecase(
		deps.Repositories.OrderRepo,
		events,
		usecase.Topics{
			Orders:   deps.Config.KafkaService.OrderTopic,
			Failures: deps.Config.KafkaService.FailureTopic,
		},
		deps.Metrics,
		deps.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("order usecase: %w", err)
	}

	menu := usecase.NewMenuCache(deps.Repositories.ProductRepo, deps.Logger, deps.Metrics)
	changeFeed := usecase.NewChangeFeed(deps.ChangeSource, broadcaster.NewOrderChangeBroadcaster(), deps.Metrics, deps.Logger)

	return &UseCases{
		OrderUsecase:     orderUsecase,
		ProductUsecase:   usecase.NewDefaultProductUsecase(deps.Repositories.ProductRepo, menu, validate),
		CustomerUsecase:  usecase.NewDefaultCustomerUsecase(deps.Repositories.CustomerRepo),
		AnalyticsUsecase: usecase.NewDefaultAnalyticsUsecase(deps.Repositories.OrderRepo),
		Menu:             menu,
		ChangeFeed:       changeFeed,
		Bot:              conversation.NewBot(menu, deps.Sessions, orderUsecase, validate, deps.Logger),
	}, nil
}
