package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpin "mekina/internal/adapters/in/http"
	"mekina/internal/adapters/out/events"
	"mekina/internal/adapters/out/gateway"
	"mekina/internal/adapters/out/memory"
	"mekina/internal/adapters/out/postgres"
	"mekina/internal/cache"
	"mekina/internal/core/application/usecases/commands"
	"mekina/internal/core/application/usecases/queries"
	"mekina/internal/core/domain/services"
	"mekina/internal/core/ports"
	"mekina/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dependencies are the outbound adapters the application runs on.
type Dependencies struct {
	UoWFactory  ports.UnitOfWorkFactory
	Gateway     ports.PaymentGateway
	Idempotency ports.IdempotencyStore
	Registry    *prometheus.Registry
}

type CompositionRoot struct {
	cfg     Config
	logger  *slog.Logger
	deps    Dependencies
	quoter  services.DeliveryQuoter
	matcher services.CourierMatcher
	closers []io.Closer
}

// NewCompositionRoot builds the adapters selected by cfg. Close releases them.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	root := &CompositionRoot{cfg: cfg, logger: logger}

	publisher, err := root.eventPublisher(registry)
	if err != nil {
		root.Close()
		return nil, err
	}

	uowFactory, err := root.unitOfWorkFactory(ctx, publisher)
	if err != nil {
		root.Close()
		return nil, err
	}

	idempotency, err := cache.NewStore(cache.Config{Provider: cfg.CacheProvider, RedisURL: cfg.RedisURL})
	if err != nil {
		root.Close()
		return nil, fmt.Errorf("failed to create idempotency store: %w", err)
	}
	root.closers = append(root.closers, idempotency)

	root.deps = Dependencies{
		UoWFactory:  uowFactory,
		Gateway:     gateway.NewClient(gateway.Config{BaseURL: cfg.PaymentGatewayURL, Secret: cfg.PaymentGatewaySecret}),
		Idempotency: idempotency,
		Registry:    registry,
	}
	root.quoter = services.NewDeliveryQuoter()
	root.matcher = services.NewCourierMatcher()
	return root, nil
}

// NewCompositionRootWith wires the application over ready-made adapters.
func NewCompositionRootWith(cfg Config, logger *slog.Logger, deps Dependencies) *CompositionRoot {
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	return &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		deps:    deps,
		quoter:  services.NewDeliveryQuoter(),
		matcher: services.NewCourierMatcher(),
	}
}

func (c *CompositionRoot) eventPublisher(registry prometheus.Registerer) (ports.EventPublisher, error) {
	var next ports.EventPublisher
	switch c.cfg.EventsProvider {
	case "redis":
		opts, err := redis.ParseURL(c.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		c.closers = append(c.closers, client)
		next = events.NewRedisPublisher(client, events.DefaultChannel)
	default:
		next = events.NewLogPublisher(c.logger)
	}
	return events.NewMetricsPublisher(next, registry)
}

func (c *CompositionRoot) unitOfWorkFactory(ctx context.Context, publisher ports.EventPublisher) (ports.UnitOfWorkFactory, error) {
	if c.cfg.Storage == "memory" {
		c.logger.WarnContext(ctx, "using in-memory storage, data is lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, c.logger), nil
	}

	db, err := gorm.Open(gormpostgres.Open(c.cfg.PostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	c.closers = append(c.closers, sqlDB)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return postgres.NewGormUnitOfWorkFactory(db, publisher, c.logger), nil
}

// Close releases connections in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errList...)
}

// NewHTTPServer builds the REST surface over every use case.
func (c *CompositionRoot) NewHTTPServer(ctx context.Context) (*echo.Echo, error) {
	return httpin.NewServer(ctx, c.HTTPHandlers(), httpin.Options{
		Logger:         c.logger,
		Registry:       c.deps.Registry,
		CallbackSecret: c.cfg.PaymentCallbackSecret,
	})
}

func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		PlaceOrder:            c.CreatePlaceOrderCommandHandler(),
		CancelOrder:           c.CreateCancelOrderCommandHandler(),
		AcceptOrder:           c.CreateAcceptOrderCommandHandler(),
		RejectOrder:           c.CreateRejectOrderCommandHandler(),
		ChangeOrderStatus:     c.CreateChangeOrderStatusCommandHandler(),
		UploadProofOfDelivery: c.CreateUploadProofOfDeliveryCommandHandler(),
		ResolvePayment:        c.CreateResolvePaymentCommandHandler(),
		SyncPaymentStatus:     c.CreateSyncPaymentStatusCommandHandler(),
		ApplyPaymentResult:    c.CreateApplyPaymentResultCommandHandler(),
		CreateCourier:         c.CreateCreateCourierCommandHandler(),
		UpdateCourierLocation: c.CreateUpdateCourierLocationCommandHandler(),
		CreateShop:            c.CreateCreateShopCommandHandler(),

		GetOrder:             queries.NewGetOrderQueryHandler(c.deps.UoWFactory),
		GetActiveOrders:      queries.NewGetActiveOrdersQueryHandler(c.deps.UoWFactory),
		GetAllCouriers:       queries.NewGetAllCouriersQueryHandler(c.deps.UoWFactory),
		GetCourierCandidates: queries.NewGetCourierCandidatesQueryHandler(c.deps.UoWFactory, c.matcher),
		GetDeliveryQuote:     queries.NewGetDeliveryQuoteQueryHandler(c.quoter),
	}
}

// NewJobManager registers the background jobs.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewPaymentReconciliationJob(
			c.CreateReconcilePaymentsCommandHandler(),
			c.cfg.PaymentReconcileSchedule,
			jobs.DefaultReconcileBatchSize,
			c.logger,
		),
	)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.uowFactory(), c.quoter)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uowFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.uowFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUploadProofOfDeliveryCommandHandler() commands.UploadProofOfDeliveryCommandHandler {
	return commands.NewUploadProofOfDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResolvePaymentCommandHandler() commands.ResolvePaymentCommandHandler {
	return commands.NewResolvePaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSyncPaymentStatusCommandHandler() commands.SyncPaymentStatusCommandHandler {
	return commands.NewSyncPaymentStatusCommandHandler(c.orderUoWFactory(), c.deps.Gateway, commands.PollPolicy{
		Interval: c.cfg.PaymentPollInterval,
		Attempts: c.cfg.PaymentPollAttempts,
	})
}

func (c *CompositionRoot) CreateApplyPaymentResultCommandHandler() commands.ApplyPaymentResultCommandHandler {
	return commands.NewApplyPaymentResultCommandHandler(c.orderUoWFactory(), c.deps.Idempotency)
}

func (c *CompositionRoot) CreateReconcilePaymentsCommandHandler() commands.ReconcilePaymentsCommandHandler {
	return commands.NewReconcilePaymentsCommandHandler(c.orderUoWFactory(), c.deps.Gateway)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCreateShopCommandHandler() commands.CreateShopCommandHandler {
	return commands.NewCreateShopCommandHandler(c.shopUoWFactory())
}

func (c *CompositionRoot) uowFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.deps.UoWFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.deps.UoWFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.deps.UoWFactory.Create()
	})
}

func (c *CompositionRoot) shopUoWFactory() commands.ShopUoWFactory {
	return FuncShopUoWFactory(func() commands.ShopUoW {
		return c.deps.UoWFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncShopUoWFactory func() commands.ShopUoW

func (f FuncShopUoWFactory) Create() commands.ShopUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
