package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-teams-api/docs"
	"github.com/jhoicas/Inventario-teams-api/internal/application/auth"
	"github.com/jhoicas/Inventario-teams-api/internal/application/cart"
	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/internal/application/reporting"
	"github.com/jhoicas/Inventario-teams-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/permission"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Inventario-teams-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Inventario-teams-api/internal/infrastructure/redis"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Inventario-teams-api/internal/interfaces/http"
	"github.com/jhoicas/Inventario-teams-api/pkg/config"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// txRunner une los runners transaccionales que piden los casos de uso.
type txRunner interface {
	cart.TxRunner
	history.TxRunner
	usecase.TeamTxRunner
}

// repositories conjunto de repositorios de un driver de almacenamiento.
type repositories struct {
	tx        txRunner
	teams     repository.TeamRepository
	users     repository.UserRepository
	stores    repository.StoreRepository
	products  repository.ProductRepository
	carts     repository.CartRepository
	cartItems repository.CartItemRepository
	orders    repository.OrderRepository
	histories repository.HistoryRepository
	reports   repository.ReportRepository
	graphics  repository.GraphicRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	loc, err := cfg.History.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del historial")
	}

	ctx := context.Background()
	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer repos.close()

	denylist, closeDenylist, err := openDenylist(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer closeDenylist()

	authUC := auth.NewUseCase(
		repos.users,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		denylist,
	)
	historyUC := history.NewUseCase(repos.tx, repos.histories, repos.products, repos.stores, repos.users, loc, log)
	teamUC := usecase.NewTeamUseCase(repos.tx, repos.teams, repos.users)
	storeUC := usecase.NewStoreUseCase(repos.stores)
	productUC := usecase.NewProductUseCase(repos.products, repos.stores, historyUC)
	orderUC := usecase.NewOrderUseCase(repos.orders, repos.stores)
	userUC := usecase.NewUserUseCase(repos.users)
	cartUC := cart.NewUseCase(repos.tx, repos.carts, repos.cartItems, repos.products, repos.stores)
	reportingUC := reporting.NewUseCase(
		repos.reports, repos.graphics, repos.orders, repos.histories, repos.users, repos.stores,
		infrapdf.NewMarotoPDFGenerator(), log,
	)

	app := fiber.New(httpRouter.NewFiberConfig(cfg.App.Name))
	app.Use(recover.New())

	// scheduler.Recorder nil si las métricas están deshabilitadas (no un *Metrics nil)
	var recorder scheduler.Recorder
	if cfg.Metrics.Enabled {
		m := metrics.New()
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())
		recorder = m
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Inventario Teams API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TeamUC:      teamUC,
		UserUC:      userUC,
		StoreUC:     storeUC,
		ProductUC:   productUC,
		OrderUC:     orderUC,
		CartUC:      cartUC,
		HistoryUC:   historyUC,
		ReportingUC: reportingUC,
		Policy:      permission.DefaultPolicy(),
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.SnapshotCron != "" {
		sched = scheduler.New(loc, log, recorder)
		if err := sched.ScheduleSnapshot(cfg.Scheduler.SnapshotCron, historyUC); err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Scheduler.SnapshotCron).Msg("programar snapshot del historial")
		}
		sched.Start()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if sched != nil {
		sched.Stop(shutdownCtx)
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage construye los repositorios según STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		st := memory.NewStore()
		return &repositories{
			tx:        st,
			teams:     st.Teams(),
			users:     st.Users(),
			stores:    st.Stores(),
			products:  st.Products(),
			carts:     st.Carts(),
			cartItems: st.CartItems(),
			orders:    st.Orders(),
			histories: st.Histories(),
			reports:   st.Reports(),
			graphics:  st.Graphics(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB, log); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repositories{
		tx:        postgres.NewTxRunner(pool),
		teams:     postgres.NewTeamRepository(pool),
		users:     postgres.NewUserRepository(pool),
		stores:    postgres.NewStoreRepository(pool),
		products:  postgres.NewProductRepository(pool),
		carts:     postgres.NewCartRepository(pool),
		cartItems: postgres.NewCartItemRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		histories: postgres.NewHistoryRepository(pool),
		reports:   postgres.NewReportRepository(pool),
		graphics:  postgres.NewGraphicRepository(pool),
		close:     pool.Close,
	}, nil
}

// openDenylist usa Redis si REDIS_ADDR está definido; si no, una denylist en memoria de este proceso.
func openDenylist(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (auth.TokenDenylist, func(), error) {
	if cfg.Addr == "" {
		log.Warn().Msg("REDIS_ADDR vacío: la revocación de tokens solo aplica a esta instancia")
		return memory.NewDenylist(), func() {}, nil
	}
	client, err := infraredis.NewClient(ctx, infraredis.Config{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		return nil, nil, err
	}
	return infraredis.NewDenylist(client), func() { _ = client.Close() }, nil
}
