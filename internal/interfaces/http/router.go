package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-teams-api/internal/application/auth"
	"github.com/jhoicas/Inventario-teams-api/internal/application/cart"
	"github.com/jhoicas/Inventario-teams-api/internal/application/history"
	"github.com/jhoicas/Inventario-teams-api/internal/application/reporting"
	"github.com/jhoicas/Inventario-teams-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/permission"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	TeamUC      *usecase.TeamUseCase
	UserUC      *usecase.UserUseCase
	StoreUC     *usecase.StoreUseCase
	ProductUC   *usecase.ProductUseCase
	OrderUC     *usecase.OrderUseCase
	CartUC      *cart.UseCase
	HistoryUC   *history.UseCase
	ReportingUC *reporting.UseCase
	Policy      permission.Policy
	JWTSecret   string
	Log         *logger.Logger
}

// NewFiberConfig configuración del servidor. Immutable: los IDs de c.Params y c.Query se guardan
// en los repositorios y no pueden apuntar al buffer que fasthttp reutiliza entre requests.
func NewFiberConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	can := func(resource, action string) fiber.Handler {
		return RequirePermission(deps.Policy, resource, action)
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/refresh", authHandler.Refresh)
	protected.Post("/auth/logout", authHandler.Logout)

	// Crear equipo no exige equipo previo: es el paso siguiente al registro.
	teamHandler := NewTeamHandler(deps.TeamUC, deps.AuthUC, log)
	protected.Post("/teams", can(permission.ResourceTeams, permission.ActionCreate), teamHandler.Create)

	// Desde aquí todo exige un equipo vigente en el token.
	inTeam := protected.Group("/", RequireTeam(deps.TeamUC))

	inTeam.Post("/auth/members", can(permission.ResourceUsers, permission.ActionCreate), authHandler.AddMember)

	teams := inTeam.Group("/teams")
	teams.Get("/:id", can(permission.ResourceTeams, permission.ActionRead), teamHandler.Get)
	teams.Put("/:id", can(permission.ResourceTeams, permission.ActionUpdate), teamHandler.Update)
	teams.Delete("/:id", can(permission.ResourceTeams, permission.ActionDelete), teamHandler.Delete)
	teams.Get("/:id/members", can(permission.ResourceUsers, permission.ActionRead), teamHandler.Members)

	userHandler := NewUserHandler(deps.UserUC, log)
	users := inTeam.Group("/users")
	users.Get("/", can(permission.ResourceUsers, permission.ActionRead), userHandler.List)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", can(permission.ResourceUsers, permission.ActionRead), userHandler.GetByID)
	users.Put("/:id", can(permission.ResourceUsers, permission.ActionUpdate), userHandler.Update)
	users.Delete("/:id", can(permission.ResourceUsers, permission.ActionDelete), userHandler.Delete)

	storeHandler := NewStoreHandler(deps.StoreUC, log)
	stores := inTeam.Group("/stores")
	stores.Post("/", can(permission.ResourceStores, permission.ActionCreate), storeHandler.Create)
	stores.Get("/", can(permission.ResourceStores, permission.ActionRead), storeHandler.List)
	stores.Get("/:storeId", can(permission.ResourceStores, permission.ActionRead), storeHandler.GetByID)
	stores.Put("/:storeId", can(permission.ResourceStores, permission.ActionUpdate), storeHandler.Update)
	stores.Delete("/:storeId", can(permission.ResourceStores, permission.ActionDelete), storeHandler.Delete)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, log)
	stores.Post("/:storeId/products", can(permission.ResourceProducts, permission.ActionCreate), productHandler.Create)
	stores.Get("/:storeId/products", can(permission.ResourceProducts, permission.ActionRead), productHandler.List)
	stores.Get("/:storeId/products/low-stock", can(permission.ResourceProducts, permission.ActionRead), productHandler.LowStock)
	products := inTeam.Group("/products")
	products.Get("/:id", can(permission.ResourceProducts, permission.ActionRead), productHandler.GetByID)
	products.Put("/:id", can(permission.ResourceProducts, permission.ActionUpdate), productHandler.Update)
	products.Delete("/:id", can(permission.ResourceProducts, permission.ActionDelete), productHandler.Delete)

	// Carts
	cartHandler := NewCartHandler(deps.CartUC, deps.StoreUC, log)
	stores.Post("/:storeId/carts", can(permission.ResourceCarts, permission.ActionCreate), cartHandler.Create)
	stores.Get("/:storeId/carts/mine", can(permission.ResourceCarts, permission.ActionRead), cartHandler.Mine)
	carts := inTeam.Group("/carts")
	carts.Get("/:id", can(permission.ResourceCarts, permission.ActionRead), cartHandler.GetByID)
	carts.Delete("/:id", can(permission.ResourceCarts, permission.ActionDelete), cartHandler.Delete)
	carts.Post("/:id/items", can(permission.ResourceCartItems, permission.ActionCreate), cartHandler.AddItems)
	carts.Put("/:id/items/:itemId", can(permission.ResourceCartItems, permission.ActionUpdate), cartHandler.UpdateItem)
	carts.Delete("/:id/items/:itemId", can(permission.ResourceCartItems, permission.ActionDelete), cartHandler.DeleteItem)
	carts.Post("/:id/checkout", can(permission.ResourceOrders, permission.ActionCreate), cartHandler.Checkout)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC, log)
	orders := inTeam.Group("/orders")
	orders.Post("/", can(permission.ResourceOrders, permission.ActionCreate), orderHandler.Create)
	orders.Get("/", can(permission.ResourceOrders, permission.ActionRead), orderHandler.List)
	orders.Get("/mine", can(permission.ResourceOrders, permission.ActionRead), orderHandler.Mine)
	orders.Get("/:id", can(permission.ResourceOrders, permission.ActionRead), orderHandler.GetByID)
	orders.Put("/:id", can(permission.ResourceOrders, permission.ActionUpdate), orderHandler.Update)
	orders.Delete("/:id", can(permission.ResourceOrders, permission.ActionDelete), orderHandler.Delete)

	// Histories
	historyHandler := NewHistoryHandler(deps.HistoryUC, log)
	stores.Post("/:storeId/histories", can(permission.ResourceHistories, permission.ActionCreate), historyHandler.Record)
	stores.Get("/:storeId/histories", can(permission.ResourceHistories, permission.ActionRead), historyHandler.List)
	stores.Get("/:storeId/histories/:productId", can(permission.ResourceHistories, permission.ActionRead), historyHandler.GetByProduct)

	// Reports y graphics
	reportingHandler := NewReportingHandler(deps.ReportingUC, log)
	stores.Get("/:storeId/reports", can(permission.ResourceReports, permission.ActionRead), reportingHandler.ListReports)
	stores.Post("/:storeId/reports", can(permission.ResourceReports, permission.ActionCreate), reportingHandler.CreateReport)
	stores.Get("/:storeId/reports/:id", can(permission.ResourceReports, permission.ActionRead), reportingHandler.GetReport)
	stores.Get("/:storeId/reports/:id/pdf", can(permission.ResourceReports, permission.ActionRead), reportingHandler.ExportReportPDF)
	stores.Put("/:storeId/reports/:id", can(permission.ResourceReports, permission.ActionUpdate), reportingHandler.UpdateReport)
	stores.Delete("/:storeId/reports/:id", can(permission.ResourceReports, permission.ActionDelete), reportingHandler.DeleteReport)

	stores.Get("/:storeId/graphics", can(permission.ResourceGraphics, permission.ActionRead), reportingHandler.ListGraphics)
	stores.Post("/:storeId/graphics", can(permission.ResourceGraphics, permission.ActionCreate), reportingHandler.CreateGraphic)
	stores.Get("/:storeId/graphics/:id", can(permission.ResourceGraphics, permission.ActionRead), reportingHandler.GetGraphic)
	stores.Put("/:storeId/graphics/:id", can(permission.ResourceGraphics, permission.ActionUpdate), reportingHandler.UpdateGraphic)
	stores.Delete("/:storeId/graphics/:id", can(permission.ResourceGraphics, permission.ActionDelete), reportingHandler.DeleteGraphic)
}
