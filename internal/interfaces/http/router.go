package http

import (
	"github.com/gofiber/fiber/v2"
)

// Roles conocidos por el subsistema. Los emite el proveedor de identidad.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// RouterDeps agrupa los handlers y la configuración que el router necesita.
type RouterDeps struct {
	JWTSecret    string
	Products     *ProductHandler
	Stock        *StockHandler
	Reservations *ReservationHandler
}

// SetupRoutes registra todas las rutas bajo /api. Toda ruta de negocio exige
// un JWT válido; las mutaciones además exigen rol.
func SetupRoutes(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	products := api.Group("/products")
	products.Post("/", RequireRole(RoleAdmin), deps.Products.Create)
	products.Get("/", deps.Products.List)
	products.Get("/low-stock", deps.Products.ListLowStock)
	products.Get("/:id", deps.Products.GetByID)
	products.Put("/:id", RequireRole(RoleAdmin), deps.Products.Update)
	products.Delete("/:id", RequireRole(RoleAdmin), deps.Products.Delete)

	products.Post("/:id/adjust-stock", RequireRole(RoleAdmin, RoleBodeguero), deps.Stock.AdjustStock)
	products.Get("/:id/stock-info", deps.Stock.GetStockInfo)
	products.Get("/:id/movements", deps.Stock.ListMovements)
	products.Get("/:id/adjustments", deps.Stock.ListAdjustments)
	products.Get("/:id/reservations", deps.Reservations.ListByProduct)

	inventory := api.Group("/inventory")
	inventory.Post("/movements", RequireRole(RoleAdmin, RoleBodeguero), deps.Stock.RegisterMovement)
	inventory.Get("/reconcile/:productId", RequireRole(RoleAdmin, RoleBodeguero), deps.Stock.Reconcile)

	reservations := api.Group("/reservations")
	reservations.Post("/", RequireRole(RoleAdmin, RoleVendedor), deps.Reservations.Create)
	reservations.Post("/:id/release", RequireRole(RoleAdmin, RoleVendedor), deps.Reservations.Release)
	reservations.Post("/:id/fulfil", RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor), deps.Reservations.Fulfil)
}
