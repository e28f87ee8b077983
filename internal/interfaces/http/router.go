package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/alertas"
	"github.com/danilalessandra/Petstock-Backend/internal/application/auth"
	"github.com/danilalessandra/Petstock-Backend/internal/application/compras"
	"github.com/danilalessandra/Petstock-Backend/internal/application/inventario"
	"github.com/danilalessandra/Petstock-Backend/internal/application/reportes"
	"github.com/danilalessandra/Petstock-Backend/internal/application/usecase"
	"github.com/danilalessandra/Petstock-Backend/internal/application/ventas"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductoUC     *usecase.ProductoUseCase
	ProveedorUC    *usecase.ProveedorUseCase
	UsuarioUC      *usecase.UsuarioUseCase
	VentaUC        *ventas.UseCase
	OrdenCompraUC  *compras.UseCase
	MovimientoUC   *inventario.MovimientoUseCase
	SugerenciasUC  *inventario.ReplenishmentUseCase
	VencimientosUC *alertas.VencimientosUseCase
	ReporteUC      *reportes.UseCase
	Hub            *ws.Hub
	JWTSecret      string
}

// Router registra las rutas de la API. Los grupos replican las reglas de rol
// del frontend: catálogo de solo lectura para empleados, administración
// completa para administradores.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	soloAdmin := RequireRole(entity.RolAdministrador)
	ambosRoles := RequireRole(entity.RolAdministrador, entity.RolEmpleado)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh-token", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	// Websocket de notificaciones (el token viaja en la URL de upgrade)
	app.Use("/ws", ws.UpgradeMiddleware())
	app.Get("/ws", deps.Hub.Handler())

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos: lectura para ambos roles, escritura solo administrador
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", ambosRoles, productoHandler.List)
	productos.Get("/:id", ambosRoles, productoHandler.GetByID)
	productos.Post("/", soloAdmin, productoHandler.Create)
	productos.Put("/:id", soloAdmin, productoHandler.Update)
	productos.Delete("/:id", soloAdmin, productoHandler.Delete)

	// Proveedores: lectura para ambos roles, escritura solo administrador
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Get("/", ambosRoles, proveedorHandler.List)
	proveedores.Get("/:id", ambosRoles, proveedorHandler.GetByID)
	proveedores.Post("/", soloAdmin, proveedorHandler.Create)
	proveedores.Put("/:id", soloAdmin, proveedorHandler.Update)
	proveedores.Delete("/:id", soloAdmin, proveedorHandler.Delete)

	// Ventas: operación diaria, ambos roles
	ventasGroup := protected.Group("/ventas", ambosRoles)
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventasGroup.Post("/", ventaHandler.Create)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Get("/:id", ventaHandler.GetByID)
	ventasGroup.Put("/:id", ventaHandler.Update)
	ventasGroup.Delete("/:id", ventaHandler.Delete)

	// Órdenes de compra: ambos roles
	ordenes := protected.Group("/ordenes-compra", ambosRoles)
	ordenHandler := NewOrdenCompraHandler(deps.OrdenCompraUC)
	ordenes.Post("/generar-desde-sugerencias", ordenHandler.GenerarDesdeSugerencias)
	ordenes.Post("/", ordenHandler.Create)
	ordenes.Get("/", ordenHandler.List)
	ordenes.Get("/:id", ordenHandler.GetByID)
	ordenes.Get("/:id/pdf", ordenHandler.PDF)
	ordenes.Put("/:id", ordenHandler.Update)
	ordenes.Post("/:id/confirmar-recepcion", ordenHandler.ConfirmarRecepcion)
	ordenes.Delete("/:id", ordenHandler.Delete)

	// Inventario: movimientos (bitácora), sugerencias y chequeo de vencimientos
	inventarioGroup := protected.Group("/inventario", ambosRoles)
	inventarioHandler := NewInventarioHandler(deps.MovimientoUC, deps.SugerenciasUC, deps.VencimientosUC)
	inventarioGroup.Post("/movimientos", inventarioHandler.CreateMovimiento)
	inventarioGroup.Get("/movimientos", inventarioHandler.ListMovimientos)
	inventarioGroup.Get("/movimientos/:id", inventarioHandler.GetMovimiento)
	inventarioGroup.Put("/movimientos/:id", inventarioHandler.UpdateMovimiento)
	inventarioGroup.Delete("/movimientos/:id", inventarioHandler.DeleteMovimiento)
	inventarioGroup.Get("/sugerencias-reabastecimiento", inventarioHandler.Sugerencias)
	inventarioGroup.Post("/chequeo-vencimientos", soloAdmin, inventarioHandler.ChequearVencimientos)

	// Usuarios: solo administradores
	usuarios := protected.Group("/usuarios", soloAdmin)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, deps.AuthUC)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)

	// Reportes: solo administradores; el dashboard lo ven ambos roles
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	dashboard := protected.Group("/dashboard", ambosRoles)
	dashboard.Get("/stats", reporteHandler.DashboardStats)

	reportesGroup := protected.Group("/reportes", soloAdmin)
	reportesGroup.Get("/ventas-por-dia", reporteHandler.VentasPorDia)
	reportesGroup.Get("/productos-mas-vendidos", reporteHandler.ProductosMasVendidos)
}
