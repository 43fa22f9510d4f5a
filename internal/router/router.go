package router

import (
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/config"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/handler"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/service"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the service layer shared by the HTTP handlers and the workers.
type Services struct {
	Auth       service.AuthService
	Inventario service.InventarioService
	PuntoVenta service.PuntoVentaService
	Venta      service.VentaService
	Cliente    service.ClienteService
	Egreso     service.EgresoService
	Gasto      service.GastoService
	Reporte    service.ReporteService
}

// NewServices wires repositories into services.
// Dependency graph: Service ← Repository ← DB, Service → Dispatcher/Hub ← Redis.
// A nil mailer (or one without SMTP host) disables report e-mails.
func NewServices(cfg *config.Config, db *gorm.DB, hub feed.Publisher, dispatcher *worker.Dispatcher, mailer *infra.Mailer) *Services {
	// ── Repositories ─────────────────────────────────────────────────────────
	sesionRepo := repository.NewSesionAnonimaRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	kitRepo := repository.NewKitRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	egresoRepo := repository.NewEgresoRepository(db)
	gastoRepo := repository.NewGastoDiarioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	ventaSvc := service.NewVentaService(ventaRepo, insumoRepo, kitRepo, comandaRepo, movimientoRepo, dispatcher, hub, cfg.NegocioNombre, cfg.PDFStoragePath)

	reporteDispatcher := dispatcher
	if !mailer.Configurado() {
		reporteDispatcher = nil
	}

	return &Services{
		Auth:       service.NewAuthService(sesionRepo, cfg),
		Inventario: service.NewInventarioService(insumoRepo, kitRepo, ventaRepo, movimientoRepo, hub),
		PuntoVenta: service.NewPuntoVentaService(ventaSvc, insumoRepo, kitRepo, clienteRepo, comandaRepo, hub, cfg.MesasIniciales),
		Venta:      ventaSvc,
		Cliente:    service.NewClienteService(clienteRepo, ventaRepo, hub),
		Egreso:     service.NewEgresoService(egresoRepo, hub),
		Gasto:      service.NewGastoService(gastoRepo, hub, cfg.ListaPagadores()),
		Reporte:    service.NewReporteService(ventaRepo, egresoRepo, gastoRepo, reporteDispatcher, cfg.NegocioNombre),
	}
}

// New returns a configured Gin engine serving svcs.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub handler.Suscriptor, svcs *Services, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	inventarioH := handler.NewInventarioHandler(svcs.Inventario)
	posH := handler.NewPuntoVentaHandler(svcs.PuntoVenta)
	ventasH := handler.NewVentasHandler(svcs.Venta)
	clientesH := handler.NewClientesHandler(svcs.Cliente)
	egresosH := handler.NewEgresosHandler(svcs.Egreso)
	gastosH := handler.NewGastosHandler(svcs.Gasto)
	reportesH := handler.NewReportesHandler(svcs.Reporte)
	streamH := handler.NewStreamHandler(hub, handler.SnapshotLoaders(
		svcs.Inventario, svcs.PuntoVenta, svcs.Cliente, svcs.Venta, svcs.Egreso, svcs.Gasto))

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	auth := r.Group("/v1/auth", middleware.AuthRateLimiter())
	{
		auth.POST("/anonimo", authH.Anonimo)
		auth.POST("/refresh", authH.Refresh)
	}

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	Register(v1, Handlers{
		Inventario: inventarioH,
		PuntoVenta: posH,
		Ventas:     ventasH,
		Clientes:   clientesH,
		Egresos:    egresosH,
		Gastos:     gastosH,
		Reportes:   reportesH,
		Stream:     streamH,
	})

	return r
}

// Handlers groups the protected route handlers.
type Handlers struct {
	Inventario *handler.InventarioHandler
	PuntoVenta *handler.PuntoVentaHandler
	Ventas     *handler.VentasHandler
	Clientes   *handler.ClientesHandler
	Egresos    *handler.EgresosHandler
	Gastos     *handler.GastosHandler
	Reportes   *handler.ReportesHandler
	Stream     *handler.StreamHandler
}

// Register mounts every owner-scoped route on g, which must already carry
// the authentication middleware.
func Register(g *gin.RouterGroup, h Handlers) {
	insumos := g.Group("/insumos")
	{
		insumos.GET("", h.Inventario.ListarInsumos)
		insumos.POST("", h.Inventario.CrearInsumo)
		insumos.GET("/alertas", h.Inventario.ObtenerAlertas)
		insumos.GET("/:id", h.Inventario.ObtenerInsumo)
		insumos.PUT("/:id", h.Inventario.ActualizarInsumo)
		insumos.DELETE("/:id", h.Inventario.EliminarInsumo)
		insumos.PATCH("/:id/stock", h.Inventario.AgregarStock)
	}

	kits := g.Group("/kits")
	{
		kits.GET("", h.Inventario.ListarKits)
		kits.POST("", h.Inventario.CrearKit)
		kits.DELETE("/:id", h.Inventario.EliminarKit)
		kits.PATCH("/:id/stock", h.Inventario.AgregarStockKit)
		kits.POST("/:id/recalcular", h.Inventario.RecalcularKit)
	}

	inv := g.Group("/inventario")
	{
		inv.GET("/ventas-esperadas", h.Inventario.VentasEsperadas)
		inv.GET("/mas-vendidos", h.Inventario.MasVendidos)
		inv.GET("/movimientos", h.Inventario.ListarMovimientos)
	}

	pv := g.Group("/pos")
	{
		pv.GET("", h.PuntoVenta.Estado)
		pv.GET("/mesas", h.PuntoVenta.Mesas)
		pv.POST("/mesas", h.PuntoVenta.AgregarMesa)
		pv.POST("/mesa", h.PuntoVenta.SeleccionarMesa)
		pv.PUT("/cliente", h.PuntoVenta.AsignarCliente)
		pv.GET("/catalogo", h.PuntoVenta.Catalogo)
		pv.POST("/carrito", h.PuntoVenta.Agregar)
		pv.POST("/carrito/:producto_id/incrementar", h.PuntoVenta.Incrementar)
		pv.POST("/carrito/:producto_id/decrementar", h.PuntoVenta.Decrementar)
		pv.DELETE("/carrito/:producto_id", h.PuntoVenta.Quitar)
		pv.POST("/checkout", h.PuntoVenta.Checkout)
	}

	g.GET("/ventas", h.Ventas.ListarVentas)
	g.GET("/ventas/:id", h.Ventas.ObtenerVenta)
	g.GET("/ventas/:id/ticket", h.Ventas.Ticket)

	clientes := g.Group("/clientes")
	{
		clientes.GET("", h.Clientes.Listar)
		clientes.POST("", h.Clientes.Crear)
		clientes.GET("/top", h.Clientes.Top)
		clientes.PUT("/:id", h.Clientes.Actualizar)
		clientes.DELETE("/:id", h.Clientes.Eliminar)
	}

	egresos := g.Group("/egresos")
	{
		egresos.GET("", h.Egresos.Listar)
		egresos.POST("", h.Egresos.Crear)
		egresos.PUT("/:id", h.Egresos.Actualizar)
		egresos.DELETE("/:id", h.Egresos.Eliminar)
	}

	gastos := g.Group("/gastos-diarios")
	{
		gastos.GET("", h.Gastos.Listar)
		gastos.POST("", h.Gastos.Crear)
		gastos.GET("/pagadores", h.Gastos.Pagadores)
		gastos.PUT("/:id", h.Gastos.Actualizar)
		gastos.DELETE("/:id", h.Gastos.Eliminar)
	}

	rep := g.Group("/reportes")
	{
		rep.GET("/total", h.Reportes.Total)
		rep.GET("/total.pdf", h.Reportes.PDF)
		rep.POST("/enviar", h.Reportes.Enviar)
	}

	if h.Stream != nil {
		g.GET("/stream", h.Stream.Stream)
	}
}
