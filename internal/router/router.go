package router

import (
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/config"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/handler"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/middleware"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/service"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	carritoRepo := repository.NewCarritoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	citaRepo := repository.NewCitaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, inventarioRepo, rdb)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, productoRepo)
	carritoSvc := service.NewCarritoService(
		carritoRepo, productoRepo, inventarioRepo, ventaRepo, usuarioRepo,
		dispatcher, time.Duration(cfg.CheckoutTimeoutSeconds)*time.Second)
	ventaSvc := service.NewVentaService(ventaRepo)
	citaSvc := service.NewCitaService(citaRepo, dispatcher)
	reporteSvc := service.NewReporteService(reporteRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	citasH := handler.NewCitasHandler(citaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc, inventarioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/salud", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Catálogo — lectura pública (vitrina)
	r.GET("/productos", productosH.Listar)
	r.GET("/productos/:id", productosH.ObtenerPorID)
	r.GET("/categorias", categoriasH.Listar)

	// Carrito — keyed by usuario_id, público (la vitrina no exige sesión)
	carrito := r.Group("/carrito")
	{
		carrito.GET("/:usuario_id", carritoH.Obtener)
		carrito.POST("/:usuario_id", carritoH.AgregarItem)
		carrito.PUT("/:usuario_id/:producto_id", carritoH.ActualizarItem)
		carrito.DELETE("/:usuario_id/:producto_id", carritoH.EliminarItem)
		carrito.DELETE("/:usuario_id", carritoH.Vaciar)
		carrito.GET("/:usuario_id/resumen", carritoH.Resumen)
		carrito.POST("/:usuario_id/checkout", carritoH.Checkout)
	}

	// Citas — agendado público, gestión protegida
	r.POST("/citas", citasH.Crear)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	admin := r.Group("/", jwtMW)
	{
		staff := middleware.RequireRole("administrador", "recepcionista")
		soloAdmin := middleware.RequireRole("administrador")

		// Catálogo — escritura
		admin.POST("/productos", soloAdmin, productosH.Crear)
		admin.PUT("/productos/:id", soloAdmin, productosH.Actualizar)
		admin.DELETE("/productos/:id", soloAdmin, productosH.Desactivar)
		admin.PATCH("/productos/:id/reactivar", soloAdmin, productosH.Reactivar)

		admin.POST("/categorias", soloAdmin, categoriasH.Crear)
		admin.PUT("/categorias/:id", soloAdmin, categoriasH.Actualizar)
		admin.DELETE("/categorias/:id", soloAdmin, categoriasH.Desactivar)

		// Inventario
		inv := admin.Group("/inventario", staff)
		{
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/alertas", inventarioH.Alertas)
			inv.PATCH("/:producto_id/minimo", inventarioH.ActualizarMinimo)
		}

		// Citas — gestión
		admin.GET("/citas", staff, citasH.Listar)
		admin.GET("/citas/:id", staff, citasH.ObtenerPorID)
		admin.PATCH("/citas/:id/estado", staff, citasH.ActualizarEstado)
		admin.PUT("/citas/:id/reprogramar", staff, citasH.Reprogramar)

		// Ventas — solo lectura
		admin.GET("/ventas", staff, ventasH.Listar)
		admin.GET("/ventas/:id", staff, ventasH.ObtenerPorID)

		// Reportes
		rep := admin.Group("/reportes", staff)
		{
			rep.GET("/ventas", reportesH.VentasPorDia)
			rep.GET("/top-productos", reportesH.TopProductos)
			rep.GET("/stock-bajo", reportesH.StockBajo)
		}

		// Usuarios
		admin.POST("/usuarios", soloAdmin, authH.CrearUsuario)
		admin.GET("/usuarios", soloAdmin, authH.ListarUsuarios)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
