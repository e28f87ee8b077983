package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/danilalessandra/Petstock-Backend/internal/application/alertas"
	"github.com/danilalessandra/Petstock-Backend/internal/application/auth"
	"github.com/danilalessandra/Petstock-Backend/internal/application/compras"
	"github.com/danilalessandra/Petstock-Backend/internal/application/inventario"
	"github.com/danilalessandra/Petstock-Backend/internal/application/reportes"
	"github.com/danilalessandra/Petstock-Backend/internal/application/usecase"
	"github.com/danilalessandra/Petstock-Backend/internal/application/ventas"
	infracache "github.com/danilalessandra/Petstock-Backend/internal/infrastructure/cache"
	infraemail "github.com/danilalessandra/Petstock-Backend/internal/infrastructure/email"
	infrapdf "github.com/danilalessandra/Petstock-Backend/internal/infrastructure/pdf"
	"github.com/danilalessandra/Petstock-Backend/internal/infrastructure/postgres"
	"github.com/danilalessandra/Petstock-Backend/internal/infrastructure/ws"
	httpRouter "github.com/danilalessandra/Petstock-Backend/internal/interfaces/http"
	"github.com/danilalessandra/Petstock-Backend/pkg/config"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	ordenRepo := postgres.NewOrdenCompraRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Difusor websocket y correo de alertas. SMTP sin host = solo websocket.
	hub := ws.NewHub(log)
	var emailSender alertas.EmailSender
	if cfg.SMTP.Host != "" {
		emailSender = infraemail.NewGomailSender(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST vacío, correos de alerta deshabilitados")
	}
	notifier := alertas.NewNotifier(usuarioRepo, emailSender, hub, log, cfg.Alertas.ColaTam)
	notifier.Start()
	defer notifier.Close()

	// Barrido diario de productos por vencer
	vencimientosUC := alertas.NewVencimientosUseCase(productoRepo, notifier, log, cfg.Alertas.UmbralVencimientoDias)
	go vencimientosUC.ProgramarDiario(ctx, cfg.Alertas.HoraChequeo)

	// Caché de estadísticas (opcional)
	var statsCache reportes.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedisCache(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, caché de estadísticas deshabilitado")
		} else {
			statsCache = redisCache
			defer redisCache.Close()
		}
	}

	pdfGenerator := infrapdf.NewMarotoOrdenCompraGenerator(cfg.App.Name)

	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		ExpMinutes:    cfg.JWT.Expiration,
		RefreshDias:   cfg.JWT.RefreshDias,
		Issuer:        cfg.JWT.Issuer,
	})
	productoUC := usecase.NewProductoUseCase(productoRepo, notifier)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo)
	ventaUC := ventas.NewUseCase(ventaRepo, txRunner, notifier, log)
	ordenUC := compras.NewUseCase(
		ordenRepo, proveedorRepo, productoRepo,
		txRunner, notifier, pdfGenerator, log,
		cfg.Alertas.UmbralVencimientoDias,
	)
	movimientoUC := inventario.NewMovimientoUseCase(movimientoRepo, productoRepo, notifier, log)
	sugerenciasUC := inventario.NewReplenishmentUseCase(reporteRepo, log)
	reporteUC := reportes.NewUseCase(reporteRepo, statsCache, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigin,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PetStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductoUC:     productoUC,
		ProveedorUC:    proveedorUC,
		UsuarioUC:      usuarioUC,
		VentaUC:        ventaUC,
		OrdenCompraUC:  ordenUC,
		MovimientoUC:   movimientoUC,
		SugerenciasUC:  sugerenciasUC,
		VencimientosUC: vencimientosUC,
		ReporteUC:      reporteUC,
		Hub:            hub,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
