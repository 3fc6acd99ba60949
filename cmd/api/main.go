package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-assetreport/internal/common/api"
	"go-assetreport/internal/config"
	"go-assetreport/internal/database"
	"go-assetreport/internal/features/catalog"
	"go-assetreport/internal/features/enrich"
	"go-assetreport/internal/features/export"
	"go-assetreport/internal/features/pricing"
	"go-assetreport/internal/features/reportrun"
	"go-assetreport/internal/features/selection"
	"go-assetreport/internal/features/template"
	"go-assetreport/internal/logger"
	"go-assetreport/internal/middleware"
	"go-assetreport/internal/sources"
	"go-assetreport/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database & Logger
			database.NewDatabase,
			logger.NewLogger,

			// Record sources
			sources.NewMongoSource,
			sources.NewRecordSource,
			sources.NewFormSchemaProvider,
			sources.NewAssetTypeProvider,
			sources.NewPriceHistorySource,

			// Field catalog & union
			catalog.NewFieldCatalog,
			catalog.NewFieldUnionResolver,

			// Selection & enrichment pipeline
			selection.PolicyFromConfig,
			selection.NewSubmissionSelector,
			selection.NewLastPeriodTotalResolver,
			pricing.NewPriceResolver,
			enrich.NewRecordEnricher,

			// Executor & export
			reportrun.NewReportExecutor,
			export.NewExporter,

			// Templates
			template.NewTemplateRepository,
			template.NewTemplateService,
			template.NewNameChecker,

			// Initialize Controller
			reportrun.NewReportController,
			template.NewTemplateController,

			// Initialize API Routes
			AsRoute(reportrun.NewReportApi),
			AsRoute(template.NewTemplateApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
		),
	)

	app.Run()
}
