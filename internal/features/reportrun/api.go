package reportrun

import (
	"go-assetreport/internal/config"
	"go-assetreport/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		ReportController: reportController,
		Config:           config,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/run", api.ReportController.Run)
	group.Post("/export", api.ReportController.Export)
	group.Get("/fields", api.ReportController.Fields)
}
