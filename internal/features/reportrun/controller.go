package reportrun

import (
	"errors"
	"strings"

	"go-assetreport/internal/features/catalog"
	"go-assetreport/internal/features/export"
	"go-assetreport/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Executor ReportExecutor
	Union    catalog.FieldUnionResolver
	Exporter export.Exporter
}

func NewReportController(executor ReportExecutor, union catalog.FieldUnionResolver, exporter export.Exporter) *ReportController {
	return &ReportController{
		Executor: executor,
		Union:    union,
		Exporter: exporter,
	}
}

type RunRequest struct {
	Config ReportConfig `json:"config"`
}

type ExportRequest struct {
	Config ReportConfig `json:"config"`
	Format string       `json:"format"`
	Name   string       `json:"name"`
}

func fatalConfig(err error) bool {
	return errors.Is(err, ErrNoOrganization) ||
		errors.Is(err, ErrNoSources) ||
		errors.Is(err, ErrUnknownSource) ||
		errors.Is(err, ErrNoColumns)
}

func (ctrl *ReportController) Run(c *fiber.Ctx) error {
	var req RunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := ctrl.Executor.Run(c.Context(), middleware.OrgID(c), &req.Config)
	if err != nil {
		if fatalConfig(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, ErrStaleRun) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A newer run superseded this one",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Report run failed",
		})
	}

	return c.JSON(result)
}

func (ctrl *ReportController) Export(c *fiber.Ctx) error {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Format == "" {
		req.Format = export.FormatCSV
	}
	if req.Name == "" {
		req.Name = "report"
	}

	result, err := ctrl.Executor.Run(c.Context(), middleware.OrgID(c), &req.Config)
	if err != nil {
		if fatalConfig(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Report run failed",
		})
	}

	rows := make([]export.Row, 0, len(result.Rows))
	for _, r := range result.Rows {
		rows = append(rows, export.Row{Name: r.SubjectName, Fields: r.Fields})
	}

	data, filename, err := ctrl.Exporter.Export(rows, req.Config.Columns, req.Format, req.Name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	contentType := "text/csv"
	if req.Format == export.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Fields resolves the column union for a source and asset type selection,
// so a client can rebuild its column picker after any scope change.
// Selections arrive as comma-separated query params: ?sources=a,b&asset_types=x
func (ctrl *ReportController) Fields(c *fiber.Ctx) error {
	selectedSources := splitParam(c.Query("sources"))
	assetTypes := splitParam(c.Query("asset_types"))

	fields, err := ctrl.Union.Resolve(c.Context(), selectedSources, assetTypes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve fields",
		})
	}

	return c.JSON(fiber.Map{"fields": fields})
}

func splitParam(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
