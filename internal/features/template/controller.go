package template

import (
	"errors"

	"go-assetreport/internal/features/reportrun"
	"go-assetreport/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

type TemplateController struct {
	TemplateService TemplateService
	NameChecker     *NameChecker
}

func NewTemplateController(templateService TemplateService, nameChecker *NameChecker) *TemplateController {
	return &TemplateController{
		TemplateService: templateService,
		NameChecker:     nameChecker,
	}
}

type SaveTemplateRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Config      reportrun.ReportConfig `json:"config"`
}

func (ctrl *TemplateController) Create(c *fiber.Ctx) error {
	var req SaveTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	tmpl := &ReportTemplate{
		OrgID:       middleware.OrgID(c),
		Name:        req.Name,
		Description: req.Description,
		Config:      req.Config,
	}

	if err := ctrl.TemplateService.Save(c.Context(), tmpl); err != nil {
		if errors.Is(err, ErrEmptyName) || errors.Is(err, ErrDuplicateName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save template",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

func (ctrl *TemplateController) List(c *fiber.Ctx) error {
	templates, err := ctrl.TemplateService.List(c.Context(), middleware.OrgID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list templates",
		})
	}
	if templates == nil {
		templates = []ReportTemplate{}
	}
	return c.JSON(templates)
}

func (ctrl *TemplateController) Get(c *fiber.Ctx) error {
	tmpl, err := ctrl.TemplateService.Load(c.Context(), middleware.OrgID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Template not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load template",
		})
	}
	return c.JSON(tmpl)
}

func (ctrl *TemplateController) Update(c *fiber.Ctx) error {
	var req SaveTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	tmpl := &ReportTemplate{
		OrgID:       middleware.OrgID(c),
		Name:        req.Name,
		Description: req.Description,
		Config:      req.Config,
	}

	if err := ctrl.TemplateService.Update(c.Context(), tmpl.OrgID, c.Params("id"), tmpl); err != nil {
		if errors.Is(err, ErrEmptyName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update template",
		})
	}
	return c.JSON(fiber.Map{"message": "Template updated"})
}

// Delete removes a template. Deleting a template never touches report rows.
func (ctrl *TemplateController) Delete(c *fiber.Ctx) error {
	if err := ctrl.TemplateService.Delete(c.Context(), middleware.OrgID(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete template",
		})
	}
	return c.JSON(fiber.Map{"message": "Template deleted"})
}

// CheckName reports name availability for the save dialog.
func (ctrl *TemplateController) CheckName(c *fiber.Ctx) error {
	state, err := ctrl.NameChecker.Check(c.Context(), middleware.OrgID(c), c.Query("name"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check name",
		})
	}
	return c.JSON(fiber.Map{"state": state})
}
