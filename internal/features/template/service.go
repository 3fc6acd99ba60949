package template

import (
	"context"
	"errors"
	"strings"
)

// Validation failures are rejected synchronously with no state mutation.
var (
	ErrEmptyName     = errors.New("template name must not be empty")
	ErrDuplicateName = errors.New("a template with this name already exists")
)

// TemplateService persists and restores named report configurations. Load
// replaces the live config wholesale, column orders included.
type TemplateService interface {
	Save(ctx context.Context, template *ReportTemplate) error
	Load(ctx context.Context, orgID, id string) (*ReportTemplate, error)
	List(ctx context.Context, orgID string) ([]ReportTemplate, error)
	Update(ctx context.Context, orgID, id string, template *ReportTemplate) error
	Delete(ctx context.Context, orgID, id string) error
}

type TemplateServiceImpl struct {
	Repo TemplateRepository
}

func NewTemplateService(repo TemplateRepository) TemplateService {
	return &TemplateServiceImpl{Repo: repo}
}

func (s *TemplateServiceImpl) Save(ctx context.Context, template *ReportTemplate) error {
	template.Name = strings.TrimSpace(template.Name)
	if template.Name == "" {
		return ErrEmptyName
	}

	exists, err := s.Repo.ExistsByName(ctx, template.OrgID, template.Name)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateName
	}

	return s.Repo.Create(ctx, template)
}

func (s *TemplateServiceImpl) Load(ctx context.Context, orgID, id string) (*ReportTemplate, error) {
	return s.Repo.Get(ctx, orgID, id)
}

func (s *TemplateServiceImpl) List(ctx context.Context, orgID string) ([]ReportTemplate, error) {
	return s.Repo.List(ctx, orgID)
}

func (s *TemplateServiceImpl) Update(ctx context.Context, orgID, id string, template *ReportTemplate) error {
	template.Name = strings.TrimSpace(template.Name)
	if template.Name == "" {
		return ErrEmptyName
	}
	return s.Repo.Update(ctx, orgID, id, template)
}

func (s *TemplateServiceImpl) Delete(ctx context.Context, orgID, id string) error {
	return s.Repo.Delete(ctx, orgID, id)
}
