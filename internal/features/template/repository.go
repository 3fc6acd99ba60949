package template

import (
	"context"
	"time"

	"go-assetreport/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *ReportTemplate) error
	Get(ctx context.Context, orgID, id string) (*ReportTemplate, error)
	List(ctx context.Context, orgID string) ([]ReportTemplate, error)
	Update(ctx context.Context, orgID, id string, template *ReportTemplate) error
	Delete(ctx context.Context, orgID, id string) error
	ExistsByName(ctx context.Context, orgID, name string) (bool, error)
}

type TemplateRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTemplateRepository(db *database.MongodbDB) TemplateRepository {
	return &TemplateRepositoryImpl{
		Collection: db.DB.Collection("report_templates"),
	}
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, template *ReportTemplate) error {
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, template)
	return err
}

func (r *TemplateRepositoryImpl) Get(ctx context.Context, orgID, id string) (*ReportTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var template ReportTemplate
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid, "org_id": orgID}).Decode(&template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) List(ctx context.Context, orgID string) ([]ReportTemplate, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"org_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []ReportTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, orgID, id string, template *ReportTemplate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	template.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        template.Name,
			"description": template.Description,
			"config":      template.Config,
			"updated_at":  template.UpdatedAt,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid, "org_id": orgID}, update)
	return err
}

// Delete is idempotent: deleting a missing template is not an error.
func (r *TemplateRepositoryImpl) Delete(ctx context.Context, orgID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid, "org_id": orgID})
	return err
}

func (r *TemplateRepositoryImpl) ExistsByName(ctx context.Context, orgID, name string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"org_id": orgID, "name": name})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
