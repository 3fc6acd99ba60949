package sources

import (
	"context"
	"fmt"
	"sort"

	common_models "go-assetreport/internal/common/models"
	"go-assetreport/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names per logical source
var sourceCollections = map[string]string{
	SourceAssets:      "assets",
	SourceInventory:   "inventory_items",
	SourceSubmissions: "submission_subjects",
}

// MongoSource serves subjects, form schemas and asset type configuration
// from the primary database.
type MongoSource struct {
	db *mongo.Database
}

func NewMongoSource(db *database.MongodbDB) *MongoSource {
	return &MongoSource{db: db.DB}
}

// fx constructors returning the collaborator interfaces

func NewRecordSource(src *MongoSource) RecordSource             { return src }
func NewFormSchemaProvider(src *MongoSource) FormSchemaProvider { return src }
func NewAssetTypeProvider(src *MongoSource) AssetTypeProvider   { return src }

func (s *MongoSource) Fetch(ctx context.Context, sourceID string, filters []common_models.Filter) ([]common_models.Subject, error) {
	collName, ok := sourceCollections[sourceID]
	if !ok {
		if sourceID == SourcePriceHistory {
			// price history rides on subjects; it is not an independent row source
			return nil, nil
		}
		return nil, fmt.Errorf("unknown source: %s", sourceID)
	}

	query, err := compileFilters(filters)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(10000)
	cursor, err := s.db.Collection(collName).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", sourceID, err)
	}
	defer cursor.Close(ctx)

	var subjects []common_models.Subject
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}

	for i := range subjects {
		subjects[i].Source = sourceID
		// submissions arrive in insertion order; the selectors expect newest first
		sort.Slice(subjects[i].Submissions, func(a, b int) bool {
			return subjects[i].Submissions[a].CreatedAt.After(subjects[i].Submissions[b].CreatedAt)
		})
	}

	return subjects, nil
}

func (s *MongoSource) GetFormSchema(ctx context.Context, formID string) (*FormSchema, error) {
	var schema FormSchema
	err := s.db.Collection("forms").FindOne(ctx, bson.M{"_id": formID}).Decode(&schema)
	if err != nil {
		return nil, fmt.Errorf("form schema %s: %w", formID, err)
	}
	return &schema, nil
}

func (s *MongoSource) GetAssetType(ctx context.Context, assetTypeID string) (*AssetType, error) {
	var assetType AssetType
	err := s.db.Collection("asset_types").FindOne(ctx, bson.M{"_id": assetTypeID}).Decode(&assetType)
	if err != nil {
		return nil, fmt.Errorf("asset type %s: %w", assetTypeID, err)
	}
	return &assetType, nil
}

func (s *MongoSource) ListAssetTypes(ctx context.Context) ([]AssetType, error) {
	cursor, err := s.db.Collection("asset_types").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var types []AssetType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (s *MongoSource) GetConversionFields(ctx context.Context, assetTypeID string) ([]ConversionField, error) {
	assetType, err := s.GetAssetType(ctx, assetTypeID)
	if err != nil {
		return nil, err
	}
	return assetType.ConversionFields, nil
}

func compileFilters(filters []common_models.Filter) (bson.M, error) {
	query := bson.M{}
	for _, f := range filters {
		switch f.Operator {
		case "", "eq":
			query[f.Field] = f.Value
		case "ne":
			query[f.Field] = bson.M{"$ne": f.Value}
		case "gt":
			query[f.Field] = bson.M{"$gt": f.Value}
		case "lt":
			query[f.Field] = bson.M{"$lt": f.Value}
		case "gte":
			query[f.Field] = bson.M{"$gte": f.Value}
		case "lte":
			query[f.Field] = bson.M{"$lte": f.Value}
		case "in":
			query[f.Field] = bson.M{"$in": f.Value}
		case "contains":
			strVal, ok := f.Value.(string)
			if !ok {
				return nil, fmt.Errorf("contains operator requires string value")
			}
			query[f.Field] = bson.M{"$regex": primitive.Regex{Pattern: strVal, Options: "i"}}
		default:
			return nil, fmt.Errorf("unsupported operator: %s", f.Operator)
		}
	}
	return query, nil
}
