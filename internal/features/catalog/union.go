package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go-assetreport/internal/sources"

	"go.uber.org/zap"
)

// FieldUnionResolver merges static catalog entries with dynamically
// discovered per-form fields and per-asset-type conversion fields into one
// deduplicated set for the current selection.
type FieldUnionResolver interface {
	Resolve(ctx context.Context, selectedSources []string, assetTypeIDs []string) ([]FieldDescriptor, error)
}

type FieldUnionResolverImpl struct {
	Catalog    *FieldCatalog
	AssetTypes sources.AssetTypeProvider
	Forms      sources.FormSchemaProvider
	Logger     *zap.Logger
}

func NewFieldUnionResolver(cat *FieldCatalog, assetTypes sources.AssetTypeProvider, forms sources.FormSchemaProvider, logger *zap.Logger) FieldUnionResolver {
	return &FieldUnionResolverImpl{
		Catalog:    cat,
		AssetTypes: assetTypes,
		Forms:      forms,
		Logger:     logger,
	}
}

// Resolve builds the union. assetTypeIDs empty means "all". One bad form or
// asset type never aborts the whole union; its contribution is skipped.
func (r *FieldUnionResolverImpl) Resolve(ctx context.Context, selectedSources []string, assetTypeIDs []string) ([]FieldDescriptor, error) {
	var union []FieldDescriptor
	seen := map[string]bool{}

	appendField := func(f FieldDescriptor) {
		if seen[f.ID] {
			return // first occurrence wins
		}
		seen[f.ID] = true
		union = append(union, f)
	}

	if len(selectedSources) > 0 {
		appendField(RecordSourceField())
	}

	for _, sourceID := range selectedSources {
		for _, f := range r.Catalog.StaticFields(sourceID) {
			appendField(f)
		}
	}

	assetTypes, err := r.assetTypesInScope(ctx, assetTypeIDs)
	if err != nil {
		// field discovery degrades to static columns only
		r.Logger.Warn("asset type discovery failed, continuing with static fields", zap.Error(err))
		assetTypes = nil
	}

	for _, assetType := range assetTypes {
		conversionFields, err := r.AssetTypes.GetConversionFields(ctx, assetType.ID)
		if err != nil {
			r.Logger.Warn("skipping conversion field contribution",
				zap.String("asset_type", assetType.ID),
				zap.Error(err))
			conversionFields = nil
		}
		for _, cf := range conversionFields {
			appendField(FieldDescriptor{
				ID:        fmt.Sprintf("conversion.%s.%s", assetType.ID, cf.FieldName),
				Label:     cf.Label,
				ValueType: mapFieldType(cf.Type),
				Origin:    OriginConversion,
				Sortable:  true,
			})
		}

		for _, formID := range assetType.LinkedFormIDs {
			schema, err := r.Forms.GetFormSchema(ctx, formID)
			if err != nil {
				r.Logger.Warn("skipping form contribution",
					zap.String("form_id", formID),
					zap.String("asset_type", assetType.ID),
					zap.Error(err))
				continue
			}
			for _, ff := range schema.Fields {
				appendField(FieldDescriptor{
					ID:         fmt.Sprintf("form_field.%s.%s", schema.ID, ff.ID),
					Label:      ff.Label,
					ValueType:  mapFieldType(ff.Type),
					Origin:     OriginForm,
					Sortable:   true,
					Filterable: true,
				})
			}
		}
	}

	sortForDisplay(union)
	return union, nil
}

func (r *FieldUnionResolverImpl) assetTypesInScope(ctx context.Context, assetTypeIDs []string) ([]sources.AssetType, error) {
	if len(assetTypeIDs) == 0 {
		return r.AssetTypes.ListAssetTypes(ctx)
	}

	var scoped []sources.AssetType
	for _, id := range assetTypeIDs {
		assetType, err := r.AssetTypes.GetAssetType(ctx, id)
		if err != nil {
			r.Logger.Warn("skipping asset type contribution", zap.String("asset_type", id), zap.Error(err))
			continue
		}
		scoped = append(scoped, *assetType)
	}
	return scoped, nil
}

// sortForDisplay assigns the deterministic initial order: the special
// fields first, then everything else alphabetically by label.
func sortForDisplay(fields []FieldDescriptor) {
	sort.SliceStable(fields, func(i, j int) bool {
		pi, pj := specialPriority(fields[i].ID), specialPriority(fields[j].ID)
		if pi != pj {
			return pi < pj
		}
		if pi < len(specialOrder) {
			return false // equal special priority means same field; keep stable
		}
		li := strings.ToLower(fields[i].Label)
		lj := strings.ToLower(fields[j].Label)
		if li != lj {
			return li < lj
		}
		return fields[i].ID < fields[j].ID
	})
}

var specialOrder = []string{FieldAssetType, FieldLastUpdated, FieldLastPeriodTotal}

func specialPriority(id string) int {
	for i, special := range specialOrder {
		if id == special {
			return i
		}
	}
	return len(specialOrder)
}

func mapFieldType(raw string) ValueType {
	switch raw {
	case "number", "currency", "decimal", "integer":
		return ValueTypeNumber
	case "date", "datetime":
		return ValueTypeDate
	case "boolean", "checkbox":
		return ValueTypeBoolean
	default:
		return ValueTypeText
	}
}
