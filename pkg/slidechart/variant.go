package slidechart

import "github.com/ukaji3/slidechart-go/pkg/slidechart/models"

// ResolveVariant returns the variant the series at seriesIndex must have on a
// chart of type t. Only columnLine differentiates by position.
func ResolveVariant(t models.ChartType, seriesIndex int) models.Variant {
	switch t {
	case models.TypeArea:
		return models.VariantArea
	case models.TypePie:
		return models.VariantPie
	case models.TypeColumnLine:
		if seriesIndex == 1 {
			return models.VariantLine
		}
		return models.VariantBar
	default:
		return models.VariantBar
	}
}

// VariantOptions returns the user-selectable series variants for t.
func VariantOptions(t models.ChartType) []models.VariantOption {
	switch t {
	case models.TypeArea:
		return []models.VariantOption{{Value: models.VariantArea, Label: "Area"}}
	case models.TypePie:
		return []models.VariantOption{{Value: models.VariantPie, Label: "Slice"}}
	case models.TypeColumnLine:
		return []models.VariantOption{
			{Value: models.VariantBar, Label: "Column"},
			{Value: models.VariantLine, Label: "Line"},
		}
	default:
		return []models.VariantOption{{Value: models.VariantBar, Label: "Bar"}}
	}
}

// AllowsVariant reports whether v is one of the selectable variants for t.
func AllowsVariant(t models.ChartType, v models.Variant) bool {
	for _, opt := range VariantOptions(t) {
		if opt.Value == v {
			return true
		}
	}
	return false
}
