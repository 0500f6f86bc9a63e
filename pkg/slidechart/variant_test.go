package slidechart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

func TestResolveVariant(t *testing.T) {
	tests := []struct {
		chartType models.ChartType
		index     int
		want      models.Variant
	}{
		{models.TypeBar, 0, models.VariantBar},
		{models.TypeBar, 4, models.VariantBar},
		{models.TypeLine, 0, models.VariantBar},
		{models.TypeLine, 1, models.VariantBar},
		{models.TypeArea, 2, models.VariantArea},
		{models.TypePie, 0, models.VariantPie},
		{models.TypeColumnLine, 0, models.VariantBar},
		{models.TypeColumnLine, 1, models.VariantLine},
		{models.TypeColumnLine, 2, models.VariantBar},
		{models.TypeColumnLine, 5, models.VariantBar},
		{models.ChartType("radar"), 0, models.VariantBar},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveVariant(tt.chartType, tt.index), "%s[%d]", tt.chartType, tt.index)
	}
}

func TestVariantOptions(t *testing.T) {
	assert.Equal(t, []models.VariantOption{{Value: models.VariantBar, Label: "Bar"}}, VariantOptions(models.TypeBar))
	assert.Equal(t, []models.VariantOption{{Value: models.VariantBar, Label: "Bar"}}, VariantOptions(models.TypeLine))
	assert.Equal(t, []models.VariantOption{{Value: models.VariantArea, Label: "Area"}}, VariantOptions(models.TypeArea))
	assert.Equal(t, []models.VariantOption{{Value: models.VariantPie, Label: "Slice"}}, VariantOptions(models.TypePie))
	assert.Equal(t, []models.VariantOption{
		{Value: models.VariantBar, Label: "Column"},
		{Value: models.VariantLine, Label: "Line"},
	}, VariantOptions(models.TypeColumnLine))
}

func TestAllowsVariant(t *testing.T) {
	assert.True(t, AllowsVariant(models.TypeColumnLine, models.VariantLine))
	assert.True(t, AllowsVariant(models.TypeColumnLine, models.VariantBar))
	assert.False(t, AllowsVariant(models.TypeColumnLine, models.VariantArea))
	assert.False(t, AllowsVariant(models.TypeBar, models.VariantLine))
	assert.False(t, AllowsVariant(models.TypeLine, models.VariantLine))
	assert.True(t, AllowsVariant(models.TypePie, models.VariantPie))
}
