package slidechart

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

var canonicalHex = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// assertInvariants checks every structural guarantee of a canonical record.
func assertInvariants(t *testing.T, r models.ChartRecord) {
	t.Helper()

	require.True(t, r.Type.Valid(), "type %q", r.Type)
	require.NotEmpty(t, r.Labels)
	require.NotEmpty(t, r.Datasets)
	if r.Type == models.TypePie {
		assert.Len(t, r.Datasets, 1, "pie charts hold one series")
	}

	for i, label := range r.Labels {
		assert.NotEmpty(t, label, "label %d", i)
		assert.Equal(t, strings.TrimSpace(label), label, "label %d", i)
	}

	ids := make(map[string]bool)
	for i, ds := range r.Datasets {
		assert.NotEmpty(t, ds.ID, "series %d id", i)
		assert.False(t, ids[ds.ID], "series %d id %q duplicated", i, ds.ID)
		ids[ds.ID] = true

		assert.NotEmpty(t, ds.Label, "series %d label", i)
		assert.Equal(t, strings.TrimSpace(ds.Label), ds.Label, "series %d label", i)
		assert.Regexp(t, canonicalHex, ds.Color, "series %d color", i)
		assert.True(t, AllowsVariant(r.Type, ds.Variant), "series %d variant %q on %q", i, ds.Variant, r.Type)
		assert.Len(t, ds.Data, len(r.Labels), "series %d data", i)

		if ds.Variant == models.VariantPie {
			require.Len(t, ds.SegmentColors, len(r.Labels), "series %d segment colors", i)
			for j, c := range ds.SegmentColors {
				assert.Regexp(t, canonicalHex, c, "series %d slice %d", i, j)
			}
		} else {
			assert.Nil(t, ds.SegmentColors, "series %d segment colors", i)
		}
	}
}

// barRecord builds a sanitized bar chart with the given data rows.
func barRecord(data ...[]float64) models.ChartRecord {
	r := models.ChartRecord{Type: models.TypeBar}
	if len(data) > 0 {
		for j := range data[0] {
			r.Labels = append(r.Labels, categoryLabel(j))
		}
	}
	for i, row := range data {
		r.Datasets = append(r.Datasets, models.Series{
			ID:      "s" + strconv.Itoa(i+1),
			Label:   seriesLabel(i),
			Color:   DefaultPalette.At(i),
			Variant: models.VariantBar,
			Data:    append([]float64(nil), row...),
		})
	}
	return r
}
