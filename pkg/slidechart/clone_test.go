package slidechart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

func TestClone(t *testing.T) {
	src := models.ChartRecord{
		Type:   models.TypePie,
		Title:  "Share",
		Labels: []string{"a", "b"},
		Datasets: []models.Series{{
			ID: "p", Label: "S", Color: "#111111", Variant: models.VariantPie,
			Data: []float64{1, 2}, SegmentColors: []string{"#111111", "#222222"},
		}},
	}

	got := Clone(&src)
	require.NotNil(t, got)
	if diff := cmp.Diff(src, *got); diff != "" {
		t.Fatalf("Clone mismatch (-want +got):\n%s", diff)
	}

	got.Title = "changed"
	got.Labels[0] = "changed"
	got.Datasets[0].Data[0] = 99
	got.Datasets[0].SegmentColors[0] = "#FFFFFF"
	got.Datasets[0].Label = "changed"

	assert.Equal(t, "Share", src.Title)
	assert.Equal(t, "a", src.Labels[0])
	assert.Equal(t, 1.0, src.Datasets[0].Data[0])
	assert.Equal(t, "#111111", src.Datasets[0].SegmentColors[0])
	assert.Equal(t, "S", src.Datasets[0].Label)
}

func TestClone_Nil(t *testing.T) {
	assert.Nil(t, Clone(nil))
}

func TestClone_KeepsAbsentSegmentColors(t *testing.T) {
	src := barRecord([]float64{1})
	got := Clone(&src)
	assert.Nil(t, got.Datasets[0].SegmentColors)
}

func TestClone_EmptyAndNilSlices(t *testing.T) {
	src := barRecord([]float64{1, 2}, []float64{3, 4})
	src.Datasets[1].SegmentColors = []string{}

	got := Clone(&src)
	if diff := cmp.Diff(src, *got); diff != "" {
		t.Fatalf("Clone mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got.Datasets[0].SegmentColors)
	assert.NotNil(t, got.Datasets[1].SegmentColors)

	got.Datasets[0].Data[0] = 42
	assert.Equal(t, 1.0, src.Datasets[0].Data[0])
}
