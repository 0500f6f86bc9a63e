package slidechart

import (
	"strings"

	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

// Sanitize re-enforces every invariant on a record that has been edited in
// place. Unlike Normalize it keeps choices the draft is allowed to carry: a
// series variant permitted by VariantOptions survives, and colors that are
// already valid hex are kept. The draft itself is never modified.
func Sanitize(draft models.ChartRecord, palette Palette) models.ChartRecord {
	p := palette.Resolved()
	chartType := draft.Type
	if !chartType.Valid() {
		chartType = models.DefaultChartType
	}

	labels := make([]string, len(draft.Labels))
	for i, label := range draft.Labels {
		labels[i] = positional(label, categoryLabel(i))
	}
	if len(labels) == 0 {
		labels = []string{categoryLabel(0)}
	}

	src := draft.Datasets
	if chartType == models.TypePie && len(src) > 1 {
		src = src[:1]
	}

	datasets := make([]models.Series, 0, max(len(src), 1))
	seen := make(map[string]bool, len(src))
	for i, ds := range src {
		variant := ds.Variant
		if !AllowsVariant(chartType, variant) {
			variant = ResolveVariant(chartType, i)
		}
		out := models.Series{
			ID:      uniqueID(ds.ID, seen),
			Label:   positional(ds.Label, seriesLabel(i)),
			Color:   NormalizeHex(ds.Color, p.At(i)),
			Variant: variant,
			Data:    make([]float64, len(labels)),
		}
		for j := 0; j < len(labels) && j < len(ds.Data); j++ {
			out.Data[j] = finite(ds.Data[j])
		}
		if variant == models.VariantPie {
			out.SegmentColors = fitColors(ds.SegmentColors, len(labels), p.At)
		}
		datasets = append(datasets, out)
	}
	if len(datasets) == 0 {
		datasets = append(datasets, defaultSeries(chartType, 0, len(labels), p))
		if datasets[0].Variant == models.VariantPie {
			datasets[0].SegmentColors = fitColors(nil, len(labels), p.At)
		}
	}

	return models.ChartRecord{
		Type:     chartType,
		Title:    draft.Title,
		Labels:   labels,
		Datasets: datasets,
	}
}

func positional(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
