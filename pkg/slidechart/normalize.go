package slidechart

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

// newSeriesID is replaced in tests that need deterministic ids.
var newSeriesID = func() string {
	return "series-" + uuid.NewString()
}

// NewSeriesID returns a fresh series identifier.
func NewSeriesID() string {
	return newSeriesID()
}

// Normalize builds a canonical chart record from arbitrary, possibly partial
// input. It never fails: missing structure is filled with positional
// defaults, non-numeric values become 0 and invalid colors fall back to the
// palette. A nil input yields a one-category, one-series bar chart.
func Normalize(input *models.PartialChart, palette Palette) models.ChartRecord {
	p := palette.Resolved()
	if input == nil {
		return models.ChartRecord{
			Type:     models.DefaultChartType,
			Labels:   []string{categoryLabel(0)},
			Datasets: []models.Series{defaultSeries(models.DefaultChartType, 0, 1, p)},
		}
	}

	chartType := chartTypeOf(input.Type)
	title, _ := stringify(input.Title)
	labels := normalizeLabels(input.Labels)

	datasets := make([]models.Series, 0, len(input.Datasets))
	seen := make(map[string]bool, len(input.Datasets))
	for i, src := range input.Datasets {
		variant := ResolveVariant(chartType, i)
		ds := models.Series{
			ID:      uniqueID(src.ID, seen),
			Label:   trimmedOr(src.Label, seriesLabel(i)),
			Color:   colorOf(src.Color, p.At(i)),
			Variant: variant,
			Data:    coerceData(src.Data, len(labels)),
		}
		if variant == models.VariantPie {
			ds.SegmentColors = make([]string, len(labels))
			for j := range labels {
				var c any
				if j < len(src.SegmentColors) {
					c = src.SegmentColors[j]
				}
				ds.SegmentColors[j] = colorOf(c, p.At(i+j))
			}
		}
		datasets = append(datasets, ds)
	}
	if len(datasets) == 0 {
		datasets = append(datasets, defaultSeries(chartType, 0, len(labels), p))
	}

	// A pie chart shows exactly one series.
	if chartType == models.TypePie && len(datasets) > 1 {
		datasets = datasets[:1]
	}

	for i := range datasets {
		ds := &datasets[i]
		ds.Variant = ResolveVariant(chartType, i)
		ds.Data = fitData(ds.Data, len(labels))
		if ds.Variant == models.VariantPie {
			offset := i
			ds.SegmentColors = fitColors(ds.SegmentColors, len(labels), func(j int) string {
				return p.At(offset + j)
			})
		} else {
			ds.SegmentColors = nil
		}
	}

	return models.ChartRecord{
		Type:     chartType,
		Title:    title,
		Labels:   labels,
		Datasets: datasets,
	}
}

func chartTypeOf(v any) models.ChartType {
	s, _ := v.(string)
	return models.ParseChartType(s)
}

func normalizeLabels(src []any) []string {
	if len(src) == 0 {
		return []string{categoryLabel(0)}
	}
	labels := make([]string, len(src))
	for i, v := range src {
		labels[i] = trimmedOr(v, categoryLabel(i))
	}
	return labels
}

func categoryLabel(i int) string {
	return "Category " + strconv.Itoa(i+1)
}

func seriesLabel(i int) string {
	return "Series " + strconv.Itoa(i+1)
}

// colorOf canonicalizes a loosely typed color; non-strings yield fallback.
func colorOf(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return NormalizeHex(s, fallback)
}

func uniqueID(v any, seen map[string]bool) string {
	id := trimmedOr(v, "")
	if id == "" || seen[id] {
		id = newSeriesID()
	}
	seen[id] = true
	return id
}

func defaultSeries(t models.ChartType, index, categories int, p Palette) models.Series {
	return models.Series{
		ID:      newSeriesID(),
		Label:   seriesLabel(index),
		Color:   p.At(index),
		Variant: ResolveVariant(t, index),
		Data:    make([]float64, categories),
	}
}

func coerceData(src []any, n int) []float64 {
	data := make([]float64, n)
	for i := 0; i < n && i < len(src); i++ {
		data[i] = CoerceNumber(src[i])
	}
	return data
}

// fitData returns a copy of data padded with zeros or truncated to n.
func fitData(data []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, data)
	return out
}

// fitColors returns a copy of colors resized to n, filling gaps from fallback.
func fitColors(colors []string, n int, fallback func(int) string) []string {
	out := make([]string, n)
	for j := range out {
		if j < len(colors) {
			out[j] = NormalizeHex(colors[j], fallback(j))
		} else {
			out[j] = fallback(j)
		}
	}
	return out
}
