package slidechart

import (
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

// Producer performs one semantic edit on draft in place. It reports false
// when the edit does not apply (a guard or an out-of-range index), in which
// case the draft must be left untouched.
type Producer func(draft *models.ChartRecord, palette Palette) bool

// Mutation is a named producer.
type Mutation struct {
	// Op is the mutation name, as used in edit scripts.
	Op string
	// Apply performs the edit.
	Apply Producer
}

// Mutation names.
const (
	OpSetTitle         = "set_title"
	OpSetType          = "set_type"
	OpRenameCategory   = "rename_category"
	OpRemoveCategory   = "remove_category"
	OpAddCategory      = "add_category"
	OpRenameSeries     = "rename_series"
	OpRecolorSeries    = "recolor_series"
	OpSetSeriesVariant = "set_series_variant"
	OpSetValue         = "set_value"
	OpRecolorSlice     = "recolor_slice"
	OpAddSeries        = "add_series"
	OpRemoveSeries     = "remove_series"
)

// CanAddSeries reports whether a series may be appended. Pie charts hold a
// single series.
func CanAddSeries(r *models.ChartRecord) bool {
	return r != nil && r.Type != models.TypePie
}

// CanRemoveSeries reports whether a series may be removed.
func CanRemoveSeries(r *models.ChartRecord) bool {
	return r != nil && len(r.Datasets) > 1
}

// CanRemoveCategory reports whether a category may be removed.
func CanRemoveCategory(r *models.ChartRecord) bool {
	return r != nil && len(r.Labels) > 1
}

// SetTitle replaces the chart title.
func SetTitle(title string) Mutation {
	return Mutation{Op: OpSetTitle, Apply: func(d *models.ChartRecord, _ Palette) bool {
		d.Title = title
		return true
	}}
}

// SetType switches the chart kind. Every series takes the positional variant
// of the new kind; pie slices are rebuilt by the sanitizer.
func SetType(t models.ChartType) Mutation {
	return Mutation{Op: OpSetType, Apply: func(d *models.ChartRecord, _ Palette) bool {
		if !t.Valid() {
			return false
		}
		if d.Type != t {
			for i := range d.Datasets {
				d.Datasets[i].Variant = ResolveVariant(t, i)
			}
		}
		d.Type = t
		return true
	}}
}

// RenameCategory replaces the label at index.
func RenameCategory(index int, label string) Mutation {
	return Mutation{Op: OpRenameCategory, Apply: func(d *models.ChartRecord, _ Palette) bool {
		if index < 0 || index >= len(d.Labels) {
			return false
		}
		d.Labels[index] = label
		return true
	}}
}

// RemoveCategory removes the category at index from the labels, from every
// series' data and, on pie charts, from the slice colors.
func RemoveCategory(index int) Mutation {
	return Mutation{Op: OpRemoveCategory, Apply: func(d *models.ChartRecord, _ Palette) bool {
		if !CanRemoveCategory(d) || index < 0 || index >= len(d.Labels) {
			return false
		}
		d.Labels = removeAt(d.Labels, index)
		for i := range d.Datasets {
			ds := &d.Datasets[i]
			if index < len(ds.Data) {
				ds.Data = removeAt(ds.Data, index)
			}
			if d.Type == models.TypePie && index < len(ds.SegmentColors) {
				ds.SegmentColors = removeAt(ds.SegmentColors, index)
			}
		}
		return true
	}}
}

// AddCategory appends a category with a zero value in every series.
func AddCategory() Mutation {
	return Mutation{Op: OpAddCategory, Apply: func(d *models.ChartRecord, p Palette) bool {
		d.Labels = append(d.Labels, categoryLabel(len(d.Labels)))
		for i := range d.Datasets {
			ds := &d.Datasets[i]
			ds.Data = append(ds.Data, 0)
			if d.Type == models.TypePie {
				for len(ds.SegmentColors) < len(d.Labels) {
					ds.SegmentColors = append(ds.SegmentColors, p.At(len(ds.SegmentColors)))
				}
			}
		}
		return true
	}}
}

// RenameSeries replaces the label of the series at index.
func RenameSeries(index int, label string) Mutation {
	return Mutation{Op: OpRenameSeries, Apply: func(d *models.ChartRecord, _ Palette) bool {
		if index < 0 || index >= len(d.Datasets) {
			return false
		}
		d.Datasets[index].Label = label
		return true
	}}
}

// RecolorSeries sets the color of the series at index. An invalid color
// keeps the current one.
func RecolorSeries(index int, color string) Mutation {
	return Mutation{Op: OpRecolorSeries, Apply: func(d *models.ChartRecord, p Palette) bool {
		if index < 0 || index >= len(d.Datasets) {
			return false
		}
		ds := &d.Datasets[index]
		ds.Color = NormalizeHex(color, NormalizeHex(ds.Color, p.At(index)))
		return true
	}}
}

// SetSeriesVariant changes the variant of the series at index. Only
// columnLine charts offer a choice.
func SetSeriesVariant(index int, v models.Variant) Mutation {
	return Mutation{Op: OpSetSeriesVariant, Apply: func(d *models.ChartRecord, _ Palette) bool {
		if index < 0 || index >= len(d.Datasets) || !AllowsVariant(d.Type, v) {
			return false
		}
		d.Datasets[index].Variant = v
		return true
	}}
}

// SetValue sets one data point, coercing raw to a number.
func SetValue(series, category int, raw any) Mutation {
	return Mutation{Op: OpSetValue, Apply: func(d *models.ChartRecord, _ Palette) bool {
		if series < 0 || series >= len(d.Datasets) {
			return false
		}
		ds := &d.Datasets[series]
		if category < 0 || category >= len(ds.Data) {
			return false
		}
		ds.Data[category] = CoerceNumber(raw)
		return true
	}}
}

// RecolorSlice sets the color of one pie slice.
func RecolorSlice(series, category int, color string) Mutation {
	return Mutation{Op: OpRecolorSlice, Apply: func(d *models.ChartRecord, p Palette) bool {
		if d.Type != models.TypePie || series < 0 || series >= len(d.Datasets) {
			return false
		}
		if category < 0 || category >= len(d.Labels) {
			return false
		}
		ds := &d.Datasets[series]
		colors := append([]string(nil), ds.SegmentColors...)
		for len(colors) < len(d.Labels) {
			colors = append(colors, p.At(len(colors)))
		}
		colors[category] = NormalizeHex(color, NormalizeHex(colors[category], p.At(category)))
		ds.SegmentColors = colors
		return true
	}}
}

// AddSeries appends a zero-filled series. Not available on pie charts.
func AddSeries() Mutation {
	return Mutation{Op: OpAddSeries, Apply: func(d *models.ChartRecord, p Palette) bool {
		if !CanAddSeries(d) {
			return false
		}
		d.Datasets = append(d.Datasets, defaultSeries(d.Type, len(d.Datasets), len(d.Labels), p))
		return true
	}}
}

// RemoveSeries removes the series at index, keeping at least one.
func RemoveSeries(index int) Mutation {
	return Mutation{Op: OpRemoveSeries, Apply: func(d *models.ChartRecord, _ Palette) bool {
		if !CanRemoveSeries(d) || index < 0 || index >= len(d.Datasets) {
			return false
		}
		d.Datasets = removeAt(d.Datasets, index)
		return true
	}}
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
