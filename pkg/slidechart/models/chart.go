// Package models defines data structures for slide chart data.
package models

// ChartType is the overall chart kind of a chart element.
type ChartType string

const (
	// TypeBar is a clustered bar (column) chart.
	TypeBar ChartType = "bar"
	// TypeLine is a line chart.
	TypeLine ChartType = "line"
	// TypeArea is an area chart.
	TypeArea ChartType = "area"
	// TypePie is a single-series pie chart.
	TypePie ChartType = "pie"
	// TypeColumnLine is a dual-axis column and line combo chart.
	TypeColumnLine ChartType = "columnLine"
)

// DefaultChartType is used when input carries no usable type.
const DefaultChartType = TypeBar

// ChartTypes lists every supported chart type in display order.
var ChartTypes = []ChartType{TypeBar, TypeLine, TypeArea, TypePie, TypeColumnLine}

// Valid reports whether t is one of the supported chart types.
func (t ChartType) Valid() bool {
	switch t {
	case TypeBar, TypeLine, TypeArea, TypePie, TypeColumnLine:
		return true
	}
	return false
}

// ParseChartType returns the chart type named by s, or DefaultChartType.
func ParseChartType(s string) ChartType {
	if t := ChartType(s); t.Valid() {
		return t
	}
	return DefaultChartType
}

// Variant is the rendering treatment of a single series.
type Variant string

const (
	VariantBar  Variant = "bar"
	VariantLine Variant = "line"
	VariantArea Variant = "area"
	VariantPie  Variant = "pie"
)

// VariantOption is a user-selectable series variant.
type VariantOption struct {
	// Value is the variant stored on the series.
	Value Variant `json:"value"`
	// Label is the display name of the option.
	Label string `json:"label"`
}

// Series represents one named sequence of values, one per category.
type Series struct {
	// ID is an opaque identifier, stable across edits.
	ID string `json:"id"`
	// Label is the series display name.
	Label string `json:"label"`
	// Color is the series color in #RRGGBB form.
	Color string `json:"color"`
	// Variant is the rendering treatment of the series.
	Variant Variant `json:"variant"`
	// Data holds one value per category.
	Data []float64 `json:"data"`
	// SegmentColors holds one slice color per category (pie variant only).
	SegmentColors []string `json:"segmentColors,omitempty"`
}

// ChartRecord is the canonical chart data stored on a chart element.
type ChartRecord struct {
	// Type is the chart kind.
	Type ChartType `json:"type"`
	// Title is the chart title.
	Title string `json:"title"`
	// Labels holds one display label per category.
	Labels []string `json:"labels"`
	// Datasets holds the chart series.
	Datasets []Series `json:"datasets"`
}
