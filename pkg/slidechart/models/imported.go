package models

// Anchor is the position and size of a chart on its sheet, in pixels.
type Anchor struct {
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
	// W is the width in pixels.
	W int `json:"w,omitempty"`
	// H is the height in pixels.
	H int `json:"h,omitempty"`
}

// ChartSource is chart data found in a workbook before normalization.
type ChartSource struct {
	// Sheet is the sheet that owns the chart.
	Sheet string
	// Name is the drawing object name (e.g., "Chart 1"), or the table range
	// for charts recovered from a plain data block.
	Name string
	// Kinds lists the OOXML chart groups found in the plot area, in order.
	Kinds []string
	// Anchor is the chart position.
	Anchor Anchor
	// Data is the recovered chart data.
	Data PartialChart
}

// ImportedChart is a normalized chart recovered from a workbook.
type ImportedChart struct {
	// Sheet is the sheet that owns the chart.
	Sheet string `json:"sheet"`
	// Name is the drawing object name or table range.
	Name string `json:"name"`
	// Anchor is the chart position.
	Anchor Anchor `json:"anchor"`
	// Chart is the canonical chart data.
	Chart ChartRecord `json:"chart"`
}

// WorkbookCharts is the import result for one workbook.
type WorkbookCharts struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Charts lists imported charts in sheet order.
	Charts []ImportedChart `json:"charts"`
}
