package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyRecord indicates a record without categories or series.
var ErrEmptyRecord = errors.New("chart record has no categories or series")

// Default workbook layout.
const (
	DefaultSheetName  = "ChartData"
	DefaultAnchorCell = "E2"
	DefaultWidth      = 480
	DefaultHeight     = 290
)

// XLSXOptions configures workbook export.
type XLSXOptions struct {
	// SheetName is the sheet holding the data table and the chart.
	SheetName string
	// AnchorCell is the top-left cell of the chart.
	AnchorCell string
	// Width and Height are the chart size in pixels.
	Width  uint
	Height uint
}

// DefaultXLSXOptions returns default export options.
func DefaultXLSXOptions() XLSXOptions {
	return XLSXOptions{
		SheetName:  DefaultSheetName,
		AnchorCell: DefaultAnchorCell,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
	}
}

func (o XLSXOptions) withDefaults() XLSXOptions {
	d := DefaultXLSXOptions()
	if o.SheetName == "" {
		o.SheetName = d.SheetName
	}
	if o.AnchorCell == "" {
		o.AnchorCell = d.AnchorCell
	}
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	return o
}

// NewWorkbook builds a workbook holding the record's data table and a native
// chart drawn from it. The top-left cell holds the title, row 1 the series
// labels and column A the category labels. Pie slice colors are applied as
// fills of the category cells. The caller must close the returned file.
func NewWorkbook(record models.ChartRecord, opts XLSXOptions) (*excelize.File, error) {
	if len(record.Labels) == 0 || len(record.Datasets) == 0 {
		return nil, ErrEmptyRecord
	}
	opts = opts.withDefaults()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", opts.SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeTable(f, opts.SheetName, record); err != nil {
		f.Close()
		return nil, err
	}

	primary, combo := buildCharts(record, opts)
	if err := f.AddChart(opts.SheetName, opts.AnchorCell, primary, combo...); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add chart: %w", err)
	}
	return f, nil
}

// WriteXLSX writes the record as a workbook to w.
func WriteXLSX(w io.Writer, record models.ChartRecord, opts XLSXOptions) error {
	f, err := NewWorkbook(record, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveXLSX writes the record as a workbook to path.
func SaveXLSX(path string, record models.ChartRecord, opts XLSXOptions) error {
	f, err := NewWorkbook(record, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeTable(f *excelize.File, sheet string, record models.ChartRecord) error {
	header := make([]interface{}, 0, len(record.Datasets)+1)
	header = append(header, record.Title)
	for _, ds := range record.Datasets {
		header = append(header, ds.Label)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, label := range record.Labels {
		row := make([]interface{}, 0, len(record.Datasets)+1)
		row = append(row, label)
		for _, ds := range record.Datasets {
			var v float64
			if i < len(ds.Data) {
				v = ds.Data[i]
			}
			row = append(row, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if record.Type == models.TypePie {
		if err := writeSliceFills(f, sheet, record.Datasets[0].SegmentColors); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "A", 16)
}

func writeSliceFills(f *excelize.File, sheet string, colors []string) error {
	styles := make(map[string]int)
	for i, color := range colors {
		if color == "" {
			continue
		}
		style, ok := styles[color]
		if !ok {
			var err error
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			})
			if err != nil {
				return fmt.Errorf("failed to create fill %s: %w", color, err)
			}
			styles[color] = style
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// chartTypes maps series variants to excelize chart types.
var chartTypes = map[models.Variant]excelize.ChartType{
	models.VariantBar:  excelize.Col,
	models.VariantLine: excelize.Line,
	models.VariantArea: excelize.Area,
	models.VariantPie:  excelize.Pie,
}

// plotVariant is the plot group a series is drawn in. Only columnLine mixes
// groups; every other chart type draws all series one way.
func plotVariant(t models.ChartType, ds models.Series) models.Variant {
	switch t {
	case models.TypeColumnLine:
		if ds.Variant == models.VariantLine {
			return models.VariantLine
		}
		return models.VariantBar
	case models.TypeLine:
		return models.VariantLine
	case models.TypeArea:
		return models.VariantArea
	case models.TypePie:
		return models.VariantPie
	default:
		return models.VariantBar
	}
}

// buildCharts groups series by plot variant. The first group is the primary
// chart; a columnLine record with both variants adds a line combo.
func buildCharts(record models.ChartRecord, opts XLSXOptions) (*excelize.Chart, []*excelize.Chart) {
	ref := quoteSheet(opts.SheetName)
	lastRow := len(record.Labels) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", ref, lastRow)

	var order []models.Variant
	groups := make(map[models.Variant][]excelize.ChartSeries)
	for i, ds := range record.Datasets {
		variant := plotVariant(record.Type, ds)
		col, _ := excelize.ColumnNumberToName(i + 2)
		series := excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", ref, col),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", ref, col, col, lastRow),
		}
		if variant != models.VariantPie && ds.Color != "" {
			series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{ds.Color}}
		}
		if _, seen := groups[variant]; !seen {
			order = append(order, variant)
		}
		groups[variant] = append(groups[variant], series)
	}

	// Columns are drawn first so that lines stay on top.
	if len(order) > 1 && order[0] != models.VariantBar && groups[models.VariantBar] != nil {
		order = append([]models.Variant{models.VariantBar}, removeVariant(order, models.VariantBar)...)
	}

	charts := make([]*excelize.Chart, 0, len(order))
	for _, v := range order {
		varyColors := v == models.VariantPie
		charts = append(charts, &excelize.Chart{
			Type:       chartTypes[v],
			Series:     groups[v],
			VaryColors: &varyColors,
		})
	}

	primary := charts[0]
	primary.Dimension = excelize.ChartDimension{Width: opts.Width, Height: opts.Height}
	primary.Legend = excelize.ChartLegend{Position: "bottom"}
	if title := strings.TrimSpace(record.Title); title != "" {
		primary.Title = []excelize.RichTextRun{{Text: title}}
	}
	return primary, charts[1:]
}

func removeVariant(variants []models.Variant, v models.Variant) []models.Variant {
	out := make([]models.Variant, 0, len(variants))
	for _, x := range variants {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// quoteSheet quotes a sheet name for use in a formula reference.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
