package output

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
	"github.com/xuri/excelize/v2"
)

func columnLineRecord() models.ChartRecord {
	return models.ChartRecord{
		Type:   models.TypeColumnLine,
		Title:  "Quarterly",
		Labels: []string{"Q1", "Q2", "Q3"},
		Datasets: []models.Series{
			{ID: "a", Label: "Revenue", Color: "#2563EB", Variant: models.VariantBar, Data: []float64{10, 20, 30}},
			{ID: "b", Label: "Margin", Color: "#F97316", Variant: models.VariantLine, Data: []float64{1, 2.5, 3}},
		},
	}
}

func TestNewWorkbookTable(t *testing.T) {
	f, err := NewWorkbook(columnLineRecord(), XLSXOptions{})
	if err != nil {
		t.Fatalf("NewWorkbook failed: %v", err)
	}
	defer f.Close()

	if f.GetSheetList()[0] != DefaultSheetName {
		t.Errorf("Expected sheet %s, got %v", DefaultSheetName, f.GetSheetList())
	}

	rows, err := f.GetRows(DefaultSheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	expected := [][]string{
		{"Quarterly", "Revenue", "Margin"},
		{"Q1", "10", "1"},
		{"Q2", "20", "2.5"},
		{"Q3", "30", "3"},
	}
	if len(rows) != len(expected) {
		t.Fatalf("Expected %d rows, got %d", len(expected), len(rows))
	}
	for i := range expected {
		for j := range expected[i] {
			if rows[i][j] != expected[i][j] {
				t.Errorf("cell [%d][%d] = %q, expected %q", i, j, rows[i][j], expected[i][j])
			}
		}
	}
}

func TestNewWorkbookPieFills(t *testing.T) {
	record := models.ChartRecord{
		Type:   models.TypePie,
		Labels: []string{"A", "B"},
		Datasets: []models.Series{{
			ID: "p", Label: "Share", Color: "#2563EB", Variant: models.VariantPie,
			Data: []float64{1, 2}, SegmentColors: []string{"#FF0000", "#00FF00"},
		}},
	}

	f, err := NewWorkbook(record, XLSXOptions{SheetName: "Pie Data"})
	if err != nil {
		t.Fatalf("NewWorkbook failed: %v", err)
	}
	defer f.Close()

	for i, cell := range []string{"A2", "A3"} {
		styleID, err := f.GetCellStyle("Pie Data", cell)
		if err != nil {
			t.Fatalf("GetCellStyle failed: %v", err)
		}
		style, err := f.GetStyle(styleID)
		if err != nil {
			t.Fatalf("GetStyle failed: %v", err)
		}
		want := []string{"FF0000", "00FF00"}[i]
		if len(style.Fill.Color) != 1 || style.Fill.Color[0] != want {
			t.Errorf("%s fill = %v, expected %s", cell, style.Fill.Color, want)
		}
	}
}

func TestBuildCharts(t *testing.T) {
	record := columnLineRecord()
	record.Datasets = append(record.Datasets, models.Series{
		ID: "c", Label: "Cost", Color: "#34D399", Variant: models.VariantBar, Data: []float64{5, 6, 7},
	})

	primary, combo := buildCharts(record, DefaultXLSXOptions().withDefaults())
	if primary.Type != excelize.Col || len(primary.Series) != 2 {
		t.Fatalf("Expected a column chart with 2 series, got %v with %d", primary.Type, len(primary.Series))
	}
	if len(combo) != 1 || combo[0].Type != excelize.Line || len(combo[0].Series) != 1 {
		t.Fatalf("Expected one line combo chart, got %+v", combo)
	}
	if primary.Series[1].Values != "'ChartData'!$D$2:$D$4" {
		t.Errorf("Unexpected values reference %q", primary.Series[1].Values)
	}
	if combo[0].Series[0].Name != "'ChartData'!$C$1" {
		t.Errorf("Unexpected name reference %q", combo[0].Series[0].Name)
	}
	if primary.Series[0].Fill.Color[0] != "#2563EB" {
		t.Errorf("Unexpected fill %v", primary.Series[0].Fill)
	}
	if len(primary.Title) != 1 || primary.Title[0].Text != "Quarterly" {
		t.Errorf("Unexpected title %+v", primary.Title)
	}
	if *primary.VaryColors {
		t.Error("Expected varyColors off for column charts")
	}
}

func TestBuildChartsLineFirst(t *testing.T) {
	record := columnLineRecord()
	record.Datasets[0].Variant = models.VariantLine
	record.Datasets[1].Variant = models.VariantBar

	primary, combo := buildCharts(record, DefaultXLSXOptions())
	if primary.Type != excelize.Col || len(combo) != 1 || combo[0].Type != excelize.Line {
		t.Errorf("Expected columns as the primary chart, got %v + %d", primary.Type, len(combo))
	}
}

func TestBuildChartsFollowsChartType(t *testing.T) {
	tests := []struct {
		chartType models.ChartType
		variant   models.Variant
		want      excelize.ChartType
	}{
		{models.TypeBar, models.VariantBar, excelize.Col},
		{models.TypeLine, models.VariantBar, excelize.Line},
		{models.TypeArea, models.VariantArea, excelize.Area},
		{models.TypePie, models.VariantPie, excelize.Pie},
		{models.TypeColumnLine, models.VariantBar, excelize.Col},
	}

	for _, tt := range tests {
		record := columnLineRecord()
		record.Type = tt.chartType
		record.Datasets = record.Datasets[:1]
		record.Datasets[0].Variant = tt.variant

		primary, combo := buildCharts(record, DefaultXLSXOptions())
		if primary.Type != tt.want || len(combo) != 0 {
			t.Errorf("%s: expected %v without combo, got %v + %d", tt.chartType, tt.want, primary.Type, len(combo))
		}
	}
}

func TestBuildChartsLineSeriesOnLineChart(t *testing.T) {
	record := columnLineRecord()
	record.Type = models.TypeLine
	for i := range record.Datasets {
		record.Datasets[i].Variant = models.VariantBar
	}

	primary, combo := buildCharts(record, DefaultXLSXOptions())
	if primary.Type != excelize.Line || len(primary.Series) != 2 || len(combo) != 0 {
		t.Errorf("Expected one line chart with 2 series, got %v with %d + %d", primary.Type, len(primary.Series), len(combo))
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, columnLineRecord(), DefaultXLSXOptions()); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	v, err := f.GetCellValue(DefaultSheetName, "B1")
	if err != nil || v != "Revenue" {
		t.Errorf("Expected Revenue in B1, got %q (%v)", v, err)
	}
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.xlsx")
	if err := SaveXLSX(path, columnLineRecord(), DefaultXLSXOptions()); err != nil {
		t.Fatalf("SaveXLSX failed: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	f.Close()
}

func TestNewWorkbookEmptyRecord(t *testing.T) {
	if _, err := NewWorkbook(models.ChartRecord{}, DefaultXLSXOptions()); !errors.Is(err, ErrEmptyRecord) {
		t.Errorf("Expected ErrEmptyRecord, got %v", err)
	}
}
