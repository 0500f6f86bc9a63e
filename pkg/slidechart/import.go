package slidechart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/slidechart-go/internal/logger"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/parser"
	"github.com/xuri/excelize/v2"
)

// Import reads the charts of an xlsx workbook and normalizes each one.
// Charts are returned in sheet order, then drawing order.
func Import(path string, opts ImportOptions) (*models.WorkbookCharts, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	log := opts.logger()
	palette := opts.palette().Resolved()

	// Chart parts require direct OOXML parsing
	sources, err := parser.ExtractCharts(path, parser.NewWorkbookResolver(f))
	if err != nil {
		return nil, NewImportError("", "charts", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	wb := &models.WorkbookCharts{
		BookName: filepath.Base(path),
		Charts:   []models.ImportedChart{},
	}
	for _, sheetName := range f.GetSheetList() {
		charts := sources[sheetName]
		if len(charts) == 0 && opts.ShouldIncludeTables() {
			charts = readTables(f, sheetName, log)
		}
		for _, src := range charts {
			record := ImportChart(src.Data, palette)
			log.Debug("chart imported", "sheet", sheetName, "name", src.Name,
				"type", record.Type, "series", len(record.Datasets))
			wb.Charts = append(wb.Charts, models.ImportedChart{
				Sheet:  sheetName,
				Name:   src.Name,
				Anchor: src.Anchor,
				Chart:  record,
			})
		}
	}

	return wb, nil
}

// ImportChart normalizes chart data read from a workbook. On columnLine
// charts the column or line variant of each series is taken from the
// workbook instead of its position.
func ImportChart(data models.PartialChart, palette Palette) models.ChartRecord {
	record := Normalize(&data, palette)
	if record.Type != models.TypeColumnLine {
		return record
	}
	for i := range record.Datasets {
		if i >= len(data.Datasets) {
			break
		}
		if v, ok := data.Datasets[i].Variant.(string); ok && v != "" {
			record.Datasets[i].Variant = models.Variant(v)
		}
	}
	return Sanitize(record, palette)
}

// readTables turns detected data blocks of a sheet into chart sources.
// Unreadable blocks are logged and skipped.
func readTables(f *excelize.File, sheetName string, log logger.Logger) []models.ChartSource {
	tables, err := parser.DetectTables(f, sheetName, parser.DefaultTableParams())
	if err != nil {
		log.Warn("table detection failed", "error", NewImportError(sheetName, "tables", err))
		return nil
	}

	var sources []models.ChartSource
	for _, ref := range tables {
		src, err := parser.ReadTable(f, sheetName, ref)
		if err != nil {
			log.Warn("table skipped", "range", ref, "error", NewImportError(sheetName, "tables", err))
			continue
		}
		sources = append(sources, src)
	}
	return sources
}
