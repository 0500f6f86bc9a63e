package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
	"github.com/xuri/excelize/v2"
)

// ErrTableTooSmall indicates a range without at least one header row and one
// category column next to a value column.
var ErrTableTooSmall = errors.New("table needs a header row and at least one value column")

// TableParams tunes which data blocks are taken for charts.
type TableParams struct {
	// MinCells is the least number of filled cells in a block.
	MinCells int
	// MinDensity is the least ratio of filled cells to block area.
	MinDensity float64
	// MinNumericRatio is the least share of numbers among the filled value
	// cells (everything below the header row and right of the label column).
	MinNumericRatio float64
}

// DefaultTableParams returns the thresholds used by Import.
func DefaultTableParams() TableParams {
	return TableParams{
		MinCells:        3,
		MinDensity:      0.5,
		MinNumericRatio: 0.5,
	}
}

// block is a run of non-blank rows, zero-based and inclusive.
type block struct {
	top, bottom, left, right int
}

func (b block) ref() string {
	start, _ := excelize.CoordinatesToCellName(b.left+1, b.top+1)
	end, _ := excelize.CoordinatesToCellName(b.right+1, b.bottom+1)
	return start + ":" + end
}

// DetectTables returns the ranges (e.g. "B3:D6") of chart-shaped blocks on a
// sheet: a header row over a label column and mostly numeric values. Blank
// rows separate blocks.
func DetectTables(f *excelize.File, sheetName string, params TableParams) ([]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var tables []string
	for _, b := range splitBlocks(rows) {
		if chartShaped(rows, b, params) {
			tables = append(tables, b.ref())
		}
	}
	return tables, nil
}

// splitBlocks groups consecutive non-blank rows and bounds their columns.
func splitBlocks(rows [][]string) []block {
	var blocks []block
	open := false
	var cur block
	for r, row := range rows {
		left, right := filledBounds(row)
		if left < 0 {
			if open {
				blocks = append(blocks, cur)
				open = false
			}
			continue
		}
		if !open {
			cur = block{top: r, bottom: r, left: left, right: right}
			open = true
			continue
		}
		cur.bottom = r
		cur.left = min(cur.left, left)
		cur.right = max(cur.right, right)
	}
	if open {
		blocks = append(blocks, cur)
	}
	return blocks
}

func filledBounds(row []string) (left, right int) {
	left, right = -1, -1
	for c, cell := range row {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		if left < 0 {
			left = c
		}
		right = c
	}
	return left, right
}

func chartShaped(rows [][]string, b block, params TableParams) bool {
	if b.bottom <= b.top || b.right <= b.left {
		return false
	}

	filled, values, numeric := 0, 0, 0
	for r := b.top; r <= b.bottom; r++ {
		for c := b.left; c <= b.right; c++ {
			cell := ""
			if c < len(rows[r]) {
				cell = strings.TrimSpace(rows[r][c])
			}
			if cell == "" {
				continue
			}
			filled++
			if r == b.top || c == b.left {
				continue
			}
			values++
			switch parseValue(cell).(type) {
			case int64, float64:
				numeric++
			}
		}
	}

	area := (b.bottom - b.top + 1) * (b.right - b.left + 1)
	if filled < params.MinCells || float64(filled)/float64(area) < params.MinDensity {
		return false
	}
	return numeric > 0 && float64(numeric)/float64(values) >= params.MinNumericRatio
}

// ReadTable reads a data block as chart data. The first row holds series
// names, the first column category labels, and the top-left cell (if any) the
// chart title. Solid fills on category cells become slice colors of the
// first series.
func ReadTable(f *excelize.File, sheetName, rangeRef string) (models.ChartSource, error) {
	rng, err := ParseReference(rangeRef, sheetName)
	if err != nil {
		return models.ChartSource{}, err
	}
	if rng.EndRow <= rng.StartRow || rng.EndCol <= rng.StartCol {
		return models.ChartSource{}, fmt.Errorf("%w: %s", ErrTableTooSmall, rangeRef)
	}

	cell := func(col, row int) (string, string, error) {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return "", "", err
		}
		v, err := f.GetCellValue(rng.Sheet, name)
		return strings.TrimSpace(v), name, err
	}

	var data models.PartialChart
	corner, _, err := cell(rng.StartCol, rng.StartRow)
	if err != nil {
		return models.ChartSource{}, err
	}
	if corner != "" {
		data.Title = corner
	}

	for col := rng.StartCol + 1; col <= rng.EndCol; col++ {
		header, _, err := cell(col, rng.StartRow)
		if err != nil {
			return models.ChartSource{}, err
		}
		data.Datasets = append(data.Datasets, models.PartialSeries{Label: header})
	}

	var fills []any
	hasFill := false
	for row := rng.StartRow + 1; row <= rng.EndRow; row++ {
		label, name, err := cell(rng.StartCol, row)
		if err != nil {
			return models.ChartSource{}, err
		}
		data.Labels = append(data.Labels, label)

		fill, err := cellFill(f, rng.Sheet, name)
		if err != nil {
			return models.ChartSource{}, err
		}
		if fill != "" {
			fills = append(fills, "#"+fill)
			hasFill = true
		} else {
			fills = append(fills, nil)
		}

		for i := range data.Datasets {
			v, _, err := cell(rng.StartCol+1+i, row)
			if err != nil {
				return models.ChartSource{}, err
			}
			data.Datasets[i].Data = append(data.Datasets[i].Data, parseValue(v))
		}
	}
	if hasFill {
		data.Datasets[0].SegmentColors = fills
	}

	start, _ := excelize.CoordinatesToCellName(rng.StartCol, rng.StartRow)
	end, _ := excelize.CoordinatesToCellName(rng.EndCol, rng.EndRow)
	return models.ChartSource{
		Sheet: rng.Sheet,
		Name:  start + ":" + end,
		Kinds: []string{"table"},
		Data:  data,
	}, nil
}
