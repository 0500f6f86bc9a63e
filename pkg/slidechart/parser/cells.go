package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidReference indicates a formula reference that is not a single
// rectangular range such as Sheet1!$A$1:$A$4.
var ErrInvalidReference = errors.New("invalid cell reference")

// RangeResolver resolves chart formula references against workbook cells.
type RangeResolver interface {
	// ResolveValues returns the displayed values of the referenced cells in
	// row-major order.
	ResolveValues(ref string) ([]string, error)
	// ResolveFills returns the solid fill color ("RRGGBB", or "" when the cell
	// has none) of each referenced cell in row-major order.
	ResolveFills(ref string) ([]string, error)
}

// CellRange is a parsed rectangular reference. Coordinates are 1-based.
type CellRange struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// Cells returns the cell names of the range in row-major order.
func (c CellRange) Cells() []string {
	var names []string
	for row := c.StartRow; row <= c.EndRow; row++ {
		for col := c.StartCol; col <= c.EndCol; col++ {
			name, err := excelize.CoordinatesToCellName(col, row)
			if err == nil {
				names = append(names, name)
			}
		}
	}
	return names
}

// ParseReference parses references like "'My Sheet'!$A$1:$B$3", "Sheet1!B2"
// or, when defaultSheet is set, "A1:C4".
func ParseReference(ref, defaultSheet string) (CellRange, error) {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimSuffix(strings.TrimPrefix(ref, "("), ")")
	if ref == "" || strings.Contains(ref, ",") {
		return CellRange{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	sheet, cells := defaultSheet, ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet, cells = ref[:idx], ref[idx+1:]
		if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
	}
	if sheet == "" {
		return CellRange{}, fmt.Errorf("%w: %q has no sheet", ErrInvalidReference, ref)
	}

	start, end, found := strings.Cut(strings.ReplaceAll(cells, "$", ""), ":")
	if !found {
		end = start
	}
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return CellRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, ref, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return CellRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, ref, err)
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return CellRange{Sheet: sheet, StartCol: c1, StartRow: r1, EndCol: c2, EndRow: r2}, nil
}

// WorkbookResolver resolves references through an open workbook.
type WorkbookResolver struct {
	f *excelize.File
}

// NewWorkbookResolver creates a resolver backed by f.
func NewWorkbookResolver(f *excelize.File) *WorkbookResolver {
	return &WorkbookResolver{f: f}
}

// ResolveValues implements RangeResolver.
func (r *WorkbookResolver) ResolveValues(ref string) ([]string, error) {
	rng, err := ParseReference(ref, "")
	if err != nil {
		return nil, err
	}
	cells := rng.Cells()
	values := make([]string, 0, len(cells))
	for _, cell := range cells {
		v, err := r.f.GetCellValue(rng.Sheet, cell)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// ResolveFills implements RangeResolver.
func (r *WorkbookResolver) ResolveFills(ref string) ([]string, error) {
	rng, err := ParseReference(ref, "")
	if err != nil {
		return nil, err
	}
	cells := rng.Cells()
	fills := make([]string, 0, len(cells))
	for _, cell := range cells {
		fill, err := cellFill(r.f, rng.Sheet, cell)
		if err != nil {
			return nil, err
		}
		fills = append(fills, fill)
	}
	return fills, nil
}

// cellFill returns the solid pattern color of a cell without the leading '#'.
func cellFill(f *excelize.File, sheet, cell string) (string, error) {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return "", err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return "", err
	}
	if style.Fill.Type != "pattern" || style.Fill.Pattern != 1 || len(style.Fill.Color) == 0 {
		return "", nil
	}
	return strings.TrimPrefix(style.Fill.Color[0], "#"), nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
