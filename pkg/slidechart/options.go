// Package slidechart keeps slide chart data consistent: it normalizes
// arbitrary chart input into a canonical record, applies edits to a draft
// and re-sanitizes it, and moves records to and from xlsx workbooks.
package slidechart

import "github.com/ukaji3/slidechart-go/internal/logger"

// ImportOptions configures workbook import.
type ImportOptions struct {
	// Palette supplies fallback series colors. DefaultPalette if empty.
	Palette Palette
	// IncludeTables turns plain data blocks into charts on sheets that have
	// no native chart. If nil, defaults to false.
	IncludeTables *bool
	// Logger receives per-sheet warnings. A nop logger is used if nil.
	Logger logger.Logger
}

// DefaultImportOptions returns default import options.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		Palette: DefaultPalette,
	}
}

// ShouldIncludeTables returns whether to read data tables.
func (o ImportOptions) ShouldIncludeTables() bool {
	if o.IncludeTables != nil {
		return *o.IncludeTables
	}
	return false
}

func (o ImportOptions) palette() Palette {
	if len(o.Palette) == 0 {
		return DefaultPalette
	}
	return o.Palette
}

func (o ImportOptions) logger() logger.Logger {
	if o.Logger == nil {
		return logger.NewNopLogger()
	}
	return o.Logger
}
