package models

// PartialChart is chart data of unknown provenance: hand-authored documents,
// previously stored records, or values recovered from a workbook. Scalars are
// loosely typed so that documents with numbers where strings are expected
// still decode.
type PartialChart struct {
	Type     any             `json:"type,omitempty" yaml:"type,omitempty"`
	Title    any             `json:"title,omitempty" yaml:"title,omitempty"`
	Labels   []any           `json:"labels,omitempty" yaml:"labels,omitempty"`
	Datasets []PartialSeries `json:"datasets,omitempty" yaml:"datasets,omitempty"`
}

// PartialSeries is the loosely typed counterpart of Series.
type PartialSeries struct {
	ID            any   `json:"id,omitempty" yaml:"id,omitempty"`
	Label         any   `json:"label,omitempty" yaml:"label,omitempty"`
	Color         any   `json:"color,omitempty" yaml:"color,omitempty"`
	Variant       any   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Data          []any `json:"data,omitempty" yaml:"data,omitempty"`
	SegmentColors []any `json:"segmentColors,omitempty" yaml:"segmentColors,omitempty"`
}

// Partial converts a canonical record back into input form.
func (r ChartRecord) Partial() *PartialChart {
	p := &PartialChart{
		Type:   string(r.Type),
		Title:  r.Title,
		Labels: make([]any, len(r.Labels)),
	}
	for i, label := range r.Labels {
		p.Labels[i] = label
	}
	for _, ds := range r.Datasets {
		ps := PartialSeries{
			ID:      ds.ID,
			Label:   ds.Label,
			Color:   ds.Color,
			Variant: string(ds.Variant),
			Data:    make([]any, len(ds.Data)),
		}
		for i, v := range ds.Data {
			ps.Data[i] = v
		}
		if ds.SegmentColors != nil {
			ps.SegmentColors = make([]any, len(ds.SegmentColors))
			for i, c := range ds.SegmentColors {
				ps.SegmentColors[i] = c
			}
		}
		p.Datasets = append(p.Datasets, ps)
	}
	return p
}
