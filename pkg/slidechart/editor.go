package slidechart

import (
	"github.com/ukaji3/slidechart-go/internal/logger"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

// SettingsUpdate is emitted to the owning element after every accepted edit.
type SettingsUpdate struct {
	// ElementID identifies the chart element being edited.
	ElementID string `json:"elementId"`
	// ChartData is the sanitized record.
	ChartData models.ChartRecord `json:"chartData"`
	// ChartType mirrors ChartData.Type for consumers that only read the kind.
	ChartType models.ChartType `json:"chartType"`
}

// SettingsSink receives chart settings updates. Delivery is fire-and-forget
// and receiving the same update twice must be harmless.
type SettingsSink interface {
	UpdateChartSettings(update SettingsUpdate)
}

// SettingsSinkFunc adapts a function to SettingsSink.
type SettingsSinkFunc func(update SettingsUpdate)

// UpdateChartSettings calls f(update).
func (f SettingsSinkFunc) UpdateChartSettings(update SettingsUpdate) {
	f(update)
}

// MemorySink keeps the latest update per element.
type MemorySink struct {
	updates map[string]SettingsUpdate
	count   int
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{updates: make(map[string]SettingsUpdate)}
}

// UpdateChartSettings stores update as the element's current settings.
func (s *MemorySink) UpdateChartSettings(update SettingsUpdate) {
	update.ChartData = *Clone(&update.ChartData)
	s.updates[update.ElementID] = update
	s.count++
}

// Latest returns the last update received for elementID.
func (s *MemorySink) Latest(elementID string) (SettingsUpdate, bool) {
	u, ok := s.updates[elementID]
	return u, ok
}

// Count returns the number of updates received.
func (s *MemorySink) Count() int {
	return s.count
}

// Editor holds the draft of one chart element and applies mutations to it:
// every accepted edit runs on a clone of the draft, is sanitized, emitted to
// the sink, and becomes the new draft.
//
// An Editor is owned by a single caller and is not safe for concurrent use.
type Editor struct {
	palette   Palette
	sink      SettingsSink
	log       logger.Logger
	elementID string
	draft     *models.ChartRecord
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithPalette sets the fallback palette. DefaultPalette is used otherwise.
func WithPalette(p Palette) EditorOption {
	return func(e *Editor) {
		e.palette = p.Resolved()
	}
}

// WithLogger sets the logger used for applied and skipped mutations.
func WithLogger(l logger.Logger) EditorOption {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEditor creates an editor that emits accepted edits to sink.
func NewEditor(sink SettingsSink, opts ...EditorOption) *Editor {
	e := &Editor{
		palette: DefaultPalette.Resolved(),
		sink:    sink,
		log:     logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open starts editing elementID from its stored chart data, discarding any
// draft of a previously opened element.
func (e *Editor) Open(elementID string, stored *models.PartialChart) models.ChartRecord {
	record := Normalize(stored, e.palette)
	e.elementID = elementID
	e.draft = &record
	e.log.Debug("chart draft opened", "element", elementID, "type", record.Type,
		"categories", len(record.Labels), "series", len(record.Datasets))
	return *Clone(e.draft)
}

// Close discards the draft.
func (e *Editor) Close() {
	e.elementID = ""
	e.draft = nil
}

// ElementID returns the element being edited, or "" when closed.
func (e *Editor) ElementID() string {
	return e.elementID
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() (models.ChartRecord, bool) {
	if e.draft == nil {
		return models.ChartRecord{}, false
	}
	return *Clone(e.draft), true
}

// Palette returns the resolved palette in use.
func (e *Editor) Palette() Palette {
	return append(Palette(nil), e.palette...)
}

// VariantOptions returns the selectable series variants for the draft.
func (e *Editor) VariantOptions() []models.VariantOption {
	if e.draft == nil {
		return nil
	}
	return VariantOptions(e.draft.Type)
}

// CanAddSeries reports whether AddSeries would apply to the draft.
func (e *Editor) CanAddSeries() bool { return CanAddSeries(e.draft) }

// CanRemoveSeries reports whether RemoveSeries would apply to the draft.
func (e *Editor) CanRemoveSeries() bool { return CanRemoveSeries(e.draft) }

// CanRemoveCategory reports whether RemoveCategory would apply to the draft.
func (e *Editor) CanRemoveCategory() bool { return CanRemoveCategory(e.draft) }

// Apply runs m against a clone of the draft. When m does not apply the
// draft is unchanged, nothing is emitted and the second result is false.
func (e *Editor) Apply(m Mutation) (models.ChartRecord, bool) {
	if e.draft == nil || m.Apply == nil {
		return models.ChartRecord{}, false
	}
	base := Clone(e.draft)
	if !m.Apply(base, e.palette) {
		e.log.Debug("chart mutation skipped", "element", e.elementID, "op", m.Op)
		return *Clone(e.draft), false
	}
	sanitized := Sanitize(*base, e.palette)
	e.draft = &sanitized
	e.log.Debug("chart mutation applied", "element", e.elementID, "op", m.Op)
	if e.sink != nil {
		e.sink.UpdateChartSettings(SettingsUpdate{
			ElementID: e.elementID,
			ChartData: *Clone(&sanitized),
			ChartType: sanitized.Type,
		})
	}
	return *Clone(&sanitized), true
}
