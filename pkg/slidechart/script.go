package slidechart

import (
	"errors"
	"fmt"

	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
	"gopkg.in/yaml.v3"
)

// Edit script errors.
var (
	ErrUnknownOp    = errors.New("unknown edit operation")
	ErrMissingField = errors.New("missing required field")
)

// ScriptStep is one entry of an edit script.
type ScriptStep struct {
	Op       string  `yaml:"op"`
	Index    *int    `yaml:"index,omitempty"`
	Series   *int    `yaml:"series,omitempty"`
	Category *int    `yaml:"category,omitempty"`
	Value    any     `yaml:"value,omitempty"`
	Label    *string `yaml:"label,omitempty"`
	Title    *string `yaml:"title,omitempty"`
	Color    string  `yaml:"color,omitempty"`
	Variant  string  `yaml:"variant,omitempty"`
	Type     string  `yaml:"type,omitempty"`
}

// ParseScript decodes a YAML (or JSON) list of edit steps into mutations.
func ParseScript(data []byte) ([]Mutation, error) {
	var steps []ScriptStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse edit script: %w", err)
	}
	mutations := make([]Mutation, 0, len(steps))
	for i, step := range steps {
		m, err := step.Mutation()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		mutations = append(mutations, m)
	}
	return mutations, nil
}

// Mutation builds the mutation described by the step.
func (s ScriptStep) Mutation() (Mutation, error) {
	switch s.Op {
	case OpSetTitle:
		if s.Title == nil {
			return Mutation{}, missing(s.Op, "title")
		}
		return SetTitle(*s.Title), nil
	case OpSetType:
		t := models.ChartType(s.Type)
		if !t.Valid() {
			return Mutation{}, fmt.Errorf("%w: %s needs a valid type, got %q", ErrMissingField, s.Op, s.Type)
		}
		return SetType(t), nil
	case OpRenameCategory:
		if s.Index == nil || s.Label == nil {
			return Mutation{}, missing(s.Op, "index, label")
		}
		return RenameCategory(*s.Index, *s.Label), nil
	case OpRemoveCategory:
		if s.Index == nil {
			return Mutation{}, missing(s.Op, "index")
		}
		return RemoveCategory(*s.Index), nil
	case OpAddCategory:
		return AddCategory(), nil
	case OpRenameSeries:
		if s.Index == nil || s.Label == nil {
			return Mutation{}, missing(s.Op, "index, label")
		}
		return RenameSeries(*s.Index, *s.Label), nil
	case OpRecolorSeries:
		if s.Index == nil || s.Color == "" {
			return Mutation{}, missing(s.Op, "index, color")
		}
		return RecolorSeries(*s.Index, s.Color), nil
	case OpSetSeriesVariant:
		if s.Index == nil || s.Variant == "" {
			return Mutation{}, missing(s.Op, "index, variant")
		}
		return SetSeriesVariant(*s.Index, models.Variant(s.Variant)), nil
	case OpSetValue:
		if s.Series == nil || s.Category == nil {
			return Mutation{}, missing(s.Op, "series, category")
		}
		return SetValue(*s.Series, *s.Category, s.Value), nil
	case OpRecolorSlice:
		if s.Series == nil || s.Category == nil || s.Color == "" {
			return Mutation{}, missing(s.Op, "series, category, color")
		}
		return RecolorSlice(*s.Series, *s.Category, s.Color), nil
	case OpAddSeries:
		return AddSeries(), nil
	case OpRemoveSeries:
		if s.Index == nil {
			return Mutation{}, missing(s.Op, "index")
		}
		return RemoveSeries(*s.Index), nil
	default:
		return Mutation{}, fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
}

func missing(op, fields string) error {
	return fmt.Errorf("%w: %s requires %s", ErrMissingField, op, fields)
}
