package slidechart

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

// Clone returns an independent copy of record, so a draft can be mutated
// without aliasing the last committed record. A nil record yields nil.
// Nil slices stay nil and empty ones stay empty.
func Clone(record *models.ChartRecord) *models.ChartRecord {
	if record == nil {
		return nil
	}
	var out models.ChartRecord
	if err := deepcopy.Copy(&out, record); err != nil {
		// Only reachable if ChartRecord gains a field deepcopy cannot handle.
		panic(fmt.Sprintf("slidechart: copy chart record: %v", err))
	}
	return &out
}
