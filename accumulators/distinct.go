package accumulators

import (
	"github.com/go-sif/hashagg"
)

// Distinct only records the presence of keys, turning a table into a set
type Distinct struct{}

// Create does nothing, since presence in the table is the whole result
func (Distinct) Create(key hashagg.Key, v *struct{}) {}

// Update does nothing
func (Distinct) Update(key hashagg.Key, v *struct{}) {}

// Merge does nothing
func (Distinct) Merge(dst *struct{}, src *struct{}) {}
