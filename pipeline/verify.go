package pipeline

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
)

// Verify checks that m holds exactly one entry for every distinct key in keys,
// returning an errors.VerificationError otherwise
func Verify[V any](keys []hashagg.Key, m hashagg.Map[V]) error {
	expected := roaring64.New()
	expected.AddMany(keys)
	if uint64(m.Len()) != expected.GetCardinality() {
		return errors.VerificationError{Reason: fmt.Sprintf("expected %d distinct keys, but the result holds %d", expected.GetCardinality(), m.Len())}
	}
	seen := roaring64.New()
	var failure error
	m.ForEach(func(key hashagg.Key, v *V) bool {
		if !expected.Contains(key) {
			failure = errors.VerificationError{Reason: fmt.Sprintf("key %d is not part of the input", key)}
			return false
		}
		if !seen.CheckedAdd(key) {
			failure = errors.VerificationError{Reason: fmt.Sprintf("key %d appears more than once", key)}
			return false
		}
		return true
	})
	return failure
}
