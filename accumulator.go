package hashagg

// Key is the type of the values being grouped. Keys are fixed-width unsigned integers.
type Key = uint64

// A Creator initializes the accumulator state for a Key seen for the first time.
// The slot it receives is zeroed.
type Creator[V any] interface {
	Create(key Key, v *V) // Create initializes the freshly inserted slot v for key
}

// An Updater folds one additional observation of a Key into an existing accumulator.
type Updater[V any] interface {
	Update(key Key, v *V) // Update folds one more observation of key into v
}

// A Merger folds one accumulator into another, when two independently built tables
// both contain the same Key. Merge strategies do not fix a global order across
// tables, so a Merger MUST be associative and commutative over V. Counts and sums
// satisfy this; subtraction, for example, does not, and will produce results which
// depend on the number of workers and on scheduling.
type Merger[V any] interface {
	Merge(dst *V, src *V) // Merge folds src into dst
}

// A Policy bundles the three behaviours required to aggregate and merge accumulators
type Policy[V any] interface {
	Creator[V]
	Updater[V]
	Merger[V]
}

// PolicyFuncs adapts plain functions to the Policy interface
type PolicyFuncs[V any] struct {
	CreateFn func(key Key, v *V)
	UpdateFn func(key Key, v *V)
	MergeFn  func(dst *V, src *V)
}

// Create calls CreateFn
func (p PolicyFuncs[V]) Create(key Key, v *V) {
	p.CreateFn(key, v)
}

// Update calls UpdateFn
func (p PolicyFuncs[V]) Update(key Key, v *V) {
	p.UpdateFn(key, v)
}

// Merge calls MergeFn
func (p PolicyFuncs[V]) Merge(dst *V, src *V) {
	p.MergeFn(dst, src)
}
