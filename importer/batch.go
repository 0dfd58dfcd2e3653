package importer

// Plan describes how a run splits its records into batches.
type Plan struct {
	Total      int
	BatchSizes []int
}

// Batches returns the number of batches.
func (p Plan) Batches() int {
	return len(p.BatchSizes)
}

// NewPlan returns the plan for total records in batches of at most batchSize.
// There are ceil(total/batchSize) batches; only the last may be short.
func NewPlan(total, batchSize int) Plan {
	p := Plan{Total: total, BatchSizes: []int{}}
	if batchSize <= 0 {
		return p
	}
	for start := 0; start < total; start += batchSize {
		p.BatchSizes = append(p.BatchSizes, min(batchSize, total-start))
	}
	return p
}

// Partition splits items into consecutive slices of at most size elements.
// The slices share items' backing array; concatenating them yields items.
func Partition[T any](items []T, size int) [][]T {
	if size <= 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end:end])
	}
	return batches
}
