package ranker

import "context"

// DefaultStreamBatchSize is the number of results emitted per batch by
// Stream (spec §5's incremental-emission note).
const DefaultStreamBatchSize = 5

// Stream slices an already-ranked, already-sorted result list into
// monotonically-ordered batches and sends them on the returned channel.
// It never re-sorts: the caller's Rank output is a read-only view, sliced
// in place. The channel is closed when all batches are sent or ctx is
// cancelled.
func Stream(ctx context.Context, results []DealResult, batchSize int) <-chan []DealResult {
	if batchSize <= 0 {
		batchSize = DefaultStreamBatchSize
	}

	out := make(chan []DealResult)
	go func() {
		defer close(out)
		for start := 0; start < len(results); start += batchSize {
			end := start + batchSize
			if end > len(results) {
				end = len(results)
			}
			select {
			case out <- results[start:end]:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
