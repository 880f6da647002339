package protocols

import "sync"

// minBatchSize keeps tiny inputs on the calling goroutine
const minBatchSize = 64

// parallelFor splits [0, n) into contiguous batches and runs fn on up to
// workers goroutines. Batches never overlap, so fn may write its own range
// of a shared slice without locking.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= minBatchSize {
		fn(0, n)
		return
	}

	batchSize := (n + workers - 1) / workers
	if batchSize < minBatchSize {
		batchSize = minBatchSize
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
