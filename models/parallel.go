package models

import (
	"runtime"
	"sync"
)

// Below this many items the goroutine overhead outweighs the work.
const minParallelItems = 1024

// ForEachChunk splits [0, n) into contiguous chunks and runs fn on each,
// one goroutine per chunk. workers <= 0 means GOMAXPROCS. Chunks never
// overlap, so fn may write to disjoint indices without locking.
func ForEachChunk(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n < minParallelItems {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	perWorker := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += perWorker {
		end := start + perWorker
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
