package braces

import (
	"context"
	"sync"
)

// worker owns the parsers of one goroutine. Tree-sitter parsers are not
// safe for concurrent use, so each worker builds its own per language.
type worker struct {
	parsers map[string]*parser
}

func newWorker() *worker {
	return &worker{parsers: make(map[string]*parser)}
}

func (w *worker) parserFor(language Language) *parser {
	p, ok := w.parsers[language.Name()]
	if !ok {
		p = newParser(language)
		w.parsers[language.Name()] = p
	}
	return p
}

// runWorkers processes files on a pool of workers and returns one result
// per file that was dispatched. Files still queued when ctx is cancelled
// are not dispatched.
func runWorkers[T any](
	ctx context.Context,
	files []FileJob,
	jobs int,
	process func(w *worker, job FileJob) T,
) []T {
	if len(files) == 0 {
		return nil
	}

	results := make(chan T, 128)
	jobQueue := make(chan FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	run := func() {
		defer wg.Done()
		w := newWorker()
		for job := range jobQueue {
			results <- process(w, job)
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go run()
	}

	go func() {
		defer close(jobQueue)
		for _, f := range files {
			select {
			case jobQueue <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []T
	for r := range results {
		all = append(all, r)
	}

	return all
}
