package interpret

import (
	"sync"

	"mercator-hq/parallax/pkg/ontology"

	"golang.org/x/sync/errgroup"
)

// evaluateParallel evaluates observers on at most limit goroutines. Each
// observer writes into its own fixed window of the result slice, so the
// output is already in canonical order when all workers finish.
//
// A panic in a perspective is captured in the worker and re-raised here, on
// the caller's goroutine, with its original value. When several perspectives
// panic the first one recovered wins.
func evaluateParallel(observers []ontology.Observer, entities []ontology.Entity, limit int) []Result {
	n := len(entities)
	results := make([]Result, len(observers)*n)

	var (
		panicOnce  sync.Once
		panicked   bool
		panicValue any
	)

	var g errgroup.Group
	g.SetLimit(limit)

	for i, o := range observers {
		out := results[i*n : (i+1)*n]
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() {
						panicked = true
						panicValue = r
					})
				}
			}()
			evaluateObserver(o, entities, out)
			return nil
		})
	}

	// Workers never return errors; Wait is only a barrier.
	_ = g.Wait()

	if panicked {
		panic(panicValue)
	}
	return results
}
