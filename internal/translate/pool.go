package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// completeFunc sends one prompt to a provider and returns its raw text reply.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// pool splits items into batches of BatchSize. Each batch becomes one API
// request. Workers (up to Concurrency) pull batches from a shared queue and
// the first failure cancels the rest.
type pool struct {
	provider string
	options  Options
	complete completeFunc
}

func newPool(provider string, opts Options, complete completeFunc) *pool {
	return &pool{
		provider: provider,
		options:  opts,
		complete: complete,
	}
}

func (p *pool) batchSize() int {
	if p.options.BatchSize > 0 {
		return p.options.BatchSize
	}
	return DefaultBatchSize
}

func (p *pool) concurrency() int {
	if p.options.Concurrency > 0 {
		return p.options.Concurrency
	}
	return DefaultConcurrency
}

func (p *pool) Translate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	batchSize := p.batchSize()
	var batches [][]Item
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}

	if len(batches) == 1 {
		return p.translateBatch(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []Result
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency() && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					results, err := p.translateBatch(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						Index:   batchIdx,
						Results: results,
						Error:   err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var allResults []Result
	var firstErr error
	for result := range resultChan {
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf(
				"batch %d failed: %w",
				result.Index,
				result.Error,
			)
			cancel()
		}
		if result.Error == nil {
			allResults = append(allResults, result.Results...)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && len(allResults) < len(items) {
		return nil, fmt.Errorf("translation cancelled: %w", err)
	}

	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Index < allResults[j].Index
	})

	return allResults, nil
}

func (p *pool) translateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	prompt := BuildPrompt(p.options, items)

	responseText, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text in %s response", p.provider)
	}

	results, err := parseResults(responseText, len(items))
	if err != nil {
		return nil, err
	}
	if err := checkBatchIndices(items, results); err != nil {
		return nil, err
	}
	return results, nil
}

// every result must answer a distinct item of its own batch
func checkBatchIndices(items []Item, results []Result) error {
	pending := make(map[int]bool, len(items))
	for _, item := range items {
		pending[item.Index] = true
	}

	for _, result := range results {
		if !pending[result.Index] {
			return fmt.Errorf(
				"unexpected or duplicate result index %d in batch %d-%d",
				result.Index,
				items[0].Index,
				items[len(items)-1].Index,
			)
		}
		delete(pending, result.Index)
	}
	return nil
}
