// Package parallel contains a bounded parallel ForEach sized by the host CPU.
package parallel

import "sync"

// ForEach executes body for every integer from 0 to length-1 with at most
// limit goroutines running at once. A limit below 1 uses Limit().
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = Limit()
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}

// ForEachErr is like ForEach but collects errors. It returns the error of the
// lowest index that failed, all iterations run regardless.
func ForEachErr(length, limit int, body func(i int) error) error {
	if length <= 0 {
		return nil
	}
	errs := make([]error, length)
	ForEach(length, limit, func(i int) {
		errs[i] = body(i)
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
