package channel_utils

import (
	"faceless-timeline/application/ports/outbound"
	"sync"
)

// MergeChannels fans in every channel onto one, closed once all inputs are
// closed. Forwarding runs on the worker pool.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)

	forward := func(c <-chan T) {
		defer wg.Done()
		for val := range c {
			merged <- val
		}
	}

	// abandon lets already started forwarders finish when the caller gets an error
	// and will never read merged.
	abandon := func() {
		go func() {
			wg.Wait()
			close(merged)
		}()
		go func() {
			for range merged {
			}
		}()
	}

	wg.Add(len(channels))
	for i, c := range channels {
		ch := c
		if err := workerPool.Submit(func() { forward(ch) }); err != nil {
			wg.Add(-(len(channels) - i))
			abandon()
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		abandon()
		return nil, err
	}

	return merged, nil
}
