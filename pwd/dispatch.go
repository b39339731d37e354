package pwd

import (
	"context"
	"errors"
	"time"
)

// ErrPoolExhausted means no hashing slot became available in time.
var ErrPoolExhausted = errors.New("pwd: hashing pool exhausted")

// hashPool bounds how many hash computations run at once so the
// memory-hard work never starves request handling. Slots are a filled
// channel semaphore; the computation itself runs on its own goroutine
// and the caller waits on a buffered result channel, so a cancelled
// request simply abandons the result while the computation finishes and
// releases its slot.
type hashPool struct {
	sem     chan struct{}
	maxWait time.Duration
}

func newHashPool(size int, maxWait time.Duration) *hashPool {
	if size <= 0 {
		size = 4
	}
	return &hashPool{
		sem:     make(chan struct{}, size),
		maxWait: maxWait,
	}
}

type hashResult struct {
	value string
	ok    bool
	err   error
}

// run executes fn on the pool and waits for its result or context
// cancellation. ErrPoolExhausted is returned when no slot frees up
// within maxWait.
func (p *hashPool) run(ctx context.Context, fn func() (string, bool, error)) (string, bool, error) {
	if err := p.acquire(ctx); err != nil {
		return "", false, err
	}

	ch := make(chan hashResult, 1)
	go func() {
		defer func() { <-p.sem }()
		value, ok, err := fn()
		ch <- hashResult{value: value, ok: ok, err: err}
	}()

	select {
	case res := <-ch:
		return res.value, res.ok, res.err
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (p *hashPool) acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	default:
	}

	if p.maxWait <= 0 {
		return ErrPoolExhausted
	}

	timer := time.NewTimer(p.maxWait)
	defer timer.Stop()

	select {
	case p.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrPoolExhausted
	case <-ctx.Done():
		return ctx.Err()
	}
}
