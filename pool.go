package html2pptx

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps converters, each of which may own a browser (~200MB)
	// when documents use RenderJS.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for image decoding and Chrome children.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool is closed")

// ConverterPool manages Converter instances for parallel batch conversion.
// Converters are created lazily on first acquire with the pool's options.
type ConverterPool struct {
	size       int
	opts       []Option
	converters []*Converter
	sem        chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool with capacity for n converters, each built
// with opts. n < 1 is raised to 1.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}

	return &ConverterPool{
		size:       n,
		opts:       opts,
		converters: make([]*Converter, 0, n),
		sem:        make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if capacity allows.
// Blocks if all converters are in use.
func (p *ConverterPool) Acquire() (*Converter, error) {
	select {
	case conv, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock; theme loading reads files.
		conv, err := NewConverter(p.opts...)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			return nil, err
		}
		p.converters = append(p.converters, conv)
		return conv, nil
	}
	p.mu.Unlock()

	conv, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return conv, nil
}

// Release returns a converter to the pool. Nil converters and releases after
// Close are ignored.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Never blocks: at most size converters exist.
	p.sem <- conv
}

// Close releases all browser resources.
// Returns an aggregated error if several converters fail to close.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, conv := range converters {
		if err := conv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// GOMAXPROCS reflects container CPU quotas once automaxprocs has run.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
