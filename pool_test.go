package html2pptx

// Notes:
// - Converters in these tests never see RenderJS input, so no browser starts
//   and Close is cheap.

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

// ---------------------------------------------------------------------------
// ResolvePoolSize
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	auto := min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit takes priority", workers: 4, want: 4},
		{name: "explicit=1 for sequential", workers: 1, want: 1},
		{name: "explicit above max is honoured", workers: 32, want: 32},
		{name: "zero uses auto calculation", workers: 0, want: auto},
		{name: "negative uses auto calculation", workers: -3, want: auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ConverterPool
// ---------------------------------------------------------------------------

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ in, want int }{{3, 3}, {1, 1}, {0, 1}, {-2, 1}} {
		pool := NewConverterPool(tt.in)
		if got := pool.Size(); got != tt.want {
			t.Errorf("NewConverterPool(%d).Size() = %d, want %d", tt.in, got, tt.want)
		}
		_ = pool.Close()
	}
}

func TestConverterPool_LazyCreationAndReuse(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	defer func() { _ = pool.Close() }()

	if pool.created != 0 {
		t.Fatalf("created = %d before first Acquire, want 0", pool.created)
	}

	first, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	pool.Release(first)

	again, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Error("released converter was not reused")
	}
	if pool.created != 1 {
		t.Errorf("created = %d, want 1", pool.created)
	}
	pool.Release(again)
}

func TestConverterPool_OptionsApplied(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithTheme("forest"))
	defer func() { _ = pool.Close() }()

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Release(conv)
	if conv.Theme().Name != "forest" {
		t.Errorf("Theme = %q, want forest", conv.Theme().Name)
	}
}

func TestConverterPool_CreationErrorFreesSlot(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithTheme("no-such-theme"))
	defer func() { _ = pool.Close() }()

	for i := 0; i < 2; i++ {
		if _, err := pool.Acquire(); !errors.Is(err, ErrThemeNotFound) {
			t.Fatalf("attempt %d: error = %v, want ErrThemeNotFound", i, err)
		}
	}
	if pool.created != 0 {
		t.Errorf("created = %d after failures, want 0", pool.created)
	}
}

func TestConverterPool_BlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	defer func() { _ = pool.Close() }()

	held, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}

	got := make(chan *Converter, 1)
	go func() {
		conv, _ := pool.Acquire()
		got <- conv
	}()

	select {
	case <-got:
		t.Fatal("Acquire returned while the only converter was held")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(held)
	select {
	case conv := <-got:
		if conv != held {
			t.Error("waiter received a different converter")
		}
		pool.Release(conv)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter not woken by Release")
	}
}

func TestConverterPool_ConcurrentConversions(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3)
	defer func() { _ = pool.Close() }()

	var (
		wg   sync.WaitGroup
		done atomic.Int32
	)
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire()
			if err != nil {
				t.Error(err)
				return
			}
			defer pool.Release(conv)
			if _, err := conv.Convert(context.Background(), Input{HTML: "<section><h1>Hi</h1></section>"}); err != nil {
				t.Error(err)
				return
			}
			done.Add(1)
		}()
	}
	wg.Wait()

	if done.Load() != 9 {
		t.Errorf("completed = %d, want 9", done.Load())
	}
	if pool.created > 3 {
		t.Errorf("created = %d, exceeds size 3", pool.created)
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	conv, err := pool.Acquire()
	if err != nil {
		t.Fatal(err)
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	// Release after close and nil release are no-ops.
	pool.Release(conv)
	pool.Release(nil)

	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire after Close error = %v, want ErrPoolClosed", err)
	}
}
