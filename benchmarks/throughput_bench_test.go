// Package benchmarks provides performance benchmarks for mutation throughput.
package benchmarks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/comalice/reactorx"
	"github.com/comalice/reactorx/internal/service"
	"github.com/comalice/reactorx/internal/textfield"
)

func BenchmarkActionThroughput(b *testing.B) {
	rt := NewCounterRuntime(1, reactorx.WithQueueSize(10000))
	defer rt.Stop()

	numWorkers := 8
	perWorker := max(b.N/numWorkers, 1)
	total := perWorker * numWorkers

	var wg sync.WaitGroup
	b.ResetTimer()
	b.ReportAllocs()
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := SendAll(rt, perWorker); err != nil {
				b.Error(err)
			}
		}()
	}
	wg.Wait()
	if err := WaitForState(rt, 30*time.Second, func(s int) bool { return s >= total }); err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(float64(total)/b.Elapsed().Seconds(), "actions/sec")
}

func BenchmarkMutationFanout(b *testing.B) {
	for _, fanout := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("mutations=%d", fanout), func(b *testing.B) {
			rt := NewCounterRuntime(fanout)
			defer rt.Stop()
			b.ResetTimer()
			if err := SendAll(rt, b.N); err != nil {
				b.Fatal(err)
			}
			want := b.N * fanout
			if err := WaitForState(rt, 30*time.Second, func(s int) bool { return s >= want }); err != nil {
				b.Fatal(err)
			}
			b.ReportMetric(float64(want)/b.Elapsed().Seconds(), "mutations/sec")
		})
	}
}

func BenchmarkObservers(b *testing.B) {
	for _, n := range []int{1, 8, 64} {
		b.Run(fmt.Sprintf("observers=%d", n), func(b *testing.B) {
			rt := NewCounterRuntime(1)
			defer rt.Stop()
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				states := rt.Observe(ctx)
				wg.Add(1)
				go func() {
					defer wg.Done()
					for s := range states {
						if s >= b.N {
							return
						}
					}
				}()
			}
			b.ResetTimer()
			if err := SendAll(rt, b.N); err != nil {
				b.Fatal(err)
			}
			wg.Wait()
		})
	}
}

func BenchmarkTextFieldInput(b *testing.B) {
	provider := service.NewProvider()
	defer provider.Close()
	rt := textfield.NewRuntime(textfield.New(provider), reactorx.WithLogger(QuietLogger()))
	if err := rt.Start(context.Background()); err != nil {
		b.Fatal(err)
	}
	defer rt.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial snapshot plus two mutations per input.
	want := 1 + 2*b.N
	drained := make(chan struct{})
	states := rt.Observe(ctx)
	go func() {
		defer close(drained)
		n := 0
		for range states {
			if n++; n == want {
				return
			}
		}
	}()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for errors.Is(rt.Send(textfield.InputField{Text: "hello world"}), reactorx.ErrQueueFull) {
			time.Sleep(time.Microsecond)
		}
	}
	select {
	case <-drained:
	case <-time.After(30 * time.Second):
		b.Fatal("timeout waiting for snapshots")
	}
}

func BenchmarkReduce(b *testing.B) {
	var s textfield.State
	muts := []textfield.Mutation{
		textfield.SetCapitalizedString{Value: "HELLO"},
		textfield.SetLengthOfString{Value: 5},
		textfield.ShowAlertMessage{Message: textfield.AlertContainsDigit},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s = textfield.Reduce(s, muts[i%len(muts)])
	}
	_ = s
}

func BenchmarkMerge(b *testing.B) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	const sources = 4
	chans := make([]<-chan int, sources)
	for i := range chans {
		ch := make(chan int, 64)
		chans[i] = ch
		go func() {
			defer close(ch)
			for j := 0; j < b.N; j++ {
				ch <- j
			}
		}()
	}
	b.ResetTimer()
	n := 0
	for range reactorx.Merge(ctx, chans...) {
		n++
	}
	if n != sources*b.N {
		b.Fatalf("merged %d values, want %d", n, sources*b.N)
	}
}
