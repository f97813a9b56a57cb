package reactorx

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Just yields vs in order.
func Just[T any](vs ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	}
}

// Empty yields nothing.
func Empty[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}

// Concat yields every element of each sequence, one sequence after another.
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Merge interleaves the given channels into one. Values from one source keep
// their relative order; ordering across sources is whatever the scheduler
// produces. A source that closes drops out without affecting the others. The
// returned channel closes once every source has closed or ctx is done.
func Merge[T any](ctx context.Context, srcs ...<-chan T) <-chan T {
	out := make(chan T)
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range srcs {
		if src == nil {
			continue
		}
		g.Go(func() error {
			for {
				select {
				case v, ok := <-src:
					if !ok {
						return nil
					}
					if !send(gctx, out, v) {
						return gctx.Err()
					}
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}
	go func() {
		_ = g.Wait()
		close(out)
	}()
	return out
}

// FlatMap maps every value of in to zero or more values. Used to bridge foreign
// event streams into a mutation stream.
func FlatMap[E, T any](ctx context.Context, in <-chan E, f func(E) iter.Seq[T]) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case e, ok := <-in:
				if !ok {
					return
				}
				for v := range f(e) {
					if !send(ctx, out, v) {
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Map applies f to each value of in.
func Map[E, T any](ctx context.Context, in <-chan E, f func(E) T) <-chan T {
	return FlatMap(ctx, in, func(e E) iter.Seq[T] { return Just(f(e)) })
}

// Distinct drops values equal to the one previously forwarded.
func Distinct[T comparable](ctx context.Context, in <-chan T) <-chan T {
	return DistinctFunc(ctx, in, func(a, b T) bool { return a == b })
}

// DistinctFunc is Distinct with a caller-provided equality.
func DistinctFunc[T any](ctx context.Context, in <-chan T, equal func(a, b T) bool) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		var (
			last T
			seen bool
		)
		for {
			select {
			case v, ok := <-in:
				if !ok {
					return
				}
				if seen && equal(last, v) {
					continue
				}
				last, seen = v, true
				if !send(ctx, out, v) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// send delivers v unless ctx ends first.
func send[T any](ctx context.Context, out chan<- T, v T) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
