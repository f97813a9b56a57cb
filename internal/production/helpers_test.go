package production

import (
	"context"
	"iter"

	"github.com/comalice/reactorx"
)

// adder emits each action as its own mutation and sums them.
type adder struct{}

func (adder) Mutate(_ context.Context, n int, _ int) iter.Seq[int] {
	return reactorx.Just(n)
}

func (adder) Reduce(s int, m int) int {
	return s + m
}
