package testutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNext(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if v, err := Next(ch, 10*time.Millisecond); err != nil || v != 7 {
		t.Errorf("Next = %d, %v; want 7, nil", v, err)
	}
	if _, err := Next(ch, 10*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Errorf("empty channel: got %v, want ErrTimeout", err)
	}
	close(ch)
	if _, err := Next(ch, 10*time.Millisecond); !errors.Is(err, ErrClosed) {
		t.Errorf("closed channel: got %v, want ErrClosed", err)
	}
}

func TestCollect(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	got, err := Collect(ch, 2, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Collect = %v", got)
	}

	ch <- "c"
	got, err = Collect(ch, 2, 10*time.Millisecond)
	if !errors.Is(err, ErrTimeout) || len(got) != 1 {
		t.Errorf("short Collect = %v, %v", got, err)
	}
}

func TestWaitFor(t *testing.T) {
	ch := make(chan int, 5)
	for i := 1; i <= 5; i++ {
		ch <- i
	}
	v, err := WaitFor(context.Background(), ch, 10*time.Millisecond, func(n int) bool { return n > 3 })
	if err != nil || v != 4 {
		t.Errorf("WaitFor = %d, %v; want 4, nil", v, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := WaitFor(ctx, make(chan int), time.Second, func(int) bool { return true }); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled WaitFor: got %v", err)
	}
}

func TestQuiet(t *testing.T) {
	ch := make(chan int, 1)
	if !Quiet(ch, 5*time.Millisecond) {
		t.Error("empty channel should be quiet")
	}
	ch <- 1
	if Quiet(ch, 5*time.Millisecond) {
		t.Error("buffered value should break silence")
	}
}
