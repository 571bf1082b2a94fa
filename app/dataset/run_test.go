package dataset_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alcortesm/covid-graphics/app/dataset"
	"github.com/alcortesm/covid-graphics/app/observation"
)

type mockSource struct {
	load func(context.Context) ([]*observation.Observation, error)
}

func (m mockSource) Load(ctx context.Context) ([]*observation.Observation, error) {
	return m.load(ctx)
}

func TestRun(t *testing.T) {
	t.Parallel()

	cause := errors.New("network down")

	var (
		mux   sync.Mutex
		calls int
	)

	source := mockSource{
		load: func(context.Context) ([]*observation.Observation, error) {
			mux.Lock()
			defer mux.Unlock()

			calls++
			if calls == 2 {
				return nil, cause
			}

			return []*observation.Observation{{Code: "A"}}, nil
		},
	}

	trigger := make(chan time.Time)
	results := make(chan error, 10)

	sink := func(data []*observation.Observation, err error) {
		results <- err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- dataset.Run(ctx, logger(t), "fixture", source, trigger, sink)
	}()

	if err := <-results; err != nil {
		t.Fatalf("first load: unexpected error %v", err)
	}

	trigger <- time.Time{}

	if err := <-results; !errors.Is(err, cause) {
		t.Fatalf("second load: want %v, got %v", cause, err)
	}

	trigger <- time.Time{}

	if err := <-results; err != nil {
		t.Fatalf("third load: unexpected error %v", err)
	}

	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestRun_ClosedTrigger(t *testing.T) {
	t.Parallel()

	source := mockSource{
		load: func(context.Context) ([]*observation.Observation, error) {
			return nil, nil
		},
	}

	trigger := make(chan time.Time)
	close(trigger)

	err := dataset.Run(context.Background(), logger(t), "fixture",
		source, trigger, func([]*observation.Observation, error) {})
	if err == nil {
		t.Fatal("unexpected success")
	}
}
