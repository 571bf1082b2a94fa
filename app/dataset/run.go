package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/alcortesm/covid-graphics/app/observation"
)

// Sink receives the result of every load, successful or not.
type Sink func([]*observation.Observation, error)

// Run loads the source right away and then every time the trigger
// fires, handing each result to the sink. Load errors do not stop the
// loop; they are passed to the sink so the last good data can be kept
// or the error shown. It returns when the context is cancelled or the
// trigger is closed.
func Run(
	ctx context.Context,
	logger Logger,
	name string,
	source Source,
	trigger <-chan time.Time,
	sink Sink,
) error {
	logger.Printf("start loading %s...\n", name)
	defer logger.Printf("stopped loading %s\n", name)

	for {
		data, err := source.Load(ctx)
		if err != nil {
			logger.Printf("loading %s: %v\n", name, err)
		}

		sink(data, err)

		// wait for a trigger or a cancelation of the context
		select {
		case _, ok := <-trigger:
			if !ok {
				return fmt.Errorf("closed trigger channel")
			}
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
