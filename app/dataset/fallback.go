package dataset

import (
	"context"
	"fmt"

	"github.com/alcortesm/covid-graphics/app/observation"
)

// Fallback loads from the primary source and, when it fails, from the
// secondary one, like an archived copy of the dataset.
type Fallback struct {
	Logger    Logger
	Primary   Source
	Secondary Source
}

// Load returns the data of the primary source, or of the secondary if
// the primary fails. Data from the secondary come with an
// *ArchivedError wrapping the error of the primary, so callers can tell
// them apart. If both fail the error of the primary is returned, as it
// is the one that explains why the data are missing.
func (f Fallback) Load(ctx context.Context) ([]*observation.Observation, error) {
	data, err := f.Primary.Load(ctx)
	if err == nil {
		return data, nil
	}

	if f.Secondary == nil {
		return nil, err
	}

	f.Logger.Printf("warning: %v: trying the archive\n", err)

	archived, archiveErr := f.Secondary.Load(ctx)
	if archiveErr != nil {
		return nil, fmt.Errorf("%w (archive: %v)", err, archiveErr)
	}

	if len(archived) == 0 {
		return nil, fmt.Errorf("%w (archive: empty)", err)
	}

	return archived, &ArchivedError{Err: err}
}
