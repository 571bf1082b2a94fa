package dataset

import "fmt"

// FetchError is returned when a dataset cannot be downloaded.
type FetchError struct {
	URL    string
	Status int   // zero if no response was received
	Body   string // excerpt of the response body, if any
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("fetching %s: status %d: %s", e.URL, e.Status, e.Body)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ShapeError is returned when a dataset lacks an expected column.
type ShapeError struct {
	Column string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// ParseError is returned when a cell cannot be converted to the type
// of its column. Row is 1-based and counts the header.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %q: invalid value %q: %v",
		e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ArchivedError comes along with data that were loaded from an archive
// because the dataset itself could not be loaded. Err is why.
type ArchivedError struct {
	Err error
}

func (e *ArchivedError) Error() string {
	return fmt.Sprintf("showing archived data: %v", e.Err)
}

func (e *ArchivedError) Unwrap() error { return e.Err }
