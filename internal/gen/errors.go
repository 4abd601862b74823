package gen

import "errors"

// ErrNotConnected is returned by the store when an operation requires an
// open database handle and none exists. Always fatal.
var ErrNotConnected = errors.New("database not connected")

// GenerationError reports an unexpected state inside the generator, such as
// a missing event-type row. Propagated in bulk mode; logged and skipped in
// live mode.
type GenerationError struct {
	Msg string
}

func (e *GenerationError) Error() string { return "generation: " + e.Msg }
