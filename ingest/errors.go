package ingest

import "errors"

// ErrInvalidInput marks malformed JSON or a dangling reference (unknown
// route/location/vehicle type). Fatal: the caller should abort ingestion
// and surface the wrapped message.
var ErrInvalidInput = errors.New("ingest: invalid input")
