package billing

import "errors"

// Error kinds surfaced by the registry and the client aggregate. They are
// always wrapped with context (the client key, invoice number, or date) and
// reported as a single line at the top level; no failure is retried.
var (
	// ErrNotFound reports a client key or invoice number that does not exist
	// in the live projection.
	ErrNotFound = errors.New("not found")

	// ErrNoRate reports that a service has no rate in effect as of the
	// requested date.
	ErrNoRate = errors.New("no effective rate")

	// ErrOutOfSequence reports an invoice recorded with a number that is not
	// the client's next contiguous invoice number.
	ErrOutOfSequence = errors.New("invoice out of sequence")

	// ErrAlreadyPaid reports a payment recorded against an invoice that was
	// already paid.
	ErrAlreadyPaid = errors.New("invoice already paid")

	// ErrFormat reports an event log that matches none of the known
	// encodings.
	ErrFormat = errors.New("unknown event log format")
)
