package slotflow

import (
	"errors"

	"github.com/hirekit/slotflow/schema"
	"github.com/hirekit/slotflow/session"
)

var (
	// ErrUnknownSchema is surfaced by StartSession for form types the
	// registry does not know.
	ErrUnknownSchema = schema.ErrUnknownSchema
	// ErrUnknownSession is surfaced by any operation referencing a
	// missing or already-ended session id.
	ErrUnknownSession = session.ErrUnknownSession
	// ErrClassifierUnavailable reports that the remote classifier could
	// not be reached and the engine answered from local extraction.
	// Recoverable: the conversation keeps going.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)
