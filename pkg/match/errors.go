package match

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure for transport mapping.
type Kind string

const (
	KindUpstreamModel Kind = "upstream_model_error" // LLM / embedding backend failed or misbehaved
	KindPrecondition  Kind = "precondition_failed"  // operation called out of stage order
	KindNotFound      Kind = "not_found"            // unknown session or job id
	KindStore         Kind = "store_error"          // session store unavailable
)

// Error is the pipeline's only error type. Err carries the cause for logs;
// Msg is safe to return to clients.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func UpstreamModelError(msg string, cause error) *Error {
	return &Error{Kind: KindUpstreamModel, Msg: msg, Err: cause}
}

func PreconditionError(msg string) *Error {
	return &Error{Kind: KindPrecondition, Msg: msg}
}

func NotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func StoreError(msg string, cause error) *Error {
	return &Error{Kind: KindStore, Msg: msg, Err: cause}
}

// KindOf extracts the Kind from an error chain; unknown errors map to
// KindStore so callers fail closed on the transport side.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return KindStore
}
