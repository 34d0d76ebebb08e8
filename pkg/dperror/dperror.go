// Package dperror defines the tagged error kinds surfaced by the query
// recovery and assembly pipeline. Every failure a caller can observe is one
// of these kinds, distinguishable with errors.As/KindOf rather than by
// message matching.
package dperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogo/status"
	"google.golang.org/grpc/codes"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindInvalidRequest
	KindTransportTransient
	KindTransportFatal
	KindDeadline
	KindServer
	KindBufferClosed
	KindDuplicateSource
	KindMissingResource
	KindInconsistentColumnSize
	KindUnsupportedType
	KindOrderingViolation
	KindDomainCollision
	KindCancelled
	KindRecovery
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInvalidRequest:
		return "invalid request"
	case KindTransportTransient:
		return "transport (transient)"
	case KindTransportFatal:
		return "transport (fatal)"
	case KindDeadline:
		return "deadline"
	case KindServer:
		return "server"
	case KindBufferClosed:
		return "buffer closed"
	case KindDuplicateSource:
		return "duplicate source"
	case KindMissingResource:
		return "missing resource"
	case KindInconsistentColumnSize:
		return "inconsistent column size"
	case KindUnsupportedType:
		return "unsupported type"
	case KindOrderingViolation:
		return "ordering violation"
	case KindDomainCollision:
		return "domain collision"
	case KindCancelled:
		return "cancelled"
	case KindRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: err}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// KindOf extracts the error kind from err or any error it wraps.
// A RecoveryError reports KindRecovery. Errors outside this package
// report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var re *RecoveryError
	if errors.As(err, &re) {
		return KindRecovery
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// SubFailure records one sub-request failure inside a RecoveryError.
type SubFailure struct {
	SubIndex int
	Kind     Kind
	Message  string
}

// RecoveryError aggregates the per-sub-request failures of one recovery.
type RecoveryError struct {
	Failures []SubFailure
}

func (e *RecoveryError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "recovery failed for %d sub-request(s):", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&sb, " [sub %d: %s: %s]", f.SubIndex, f.Kind, f.Message)
	}
	return sb.String()
}

// FromTransport classifies a transport-level error into one of the tagged
// kinds. Status codes that indicate a broken request or connection are fatal
// and cancel peer sub-requests; everything else is retried.
func FromTransport(err error) *Error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return Wrap(KindTransportTransient, err, "non-status transport error")
	}

	switch st.Code() {
	case codes.Canceled:
		return Wrap(KindCancelled, err, "call cancelled")
	case codes.DeadlineExceeded:
		return Wrap(KindDeadline, err, "call deadline exceeded")
	case codes.InvalidArgument, codes.Unauthenticated, codes.PermissionDenied, codes.Unimplemented:
		return Wrap(KindTransportFatal, err, st.Message())
	default:
		return Wrap(KindTransportTransient, err, st.Message())
	}
}
