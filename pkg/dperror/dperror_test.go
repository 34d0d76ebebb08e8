package dperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogo/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConfig, KindOf(New(KindConfig, "boom")))
	assert.Equal(t, KindServer, KindOf(fmt.Errorf("wrapped: %w", New(KindServer, "boom"))))
	assert.Equal(t, KindRecovery, KindOf(&RecoveryError{}))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))

	assert.True(t, IsKind(New(KindDeadline, "late"), KindDeadline))
	assert.False(t, IsKind(New(KindDeadline, "late"), KindServer))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindTransportTransient, cause, "call failed")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
	assert.Contains(t, err.Error(), "call failed")
}

func TestFromTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"cancelled", status.Error(codes.Canceled, "gone"), KindCancelled},
		{"deadline", status.Error(codes.DeadlineExceeded, "late"), KindDeadline},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad"), KindTransportFatal},
		{"unauthenticated", status.Error(codes.Unauthenticated, "who"), KindTransportFatal},
		{"permission denied", status.Error(codes.PermissionDenied, "no"), KindTransportFatal},
		{"unimplemented", status.Error(codes.Unimplemented, "missing"), KindTransportFatal},
		{"unavailable", status.Error(codes.Unavailable, "flapping"), KindTransportTransient},
		{"internal", status.Error(codes.Internal, "oops"), KindTransportTransient},
		{"non-status", errors.New("plain tcp reset"), KindTransportTransient},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			classified := FromTransport(tc.err)
			assert.Equal(t, tc.kind, classified.Kind)
			assert.ErrorIs(t, classified, tc.err)
		})
	}

	assert.Nil(t, FromTransport(nil))
}

func TestRecoveryErrorMessage(t *testing.T) {
	err := &RecoveryError{Failures: []SubFailure{
		{SubIndex: 0, Kind: KindTransportTransient, Message: "reset"},
		{SubIndex: 2, Kind: KindDeadline, Message: "too slow"},
	}}

	require.Contains(t, err.Error(), "2 sub-request(s)")
	assert.Contains(t, err.Error(), "[sub 0: transport (transient): reset]")
	assert.Contains(t, err.Error(), "[sub 2: deadline: too slow]")
}
