// Package dpcodec provides a gRPC codec for the hand-maintained gogo wire
// bindings in pkg/dppb. The bindings implement the legacy proto.Message
// interface, which grpc-go's default codec no longer accepts, so callers
// register this codec (grpc encoding name "proto") before dialing.
package dpcodec

import (
	"fmt"

	gogoproto "github.com/gogo/protobuf/proto"
)

// Name is the codec's registration name. It shadows grpc's built-in proto
// codec so dp messages travel with content-subtype "proto".
const Name = "proto"

type codec struct{}

// NewCodec returns the codec used for Data Platform RPCs.
func NewCodec() *codec {
	return &codec{}
}

func (c *codec) Name() string { return Name }

func (c *codec) Marshal(v interface{}) ([]byte, error) {
	msg, ok := v.(gogoproto.Message)
	if !ok {
		return nil, fmt.Errorf("unsupported marshal type %T", v)
	}
	return gogoproto.Marshal(msg)
}

func (c *codec) Unmarshal(data []byte, v interface{}) error {
	msg, ok := v.(gogoproto.Message)
	if !ok {
		return fmt.Errorf("unsupported unmarshal type %T", v)
	}
	return gogoproto.Unmarshal(data, msg)
}
