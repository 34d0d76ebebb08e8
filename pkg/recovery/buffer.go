package recovery

import (
	"sync"

	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/dppb"
)

// BufferState is the lifecycle state of a message buffer.
type BufferState int32

const (
	// StateInactive accepts no offers yet.
	StateInactive BufferState = iota
	// StateActive accepts offers and polls.
	StateActive
	// StateDraining accepts no new offers; the consumer drains what is left.
	StateDraining
	// StateTerminated is final; polls report end of stream once empty.
	StateTerminated
)

func (s BufferState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "invalid"
	}
}

// Message pairs one response with the index of the sub-request that
// produced it. The index travels with the response so downstream merging
// can resolve collisions by sub-request order rather than arrival order.
type Message struct {
	SubIndex int
	Resp     *dppb.QueryDataResponse
}

// Buffer is the bounded FIFO between the sub-request streams (producers) and
// the single correlating consumer. Offers block while the buffer is full and
// active; polls block while it is empty and not yet terminated.
type Buffer struct {
	mtx      sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	items    []Message
	capacity int
	state    BufferState
}

func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		capacity: capacity,
		state:    StateInactive,
	}
	b.notEmpty = sync.NewCond(&b.mtx)
	b.notFull = sync.NewCond(&b.mtx)
	return b
}

// Activate transitions inactive → active. Idempotent when already active.
func (b *Buffer) Activate() error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	switch b.state {
	case StateInactive:
		b.state = StateActive
	case StateActive:
	default:
		return dperror.Newf(dperror.KindBufferClosed, "cannot activate a %s buffer", b.state)
	}
	return nil
}

// Offer appends one message, blocking while the buffer is full. Offers to a
// non-active buffer fail with BufferClosed.
func (b *Buffer) Offer(msg Message) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for b.state == StateActive && len(b.items) >= b.capacity {
		b.notFull.Wait()
	}
	if b.state != StateActive {
		return dperror.Newf(dperror.KindBufferClosed, "offer to %s buffer", b.state)
	}

	b.items = append(b.items, msg)
	metricBufferDepth.Inc()
	b.notEmpty.Signal()
	return nil
}

// Poll removes the next message, blocking while the buffer is empty and may
// still receive offers. ok is false iff the buffer is terminated and empty
// (end of stream).
func (b *Buffer) Poll() (Message, bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for {
		if len(b.items) > 0 {
			msg := b.items[0]
			b.items = b.items[1:]
			metricBufferDepth.Dec()
			if b.state == StateDraining && len(b.items) == 0 {
				b.terminateLocked()
			}
			b.notFull.Signal()
			return msg, true
		}

		switch b.state {
		case StateDraining:
			b.terminateLocked()
			return Message{}, false
		case StateTerminated:
			return Message{}, false
		}

		b.notEmpty.Wait()
	}
}

// Shutdown stops accepting offers; the consumer drains the remainder. An
// empty buffer terminates immediately. Idempotent.
func (b *Buffer) Shutdown() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	switch b.state {
	case StateInactive:
		b.terminateLocked()
	case StateActive:
		if len(b.items) == 0 {
			b.terminateLocked()
		} else {
			b.state = StateDraining
		}
	}
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}

// ShutdownNow discards pending messages and terminates from any state.
func (b *Buffer) ShutdownNow() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	metricBufferDepth.Sub(float64(len(b.items)))
	b.items = nil
	b.terminateLocked()
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}

func (b *Buffer) terminateLocked() {
	b.state = StateTerminated
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}

func (b *Buffer) State() BufferState {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.state
}

func (b *Buffer) Len() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return len(b.items)
}
