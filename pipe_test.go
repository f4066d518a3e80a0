package confembed_test

import (
	"context"
	"encoding/json"
	"sync"

	confembed "github.com/wagiedev/conference-embed-go"
)

// pipeEnd is one side of an in-memory transport pair.
type pipeEnd struct {
	in         <-chan []byte
	out        chan<- []byte
	closed     chan struct{}
	peerClosed <-chan struct{}
	once       sync.Once
}

var _ confembed.Transport = (*pipeEnd)(nil)

func newPipe() (*pipeEnd, *pipeEnd) {
	aToB := make(chan []byte, 64)
	bToA := make(chan []byte, 64)

	a := &pipeEnd{in: bToA, out: aToB, closed: make(chan struct{})}
	b := &pipeEnd{in: aToB, out: bToA, closed: make(chan struct{})}
	a.peerClosed = b.closed
	b.peerClosed = a.closed

	return a, b
}

func (p *pipeEnd) ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error) {
	messages := make(chan map[string]any, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(messages)
		defer close(errs)

		for {
			select {
			case data := <-p.in:
				var msg map[string]any
				if err := json.Unmarshal(data, &msg); err != nil {
					errs <- &confembed.MessageDecodeError{RawData: string(data), Err: err}

					continue
				}

				select {
				case messages <- msg:
				case <-ctx.Done():
					return
				}
			case <-p.closed:
				return
			case <-p.peerClosed:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return messages, errs
}

func (p *pipeEnd) SendMessage(ctx context.Context, data []byte) error {
	select {
	case <-p.closed:
		return confembed.ErrTransportClosed
	case <-p.peerClosed:
		return confembed.ErrTransportClosed
	default:
	}

	select {
	case p.out <- append([]byte(nil), data...):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeEnd) Close() error {
	p.once.Do(func() { close(p.closed) })

	return nil
}
