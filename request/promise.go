package request

import (
	"sync"

	"github.com/zishang520/engine.io/types"
)

// Promise is the single-shot result of SendRequest. It settles exactly once,
// through the resolve path or the reject path, never both.
type Promise struct {
	once  sync.Once
	done  chan struct{}
	value types.BufferInterface
	err   error
}

func newPromise() *Promise {
	return &Promise{
		done: make(chan struct{}),
	}
}

func (p *Promise) resolve(value types.BufferInterface) {
	p.once.Do(func() {
		p.value = value
		close(p.done)
	})
}

func (p *Promise) reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Await blocks until the request settles, then returns the response payload
// or the rejection error.
func (p *Promise) Await() (types.BufferInterface, error) {
	<-p.done
	return p.value, p.err
}

// Done is closed once the request has settled.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}
