package xhr

import (
	"github.com/zishang520/engine.io/events"
	"github.com/zishang520/engine.io/types"
)

const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
	MethodPatch   = "PATCH"
)

var SupportedMethods = types.NewSet(MethodGet, MethodHead, MethodPost, MethodPut, MethodDelete, MethodOptions, MethodPatch)

// ReadyState values, mirroring the XMLHttpRequest lifecycle.
const (
	UNSENT = iota
	OPENED
	HEADERS_RECEIVED
	LOADING
	DONE
)

// Target is the completion-time view of an exchange, read by load listeners.
type Target interface {
	Status() int
	StatusText() string
	Response() types.BufferInterface
}

// EventTarget is the listener-registration surface shared by the main handle
// and its upload sub-handle.
type EventTarget interface {
	AddEventListener(event string, listener events.Listener, opts *ListenerOptions) error
}

// Handle is one in-flight HTTP exchange. A handle is single-use: opened at
// most once, sent at most once.
type Handle interface {
	EventTarget
	Target

	// Opens the exchange with the given verb, target and mode.
	Open(method string, url string, async bool) error
	// Sets a request header. The handle must be opened and not yet sent.
	SetRequestHeader(name string, value string) error
	// Sends the request body and runs the exchange.
	Send(body any) error
	// Aborts an in-flight exchange.
	Abort()
	// Current lifecycle state.
	ReadyState() int
	// The upload sub-handle, scoped to outbound body transfer.
	Upload() EventTarget
}
