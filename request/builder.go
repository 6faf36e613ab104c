package request

import (
	"strings"
	"sync"

	"github.com/mcculloh213/XMLHttpRequestPromise/config"
	"github.com/mcculloh213/XMLHttpRequestPromise/errors"
	"github.com/mcculloh213/XMLHttpRequestPromise/xhr"
	"github.com/zishang520/engine.io/events"
	"github.com/zishang520/engine.io/log"
)

var request_log = log.NewLog("xhr-promise:request")

// Builder configures one HTTP exchange through chained calls and sends it,
// producing a Promise. A builder is single-use: construct, configure, open,
// attach listeners, send. Method, URL and async mode are mutable only while
// the request is not yet open.
//
// Configuration errors latch: the first failing call records its error,
// subsequent calls become no-ops, and the error surfaces through Err or
// through SendRequest.
type Builder struct {
	xhr xhr.Handle

	method string
	url    string
	async  bool

	_isOpen bool
	_sent   bool
	_err    error

	mu_isOpen sync.RWMutex
	mu_sent   sync.RWMutex
	mu_err    sync.RWMutex
}

// Request builder constructor. Seeds the defaults (GET, "/", asynchronous),
// creates a fresh underlying handle, then applies opts on top.
func New(opts config.RequestOptionsInterface) *Builder {
	return NewWithHandle(xhr.NewXMLHttpRequest(nil), opts)
}

// NewWithHandle builds on an injected handle. The handle must be fresh; the
// builder becomes its only owner.
func NewWithHandle(handle xhr.Handle, opts config.RequestOptionsInterface) *Builder {
	b := &Builder{}

	b.xhr = handle
	b.method = xhr.MethodGet
	b.url = "/"
	b.async = true

	if opts != nil {
		if opts.GetRawMethod() != nil {
			b.SetMethod(opts.Method())
		}
		if opts.GetRawUrl() != nil {
			b.SetUrl(opts.Url())
		}
		if opts.GetRawAsync() != nil {
			b.SetAsync(opts.Async())
		}
	}

	return b
}

func (b *Builder) setIsOpen(isOpen bool) {
	b.mu_isOpen.Lock()
	defer b.mu_isOpen.Unlock()

	b._isOpen = isOpen
}
func (b *Builder) IsOpen() bool {
	b.mu_isOpen.RLock()
	defer b.mu_isOpen.RUnlock()

	return b._isOpen
}

func (b *Builder) setSent(sent bool) {
	b.mu_sent.Lock()
	defer b.mu_sent.Unlock()

	b._sent = sent
}
func (b *Builder) sent() bool {
	b.mu_sent.RLock()
	defer b.mu_sent.RUnlock()

	return b._sent
}

func (b *Builder) setErr(err error) {
	b.mu_err.Lock()
	defer b.mu_err.Unlock()

	if b._err == nil {
		b._err = err
	}
}

// Err returns the first configuration error raised by the chain, if any.
func (b *Builder) Err() error {
	b.mu_err.RLock()
	defer b.mu_err.RUnlock()

	return b._err
}

func (b *Builder) Method() string {
	return b.method
}

func (b *Builder) Url() string {
	return b.url
}

func (b *Builder) Async() bool {
	return b.async
}

// SetMethod stores the upper-cased verb. Verbs outside the supported set are
// refused and leave the stored method unchanged.
func (b *Builder) SetMethod(method string) *Builder {
	if b.Err() != nil {
		return b
	}
	if b.IsOpen() {
		b.setErr(errors.NewAlreadyOpenError(b.method, b.url).Err())
		return b
	}

	verb := strings.ToUpper(method)
	if !xhr.SupportedMethods.Has(verb) {
		b.setErr(errors.NewInvalidVerbError(method).Err())
		return b
	}
	b.method = verb
	return b
}

func (b *Builder) SetUrl(url string) *Builder {
	if b.Err() != nil {
		return b
	}
	if b.IsOpen() {
		b.setErr(errors.NewAlreadyOpenError(b.method, b.url).Err())
		return b
	}

	b.url = url
	return b
}

func (b *Builder) SetAsync(async bool) *Builder {
	if b.Err() != nil {
		return b
	}
	if b.IsOpen() {
		b.setErr(errors.NewAlreadyOpenError(b.method, b.url).Err())
		return b
	}

	b.async = async
	return b
}

// OpenRequest opens the underlying handle with the configured method, URL
// and mode. Opening twice always fails on the second call.
func (b *Builder) OpenRequest() *Builder {
	if b.Err() != nil {
		return b
	}
	if b.IsOpen() {
		b.setErr(errors.NewAlreadyOpenError(b.method, b.url).Err())
		return b
	}

	if err := b.xhr.Open(b.method, b.url, b.async); err != nil {
		b.setErr(err)
		return b
	}
	b.setIsOpen(true)

	request_log.Debug("opened %s %s", b.method, b.url)
	return b
}

// SetXhrHeader delegates to the handle's header primitive; the handle's own
// lifecycle rules apply, nothing is validated here.
func (b *Builder) SetXhrHeader(name string, value string) *Builder {
	if b.Err() != nil {
		return b
	}

	if err := b.xhr.SetRequestHeader(name, value); err != nil {
		b.setErr(err)
	}
	return b
}

// SetEventListener registers a wrapped listener for a named lifecycle event
// on the main handle. See listenerWrappers for the event set; loadend,
// loadstart, timeout and readystatechange are refused, unknown names are
// refused.
func (b *Builder) SetEventListener(event string, primary events.Listener, secondary events.Listener, opts *xhr.ListenerOptions) *Builder {
	return b.addListener(b.xhr, event, primary, secondary, opts)
}

// SetUploadEventListener is SetEventListener against the upload sub-handle.
func (b *Builder) SetUploadEventListener(event string, primary events.Listener, secondary events.Listener, opts *xhr.ListenerOptions) *Builder {
	return b.addListener(b.xhr.Upload(), event, primary, secondary, opts)
}

func (b *Builder) addListener(target xhr.EventTarget, event string, primary events.Listener, secondary events.Listener, opts *xhr.ListenerOptions) *Builder {
	if b.Err() != nil {
		return b
	}

	if unimplementedEvents.Has(event) {
		b.setErr(errors.NewNotImplementedError(event).Err())
		return b
	}
	wrapper, ok := listenerWrappers[event]
	if !ok {
		b.setErr(errors.NewInvalidEventError(event).Err())
		return b
	}
	if err := target.AddEventListener(event, wrapper(primary, secondary), opts); err != nil {
		b.setErr(err)
	}
	return b
}

// SendRequest sends the configured request and returns its single-shot
// result. The promise resolves with the response payload on a [200, 300)
// status and rejects with a ResponseError otherwise; a transport failure
// rejects with status 0.
func (b *Builder) SendRequest(body any) (*Promise, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	if !b.IsOpen() {
		return nil, errors.NewNotOpenError().Err()
	}
	// refuse before touching the emitter, so a second call leaves no
	// orphaned completion listeners behind
	if b.sent() {
		return nil, errors.NewInvalidStateError("request is already sent", nil).Err()
	}
	b.setSent(true)

	promise := newPromise()
	onLoad := events.Listener(func(...any) {
		if status := b.xhr.Status(); 200 <= status && status < 300 {
			promise.resolve(b.xhr.Response())
		} else {
			promise.reject(errors.NewResponseError(status, b.xhr.StatusText()).Err())
		}
	})
	onError := events.Listener(func(...any) {
		promise.reject(errors.NewResponseError(b.xhr.Status(), b.xhr.StatusText()).Err())
	})
	if err := b.xhr.AddEventListener(xhr.EventLoad, onLoad, &xhr.ListenerOptions{Once: true}); err != nil {
		return nil, err
	}
	if err := b.xhr.AddEventListener(xhr.EventError, onError, &xhr.ListenerOptions{Once: true}); err != nil {
		return nil, err
	}

	if err := b.xhr.Send(body); err != nil {
		return nil, err
	}

	request_log.Debug("sent %s %s", b.method, b.url)
	return promise, nil
}
