package xhr

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/mcculloh213/XMLHttpRequestPromise/errors"
	"github.com/zishang520/engine.io/events"
	"github.com/zishang520/engine.io/log"
	"github.com/zishang520/engine.io/types"
)

var xhr_log = log.NewLog("xhr-promise:xhr")

// XMLHttpRequest runs one HTTP exchange over net/http and reports its
// lifecycle through events. It is single-use: one Open, one Send.
type XMLHttpRequest struct {
	events.EventEmitter

	opts *Options

	method  string
	url     string
	async   bool
	headers map[string]string
	upload  *Upload

	_readyState int
	_status     int
	_statusText string
	_response   types.BufferInterface
	_sent       bool
	_aborted    bool

	mu_readyState sync.RWMutex
	mu_status     sync.RWMutex
	mu_response   sync.RWMutex
	mu_sent       sync.RWMutex
	mu_aborted    sync.RWMutex

	cancel    context.CancelFunc
	mu_cancel sync.Mutex
}

// XMLHttpRequest constructor.
func NewXMLHttpRequest(opts *Options) *XMLHttpRequest {
	x := &XMLHttpRequest{}

	x.EventEmitter = events.New()
	if opts == nil {
		opts = &Options{}
	}
	x.opts = opts
	x.headers = map[string]string{}
	x.upload = newUpload(x)
	x._readyState = UNSENT
	x._response = types.NewStringBuffer(nil)

	return x
}

func (x *XMLHttpRequest) setReadyState(readyState int) {
	x.mu_readyState.Lock()
	x._readyState = readyState
	x.mu_readyState.Unlock()

	x.Emit(EventReadystatechange, &Event{Type: EventReadystatechange, Target: x})
}
func (x *XMLHttpRequest) ReadyState() int {
	x.mu_readyState.RLock()
	defer x.mu_readyState.RUnlock()

	return x._readyState
}

func (x *XMLHttpRequest) setStatus(status int, statusText string) {
	x.mu_status.Lock()
	defer x.mu_status.Unlock()

	x._status = status
	x._statusText = statusText
}
func (x *XMLHttpRequest) Status() int {
	x.mu_status.RLock()
	defer x.mu_status.RUnlock()

	return x._status
}
func (x *XMLHttpRequest) StatusText() string {
	x.mu_status.RLock()
	defer x.mu_status.RUnlock()

	return x._statusText
}

func (x *XMLHttpRequest) setResponse(response types.BufferInterface) {
	x.mu_response.Lock()
	defer x.mu_response.Unlock()

	x._response = response
}
func (x *XMLHttpRequest) Response() types.BufferInterface {
	x.mu_response.RLock()
	defer x.mu_response.RUnlock()

	return x._response
}

func (x *XMLHttpRequest) setSent(sent bool) {
	x.mu_sent.Lock()
	defer x.mu_sent.Unlock()

	x._sent = sent
}
func (x *XMLHttpRequest) sent() bool {
	x.mu_sent.RLock()
	defer x.mu_sent.RUnlock()

	return x._sent
}

func (x *XMLHttpRequest) setAborted(aborted bool) {
	x.mu_aborted.Lock()
	defer x.mu_aborted.Unlock()

	x._aborted = aborted
}
func (x *XMLHttpRequest) aborted() bool {
	x.mu_aborted.RLock()
	defer x.mu_aborted.RUnlock()

	return x._aborted
}

// Opens the exchange. A handle opens at most once.
func (x *XMLHttpRequest) Open(method string, url string, async bool) error {
	if x.ReadyState() != UNSENT {
		return errors.NewInvalidStateError("handle is already opened", nil).Err()
	}

	x.method = strings.ToUpper(method)
	x.url = url
	x.async = async
	x.setReadyState(OPENED)

	xhr_log.Debug("opened %s %s (async: %t)", x.method, x.url, x.async)
	return nil
}

// Sets a request header. Valid after Open and before Send.
func (x *XMLHttpRequest) SetRequestHeader(name string, value string) error {
	if x.ReadyState() != OPENED {
		return errors.NewInvalidStateError("handle is not opened", nil).Err()
	}
	if x.sent() {
		return errors.NewInvalidStateError("handle is already sent", nil).Err()
	}

	x.headers[name] = value
	return nil
}

func (x *XMLHttpRequest) AddEventListener(event string, listener events.Listener, opts *ListenerOptions) error {
	if opts != nil && opts.Once {
		return x.Once(events.EventName(event), listener)
	}
	return x.On(events.EventName(event), listener)
}

func (x *XMLHttpRequest) Upload() EventTarget {
	return x.upload
}

// Sends the request body and runs the exchange, in a goroutine when the
// handle was opened asynchronously, inline otherwise.
func (x *XMLHttpRequest) Send(body any) error {
	if x.ReadyState() != OPENED {
		return errors.NewInvalidStateError("handle is not opened", nil).Err()
	}
	if x.sent() {
		return errors.NewInvalidStateError("handle is already sent", nil).Err()
	}
	x.setSent(true)

	reader, length, contentType, err := normalizeBody(body)
	if err != nil {
		x.setSent(false)
		return err
	}

	if x.async {
		go x.perform(reader, length, contentType)
	} else {
		x.perform(reader, length, contentType)
	}
	return nil
}

// Aborts an in-flight exchange. A no-op before Send and after DONE.
func (x *XMLHttpRequest) Abort() {
	x.mu_cancel.Lock()
	cancel := x.cancel
	x.mu_cancel.Unlock()

	if cancel != nil && x.ReadyState() != DONE {
		x.setAborted(true)
		cancel()
	}
}

func (x *XMLHttpRequest) setCancel(cancel context.CancelFunc) {
	x.mu_cancel.Lock()
	defer x.mu_cancel.Unlock()

	x.cancel = cancel
}

func (x *XMLHttpRequest) client() *http.Client {
	client := &http.Client{}
	if x.opts.Jar != nil {
		client.Jar = x.opts.Jar
	}
	if x.opts.TLSClientConfig != nil {
		client.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: x.opts.TLSClientConfig,
		}
	}
	if x.opts.Timeout > 0 {
		client.Timeout = x.opts.Timeout
	}
	return client
}

func (x *XMLHttpRequest) perform(reader io.Reader, length int64, contentType string) {
	x.Emit(EventLoadstart, &ProgressEvent{Event: Event{Type: EventLoadstart, Target: x}})

	hasBody := reader != nil
	if hasBody {
		x.upload.Emit(EventLoadstart, &ProgressEvent{
			Event:            Event{Type: EventLoadstart, Target: x},
			LengthComputable: length >= 0,
			Total:            max64(length, 0),
		})
		reader = newUploadReader(reader, x.upload, length)
	}

	ctx, cancel := context.WithCancel(context.Background())
	x.setCancel(cancel)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, x.method, x.url, reader)
	if err != nil {
		x.onError(err)
		return
	}
	if hasBody && length >= 0 {
		request.ContentLength = length
	}
	for key, value := range x.opts.ExtraHeaders {
		request.Header.Set(key, value)
	}
	for key, value := range x.headers {
		request.Header.Set(key, value)
	}
	if _, hasContentType := request.Header["Content-Type"]; hasBody && !hasContentType {
		if contentType == "" {
			contentType = "text/plain;charset=UTF-8"
		}
		request.Header.Set("Content-Type", contentType)
	}
	request.Header.Set("Accept", "*/*")
	if x.opts.Compress {
		request.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}

	response, err := x.client().Do(request)
	if err != nil {
		x.onError(err)
		return
	}
	defer response.Body.Close()

	x.setStatus(response.StatusCode, statusTextOf(response))

	// a response means the outbound body was fully consumed
	if hasBody {
		x.upload.Emit(EventLoad, &Event{Type: EventLoad, Target: x})
		x.upload.Emit(EventLoadend, &Event{Type: EventLoadend, Target: x})
	}

	x.setReadyState(HEADERS_RECEIVED)
	x.setReadyState(LOADING)

	body := types.NewStringBuffer(nil)
	counted := newProgressReader(response.Body, x, response.ContentLength)
	switch response.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(counted)
		if err != nil {
			x.onError(err)
			return
		}
		defer gz.Close()
		if _, err := io.Copy(body, gz); err != nil {
			x.onError(err)
			return
		}
	case "deflate":
		fl := flate.NewReader(counted)
		defer fl.Close()
		if _, err := io.Copy(body, fl); err != nil {
			x.onError(err)
			return
		}
	case "br":
		if _, err := io.Copy(body, brotli.NewReader(counted)); err != nil {
			x.onError(err)
			return
		}
	default:
		if _, err := io.Copy(body, counted); err != nil {
			x.onError(err)
			return
		}
	}
	x.setResponse(body)
	x.setReadyState(DONE)

	xhr_log.Debug("done %s %s: %d", x.method, x.url, x.Status())
	x.Emit(EventLoad, &Event{Type: EventLoad, Target: x})
	x.Emit(EventLoadend, &Event{Type: EventLoadend, Target: x})
}

// Called upon transport failure or abort.
func (x *XMLHttpRequest) onError(err error) {
	x.setStatus(0, "")
	x.setReadyState(DONE)

	if x.aborted() {
		xhr_log.Debug("aborted %s %s: %v", x.method, x.url, err)
		x.Emit(EventAbort, &Event{Type: EventAbort, Target: x})
	} else {
		xhr_log.Debug("failed %s %s: %v", x.method, x.url, err)
		x.Emit(EventError, &Event{Type: EventError, Target: x})
	}
	x.Emit(EventLoadend, &Event{Type: EventLoadend, Target: x})
}

func statusTextOf(response *http.Response) string {
	if text := strings.TrimPrefix(response.Status, strconv.Itoa(response.StatusCode)+" "); text != response.Status {
		return text
	}
	return http.StatusText(response.StatusCode)
}

// progressReader counts inbound body bytes as read off the wire and reports
// them as progress events on the main handle.
type progressReader struct {
	reader  io.Reader
	request *XMLHttpRequest
	loaded  int64
	total   int64
}

func newProgressReader(reader io.Reader, request *XMLHttpRequest, total int64) *progressReader {
	return &progressReader{
		reader:  reader,
		request: request,
		total:   total,
	}
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.loaded += int64(n)
		r.request.Emit(EventProgress, &ProgressEvent{
			Event:            Event{Type: EventProgress, Target: r.request},
			LengthComputable: r.total >= 0,
			Loaded:           r.loaded,
			Total:            max64(r.total, 0),
		})
	}
	return n, err
}
