package xhr

import (
	"io"

	"github.com/zishang520/engine.io/events"
)

// Upload is the sub-handle scoped to outbound body transfer. It is a
// read-only event view: listeners only, no control operations.
type Upload struct {
	events.EventEmitter

	request *XMLHttpRequest
}

func newUpload(request *XMLHttpRequest) *Upload {
	u := &Upload{}

	u.EventEmitter = events.New()
	u.request = request

	return u
}

func (u *Upload) AddEventListener(event string, listener events.Listener, opts *ListenerOptions) error {
	if opts != nil && opts.Once {
		return u.Once(events.EventName(event), listener)
	}
	return u.On(events.EventName(event), listener)
}

// uploadReader counts outbound body bytes and reports them as progress
// events on the upload sub-handle. It cannot detect completion itself:
// net/http stops reading short of EOF once ContentLength bytes arrive, so
// the handle fires the upload load and loadend events when the response
// comes back instead.
type uploadReader struct {
	reader io.Reader
	upload *Upload
	loaded int64
	total  int64
}

func newUploadReader(reader io.Reader, upload *Upload, total int64) *uploadReader {
	return &uploadReader{
		reader: reader,
		upload: upload,
		total:  total,
	}
}

func (r *uploadReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.loaded += int64(n)
		r.upload.Emit(EventProgress, &ProgressEvent{
			Event:            Event{Type: EventProgress, Target: r.upload.request},
			LengthComputable: r.total >= 0,
			Loaded:           r.loaded,
			Total:            max64(r.total, 0),
		})
	}
	return n, err
}

func max64(a int64, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
