package xhr

const (
	EventAbort            = "abort"
	EventError            = "error"
	EventLoad             = "load"
	EventLoadend          = "loadend"
	EventLoadstart        = "loadstart"
	EventProgress         = "progress"
	EventReadystatechange = "readystatechange"
	EventTimeout          = "timeout"
)

type Event struct {
	Type   string
	Target Target
}

type ProgressEvent struct {
	Event

	LengthComputable bool
	Loaded           int64
	Total            int64
}

type ListenerOptions struct {
	// Remove the listener after its first invocation.
	Once bool
}
