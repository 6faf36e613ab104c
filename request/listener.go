package request

import (
	"github.com/mcculloh213/XMLHttpRequestPromise/xhr"
	"github.com/zishang520/engine.io/events"
	"github.com/zishang520/engine.io/types"
)

// listenerWrapper builds the handler actually registered on the handle for a
// supported event.
type listenerWrapper func(primary events.Listener, secondary events.Listener) events.Listener

var listenerWrappers = map[string]listenerWrapper{
	xhr.EventAbort:    passthroughWrapper,
	xhr.EventError:    passthroughWrapper,
	xhr.EventLoad:     loadWrapper,
	xhr.EventProgress: progressWrapper,
}

var unimplementedEvents = types.NewSet(xhr.EventLoadend, xhr.EventLoadstart, xhr.EventTimeout, xhr.EventReadystatechange)

// unwrapArgs normalizes emitter deliveries: a listener registered through
// Once receives the emit arguments wrapped in a single slice, one registered
// through On receives them spread.
func unwrapArgs(args []any) []any {
	if len(args) == 1 {
		if wrapped, ok := args[0].([]any); ok {
			return wrapped
		}
	}
	return args
}

func eventTarget(args []any) xhr.Target {
	if len(args) == 0 {
		return nil
	}
	switch ev := args[0].(type) {
	case *xhr.Event:
		return ev.Target
	case *xhr.ProgressEvent:
		return ev.Target
	}
	return nil
}

func passthroughWrapper(primary events.Listener, _ events.Listener) events.Listener {
	return func(args ...any) {
		primary(unwrapArgs(args)...)
	}
}

// loadWrapper dispatches on the exact status 200, not the [200, 300) range
// the completion promise uses.
func loadWrapper(primary events.Listener, secondary events.Listener) events.Listener {
	return func(args ...any) {
		args = unwrapArgs(args)
		if target := eventTarget(args); target != nil && target.Status() == 200 {
			primary(args...)
			return
		}
		if secondary != nil {
			secondary(args...)
		}
	}
}

// progressWrapper reports the transfer as a truncated percentage, or 0 when
// the event carries no computable length.
func progressWrapper(primary events.Listener, _ events.Listener) events.Listener {
	return func(args ...any) {
		args = unwrapArgs(args)
		var ev *xhr.ProgressEvent
		if len(args) > 0 {
			ev, _ = args[0].(*xhr.ProgressEvent)
		}
		if ev != nil && ev.LengthComputable && ev.Total > 0 {
			primary(ev.Loaded*100/ev.Total, ev)
			return
		}
		primary(int64(0), ev)
	}
}
