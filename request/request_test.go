package request

import (
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mcculloh213/XMLHttpRequestPromise/errors"
	"github.com/mcculloh213/XMLHttpRequestPromise/xhr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End to end against a real handle and a live server.

func TestEndToEndPostResolves(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"a":1}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	promise, err := New(nil).
		SetMethod("post").
		SetUrl(server.URL + "/api").
		OpenRequest().
		SendRequest(map[string]int{"a": 1})
	require.NoError(t, err)

	value, err := promise.Await()
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, value.String())
}

func TestEndToEndNoContentResolves(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	promise, err := New(nil).SetUrl(server.URL).OpenRequest().SendRequest(nil)
	require.NoError(t, err)

	value, err := promise.Await()
	require.NoError(t, err)
	assert.Equal(t, "", value.String())
}

func TestEndToEndServerErrorRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	promise, err := New(nil).SetUrl(server.URL).OpenRequest().SendRequest(nil)
	require.NoError(t, err)

	_, err = promise.Await()
	require.Error(t, err)
	var respErr *errors.ResponseError
	require.True(t, stderrors.As(err, &respErr))
	assert.Equal(t, 500, respErr.Status)
	assert.Equal(t, "Internal Server Error", respErr.StatusText)
}

func TestEndToEndTransportErrorRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	promise, err := New(nil).SetUrl(server.URL).OpenRequest().SendRequest(nil)
	require.NoError(t, err)

	_, err = promise.Await()
	require.Error(t, err)
	var respErr *errors.ResponseError
	require.True(t, stderrors.As(err, &respErr))
	assert.Equal(t, 0, respErr.Status)
}

func TestEndToEndListeners(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	loaded := make(chan struct{})
	var mu sync.Mutex
	var percents []int64

	b := New(nil).
		SetUrl(server.URL).
		OpenRequest().
		SetEventListener(xhr.EventLoad, func(...any) { close(loaded) }, func(...any) {
			t.Error("load failure callback invoked for status 200")
		}, nil).
		SetEventListener(xhr.EventProgress, func(args ...any) {
			mu.Lock()
			percents = append(percents, args[0].(int64))
			mu.Unlock()
		}, nil, nil)
	require.NoError(t, b.Err())

	promise, err := b.SendRequest(nil)
	require.NoError(t, err)

	_, err = promise.Await()
	require.NoError(t, err)

	select {
	case <-loaded:
	case <-time.After(2 * time.Second):
		t.Fatal("load listener was not invoked")
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(percents) > 0 && percents[len(percents)-1] == 100
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEndToEndSynchronousMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("sync"))
	}))
	defer server.Close()

	promise, err := New(nil).SetAsync(false).SetUrl(server.URL).OpenRequest().SendRequest(nil)
	require.NoError(t, err)

	// synchronous mode runs the exchange inside SendRequest
	select {
	case <-promise.Done():
	case <-time.After(time.Second):
		t.Fatal("synchronous request did not settle")
	}

	value, err := promise.Await()
	require.NoError(t, err)
	assert.Equal(t, "sync", value.String())
}

func TestEndToEndOnceLoadListener(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	loaded := make(chan struct{})
	b := New(nil).
		SetUrl(server.URL).
		OpenRequest().
		SetEventListener(xhr.EventLoad, func(...any) { close(loaded) }, func(...any) {
			t.Error("load failure callback invoked for status 200")
		}, &xhr.ListenerOptions{Once: true})
	require.NoError(t, b.Err())

	promise, err := b.SendRequest(nil)
	require.NoError(t, err)

	_, err = promise.Await()
	require.NoError(t, err)

	select {
	case <-loaded:
	case <-time.After(2 * time.Second):
		t.Fatal("load listener was not invoked")
	}
}

func TestEndToEndUploadLoadListener(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	loaded := make(chan struct{})
	promise, err := New(nil).
		SetMethod("put").
		SetUrl(server.URL).
		OpenRequest().
		SetUploadEventListener(xhr.EventLoad, func(...any) { close(loaded) }, nil, nil).
		SendRequest("0123456789")
	require.NoError(t, err)

	_, err = promise.Await()
	require.NoError(t, err)

	select {
	case <-loaded:
	case <-time.After(2 * time.Second):
		t.Fatal("upload load listener was not invoked")
	}
}

func TestEndToEndUploadProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var mu sync.Mutex
	var percents []int64

	promise, err := New(nil).
		SetMethod("put").
		SetUrl(server.URL).
		OpenRequest().
		SetUploadEventListener(xhr.EventProgress, func(args ...any) {
			mu.Lock()
			percents = append(percents, args[0].(int64))
			mu.Unlock()
		}, nil, nil).
		SendRequest("0123456789")
	require.NoError(t, err)

	_, err = promise.Await()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(percents) > 0 && percents[len(percents)-1] == 100
	}, 2*time.Second, 10*time.Millisecond)
}
