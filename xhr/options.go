package xhr

import (
	"crypto/tls"
	"net/http"
	"time"
)

type Options struct {
	// Ask for gzip, deflate and br encoded responses.
	Compress bool

	// Deadline for the whole exchange. Zero means no deadline.
	Timeout time.Duration

	// Headers applied to every request before per-request headers.
	ExtraHeaders map[string]string

	Jar http.CookieJar

	// TLSClientConfig specifies the TLS configuration to use with tls.Client.
	// If nil, the default configuration is used.
	TLSClientConfig *tls.Config
}
