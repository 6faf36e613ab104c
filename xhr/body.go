package xhr

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"
)

// normalizeBody turns a send payload into a reader, its length (-1 when
// unknown) and a content type ("" when the caller should fall back to the
// default). Strings cover the URI-encoded GET-style payloads; url.Values and
// FormData cover form submissions; anything unrecognized is JSON-encoded.
func normalizeBody(body any) (io.Reader, int64, string, error) {
	switch data := body.(type) {
	case nil:
		return nil, 0, "", nil
	case string:
		return strings.NewReader(data), int64(len(data)), "", nil
	case []byte:
		return bytes.NewReader(data), int64(len(data)), "", nil
	case url.Values:
		encoded := data.Encode()
		return strings.NewReader(encoded), int64(len(encoded)), "application/x-www-form-urlencoded", nil
	case *FormData:
		buf, contentType, err := data.Encode()
		if err != nil {
			return nil, 0, "", err
		}
		return buf, int64(buf.Len()), contentType, nil
	case io.Reader:
		return data, -1, "", nil
	default:
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, 0, "", err
		}
		return bytes.NewReader(encoded), int64(len(encoded)), "application/json", nil
	}
}
