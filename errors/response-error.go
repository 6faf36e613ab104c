package errors

import "fmt"

// ResponseError is the rejection payload of a completed exchange whose status
// falls outside [200, 300), or of a transport failure (status 0).
type ResponseError struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
}

func NewResponseError(status int, statusText string) *ResponseError {
	return &ResponseError{
		Status:     status,
		StatusText: statusText,
	}
}

func (e *ResponseError) Err() error {
	return e
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.StatusText)
}
