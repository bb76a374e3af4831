package client

import (
	"errors"
	"fmt"
)

// Sentinel kinds for client errors. The first two carry the exact
// user-facing messages the ANTEKHUB front end shows.
var (
	ErrUnauthenticated = errors.New("Silakan login terlebih dahulu") //nolint:stylecheck // user-facing message
	ErrMissingID       = errors.New("UUID tidak boleh kosong")       //nolint:stylecheck // user-facing message
	ErrEncode          = errors.New("encode request body failed")
	ErrTransport       = errors.New("transport failed")
	ErrDecode          = errors.New("decode response body failed")
)

// APIError is returned for responses outside the 2xx range. Error()
// returns Message unchanged.
type APIError struct {
	StatusCode int
	Status     string // status text, e.g. "Not Found"
	Message    string
	Body       Result
}

func (e *APIError) Error() string { return e.Message }

// statusLine is the fallback message when the server supplies no detail.
func statusLine(code int, text string) string {
	return fmt.Sprintf("Error %d: %s", code, text)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
